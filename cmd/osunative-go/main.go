package main

import (
	"errors"
	"log"
	"os"

	"github.com/osu-native/osu-native-go/pkg/osunative"
)

func main() {
	root := newRootCmd(osunative.Open)
	if err := root.Execute(); err != nil {
		if errors.Is(err, osunative.ErrNotBuilt) {
			log.Printf("library unavailable: %v", err)
			log.Printf("rebuild with CGO_ENABLED=1 -tags osunative to link osu-native")
		}
		os.Exit(1)
	}
}
