//go:build !cgo || !osunative

package backend

import "github.com/osu-native/osu-native-go/pkg/osunative/native"

const Linked = false

// Open reports ErrNotBuilt when the cgo bindings are not compiled in.
func Open() (native.Library, error) {
	return nil, ErrNotBuilt
}
