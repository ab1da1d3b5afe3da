package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/osu-native/osu-native-go/pkg/osunative"
)

// parseMods accepts "NM" or "", lazer JSON ("[{...}]"), a legacy bitmask
// ("72"), separated acronyms ("HD,DT" or "HD+DT") or concatenated two-letter
// acronyms ("HDDT").
func parseMods(s string) (osunative.GameMods, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || strings.EqualFold(s, "NM"):
		return nil, nil
	case strings.HasPrefix(s, "["):
		return osunative.ParseModsJSON([]byte(s))
	}
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return osunative.LegacyMods(n).GameMods()
	}

	var acronyms osunative.Acronyms
	if strings.ContainsAny(s, ",+ ") {
		for _, a := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '+' || r == ' ' }) {
			acronyms = append(acronyms, strings.ToUpper(a))
		}
		return acronyms.GameMods()
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("cannot split %q into two-letter acronyms; separate them with commas", s)
	}
	for i := 0; i < len(s); i += 2 {
		pair := s[i : i+2]
		for _, r := range pair {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return nil, fmt.Errorf("invalid acronym %q", pair)
			}
		}
		acronyms = append(acronyms, strings.ToUpper(pair))
	}
	return acronyms.GameMods()
}
