package osunative

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"slices"
	"strconv"
	"strings"
)

// SettingKind is the type of a mod setting value.
type SettingKind uint8

const (
	SettingNumber SettingKind = iota + 1
	SettingBool
	SettingString
)

func (k SettingKind) String() string {
	switch k {
	case SettingNumber:
		return "number"
	case SettingBool:
		return "bool"
	case SettingString:
		return "string"
	default:
		return fmt.Sprintf("setting(%d)", uint8(k))
	}
}

// SettingValue is a typed mod setting value. Only numbers reach the native
// library; see Config.StrictModSettings.
type SettingValue struct {
	kind SettingKind
	num  float64
	flag bool
	text string
}

func NumberSetting(v float64) SettingValue { return SettingValue{kind: SettingNumber, num: v} }
func BoolSetting(v bool) SettingValue      { return SettingValue{kind: SettingBool, flag: v} }
func StringSetting(v string) SettingValue  { return SettingValue{kind: SettingString, text: v} }

func (v SettingValue) Kind() SettingKind { return v.kind }

func (v SettingValue) Number() (float64, bool) { return v.num, v.kind == SettingNumber }
func (v SettingValue) Bool() (bool, bool)      { return v.flag, v.kind == SettingBool }
func (v SettingValue) Text() (string, bool)    { return v.text, v.kind == SettingString }

func (v SettingValue) String() string {
	switch v.kind {
	case SettingNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case SettingBool:
		return strconv.FormatBool(v.flag)
	case SettingString:
		return strconv.Quote(v.text)
	default:
		return "<unset>"
	}
}

func (v SettingValue) value() any {
	switch v.kind {
	case SettingNumber:
		return v.num
	case SettingBool:
		return v.flag
	case SettingString:
		return v.text
	default:
		return nil
	}
}

// Setting is one key/value pair of a mod.
type Setting struct {
	Key   string
	Value SettingValue
}

// GameMod describes one mod by acronym. Settings are applied in slice order.
type GameMod struct {
	Acronym  string
	Settings []Setting
}

// Mod returns a mod without settings.
func Mod(acronym string) GameMod {
	return GameMod{Acronym: acronym}
}

// With returns a copy of m with key set to v. An existing key keeps its
// position.
func (m GameMod) With(key string, v SettingValue) GameMod {
	settings := slices.Clone(m.Settings)
	for i := range settings {
		if settings[i].Key == key {
			settings[i].Value = v
			return GameMod{Acronym: m.Acronym, Settings: settings}
		}
	}
	return GameMod{Acronym: m.Acronym, Settings: append(settings, Setting{Key: key, Value: v})}
}

// Setting looks up a setting by key.
func (m GameMod) Setting(key string) (SettingValue, bool) {
	for _, s := range m.Settings {
		if s.Key == key {
			return s.Value, true
		}
	}
	return SettingValue{}, false
}

func (m GameMod) String() string {
	if len(m.Settings) == 0 {
		return m.Acronym
	}
	parts := make([]string, len(m.Settings))
	for i, s := range m.Settings {
		parts[i] = s.Key + "=" + s.Value.String()
	}
	return m.Acronym + "(" + strings.Join(parts, ",") + ")"
}

// GameMods is an ordered list of mods. It has no native counterpart until a
// calculation materializes it into a mod collection.
type GameMods []GameMod

// ModSource is anything that can be turned into GameMods: GameMods itself,
// Acronyms, LegacyMods and ModsJSON.
type ModSource interface {
	GameMods() (GameMods, error)
}

// GameMods returns a deep copy of m.
func (m GameMods) GameMods() (GameMods, error) {
	return m.Clone(), nil
}

// Clone returns a deep copy of m.
func (m GameMods) Clone() GameMods {
	if m == nil {
		return nil
	}
	out := make(GameMods, len(m))
	for i, mod := range m {
		out[i] = GameMod{Acronym: mod.Acronym, Settings: slices.Clone(mod.Settings)}
	}
	return out
}

// Acronyms lists the acronyms in order.
func (m GameMods) Acronyms() []string {
	out := make([]string, len(m))
	for i, mod := range m {
		out[i] = mod.Acronym
	}
	return out
}

// String renders the mods canonically, e.g. "HDDT(speed_change=1.3)". An
// empty list renders as "NM".
func (m GameMods) String() string {
	if len(m) == 0 {
		return "NM"
	}
	var b strings.Builder
	for _, mod := range m {
		b.WriteString(mod.String())
	}
	return b.String()
}

// MarshalJSON encodes m in the lazer mod format, keeping setting order.
func (m GameMods) MarshalJSON() ([]byte, error) {
	const op = "mods.marshal_json"
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, mod := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		acronym, err := json.Marshal(mod.Acronym)
		if err != nil {
			return nil, &Error{Kind: KindModsSerialization, Op: op, Err: err}
		}
		buf.WriteString(`{"acronym":`)
		buf.Write(acronym)
		if len(mod.Settings) > 0 {
			buf.WriteString(`,"settings":{`)
			for j, s := range mod.Settings {
				if j > 0 {
					buf.WriteByte(',')
				}
				key, err := json.Marshal(s.Key)
				if err != nil {
					return nil, &Error{Kind: KindModsSerialization, Op: op, Err: err}
				}
				if s.Value.Kind() == 0 {
					return nil, &Error{Kind: KindModsSerialization, Op: op, Detail: fmt.Sprintf("%s setting %q has no value", mod.Acronym, s.Key)}
				}
				val, err := json.Marshal(s.Value.value())
				if err != nil {
					return nil, &Error{Kind: KindModsSerialization, Op: op, Detail: fmt.Sprintf("%s setting %q", mod.Acronym, s.Key), Err: err}
				}
				buf.Write(key)
				buf.WriteByte(':')
				buf.Write(val)
			}
			buf.WriteByte('}')
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the lazer mod format. See ParseModsJSON.
func (m *GameMods) UnmarshalJSON(data []byte) error {
	mods, err := ParseModsJSON(data)
	if err != nil {
		return err
	}
	*m = mods
	return nil
}

// ModsJSON is a lazer-style mod list such as
// [{"acronym":"DT","settings":{"speed_change":1.3}}].
type ModsJSON []byte

func (j ModsJSON) GameMods() (GameMods, error) {
	return ParseModsJSON(j)
}

// ParseModsJSON decodes a lazer-style mod list. Settings keep the order in
// which they appear in the document. Setting values must be numbers,
// booleans or strings.
func ParseModsJSON(data []byte) (GameMods, error) {
	const op = "mods.parse_json"
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	mods, err := decodeMods(dec)
	if err != nil {
		return nil, &Error{Kind: KindModsDeserialization, Op: op, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after mod list")
		}
		return nil, &Error{Kind: KindModsDeserialization, Op: op, Err: err}
	}
	return mods, nil
}

func decodeMods(dec *json.Decoder) (GameMods, error) {
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	mods := GameMods{}
	for dec.More() {
		mod, err := decodeMod(dec)
		if err != nil {
			return nil, fmt.Errorf("mod %d: %w", len(mods), err)
		}
		mods = append(mods, mod)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return mods, nil
}

func decodeMod(dec *json.Decoder) (GameMod, error) {
	var mod GameMod
	if err := expectDelim(dec, '{'); err != nil {
		return mod, err
	}
	seenAcronym := false
	for dec.More() {
		key, err := decodeKey(dec)
		if err != nil {
			return mod, err
		}
		switch key {
		case "acronym":
			tok, err := dec.Token()
			if err != nil {
				return mod, err
			}
			s, ok := tok.(string)
			if !ok {
				return mod, fmt.Errorf("acronym must be a string, got %v", tok)
			}
			mod.Acronym = s
			seenAcronym = true
		case "settings":
			if mod.Settings, err = decodeSettings(dec); err != nil {
				return mod, err
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return mod, err
			}
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return mod, err
	}
	if !seenAcronym {
		return mod, errors.New("missing acronym")
	}
	return mod, nil
}

func decodeSettings(dec *json.Decoder) ([]Setting, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	mod := GameMod{}
	for dec.More() {
		key, err := decodeKey(dec)
		if err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		var v SettingValue
		switch t := tok.(type) {
		case json.Number:
			f, err := t.Float64()
			if err != nil {
				return nil, fmt.Errorf("setting %q: %w", key, err)
			}
			v = NumberSetting(f)
		case bool:
			v = BoolSetting(t)
		case string:
			v = StringSetting(t)
		default:
			return nil, fmt.Errorf("setting %q: unsupported value %v", key, tok)
		}
		mod = mod.With(key, v)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return mod.Settings, nil
}

func decodeKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// Acronyms is a list of mod acronyms without settings.
type Acronyms []string

func (a Acronyms) GameMods() (GameMods, error) {
	mods := make(GameMods, len(a))
	for i, acronym := range a {
		mods[i] = Mod(acronym)
	}
	return mods, nil
}

// LegacyMods is the stable-era mod bitmask.
type LegacyMods uint32

const (
	LegacyNoFail LegacyMods = 1 << iota
	LegacyEasy
	LegacyTouchDevice
	LegacyHidden
	LegacyHardRock
	LegacySuddenDeath
	LegacyDoubleTime
	LegacyRelax
	LegacyHalfTime
	LegacyNightcore
	LegacyFlashlight
	LegacyAutoplay
	LegacySpunOut
	LegacyAutopilot
	LegacyPerfect
	LegacyKey4
	LegacyKey5
	LegacyKey6
	LegacyKey7
	LegacyKey8
	LegacyFadeIn
	LegacyRandom
	LegacyCinema
	LegacyTarget
	LegacyKey9
	LegacyKeyCoop
	LegacyKey1
	LegacyKey3
	LegacyKey2
	LegacyScoreV2
	LegacyMirror
)

var legacyAcronyms = [...]string{
	"NF", "EZ", "TD", "HD", "HR", "SD", "DT", "RX", "HT", "NC",
	"FL", "AT", "SO", "AP", "PF", "4K", "5K", "6K", "7K", "8K",
	"FI", "RD", "CN", "TP", "9K", "CO", "1K", "3K", "2K", "SV2",
	"MR",
}

// Acronyms lists the acronyms of the set bits in bit order. Nightcore
// implies double time and perfect implies sudden death, so the implied
// acronym is left out. Unknown bits are ignored.
func (m LegacyMods) Acronyms() []string {
	if m&LegacyNightcore != 0 {
		m &^= LegacyDoubleTime
	}
	if m&LegacyPerfect != 0 {
		m &^= LegacySuddenDeath
	}
	out := make([]string, 0, bits.OnesCount32(uint32(m)))
	for i, acronym := range legacyAcronyms {
		if m&(1<<i) != 0 {
			out = append(out, acronym)
		}
	}
	return out
}

func (m LegacyMods) GameMods() (GameMods, error) {
	return Acronyms(m.Acronyms()).GameMods()
}

// toGameMods resolves src; a nil source means no mods.
func toGameMods(src ModSource) (GameMods, error) {
	if src == nil {
		return nil, nil
	}
	return src.GameMods()
}
