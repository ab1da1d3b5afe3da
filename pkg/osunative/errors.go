package osunative

import (
	"errors"
	"fmt"
	"strings"

	"github.com/osu-native/osu-native-go/pkg/osunative/internal/backend"
	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

// Origin tells whether a failure was reported by the native library, detected
// while marshaling its output, caused by malformed caller input, or indicates
// a broken invariant inside this package.
type Origin uint8

const (
	OriginNative Origin = iota + 1
	OriginMarshal
	OriginHost
	OriginInternal
)

func (o Origin) String() string {
	switch o {
	case OriginNative:
		return "native"
	case OriginMarshal:
		return "marshal"
	case OriginHost:
		return "host"
	case OriginInternal:
		return "internal"
	default:
		return fmt.Sprintf("origin(%d)", uint8(o))
	}
}

// Kind identifies a class of failure. Callers match on it through errors.Is
// with the Err* sentinels below.
type Kind uint8

const (
	KindObjectNotFound Kind = iota + 1
	KindRulesetUnavailable
	KindUnexpectedRuleset
	KindBeatmapFileNotFound
	KindUnknownNative

	KindInvalidLength
	KindInvalidNul
	KindInvalidUTF8

	KindInvalidRulesetID
	KindInvalidPath
	KindInvalidAcronym
	KindInvalidSettingKey
	KindUnsupportedSetting
	KindModsSerialization
	KindModsDeserialization
	KindClosed

	KindInternal
)

var kindNames = map[Kind]string{
	KindObjectNotFound:      "object not found",
	KindRulesetUnavailable:  "ruleset unavailable",
	KindUnexpectedRuleset:   "unexpected ruleset for operation",
	KindBeatmapFileNotFound: "beatmap file not found",
	KindUnknownNative:       "unknown native failure",
	KindInvalidLength:       "invalid buffer length",
	KindInvalidNul:          "invalid nul byte",
	KindInvalidUTF8:         "invalid utf-8",
	KindInvalidRulesetID:    "invalid ruleset id",
	KindInvalidPath:         "invalid path",
	KindInvalidAcronym:      "invalid mod acronym",
	KindInvalidSettingKey:   "invalid mod setting key",
	KindUnsupportedSetting:  "unsupported mod setting",
	KindModsSerialization:   "mods serialization failed",
	KindModsDeserialization: "mods deserialization failed",
	KindClosed:              "object closed",
	KindInternal:            "internal error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Origin reports where failures of this kind come from.
func (k Kind) Origin() Origin {
	switch {
	case k >= KindObjectNotFound && k <= KindUnknownNative:
		return OriginNative
	case k >= KindInvalidLength && k <= KindInvalidUTF8:
		return OriginMarshal
	case k >= KindInvalidRulesetID && k <= KindClosed:
		return OriginHost
	default:
		return OriginInternal
	}
}

// Error is the structured failure returned by every fallible operation in this
// package.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "beatmap.from_path".
	Op string
	// Code is the raw native status for native-origin failures.
	Code native.ErrorCode
	// Path is set when the failing call had a file path at hand.
	Path   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("osunative: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Kind == KindUnknownNative {
		fmt.Fprintf(&b, " (code %d)", int8(e.Code))
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " %q", e.Path)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same Kind, so errors.Is(err, ErrClosed)
// works regardless of Op or Detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Origin is shorthand for e.Kind.Origin().
func (e *Error) Origin() Origin { return e.Kind.Origin() }

var (
	ErrObjectNotFound      = &Error{Kind: KindObjectNotFound}
	ErrRulesetUnavailable  = &Error{Kind: KindRulesetUnavailable}
	ErrUnexpectedRuleset   = &Error{Kind: KindUnexpectedRuleset}
	ErrBeatmapFileNotFound = &Error{Kind: KindBeatmapFileNotFound}
	ErrUnknownNative       = &Error{Kind: KindUnknownNative}
	ErrInvalidLength       = &Error{Kind: KindInvalidLength}
	ErrInvalidNul          = &Error{Kind: KindInvalidNul}
	ErrInvalidUTF8         = &Error{Kind: KindInvalidUTF8}
	ErrInvalidRulesetID    = &Error{Kind: KindInvalidRulesetID}
	ErrInvalidPath         = &Error{Kind: KindInvalidPath}
	ErrInvalidAcronym      = &Error{Kind: KindInvalidAcronym}
	ErrInvalidSettingKey   = &Error{Kind: KindInvalidSettingKey}
	ErrUnsupportedSetting  = &Error{Kind: KindUnsupportedSetting}
	ErrModsSerialization   = &Error{Kind: KindModsSerialization}
	ErrModsDeserialization = &Error{Kind: KindModsDeserialization}
	ErrClosed              = &Error{Kind: KindClosed}
	ErrInternal            = &Error{Kind: KindInternal}
)

var (
	// ErrLibraryClosed is returned by Library.Close when called twice and by
	// constructors invoked after Close.
	ErrLibraryClosed = errors.New("osunative: library closed")

	// ErrNotBuilt is returned by Open when the binary was built without the
	// native backend (cgo disabled or the osunative build tag missing).
	ErrNotBuilt = backend.ErrNotBuilt
)

// IsNative reports whether err carries a failure reported by the native
// library.
func IsNative(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Origin() == OriginNative
}

// KindOf returns the Kind carried by err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind Kind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// nativeError converts a non-success status into an *Error. A status that is
// not a recognized failure, including Success and BufferSizeQuery reaching a
// call site that did not expect them, collapses to KindUnknownNative with the
// raw code kept for diagnostics.
func nativeError(op string, rc native.ErrorCode) *Error {
	e := &Error{Op: op, Code: rc}
	switch rc {
	case native.ObjectNotFound:
		e.Kind = KindObjectNotFound
	case native.RulesetUnavailable:
		e.Kind = KindRulesetUnavailable
	case native.UnexpectedRuleset:
		e.Kind = KindUnexpectedRuleset
	case native.BeatmapFileNotFound:
		e.Kind = KindBeatmapFileNotFound
	default:
		e.Kind = KindUnknownNative
	}
	return e
}
