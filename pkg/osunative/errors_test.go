package osunative

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

func TestNativeErrorMapping(t *testing.T) {
	cases := []struct {
		code native.ErrorCode
		want *Error
	}{
		{native.ObjectNotFound, ErrObjectNotFound},
		{native.RulesetUnavailable, ErrRulesetUnavailable},
		{native.UnexpectedRuleset, ErrUnexpectedRuleset},
		{native.BeatmapFileNotFound, ErrBeatmapFileNotFound},
		{native.Failure, ErrUnknownNative},
		{native.ErrorCode(42), ErrUnknownNative},
		{native.BufferSizeQuery, ErrUnknownNative},
	}

	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			err := nativeError("op", tc.code)
			if !errors.Is(err, tc.want) {
				t.Fatalf("nativeError(%v) = %v, want kind %v", tc.code, err, tc.want.Kind)
			}
			if err.Code != tc.code {
				t.Fatalf("raw code = %v, want %v", err.Code, tc.code)
			}
			if err.Origin() != OriginNative {
				t.Fatalf("origin = %v", err.Origin())
			}
		})
	}
}

func TestErrorKindsDoNotCrossMatch(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", newError(KindInvalidPath, "beatmap.from_path", ""))
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatal("expected ErrInvalidPath through wrapping")
	}
	if errors.Is(err, ErrBeatmapFileNotFound) {
		t.Fatal("host error matched a native kind")
	}
	if IsNative(err) {
		t.Fatal("IsNative true for host error")
	}
	if KindOf(err) != KindInvalidPath {
		t.Fatalf("KindOf = %v", KindOf(err))
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Fatal("KindOf plain error should be 0")
	}
}

func TestKindOrigins(t *testing.T) {
	cases := map[Kind]Origin{
		KindObjectNotFound:      OriginNative,
		KindUnknownNative:       OriginNative,
		KindInvalidLength:       OriginMarshal,
		KindInvalidNul:          OriginMarshal,
		KindInvalidUTF8:         OriginMarshal,
		KindInvalidPath:         OriginHost,
		KindInvalidAcronym:      OriginHost,
		KindModsDeserialization: OriginHost,
		KindClosed:              OriginHost,
		KindInternal:            OriginInternal,
	}
	for kind, want := range cases {
		if got := kind.Origin(); got != want {
			t.Errorf("%v.Origin() = %v, want %v", kind, got, want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Kind: KindUnknownNative, Op: "mod.create", Code: native.Failure, Detail: `mod "XX"`}
	msg := e.Error()
	for _, want := range []string{"osunative: mod.create", "unknown native failure", "code 127", `mod "XX"`} {
		if !strings.Contains(msg, want) {
			t.Fatalf("%q missing %q", msg, want)
		}
	}

	e = &Error{Kind: KindBeatmapFileNotFound, Op: "beatmap.from_path", Path: "/x.osu"}
	if !strings.Contains(e.Error(), `"/x.osu"`) {
		t.Fatalf("path missing from %q", e.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	e := &Error{Kind: KindModsDeserialization, Err: cause}
	if !errors.Is(e, cause) {
		t.Fatal("cause not reachable")
	}
}
