package osunative

import (
	"errors"
	"testing"

	"github.com/osu-native/osu-native-go/pkg/osunative/nativetest"
)

func TestRulesetKindIDRoundTrip(t *testing.T) {
	for _, kind := range RulesetKinds {
		got, err := RulesetKindFromID(kind.ID())
		if err != nil || got != kind {
			t.Fatalf("RulesetKindFromID(%d) = %v, %v", kind.ID(), got, err)
		}
		byName, err := RulesetKindFromShortName(kind.ShortName())
		if err != nil || byName != kind {
			t.Fatalf("RulesetKindFromShortName(%q) = %v, %v", kind.ShortName(), byName, err)
		}
	}
	if _, err := RulesetKindFromID(4); !errors.Is(err, ErrInvalidRulesetID) {
		t.Fatalf("id 4: %v", err)
	}
	if _, err := RulesetKindFromShortName("ctb"); !errors.Is(err, ErrInvalidRulesetID) {
		t.Fatalf("ctb: %v", err)
	}
}

func TestNewRuleset(t *testing.T) {
	lib, fake := newTestLibrary(t)

	for _, kind := range RulesetKinds {
		t.Run(kind.String(), func(t *testing.T) {
			r := mustRuleset(t, lib, kind)
			defer r.Close()

			if r.Kind() != kind || r.ID() != int32(kind) {
				t.Fatalf("kind = %v id = %d", r.Kind(), r.ID())
			}
			name, err := r.ShortName()
			if err != nil {
				t.Fatalf("short name: %v", err)
			}
			if name != kind.ShortName() {
				t.Fatalf("short name = %q, want %q", name, kind.ShortName())
			}
		})
	}
	assertBalanced(t, fake)
}

func TestNewRulesetInvalidKind(t *testing.T) {
	lib, fake := newTestLibrary(t)
	if _, err := lib.NewRuleset(RulesetKind(9)); !errors.Is(err, ErrInvalidRulesetID) {
		t.Fatalf("err = %v", err)
	}
	if fake.CallsTo("Ruleset_CreateFromId") != 0 {
		t.Fatal("invalid kind reached the native side")
	}
}

func TestRulesetFromShortName(t *testing.T) {
	lib, fake := newTestLibrary(t)

	r, err := lib.RulesetFromShortName("fruits")
	if err != nil {
		t.Fatalf("fruits: %v", err)
	}
	if r.Kind() != RulesetCatch {
		t.Fatalf("kind = %v", r.Kind())
	}
	r.Close()

	if _, err := lib.RulesetFromShortName("ctb"); !errors.Is(err, ErrRulesetUnavailable) {
		t.Fatalf("ctb: %v", err)
	}
	if _, err := lib.RulesetFromShortName("o\x00su"); !errors.Is(err, ErrInvalidNul) {
		t.Fatalf("nul: %v", err)
	}
	assertBalanced(t, fake)
}

func TestRulesetCreateFailureDestroysNothing(t *testing.T) {
	lib, fake := newTestLibrary(t)
	fake.Inject("Ruleset_CreateFromId", 2)

	if _, err := lib.NewRuleset(RulesetOsu); !errors.Is(err, ErrRulesetUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if fake.CallsTo("Ruleset_Destroy") != 0 || fake.Created(nativetest.KindRuleset) != 0 {
		t.Fatal("failed create was followed by a destroy")
	}
}
