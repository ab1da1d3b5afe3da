package osunative

import (
	"fmt"

	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

// RulesetKind is one of the four game modes. Its value is the numeric ruleset
// id used by the native library.
type RulesetKind int32

const (
	RulesetOsu   RulesetKind = 0
	RulesetTaiko RulesetKind = 1
	RulesetCatch RulesetKind = 2
	RulesetMania RulesetKind = 3
)

// RulesetKinds lists every kind in id order.
var RulesetKinds = []RulesetKind{RulesetOsu, RulesetTaiko, RulesetCatch, RulesetMania}

// RulesetKindFromID maps a numeric ruleset id back to its kind.
func RulesetKindFromID(id int32) (RulesetKind, error) {
	k := RulesetKind(id)
	if !k.valid() {
		return 0, newError(KindInvalidRulesetID, "ruleset.kind_from_id", fmt.Sprintf("unknown id %d", id))
	}
	return k, nil
}

// RulesetKindFromShortName maps a short name ("osu", "taiko", "fruits",
// "mania") to its kind.
func RulesetKindFromShortName(name string) (RulesetKind, error) {
	for _, k := range RulesetKinds {
		if k.ShortName() == name {
			return k, nil
		}
	}
	return 0, newError(KindInvalidRulesetID, "ruleset.kind_from_short_name", fmt.Sprintf("unknown short name %q", name))
}

func (k RulesetKind) valid() bool {
	return k >= RulesetOsu && k <= RulesetMania
}

// ID returns the numeric ruleset id.
func (k RulesetKind) ID() int32 { return int32(k) }

// ShortName returns the identifier the native library uses for the kind.
func (k RulesetKind) ShortName() string {
	switch k {
	case RulesetOsu:
		return "osu"
	case RulesetTaiko:
		return "taiko"
	case RulesetCatch:
		return "fruits"
	case RulesetMania:
		return "mania"
	default:
		return ""
	}
}

func (k RulesetKind) String() string {
	if s := k.ShortName(); s != "" {
		return s
	}
	return fmt.Sprintf("ruleset(%d)", int32(k))
}

// Ruleset is a native ruleset instance.
type Ruleset struct {
	obj  *object
	kind RulesetKind
}

// NewRuleset creates the ruleset of the given kind.
func (l *Library) NewRuleset(kind RulesetKind) (*Ruleset, error) {
	const op = "ruleset.create"
	if err := l.checkOpen(); err != nil {
		return nil, err
	}
	if !kind.valid() {
		return nil, newError(KindInvalidRulesetID, op, fmt.Sprintf("unknown id %d", int32(kind)))
	}

	var out native.Ruleset
	if rc := l.native.RulesetCreateFromID(kind.ID(), &out); rc != native.Success {
		return nil, nativeError(op, rc)
	}
	return l.newRuleset(op, out)
}

// RulesetFromShortName asks the native library to resolve a short name.
func (l *Library) RulesetFromShortName(name string) (*Ruleset, error) {
	const op = "ruleset.from_short_name"
	if err := l.checkOpen(); err != nil {
		return nil, err
	}
	if e := checkCString(op, KindInvalidNul, name); e != nil {
		return nil, e
	}

	var out native.Ruleset
	if rc := l.native.RulesetCreateFromShortName(name, &out); rc != native.Success {
		e := nativeError(op, rc)
		e.Detail = fmt.Sprintf("short name %q", name)
		return nil, e
	}
	return l.newRuleset(op, out)
}

// newRuleset adopts a freshly created ruleset. An id outside the known kinds
// means the library and this package disagree; the handle is released
// immediately.
func (l *Library) newRuleset(op string, out native.Ruleset) (*Ruleset, error) {
	obj := l.adopt(kindRuleset, out.Handle, l.native.RulesetDestroy)
	kind := RulesetKind(out.ID)
	if !kind.valid() {
		obj.close()
		return nil, newError(KindInvalidRulesetID, op, fmt.Sprintf("native library returned unknown id %d", out.ID))
	}
	return &Ruleset{obj: obj, kind: kind}, nil
}

func (r *Ruleset) Kind() RulesetKind { return r.kind }

// ID returns the numeric ruleset id.
func (r *Ruleset) ID() int32 { return r.kind.ID() }

// Handle returns the native handle, or 0 once the ruleset is closed or has
// been moved into a calculator.
func (r *Ruleset) Handle() native.Handle {
	if !r.obj.alive() {
		return 0
	}
	return r.obj.h
}

// ShortName reads the short name back from the native library.
func (r *Ruleset) ShortName() (string, error) {
	const op = "ruleset.short_name"
	h, err := r.obj.handle(op)
	if err != nil {
		return "", err
	}
	return readString(op, h, r.obj.lib.native.RulesetGetShortName)
}

// take moves the native ruleset into a new value; r becomes unusable.
func (r *Ruleset) take() *Ruleset {
	obj := r.obj.take()
	if obj == nil {
		return nil
	}
	return &Ruleset{obj: obj, kind: r.kind}
}

// Close destroys the native ruleset. Closing a ruleset that was moved into a
// calculator is a no-op.
func (r *Ruleset) Close() error {
	if r != nil {
		r.obj.close()
	}
	return nil
}
