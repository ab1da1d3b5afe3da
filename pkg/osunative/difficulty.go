package osunative

import (
	"fmt"

	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

// DifficultyCalculator is a native difficulty calculator bound to one
// beatmap and the ruleset it was created with. It owns that ruleset and
// destroys it on Close. Mods are configuration only; every Calculate call
// materializes them into a fresh native collection and tears it down before
// returning.
//
// Use the per-ruleset aliases such as OsuDifficultyCalculator.
type DifficultyCalculator[M Mode[D, P], D, P any] struct {
	obj     *object
	ruleset *Ruleset
	mods    GameMods
}

type (
	OsuDifficultyCalculator   = DifficultyCalculator[Osu, OsuDifficultyAttributes, OsuPerformanceAttributes]
	TaikoDifficultyCalculator = DifficultyCalculator[Taiko, TaikoDifficultyAttributes, TaikoPerformanceAttributes]
	CatchDifficultyCalculator = DifficultyCalculator[Catch, CatchDifficultyAttributes, CatchPerformanceAttributes]
	ManiaDifficultyCalculator = DifficultyCalculator[Mania, ManiaDifficultyAttributes, ManiaPerformanceAttributes]
)

// NewOsuDifficultyCalculator binds an osu! calculator to beatmap. On success
// the calculator takes ownership of ruleset; the beatmap is only borrowed and
// may be closed afterwards. A ruleset of another kind fails with
// ErrUnexpectedRuleset.
func NewOsuDifficultyCalculator(ruleset *Ruleset, beatmap *Beatmap) (*OsuDifficultyCalculator, error) {
	return newDifficultyCalculator[Osu, OsuDifficultyAttributes, OsuPerformanceAttributes](ruleset, beatmap)
}

// NewTaikoDifficultyCalculator is the osu!taiko counterpart of
// NewOsuDifficultyCalculator.
func NewTaikoDifficultyCalculator(ruleset *Ruleset, beatmap *Beatmap) (*TaikoDifficultyCalculator, error) {
	return newDifficultyCalculator[Taiko, TaikoDifficultyAttributes, TaikoPerformanceAttributes](ruleset, beatmap)
}

// NewCatchDifficultyCalculator is the osu!catch counterpart of
// NewOsuDifficultyCalculator.
func NewCatchDifficultyCalculator(ruleset *Ruleset, beatmap *Beatmap) (*CatchDifficultyCalculator, error) {
	return newDifficultyCalculator[Catch, CatchDifficultyAttributes, CatchPerformanceAttributes](ruleset, beatmap)
}

// NewManiaDifficultyCalculator is the osu!mania counterpart of
// NewOsuDifficultyCalculator.
func NewManiaDifficultyCalculator(ruleset *Ruleset, beatmap *Beatmap) (*ManiaDifficultyCalculator, error) {
	return newDifficultyCalculator[Mania, ManiaDifficultyAttributes, ManiaPerformanceAttributes](ruleset, beatmap)
}

func newDifficultyCalculator[M Mode[D, P], D, P any](ruleset *Ruleset, beatmap *Beatmap) (*DifficultyCalculator[M, D, P], error) {
	var mode M
	op := difficultyKind(mode.Kind()) + ".create"
	if ruleset == nil || beatmap == nil {
		return nil, newError(KindInternal, op, "nil ruleset or beatmap")
	}
	rh, err := ruleset.obj.handle(op)
	if err != nil {
		return nil, err
	}
	bh, err := beatmap.obj.handle(op)
	if err != nil {
		return nil, err
	}
	lib := ruleset.obj.lib
	if err := lib.checkOpen(); err != nil {
		return nil, err
	}

	table := mode.difficultyTable(lib.native)
	var h native.Handle
	if rc := table.Create(rh, bh, &h); rc != native.Success {
		e := nativeError(op, rc)
		if rc == native.UnexpectedRuleset {
			e.Detail = fmt.Sprintf("%s calculator given %s ruleset", mode.Kind(), ruleset.Kind())
		}
		return nil, e
	}
	return &DifficultyCalculator[M, D, P]{
		obj:     lib.adopt(difficultyKind(mode.Kind()), h, table.Destroy),
		ruleset: ruleset.take(),
	}, nil
}

// Kind returns the ruleset kind the calculator was built for.
func (c *DifficultyCalculator[M, D, P]) Kind() RulesetKind {
	var mode M
	return mode.Kind()
}

// Mods returns a copy of the configured mods.
func (c *DifficultyCalculator[M, D, P]) Mods() GameMods {
	return c.mods.Clone()
}

// WithMods moves the calculator into a new value configured with src. c is
// unusable afterwards. No native call is made until Calculate.
func (c *DifficultyCalculator[M, D, P]) WithMods(src ModSource) (*DifficultyCalculator[M, D, P], error) {
	op := difficultyKind(c.Kind()) + ".mods"
	if !c.obj.alive() {
		return nil, newError(KindClosed, op, "calculator already released")
	}
	mods, err := toGameMods(src)
	if err != nil {
		return nil, err
	}
	return &DifficultyCalculator[M, D, P]{
		obj:     c.obj.take(),
		ruleset: c.ruleset.take(),
		mods:    mods,
	}, nil
}

// Calculate runs the native difficulty calculation with the configured mods.
// Repeated calls with unchanged mods return identical attributes.
func (c *DifficultyCalculator[M, D, P]) Calculate() (D, error) {
	var (
		mode M
		out  D
	)
	op := difficultyKind(mode.Kind()) + ".calculate"
	h, err := c.obj.handle(op)
	if err != nil {
		return out, err
	}
	rh, err := c.ruleset.obj.handle(op)
	if err != nil {
		return out, err
	}
	lib := c.obj.lib
	if err := lib.checkOpen(); err != nil {
		return out, err
	}

	mods, err := lib.buildModCollection(op, c.mods)
	if err != nil {
		return out, err
	}
	defer mods.close()

	if rc := mode.difficultyTable(lib.native).CalculateMods(h, rh, mods.handle(), &out); rc != native.Success {
		var zero D
		return zero, nativeError(op, rc)
	}
	return out, nil
}

// intoRuleset destroys the calculator and hands its ruleset back.
func (c *DifficultyCalculator[M, D, P]) intoRuleset() *Ruleset {
	c.obj.close()
	return c.ruleset.take()
}

// Close destroys the calculator and then its ruleset. Calling it again, or on
// a calculator that was moved by WithMods, is a no-op.
func (c *DifficultyCalculator[M, D, P]) Close() error {
	if c == nil {
		return nil
	}
	c.obj.close()
	if c.ruleset != nil {
		c.ruleset.obj.close()
	}
	return nil
}
