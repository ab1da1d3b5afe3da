package osunative

import (
	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

// ScoreStatistics describes a play. Judgement counts follow the lazer naming:
// meh is a 50, ok a 100, good a 200, great a 300 and perfect a 320.
type ScoreStatistics struct {
	MaxCombo           int32
	Accuracy           float64
	CountMiss          int32
	CountMeh           int32
	CountOk            int32
	CountGood          int32
	CountGreat         int32
	CountPerfect       int32
	CountSliderTailHit int32
	CountLargeTickMiss int32
}

// DefaultScoreStatistics returns statistics of a play with full accuracy and
// no recorded judgements.
func DefaultScoreStatistics() ScoreStatistics {
	return ScoreStatistics{Accuracy: 1.0}
}

func (s ScoreStatistics) native(ruleset, beatmap, mods native.Handle) native.Score {
	return native.Score{
		RulesetHandle:      ruleset,
		BeatmapHandle:      beatmap,
		ModsHandle:         mods,
		MaxCombo:           s.MaxCombo,
		Accuracy:           s.Accuracy,
		CountMiss:          s.CountMiss,
		CountMeh:           s.CountMeh,
		CountOk:            s.CountOk,
		CountGood:          s.CountGood,
		CountGreat:         s.CountGreat,
		CountPerfect:       s.CountPerfect,
		CountSliderTailHit: s.CountSliderTailHit,
		CountLargeTickMiss: s.CountLargeTickMiss,
	}
}

// PerformanceCalculator is a native performance calculator. It holds no
// beatmap or ruleset; those are passed to each Calculate call.
type PerformanceCalculator[M Mode[D, P], D, P any] struct {
	obj *object
}

type (
	OsuPerformanceCalculator   = PerformanceCalculator[Osu, OsuDifficultyAttributes, OsuPerformanceAttributes]
	TaikoPerformanceCalculator = PerformanceCalculator[Taiko, TaikoDifficultyAttributes, TaikoPerformanceAttributes]
	CatchPerformanceCalculator = PerformanceCalculator[Catch, CatchDifficultyAttributes, CatchPerformanceAttributes]
	ManiaPerformanceCalculator = PerformanceCalculator[Mania, ManiaDifficultyAttributes, ManiaPerformanceAttributes]
)

func NewOsuPerformanceCalculator(l *Library) (*OsuPerformanceCalculator, error) {
	return newPerformanceCalculator[Osu, OsuDifficultyAttributes, OsuPerformanceAttributes](l)
}

func NewTaikoPerformanceCalculator(l *Library) (*TaikoPerformanceCalculator, error) {
	return newPerformanceCalculator[Taiko, TaikoDifficultyAttributes, TaikoPerformanceAttributes](l)
}

func NewCatchPerformanceCalculator(l *Library) (*CatchPerformanceCalculator, error) {
	return newPerformanceCalculator[Catch, CatchDifficultyAttributes, CatchPerformanceAttributes](l)
}

func NewManiaPerformanceCalculator(l *Library) (*ManiaPerformanceCalculator, error) {
	return newPerformanceCalculator[Mania, ManiaDifficultyAttributes, ManiaPerformanceAttributes](l)
}

func newPerformanceCalculator[M Mode[D, P], D, P any](l *Library) (*PerformanceCalculator[M, D, P], error) {
	var mode M
	op := performanceKind(mode.Kind()) + ".create"
	if err := l.checkOpen(); err != nil {
		return nil, err
	}
	table := mode.performanceTable(l.native)
	var h native.Handle
	if rc := table.Create(&h); rc != native.Success {
		return nil, nativeError(op, rc)
	}
	return &PerformanceCalculator[M, D, P]{obj: l.adopt(performanceKind(mode.Kind()), h, table.Destroy)}, nil
}

// Calculate scores a play on beatmap. mods may be nil for a no-mod play and
// should match the mods difficulty was computed with. The mod collection
// built for the call is destroyed before Calculate returns.
func (c *PerformanceCalculator[M, D, P]) Calculate(ruleset *Ruleset, beatmap *Beatmap, mods ModSource, score ScoreStatistics, difficulty D) (P, error) {
	var (
		mode M
		out  P
	)
	op := performanceKind(mode.Kind()) + ".calculate"
	h, err := c.obj.handle(op)
	if err != nil {
		return out, err
	}
	if ruleset == nil || beatmap == nil {
		return out, newError(KindInternal, op, "nil ruleset or beatmap")
	}
	rh, err := ruleset.obj.handle(op)
	if err != nil {
		return out, err
	}
	bh, err := beatmap.obj.handle(op)
	if err != nil {
		return out, err
	}
	gm, err := toGameMods(mods)
	if err != nil {
		return out, err
	}
	lib := c.obj.lib
	if err := lib.checkOpen(); err != nil {
		return out, err
	}

	coll, err := lib.buildModCollection(op, gm)
	if err != nil {
		return out, err
	}
	defer coll.close()

	table := mode.performanceTable(lib.native)
	if rc := table.Calculate(h, score.native(rh, bh, coll.handle()), difficulty, &out); rc != native.Success {
		var zero P
		return zero, nativeError(op, rc)
	}
	return out, nil
}

// Close destroys the calculator. It is safe to call more than once.
func (c *PerformanceCalculator[M, D, P]) Close() error {
	if c != nil {
		c.obj.close()
	}
	return nil
}
