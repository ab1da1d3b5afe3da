package osunative

import "github.com/osu-native/osu-native-go/pkg/osunative/native"

// Mode is the capability set of one ruleset: its kind, its native calculator
// entry points and how to read max combo from its difficulty attributes. D
// and P are the difficulty and performance attribute types. The four
// implementations are Osu, Taiko, Catch and Mania.
type Mode[D, P any] interface {
	Kind() RulesetKind
	difficultyTable(native.Library) native.DifficultyTable[D]
	performanceTable(native.Library) native.PerformanceTable[D, P]
	maxCombo(D) int32
}

type (
	Osu   struct{}
	Taiko struct{}
	Catch struct{}
	Mania struct{}
)

func (Osu) Kind() RulesetKind { return RulesetOsu }
func (Osu) difficultyTable(l native.Library) native.DifficultyTable[OsuDifficultyAttributes] {
	return l.OsuDifficulty()
}
func (Osu) performanceTable(l native.Library) native.PerformanceTable[OsuDifficultyAttributes, OsuPerformanceAttributes] {
	return l.OsuPerformance()
}
func (Osu) maxCombo(a OsuDifficultyAttributes) int32 { return a.MaxCombo }

func (Taiko) Kind() RulesetKind { return RulesetTaiko }
func (Taiko) difficultyTable(l native.Library) native.DifficultyTable[TaikoDifficultyAttributes] {
	return l.TaikoDifficulty()
}
func (Taiko) performanceTable(l native.Library) native.PerformanceTable[TaikoDifficultyAttributes, TaikoPerformanceAttributes] {
	return l.TaikoPerformance()
}
func (Taiko) maxCombo(a TaikoDifficultyAttributes) int32 { return a.MaxCombo }

func (Catch) Kind() RulesetKind { return RulesetCatch }
func (Catch) difficultyTable(l native.Library) native.DifficultyTable[CatchDifficultyAttributes] {
	return l.CatchDifficulty()
}
func (Catch) performanceTable(l native.Library) native.PerformanceTable[CatchDifficultyAttributes, CatchPerformanceAttributes] {
	return l.CatchPerformance()
}
func (Catch) maxCombo(a CatchDifficultyAttributes) int32 { return a.MaxCombo }

func (Mania) Kind() RulesetKind { return RulesetMania }
func (Mania) difficultyTable(l native.Library) native.DifficultyTable[ManiaDifficultyAttributes] {
	return l.ManiaDifficulty()
}
func (Mania) performanceTable(l native.Library) native.PerformanceTable[ManiaDifficultyAttributes, ManiaPerformanceAttributes] {
	return l.ManiaPerformance()
}
func (Mania) maxCombo(a ManiaDifficultyAttributes) int32 { return a.MaxCombo }

var (
	_ Mode[OsuDifficultyAttributes, OsuPerformanceAttributes]     = Osu{}
	_ Mode[TaikoDifficultyAttributes, TaikoPerformanceAttributes] = Taiko{}
	_ Mode[CatchDifficultyAttributes, CatchPerformanceAttributes] = Catch{}
	_ Mode[ManiaDifficultyAttributes, ManiaPerformanceAttributes] = Mania{}
)

func difficultyKind(k RulesetKind) string  { return k.ShortName() + "_difficulty_calculator" }
func performanceKind(k RulesetKind) string { return k.ShortName() + "_performance_calculator" }
