package native

import "fmt"

// Handle identifies one live object inside the native library's handle table.
type Handle int32

// ErrorCode is the status returned by every entry point.
type ErrorCode int8

const (
	// BufferSizeQuery is the expected first-phase response of a string
	// accessor called without a buffer. It is not a failure.
	BufferSizeQuery ErrorCode = -1
	Success         ErrorCode = 0
	ObjectNotFound  ErrorCode = 1
	// RulesetUnavailable reports an unknown ruleset id or short name.
	RulesetUnavailable ErrorCode = 2
	// UnexpectedRuleset reports a ruleset that does not match the calculator
	// kind it was passed to.
	UnexpectedRuleset   ErrorCode = 3
	BeatmapFileNotFound ErrorCode = 4
	Failure             ErrorCode = 127
)

func (c ErrorCode) String() string {
	switch c {
	case BufferSizeQuery:
		return "BufferSizeQuery"
	case Success:
		return "Success"
	case ObjectNotFound:
		return "ObjectNotFound"
	case RulesetUnavailable:
		return "RulesetUnavailable"
	case UnexpectedRuleset:
		return "UnexpectedRuleset"
	case BeatmapFileNotFound:
		return "BeatmapFileNotFound"
	case Failure:
		return "Failure"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int8(c))
	}
}

// Beatmap is the output of Beatmap_CreateFromFile and Beatmap_CreateFromText.
type Beatmap struct {
	Handle            Handle
	RulesetID         int32
	ApproachRate      float32
	DrainRate         float32
	OverallDifficulty float32
	CircleSize        float32
	SliderMultiplier  float64
	SliderTickRate    float64
}

// Ruleset is the output of Ruleset_CreateFromId and Ruleset_CreateFromShortName.
type Ruleset struct {
	Handle Handle
	ID     int32
}

// Score is passed by value to the performance calculate entry points.
type Score struct {
	RulesetHandle      Handle
	BeatmapHandle      Handle
	ModsHandle         Handle
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

// Nullable is an optional output field. Both members are always present on
// the wire; Value is meaningful only when HasValue is set.
type Nullable[T any] struct {
	HasValue bool
	Value    T
}

// Get returns the value and whether it is present.
func (n Nullable[T]) Get() (T, bool) {
	if !n.HasValue {
		var zero T
		return zero, false
	}
	return n.Value, true
}

// Some returns a present Nullable.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{HasValue: true, Value: v}
}

type OsuDifficultyAttributes struct {
	StarRating                float64
	MaxCombo                  int32
	AimDifficulty             float64
	AimDifficultySliderCount  float64
	SpeedDifficulty           float64
	SpeedNoteCount            float64
	FlashlightDifficulty      float64
	SliderFactor              float64
	AimDifficultStrainCount   float64
	SpeedDifficultStrainCount float64
	DrainRate                 float64
	HitCircleCount            int32
	SliderCount               int32
	SpinnerCount              int32
}

type TaikoDifficultyAttributes struct {
	StarRating        float64
	MaxCombo          int32
	RhythmDifficulty  float64
	ReadingDifficulty float64
	ColourDifficulty  float64
	StaminaDifficulty float64
	MonoStaminaFactor float64
	RhythmTopStrains  float64
	ColourTopStrains  float64
	StaminaTopStrains float64
}

type CatchDifficultyAttributes struct {
	StarRating float64
	MaxCombo   int32
}

type ManiaDifficultyAttributes struct {
	StarRating float64
	MaxCombo   int32
}

type OsuPerformanceAttributes struct {
	Total              float64
	Aim                float64
	Speed              float64
	Accuracy           float64
	Flashlight         float64
	EffectiveMissCount float64
	SpeedDeviation     Nullable[float64]
}

type TaikoPerformanceAttributes struct {
	Total                 float64
	Difficulty            float64
	Accuracy              float64
	EffectiveMissCount    float64
	EstimatedUnstableRate Nullable[float64]
}

type CatchPerformanceAttributes struct {
	Total float64
}

type ManiaPerformanceAttributes struct {
	Total      float64
	Difficulty float64
}
