package osunative

import "github.com/osu-native/osu-native-go/pkg/osunative/native"

// Attribute structs are copied out of the native output struct right after a
// successful calculate call. They own no native resources.
type (
	OsuDifficultyAttributes   = native.OsuDifficultyAttributes
	TaikoDifficultyAttributes = native.TaikoDifficultyAttributes
	CatchDifficultyAttributes = native.CatchDifficultyAttributes
	ManiaDifficultyAttributes = native.ManiaDifficultyAttributes

	OsuPerformanceAttributes   = native.OsuPerformanceAttributes
	TaikoPerformanceAttributes = native.TaikoPerformanceAttributes
	CatchPerformanceAttributes = native.CatchPerformanceAttributes
	ManiaPerformanceAttributes = native.ManiaPerformanceAttributes
)

// Nullable is an optional attribute such as OsuPerformanceAttributes.SpeedDeviation.
type Nullable[T any] = native.Nullable[T]
