package nativetest

import (
	"math"

	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

type modSet []modData

func (m modSet) has(acronyms ...string) (modData, bool) {
	for _, mod := range m {
		for _, a := range acronyms {
			if mod.acronym == a {
				return mod, true
			}
		}
	}
	return modData{}, false
}

// clockRate is the playback speed the mods imply.
func (m modSet) clockRate() float64 {
	if mod, ok := m.has("DT", "NC"); ok {
		if v, ok := mod.settings["speed_change"]; ok {
			return v
		}
		return 1.5
	}
	if mod, ok := m.has("HT", "DC"); ok {
		if v, ok := mod.settings["speed_change"]; ok {
			return v
		}
		return 0.75
	}
	return 1
}

// scale is the difficulty setting multiplier of HR and EZ.
func (m modSet) scale() float64 {
	if _, ok := m.has("HR"); ok {
		return 1.4
	}
	if _, ok := m.has("EZ"); ok {
		return 0.5
	}
	return 1
}

var knownAcronyms = map[string]bool{
	"NF": true, "EZ": true, "TD": true, "HD": true, "HR": true, "SD": true,
	"DT": true, "RX": true, "HT": true, "NC": true, "FL": true, "AT": true,
	"SO": true, "AP": true, "PF": true, "FI": true, "RD": true, "CN": true,
	"TP": true, "CO": true, "MR": true, "DC": true, "DA": true, "CL": true,
	"SV2": true, "1K": true, "2K": true, "3K": true, "4K": true, "5K": true,
	"6K": true, "7K": true, "8K": true, "9K": true,
}

func knownAcronym(a string) bool { return knownAcronyms[a] }

func capTen(v float64) float64 { return math.Min(v, 10) }

// baseStars is a monotonic stand-in for a real star rating.
func baseStars(b *beatmapData, m modSet) float64 {
	s := m.scale()
	od := capTen(float64(b.overallDifficulty) * s)
	ar := capTen(float64(b.approachRate) * s)
	cs := capTen(float64(b.circleSize) * s)
	density := math.Log1p(float64(b.objects())) / 4
	return (0.25*od + 0.2*ar + 0.1*cs + density) * m.clockRate()
}

func osuDifficulty(b *beatmapData, m modSet) native.OsuDifficultyAttributes {
	stars := baseStars(b, m)
	flashlight := 0.0
	if _, ok := m.has("FL"); ok {
		flashlight = stars * 0.3
	}
	return native.OsuDifficultyAttributes{
		StarRating:                stars,
		MaxCombo:                  b.maxCombo(),
		AimDifficulty:             stars * 0.55,
		AimDifficultySliderCount:  float64(b.sliders) * 0.5,
		SpeedDifficulty:           stars * 0.45,
		SpeedNoteCount:            float64(b.circles) * 0.8,
		FlashlightDifficulty:      flashlight,
		SliderFactor:              0.97,
		AimDifficultStrainCount:   float64(b.objects()) * 0.1,
		SpeedDifficultStrainCount: float64(b.objects()) * 0.08,
		DrainRate:                 float64(b.drainRate),
		HitCircleCount:            b.circles,
		SliderCount:               b.sliders,
		SpinnerCount:              b.spinners,
	}
}

func taikoDifficulty(b *beatmapData, m modSet) native.TaikoDifficultyAttributes {
	stars := baseStars(b, m) * 0.8
	return native.TaikoDifficultyAttributes{
		StarRating:        stars,
		MaxCombo:          b.circles,
		RhythmDifficulty:  stars * 0.2,
		ReadingDifficulty: stars * 0.1,
		ColourDifficulty:  stars * 0.3,
		StaminaDifficulty: stars * 0.4,
		MonoStaminaFactor: 0.5,
		RhythmTopStrains:  stars * 2,
		ColourTopStrains:  stars * 3,
		StaminaTopStrains: stars * 4,
	}
}

func catchDifficulty(b *beatmapData, m modSet) native.CatchDifficultyAttributes {
	return native.CatchDifficultyAttributes{
		StarRating: baseStars(b, m) * 0.9,
		MaxCombo:   b.circles + 2*b.sliders,
	}
}

func maniaDifficulty(b *beatmapData, m modSet) native.ManiaDifficultyAttributes {
	return native.ManiaDifficultyAttributes{
		StarRating: baseStars(b, m) * 0.7,
		MaxCombo:   b.objects(),
	}
}

// performanceFactor shrinks with lost accuracy, combo and misses.
func performanceFactor(s native.Score, maxCombo int32) float64 {
	combo := 1.0
	if maxCombo > 0 {
		combo = math.Min(1, float64(s.MaxCombo)/float64(maxCombo))
	}
	acc := math.Max(0, math.Min(1, s.Accuracy))
	return math.Pow(acc, 4) * math.Pow(combo, 0.8) * math.Pow(0.97, float64(s.CountMiss))
}

func osuPerformance(s native.Score, d native.OsuDifficultyAttributes, _ modSet) native.OsuPerformanceAttributes {
	f := performanceFactor(s, d.MaxCombo)
	aim := math.Pow(d.AimDifficulty, 3) * 5 * f
	speed := math.Pow(d.SpeedDifficulty, 3) * 5 * f
	acc := math.Pow(1.52, d.StarRating) * math.Pow(math.Max(0, s.Accuracy), 24) * 2
	fl := math.Pow(d.FlashlightDifficulty, 2) * 25 * f
	out := native.OsuPerformanceAttributes{
		Total:              (aim + speed + acc + fl) * 1.15,
		Aim:                aim,
		Speed:              speed,
		Accuracy:           acc,
		Flashlight:         fl,
		EffectiveMissCount: float64(s.CountMiss),
	}
	if s.CountGreat > 0 {
		out.SpeedDeviation = native.Some(10 + 20*(1-s.Accuracy))
	}
	return out
}

func taikoPerformance(s native.Score, d native.TaikoDifficultyAttributes, _ modSet) native.TaikoPerformanceAttributes {
	f := performanceFactor(s, d.MaxCombo)
	diff := math.Pow(d.StarRating, 2.5) * 8 * f
	acc := math.Pow(math.Max(0, s.Accuracy), 15) * 60
	out := native.TaikoPerformanceAttributes{
		Total:              (diff + acc) * 1.1,
		Difficulty:         diff,
		Accuracy:           acc,
		EffectiveMissCount: float64(s.CountMiss),
	}
	if s.Accuracy > 0 {
		out.EstimatedUnstableRate = native.Some(80 + 200*(1-s.Accuracy))
	}
	return out
}

func catchPerformance(s native.Score, d native.CatchDifficultyAttributes, _ modSet) native.CatchPerformanceAttributes {
	return native.CatchPerformanceAttributes{
		Total: math.Pow(d.StarRating, 2) * 12 * performanceFactor(s, d.MaxCombo),
	}
}

func maniaPerformance(s native.Score, d native.ManiaDifficultyAttributes, _ modSet) native.ManiaPerformanceAttributes {
	diff := math.Pow(d.StarRating, 2.2) * 9 * performanceFactor(s, d.MaxCombo)
	return native.ManiaPerformanceAttributes{Total: diff * 1.05, Difficulty: diff}
}
