//go:build cgo && osunative

package backend

/*
#include "osu_native.h"
*/
import "C"

import "github.com/osu-native/osu-native-go/pkg/osunative/native"

// The converters below copy fixed-layout C structs into their Go mirrors
// field by field. Output structs are never aliased past the call that
// filled them.

func goBeatmap(b C.osu_beatmap) native.Beatmap {
	return native.Beatmap{
		Handle:            native.Handle(b.handle),
		RulesetID:         int32(b.ruleset_id),
		ApproachRate:      float32(b.approach_rate),
		DrainRate:         float32(b.drain_rate),
		OverallDifficulty: float32(b.overall_difficulty),
		CircleSize:        float32(b.circle_size),
		SliderMultiplier:  float64(b.slider_multiplier),
		SliderTickRate:    float64(b.slider_tick_rate),
	}
}

func goNullable(n C.osu_nullable_double) native.Nullable[float64] {
	return native.Nullable[float64]{HasValue: bool(n.discriminant), Value: float64(n.value)}
}

func cScore(s native.Score) C.osu_score {
	return C.osu_score{
		ruleset_handle:        C.osu_handle(s.RulesetHandle),
		beatmap_handle:        C.osu_handle(s.BeatmapHandle),
		mods_handle:           C.osu_handle(s.ModsHandle),
		max_combo:             C.int32_t(s.MaxCombo),
		accuracy:              C.double(s.Accuracy),
		count_miss:            C.int32_t(s.CountMiss),
		count_meh:             C.int32_t(s.CountMeh),
		count_ok:              C.int32_t(s.CountOk),
		count_good:            C.int32_t(s.CountGood),
		count_great:           C.int32_t(s.CountGreat),
		count_perfect:         C.int32_t(s.CountPerfect),
		count_slider_tail_hit: C.int32_t(s.CountSliderTailHit),
		count_large_tick_miss: C.int32_t(s.CountLargeTickMiss),
	}
}

func goOsuDifficulty(a C.osu_osu_difficulty_attributes) native.OsuDifficultyAttributes {
	return native.OsuDifficultyAttributes{
		StarRating:                float64(a.star_rating),
		MaxCombo:                  int32(a.max_combo),
		AimDifficulty:             float64(a.aim_difficulty),
		AimDifficultySliderCount:  float64(a.aim_difficulty_slider_count),
		SpeedDifficulty:           float64(a.speed_difficulty),
		SpeedNoteCount:            float64(a.speed_note_count),
		FlashlightDifficulty:      float64(a.flashlight_difficulty),
		SliderFactor:              float64(a.slider_factor),
		AimDifficultStrainCount:   float64(a.aim_difficult_strain_count),
		SpeedDifficultStrainCount: float64(a.speed_difficult_strain_count),
		DrainRate:                 float64(a.drain_rate),
		HitCircleCount:            int32(a.hit_circle_count),
		SliderCount:               int32(a.slider_count),
		SpinnerCount:              int32(a.spinner_count),
	}
}

func cOsuDifficulty(a native.OsuDifficultyAttributes) C.osu_osu_difficulty_attributes {
	return C.osu_osu_difficulty_attributes{
		star_rating:                  C.double(a.StarRating),
		max_combo:                    C.int32_t(a.MaxCombo),
		aim_difficulty:               C.double(a.AimDifficulty),
		aim_difficulty_slider_count:  C.double(a.AimDifficultySliderCount),
		speed_difficulty:             C.double(a.SpeedDifficulty),
		speed_note_count:             C.double(a.SpeedNoteCount),
		flashlight_difficulty:        C.double(a.FlashlightDifficulty),
		slider_factor:                C.double(a.SliderFactor),
		aim_difficult_strain_count:   C.double(a.AimDifficultStrainCount),
		speed_difficult_strain_count: C.double(a.SpeedDifficultStrainCount),
		drain_rate:                   C.double(a.DrainRate),
		hit_circle_count:             C.int32_t(a.HitCircleCount),
		slider_count:                 C.int32_t(a.SliderCount),
		spinner_count:                C.int32_t(a.SpinnerCount),
	}
}

func goTaikoDifficulty(a C.osu_taiko_difficulty_attributes) native.TaikoDifficultyAttributes {
	return native.TaikoDifficultyAttributes{
		StarRating:        float64(a.star_rating),
		MaxCombo:          int32(a.max_combo),
		RhythmDifficulty:  float64(a.rhythm_difficulty),
		ReadingDifficulty: float64(a.reading_difficulty),
		ColourDifficulty:  float64(a.colour_difficulty),
		StaminaDifficulty: float64(a.stamina_difficulty),
		MonoStaminaFactor: float64(a.mono_stamina_factor),
		RhythmTopStrains:  float64(a.rhythm_top_strains),
		ColourTopStrains:  float64(a.colour_top_strains),
		StaminaTopStrains: float64(a.stamina_top_strains),
	}
}

func cTaikoDifficulty(a native.TaikoDifficultyAttributes) C.osu_taiko_difficulty_attributes {
	return C.osu_taiko_difficulty_attributes{
		star_rating:         C.double(a.StarRating),
		max_combo:           C.int32_t(a.MaxCombo),
		rhythm_difficulty:   C.double(a.RhythmDifficulty),
		reading_difficulty:  C.double(a.ReadingDifficulty),
		colour_difficulty:   C.double(a.ColourDifficulty),
		stamina_difficulty:  C.double(a.StaminaDifficulty),
		mono_stamina_factor: C.double(a.MonoStaminaFactor),
		rhythm_top_strains:  C.double(a.RhythmTopStrains),
		colour_top_strains:  C.double(a.ColourTopStrains),
		stamina_top_strains: C.double(a.StaminaTopStrains),
	}
}
