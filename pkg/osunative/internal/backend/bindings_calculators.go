//go:build cgo && osunative

package backend

/*
#include "osu_native.h"
*/
import "C"

import "github.com/osu-native/osu-native-go/pkg/osunative/native"

type osuDifficulty struct{}

func (osuDifficulty) Create(ruleset, beatmap native.Handle, out *native.Handle) native.ErrorCode {
	var h C.osu_handle
	rc := status(C.OsuDifficultyCalculator_Create(C.osu_handle(ruleset), C.osu_handle(beatmap), &h))
	if rc == native.Success {
		*out = native.Handle(h)
	}
	return rc
}

func (osuDifficulty) CalculateMods(calculator, ruleset, mods native.Handle, out *native.OsuDifficultyAttributes) native.ErrorCode {
	var a C.osu_osu_difficulty_attributes
	rc := status(C.OsuDifficultyCalculator_CalculateMods(C.osu_handle(calculator), C.osu_handle(ruleset), C.osu_handle(mods), &a))
	if rc == native.Success {
		*out = goOsuDifficulty(a)
	}
	return rc
}

func (osuDifficulty) Destroy(calculator native.Handle) native.ErrorCode {
	C.OsuDifficultyCalculator_Destroy(C.osu_handle(calculator))
	return native.Success
}

type taikoDifficulty struct{}

func (taikoDifficulty) Create(ruleset, beatmap native.Handle, out *native.Handle) native.ErrorCode {
	var h C.osu_handle
	rc := status(C.TaikoDifficultyCalculator_Create(C.osu_handle(ruleset), C.osu_handle(beatmap), &h))
	if rc == native.Success {
		*out = native.Handle(h)
	}
	return rc
}

func (taikoDifficulty) CalculateMods(calculator, ruleset, mods native.Handle, out *native.TaikoDifficultyAttributes) native.ErrorCode {
	var a C.osu_taiko_difficulty_attributes
	rc := status(C.TaikoDifficultyCalculator_CalculateMods(C.osu_handle(calculator), C.osu_handle(ruleset), C.osu_handle(mods), &a))
	if rc == native.Success {
		*out = goTaikoDifficulty(a)
	}
	return rc
}

func (taikoDifficulty) Destroy(calculator native.Handle) native.ErrorCode {
	C.TaikoDifficultyCalculator_Destroy(C.osu_handle(calculator))
	return native.Success
}

type catchDifficulty struct{}

func (catchDifficulty) Create(ruleset, beatmap native.Handle, out *native.Handle) native.ErrorCode {
	var h C.osu_handle
	rc := status(C.CatchDifficultyCalculator_Create(C.osu_handle(ruleset), C.osu_handle(beatmap), &h))
	if rc == native.Success {
		*out = native.Handle(h)
	}
	return rc
}

func (catchDifficulty) CalculateMods(calculator, ruleset, mods native.Handle, out *native.CatchDifficultyAttributes) native.ErrorCode {
	var a C.osu_catch_difficulty_attributes
	rc := status(C.CatchDifficultyCalculator_CalculateMods(C.osu_handle(calculator), C.osu_handle(ruleset), C.osu_handle(mods), &a))
	if rc == native.Success {
		*out = native.CatchDifficultyAttributes{StarRating: float64(a.star_rating), MaxCombo: int32(a.max_combo)}
	}
	return rc
}

func (catchDifficulty) Destroy(calculator native.Handle) native.ErrorCode {
	C.CatchDifficultyCalculator_Destroy(C.osu_handle(calculator))
	return native.Success
}

type maniaDifficulty struct{}

func (maniaDifficulty) Create(ruleset, beatmap native.Handle, out *native.Handle) native.ErrorCode {
	var h C.osu_handle
	rc := status(C.ManiaDifficultyCalculator_Create(C.osu_handle(ruleset), C.osu_handle(beatmap), &h))
	if rc == native.Success {
		*out = native.Handle(h)
	}
	return rc
}

func (maniaDifficulty) CalculateMods(calculator, ruleset, mods native.Handle, out *native.ManiaDifficultyAttributes) native.ErrorCode {
	var a C.osu_mania_difficulty_attributes
	rc := status(C.ManiaDifficultyCalculator_CalculateMods(C.osu_handle(calculator), C.osu_handle(ruleset), C.osu_handle(mods), &a))
	if rc == native.Success {
		*out = native.ManiaDifficultyAttributes{StarRating: float64(a.star_rating), MaxCombo: int32(a.max_combo)}
	}
	return rc
}

func (maniaDifficulty) Destroy(calculator native.Handle) native.ErrorCode {
	C.ManiaDifficultyCalculator_Destroy(C.osu_handle(calculator))
	return native.Success
}

type osuPerformance struct{}

func (osuPerformance) Create(out *native.Handle) native.ErrorCode {
	var h C.osu_handle
	rc := status(C.OsuPerformanceCalculator_Create(&h))
	if rc == native.Success {
		*out = native.Handle(h)
	}
	return rc
}

func (osuPerformance) Calculate(calculator native.Handle, score native.Score, d native.OsuDifficultyAttributes, out *native.OsuPerformanceAttributes) native.ErrorCode {
	var a C.osu_osu_performance_attributes
	rc := status(C.OsuPerformanceCalculator_Calculate(C.osu_handle(calculator), cScore(score), cOsuDifficulty(d), &a))
	if rc == native.Success {
		*out = native.OsuPerformanceAttributes{
			Total:              float64(a.total),
			Aim:                float64(a.aim),
			Speed:              float64(a.speed),
			Accuracy:           float64(a.accuracy),
			Flashlight:         float64(a.flashlight),
			EffectiveMissCount: float64(a.effective_miss_count),
			SpeedDeviation:     goNullable(a.speed_deviation),
		}
	}
	return rc
}

func (osuPerformance) Destroy(calculator native.Handle) native.ErrorCode {
	C.OsuPerformanceCalculator_Destroy(C.osu_handle(calculator))
	return native.Success
}

type taikoPerformance struct{}

func (taikoPerformance) Create(out *native.Handle) native.ErrorCode {
	var h C.osu_handle
	rc := status(C.TaikoPerformanceCalculator_Create(&h))
	if rc == native.Success {
		*out = native.Handle(h)
	}
	return rc
}

func (taikoPerformance) Calculate(calculator native.Handle, score native.Score, d native.TaikoDifficultyAttributes, out *native.TaikoPerformanceAttributes) native.ErrorCode {
	var a C.osu_taiko_performance_attributes
	rc := status(C.TaikoPerformanceCalculator_Calculate(C.osu_handle(calculator), cScore(score), cTaikoDifficulty(d), &a))
	if rc == native.Success {
		*out = native.TaikoPerformanceAttributes{
			Total:                 float64(a.total),
			Difficulty:            float64(a.difficulty),
			Accuracy:              float64(a.accuracy),
			EffectiveMissCount:    float64(a.effective_miss_count),
			EstimatedUnstableRate: goNullable(a.estimated_unstable_rate),
		}
	}
	return rc
}

func (taikoPerformance) Destroy(calculator native.Handle) native.ErrorCode {
	C.TaikoPerformanceCalculator_Destroy(C.osu_handle(calculator))
	return native.Success
}

type catchPerformance struct{}

func (catchPerformance) Create(out *native.Handle) native.ErrorCode {
	var h C.osu_handle
	rc := status(C.CatchPerformanceCalculator_Create(&h))
	if rc == native.Success {
		*out = native.Handle(h)
	}
	return rc
}

func (catchPerformance) Calculate(calculator native.Handle, score native.Score, d native.CatchDifficultyAttributes, out *native.CatchPerformanceAttributes) native.ErrorCode {
	var a C.osu_catch_performance_attributes
	cd := C.osu_catch_difficulty_attributes{star_rating: C.double(d.StarRating), max_combo: C.int32_t(d.MaxCombo)}
	rc := status(C.CatchPerformanceCalculator_Calculate(C.osu_handle(calculator), cScore(score), cd, &a))
	if rc == native.Success {
		*out = native.CatchPerformanceAttributes{Total: float64(a.total)}
	}
	return rc
}

func (catchPerformance) Destroy(calculator native.Handle) native.ErrorCode {
	C.CatchPerformanceCalculator_Destroy(C.osu_handle(calculator))
	return native.Success
}

type maniaPerformance struct{}

func (maniaPerformance) Create(out *native.Handle) native.ErrorCode {
	var h C.osu_handle
	rc := status(C.ManiaPerformanceCalculator_Create(&h))
	if rc == native.Success {
		*out = native.Handle(h)
	}
	return rc
}

func (maniaPerformance) Calculate(calculator native.Handle, score native.Score, d native.ManiaDifficultyAttributes, out *native.ManiaPerformanceAttributes) native.ErrorCode {
	var a C.osu_mania_performance_attributes
	cd := C.osu_mania_difficulty_attributes{star_rating: C.double(d.StarRating), max_combo: C.int32_t(d.MaxCombo)}
	rc := status(C.ManiaPerformanceCalculator_Calculate(C.osu_handle(calculator), cScore(score), cd, &a))
	if rc == native.Success {
		*out = native.ManiaPerformanceAttributes{Total: float64(a.total), Difficulty: float64(a.difficulty)}
	}
	return rc
}

func (maniaPerformance) Destroy(calculator native.Handle) native.ErrorCode {
	C.ManiaPerformanceCalculator_Destroy(C.osu_handle(calculator))
	return native.Success
}
