package native

// StringAccessor is the shape of every entry point that returns text through
// a caller-allocated buffer. A nil buf is passed to the C side as a null
// pointer; size is both the buffer capacity in and the required length out.
type StringAccessor func(h Handle, buf []byte, size *int32) ErrorCode

// DifficultyTable groups the difficulty calculator entry points of one
// ruleset. A is the fixed-layout attribute struct the calculate call fills.
type DifficultyTable[A any] interface {
	Create(ruleset, beatmap Handle, out *Handle) ErrorCode
	CalculateMods(calculator, ruleset, mods Handle, out *A) ErrorCode
	Destroy(calculator Handle) ErrorCode
}

// PerformanceTable groups the performance calculator entry points of one
// ruleset. D is the difficulty attribute struct consumed by the call and P
// the performance attribute struct it fills.
type PerformanceTable[D, P any] interface {
	Create(out *Handle) ErrorCode
	Calculate(calculator Handle, score Score, difficulty D, out *P) ErrorCode
	Destroy(calculator Handle) ErrorCode
}

// Library is the entry-point table of the native calculation library.
//
// Create calls write the new handle (or handle-bearing struct) into out and
// report Success; on any other status nothing was created and out must be
// ignored. Every handle must be passed to its matching Destroy exactly once.
// Strings are passed in as Go strings; implementations own the conversion
// to NUL-terminated C strings. Callers reject strings with interior NUL bytes
// before they get here.
type Library interface {
	ModCreate(acronym string, out *Handle) ErrorCode
	ModSetSetting(mod Handle, key string, value float64) ErrorCode
	ModDestroy(mod Handle) ErrorCode

	ModsCollectionCreate(out *Handle) ErrorCode
	ModsCollectionAdd(collection, mod Handle) ErrorCode
	ModsCollectionDestroy(collection Handle) ErrorCode

	RulesetCreateFromID(id int32, out *Ruleset) ErrorCode
	RulesetCreateFromShortName(shortName string, out *Ruleset) ErrorCode
	RulesetGetShortName(h Handle, buf []byte, size *int32) ErrorCode
	RulesetDestroy(h Handle) ErrorCode

	BeatmapCreateFromFile(path string, out *Beatmap) ErrorCode
	BeatmapCreateFromText(text string, out *Beatmap) ErrorCode
	BeatmapGetTitle(h Handle, buf []byte, size *int32) ErrorCode
	BeatmapGetArtist(h Handle, buf []byte, size *int32) ErrorCode
	BeatmapGetVersion(h Handle, buf []byte, size *int32) ErrorCode
	BeatmapDestroy(h Handle) ErrorCode

	OsuDifficulty() DifficultyTable[OsuDifficultyAttributes]
	TaikoDifficulty() DifficultyTable[TaikoDifficultyAttributes]
	CatchDifficulty() DifficultyTable[CatchDifficultyAttributes]
	ManiaDifficulty() DifficultyTable[ManiaDifficultyAttributes]

	OsuPerformance() PerformanceTable[OsuDifficultyAttributes, OsuPerformanceAttributes]
	TaikoPerformance() PerformanceTable[TaikoDifficultyAttributes, TaikoPerformanceAttributes]
	CatchPerformance() PerformanceTable[CatchDifficultyAttributes, CatchPerformanceAttributes]
	ManiaPerformance() PerformanceTable[ManiaDifficultyAttributes, ManiaPerformanceAttributes]
}
