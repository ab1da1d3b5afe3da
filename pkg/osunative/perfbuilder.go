package osunative

// performanceBuilder is the shared state behind the per-ruleset performance
// builders. It owns the beatmap, ruleset and mods until Calculate or Close.
type performanceBuilder[M Mode[D, P], D, P any] struct {
	beatmap    *Beatmap
	ruleset    *Ruleset
	mods       GameMods
	difficulty D
	score      ScoreStatistics
}

// DifficultyAttributes returns the attributes computed when the builder was
// created.
func (b *performanceBuilder[M, D, P]) DifficultyAttributes() D { return b.difficulty }

// Statistics returns the play as configured so far.
func (b *performanceBuilder[M, D, P]) Statistics() ScoreStatistics { return b.score }

// Calculate scores the configured play and releases everything the builder
// holds. The builder cannot be used afterwards.
func (b *performanceBuilder[M, D, P]) Calculate() (P, error) {
	var (
		mode M
		out  P
	)
	op := "builder." + mode.Kind().ShortName() + ".calculate"
	if b.beatmap == nil {
		return out, newError(KindClosed, op, "builder already consumed")
	}
	st := *b
	*b = performanceBuilder[M, D, P]{}
	defer st.release()

	calc, err := newPerformanceCalculator[M, D, P](st.ruleset.obj.lib)
	if err != nil {
		return out, err
	}
	defer calc.Close()

	return calc.Calculate(st.ruleset, st.beatmap, st.mods, st.score, st.difficulty)
}

func (b *performanceBuilder[M, D, P]) release() {
	b.beatmap.Close()
	b.ruleset.Close()
	*b = performanceBuilder[M, D, P]{}
}

// Close releases the builder without calculating. It is a no-op after
// Calculate.
func (b *performanceBuilder[M, D, P]) Close() error {
	if b != nil {
		b.release()
	}
	return nil
}

// OsuPerformanceBuilder configures an osu! play.
type OsuPerformanceBuilder struct {
	performanceBuilder[Osu, OsuDifficultyAttributes, OsuPerformanceAttributes]
}

// Score replaces all statistics at once.
func (b *OsuPerformanceBuilder) Score(s ScoreStatistics) *OsuPerformanceBuilder {
	b.score = s
	return b
}

func (b *OsuPerformanceBuilder) MaxCombo(n int32) *OsuPerformanceBuilder {
	b.score.MaxCombo = n
	return b
}

func (b *OsuPerformanceBuilder) Misses(n int32) *OsuPerformanceBuilder {
	b.score.CountMiss = n
	return b
}

// Accuracy sets accuracy as a fraction in [0, 1].
func (b *OsuPerformanceBuilder) Accuracy(acc float64) *OsuPerformanceBuilder {
	b.score.Accuracy = acc
	return b
}

func (b *OsuPerformanceBuilder) N300(n int32) *OsuPerformanceBuilder {
	b.score.CountGreat = n
	return b
}

func (b *OsuPerformanceBuilder) N100(n int32) *OsuPerformanceBuilder {
	b.score.CountOk = n
	return b
}

func (b *OsuPerformanceBuilder) N50(n int32) *OsuPerformanceBuilder {
	b.score.CountMeh = n
	return b
}

// SliderTickHits sets the number of slider tails hit.
func (b *OsuPerformanceBuilder) SliderTickHits(n int32) *OsuPerformanceBuilder {
	b.score.CountSliderTailHit = n
	return b
}

// SliderTickMisses derives slider tail hits from the beatmap's slider count.
// More misses than sliders leaves zero tail hits.
func (b *OsuPerformanceBuilder) SliderTickMisses(n int32) *OsuPerformanceBuilder {
	b.score.CountSliderTailHit = max(b.difficulty.SliderCount-n, 0)
	return b
}

func (b *OsuPerformanceBuilder) LargeTickMisses(n int32) *OsuPerformanceBuilder {
	b.score.CountLargeTickMiss = n
	return b
}

// TaikoPerformanceBuilder configures an osu!taiko play.
type TaikoPerformanceBuilder struct {
	performanceBuilder[Taiko, TaikoDifficultyAttributes, TaikoPerformanceAttributes]
}

func (b *TaikoPerformanceBuilder) Score(s ScoreStatistics) *TaikoPerformanceBuilder {
	b.score = s
	return b
}

func (b *TaikoPerformanceBuilder) MaxCombo(n int32) *TaikoPerformanceBuilder {
	b.score.MaxCombo = n
	return b
}

func (b *TaikoPerformanceBuilder) Misses(n int32) *TaikoPerformanceBuilder {
	b.score.CountMiss = n
	return b
}

func (b *TaikoPerformanceBuilder) Accuracy(acc float64) *TaikoPerformanceBuilder {
	b.score.Accuracy = acc
	return b
}

func (b *TaikoPerformanceBuilder) N300(n int32) *TaikoPerformanceBuilder {
	b.score.CountGreat = n
	return b
}

func (b *TaikoPerformanceBuilder) N100(n int32) *TaikoPerformanceBuilder {
	b.score.CountOk = n
	return b
}

// CatchPerformanceBuilder configures an osu!catch play. Catch has a single
// hit counter.
type CatchPerformanceBuilder struct {
	performanceBuilder[Catch, CatchDifficultyAttributes, CatchPerformanceAttributes]
}

func (b *CatchPerformanceBuilder) Score(s ScoreStatistics) *CatchPerformanceBuilder {
	b.score = s
	return b
}

func (b *CatchPerformanceBuilder) MaxCombo(n int32) *CatchPerformanceBuilder {
	b.score.MaxCombo = n
	return b
}

func (b *CatchPerformanceBuilder) Misses(n int32) *CatchPerformanceBuilder {
	b.score.CountMiss = n
	return b
}

func (b *CatchPerformanceBuilder) Accuracy(acc float64) *CatchPerformanceBuilder {
	b.score.Accuracy = acc
	return b
}

func (b *CatchPerformanceBuilder) Hits(n int32) *CatchPerformanceBuilder {
	b.score.CountGreat = n
	return b
}

// ManiaPerformanceBuilder configures an osu!mania play.
type ManiaPerformanceBuilder struct {
	performanceBuilder[Mania, ManiaDifficultyAttributes, ManiaPerformanceAttributes]
}

func (b *ManiaPerformanceBuilder) Score(s ScoreStatistics) *ManiaPerformanceBuilder {
	b.score = s
	return b
}

func (b *ManiaPerformanceBuilder) MaxCombo(n int32) *ManiaPerformanceBuilder {
	b.score.MaxCombo = n
	return b
}

func (b *ManiaPerformanceBuilder) Misses(n int32) *ManiaPerformanceBuilder {
	b.score.CountMiss = n
	return b
}

func (b *ManiaPerformanceBuilder) Accuracy(acc float64) *ManiaPerformanceBuilder {
	b.score.Accuracy = acc
	return b
}

func (b *ManiaPerformanceBuilder) N320(n int32) *ManiaPerformanceBuilder {
	b.score.CountPerfect = n
	return b
}

func (b *ManiaPerformanceBuilder) N300(n int32) *ManiaPerformanceBuilder {
	b.score.CountGreat = n
	return b
}

func (b *ManiaPerformanceBuilder) N200(n int32) *ManiaPerformanceBuilder {
	b.score.CountGood = n
	return b
}

func (b *ManiaPerformanceBuilder) N100(n int32) *ManiaPerformanceBuilder {
	b.score.CountOk = n
	return b
}

func (b *ManiaPerformanceBuilder) N50(n int32) *ManiaPerformanceBuilder {
	b.score.CountMeh = n
	return b
}
