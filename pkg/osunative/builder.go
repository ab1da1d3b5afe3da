package osunative

// The pipeline is a chain of stage types:
//
//	Builder -> BeatmapStage -> OsuStage | TaikoStage | CatchStage | ManiaStage
//	        -> DifficultyCalculator | *PerformanceBuilder
//
// Each transition consumes the stage it is called on, whether it succeeds or
// not: on success the resources move into the returned stage, on failure
// they are released. A consumed stage reports ErrClosed and its Close is a
// no-op, so `defer stage.Close()` is always safe.

// Builder is the empty pipeline stage.
type Builder struct {
	lib *Library
}

// Builder starts a calculation pipeline.
func (l *Library) Builder() *Builder {
	return &Builder{lib: l}
}

// FromPath loads the beatmap file at path.
func (b *Builder) FromPath(path string) (*BeatmapStage, error) {
	bm, err := b.lib.BeatmapFromPath(path)
	if err != nil {
		return nil, err
	}
	return &BeatmapStage{beatmap: bm}, nil
}

// FromText parses a beatmap held in memory.
func (b *Builder) FromText(text string) (*BeatmapStage, error) {
	bm, err := b.lib.BeatmapFromText(text)
	if err != nil {
		return nil, err
	}
	return &BeatmapStage{beatmap: bm}, nil
}

// BeatmapStage holds a loaded beatmap waiting for a ruleset.
type BeatmapStage struct {
	beatmap *Beatmap
}

// Beatmap exposes the loaded beatmap for reading. It stays owned by the
// stage.
func (s *BeatmapStage) Beatmap() *Beatmap { return s.beatmap }

func (s *BeatmapStage) Osu() (*OsuStage, error) {
	st, err := selectRuleset[Osu, OsuDifficultyAttributes, OsuPerformanceAttributes](s)
	if err != nil {
		return nil, err
	}
	return &OsuStage{st}, nil
}

func (s *BeatmapStage) Taiko() (*TaikoStage, error) {
	st, err := selectRuleset[Taiko, TaikoDifficultyAttributes, TaikoPerformanceAttributes](s)
	if err != nil {
		return nil, err
	}
	return &TaikoStage{st}, nil
}

func (s *BeatmapStage) Catch() (*CatchStage, error) {
	st, err := selectRuleset[Catch, CatchDifficultyAttributes, CatchPerformanceAttributes](s)
	if err != nil {
		return nil, err
	}
	return &CatchStage{st}, nil
}

func (s *BeatmapStage) Mania() (*ManiaStage, error) {
	st, err := selectRuleset[Mania, ManiaDifficultyAttributes, ManiaPerformanceAttributes](s)
	if err != nil {
		return nil, err
	}
	return &ManiaStage{st}, nil
}

// Close releases the beatmap unless a transition already consumed it.
func (s *BeatmapStage) Close() error {
	if s == nil || s.beatmap == nil {
		return nil
	}
	bm := s.beatmap
	s.beatmap = nil
	return bm.Close()
}

func selectRuleset[M Mode[D, P], D, P any](s *BeatmapStage) (rulesetStage[M, D, P], error) {
	var mode M
	op := "builder." + mode.Kind().ShortName()
	if s == nil || s.beatmap == nil {
		return rulesetStage[M, D, P]{}, newError(KindClosed, op, "stage already consumed")
	}
	bm := s.beatmap
	s.beatmap = nil

	ruleset, err := bm.obj.lib.NewRuleset(mode.Kind())
	if err != nil {
		bm.Close()
		return rulesetStage[M, D, P]{}, err
	}
	return rulesetStage[M, D, P]{beatmap: bm, ruleset: ruleset}, nil
}

// rulesetStage is the shared state behind OsuStage, TaikoStage, CatchStage
// and ManiaStage.
type rulesetStage[M Mode[D, P], D, P any] struct {
	beatmap *Beatmap
	ruleset *Ruleset
	mods    GameMods
}

func (s *rulesetStage[M, D, P]) consume(op string) (rulesetStage[M, D, P], error) {
	if s.beatmap == nil {
		return rulesetStage[M, D, P]{}, newError(KindClosed, op, "stage already consumed")
	}
	st := *s
	*s = rulesetStage[M, D, P]{}
	return st, nil
}

func (s *rulesetStage[M, D, P]) op(name string) string {
	var mode M
	return "builder." + mode.Kind().ShortName() + "." + name
}

func (s *rulesetStage[M, D, P]) withMods(src ModSource) (rulesetStage[M, D, P], error) {
	st, err := s.consume(s.op("mods"))
	if err != nil {
		return st, err
	}
	mods, err := toGameMods(src)
	if err != nil {
		st.release()
		return rulesetStage[M, D, P]{}, err
	}
	st.mods = mods
	return st, nil
}

// Kind returns the selected ruleset kind.
func (s *rulesetStage[M, D, P]) Kind() RulesetKind {
	var mode M
	return mode.Kind()
}

// Beatmap exposes the loaded beatmap for reading. It stays owned by the
// stage.
func (s *rulesetStage[M, D, P]) Beatmap() *Beatmap { return s.beatmap }

// SelectedMods returns a copy of the mods chosen so far.
func (s *rulesetStage[M, D, P]) SelectedMods() GameMods { return s.mods.Clone() }

// Difficulty creates the difficulty calculator for the selected ruleset and
// mods. The calculator owns the ruleset; the beatmap is released once the
// calculator exists.
func (s *rulesetStage[M, D, P]) Difficulty() (*DifficultyCalculator[M, D, P], error) {
	st, err := s.consume(s.op("difficulty"))
	if err != nil {
		return nil, err
	}
	defer st.beatmap.Close()

	calc, err := newDifficultyCalculator[M, D, P](st.ruleset, st.beatmap)
	if err != nil {
		st.ruleset.Close()
		return nil, err
	}
	calc.mods = st.mods
	return calc, nil
}

// performance runs the difficulty calculation the performance builder starts
// from, then hands beatmap, ruleset and mods to the builder.
func (s *rulesetStage[M, D, P]) performance() (performanceBuilder[M, D, P], error) {
	var mode M
	st, err := s.consume(s.op("performance"))
	if err != nil {
		return performanceBuilder[M, D, P]{}, err
	}

	calc, err := newDifficultyCalculator[M, D, P](st.ruleset, st.beatmap)
	if err != nil {
		st.release()
		return performanceBuilder[M, D, P]{}, err
	}
	calc.mods = st.mods
	attrs, err := calc.Calculate()
	if err != nil {
		calc.Close()
		st.beatmap.Close()
		return performanceBuilder[M, D, P]{}, err
	}

	score := DefaultScoreStatistics()
	score.MaxCombo = mode.maxCombo(attrs)
	return performanceBuilder[M, D, P]{
		beatmap:    st.beatmap,
		ruleset:    calc.intoRuleset(),
		mods:       st.mods,
		difficulty: attrs,
		score:      score,
	}, nil
}

func (s *rulesetStage[M, D, P]) release() {
	s.beatmap.Close()
	s.ruleset.Close()
	*s = rulesetStage[M, D, P]{}
}

// Close releases the beatmap and ruleset unless a transition already
// consumed them.
func (s *rulesetStage[M, D, P]) Close() error {
	if s != nil {
		s.release()
	}
	return nil
}

// OsuStage is the pipeline with the osu! ruleset selected.
type OsuStage struct {
	rulesetStage[Osu, OsuDifficultyAttributes, OsuPerformanceAttributes]
}

// Mods moves the stage into a new one configured with src.
func (s *OsuStage) Mods(src ModSource) (*OsuStage, error) {
	st, err := s.withMods(src)
	if err != nil {
		return nil, err
	}
	return &OsuStage{st}, nil
}

// Performance computes difficulty attributes and returns a builder for the
// play to score, with max combo preset from the attributes.
func (s *OsuStage) Performance() (*OsuPerformanceBuilder, error) {
	b, err := s.performance()
	if err != nil {
		return nil, err
	}
	return &OsuPerformanceBuilder{b}, nil
}

// TaikoStage is the pipeline with the osu!taiko ruleset selected.
type TaikoStage struct {
	rulesetStage[Taiko, TaikoDifficultyAttributes, TaikoPerformanceAttributes]
}

func (s *TaikoStage) Mods(src ModSource) (*TaikoStage, error) {
	st, err := s.withMods(src)
	if err != nil {
		return nil, err
	}
	return &TaikoStage{st}, nil
}

func (s *TaikoStage) Performance() (*TaikoPerformanceBuilder, error) {
	b, err := s.performance()
	if err != nil {
		return nil, err
	}
	return &TaikoPerformanceBuilder{b}, nil
}

// CatchStage is the pipeline with the osu!catch ruleset selected.
type CatchStage struct {
	rulesetStage[Catch, CatchDifficultyAttributes, CatchPerformanceAttributes]
}

func (s *CatchStage) Mods(src ModSource) (*CatchStage, error) {
	st, err := s.withMods(src)
	if err != nil {
		return nil, err
	}
	return &CatchStage{st}, nil
}

func (s *CatchStage) Performance() (*CatchPerformanceBuilder, error) {
	b, err := s.performance()
	if err != nil {
		return nil, err
	}
	return &CatchPerformanceBuilder{b}, nil
}

// ManiaStage is the pipeline with the osu!mania ruleset selected.
type ManiaStage struct {
	rulesetStage[Mania, ManiaDifficultyAttributes, ManiaPerformanceAttributes]
}

func (s *ManiaStage) Mods(src ModSource) (*ManiaStage, error) {
	st, err := s.withMods(src)
	if err != nil {
		return nil, err
	}
	return &ManiaStage{st}, nil
}

func (s *ManiaStage) Performance() (*ManiaPerformanceBuilder, error) {
	b, err := s.performance()
	if err != nil {
		return nil, err
	}
	return &ManiaPerformanceBuilder{b}, nil
}
