package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/osu-native/osu-native-go/internal/store"
	"github.com/osu-native/osu-native-go/pkg/osunative"
	"github.com/osu-native/osu-native-go/pkg/osunative/logging"
)

// opener binds a Library. main passes osunative.Open; tests pass a fake.
type opener func(osunative.Config) (*osunative.Library, error)

type app struct {
	open opener

	configPath string
	ruleset    string
	mods       string
	cachePath  string
	logLevel   string
	strict     bool

	logger *slog.Logger
}

func newRootCmd(open opener) *cobra.Command {
	a := &app{open: open}

	root := &cobra.Command{
		Use:          "osunative-go",
		Short:        "Star rating and performance points through osu-native",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", defaultConfigPath, "YAML config file")
	flags.StringVarP(&a.ruleset, "ruleset", "r", "", "ruleset short name or id (default: the beatmap's own)")
	flags.StringVarP(&a.mods, "mods", "m", "", `mods as acronyms ("HDDT"), legacy bits ("72") or lazer JSON`)
	flags.StringVar(&a.cachePath, "cache", "", "SQLite difficulty cache path")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	flags.BoolVar(&a.strict, "strict-mods", false, "fail on mod settings the native library cannot take")

	root.AddCommand(a.infoCmd(), a.difficultyCmd(), a.performanceCmd())
	return root
}

// configure merges the config file under the flags that were set.
func (a *app) configure(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfg, err := loadConfig(a.configPath, flags.Changed("config"))
	if err != nil {
		return err
	}
	if !flags.Changed("ruleset") {
		a.ruleset = cfg.Ruleset
	}
	if !flags.Changed("mods") {
		a.mods = cfg.Mods
	}
	if !flags.Changed("cache") {
		a.cachePath = cfg.CachePath
	}
	if !flags.Changed("log-level") {
		a.logLevel = cfg.LogLevel
	}
	level, err := parseLevel(a.logLevel)
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) library() (*osunative.Library, error) {
	return a.open(osunative.Config{
		Logger:            logging.New(a.logger),
		StrictModSettings: a.strict,
	})
}

// rulesetFor resolves --ruleset, falling back to the beatmap's own ruleset.
func (a *app) rulesetFor(bm *osunative.Beatmap) (osunative.RulesetKind, error) {
	if a.ruleset == "" {
		return osunative.RulesetKindFromID(bm.RulesetID())
	}
	if k, err := osunative.RulesetKindFromShortName(a.ruleset); err == nil {
		return k, nil
	}
	var id int32
	if _, err := fmt.Sscan(a.ruleset, &id); err == nil {
		return osunative.RulesetKindFromID(id)
	}
	return 0, fmt.Errorf("unknown ruleset %q", a.ruleset)
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [beatmap]",
		Short: "Print versions and, given a beatmap, its metadata",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := map[string]any{"build": osunative.Build()}
			if len(args) == 1 {
				lib, err := a.library()
				if err != nil {
					return err
				}
				defer lib.Close()
				bm, err := lib.BeatmapFromPath(args[0])
				if err != nil {
					return err
				}
				defer bm.Close()
				meta, err := beatmapInfo(bm)
				if err != nil {
					return err
				}
				out["beatmap"] = meta
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

func beatmapInfo(bm *osunative.Beatmap) (map[string]any, error) {
	title, err := bm.Title()
	if err != nil {
		return nil, err
	}
	artist, err := bm.Artist()
	if err != nil {
		return nil, err
	}
	version, err := bm.Version()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"title":              title,
		"artist":             artist,
		"version":            version,
		"ruleset_id":         bm.RulesetID(),
		"approach_rate":      bm.ApproachRate(),
		"drain_rate":         bm.DrainRate(),
		"overall_difficulty": bm.OverallDifficulty(),
		"circle_size":        bm.CircleSize(),
		"slider_multiplier":  bm.SliderMultiplier(),
		"slider_tick_rate":   bm.SliderTickRate(),
	}, nil
}

// result is what difficulty and performance print.
type result struct {
	Beatmap     string          `json:"beatmap"`
	Ruleset     string          `json:"ruleset"`
	Mods        string          `json:"mods"`
	StarRating  float64         `json:"star_rating"`
	MaxCombo    int32           `json:"max_combo"`
	Cached      bool            `json:"cached"`
	Difficulty  json.RawMessage `json:"difficulty"`
	Performance json.RawMessage `json:"performance,omitempty"`
	Score       *scoreJSON      `json:"score,omitempty"`
}

type scoreJSON struct {
	MaxCombo int32   `json:"max_combo"`
	Accuracy float64 `json:"accuracy"`
	Misses   int32   `json:"misses"`
}

// headline pulls the fields every difficulty attribute struct shares.
func headline(raw json.RawMessage) (float64, int32, error) {
	var h struct {
		StarRating float64
		MaxCombo   int32
	}
	if err := json.Unmarshal(raw, &h); err != nil {
		return 0, 0, err
	}
	return h.StarRating, h.MaxCombo, nil
}

func (a *app) difficultyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "difficulty <beatmap>",
		Short: "Compute difficulty attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.difficulty(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func (a *app) difficulty(ctx context.Context, path string) (*result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	mods, err := parseMods(a.mods)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lib, err := a.library()
	if err != nil {
		return nil, err
	}
	defer lib.Close()

	stage, err := lib.Builder().FromText(string(data))
	if err != nil {
		return nil, err
	}
	defer stage.Close()
	kind, err := a.rulesetFor(stage.Beatmap())
	if err != nil {
		return nil, err
	}

	res := &result{Beatmap: path, Ruleset: kind.ShortName(), Mods: mods.String()}

	var cache store.DB
	if a.cachePath != "" {
		db, err := store.NewSQLiteDB(a.cachePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		cache = db
	}
	key := store.Key{
		BeatmapHash: store.HashBeatmap(data),
		Ruleset:     res.Ruleset,
		Mods:        res.Mods,
		Upstream:    osunative.Build().Upstream,
	}
	if cache != nil {
		entry, err := cache.Get(ctx, key)
		switch {
		case err == nil:
			a.logger.Debug("difficulty cache hit", "id", entry.ID, "mods", res.Mods)
			res.Cached = true
			res.StarRating, res.MaxCombo, res.Difficulty = entry.StarRating, entry.MaxCombo, entry.Attributes
			return res, nil
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
	}

	raw, err := difficultyFor(stage, kind, mods)
	if err != nil {
		return nil, err
	}
	if res.StarRating, res.MaxCombo, err = headline(raw); err != nil {
		return nil, err
	}
	res.Difficulty = raw

	if cache != nil {
		entry := &store.Entry{Key: key, StarRating: res.StarRating, MaxCombo: res.MaxCombo, Attributes: raw}
		if err := cache.Put(ctx, entry); err != nil {
			return nil, err
		}
		a.logger.Debug("difficulty cached", "id", entry.ID, "mods", res.Mods)
	}
	return res, nil
}

func difficultyFor(stage *osunative.BeatmapStage, kind osunative.RulesetKind, mods osunative.GameMods) (json.RawMessage, error) {
	switch kind {
	case osunative.RulesetOsu:
		s, err := stage.Osu()
		if err != nil {
			return nil, err
		}
		defer s.Close()
		if s, err = s.Mods(mods); err != nil {
			return nil, err
		}
		defer s.Close()
		calc, err := s.Difficulty()
		return calculate(calc, err)
	case osunative.RulesetTaiko:
		s, err := stage.Taiko()
		if err != nil {
			return nil, err
		}
		defer s.Close()
		if s, err = s.Mods(mods); err != nil {
			return nil, err
		}
		defer s.Close()
		calc, err := s.Difficulty()
		return calculate(calc, err)
	case osunative.RulesetCatch:
		s, err := stage.Catch()
		if err != nil {
			return nil, err
		}
		defer s.Close()
		if s, err = s.Mods(mods); err != nil {
			return nil, err
		}
		defer s.Close()
		calc, err := s.Difficulty()
		return calculate(calc, err)
	default:
		s, err := stage.Mania()
		if err != nil {
			return nil, err
		}
		defer s.Close()
		if s, err = s.Mods(mods); err != nil {
			return nil, err
		}
		defer s.Close()
		calc, err := s.Difficulty()
		return calculate(calc, err)
	}
}

func calculate[M osunative.Mode[D, P], D, P any](calc *osunative.DifficultyCalculator[M, D, P], err error) (json.RawMessage, error) {
	if err != nil {
		return nil, err
	}
	defer calc.Close()
	attrs, err := calc.Calculate()
	if err != nil {
		return nil, err
	}
	return json.Marshal(attrs)
}

// scoreFlags are the play statistics the performance command accepts.
type scoreFlags struct {
	combo      int32
	accuracy   float64
	misses     int32
	n320       int32
	n300       int32
	n200       int32
	n100       int32
	n50        int32
	tailHits   int32
	largeTicks int32
}

func (f *scoreFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int32Var(&f.combo, "combo", 0, "max combo (default: the beatmap's max combo)")
	flags.Float64Var(&f.accuracy, "accuracy", 1, "accuracy as a fraction in [0, 1]")
	flags.Int32Var(&f.misses, "misses", 0, "miss count")
	flags.Int32Var(&f.n320, "n320", 0, "perfect (320) count")
	flags.Int32Var(&f.n300, "n300", 0, "great (300) count, or fruit hits in catch")
	flags.Int32Var(&f.n200, "n200", 0, "good (200) count")
	flags.Int32Var(&f.n100, "n100", 0, "ok (100) count")
	flags.Int32Var(&f.n50, "n50", 0, "meh (50) count")
	flags.Int32Var(&f.tailHits, "slider-tail-hits", 0, "slider tail hits")
	flags.Int32Var(&f.largeTicks, "large-tick-misses", 0, "large tick misses")
}

// apply overrides the preset statistics with the flags that were set.
func (f *scoreFlags) apply(cmd *cobra.Command, s osunative.ScoreStatistics) osunative.ScoreStatistics {
	flags := cmd.Flags()
	if flags.Changed("combo") {
		s.MaxCombo = f.combo
	}
	s.Accuracy = f.accuracy
	s.CountMiss = f.misses
	s.CountPerfect = f.n320
	s.CountGreat = f.n300
	s.CountGood = f.n200
	s.CountOk = f.n100
	s.CountMeh = f.n50
	s.CountSliderTailHit = f.tailHits
	s.CountLargeTickMiss = f.largeTicks
	return s
}

func (a *app) performanceCmd() *cobra.Command {
	var score scoreFlags
	cmd := &cobra.Command{
		Use:   "performance <beatmap>",
		Short: "Compute performance points for a play",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mods, err := parseMods(a.mods)
			if err != nil {
				return err
			}
			lib, err := a.library()
			if err != nil {
				return err
			}
			defer lib.Close()

			stage, err := lib.Builder().FromPath(args[0])
			if err != nil {
				return err
			}
			defer stage.Close()
			kind, err := a.rulesetFor(stage.Beatmap())
			if err != nil {
				return err
			}

			res := &result{Beatmap: args[0], Ruleset: kind.ShortName(), Mods: mods.String()}
			withScore := func(s osunative.ScoreStatistics) osunative.ScoreStatistics {
				s = score.apply(cmd, s)
				res.Score = &scoreJSON{MaxCombo: s.MaxCombo, Accuracy: s.Accuracy, Misses: s.CountMiss}
				return s
			}
			if err := performanceFor(stage, kind, mods, withScore, res); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	score.register(cmd)
	return cmd
}

func performanceFor(stage *osunative.BeatmapStage, kind osunative.RulesetKind, mods osunative.GameMods,
	withScore func(osunative.ScoreStatistics) osunative.ScoreStatistics, res *result) error {
	switch kind {
	case osunative.RulesetOsu:
		s, err := stage.Osu()
		if err != nil {
			return err
		}
		defer s.Close()
		if s, err = s.Mods(mods); err != nil {
			return err
		}
		defer s.Close()
		b, err := s.Performance()
		if err != nil {
			return err
		}
		defer b.Close()
		b.Score(withScore(b.Statistics()))
		return scorePlay[osunative.OsuDifficultyAttributes, osunative.OsuPerformanceAttributes](b, res)
	case osunative.RulesetTaiko:
		s, err := stage.Taiko()
		if err != nil {
			return err
		}
		defer s.Close()
		if s, err = s.Mods(mods); err != nil {
			return err
		}
		defer s.Close()
		b, err := s.Performance()
		if err != nil {
			return err
		}
		defer b.Close()
		b.Score(withScore(b.Statistics()))
		return scorePlay[osunative.TaikoDifficultyAttributes, osunative.TaikoPerformanceAttributes](b, res)
	case osunative.RulesetCatch:
		s, err := stage.Catch()
		if err != nil {
			return err
		}
		defer s.Close()
		if s, err = s.Mods(mods); err != nil {
			return err
		}
		defer s.Close()
		b, err := s.Performance()
		if err != nil {
			return err
		}
		defer b.Close()
		b.Score(withScore(b.Statistics()))
		return scorePlay[osunative.CatchDifficultyAttributes, osunative.CatchPerformanceAttributes](b, res)
	default:
		s, err := stage.Mania()
		if err != nil {
			return err
		}
		defer s.Close()
		if s, err = s.Mods(mods); err != nil {
			return err
		}
		defer s.Close()
		b, err := s.Performance()
		if err != nil {
			return err
		}
		defer b.Close()
		b.Score(withScore(b.Statistics()))
		return scorePlay[osunative.ManiaDifficultyAttributes, osunative.ManiaPerformanceAttributes](b, res)
	}
}

// scorer is the part of every per-ruleset performance builder scorePlay
// needs.
type scorer[D, P any] interface {
	DifficultyAttributes() D
	Calculate() (P, error)
}

func scorePlay[D, P any](b scorer[D, P], res *result) error {
	diff, err := json.Marshal(b.DifficultyAttributes())
	if err != nil {
		return err
	}
	if res.StarRating, res.MaxCombo, err = headline(diff); err != nil {
		return err
	}
	attrs, err := b.Calculate()
	if err != nil {
		return err
	}
	perf, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	res.Difficulty, res.Performance = diff, perf
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
