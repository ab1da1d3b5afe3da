package osunative

import (
	"errors"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/osu-native/osu-native-go/pkg/osunative/native"
	"github.com/osu-native/osu-native-go/pkg/osunative/nativetest"
)

func TestBuilderEndToEnd(t *testing.T) {
	lib, fake := newTestLibrary(t)

	run := func(src ModSource) (OsuDifficultyAttributes, OsuPerformanceAttributes) {
		t.Helper()
		stage, err := lib.Builder().FromPath(toyBoxPath)
		if err != nil {
			t.Fatalf("from path: %v", err)
		}
		defer stage.Close()
		osu, err := stage.Osu()
		if err != nil {
			t.Fatalf("osu: %v", err)
		}
		defer osu.Close()
		osu, err = osu.Mods(src)
		if err != nil {
			t.Fatalf("mods: %v", err)
		}
		defer osu.Close()
		perf, err := osu.Performance()
		if err != nil {
			t.Fatalf("performance: %v", err)
		}
		defer perf.Close()
		diff := perf.DifficultyAttributes()
		attrs, err := perf.N300(diff.HitCircleCount + diff.SliderCount + diff.SpinnerCount).Calculate()
		if err != nil {
			t.Fatalf("calculate: %v", err)
		}
		return diff, attrs
	}

	nmDiff, nmPerf := run(nil)
	if nmDiff.MaxCombo != 719 {
		t.Fatalf("max combo = %d, want 719", nmDiff.MaxCombo)
	}
	if nmDiff.StarRating <= 0 || nmPerf.Total <= 0 {
		t.Fatalf("nomod: stars %v pp %v", nmDiff.StarRating, nmPerf.Total)
	}

	dtDiff, dtPerf := run(Acronyms{"DT"})
	if dtDiff.StarRating <= nmDiff.StarRating {
		t.Fatalf("DT stars %v <= nomod %v", dtDiff.StarRating, nmDiff.StarRating)
	}
	if dtDiff.MaxCombo != nmDiff.MaxCombo {
		t.Fatalf("DT max combo %d != %d", dtDiff.MaxCombo, nmDiff.MaxCombo)
	}
	if dtPerf.Total <= nmPerf.Total {
		t.Fatalf("DT pp %v <= nomod %v", dtPerf.Total, nmPerf.Total)
	}

	assertBalanced(t, fake)
	if len(lib.Live()) != 0 {
		t.Fatalf("library live = %v", lib.Live())
	}
}

func TestBuilderDifficulty(t *testing.T) {
	lib, fake := newTestLibrary(t)

	stage, err := lib.Builder().FromText(nativetest.ToyBox)
	if err != nil {
		t.Fatal(err)
	}
	if stage.Beatmap().OverallDifficulty() != 8.3 {
		t.Fatalf("od = %v", stage.Beatmap().OverallDifficulty())
	}
	mania, err := stage.Mania()
	if err != nil {
		t.Fatal(err)
	}
	if mania.Kind() != RulesetMania {
		t.Fatalf("kind = %v", mania.Kind())
	}
	mania, err = mania.Mods(ModsJSON(`[{"acronym":"HT"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if got := mania.SelectedMods().String(); got != "HT" {
		t.Fatalf("selected mods = %s", got)
	}
	calc, err := mania.Difficulty()
	if err != nil {
		t.Fatal(err)
	}
	defer calc.Close()

	if calc.Mods().String() != "HT" {
		t.Fatalf("calculator mods = %s", calc.Mods())
	}
	if fake.Live() != 2 {
		t.Fatalf("live after difficulty = %d, want calculator and ruleset", fake.Live())
	}
	slowed, err := calc.Calculate()
	if err != nil {
		t.Fatal(err)
	}

	plain, err := lib.Builder().FromText(nativetest.ToyBox)
	if err != nil {
		t.Fatal(err)
	}
	pm, err := plain.Mania()
	if err != nil {
		t.Fatal(err)
	}
	pc, err := pm.Difficulty()
	if err != nil {
		t.Fatal(err)
	}
	defer pc.Close()
	normal, err := pc.Calculate()
	if err != nil {
		t.Fatal(err)
	}
	if slowed.StarRating >= normal.StarRating {
		t.Fatalf("HT stars %v >= nomod %v", slowed.StarRating, normal.StarRating)
	}
}

func TestBuilderStagesAreConsumed(t *testing.T) {
	lib, fake := newTestLibrary(t)

	stage, err := lib.Builder().FromText(nativetest.ToyBox)
	if err != nil {
		t.Fatal(err)
	}
	taiko, err := stage.Taiko()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := stage.Osu(); !errors.Is(err, ErrClosed) {
		t.Fatalf("reused beatmap stage err = %v", err)
	}
	stage.Close()

	moved, err := taiko.Mods(Acronyms{"HR"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := taiko.Mods(nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("reused ruleset stage err = %v", err)
	}
	if _, err := taiko.Difficulty(); !errors.Is(err, ErrClosed) {
		t.Fatalf("difficulty on consumed stage err = %v", err)
	}
	taiko.Close()

	perf, err := moved.Performance()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := moved.Performance(); !errors.Is(err, ErrClosed) {
		t.Fatalf("second performance err = %v", err)
	}
	if _, err := perf.N300(250).N100(50).Misses(0).Calculate(); err != nil {
		t.Fatal(err)
	}
	if _, err := perf.Calculate(); !errors.Is(err, ErrClosed) {
		t.Fatalf("second calculate err = %v", err)
	}
	perf.Close()
	moved.Close()

	assertBalanced(t, fake)
}

func TestBuilderFailuresRelease(t *testing.T) {
	cases := []struct {
		name  string
		fault string
		run   func(*BeatmapStage) error
		want  error
	}{
		{"ruleset create", "Ruleset_CreateFromId", func(s *BeatmapStage) error {
			_, err := s.Catch()
			return err
		}, ErrUnknownNative},
		{"calculator create", "CatchDifficultyCalculator_Create", func(s *BeatmapStage) error {
			c, err := s.Catch()
			if err != nil {
				return err
			}
			_, err = c.Difficulty()
			return err
		}, ErrUnknownNative},
		{"performance difficulty", "CatchDifficultyCalculator_CalculateMods", func(s *BeatmapStage) error {
			c, err := s.Catch()
			if err != nil {
				return err
			}
			_, err = c.Performance()
			return err
		}, ErrUnknownNative},
		{"performance create", "CatchPerformanceCalculator_Create", func(s *BeatmapStage) error {
			c, err := s.Catch()
			if err != nil {
				return err
			}
			p, err := c.Performance()
			if err != nil {
				return err
			}
			_, err = p.Calculate()
			return err
		}, ErrUnknownNative},
		{"mods decode", "", func(s *BeatmapStage) error {
			c, err := s.Catch()
			if err != nil {
				return err
			}
			_, err = c.Mods(ModsJSON(`{`))
			return err
		}, ErrModsDeserialization},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lib, fake := newTestLibrary(t)
			if tc.fault != "" {
				fake.Inject(tc.fault, native.Failure)
			}
			stage, err := lib.Builder().FromText(nativetest.ToyBox)
			if err != nil {
				t.Fatal(err)
			}
			if err := tc.run(stage); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			assertBalanced(t, fake)
		})
	}
}

func TestPerformanceBuilders(t *testing.T) {
	lib, _ := newTestLibrary(t)
	stage := func() *BeatmapStage {
		t.Helper()
		s, err := lib.Builder().FromText(nativetest.ToyBox)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	t.Run("osu", func(t *testing.T) {
		s, err := stage().Osu()
		if err != nil {
			t.Fatal(err)
		}
		b, err := s.Performance()
		if err != nil {
			t.Fatal(err)
		}
		defer b.Close()
		if b.Statistics().MaxCombo != 719 || b.Statistics().Accuracy != 1 {
			t.Fatalf("preset statistics = %+v", b.Statistics())
		}
		got := b.N300(400).N100(10).N50(2).Misses(1).SliderTickMisses(5).LargeTickMisses(3).Accuracy(0.97).MaxCombo(600).Statistics()
		want := ScoreStatistics{MaxCombo: 600, Accuracy: 0.97, CountMiss: 1, CountMeh: 2, CountOk: 10,
			CountGreat: 400, CountSliderTailHit: 195, CountLargeTickMiss: 3}
		if got != want {
			t.Fatalf("got %+v\nwant %+v", got, want)
		}
		if got := b.SliderTickHits(150).Statistics().CountSliderTailHit; got != 150 {
			t.Fatalf("slider tail hits = %d", got)
		}
		if got := b.SliderTickMisses(205).Statistics().CountSliderTailHit; got != 0 {
			t.Fatalf("slider tail hits after more misses than sliders = %d, want 0", got)
		}
		if _, err := b.Calculate(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("taiko", func(t *testing.T) {
		s, err := stage().Taiko()
		if err != nil {
			t.Fatal(err)
		}
		b, err := s.Performance()
		if err != nil {
			t.Fatal(err)
		}
		defer b.Close()
		got := b.N300(280).N100(15).Misses(5).Statistics()
		if got.CountGreat != 280 || got.CountOk != 15 || got.CountMiss != 5 || got.MaxCombo != 300 {
			t.Fatalf("statistics = %+v", got)
		}
		attrs, err := b.Accuracy(0.96).Calculate()
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := attrs.EstimatedUnstableRate.Get(); !ok || attrs.Total <= 0 {
			t.Fatalf("attributes = %+v", attrs)
		}
	})

	t.Run("catch", func(t *testing.T) {
		s, err := stage().Catch()
		if err != nil {
			t.Fatal(err)
		}
		b, err := s.Performance()
		if err != nil {
			t.Fatal(err)
		}
		defer b.Close()
		got := b.Hits(690).Misses(10).Statistics()
		if got.CountGreat != 690 || got.CountMiss != 10 || got.MaxCombo != 700 {
			t.Fatalf("statistics = %+v", got)
		}
		if attrs, err := b.Calculate(); err != nil || attrs.Total <= 0 {
			t.Fatalf("attributes = %+v, %v", attrs, err)
		}
	})

	t.Run("mania", func(t *testing.T) {
		s, err := stage().Mania()
		if err != nil {
			t.Fatal(err)
		}
		b, err := s.Performance()
		if err != nil {
			t.Fatal(err)
		}
		defer b.Close()
		got := b.N320(400).N300(80).N200(20).N100(10).N50(5).Misses(4).Statistics()
		want := ScoreStatistics{MaxCombo: 519, Accuracy: 1, CountMiss: 4, CountMeh: 5, CountOk: 10,
			CountGood: 20, CountGreat: 80, CountPerfect: 400}
		if got != want {
			t.Fatalf("got %+v\nwant %+v", got, want)
		}
		b.Score(DefaultScoreStatistics())
		if b.Statistics().MaxCombo != 0 {
			t.Fatal("Score did not replace statistics")
		}
		attrs, err := b.Calculate()
		if err != nil {
			t.Fatal(err)
		}
		if attrs.Total != 0 {
			t.Fatalf("zero-combo play scored %v", attrs.Total)
		}
	})
}

func TestBuilderConcurrentPipelines(t *testing.T) {
	lib, fake := newTestLibrary(t)

	var g errgroup.Group
	results := make([]float64, 8)
	for i := range results {
		g.Go(func() error {
			stage, err := lib.Builder().FromText(nativetest.ToyBox)
			if err != nil {
				return err
			}
			osu, err := stage.Osu()
			if err != nil {
				return err
			}
			perf, err := osu.Performance()
			if err != nil {
				return err
			}
			attrs, err := perf.Calculate()
			if err != nil {
				return fmt.Errorf("pipeline %d: %w", i, err)
			}
			results[i] = attrs.Total
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i, v := range results {
		if v != results[0] {
			t.Fatalf("pipeline %d scored %v, pipeline 0 scored %v", i, v, results[0])
		}
	}
	assertBalanced(t, fake)
}
