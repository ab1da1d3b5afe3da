package osunative

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/osu-native/osu-native-go/pkg/osunative/nativetest"
)

var toyBoxPath = filepath.Join("nativetest", nativetest.ToyBoxPath)

func TestBeatmapRoundTrip(t *testing.T) {
	lib, fake := newTestLibrary(t)

	for name, load := range map[string]func() (*Beatmap, error){
		"path": func() (*Beatmap, error) { return lib.BeatmapFromPath(toyBoxPath) },
		"text": func() (*Beatmap, error) { return lib.BeatmapFromText(nativetest.ToyBox) },
	} {
		t.Run(name, func(t *testing.T) {
			bm, err := load()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			defer bm.Close()

			text := map[string]func() (string, error){
				"Toy Box":    bm.Title,
				"John Grant": bm.Artist,
				"Expert":     bm.Version,
			}
			for want, get := range text {
				got, err := get()
				if err != nil {
					t.Fatalf("read %q: %v", want, err)
				}
				if got != want {
					t.Fatalf("got %q, want %q", got, want)
				}
			}

			if bm.ApproachRate() != 9.2 {
				t.Errorf("approach rate = %v", bm.ApproachRate())
			}
			if bm.DrainRate() != 5.0 {
				t.Errorf("drain rate = %v", bm.DrainRate())
			}
			if bm.OverallDifficulty() != 8.3 {
				t.Errorf("overall difficulty = %v", bm.OverallDifficulty())
			}
			if bm.CircleSize() != 4.0 {
				t.Errorf("circle size = %v", bm.CircleSize())
			}
			if bm.SliderMultiplier() != 2.0 {
				t.Errorf("slider multiplier = %v", bm.SliderMultiplier())
			}
			if bm.SliderTickRate() != 1.0 {
				t.Errorf("slider tick rate = %v", bm.SliderTickRate())
			}
			if bm.RulesetID() != 0 {
				t.Errorf("ruleset id = %v", bm.RulesetID())
			}
		})
	}
	assertBalanced(t, fake)
}

func TestBeatmapInvalidPath(t *testing.T) {
	lib, fake := newTestLibrary(t)

	for _, path := range []string{"", "bad\x00.osu", string([]byte{'m', 0xff})} {
		_, err := lib.BeatmapFromPath(path)
		if !errors.Is(err, ErrInvalidPath) {
			t.Fatalf("path %q: err = %v", path, err)
		}
	}
	if n := fake.CallsTo("Beatmap_CreateFromFile"); n != 0 {
		t.Fatalf("invalid paths reached the native side %d times", n)
	}
}

func TestBeatmapFileNotFound(t *testing.T) {
	lib, fake := newTestLibrary(t)
	missing := filepath.Join(t.TempDir(), "missing.osu")

	_, err := lib.BeatmapFromPath(missing)
	if !errors.Is(err, ErrBeatmapFileNotFound) {
		t.Fatalf("err = %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Path != missing {
		t.Fatalf("path not carried: %#v", err)
	}
	assertBalanced(t, fake)
}

func TestBeatmapTextWithNul(t *testing.T) {
	lib, _ := newTestLibrary(t)
	if _, err := lib.BeatmapFromText("osu file format v14\x00"); !errors.Is(err, ErrInvalidNul) {
		t.Fatalf("err = %v", err)
	}
}

func TestBeatmapCloseIsIdempotent(t *testing.T) {
	lib, fake := newTestLibrary(t)
	bm := loadToyBox(t, lib)
	h := bm.Handle()

	bm.Close()
	bm.Close()

	if n := fake.CallsTo("Beatmap_Destroy"); n != 1 {
		t.Fatalf("destroy calls = %d, want 1", n)
	}
	if _, err := bm.Title(); !errors.Is(err, ErrClosed) {
		t.Fatalf("title after close: %v", err)
	}
	if bm.ApproachRate() != 9.2 {
		t.Fatal("copied fields lost after close")
	}
	if bm.Handle() != 0 {
		t.Fatal("handle still reported after close")
	}
	calls := fake.CallsWith(h)
	if calls[len(calls)-1] != "Beatmap_Destroy" {
		t.Fatalf("native call after destroy: %v", calls)
	}
	assertBalanced(t, fake)
}
