package osunative

import (
	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

// Beatmap is a parsed beatmap owned by the native library. The scalar
// difficulty settings are copied out at creation and stay readable after
// Close; the text accessors need the live handle.
type Beatmap struct {
	obj    *object
	fields native.Beatmap
}

// BeatmapFromPath parses the beatmap file at path.
func (l *Library) BeatmapFromPath(path string) (*Beatmap, error) {
	const op = "beatmap.from_path"
	if err := l.checkOpen(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, newError(KindInvalidPath, op, "empty path")
	}
	if e := checkCString(op, KindInvalidPath, path); e != nil {
		e.Path = path
		return nil, e
	}

	var out native.Beatmap
	if rc := l.native.BeatmapCreateFromFile(path, &out); rc != native.Success {
		e := nativeError(op, rc)
		e.Path = path
		return nil, e
	}
	return l.newBeatmap(out), nil
}

// BeatmapFromText parses a beatmap held in memory.
func (l *Library) BeatmapFromText(text string) (*Beatmap, error) {
	const op = "beatmap.from_text"
	if err := l.checkOpen(); err != nil {
		return nil, err
	}
	if e := checkCString(op, KindInvalidNul, text); e != nil {
		return nil, e
	}

	var out native.Beatmap
	if rc := l.native.BeatmapCreateFromText(text, &out); rc != native.Success {
		return nil, nativeError(op, rc)
	}
	return l.newBeatmap(out), nil
}

func (l *Library) newBeatmap(out native.Beatmap) *Beatmap {
	return &Beatmap{
		obj:    l.adopt(kindBeatmap, out.Handle, l.native.BeatmapDestroy),
		fields: out,
	}
}

// Handle returns the native handle, or 0 once the beatmap is closed.
func (b *Beatmap) Handle() native.Handle {
	if !b.obj.alive() {
		return 0
	}
	return b.obj.h
}

// Title reads the beatmap title.
func (b *Beatmap) Title() (string, error) {
	return b.text("beatmap.title", native.Library.BeatmapGetTitle)
}

// Artist reads the beatmap artist.
func (b *Beatmap) Artist() (string, error) {
	return b.text("beatmap.artist", native.Library.BeatmapGetArtist)
}

// Version reads the difficulty name of the beatmap.
func (b *Beatmap) Version() (string, error) {
	return b.text("beatmap.version", native.Library.BeatmapGetVersion)
}

type beatmapAccessor func(native.Library, native.Handle, []byte, *int32) native.ErrorCode

func (b *Beatmap) text(op string, get beatmapAccessor) (string, error) {
	h, err := b.obj.handle(op)
	if err != nil {
		return "", err
	}
	lib := b.obj.lib.native
	return readString(op, h, func(h native.Handle, buf []byte, size *int32) native.ErrorCode {
		return get(lib, h, buf, size)
	})
}

func (b *Beatmap) RulesetID() int32           { return b.fields.RulesetID }
func (b *Beatmap) ApproachRate() float32      { return b.fields.ApproachRate }
func (b *Beatmap) DrainRate() float32         { return b.fields.DrainRate }
func (b *Beatmap) OverallDifficulty() float32 { return b.fields.OverallDifficulty }
func (b *Beatmap) CircleSize() float32        { return b.fields.CircleSize }
func (b *Beatmap) SliderMultiplier() float64  { return b.fields.SliderMultiplier }
func (b *Beatmap) SliderTickRate() float64    { return b.fields.SliderTickRate }

// Close destroys the native beatmap. It is safe to call more than once.
func (b *Beatmap) Close() error {
	if b != nil {
		b.obj.close()
	}
	return nil
}
