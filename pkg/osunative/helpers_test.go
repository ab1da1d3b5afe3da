package osunative

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/osu-native/osu-native-go/pkg/osunative/logging"
	"github.com/osu-native/osu-native-go/pkg/osunative/nativetest"
)

type logRecord struct {
	level string
	msg   string
	args  []any
}

// recordingLogger captures records so tests can assert on diagnostics.
type recordingLogger struct {
	mu      *sync.Mutex
	records *[]logRecord
	with    []any
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{mu: &sync.Mutex{}, records: &[]logRecord{}}
}

func (l *recordingLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.records = append(*l.records, logRecord{level: level, msg: msg, args: append(append([]any(nil), l.with...), args...)})
}

func (l *recordingLogger) Debug(_ context.Context, msg string, args ...any) {
	l.add("debug", msg, args)
}
func (l *recordingLogger) Info(_ context.Context, msg string, args ...any) { l.add("info", msg, args) }
func (l *recordingLogger) Warn(_ context.Context, msg string, args ...any) { l.add("warn", msg, args) }
func (l *recordingLogger) Error(_ context.Context, msg string, args ...any) {
	l.add("error", msg, args)
}

func (l *recordingLogger) With(args ...any) logging.Logger {
	return &recordingLogger{mu: l.mu, records: l.records, with: append(append([]any(nil), l.with...), args...)}
}

func (l *recordingLogger) warnings() []logRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logRecord
	for _, r := range *l.records {
		if r.level == "warn" {
			out = append(out, r)
		}
	}
	return out
}

func newTestLibrary(t *testing.T) (*Library, *nativetest.Fake) {
	t.Helper()
	fake := nativetest.New()
	return New(fake, Config{Logger: logging.Discard()}), fake
}

// assertBalanced fails unless every native object created through fake was
// destroyed exactly once.
func assertBalanced(t *testing.T, fake *nativetest.Fake) {
	t.Helper()
	for _, kind := range fake.Kinds() {
		if c, d := fake.Created(kind), fake.Destroyed(kind); c != d {
			t.Errorf("%s: created %d, destroyed %d", kind, c, d)
		}
	}
	if n := fake.Live(); n != 0 {
		t.Errorf("%d native objects still live", n)
	}
}

func loadToyBox(t *testing.T, lib *Library) *Beatmap {
	t.Helper()
	bm, err := lib.BeatmapFromText(nativetest.ToyBox)
	if err != nil {
		t.Fatalf("load beatmap: %v", err)
	}
	return bm
}

func mustRuleset(t *testing.T, lib *Library, kind RulesetKind) *Ruleset {
	t.Helper()
	r, err := lib.NewRuleset(kind)
	if err != nil {
		t.Fatalf("create %s ruleset: %v", kind, err)
	}
	return r
}

// argValue finds key in slog-style alternating arguments. slog.Attr values
// occupy a single slot.
func argValue(args []any, key string) (any, bool) {
	for i := 0; i < len(args); i++ {
		if a, ok := args[i].(slog.Attr); ok {
			if a.Key == key {
				return a.Value.Any(), true
			}
			continue
		}
		if i+1 >= len(args) {
			break
		}
		if fmt.Sprint(args[i]) == key {
			return args[i+1], true
		}
		i++
	}
	return nil, false
}
