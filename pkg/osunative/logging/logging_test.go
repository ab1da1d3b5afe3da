package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewDefaultsToSlogDefault(t *testing.T) {
	if New(nil) == nil {
		t.Fatal("New(nil) returned nil")
	}
}

func TestHandleAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.With("component", "test").Warn(context.Background(), "destroy failed", Handle("beatmap", 7))

	out := buf.String()
	for _, want := range []string{"component=test", "object.kind=beatmap", "object.handle=7", "level=WARN"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q missing %q", out, want)
		}
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error(context.Background(), "dropped")
	logger.With("k", "v").Info(context.Background(), "dropped")
}
