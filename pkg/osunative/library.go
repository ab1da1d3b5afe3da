package osunative

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/osu-native/osu-native-go/pkg/osunative/internal/backend"
	"github.com/osu-native/osu-native-go/pkg/osunative/logging"
	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

// Library represents an opened entry-point table of the native osu-native
// library together with the logger and configuration every object created
// through it shares.
//
// A Library and the objects created from it are meant to be used from one
// goroutine at a time. Independent pipelines may run concurrently only if
// the native library in use tolerates it.
type Library struct {
	native native.Library
	cfg    Config
	log    logging.Logger

	mu     sync.Mutex
	live   map[string]int
	closed bool
}

// Open binds the native library linked into this binary. It returns
// ErrNotBuilt when the build did not include the cgo backend.
func Open(cfg Config) (*Library, error) {
	lib, err := backend.Open()
	if err != nil {
		return nil, err
	}
	return New(lib, cfg), nil
}

// New wraps an arbitrary entry-point table, such as the in-memory fake from
// package nativetest.
func New(lib native.Library, cfg Config) *Library {
	return &Library{
		native: lib,
		cfg:    cfg,
		log:    cfg.logger().With("component", "osunative"),
		live:   make(map[string]int),
	}
}

// Close marks the library closed. Objects still alive are reported at warn
// level but not destroyed; their owners remain responsible for them. The
// method is idempotent, returning ErrLibraryClosed when called twice.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLibraryClosed
	}
	l.closed = true
	live := maps.Clone(l.live)
	l.mu.Unlock()

	if len(live) > 0 {
		kinds := slices.Sorted(maps.Keys(live))
		args := make([]any, 0, 2*len(kinds))
		for _, k := range kinds {
			args = append(args, k, live[k])
		}
		l.log.Warn(context.Background(), "library closed with live objects", args...)
	}
	return nil
}

// Live returns the number of live objects per kind created through l. Kinds
// with no live objects are omitted.
func (l *Library) Live() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return maps.Clone(l.live)
}

// Logger returns the logger objects created through l report to.
func (l *Library) Logger() logging.Logger {
	return l.log
}

func (l *Library) checkOpen() error {
	if l == nil {
		return ErrLibraryClosed
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLibraryClosed
	}
	return nil
}

func (l *Library) track(kind string) {
	l.mu.Lock()
	l.live[kind]++
	l.mu.Unlock()
}

func (l *Library) untrack(kind string) {
	l.mu.Lock()
	if l.live[kind] <= 1 {
		delete(l.live, kind)
	} else {
		l.live[kind]--
	}
	l.mu.Unlock()
}
