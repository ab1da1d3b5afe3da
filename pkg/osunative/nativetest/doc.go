// Package nativetest provides an in-memory implementation of native.Library
// for tests.
//
// Fake keeps its own handle table and mimics the status codes of the real
// osu-native library closely enough to exercise every path of package
// osunative without cgo:
//
//   - per-kind create and destroy counters, so tests can check that every
//     create was matched by exactly one destroy
//   - a call log recording each entry point and the handle it was given
//   - one-shot status injection per entry point
//   - raw byte and size overrides for the string accessors
//
// Beatmaps are parsed just enough (General, Metadata, Difficulty and
// HitObjects sections) to return stable fields. Attributes are a
// deterministic function of the beatmap and mods: speed mods scale star
// rating with the clock rate and never change max combo. The numbers mean
// nothing beyond that.
//
// # Usage
//
//	fake := nativetest.New()
//	lib := osunative.New(fake, osunative.Config{Logger: logging.Discard()})
//
//	fake.Inject("Beatmap_GetTitle", native.Success) // break the size query once
//	_, err := beatmap.Title()
//
//	if got := fake.Live(); got != 0 {
//	    t.Fatalf("%d native objects leaked", got)
//	}
//
// ToyBox holds a small beatmap fixture with known metadata and a max combo
// of 719.
package nativetest
