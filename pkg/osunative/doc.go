// Package osunative provides Go bindings for the osu-native difficulty and
// performance calculation library.
//
// The native library owns every algorithm; this package owns the lifecycle of
// the native objects it creates and the marshaling between Go values and the
// C ABI.
//
// # Opening the library
//
//	lib, err := osunative.Open(osunative.Config{})
//	if err != nil {
//	    return err // ErrNotBuilt without the osunative build tag
//	}
//	defer lib.Close()
//
// Tests and alternative loaders bind any native.Library with New, for example
// the in-memory fake from package nativetest.
//
// # Pipeline
//
// The Builder chains beatmap, ruleset, mods and calculation. Each stage only
// exposes the transitions valid at that point:
//
//	stage, err := lib.Builder().FromPath("map.osu")
//	osu, err := stage.Osu()
//	osu, err = osu.Mods(osunative.Acronyms{"HD", "DT"})
//	calc, err := osu.Difficulty()
//	defer calc.Close()
//	attrs, err := calc.Calculate()
//
// Performance() computes difficulty first and returns a per-ruleset builder
// whose setters match that ruleset's judgements:
//
//	perf, err := osu.Performance()
//	pp, err := perf.Accuracy(0.98).N100(10).Misses(1).Calculate()
//
// # Resource ownership
//
// Every wrapper owns exactly one native handle and releases it in Close.
// Close is idempotent and never fails; a failing native destroy call is
// logged. Nothing is released by the garbage collector, so every value must
// be closed, typically with defer. Some operations move ownership:
// a difficulty calculator takes the Ruleset it is created with, WithMods and
// every pipeline transition consume their receiver. A moved value reports
// ErrClosed and its Close does nothing.
//
// # Errors
//
// Fallible operations return *Error. Match kinds with errors.Is against the
// Err* sentinels and use Error.Origin to tell failures reported by the native
// library from malformed input rejected before any native call.
//
// # Concurrency
//
// The native library is not documented as thread safe. Use a Library and
// every object derived from it from one goroutine at a time.
package osunative
