// Package native mirrors the C ABI of the osu.Native calculation library.
//
// The package holds no logic. It defines the handle and status types, the
// fixed-layout structs that cross the boundary, and the Library interface
// that describes the entry-point table. The cgo implementation lives in
// pkg/osunative/internal/backend; an in-memory implementation for tests
// lives in pkg/osunative/nativetest.
//
// # Layout
//
// Every struct here matches its C counterpart field for field: handles are
// 4-byte signed integers, single-precision fields stay float32, and optional
// outputs are a Nullable discriminant paired with a value. Implementations
// copy C structs into these types immediately after a call returns, so
// nothing in this package aliases native memory.
//
// # Threading
//
// The native library is not documented as thread-safe. A Library value and
// every handle it produced must be used from one logical owner at a time.
package native
