// Package backend hosts the thin cgo layer that links the Go API to the
// native osu.Native library. The real implementation lives behind the
// "cgo && osunative" build constraint so that the rest of the repository can
// compile and test without the shared library present.
package backend
