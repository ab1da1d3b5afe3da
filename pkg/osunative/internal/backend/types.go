package backend

import (
	"errors"
	"unsafe"
)

// ErrNotBuilt reports that the native bindings were not linked into the
// current binary. Build with CGO_ENABLED=1 and -tags osunative to link them.
var ErrNotBuilt = errors.New("osunative/internal/backend: native bindings not built")

// Version returns the version string from the native library, or empty if not
// available. The current entry-point table exposes no version accessor.
func Version() string { return "" }

// emptyRead backs the second phase of a zero-length string read. The native
// side is told its capacity is zero and never writes to it.
var emptyRead [1]byte

// bufferArg returns the pointer handed to a string accessor. nil means a size
// query. Any non-nil buf, including an empty one, is a read and gets a
// non-null pointer. nativetest.Fake follows the same nil-versus-empty rule.
func bufferArg(buf []byte) unsafe.Pointer {
	switch {
	case buf == nil:
		return nil
	case len(buf) == 0:
		return unsafe.Pointer(&emptyRead[0])
	default:
		return unsafe.Pointer(&buf[0])
	}
}
