package osunative

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

// readString runs the two-phase buffer protocol against one accessor: a size
// query with no buffer, then a read into a buffer of exactly the reported
// length. The bytes must be NUL-terminated, free of interior NULs and valid
// UTF-8. No call is ever retried.
func readString(op string, h native.Handle, fn native.StringAccessor) (string, error) {
	var size int32
	if rc := fn(h, nil, &size); rc != native.BufferSizeQuery {
		e := nativeError(op, rc)
		e.Detail = "size query returned " + rc.String()
		return "", e
	}
	if size < 0 {
		return "", newError(KindInvalidLength, op, fmt.Sprintf("native side reported %d bytes", size))
	}

	buf := make([]byte, size)
	capacity := size
	if rc := fn(h, buf, &size); rc != native.Success {
		return "", nativeError(op, rc)
	}
	if size < 0 || size > capacity {
		return "", newError(KindInvalidLength, op, fmt.Sprintf("read reported %d bytes into a %d byte buffer", size, capacity))
	}
	buf = buf[:size]
	if len(buf) == 0 {
		return "", nil
	}

	if buf[len(buf)-1] != 0 {
		return "", newError(KindInvalidNul, op, "string is not NUL-terminated")
	}
	buf = buf[:len(buf)-1]
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return "", newError(KindInvalidNul, op, fmt.Sprintf("interior NUL at offset %d", i))
	}
	if !utf8.Valid(buf) {
		return "", newError(KindInvalidUTF8, op, "")
	}
	return string(buf), nil
}

// checkCString rejects strings that cannot cross the boundary as C strings.
func checkCString(op string, kind Kind, s string) *Error {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return newError(kind, op, fmt.Sprintf("NUL byte at offset %d", i))
	}
	if !utf8.ValidString(s) {
		return newError(kind, op, "not valid UTF-8")
	}
	return nil
}
