package backend

import (
	"bufio"
	"os"
	"regexp"
	"strings"
	"testing"
	"unsafe"
)

func TestBufferArg(t *testing.T) {
	if p := bufferArg(nil); p != nil {
		t.Fatalf("nil buffer: got %p, want nil", p)
	}
	if p := bufferArg([]byte{}); p == nil {
		t.Fatal("empty buffer must map to a non-null pointer")
	}
	if p := bufferArg(make([]byte, 0, 8)); p == nil {
		t.Fatal("empty buffer with capacity must map to a non-null pointer")
	}
	buf := make([]byte, 4)
	if p := bufferArg(buf); p != unsafe.Pointer(&buf[0]) {
		t.Fatalf("got %p, want the buffer's first byte %p", p, &buf[0])
	}
}

var destroyDecl = regexp.MustCompile(`^(\w+)\s+(\w+)_Destroy\(`)

func TestHeaderDestroySignatures(t *testing.T) {
	f, err := os.Open("osu_native.h")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	seen := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m := destroyDecl.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil {
			continue
		}
		seen++
		ret, name := m[1], m[2]
		want := "osu_error_code"
		if strings.HasSuffix(name, "Calculator") {
			want = "void"
		}
		if ret != want {
			t.Errorf("%s_Destroy returns %s, want %s", name, ret, want)
		}
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if seen != 12 {
		t.Fatalf("found %d destroy declarations, want 12", seen)
	}
}
