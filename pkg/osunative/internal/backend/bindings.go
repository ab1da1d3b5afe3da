//go:build cgo && osunative

package backend

/*
#cgo CFLAGS: -I${SRCDIR}
#cgo linux LDFLAGS: -L${SRCDIR}/../../../../native -l:osu.Native.so -Wl,-rpath,${SRCDIR}/../../../../native
#cgo darwin LDFLAGS: ${SRCDIR}/../../../../native/osu.Native.dylib -Wl,-rpath,${SRCDIR}/../../../../native
#cgo windows LDFLAGS: -L${SRCDIR}/../../../../native -losu.Native
#include <stdlib.h>
#include "osu_native.h"
*/
import "C"

import (
	"unsafe"

	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

// Linked reports whether the native library is compiled into this binary.
const Linked = true

// library implements native.Library by calling straight into osu.Native.
// It is stateless; the native side owns the handle table.
type library struct{}

// Open returns the entry-point table of the linked native library.
func Open() (native.Library, error) {
	return library{}, nil
}

func status(rc C.osu_error_code) native.ErrorCode {
	return native.ErrorCode(rc)
}

// withCString passes s to fn as a NUL-terminated C string that lives only for
// the duration of the call.
func withCString(s string, fn func(*C.char) C.osu_error_code) native.ErrorCode {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return status(fn(cs))
}

type cStringAccessor func(C.osu_handle, *C.uint8_t, *C.int32_t) C.osu_error_code

// readBuffer forwards a string accessor call. Only a nil buf becomes a null
// pointer, which the native side answers as a size query. An empty non-nil
// buf is the second phase of a zero-length read and must stay non-null; see
// bufferArg. The C side writes directly into Go memory, which is safe because
// buf holds no Go pointers and is not retained.
func readBuffer(fn cStringAccessor, h native.Handle, buf []byte, size *int32) native.ErrorCode {
	p := (*C.uint8_t)(bufferArg(buf))
	n := C.int32_t(*size)
	rc := fn(C.osu_handle(h), p, &n)
	*size = int32(n)
	return status(rc)
}

func (library) ModCreate(acronym string, out *native.Handle) native.ErrorCode {
	var h C.osu_handle
	rc := withCString(acronym, func(cs *C.char) C.osu_error_code {
		return C.Mod_Create(cs, &h)
	})
	if rc == native.Success {
		*out = native.Handle(h)
	}
	return rc
}

func (library) ModSetSetting(mod native.Handle, key string, value float64) native.ErrorCode {
	return withCString(key, func(cs *C.char) C.osu_error_code {
		return C.Mod_SetSetting(C.osu_handle(mod), cs, C.double(value))
	})
}

func (library) ModDestroy(mod native.Handle) native.ErrorCode {
	return status(C.Mod_Destroy(C.osu_handle(mod)))
}

func (library) ModsCollectionCreate(out *native.Handle) native.ErrorCode {
	var h C.osu_handle
	rc := status(C.ModsCollection_Create(&h))
	if rc == native.Success {
		*out = native.Handle(h)
	}
	return rc
}

func (library) ModsCollectionAdd(collection, mod native.Handle) native.ErrorCode {
	return status(C.ModsCollection_Add(C.osu_handle(collection), C.osu_handle(mod)))
}

func (library) ModsCollectionDestroy(collection native.Handle) native.ErrorCode {
	return status(C.ModsCollection_Destroy(C.osu_handle(collection)))
}

func (library) RulesetCreateFromID(id int32, out *native.Ruleset) native.ErrorCode {
	var r C.osu_ruleset
	rc := status(C.Ruleset_CreateFromId(C.int32_t(id), &r))
	if rc == native.Success {
		*out = native.Ruleset{Handle: native.Handle(r.handle), ID: int32(r.id)}
	}
	return rc
}

func (library) RulesetCreateFromShortName(shortName string, out *native.Ruleset) native.ErrorCode {
	var r C.osu_ruleset
	rc := withCString(shortName, func(cs *C.char) C.osu_error_code {
		return C.Ruleset_CreateFromShortName(cs, &r)
	})
	if rc == native.Success {
		*out = native.Ruleset{Handle: native.Handle(r.handle), ID: int32(r.id)}
	}
	return rc
}

func (library) RulesetGetShortName(h native.Handle, buf []byte, size *int32) native.ErrorCode {
	return readBuffer(func(h C.osu_handle, b *C.uint8_t, n *C.int32_t) C.osu_error_code {
		return C.Ruleset_GetShortName(h, b, n)
	}, h, buf, size)
}

func (library) RulesetDestroy(h native.Handle) native.ErrorCode {
	return status(C.Ruleset_Destroy(C.osu_handle(h)))
}

func (library) BeatmapCreateFromFile(path string, out *native.Beatmap) native.ErrorCode {
	var b C.osu_beatmap
	rc := withCString(path, func(cs *C.char) C.osu_error_code {
		return C.Beatmap_CreateFromFile(cs, &b)
	})
	if rc == native.Success {
		*out = goBeatmap(b)
	}
	return rc
}

func (library) BeatmapCreateFromText(text string, out *native.Beatmap) native.ErrorCode {
	var b C.osu_beatmap
	rc := withCString(text, func(cs *C.char) C.osu_error_code {
		return C.Beatmap_CreateFromText(cs, &b)
	})
	if rc == native.Success {
		*out = goBeatmap(b)
	}
	return rc
}

func (library) BeatmapGetTitle(h native.Handle, buf []byte, size *int32) native.ErrorCode {
	return readBuffer(func(h C.osu_handle, b *C.uint8_t, n *C.int32_t) C.osu_error_code {
		return C.Beatmap_GetTitle(h, b, n)
	}, h, buf, size)
}

func (library) BeatmapGetArtist(h native.Handle, buf []byte, size *int32) native.ErrorCode {
	return readBuffer(func(h C.osu_handle, b *C.uint8_t, n *C.int32_t) C.osu_error_code {
		return C.Beatmap_GetArtist(h, b, n)
	}, h, buf, size)
}

func (library) BeatmapGetVersion(h native.Handle, buf []byte, size *int32) native.ErrorCode {
	return readBuffer(func(h C.osu_handle, b *C.uint8_t, n *C.int32_t) C.osu_error_code {
		return C.Beatmap_GetVersion(h, b, n)
	}, h, buf, size)
}

func (library) BeatmapDestroy(h native.Handle) native.ErrorCode {
	return status(C.Beatmap_Destroy(C.osu_handle(h)))
}

func (library) OsuDifficulty() native.DifficultyTable[native.OsuDifficultyAttributes] {
	return osuDifficulty{}
}

func (library) TaikoDifficulty() native.DifficultyTable[native.TaikoDifficultyAttributes] {
	return taikoDifficulty{}
}

func (library) CatchDifficulty() native.DifficultyTable[native.CatchDifficultyAttributes] {
	return catchDifficulty{}
}

func (library) ManiaDifficulty() native.DifficultyTable[native.ManiaDifficultyAttributes] {
	return maniaDifficulty{}
}

func (library) OsuPerformance() native.PerformanceTable[native.OsuDifficultyAttributes, native.OsuPerformanceAttributes] {
	return osuPerformance{}
}

func (library) TaikoPerformance() native.PerformanceTable[native.TaikoDifficultyAttributes, native.TaikoPerformanceAttributes] {
	return taikoPerformance{}
}

func (library) CatchPerformance() native.PerformanceTable[native.CatchDifficultyAttributes, native.CatchPerformanceAttributes] {
	return catchPerformance{}
}

func (library) ManiaPerformance() native.PerformanceTable[native.ManiaDifficultyAttributes, native.ManiaPerformanceAttributes] {
	return maniaPerformance{}
}
