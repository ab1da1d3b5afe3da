package osunative

import (
	"context"

	"github.com/osu-native/osu-native-go/pkg/osunative/logging"
	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

const (
	kindBeatmap       = "beatmap"
	kindRuleset       = "ruleset"
	kindMod           = "mod"
	kindModCollection = "mod_collection"
)

// object owns exactly one native handle. It is released by close, which
// issues the destroy call once, or handed to a new owner by take. Either way
// the value stops being usable.
type object struct {
	lib     *Library
	kind    string
	h       native.Handle
	destroy func(native.Handle) native.ErrorCode
	live    bool
}

// adopt takes ownership of a handle the native side just created.
func (l *Library) adopt(kind string, h native.Handle, destroy func(native.Handle) native.ErrorCode) *object {
	l.track(kind)
	l.log.Debug(context.Background(), "native object created", logging.Handle(kind, int32(h)))
	return &object{lib: l, kind: kind, h: h, destroy: destroy, live: true}
}

func (o *object) alive() bool {
	return o != nil && o.live
}

// handle returns the native handle, or ErrClosed once the object has been
// closed or moved.
func (o *object) handle(op string) (native.Handle, error) {
	if !o.alive() {
		kind := "object"
		if o != nil {
			kind = o.kind
		}
		return 0, newError(KindClosed, op, kind+" already released")
	}
	return o.h, nil
}

// take moves ownership into a fresh object and leaves o dead without
// destroying anything.
func (o *object) take() *object {
	if !o.alive() {
		return nil
	}
	moved := *o
	o.live = false
	return &moved
}

// close destroys the handle. A failing destroy is logged and swallowed; the
// object is marked released regardless so the call is never repeated.
func (o *object) close() {
	if !o.alive() {
		return
	}
	o.live = false
	rc := o.destroy(o.h)
	o.lib.untrack(o.kind)
	if rc != native.Success {
		o.lib.log.Warn(context.Background(), "native destroy failed",
			logging.Handle(o.kind, int32(o.h)), "status", rc.String(), "code", int8(rc))
		return
	}
	o.lib.log.Debug(context.Background(), "native object destroyed", logging.Handle(o.kind, int32(o.h)))
}
