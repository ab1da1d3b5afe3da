package osunative

import (
	"context"
	"fmt"

	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

// modCollection is a native collection together with every mod added to it.
// The mods stay alive until the collection itself has been destroyed.
type modCollection struct {
	obj  *object
	mods []*object
}

// buildModCollection materializes mods into a native collection, one native
// mod per entry in order. Any failure tears down everything created so far.
func (l *Library) buildModCollection(op string, mods GameMods) (_ *modCollection, err error) {
	var h native.Handle
	if rc := l.native.ModsCollectionCreate(&h); rc != native.Success {
		return nil, nativeError(op, rc)
	}
	c := &modCollection{obj: l.adopt(kindModCollection, h, l.native.ModsCollectionDestroy)}
	defer func() {
		if err != nil {
			c.close()
		}
	}()

	for _, m := range mods {
		if err := l.addMod(op, c, m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (l *Library) addMod(op string, c *modCollection, m GameMod) error {
	if m.Acronym == "" {
		return newError(KindInvalidAcronym, op, "empty acronym")
	}
	if e := checkCString(op, KindInvalidAcronym, m.Acronym); e != nil {
		return e
	}

	var h native.Handle
	if rc := l.native.ModCreate(m.Acronym, &h); rc != native.Success {
		e := nativeError(op, rc)
		e.Detail = fmt.Sprintf("mod %q", m.Acronym)
		return e
	}
	mod := l.adopt(kindMod, h, l.native.ModDestroy)
	c.mods = append(c.mods, mod)

	for _, s := range m.Settings {
		if err := l.applySetting(op, h, m.Acronym, s); err != nil {
			return err
		}
	}

	if rc := l.native.ModsCollectionAdd(c.obj.h, h); rc != native.Success {
		e := nativeError(op, rc)
		e.Detail = fmt.Sprintf("adding mod %q", m.Acronym)
		return e
	}
	return nil
}

func (l *Library) applySetting(op string, mod native.Handle, acronym string, s Setting) error {
	if s.Key == "" {
		return newError(KindInvalidSettingKey, op, fmt.Sprintf("mod %q: empty setting key", acronym))
	}
	if e := checkCString(op, KindInvalidSettingKey, s.Key); e != nil {
		e.Detail = fmt.Sprintf("mod %q: %s", acronym, e.Detail)
		return e
	}

	v, ok := s.Value.Number()
	if !ok {
		if l.cfg.StrictModSettings {
			return newError(KindUnsupportedSetting, op,
				fmt.Sprintf("mod %q setting %q has %s value", acronym, s.Key, s.Value.Kind()))
		}
		l.log.Warn(context.Background(), "mod setting not forwarded to native library",
			"mod", acronym, "setting", s.Key, "type", s.Value.Kind().String())
		return nil
	}

	if rc := l.native.ModSetSetting(mod, s.Key, v); rc != native.Success {
		e := nativeError(op, rc)
		e.Detail = fmt.Sprintf("mod %q setting %q", acronym, s.Key)
		return e
	}
	return nil
}

func (c *modCollection) handle() native.Handle {
	return c.obj.h
}

// close destroys the collection first, then each mod in creation order.
func (c *modCollection) close() {
	if c == nil {
		return
	}
	c.obj.close()
	for _, m := range c.mods {
		m.close()
	}
	c.mods = nil
}
