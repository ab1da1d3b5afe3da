package nativetest

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/osu-native/osu-native-go/pkg/osunative/native"
)

// ToyBox is the text of testdata/toy_box.osu.
//
//go:embed testdata/toy_box.osu
var ToyBox string

// ToyBoxPath is the fixture path relative to this package.
const ToyBoxPath = "testdata/toy_box.osu"

// Kind is the object kind a fake handle belongs to.
type Kind string

const (
	KindBeatmap       Kind = "beatmap"
	KindRuleset       Kind = "ruleset"
	KindMod           Kind = "mod"
	KindModCollection Kind = "mod_collection"
)

// DifficultyKind returns the kind of a difficulty calculator of the given
// ruleset id.
func DifficultyKind(rulesetID int32) Kind {
	return Kind(modeName(rulesetID) + "_difficulty_calculator")
}

// PerformanceKind returns the kind of a performance calculator of the given
// ruleset id.
func PerformanceKind(rulesetID int32) Kind {
	return Kind(modeName(rulesetID) + "_performance_calculator")
}

// Call is one recorded entry point invocation.
type Call struct {
	Entry  string
	Handle native.Handle
}

type object struct {
	kind    Kind
	beatmap *beatmapData
	ruleset int32
	mod     *modData
	members []native.Handle
}

type modData struct {
	acronym  string
	settings map[string]float64
}

// Fake is an in-memory native.Library. It is safe for concurrent use.
type Fake struct {
	mu        sync.Mutex
	next      native.Handle
	objects   map[native.Handle]*object
	created   map[Kind]int
	destroyed map[Kind]int
	calls     []Call
	faults    map[string][]native.ErrorCode
	raw       map[string][]byte
	sizes     map[string]int32
}

var _ native.Library = (*Fake)(nil)

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		objects:   make(map[native.Handle]*object),
		created:   make(map[Kind]int),
		destroyed: make(map[Kind]int),
		faults:    make(map[string][]native.ErrorCode),
		raw:       make(map[string][]byte),
		sizes:     make(map[string]int32),
	}
}

// Inject makes the next call to entry return rc without doing anything
// else. Entry names are the C symbol names, e.g. "Mod_Create" or
// "OsuDifficultyCalculator_Create". Injections queue up per entry.
func (f *Fake) Inject(entry string, rc native.ErrorCode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[entry] = append(f.faults[entry], rc)
}

// OverrideString makes the string accessor entry return raw verbatim,
// including (or omitting) the terminating NUL.
func (f *Fake) OverrideString(entry string, raw []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raw[entry] = append([]byte(nil), raw...)
}

// OverrideSize makes the size query of entry report size regardless of the
// actual string length.
func (f *Fake) OverrideSize(entry string, size int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizes[entry] = size
}

// Created returns how many objects of kind were created.
func (f *Fake) Created(kind Kind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created[kind]
}

// Destroyed returns how many objects of kind were destroyed.
func (f *Fake) Destroyed(kind Kind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyed[kind]
}

// Kinds returns every kind that was created at least once.
func (f *Fake) Kinds() []Kind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Kind, 0, len(f.created))
	for k := range f.created {
		out = append(out, k)
	}
	return out
}

// Live returns the number of objects not yet destroyed.
func (f *Fake) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// Calls returns a copy of the call log.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo counts calls to entry.
func (f *Fake) CallsTo(entry string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Entry == entry {
			n++
		}
	}
	return n
}

// CallsWith returns the entries that were called with handle h, in order.
func (f *Fake) CallsWith(h native.Handle) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if c.Handle == h {
			out = append(out, c.Entry)
		}
	}
	return out
}

// begin records a call and pops a pending injection for entry. The caller
// must hold f.mu.
func (f *Fake) begin(entry string, h native.Handle) (native.ErrorCode, bool) {
	f.calls = append(f.calls, Call{Entry: entry, Handle: h})
	queue := f.faults[entry]
	if len(queue) == 0 {
		return 0, false
	}
	rc := queue[0]
	if len(queue) == 1 {
		delete(f.faults, entry)
	} else {
		f.faults[entry] = queue[1:]
	}
	return rc, true
}

func (f *Fake) add(o *object) native.Handle {
	f.next++
	f.objects[f.next] = o
	f.created[o.kind]++
	return f.next
}

func (f *Fake) lookup(h native.Handle, kind Kind) (*object, native.ErrorCode) {
	o, ok := f.objects[h]
	if !ok || o.kind != kind {
		return nil, native.ObjectNotFound
	}
	return o, native.Success
}

func (f *Fake) destroy(entry string, h native.Handle, kind Kind) native.ErrorCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin(entry, h); ok {
		return rc
	}
	if _, rc := f.lookup(h, kind); rc != native.Success {
		return rc
	}
	delete(f.objects, h)
	f.destroyed[kind]++
	return native.Success
}

// readString serves one phase of the two-phase string protocol. A nil buf is
// the size query; an empty non-nil buf is a zero-length read. The cgo backend
// maps these to a null and a non-null pointer respectively.
func (f *Fake) readString(entry string, h native.Handle, kind Kind, value func(*object) string, buf []byte, size *int32) native.ErrorCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin(entry, h); ok {
		return rc
	}
	o, rc := f.lookup(h, kind)
	if rc != native.Success {
		return rc
	}

	data, ok := f.raw[entry]
	if !ok {
		data = append([]byte(value(o)), 0)
	}
	if buf == nil {
		if n, ok := f.sizes[entry]; ok {
			*size = n
		} else {
			*size = int32(len(data))
		}
		return native.BufferSizeQuery
	}

	n := copy(buf[:min(len(buf), int(max(*size, 0)))], data)
	*size = int32(n)
	return native.Success
}

func (f *Fake) ModCreate(acronym string, out *native.Handle) native.ErrorCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin("Mod_Create", 0); ok {
		return rc
	}
	if !knownAcronym(acronym) {
		return native.Failure
	}
	*out = f.add(&object{kind: KindMod, mod: &modData{acronym: acronym, settings: map[string]float64{}}})
	return native.Success
}

func (f *Fake) ModSetSetting(mod native.Handle, key string, value float64) native.ErrorCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin("Mod_SetSetting", mod); ok {
		return rc
	}
	o, rc := f.lookup(mod, KindMod)
	if rc != native.Success {
		return rc
	}
	o.mod.settings[key] = value
	return native.Success
}

func (f *Fake) ModDestroy(mod native.Handle) native.ErrorCode {
	return f.destroy("Mod_Destroy", mod, KindMod)
}

func (f *Fake) ModsCollectionCreate(out *native.Handle) native.ErrorCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin("ModsCollection_Create", 0); ok {
		return rc
	}
	*out = f.add(&object{kind: KindModCollection})
	return native.Success
}

func (f *Fake) ModsCollectionAdd(collection, mod native.Handle) native.ErrorCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin("ModsCollection_Add", collection); ok {
		return rc
	}
	c, rc := f.lookup(collection, KindModCollection)
	if rc != native.Success {
		return rc
	}
	if _, rc := f.lookup(mod, KindMod); rc != native.Success {
		return rc
	}
	c.members = append(c.members, mod)
	return native.Success
}

func (f *Fake) ModsCollectionDestroy(collection native.Handle) native.ErrorCode {
	return f.destroy("ModsCollection_Destroy", collection, KindModCollection)
}

func (f *Fake) RulesetCreateFromID(id int32, out *native.Ruleset) native.ErrorCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin("Ruleset_CreateFromId", 0); ok {
		return rc
	}
	if modeName(id) == "" {
		return native.RulesetUnavailable
	}
	*out = native.Ruleset{Handle: f.add(&object{kind: KindRuleset, ruleset: id}), ID: id}
	return native.Success
}

func (f *Fake) RulesetCreateFromShortName(shortName string, out *native.Ruleset) native.ErrorCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin("Ruleset_CreateFromShortName", 0); ok {
		return rc
	}
	for id := int32(0); id < int32(len(shortNames)); id++ {
		if shortNames[id] == shortName {
			*out = native.Ruleset{Handle: f.add(&object{kind: KindRuleset, ruleset: id}), ID: id}
			return native.Success
		}
	}
	return native.RulesetUnavailable
}

func (f *Fake) RulesetGetShortName(h native.Handle, buf []byte, size *int32) native.ErrorCode {
	return f.readString("Ruleset_GetShortName", h, KindRuleset, func(o *object) string {
		return shortNames[o.ruleset]
	}, buf, size)
}

func (f *Fake) RulesetDestroy(h native.Handle) native.ErrorCode {
	return f.destroy("Ruleset_Destroy", h, KindRuleset)
}

func (f *Fake) BeatmapCreateFromFile(path string, out *native.Beatmap) native.ErrorCode {
	f.mu.Lock()
	if rc, ok := f.begin("Beatmap_CreateFromFile", 0); ok {
		f.mu.Unlock()
		return rc
	}
	f.mu.Unlock()

	text, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return native.BeatmapFileNotFound
	}
	if err != nil {
		return native.Failure
	}
	return f.createBeatmap(string(text), out)
}

func (f *Fake) BeatmapCreateFromText(text string, out *native.Beatmap) native.ErrorCode {
	f.mu.Lock()
	if rc, ok := f.begin("Beatmap_CreateFromText", 0); ok {
		f.mu.Unlock()
		return rc
	}
	f.mu.Unlock()
	return f.createBeatmap(text, out)
}

func (f *Fake) createBeatmap(text string, out *native.Beatmap) native.ErrorCode {
	bm, err := parseBeatmap(text)
	if err != nil {
		return native.Failure
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	h := f.add(&object{kind: KindBeatmap, beatmap: bm})
	*out = native.Beatmap{
		Handle:            h,
		RulesetID:         bm.mode,
		ApproachRate:      bm.approachRate,
		DrainRate:         bm.drainRate,
		OverallDifficulty: bm.overallDifficulty,
		CircleSize:        bm.circleSize,
		SliderMultiplier:  bm.sliderMultiplier,
		SliderTickRate:    bm.sliderTickRate,
	}
	return native.Success
}

func (f *Fake) BeatmapGetTitle(h native.Handle, buf []byte, size *int32) native.ErrorCode {
	return f.readString("Beatmap_GetTitle", h, KindBeatmap, func(o *object) string { return o.beatmap.title }, buf, size)
}

func (f *Fake) BeatmapGetArtist(h native.Handle, buf []byte, size *int32) native.ErrorCode {
	return f.readString("Beatmap_GetArtist", h, KindBeatmap, func(o *object) string { return o.beatmap.artist }, buf, size)
}

func (f *Fake) BeatmapGetVersion(h native.Handle, buf []byte, size *int32) native.ErrorCode {
	return f.readString("Beatmap_GetVersion", h, KindBeatmap, func(o *object) string { return o.beatmap.version }, buf, size)
}

func (f *Fake) BeatmapDestroy(h native.Handle) native.ErrorCode {
	return f.destroy("Beatmap_Destroy", h, KindBeatmap)
}

// resolveMods reads the mods of a live collection. A member destroyed while
// still in the collection reports ObjectNotFound. The caller must hold f.mu.
func (f *Fake) resolveMods(collection native.Handle) (modSet, native.ErrorCode) {
	c, rc := f.lookup(collection, KindModCollection)
	if rc != native.Success {
		return nil, rc
	}
	mods := make(modSet, 0, len(c.members))
	for _, h := range c.members {
		m, rc := f.lookup(h, KindMod)
		if rc != native.Success {
			return nil, rc
		}
		mods = append(mods, *m.mod)
	}
	return mods, native.Success
}

func (f *Fake) OsuDifficulty() native.DifficultyTable[native.OsuDifficultyAttributes] {
	return &difficultyTable[native.OsuDifficultyAttributes]{f: f, ruleset: 0, compute: osuDifficulty}
}

func (f *Fake) TaikoDifficulty() native.DifficultyTable[native.TaikoDifficultyAttributes] {
	return &difficultyTable[native.TaikoDifficultyAttributes]{f: f, ruleset: 1, compute: taikoDifficulty}
}

func (f *Fake) CatchDifficulty() native.DifficultyTable[native.CatchDifficultyAttributes] {
	return &difficultyTable[native.CatchDifficultyAttributes]{f: f, ruleset: 2, compute: catchDifficulty}
}

func (f *Fake) ManiaDifficulty() native.DifficultyTable[native.ManiaDifficultyAttributes] {
	return &difficultyTable[native.ManiaDifficultyAttributes]{f: f, ruleset: 3, compute: maniaDifficulty}
}

func (f *Fake) OsuPerformance() native.PerformanceTable[native.OsuDifficultyAttributes, native.OsuPerformanceAttributes] {
	return &performanceTable[native.OsuDifficultyAttributes, native.OsuPerformanceAttributes]{f: f, ruleset: 0, compute: osuPerformance}
}

func (f *Fake) TaikoPerformance() native.PerformanceTable[native.TaikoDifficultyAttributes, native.TaikoPerformanceAttributes] {
	return &performanceTable[native.TaikoDifficultyAttributes, native.TaikoPerformanceAttributes]{f: f, ruleset: 1, compute: taikoPerformance}
}

func (f *Fake) CatchPerformance() native.PerformanceTable[native.CatchDifficultyAttributes, native.CatchPerformanceAttributes] {
	return &performanceTable[native.CatchDifficultyAttributes, native.CatchPerformanceAttributes]{f: f, ruleset: 2, compute: catchPerformance}
}

func (f *Fake) ManiaPerformance() native.PerformanceTable[native.ManiaDifficultyAttributes, native.ManiaPerformanceAttributes] {
	return &performanceTable[native.ManiaDifficultyAttributes, native.ManiaPerformanceAttributes]{f: f, ruleset: 3, compute: maniaPerformance}
}

type difficultyCalc struct {
	ruleset int32
	beatmap *beatmapData
}

type difficultyTable[A any] struct {
	f       *Fake
	ruleset int32
	compute func(*beatmapData, modSet) A
}

func (t *difficultyTable[A]) entry(name string) string {
	return entryPrefix(t.ruleset) + "DifficultyCalculator_" + name
}

func (t *difficultyTable[A]) Create(ruleset, beatmap native.Handle, out *native.Handle) native.ErrorCode {
	f := t.f
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin(t.entry("Create"), ruleset); ok {
		return rc
	}
	r, rc := f.lookup(ruleset, KindRuleset)
	if rc != native.Success {
		return rc
	}
	b, rc := f.lookup(beatmap, KindBeatmap)
	if rc != native.Success {
		return rc
	}
	if r.ruleset != t.ruleset {
		return native.UnexpectedRuleset
	}
	*out = f.add(&object{kind: DifficultyKind(t.ruleset), ruleset: t.ruleset, beatmap: b.beatmap})
	return native.Success
}

func (t *difficultyTable[A]) CalculateMods(calculator, ruleset, mods native.Handle, out *A) native.ErrorCode {
	f := t.f
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin(t.entry("CalculateMods"), calculator); ok {
		return rc
	}
	c, rc := f.lookup(calculator, DifficultyKind(t.ruleset))
	if rc != native.Success {
		return rc
	}
	r, rc := f.lookup(ruleset, KindRuleset)
	if rc != native.Success {
		return rc
	}
	if r.ruleset != t.ruleset {
		return native.UnexpectedRuleset
	}
	set, rc := f.resolveMods(mods)
	if rc != native.Success {
		return rc
	}
	*out = t.compute(c.beatmap, set)
	return native.Success
}

func (t *difficultyTable[A]) Destroy(calculator native.Handle) native.ErrorCode {
	return t.f.destroy(t.entry("Destroy"), calculator, DifficultyKind(t.ruleset))
}

type performanceTable[D, P any] struct {
	f       *Fake
	ruleset int32
	compute func(native.Score, D, modSet) P
}

func (t *performanceTable[D, P]) entry(name string) string {
	return entryPrefix(t.ruleset) + "PerformanceCalculator_" + name
}

func (t *performanceTable[D, P]) Create(out *native.Handle) native.ErrorCode {
	f := t.f
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin(t.entry("Create"), 0); ok {
		return rc
	}
	*out = f.add(&object{kind: PerformanceKind(t.ruleset), ruleset: t.ruleset})
	return native.Success
}

func (t *performanceTable[D, P]) Calculate(calculator native.Handle, score native.Score, difficulty D, out *P) native.ErrorCode {
	f := t.f
	f.mu.Lock()
	defer f.mu.Unlock()
	if rc, ok := f.begin(t.entry("Calculate"), calculator); ok {
		return rc
	}
	if _, rc := f.lookup(calculator, PerformanceKind(t.ruleset)); rc != native.Success {
		return rc
	}
	r, rc := f.lookup(score.RulesetHandle, KindRuleset)
	if rc != native.Success {
		return rc
	}
	if r.ruleset != t.ruleset {
		return native.UnexpectedRuleset
	}
	if _, rc := f.lookup(score.BeatmapHandle, KindBeatmap); rc != native.Success {
		return rc
	}
	set, rc := f.resolveMods(score.ModsHandle)
	if rc != native.Success {
		return rc
	}
	*out = t.compute(score, difficulty, set)
	return native.Success
}

func (t *performanceTable[D, P]) Destroy(calculator native.Handle) native.ErrorCode {
	return t.f.destroy(t.entry("Destroy"), calculator, PerformanceKind(t.ruleset))
}

var shortNames = [...]string{"osu", "taiko", "fruits", "mania"}

// modeName matches the ruleset short names so fake kinds line up with the
// kinds osunative.Library reports.
func modeName(id int32) string {
	if id < 0 || id >= int32(len(shortNames)) {
		return ""
	}
	return shortNames[id]
}

func entryPrefix(id int32) string {
	switch id {
	case 0:
		return "Osu"
	case 1:
		return "Taiko"
	case 2:
		return "Catch"
	default:
		return "Mania"
	}
}
