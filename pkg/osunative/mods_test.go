package osunative

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyModsAcronyms(t *testing.T) {
	cases := []struct {
		name string
		bits LegacyMods
		want []string
	}{
		{"none", 0, []string{}},
		{"hddt", LegacyHidden | LegacyDoubleTime, []string{"HD", "DT"}},
		{"nightcore implies dt", LegacyDoubleTime | LegacyNightcore, []string{"NC"}},
		{"perfect implies sd", LegacySuddenDeath | LegacyPerfect | LegacyHardRock, []string{"HR", "PF"}},
		{"mania keys", LegacyKey4 | LegacyKey7, []string{"4K", "7K"}},
		{"high bits", LegacyScoreV2 | LegacyMirror, []string{"SV2", "MR"}},
		{"unknown bit ignored", 1 << 31, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.bits.Acronyms())
		})
	}
}

func TestModSourcesConvert(t *testing.T) {
	fromLegacy, err := LegacyMods(LegacyHidden | LegacyHardRock).GameMods()
	require.NoError(t, err)
	fromAcronyms, err := Acronyms{"HD", "HR"}.GameMods()
	require.NoError(t, err)
	assert.Equal(t, fromAcronyms, fromLegacy)

	fromJSON, err := ModsJSON(`[{"acronym":"HD"},{"acronym":"HR"}]`).GameMods()
	require.NoError(t, err)
	assert.Equal(t, fromAcronyms, fromJSON)

	none, err := toGameMods(nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestParseModsJSONKeepsSettingOrder(t *testing.T) {
	mods, err := ParseModsJSON([]byte(`[
		{"acronym": "DT", "settings": {"speed_change": 1.3, "adjust_pitch": true}},
		{"acronym": "DA", "settings": {"circle_size": 3, "approach_rate": 10.5, "extended_limits": false}},
		{"acronym": "HD", "extra": {"ignored": [1, 2]}}
	]`))
	require.NoError(t, err)
	require.Len(t, mods, 3)

	assert.Equal(t, "DT", mods[0].Acronym)
	require.Len(t, mods[0].Settings, 2)
	assert.Equal(t, "speed_change", mods[0].Settings[0].Key)
	v, ok := mods[0].Settings[0].Value.Number()
	assert.True(t, ok)
	assert.Equal(t, 1.3, v)
	b, ok := mods[0].Settings[1].Value.Bool()
	assert.True(t, ok)
	assert.True(t, b)

	keys := []string{}
	for _, s := range mods[1].Settings {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"circle_size", "approach_rate", "extended_limits"}, keys)

	assert.Equal(t, "HD", mods[2].Acronym)
	assert.Empty(t, mods[2].Settings)
}

func TestParseModsJSONErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":        `DT`,
		"object":          `{"acronym":"DT"}`,
		"missing acronym": `[{"settings":{}}]`,
		"acronym number":  `[{"acronym":5}]`,
		"nested setting":  `[{"acronym":"DT","settings":{"x":{"y":1}}}]`,
		"null setting":    `[{"acronym":"DT","settings":{"x":null}}]`,
		"trailing":        `[] []`,
		"truncated":       `[{"acronym":"DT"`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseModsJSON([]byte(doc))
			require.ErrorIs(t, err, ErrModsDeserialization)
		})
	}
}

func TestGameModsJSON(t *testing.T) {
	mods := GameMods{
		Mod("DT").With("speed_change", NumberSetting(1.25)).With("adjust_pitch", BoolSetting(false)),
		Mod("HD"),
	}
	data, err := json.Marshal(mods)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"acronym":"DT","settings":{"speed_change":1.25,"adjust_pitch":false}},{"acronym":"HD"}]`, string(data))

	var back GameMods
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, mods, back)
}

func TestGameModsJSONRejectsNaN(t *testing.T) {
	_, err := GameMods{Mod("DT").With("speed_change", NumberSetting(math.NaN()))}.MarshalJSON()
	require.ErrorIs(t, err, ErrModsSerialization)
}

func TestGameModsJSONRejectsUnsetSetting(t *testing.T) {
	mods := GameMods{{Acronym: "DT", Settings: []Setting{{Key: "speed_change"}}}}
	_, err := mods.MarshalJSON()
	require.ErrorIs(t, err, ErrModsSerialization)

	_, err = json.Marshal(mods)
	require.Error(t, err)
}

func TestGameModWith(t *testing.T) {
	base := Mod("DT").With("speed_change", NumberSetting(1.2))
	updated := base.With("speed_change", NumberSetting(1.4)).With("adjust_pitch", BoolSetting(true))

	v, _ := base.Setting("speed_change")
	n, _ := v.Number()
	assert.Equal(t, 1.2, n, "With must not mutate the receiver")

	require.Len(t, updated.Settings, 2)
	assert.Equal(t, "speed_change", updated.Settings[0].Key)
	v, _ = updated.Setting("speed_change")
	n, _ = v.Number()
	assert.Equal(t, 1.4, n)
}

func TestGameModsString(t *testing.T) {
	assert.Equal(t, "NM", GameMods(nil).String())
	mods := GameMods{Mod("HD"), Mod("DT").With("speed_change", NumberSetting(1.3))}
	assert.Equal(t, "HDDT(speed_change=1.3)", mods.String())
	assert.Equal(t, []string{"HD", "DT"}, mods.Acronyms())
}

func TestGameModsCloneIsDeep(t *testing.T) {
	mods := GameMods{Mod("DT").With("speed_change", NumberSetting(1.3))}
	clone := mods.Clone()
	clone[0].Settings[0].Value = NumberSetting(2)

	v, _ := mods[0].Settings[0].Value.Number()
	assert.Equal(t, 1.3, v)
}
