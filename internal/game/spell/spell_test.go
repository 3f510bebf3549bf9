package spell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/modifier"
	"github.com/cory-johannsen/skirmish/internal/game/spell"
)

// TestDefaults_AllValid verifies every compiled-in spell passes validation
// and is retrievable by id.
func TestDefaults_AllValid(t *testing.T) {
	reg := spell.Defaults()
	require.NotEmpty(t, reg.All())
	for _, def := range reg.All() {
		assert.NoError(t, def.Validate(), "default spell %q must be valid", def.ID)
		got, ok := reg.Get(def.ID)
		require.True(t, ok)
		assert.Same(t, def, got)
	}

	sleep, ok := reg.Get("sleep")
	require.True(t, ok)
	assert.Equal(t, spell.AllOpposing, sleep.Targets)
	assert.Equal(t, "2d4", sleep.PoolDice)

	hold, ok := reg.Get("hold_person")
	require.True(t, ok)
	assert.Equal(t, 3, hold.Targets, "hold_person affects up to three random targets")
	assert.False(t, hold.AutoHit, "hold_person allows a saving throw")

	curse, ok := reg.Get("curse")
	require.True(t, ok)
	assert.Equal(t, "cursed", curse.ConditionID)
	assert.False(t, curse.AutoHit, "curse allows a saving throw")
}

// TestDefinition_Validate_Rejections covers the validation failure modes.
func TestDefinition_Validate_Rejections(t *testing.T) {
	cases := []struct {
		name string
		def  spell.Definition
	}{
		{"empty id", spell.Definition{Name: "x", Level: 1, Targets: 1, Damage: "1d4"}},
		{"empty name", spell.Definition{ID: "x", Level: 1, Targets: 1, Damage: "1d4"}},
		{"bad level", spell.Definition{ID: "x", Name: "x", Level: 0, Targets: 1, Damage: "1d4"}},
		{"zero targets", spell.Definition{ID: "x", Name: "x", Level: 1, Targets: 0, Damage: "1d4"}},
		{"negative targets", spell.Definition{ID: "x", Name: "x", Level: 1, Targets: -2, Damage: "1d4"}},
		{"bad damage", spell.Definition{ID: "x", Name: "x", Level: 1, Targets: 1, Damage: "1dx"}},
		{"bad pool", spell.Definition{ID: "x", Name: "x", Level: 1, Targets: 1, Damage: "1d4", PoolDice: "nope"}},
		{"no effect", spell.Definition{ID: "x", Name: "x", Level: 1, Targets: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.def.Validate())
		})
	}
}

// TestDefinition_UsableBy verifies class restriction matching.
func TestDefinition_UsableBy(t *testing.T) {
	def := spell.Definition{ID: "x", Name: "x", Level: 1, Targets: 1, Damage: "1d4",
		Classes: []string{"magic-user"}}
	assert.True(t, def.UsableBy("magic-user"))
	assert.True(t, def.UsableBy("Magic-User"))
	assert.False(t, def.UsableBy("fighter"))

	open := spell.Definition{ID: "y", Name: "y", Level: 1, Targets: 1, Damage: "1d4"}
	assert.True(t, open.UsableBy("anyone"))
}

// TestLoadDirectory_RoundTrip writes a spell YAML file and loads it back.
func TestLoadDirectory_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	doc := `id: fire_dart
name: Fire Dart
level: 2
damage: 2d6+1
targets: 1
auto_hit: true
classes:
  - magic-user
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fire_dart.yaml"), []byte(doc), 0o644))

	reg, err := spell.LoadDirectory(dir)
	require.NoError(t, err)

	def, ok := reg.Get("fire_dart")
	require.True(t, ok)
	assert.Equal(t, "2d6+1", def.Damage)
	assert.True(t, def.AutoHit)
	assert.Equal(t, 2, def.Level)
}

// TestLoadDirectory_InvalidEntryFails verifies a bad catalog file is a
// construction error, never silently skipped.
func TestLoadDirectory_InvalidEntryFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"),
		[]byte("id: bad\nname: Bad\nlevel: 0\ntargets: 1\ndamage: 1d4\n"), 0o644))

	_, err := spell.LoadDirectory(dir)
	assert.Error(t, err)
}

// TestLoadDirectory_UnknownFieldFails verifies unknown YAML keys are rejected.
func TestLoadDirectory_UnknownFieldFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "odd.yaml"),
		[]byte("id: odd\nname: Odd\nlevel: 1\ntargets: 1\ndamage: 1d4\nmana: 3\n"), 0o644))

	_, err := spell.LoadDirectory(dir)
	assert.Error(t, err)
}

// TestDefaultConditions_AllValid verifies the compiled-in condition catalog.
func TestDefaultConditions_AllValid(t *testing.T) {
	reg := spell.DefaultConditions()
	for _, id := range []string{"asleep", "shielded", "blessed", "held", "cursed"} {
		def, ok := reg.Get(id)
		require.True(t, ok, "condition %q must be registered", id)
		assert.NoError(t, def.Validate())
	}

	asleep, _ := reg.Get("asleep")
	assert.Equal(t, modifier.ArmorClass, asleep.ModifierStat())
	assert.Equal(t, -4, asleep.Value)
}

// TestConditionDef_Validate_Rejections covers condition validation failures.
func TestConditionDef_Validate_Rejections(t *testing.T) {
	cases := []struct {
		name string
		def  spell.ConditionDef
	}{
		{"empty id", spell.ConditionDef{Name: "x", Stat: "attack", Value: 1, Rounds: 1}},
		{"bad stat", spell.ConditionDef{ID: "x", Name: "x", Stat: "luck", Value: 1, Rounds: 1}},
		{"zero value", spell.ConditionDef{ID: "x", Name: "x", Stat: "attack", Value: 0, Rounds: 1}},
		{"zero rounds", spell.ConditionDef{ID: "x", Name: "x", Stat: "attack", Value: 1, Rounds: 0}},
		{"below permanent", spell.ConditionDef{ID: "x", Name: "x", Stat: "attack", Value: 1, Rounds: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.def.Validate())
		})
	}
}

// TestLoadConditionDirectory_RoundTrip writes a condition YAML file and loads
// it back.
func TestLoadConditionDirectory_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	doc := `id: slowed
name: Slowed
stat: armor_class
value: -2
rounds: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slowed.yaml"), []byte(doc), 0o644))

	reg, err := spell.LoadConditionDirectory(dir)
	require.NoError(t, err)

	def, ok := reg.Get("slowed")
	require.True(t, ok)
	assert.Equal(t, modifier.ArmorClass, def.ModifierStat())
	assert.Equal(t, 3, def.Rounds)
}
