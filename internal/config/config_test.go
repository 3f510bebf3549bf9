package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Encounter: EncounterConfig{
			TurnOrder:       "roster",
			MoraleThreshold: 8,
			MoraleDice:      "2d6",
			MaxSteps:        10000,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "roster", cfg.Encounter.TurnOrder)
	assert.Equal(t, 8, cfg.Encounter.MoraleThreshold)
	assert.Equal(t, "2d6", cfg.Encounter.MoraleDice)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
encounter:
  turn_order: initiative
  morale_threshold: 9
  morale_dice: 2d6
  max_steps: 500
content:
  spells_dir: content/spells
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "initiative", cfg.Encounter.TurnOrder)
	assert.Equal(t, 9, cfg.Encounter.MoraleThreshold)
	assert.Equal(t, 500, cfg.Encounter.MaxSteps)
	assert.Equal(t, "content/spells", cfg.Content.SpellsDir)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: warn
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "roster", cfg.Encounter.TurnOrder)
	assert.Equal(t, 10000, cfg.Encounter.MaxSteps)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: info
`), 0o600)
	require.NoError(t, err)

	t.Setenv("SKIRMISH_LOGGING_LEVEL", "error")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestValidateLoggingLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidateLoggingFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
}

func TestValidateTurnOrder(t *testing.T) {
	cfg := validConfig()
	cfg.Encounter.TurnOrder = "alphabetical"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encounter.turn_order")
}

func TestValidateMoraleThreshold(t *testing.T) {
	for _, bad := range []int{0, 1, 13, -3} {
		cfg := validConfig()
		cfg.Encounter.MoraleThreshold = bad
		err := cfg.Validate()
		require.Error(t, err, "threshold %d should be rejected", bad)
		assert.Contains(t, err.Error(), "encounter.morale_threshold")
	}
}

func TestValidateMaxSteps(t *testing.T) {
	cfg := validConfig()
	cfg.Encounter.MaxSteps = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encounter.max_steps")
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Encounter.TurnOrder = "alphabetical"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "encounter.turn_order")
}

func TestValidateMoraleThreshold_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		threshold := rapid.IntRange(-20, 30).Draw(t, "threshold")
		cfg := validConfig()
		cfg.Encounter.MoraleThreshold = threshold
		err := cfg.Validate()
		if threshold >= 2 && threshold <= 12 {
			assert.NoError(t, err)
		} else {
			assert.Error(t, err)
		}
	})
}
