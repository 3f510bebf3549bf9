// Package config provides Viper-based configuration loading for the
// encounter engine and its demo driver.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// EncounterConfig holds the engine's rule parameters.
type EncounterConfig struct {
	// TurnOrder is the per-round ordering policy: "roster" or "initiative".
	TurnOrder string `mapstructure:"turn_order"`
	// MoraleThreshold is the 2d6 morale check target; a roll above it breaks.
	MoraleThreshold int `mapstructure:"morale_threshold"`
	// MoraleDice is the morale roll expression.
	MoraleDice string `mapstructure:"morale_dice"`
	// MaxSteps bounds a single drive of the state machine before it faults.
	MaxSteps int `mapstructure:"max_steps"`
}

// ContentConfig holds paths to YAML content directories. Empty paths fall
// back to the compiled-in catalogs.
type ContentConfig struct {
	// SpellsDir is the directory of spell definition files.
	SpellsDir string `mapstructure:"spells_dir"`
	// ConditionsDir is the directory of condition definition files.
	ConditionsDir string `mapstructure:"conditions_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Encounter EncounterConfig `mapstructure:"encounter"`
	Content   ContentConfig   `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEncounter(c.Encounter); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateEncounter(e EncounterConfig) error {
	var errs []string
	validOrders := map[string]bool{"roster": true, "initiative": true}
	if !validOrders[e.TurnOrder] {
		errs = append(errs, fmt.Sprintf("encounter.turn_order must be one of [roster, initiative], got %q", e.TurnOrder))
	}
	if e.MoraleThreshold < 2 || e.MoraleThreshold > 12 {
		errs = append(errs, fmt.Sprintf("encounter.morale_threshold must be 2-12, got %d", e.MoraleThreshold))
	}
	if e.MoraleDice == "" {
		errs = append(errs, "encounter.morale_dice must not be empty")
	}
	if e.MaxSteps < 1 {
		errs = append(errs, fmt.Sprintf("encounter.max_steps must be >= 1, got %d", e.MaxSteps))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no file is supplied.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always unmarshal and validate.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("encounter.turn_order", "roster")
	v.SetDefault("encounter.morale_threshold", 8)
	v.SetDefault("encounter.morale_dice", "2d6")
	v.SetDefault("encounter.max_steps", 10000)

	v.SetDefault("content.spells_dir", "")
	v.SetDefault("content.conditions_dir", "")
}
