// Package config provides Viper-based configuration loading for skirmish.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a zap sink: "stderr", "stdout", or a file path.
	Output string `mapstructure:"output"`
}

// RulesConfig holds the combat rule constants.
type RulesConfig struct {
	// MaxHealth is the starting and maximum health of every character.
	MaxHealth int `mapstructure:"max_health"`
	// LevelGap is the level difference at which damage scaling kicks in.
	LevelGap int `mapstructure:"level_gap"`
	// DamageModifier is the fraction added or removed when the level gap is reached.
	DamageModifier float64 `mapstructure:"damage_modifier"`
	// MeleeRange is the maximum attack distance for melee weapons.
	MeleeRange float64 `mapstructure:"melee_range"`
	// RangedRange is the maximum attack distance for ranged weapons.
	RangedRange float64 `mapstructure:"ranged_range"`
}

// ScriptingConfig holds Lua scenario runner settings.
type ScriptingConfig struct {
	// InstructionLimit caps Lua opcodes per script; 0 uses the package default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Rules     RulesConfig     `mapstructure:"rules"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := c.Rules.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Validate checks the rule constants.
//
// Postcondition: Returns nil iff every constant is in range.
func (r RulesConfig) Validate() error {
	var errs []string
	if r.MaxHealth < 1 {
		errs = append(errs, fmt.Sprintf("rules.max_health must be >= 1, got %d", r.MaxHealth))
	}
	if r.LevelGap < 1 {
		errs = append(errs, fmt.Sprintf("rules.level_gap must be >= 1, got %d", r.LevelGap))
	}
	if r.DamageModifier < 0 || r.DamageModifier > 1 || math.IsNaN(r.DamageModifier) {
		errs = append(errs, fmt.Sprintf("rules.damage_modifier must be in [0, 1], got %g", r.DamageModifier))
	}
	if r.MeleeRange <= 0 {
		errs = append(errs, fmt.Sprintf("rules.melee_range must be > 0, got %g", r.MeleeRange))
	}
	if r.RangedRange <= 0 {
		errs = append(errs, fmt.Sprintf("rules.ranged_range must be > 0, got %g", r.RangedRange))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
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
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
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

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
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

// Default returns the configuration produced by defaults alone.
//
// Postcondition: Returns a Config that passes Validate.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults are invalid: %v", err))
	}
	return cfg
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("rules.max_health", 1000)
	v.SetDefault("rules.level_gap", 5)
	v.SetDefault("rules.damage_modifier", 0.5)
	v.SetDefault("rules.melee_range", 2.0)
	v.SetDefault("rules.ranged_range", 20.0)

	v.SetDefault("scripting.instruction_limit", 0)
}
