// Package config provides Viper-based configuration loading for the battlers
// simulator.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SimulationConfig holds the battle engine limits and randomness settings.
type SimulationConfig struct {
	// MaxTurns is the turn cap before forced inconclusive termination.
	MaxTurns int `mapstructure:"max_turns"`
	// MaxPlayers bounds randomized roster generation.
	MaxPlayers int `mapstructure:"max_players"`
	// ArenaSize is the per-axis bound for randomized starting locations.
	ArenaSize int `mapstructure:"arena_size"`
	// Seed selects the random source: 0 uses crypto/rand (non-reproducible);
	// any other value uses a seeded stream with a reproducible draw order.
	Seed int64 `mapstructure:"seed"`
}

// StepperConfig holds the interactive runner settings.
type StepperConfig struct {
	// TickRate is the delay between auto-advanced steps.
	TickRate time.Duration `mapstructure:"tick_rate"`
	// MaxLogEntries bounds the rolling battle log.
	MaxLogEntries int `mapstructure:"max_log_entries"`
	// AutoAdvance starts the paced driver stepping without input.
	AutoAdvance bool `mapstructure:"auto_advance"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Stepper    StepperConfig    `mapstructure:"stepper"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateStepper(c.Stepper); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("simulation.max_turns must be >= 1, got %d", s.MaxTurns))
	}
	if s.MaxPlayers < 1 {
		errs = append(errs, fmt.Sprintf("simulation.max_players must be >= 1, got %d", s.MaxPlayers))
	}
	if s.ArenaSize < 1 {
		errs = append(errs, fmt.Sprintf("simulation.arena_size must be >= 1, got %d", s.ArenaSize))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateStepper(s StepperConfig) error {
	var errs []string
	if s.TickRate <= 0 {
		errs = append(errs, fmt.Sprintf("stepper.tick_rate must be positive, got %s", s.TickRate))
	}
	if s.MaxLogEntries < 1 {
		errs = append(errs, fmt.Sprintf("stepper.max_log_entries must be >= 1, got %d", s.MaxLogEntries))
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
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error naming the cause.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with BATTLERS_ prefix
	v.SetEnvPrefix("BATTLERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
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

// Default returns the configuration used when no config file is supplied.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("config: unmarshalling defaults: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.max_turns", 256)
	v.SetDefault("simulation.max_players", 8)
	v.SetDefault("simulation.arena_size", 60)
	v.SetDefault("simulation.seed", 0)

	v.SetDefault("stepper.tick_rate", "500ms")
	v.SetDefault("stepper.max_log_entries", 50)
	v.SetDefault("stepper.auto_advance", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
