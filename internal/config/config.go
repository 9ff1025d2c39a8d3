// Package config provides configuration loading for tsconv using koanf.
// Precedence: TSCONV_* environment variables, then compiled defaults.
package config

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	_ "time/tzdata" // TSCONV_TIMEZONE must resolve on hosts without a zoneinfo database

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Configuration errors. Use errors.Is() for matching.
var (
	// ErrConfigRequired is returned when a required key is missing.
	ErrConfigRequired = errors.New("required configuration missing")

	// ErrInvalidConfig is returned when a key holds an unsupported value.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// EnvPrefix is stripped from environment variable names before mapping.
const EnvPrefix = "TSCONV_"

// Input modes select how positional arguments are read.
const (
	InputAuto   = "auto"   // integer nanos, then float secs, then calendar text
	InputNanos  = "nanos"  // UNIX nanoseconds
	InputMicros = "micros" // UNIX microseconds
	InputMillis = "millis" // UNIX milliseconds
	InputSecs   = "secs"   // UNIX seconds, fractional allowed
	InputANSI   = "ansi"   // nanoseconds since 1601-01-01
	InputTicks  = "ticks"  // Windows FILETIME 100 ns ticks
	InputPG     = "pg"     // PostgreSQL microseconds since 2000-01-01
	InputUUID   = "uuid"   // time-based UUID (v1, v6, v7)
)

// InputModes lists every accepted TSCONV_INPUT value.
var InputModes = []string{InputAuto, InputNanos, InputMicros, InputMillis, InputSecs, InputANSI, InputTicks, InputPG, InputUUID}

// Config holds all tsconv configuration.
type Config struct {
	// Environment identifier: "local", "dev", "prod"
	Environment string `koanf:"environment"`

	// Input mode, one of InputModes
	Input string `koanf:"input"`

	// Output format: "json" or "text"
	Output string `koanf:"output"`

	// Timezone for calendar text without an explicit zone (IANA name)
	Timezone string `koanf:"timezone"`

	Log  LogConfig  `koanf:"log"`
	OTEL OTELConfig `koanf:"otel"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// OTELConfig holds OpenTelemetry configuration.
type OTELConfig struct {
	Endpoint    string `koanf:"endpoint"` // Empty disables OTLP export
	ServiceName string `koanf:"service"`
}

// defaults returns a Config with compiled default values.
func defaults() *Config {
	return &Config{
		Environment: "local",
		Input:       InputAuto,
		Output:      "json",
		Timezone:    "UTC",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		OTEL: OTELConfig{
			ServiceName: "tsconv",
		},
	}
}

// Load loads configuration following the precedence:
// 1. Environment variables (highest)
// 2. Compiled defaults (lowest)
//
// Unsupported values fail with ErrInvalidConfig, missing required keys
// with ErrConfigRequired.
func Load(ctx context.Context) (*Config, error) {
	k := koanf.New(".")

	// Start with compiled defaults
	cfg := defaults()

	// Load environment variables
	// Prefix: TSCONV_ (stripped)
	// Delimiter: _ maps to . for nested config
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// Unmarshal into config struct
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks values and required keys.
func validate(cfg *Config) error {
	cfg.Input = strings.ToLower(cfg.Input)
	if !slices.Contains(InputModes, cfg.Input) {
		return fmt.Errorf("%w: input %q (want one of %s)", ErrInvalidConfig, cfg.Input, strings.Join(InputModes, ", "))
	}

	cfg.Output = strings.ToLower(cfg.Output)
	if cfg.Output != "json" && cfg.Output != "text" {
		return fmt.Errorf("%w: output %q (want json or text)", ErrInvalidConfig, cfg.Output)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, cfg.Timezone, err)
	}

	// In production, metrics must be exported somewhere
	if cfg.IsProd() && cfg.OTEL.Endpoint == "" {
		return fmt.Errorf("%w: otel.endpoint", ErrConfigRequired)
	}

	return nil
}

// Location returns the parsed Timezone. Load has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProd returns true if running in production environment.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}
