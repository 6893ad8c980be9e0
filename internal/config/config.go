// Package config provides Viper-based configuration loading for the mapper tools.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MapsConfig locates zone content.
type MapsConfig struct {
	// Dir is the directory holding zone files (.yaml, .yml, optionally .zst).
	Dir string `mapstructure:"dir"`
	// Store is an optional bbolt database path. When set, zones are read from
	// and imported into the store instead of Dir.
	Store string `mapstructure:"store"`
	// Compress writes imported zone files as zstd-compressed .yaml.zst.
	Compress bool `mapstructure:"compress"`
}

// PathfindingConfig tunes route search.
type PathfindingConfig struct {
	// IncludeHidden makes hidden arcs traversable.
	IncludeHidden bool `mapstructure:"include_hidden"`
	// MaxExpansions caps rooms expanded per search. 0 means unlimited.
	MaxExpansions int `mapstructure:"max_expansions"`
	// Timeout bounds a single route query. 0 means no deadline.
	Timeout time.Duration `mapstructure:"timeout"`
}

// LookupConfig tunes fuzzy room lookup.
type LookupConfig struct {
	// FuzzyThreshold is the minimum Jaro-Winkler score accepted, in (0, 1].
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold"`
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
	Maps        MapsConfig        `mapstructure:"maps"`
	Pathfinding PathfindingConfig `mapstructure:"pathfinding"`
	Lookup      LookupConfig      `mapstructure:"lookup"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateMaps(c.Maps); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validatePathfinding(c.Pathfinding); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLookup(c.Lookup); err != nil {
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

func validateMaps(m MapsConfig) error {
	if m.Dir == "" && m.Store == "" {
		return fmt.Errorf("maps.dir or maps.store must be set")
	}
	return nil
}

func validatePathfinding(p PathfindingConfig) error {
	var errs []string
	if p.MaxExpansions < 0 {
		errs = append(errs, fmt.Sprintf("pathfinding.max_expansions must be >= 0, got %d", p.MaxExpansions))
	}
	if p.Timeout < 0 {
		errs = append(errs, "pathfinding.timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLookup(l LookupConfig) error {
	if l.FuzzyThreshold <= 0 || l.FuzzyThreshold > 1 {
		return fmt.Errorf("lookup.fuzzy_threshold must be in (0, 1], got %g", l.FuzzyThreshold)
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

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// NewViper returns a Viper instance with defaults and OUTLANDER_ environment
// overrides applied. Callers may bind flags onto it before LoadFromViper.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("OUTLANDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("maps.dir", "maps")
	v.SetDefault("maps.store", "")
	v.SetDefault("maps.compress", false)

	v.SetDefault("pathfinding.include_hidden", true)
	v.SetDefault("pathfinding.max_expansions", 0)
	v.SetDefault("pathfinding.timeout", "0s")

	v.SetDefault("lookup.fuzzy_threshold", 0.85)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
