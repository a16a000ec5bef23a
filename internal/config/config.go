// Package config provides Viper-based configuration management for rsso
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete rsso configuration
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GeneralConfig contains display and cache behavior settings
type GeneralConfig struct {
	DefaultLimit        int  `mapstructure:"default_limit"`
	RefreshAgeMins      int  `mapstructure:"refresh_age_mins"`
	MaxHistoryPerFeed   int  `mapstructure:"max_history_per_feed"`
	NewLineBetweenItems bool `mapstructure:"new_line_between_items"`
}

// PathsConfig contains file location overrides
type PathsConfig struct {
	StateFile string `mapstructure:"state_file"`
}

// FetchConfig contains transport settings
type FetchConfig struct {
	Workers     int `mapstructure:"workers"`
	TimeoutSecs int `mapstructure:"timeout_secs"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from config.toml and RSSO_* environment variables
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "rsso"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("RSSO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Paths.StateFile == "" {
		path, err := defaultStatePath()
		if err != nil {
			return nil, err
		}
		cfg.Paths.StateFile = path
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("general.default_limit", 20)
	v.SetDefault("general.refresh_age_mins", 60)
	v.SetDefault("general.max_history_per_feed", 200)
	v.SetDefault("general.new_line_between_items", false)

	v.SetDefault("paths.state_file", "")

	v.SetDefault("fetch.workers", 4)
	v.SetDefault("fetch.timeout_secs", 10)

	v.SetDefault("output.colors", true)

	v.SetDefault("logging.level", "info")
}

// defaultStatePath resolves the platform default state file location
func defaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(dir, "rsso", "state.json"), nil
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	if cfg.General.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", cfg.General.DefaultLimit)
	}
	if cfg.General.RefreshAgeMins <= 0 {
		return fmt.Errorf("refresh_age_mins must be positive, got %d", cfg.General.RefreshAgeMins)
	}
	if cfg.General.MaxHistoryPerFeed <= 0 {
		return fmt.Errorf("max_history_per_feed must be positive, got %d", cfg.General.MaxHistoryPerFeed)
	}
	if cfg.Fetch.Workers <= 0 {
		return fmt.Errorf("fetch workers must be positive, got %d", cfg.Fetch.Workers)
	}
	if cfg.Fetch.TimeoutSecs <= 0 {
		return fmt.Errorf("fetch timeout_secs must be positive, got %d", cfg.Fetch.TimeoutSecs)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	return nil
}

// RefreshAge returns the staleness TTL as a duration
func (c *Config) RefreshAge() time.Duration {
	return time.Duration(c.General.RefreshAgeMins) * time.Minute
}

// FetchTimeout returns the per-fetch deadline as a duration
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSecs) * time.Second
}
