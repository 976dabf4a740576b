// Package config loads realmforge settings from an optional YAML file and
// REALMFORGE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds world-building options.
type Config struct {
	// Seed for random number generation. Used for reproducible worlds.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `mapstructure:"seed"`

	Zone      ZoneConfig      `mapstructure:"zone"`
	Log       LogConfig       `mapstructure:"log"`
	Noise     NoiseConfig     `mapstructure:"noise"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ZoneConfig sets the default zone size in tiles.
type ZoneConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// LogConfig controls logging. An empty File logs to stderr.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// NoiseConfig sizes the noise field cache. Zero disables it.
type NoiseConfig struct {
	CacheMB int `mapstructure:"cache_mb"`
}

// TelemetryConfig toggles OTLP trace export.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)
	v.SetDefault("zone.width", 40)
	v.SetDefault("zone.height", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("noise.cache_mb", 16)
	v.SetDefault("telemetry.enabled", false)
}

// Load reads configuration. When path is empty, realmforge.yaml is looked
// up in the working directory and its absence is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("REALMFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("realmforge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the generator cannot use.
func (c *Config) Validate() error {
	if c.Zone.Width <= 0 || c.Zone.Height <= 0 {
		return fmt.Errorf("zone size %dx%d must be positive", c.Zone.Width, c.Zone.Height)
	}
	if c.Noise.CacheMB < 0 {
		return fmt.Errorf("noise.cache_mb %d must not be negative", c.Noise.CacheMB)
	}
	return nil
}
