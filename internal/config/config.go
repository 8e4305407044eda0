// Package config defines the parcels command configuration, assembled by
// viper from flags, PARCELS_* environment variables and an optional file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/parcelindex/parcels"
)

const (
	// DefaultFile is the seed file read when none is configured.
	DefaultFile = "couriers.txt"

	EnvPrefix = "PARCELS"
)

type Config struct {
	// File is the seed file of "destination, weight, valuation" lines.
	File string `mapstructure:"file" yaml:"file"`
	// Collision is "separate" or "shared".
	Collision string `mapstructure:"collision" yaml:"collision"`
	// Color enables styled terminal output.
	Color bool `mapstructure:"color" yaml:"color"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

type LogConfig struct {
	Verbose    bool   `mapstructure:"verbose" yaml:"verbose"`
	Console    bool   `mapstructure:"console" yaml:"console"`
	Dir        string `mapstructure:"dir" yaml:"dir"`
	MaxSize    int    `mapstructure:"maxSize" yaml:"maxSize"`
	MaxAge     int    `mapstructure:"maxAge" yaml:"maxAge"`
	MaxBackups int    `mapstructure:"maxBackups" yaml:"maxBackups"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		File:      DefaultFile,
		Collision: parcels.SeparateCountries.String(),
		Color:     true,
		Log: LogConfig{
			Console:    true,
			Dir:        filepath.Join(os.TempDir(), "parcels", "logs"),
			MaxSize:    40,
			MaxAge:     7,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers every default with v so that environment variables
// are picked up for keys no flag or file sets.
func SetDefaults(v *viper.Viper) {
	d := New()
	v.SetDefault("file", d.File)
	v.SetDefault("collision", d.Collision)
	v.SetDefault("color", d.Color)
	v.SetDefault("log.verbose", d.Log.Verbose)
	v.SetDefault("log.console", d.Log.Console)
	v.SetDefault("log.dir", d.Log.Dir)
	v.SetDefault("log.maxSize", d.Log.MaxSize)
	v.SetDefault("log.maxAge", d.Log.MaxAge)
	v.SetDefault("log.maxBackups", d.Log.MaxBackups)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads cfgFile into v when it is set, then decodes and validates the
// merged configuration.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.File == "" {
		return errors.New("seed file is required")
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if !c.Log.Console && c.Log.Dir == "" {
		return errors.New("log dir is required when console logging is off")
	}
	return nil
}

// Policy returns the parsed collision policy.
func (c *Config) Policy() (parcels.CollisionPolicy, error) {
	return parcels.ParseCollisionPolicy(c.Collision)
}
