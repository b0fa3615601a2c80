// Package config holds the run configuration for gridq.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/CodeStranger-Fred/gridq/mdp"
)

const EnvPrefix = "GRIDQ"

// Config holds all gridq settings
type Config struct {
	// Learning
	Episodes int     `mapstructure:"episodes"`
	Alpha    float64 `mapstructure:"alpha"`
	Gamma    float64 `mapstructure:"gamma"`
	Epsilon  float64 `mapstructure:"epsilon"`
	Seed     int64   `mapstructure:"seed"`
	MaxSteps int     `mapstructure:"max-steps"`

	// Evaluation
	RolloutSteps int `mapstructure:"rollout-steps"`
	Seeds        int `mapstructure:"seeds"`

	// Playback
	PlaybackInterval time.Duration `mapstructure:"interval"`
	Greedy           bool          `mapstructure:"greedy"`

	// Output
	ChartPath   string `mapstructure:"chart"`
	ChartWindow int    `mapstructure:"chart-window"`
	ServeAddr   string `mapstructure:"serve"`
	NoColor     bool   `mapstructure:"no-color"`

	// Logging
	LogLevel string `mapstructure:"log-level"`
	LogEvery int    `mapstructure:"log-every"`
}

// Default returns the reference configuration
func Default() *Config {
	h := mdp.DefaultHyperparameters()
	t := mdp.DefaultTrainingConfig()
	return &Config{
		Episodes:         t.Episodes,
		Alpha:            h.Alpha,
		Gamma:            h.Gamma,
		Epsilon:          h.Epsilon,
		Seed:             0, // time based
		MaxSteps:         t.MaxSteps,
		RolloutSteps:     2 * (mdp.Size - 1),
		Seeds:            20,
		PlaybackInterval: 500 * time.Millisecond,
		ChartWindow:      50,
		LogLevel:         "info",
		LogEvery:         t.LogEvery,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Hyperparameters().Validate(); err != nil {
		return err
	}
	if err := c.Training().Validate(); err != nil {
		return err
	}
	if c.RolloutSteps <= 0 {
		return fmt.Errorf("rollout-steps must be positive")
	}
	if c.Seeds <= 0 {
		return fmt.Errorf("seeds must be positive")
	}
	if c.PlaybackInterval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.ChartWindow <= 0 {
		return fmt.Errorf("chart-window must be positive")
	}
	if c.ServeAddr != "" && c.ChartPath == "" {
		return fmt.Errorf("serve requires chart")
	}
	return nil
}

func (c *Config) Hyperparameters() mdp.Hyperparameters {
	return mdp.Hyperparameters{
		Alpha:   c.Alpha,
		Gamma:   c.Gamma,
		Epsilon: c.Epsilon,
	}
}

func (c *Config) Training() mdp.TrainingConfig {
	t := mdp.DefaultTrainingConfig()
	t.Episodes = c.Episodes
	t.MaxSteps = c.MaxSteps
	t.LogEvery = c.LogEvery
	return t
}

// LoadDotEnv reads a .env file into the process environment. A missing file
// is not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// NewViper returns a viper instance reading GRIDQ_* variables, so that
// GRIDQ_MAX_STEPS sets max-steps.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about.
	d := Default()
	v.SetDefault("episodes", d.Episodes)
	v.SetDefault("alpha", d.Alpha)
	v.SetDefault("gamma", d.Gamma)
	v.SetDefault("epsilon", d.Epsilon)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("max-steps", d.MaxSteps)
	v.SetDefault("rollout-steps", d.RolloutSteps)
	v.SetDefault("seeds", d.Seeds)
	v.SetDefault("interval", d.PlaybackInterval)
	v.SetDefault("greedy", d.Greedy)
	v.SetDefault("chart", d.ChartPath)
	v.SetDefault("chart-window", d.ChartWindow)
	v.SetDefault("serve", d.ServeAddr)
	v.SetDefault("no-color", d.NoColor)
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-every", d.LogEvery)
	return v
}

// Load builds a Config from v on top of the defaults. If file is set it is
// read first; flags and environment variables bound to v take precedence.
func Load(v *viper.Viper, file string) (*Config, error) {
	cfg := Default()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
