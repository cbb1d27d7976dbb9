// Package config loads brainloop settings from the config file, the
// environment and command-line flags
package config

import (
	"io"
	"os"
	"time"
)

type (
	// Config holds all configuration settings
	Config struct {
		API           APIConfig          `mapstructure:"api"`
		Log           LogConfig          `mapstructure:"log"`
		System        SystemConfig       `mapstructure:"-"`
		CLI           CLIConfig          `mapstructure:"-"`
		Loop          LoopConfig         `mapstructure:"loop"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
	}

	// APIConfig holds the remote API settings
	APIConfig struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	}

	// LoopConfig holds loop session settings
	LoopConfig struct {
		Cmd            string        `mapstructure:"cmd"`
		BatchSize      int           `mapstructure:"batch_size"`
		AutoCloseDelay time.Duration `mapstructure:"auto_close_delay"`
		Bell           bool          `mapstructure:"bell"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// LogConfig holds logging settings
	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	// SystemConfig holds system-related settings
	SystemConfig struct {
		ConfigPath string
		EnvPath    string
		DBPath     string
		LogPath    string
	}

	// CLIConfig holds values that only come from command-line flags
	CLIConfig struct {
		Today time.Time
		Debug bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config, applies options and validates the result
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// WithPaths records where the config, env, database and log files live.
func WithPaths(configPath, envPath, dbPath, logPath string) Option {
	return func(c *Config) error {
		c.System = SystemConfig{
			ConfigPath: configPath,
			EnvPath:    envPath,
			DBPath:     dbPath,
			LogPath:    logPath,
		}

		return nil
	}
}

// Today returns the date used for due checks.
func (c *Config) Today() time.Time {
	if c.CLI.Today.IsZero() {
		return time.Now()
	}

	return c.CLI.Today
}
