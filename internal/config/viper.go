package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/midaytech/brainloop/internal/api"
	"github.com/midaytech/brainloop/internal/due"
	"github.com/midaytech/brainloop/internal/session"
)

const envPrefix = "BRAINLOOP"

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyBaseURL              = "api.base_url"
	keyTimeout              = "api.timeout"
	keyBatchSize            = "loop.batch_size"
	keyAutoCloseDelay       = "loop.auto_close_delay"
	keyLoopCmd              = "loop.cmd"
	keyLoopBell             = "loop.bell"
	keyNotificationsEnabled = "notifications.enabled"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.24hr_clock"
	keyLogLevel             = "log.level"
)

// WithEnvFile returns an Option that loads variables from a dotenv file
// into the process environment. A missing file is ignored and variables
// that are already set win.
func WithEnvFile(envPath string) Option {
	return func(_ *Config) error {
		if envPath == "" {
			return nil
		}

		err := godotenv.Load(envPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return errLoadEnv.Fmt(envPath).Wrap(err)
		}

		return nil
	}
}

// WithViperConfig returns an Option that loads configuration from Viper.
// BRAINLOOP_* environment variables override the file, e.g.
// BRAINLOOP_API_BASE_URL for api.base_url.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyBaseURL, api.DefaultBaseURL)
	v.SetDefault(keyTimeout, api.DefaultTimeout.String())
	v.SetDefault(keyBatchSize, due.DefaultBatchSize)
	v.SetDefault(keyAutoCloseDelay, session.DefaultAutoCloseDelay.String())
	v.SetDefault(keyLoopCmd, "")
	v.SetDefault(keyLoopBell, true)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyLogLevel, "info")

	if c.API.BaseURL != "" {
		v.Set(keyBaseURL, c.API.BaseURL)
	}

	if c.Loop.BatchSize != 0 {
		v.Set(keyBatchSize, c.Loop.BatchSize)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	return v.Unmarshal(c)
}
