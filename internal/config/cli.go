package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/midaytech/brainloop/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	BaseURL       string
	Today         string
	LoopCmd       string
	BatchSize     uint
	DisableNotify bool
	NoBell        bool
	Debug         bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			BaseURL:       ctx.String("base-url"),
			Today:         ctx.String("today"),
			LoopCmd:       ctx.String("loop-cmd"),
			BatchSize:     ctx.Uint("batch-size"),
			DisableNotify: ctx.Bool("disable-notification"),
			NoBell:        ctx.Bool("no-bell"),
			Debug:         ctx.Bool("debug"),
		}

		return applyCLIOptions(c, opts, time.Now())
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	if opts.BaseURL != "" {
		c.API.BaseURL = strings.TrimSpace(opts.BaseURL)
	}

	if opts.BatchSize > 0 {
		c.Loop.BatchSize = int(opts.BatchSize)
	}

	if opts.LoopCmd != "" {
		c.Loop.Cmd = opts.LoopCmd
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.NoBell {
		c.Loop.Bell = false
	}

	if opts.Debug {
		c.CLI.Debug = true
		c.Log.Level = "debug"
	}

	if opts.Today != "" {
		today, err := timeutil.FromStr(opts.Today, now)
		if err != nil {
			return errInvalidToday.Fmt(opts.Today).Wrap(err)
		}

		c.CLI.Today = today
	}

	return nil
}
