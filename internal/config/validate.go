package config

import (
	"net/url"
	"slices"
	"strings"
	"time"
)

var (
	minTimeout = 1 * time.Second
	maxTimeout = 5 * time.Minute

	minBatchSize = 1
	maxBatchSize = 20

	minAutoCloseDelay = 1 * time.Second
	maxAutoCloseDelay = 1 * time.Minute

	logLevels = []string{"debug", "info", "warn", "error"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := validateBaseURL(c.API.BaseURL); err != nil {
		return err
	}

	if c.API.Timeout < minTimeout || c.API.Timeout > maxTimeout {
		return errInvalidTimeout.Fmt(minTimeout, maxTimeout)
	}

	if err := c.validateLoop(); err != nil {
		return err
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return errInvalidLogLevel.Fmt(c.Log.Level)
	}

	return nil
}

// validateLoop validates the LoopConfig.
func (c *Config) validateLoop() error {
	if c.Loop.BatchSize < minBatchSize || c.Loop.BatchSize > maxBatchSize {
		return errInvalidBatchSize.Fmt(minBatchSize, maxBatchSize)
	}

	if c.Loop.AutoCloseDelay < minAutoCloseDelay ||
		c.Loop.AutoCloseDelay > maxAutoCloseDelay {
		return errInvalidAutoCloseDelay.Fmt(minAutoCloseDelay, maxAutoCloseDelay)
	}

	return nil
}

func validateBaseURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errInvalidBaseURL.Fmt(s)
	}

	return nil
}
