package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://example.com/api/v1",
			Timeout: 10 * time.Second,
		},
		Loop: LoopConfig{
			BatchSize:      3,
			AutoCloseDelay: 3 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(c *Config)
		want   error
	}{
		{"valid", func(*Config) {}, nil},
		{"relative url", func(c *Config) { c.API.BaseURL = "/api/v1" }, errInvalidBaseURL},
		{"ftp url", func(c *Config) { c.API.BaseURL = "ftp://example.com" }, errInvalidBaseURL},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, errInvalidTimeout},
		{"batch too large", func(c *Config) { c.Loop.BatchSize = 50 }, errInvalidBatchSize},
		{"batch zero", func(c *Config) { c.Loop.BatchSize = 0 }, errInvalidBatchSize},
		{"delay too long", func(c *Config) { c.Loop.AutoCloseDelay = time.Hour }, errInvalidAutoCloseDelay},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, errInvalidLogLevel},
		{"level case", func(c *Config) { c.Log.Level = "WARN" }, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.modify(c)

			err := c.Validate()

			if tc.want == nil {
				assert.NoError(t, err)
				return
			}

			assert.True(t, errors.Is(err, tc.want), "expected %v, got %v", tc.want, err)
		})
	}
}

func TestApplyCLIOptions(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	c := validConfig()
	c.Notifications.Enabled = true
	c.Loop.Bell = true

	err := applyCLIOptions(c, CLIOptions{
		BaseURL:       " http://localhost:3000 ",
		BatchSize:     5,
		DisableNotify: true,
		NoBell:        true,
		Debug:         true,
		Today:         "2024-06-12",
	}, now)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "http://localhost:3000", c.API.BaseURL)
	assert.Equal(t, 5, c.Loop.BatchSize)
	assert.False(t, c.Notifications.Enabled)
	assert.False(t, c.Loop.Bell)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 12, c.Today().Day())
}

func TestFilter(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	cfg, err := newFilter(FilterOptions{Period: "7days"}, now)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), cfg.StartTime)

	cfg, err = newFilter(FilterOptions{}, now)
	if err != nil {
		t.Fatal(err)
	}

	assert.True(t, cfg.StartTime.IsZero())

	_, err = newFilter(FilterOptions{Period: "fortnight"}, now)
	assert.True(t, errors.Is(err, errInvalidPeriod))

	_, err = newFilter(FilterOptions{Start: "2024-06-05", End: "2024-06-01"}, now)
	assert.True(t, errors.Is(err, errInvalidDateRange))
}
