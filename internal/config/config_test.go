package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/midaytech/brainloop/internal/config"
	"github.com/midaytech/brainloop/internal/testutil"
)

type TestCase struct {
	Want       *config.Config
	Name       string
	GoldenFile string
	Snapshot   []byte `json:"-"`
}

func (t TestCase) Output() (out []byte, name string) {
	return t.Snapshot, t.GoldenFile
}

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL: "https://stg-brainloop.api.midaytech.com/api/v1",
			Timeout: 30 * time.Second,
		},
		Loop: config.LoopConfig{
			BatchSize:      3,
			AutoCloseDelay: 3 * time.Second,
			Bell:           true,
		},
		Notifications: config.NotificationConfig{
			Enabled: true,
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
		},
		Log: config.LogConfig{
			Level: "info",
		},
	}
}

func TestViperWriteConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	tc := TestCase{
		Name:       "write default config to file",
		GoldenFile: "defaults",
		Want:       defaultConfig(),
	}

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	if err != nil {
		t.Fatal(err)
	}

	tc.Snapshot, err = os.ReadFile(configPath)
	if err != nil {
		t.Fatal("failed to read config", err)
	}

	testutil.CompareGoldenFile(t, tc)

	assert.Equal(t, tc.Want, cfg)
}

func TestViperReadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")

	err := testutil.CopyFile("testdata/modified_config.golden", configPath)
	if err != nil {
		t.Fatal(err)
	}

	tc := TestCase{
		Name: "read a modified config file",
		Want: &config.Config{
			API: config.APIConfig{
				BaseURL: "http://localhost:8080/api/v1",
				Timeout: time.Minute,
			},
			Loop: config.LoopConfig{
				Cmd:            `notify-send "loop done"`,
				BatchSize:      5,
				AutoCloseDelay: 5 * time.Second,
				Bell:           false,
			},
			Notifications: config.NotificationConfig{
				Enabled: false,
			},
			Display: config.DisplayConfig{
				DarkTheme:      false,
				TwentyFourHour: true,
			},
			Log: config.LogConfig{
				Level: "debug",
			},
		},
	}

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, tc.Want, cfg)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("BRAINLOOP_LOOP_BATCH_SIZE", "7")
	t.Setenv("BRAINLOOP_NOTIFICATIONS_ENABLED", "false")

	cfg, err := config.New(
		config.WithViperConfig(filepath.Join(t.TempDir(), "config.yml")),
	)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 7, cfg.Loop.BatchSize)
	assert.False(t, cfg.Notifications.Enabled)
}

func TestEnvFile(t *testing.T) {
	const key = "BRAINLOOP_API_BASE_URL"

	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")

	err := os.WriteFile(envPath, []byte(key+"=http://127.0.0.1:9000/api/v1\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		os.Unsetenv(key)
	})

	cfg, err := config.New(
		config.WithEnvFile(envPath),
		config.WithViperConfig(filepath.Join(tmpDir, "config.yml")),
	)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "http://127.0.0.1:9000/api/v1", cfg.API.BaseURL)
}

func TestMissingEnvFile(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := config.New(
		config.WithEnvFile(filepath.Join(tmpDir, ".env")),
		config.WithViperConfig(filepath.Join(tmpDir, "config.yml")),
	)
	assert.NoError(t, err)
}

func TestPromptSkippedWhenConfigExists(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := testutil.CopyFile("testdata/modified_config.golden", configPath)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
	)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 5, cfg.Loop.BatchSize)
}
