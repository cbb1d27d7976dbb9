package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestEnvironmentOverrides(t *testing.T) {
	tmp := t.TempDir()

	t.Cleanup(xdg.Reload)

	t.Setenv(envName, "dev")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))

	xdg.Reload()

	p := &Paths{
		configDir:      "brainloop",
		configFileName: "config.yml",
		envFileName:    ".env",
		dbFileName:     "brainloop.db",
		logFileName:    "brainloop.log",
	}

	p.applyEnvironmentOverrides()

	if p.configFileName != "config_dev.yml" || p.dbFileName != "brainloop_dev.db" ||
		p.envFileName != ".env.dev" || p.logFileName != "brainloop_dev.log" {
		t.Fatalf("unexpected file names: %+v", p)
	}

	if err := p.computePaths(); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(tmp, "config", "brainloop", "config_dev.yml")
	if p.configFilePath != want {
		t.Errorf("unexpected config path: %s", p.configFilePath)
	}

	if filepath.Dir(p.envFilePath) != filepath.Dir(p.configFilePath) {
		t.Errorf("expected env file next to config file, got %s", p.envFilePath)
	}

	if filepath.Base(filepath.Dir(p.logFilePath)) != "log" {
		t.Errorf("unexpected log path: %s", p.logFilePath)
	}
}
