// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const envName = "BRAINLOOP_ENV"

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	envFileName    string
	dbFileName     string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	envFilePath    string
	dbFilePath     string
	logFilePath    string
}

var (
	paths   *Paths
	once    sync.Once
	initErr error
)

// Initialize must be called once at program startup.
func Initialize() error {
	once.Do(func() {
		p := &Paths{
			configDir:      "brainloop",
			configFileName: "config.yml",
			envFileName:    ".env",
			dbFileName:     "brainloop.db",
			logFileName:    "brainloop.log",
		}

		p.applyEnvironmentOverrides()

		initErr = p.computePaths()
		if initErr == nil {
			paths = p
		}
	})

	return initErr
}

func Dir() string {
	return paths.configDir
}

func ConfigFilePath() string {
	return paths.configFilePath
}

// EnvFilePath is the dotenv file loaded before the config file.
func EnvFilePath() string {
	return paths.envFilePath
}

func DBFilePath() string {
	return paths.dbFilePath
}

func LogFilePath() string {
	return paths.logFilePath
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv(envName))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.envFileName = fmt.Sprintf(".env.%s", env)
		p.dbFileName = fmt.Sprintf("brainloop_%s.db", env)
		p.logFileName = fmt.Sprintf("brainloop_%s.log", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.configDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return fmt.Errorf("locating config file: %w", err)
	}

	p.envFilePath = filepath.Join(filepath.Dir(p.configFilePath), p.envFileName)

	dataDir, err := xdg.DataFile(p.configDir)
	if err != nil {
		return fmt.Errorf("locating data directory: %w", err)
	}

	p.dbFilePath = filepath.Join(dataDir, p.dbFileName)

	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	return nil
}
