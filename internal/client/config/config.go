package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/flashly/flashly/internal/filex"
)

const appName = "flashly"

// Config holds runtime settings for the flashly CLI.
//
// DataDir, DatabasePath and LogFile may be left empty; ResolvePaths fills
// them in from the per-user data directory.
type Config struct {
	ServerURL           string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	DataDir             string
	DatabasePath        string
	LogFile             string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
}

// ResolvePaths creates the data directory and derives the database and log
// file locations that were not set explicitly.
func (c *Config) ResolvePaths() error {
	var err error
	if c.DataDir == "" {
		c.DataDir, err = filex.DataDir(appName)
	} else {
		c.DataDir, err = filex.EnsureDir(c.DataDir)
	}
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDir, appName+".db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, appName+".log")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and .env), a JSON file and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env", lookupEnv)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
