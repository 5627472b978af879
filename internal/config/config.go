// Package config loads settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

type Config struct {
	APIURL   string
	Timeout  time.Duration
	Addr     string
	Store    string
	DataPath string // empty: the store's default file in the working directory
	LogFile  string
	LogLevel string
	Theme    string
}

func Default() Config {
	return Config{
		APIURL:   "http://localhost:3333",
		Timeout:  10 * time.Second,
		Addr:     ":3333",
		Store:    StoreJSON,
		LogLevel: "info",
		Theme:    "classic",
	}
}

// Load reads envFile (if present) into the environment without overriding
// variables that are already set, then builds a Config from it.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	c := Default()
	c.APIURL = envOr("FOODS_API_URL", c.APIURL)
	c.Addr = envOr("FOODS_ADDR", c.Addr)
	c.Store = strings.ToLower(envOr("FOODS_STORE", c.Store))
	c.DataPath = envOr("FOODS_DATA", c.DataPath)
	c.LogFile = envOr("FOODS_LOG_FILE", c.LogFile)
	c.LogLevel = envOr("FOODS_LOG_LEVEL", c.LogLevel)
	c.Theme = envOr("FOODS_THEME", c.Theme)

	if v := strings.TrimSpace(os.Getenv("FOODS_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("FOODS_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("store %q: want %s or %s", c.Store, StoreJSON, StoreSQLite)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
