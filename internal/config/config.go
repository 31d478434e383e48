// Package config loads client settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// DatabaseFile is the SQLite file kept under DataDir.
const DatabaseFile = "agenda.db"

// Config holds every setting of the client.
type Config struct {
	APIURL        string        `env:"AGENDA_API_URL,default=http://localhost:3000/api/"`
	LogLevel      string        `env:"LOG_LEVEL,default=INFO"`
	DataDir       string        `env:"AGENDA_DATA_DIR,default=."`
	UIAddr        string        `env:"AGENDA_UI_ADDR,default=localhost:8099"`
	ToastInterval time.Duration `env:"AGENDA_TOAST_INTERVAL,default=75ms"`
	ToastStep     int           `env:"AGENDA_TOAST_STEP,default=2"`
	AbsentToken   string        `env:"AGENDA_ABSENT_TOKEN"`
	HTTPTimeout   time.Duration `env:"AGENDA_HTTP_TIMEOUT,default=30s"`
	TimeZone      string        `env:"TZ"`
}

// Load reads an optional .env file from the working directory, then the
// environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("AGENDA_API_URL %q must be an absolute url", c.APIURL)
	}
	if c.ToastInterval <= 0 {
		return fmt.Errorf("AGENDA_TOAST_INTERVAL must be positive, got %s", c.ToastInterval)
	}
	if c.ToastStep <= 0 {
		return fmt.Errorf("AGENDA_TOAST_STEP must be positive, got %d", c.ToastStep)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// DatabasePath is the credential database location.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFile)
}

// Location resolves TimeZone, defaulting to the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
