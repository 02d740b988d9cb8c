// Package config reads the game's settings from the environment.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/tatianab/rover-rescue/internal/history"
)

// History backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const dbFile = "history.db"

// Config holds the application configuration.
type Config struct {
	SaveDir        string        `env:"ROVER_SAVE_DIR" envDefault:".saves"`
	HistoryBackend string        `env:"ROVER_HISTORY_BACKEND" envDefault:"yaml"`
	DBPath         string        `env:"ROVER_DB_PATH"`
	TypingSpeed    time.Duration `env:"ROVER_TYPING_SPEED" envDefault:"15ms"`
	LogFile        string        `env:"ROVER_LOG_FILE" envDefault:"rover.log"`

	// GeminiAPIKey enables the debrief coach when set.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"ROVER_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values env cannot check on its own.
func (c *Config) Validate() error {
	switch c.HistoryBackend {
	case BackendYAML, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("ROVER_HISTORY_BACKEND: unknown backend %q (want yaml, sqlite or memory)", c.HistoryBackend)
	}
	if c.TypingSpeed < 0 {
		return fmt.Errorf("ROVER_TYPING_SPEED: must not be negative, got %s", c.TypingSpeed)
	}
	return nil
}

// CoachEnabled reports whether a Gemini key was provided.
func (c *Config) CoachEnabled() bool {
	return c.GeminiAPIKey != ""
}

// DatabasePath is the sqlite file, defaulting to one inside SaveDir.
func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.SaveDir, dbFile)
}

// OpenMedium opens the configured history backend. The returned close
// function releases it and is never nil.
func (c *Config) OpenMedium() (history.Medium, func() error, error) {
	noop := func() error { return nil }
	switch c.HistoryBackend {
	case BackendSQLite:
		db, err := history.OpenSQLite(c.DatabasePath())
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	case BackendMemory:
		return history.NewMemoryMedium(), noop, nil
	default:
		return history.NewFileMedium(c.SaveDir), noop, nil
	}
}
