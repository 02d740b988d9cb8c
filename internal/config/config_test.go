package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tatianab/rover-rescue/internal/history"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"ROVER_SAVE_DIR", "ROVER_HISTORY_BACKEND", "ROVER_DB_PATH", "ROVER_TYPING_SPEED", "ROVER_LOG_FILE", "GEMINI_API_KEY", "ROVER_GEMINI_MODEL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.SaveDir != ".saves" {
		t.Errorf("SaveDir = %q, want .saves", cfg.SaveDir)
	}
	if cfg.HistoryBackend != BackendYAML {
		t.Errorf("HistoryBackend = %q, want %q", cfg.HistoryBackend, BackendYAML)
	}
	if cfg.TypingSpeed != 15*time.Millisecond {
		t.Errorf("TypingSpeed = %v, want 15ms", cfg.TypingSpeed)
	}
	if cfg.LogFile != "rover.log" {
		t.Errorf("LogFile = %q, want rover.log", cfg.LogFile)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.CoachEnabled() {
		t.Error("Expected coach disabled without an API key")
	}
	if got, want := cfg.DatabasePath(), filepath.Join(".saves", "history.db"); got != want {
		t.Errorf("DatabasePath() = %q, want %q", got, want)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ROVER_SAVE_DIR", "/tmp/rover")
	t.Setenv("ROVER_HISTORY_BACKEND", "sqlite")
	t.Setenv("ROVER_DB_PATH", "/tmp/runs.db")
	t.Setenv("ROVER_TYPING_SPEED", "0")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.HistoryBackend != BackendSQLite || cfg.DatabasePath() != "/tmp/runs.db" {
		t.Errorf("Unexpected storage config: %+v", cfg)
	}
	if cfg.TypingSpeed != 0 {
		t.Errorf("TypingSpeed = %v, want 0", cfg.TypingSpeed)
	}
	if !cfg.CoachEnabled() {
		t.Error("Expected coach enabled with an API key")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown backend", "ROVER_HISTORY_BACKEND", "postgres", "unknown backend"},
		{"bad duration", "ROVER_TYPING_SPEED", "fast", "parse env:"},
		{"negative duration", "ROVER_TYPING_SPEED", "-1s", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestOpenMedium(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		check   func(history.Medium) bool
	}{
		{BackendYAML, func(m history.Medium) bool { _, ok := m.(*history.FileMedium); return ok }},
		{BackendSQLite, func(m history.Medium) bool { _, ok := m.(*history.SQLiteMedium); return ok }},
		{BackendMemory, func(m history.Medium) bool { _, ok := m.(*history.MemoryMedium); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := &Config{SaveDir: dir, HistoryBackend: tt.backend}
			medium, closeFn, err := cfg.OpenMedium()
			if err != nil {
				t.Fatalf("OpenMedium() error = %v", err)
			}
			defer closeFn()
			if !tt.check(medium) {
				t.Errorf("OpenMedium() = %T for backend %s", medium, tt.backend)
			}
		})
	}
}
