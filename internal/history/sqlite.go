package history

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/tatianab/rover-rescue/internal/errs"
	"github.com/tatianab/rover-rescue/internal/history/migrations"
	"github.com/tatianab/rover-rescue/internal/models"
)

const migrationTable = "schema_migrations"

// savedKey marks a database that has been saved to at least once, so an
// empty runs table after Clear is not mistaken for a fresh database.
const savedKey = "saved_at"

// SQLiteMedium keeps one row per run in a SQLite database.
type SQLiteMedium struct {
	db *sql.DB
}

// OpenSQLite opens the database at path and applies embedded migrations.
func OpenSQLite(path string) (*SQLiteMedium, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", cleanPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteMedium{db: db}, nil
}

func (m *SQLiteMedium) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}

func (m *SQLiteMedium) LoadHistory() (models.RunHistory, error) {
	var savedAt string
	err := m.db.QueryRow(`SELECT value FROM history_meta WHERE key = ?`, savedKey).Scan(&savedAt)
	if err == sql.ErrNoRows {
		return models.RunHistory{}, ErrNoHistory
	}
	if err != nil {
		return models.RunHistory{}, err
	}

	rows, err := m.db.Query(`SELECT mission, run_number, engineer_name, recorded_at, data FROM runs ORDER BY mission, run_number`)
	if err != nil {
		return models.RunHistory{}, err
	}
	defer rows.Close()

	h := models.EmptyHistory()
	for rows.Next() {
		var (
			mission, runNumber, recordedAt int64
			engineer, data                 string
		)
		if err := rows.Scan(&mission, &runNumber, &engineer, &recordedAt, &data); err != nil {
			return models.RunHistory{}, err
		}
		if !models.MissionID(mission).Valid() {
			return models.RunHistory{}, errs.New(errs.CodeStorageCorrupt, fmt.Sprintf("run %d belongs to unknown mission %d", runNumber, mission))
		}
		var rec models.RunRecord
		if err := yaml.Unmarshal([]byte(data), &rec); err != nil {
			return models.RunHistory{}, errs.Wrap(errs.CodeStorageCorrupt, fmt.Sprintf("parse mission %d run %d", mission, runNumber), err)
		}
		rec.Mission = models.MissionID(mission)
		rec.RunNumber = int(runNumber)
		rec.EngineerName = engineer
		rec.Timestamp = time.UnixMilli(recordedAt).UTC()
		h.Push(rec)
	}
	if err := rows.Err(); err != nil {
		return models.RunHistory{}, err
	}
	return h, nil
}

// SaveHistory replaces every stored run inside one transaction.
func (m *SQLiteMedium) SaveHistory(h models.RunHistory) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO runs (mission, run_number, engineer_name, recorded_at, data) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, mission := range models.Missions {
		for _, rec := range h.Runs(mission) {
			data, err := yaml.Marshal(rec)
			if err != nil {
				return err
			}
			if _, err := stmt.Exec(int(rec.Mission), rec.RunNumber, rec.EngineerName, rec.Timestamp.UTC().UnixMilli(), string(data)); err != nil {
				return fmt.Errorf("insert %s run %d: %w", mission.Key(), rec.RunNumber, err)
			}
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO history_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		savedKey, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("mark saved: %w", err)
	}
	return tx.Commit()
}

// applyMigrations runs each embedded .sql file at most once, in name order.
func applyMigrations(db *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, applied_at INTEGER NOT NULL)`, migrationTable)); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var n int
		if err := db.QueryRow(fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE name = ?`, migrationTable), file).Scan(&n); err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if n > 0 {
			continue
		}
		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(upMigration(string(content))); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(fmt.Sprintf(`INSERT INTO %s (name, applied_at) VALUES (?, ?)`, migrationTable), file, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// upMigration returns the SQL in the "-- +migrate Up" section.
func upMigration(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	i := strings.Index(content, up)
	if i == -1 {
		return content
	}
	content = content[i+len(up):]
	if j := strings.Index(content, down); j != -1 {
		content = content[:j]
	}
	return content
}
