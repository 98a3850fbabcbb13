package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	// One row per calendar day; the date is the upsert key. Time and
	// duration columns hold the user's free text verbatim — parsing
	// happens at render time, never here.
	const ddl = `
	CREATE TABLE IF NOT EXISTS records (
		date               TEXT PRIMARY KEY,
		bedtime            TEXT NOT NULL DEFAULT '',
		sleep_duration     TEXT NOT NULL DEFAULT '',

		dose_morning_time    TEXT NOT NULL DEFAULT '',
		dose_morning_mg      INTEGER NOT NULL DEFAULT 0,
		efficacy_morning     INTEGER,
		note_morning         TEXT NOT NULL DEFAULT '',
		effects_morning      TEXT NOT NULL DEFAULT '',

		dose_midday_time     TEXT NOT NULL DEFAULT '',
		dose_midday_mg       INTEGER NOT NULL DEFAULT 0,
		efficacy_midday      INTEGER,
		note_midday          TEXT NOT NULL DEFAULT '',
		effects_midday       TEXT NOT NULL DEFAULT '',

		dose_afternoon_time  TEXT NOT NULL DEFAULT '',
		dose_afternoon_mg    INTEGER NOT NULL DEFAULT 0,
		efficacy_afternoon   INTEGER,
		note_afternoon       TEXT NOT NULL DEFAULT '',
		effects_afternoon    TEXT NOT NULL DEFAULT '',

		work_start         TEXT NOT NULL DEFAULT '',
		lunch_break        TEXT NOT NULL DEFAULT '',
		worked_afternoon   INTEGER NOT NULL DEFAULT 0,
		afternoon_resume   TEXT NOT NULL DEFAULT '',
		work_end           TEXT NOT NULL DEFAULT '',
		patients_total     INTEGER NOT NULL DEFAULT 0,
		patients_new       INTEGER NOT NULL DEFAULT 0,

		exercise_done      INTEGER NOT NULL DEFAULT 0,
		exercise_kind      TEXT NOT NULL DEFAULT '',
		exercise_start     TEXT NOT NULL DEFAULT '',
		exercise_duration  TEXT NOT NULL DEFAULT '',

		difficulty         INTEGER NOT NULL DEFAULT 0,
		comment            TEXT NOT NULL DEFAULT '',

		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('hour_min',   '6'),
		('hour_max',   '24'),
		('export_dir', '');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/semainier/journal.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "semainier", "journal.db"), nil
}
