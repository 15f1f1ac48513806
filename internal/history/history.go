// Package history keeps an append-only log of successful jumps in a
// SQLite database. The log is advisory metadata: a navigation that
// cannot be recorded still succeeds. The flat bookmark file stays the
// source of truth.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const currentSchemaVersion = 1

// Entry is one recorded jump.
type Entry struct {
	ID       string
	Name     string
	Path     string
	JumpedAt time.Time
}

// Log wraps the SQLite jump log.
type Log struct {
	db   *sql.DB
	path string
}

// Open opens (and if needed creates) the jump log at the given path.
func Open(path string) (*Log, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	l := &Log{db: db, path: path}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return l, nil
}

// Path returns the database file path.
func (l *Log) Path() string {
	return l.path
}

// Close closes the database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

// migrate runs database migrations.
func (l *Log) migrate() error {
	var version int
	err := l.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := l.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (l *Log) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS jumps (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			jumped_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_jumps_jumped_at ON jumps(jumped_at);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Record appends one jump to the log.
func (l *Log) Record(name, path string, jumpedAt time.Time) error {
	_, err := l.db.Exec(`
		INSERT INTO jumps (id, name, path, jumped_at)
		VALUES (?, ?, ?, ?)
	`, uuid.New().String(), name, path, jumpedAt.Format(time.RFC3339))
	return err
}

// Recent returns the n most recent jumps, newest first.
func (l *Log) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := l.db.Query(`
		SELECT id, name, path, jumped_at
		FROM jumps
		ORDER BY jumped_at DESC, rowid DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var jumpedAtStr string

		if err := rows.Scan(&e.ID, &e.Name, &e.Path, &jumpedAtStr); err != nil {
			return nil, err
		}

		e.JumpedAt, _ = time.Parse(time.RFC3339, jumpedAtStr)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// DefaultHistoryPath returns the default log path: ~/.config/dm/history.db
func DefaultHistoryPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "dm", "history.db"), nil
}
