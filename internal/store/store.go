// Package store provides the reference SQLite-backed AuditSink and
// MemorySink implementations. Any host process can instead satisfy those
// interfaces itself; these adapters exist so a run's audit trail and
// negotiation memory persist across process restarts.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/clockutil"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/logger"
)

// DB wraps a migrated SQLite connection shared by AuditSink and
// MemorySink adapter. Obtain one via Open, then build adapters with
// NewAuditSink and NewMemoryStore.
type DB struct {
	sql   *sql.DB
	clock clockutil.Clock
}

func defaultPath() string {
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "procur.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "procur.db")
}

// Open opens (or creates) the SQLite database at path and runs
// migrations. An empty path uses the working directory's procur.db.
func Open(path string, clock clockutil.Clock) (*DB, error) {
	if path == "" {
		path = defaultPath()
	}
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	d := &DB{sql: sqlDB, clock: clock}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	logger.Success("STORE", fmt.Sprintf("opened %s", path))
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)
	if version >= 1 {
		return nil
	}

	_, err := d.sql.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

		CREATE TABLE IF NOT EXISTS moves (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT NOT NULL,
			vendor_id  TEXT NOT NULL,
			payload    TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_moves_request_vendor ON moves(request_id, vendor_id);

		CREATE TABLE IF NOT EXISTS events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT NOT NULL,
			payload    TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_events_request ON events(request_id);

		CREATE TABLE IF NOT EXISTS rounds (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT NOT NULL,
			vendor_id  TEXT NOT NULL,
			payload    TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_request_vendor ON rounds(request_id, vendor_id);

		CREATE TABLE IF NOT EXISTS negotiation_outcomes (
			request_id    TEXT NOT NULL,
			vendor_id     TEXT NOT NULL,
			scenario_tags TEXT NOT NULL DEFAULT '[]',
			outcome       TEXT NOT NULL DEFAULT '',
			savings       REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (request_id, vendor_id)
		);

		INSERT INTO schema_version (version) VALUES (1);
	`)
	return err
}
