package main

import (
	"database/sql"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite flight recorder
type DB struct {
	conn *sql.DB
}

// RunRow is one process run of the client
type RunRow struct {
	ID        string
	Mode      string
	Server    string
	StartedAt time.Time
	EndedAt   sql.NullTime
}

// RunSummary aggregates a run's events
type RunSummary struct {
	Joins          int
	Respawns       int
	GameOvers      int
	RocksDestroyed int
	PelletsDropped int
	SpiceCollected int
	FuelCollected  int
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		server TEXT NOT NULL DEFAULT '',
		started_at DATETIME NOT NULL,
		ended_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		kind TEXT NOT NULL,
		ship_id INTEGER NOT NULL DEFAULT 0,
		value INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id, kind);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// GetSetting returns a stored setting, or "" when unset
func (db *DB) GetSetting(key string) string {
	var v string
	if err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v); err != nil {
		return ""
	}
	return v
}

// SetSetting stores a setting
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// StartRun records the start of a client run
func (db *DB) StartRun(id string, mode Mode, server string) error {
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, mode, server, started_at) VALUES (?, ?, ?, ?)",
		id, mode.String(), server, time.Now().UTC(),
	)
	return err
}

// EndRun stamps the end of a run
func (db *DB) EndRun(id string) error {
	_, err := db.conn.Exec("UPDATE runs SET ended_at = ? WHERE id = ?", time.Now().UTC(), id)
	return err
}

// GetRun returns a run by ID
func (db *DB) GetRun(id string) (*RunRow, error) {
	row := db.conn.QueryRow("SELECT id, mode, server, started_at, ended_at FROM runs WHERE id = ?", id)
	r := &RunRow{}
	err := row.Scan(&r.ID, &r.Mode, &r.Server, &r.StartedAt, &r.EndedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// Summarize aggregates the events of a run
func (db *DB) Summarize(runID string) (RunSummary, error) {
	var s RunSummary
	rows, err := db.conn.Query(
		"SELECT kind, COUNT(*), COALESCE(SUM(value), 0) FROM events WHERE run_id = ? GROUP BY kind",
		runID,
	)
	if err != nil {
		return s, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count, sum int
		if err := rows.Scan(&kind, &count, &sum); err != nil {
			return s, err
		}
		switch kind {
		case EvtJoin:
			s.Joins = count
		case EvtRespawn:
			s.Respawns = count
		case EvtGameOver:
			s.GameOvers = count
		case EvtRockDestroyed:
			s.RocksDestroyed = count
			s.PelletsDropped = sum
		case EvtSpice:
			s.SpiceCollected = sum
		case EvtFuel:
			s.FuelCollected = sum
		}
	}
	return s, rows.Err()
}
