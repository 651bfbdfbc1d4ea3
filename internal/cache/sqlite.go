package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/logger"
)

// snapshotKey is the single fixed key the payload lives under. There is no
// schema versioning: readers must tolerate payloads written by older builds,
// which JSON decoding of the Snapshot shape already gives us.
const snapshotKey = "news"

// SQLiteStore persists the snapshot across restarts, so a freshly started
// process can serve stale news while its first pass runs.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, path: dbPath}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshot (
			key        TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get() (Snapshot, bool) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM snapshot WHERE key = ?", snapshotKey).Scan(&payload)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("cache read failed", "error", err)
		}
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		// Unreadable old payload: treat as absent, the next pass rewrites it.
		logger.Warn("cache payload unreadable, ignoring", "error", err)
		return Snapshot{}, false
	}
	return snap, true
}

func (s *SQLiteStore) Set(snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO snapshot (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, snapshotKey, string(payload), snap.LastUpdated.UTC().Format("2006-01-02T15:04:05Z"))
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM snapshot WHERE key = ?", snapshotKey)
	return err
}

// Stats returns the cached article count and the database file size.
func (s *SQLiteStore) Stats() (articles int, size int64, err error) {
	if snap, ok := s.Get(); ok {
		articles = len(snap.Articles)
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return articles, 0, err
	}
	return articles, info.Size(), nil
}
