// Package history records every generated mind map in a local SQLite
// database so that past documents can be listed from the CLI or read as an
// MCP resource.
//
// History is an optional subsystem. If it cannot be opened the server
// keeps generating documents; it just stops remembering them.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// DBFile is the database file name inside the data directory.
const DBFile = "history.db"

// ─── Types ───────────────────────────────────────────────────────────────────

// Entry is one generated document.
type Entry struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Filename          string `json:"filename"`
	Path              string `json:"path"`
	TopicCount        int    `json:"topic_count"`
	RelationshipCount int    `json:"relationship_count"`
	CreatedAt         string `json:"created_at"`
}

// Config holds history store configuration.
type Config struct {
	DataDir string
	// MaxEntries caps the table; older rows are pruned on insert. Zero
	// keeps everything.
	MaxEntries int
}

// DefaultConfig returns the default configuration rooted at dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{DataDir: dataDir, MaxEntries: 500}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed history of generated documents.
type Store struct {
	db  *sql.DB
	cfg Config
	now func() time.Time
}

// New opens (creating if needed) the history database in cfg.DataDir.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(cfg.DataDir, DBFile))
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS maps (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			title              TEXT    NOT NULL,
			filename           TEXT    NOT NULL,
			path               TEXT    NOT NULL,
			topic_count        INTEGER NOT NULL DEFAULT 0,
			relationship_count INTEGER NOT NULL DEFAULT 0,
			created_at         TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_maps_created ON maps(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_maps_path    ON maps(path);
	`)
	return err
}

// Record stores an entry and returns its id. CreatedAt is set by the store.
func (s *Store) Record(e Entry) (int64, error) {
	createdAt := s.now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.Exec(
		`INSERT INTO maps (title, filename, path, topic_count, relationship_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Title, e.Filename, e.Path, e.TopicCount, e.RelationshipCount, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("history: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: last insert id: %w", err)
	}

	if s.cfg.MaxEntries > 0 {
		if _, err := s.db.Exec(
			`DELETE FROM maps WHERE id NOT IN (SELECT id FROM maps ORDER BY id DESC LIMIT ?)`,
			s.cfg.MaxEntries,
		); err != nil {
			return id, fmt.Errorf("history: prune: %w", err)
		}
	}
	return id, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// means 20.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, title, filename, path, topic_count, relationship_count, created_at
		 FROM maps ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Filename, &e.Path, &e.TopicCount, &e.RelationshipCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM maps`).Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return n, nil
}
