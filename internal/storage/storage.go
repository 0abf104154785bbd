// Package storage persists contact form drafts and the outbox of submissions
// that could not reach the backend. Data lives in a single SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "capture"
	dbFileName = "capture.db"
)

// Contact is a contact form payload as stored locally.
type Contact struct {
	Name    string
	Email   string
	Service string
	Message string
}

// DB wraps the SQLite handle.
type DB struct {
	db *sql.DB
}

// DefaultPath returns the database path under the XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens (creating if needed) the database at path. An empty path uses
// DefaultPath; ":memory:" opens a private in-memory database.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		path = p
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	logrus.WithField("path", path).Debug("storage opened")
	return &DB{db: db}, nil
}

// Close releases the database.
func (d *DB) Close() error {
	return d.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), `
		CREATE TABLE IF NOT EXISTS drafts (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			service TEXT NOT NULL,
			message TEXT NOT NULL,
			saved_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS outbox (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			service TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			last_error TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_outbox_created_at ON outbox(created_at);
	`)
	return err
}
