// Package sqlite opens SQLite databases through modernc.org/sqlite with the
// pragmas a small single-node deployment needs.
package sqlite

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite"
)

const (
	defaultBusyTimeout  = 10 * time.Second
	defaultMaxOpenConns = 1
)

type Option func(*sqlx.DB)

func WithMaxOpenConns(n int) Option {
	return func(db *sqlx.DB) {
		db.SetMaxOpenConns(n)
	}
}

func WithConnMaxIdleTime(d time.Duration) Option {
	return func(db *sqlx.DB) {
		db.SetConnMaxIdleTime(d)
	}
}

// DSN returns the driver connection string for path. The pragmas are
// part of the DSN so every pooled connection gets them.
func DSN(path string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		busyTimeout = defaultBusyTimeout
	}

	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Set("_txlock", "immediate")

	return "file:" + path + "?" + q.Encode()
}

// New opens the database file at path, creating its directory if needed.
func New(ctx context.Context, path string, busyTimeout time.Duration, opts ...Option) (*sqlx.DB, error) {
	const op = "sqlite.New"

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: failed to create database directory: %w", op, err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite", DSN(path, busyTimeout))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)

	for _, opt := range opts {
		opt(db)
	}

	return db, nil
}
