// Package store implements the transactional writer and resumable URL
// queue (C4/C5) against a single embedded relational database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) a local sqlite file in WAL mode with a
// single writer connection, applies the schema, and returns a ready Store.
//
// see this stackoverflow post for information on why SetMaxOpenConns(1)
// exists: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := applySchema(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// OpenDB wraps an already-open database handle, applying the schema
// without touching WAL/foreign-key pragmas. Tests use this to share a
// handle set up by lib/testutil.
func OpenDB(db *sql.DB) (*Store, error) {
	if err := applySchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// OpenRemote opens a replica-backed libsql database, for teams that run the
// queue against a hosted turso/libsql instance instead of a local file.
func OpenRemote(url, authToken string) (*Store, error) {
	dsn := url
	if authToken != "" {
		dsn = fmt.Sprintf("%s?authToken=%s", url, authToken)
	}
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open remote store: %w", err)
	}

	if err := applySchema(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for callers (overview/stats queries,
// tests) that need read-only access beyond the Store's own API.
func (s *Store) DB() *sql.DB {
	return s.db
}
