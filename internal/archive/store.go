// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive is the query catalog over the read-only archive database.
// It holds one parameterized query per search mode and maps the returned
// rows onto typed page, article and issue-count records.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotExist is wrapped by DataSourceUnavailable when the database file
// is missing.
var ErrNotExist = errors.New("database file does not exist")

// Store is a read-only handle on the archive database. The zero value is
// not usable; call Open.
type Store struct {
	db   *sql.DB
	path string
}

// Open checks that path exists and opens it read-only. Any failure is
// returned as *DataSourceUnavailable.
func Open(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &DataSourceUnavailable{Path: path, Err: ErrNotExist}
		}
		return nil, &DataSourceUnavailable{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &DataSourceUnavailable{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}

	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, &DataSourceUnavailable{Path: path, Err: fmt.Errorf("opening database: %w", err)}
	}

	// One command, one query.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &DataSourceUnavailable{Path: path, Err: fmt.Errorf("connecting to database: %w", err)}
	}

	return &Store{db: db, path: path}, nil
}

// readOnlyDSN builds a file: URI so paths with spaces survive.
func readOnlyDSN(path string) string {
	u := url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}
	return u.String()
}

// Path returns the database file the store was opened from.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// query runs stmt and hands each row to scan. Failures are wrapped as
// *QueryExecutionError carrying mode.
func (s *Store) query(ctx context.Context, q catalogQuery, args []any, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, q.stmt, args...)
	if err != nil {
		return &QueryExecutionError{Mode: q.mode, Err: fmt.Errorf("querying archive: %w", err)}
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return &QueryExecutionError{Mode: q.mode, Err: fmt.Errorf("scanning row: %w", err)}
		}
	}
	if err := rows.Err(); err != nil {
		return &QueryExecutionError{Mode: q.mode, Err: fmt.Errorf("reading rows: %w", err)}
	}
	return nil
}
