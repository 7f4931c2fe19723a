package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore keeps keys in a single kv table.
type SQLiteStore struct {
	db   *sql.DB
	path string

	// MaxBytes limits the sum of key and value lengths. Zero means no limit.
	MaxBytes int64
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string, maxBytes int64) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, NewError(KindUnavailable, "", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, NewError(KindUnavailable, "", err)
	}

	// single writer, single reader: the app never touches the db concurrently
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, NewError(
			KindUnavailable,
			"",
			fmt.Errorf("failed to initialise %s: %w", path, err),
		)
	}

	return &SQLiteStore{db: db, path: path, MaxBytes: maxBytes}, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string

	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, NewError(KindRead, key, err)
	}

	return value, true, nil
}

func (s *SQLiteStore) Set(key string, value string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return NewError(KindWrite, key, err)
	}
	defer tx.Rollback()

	if s.MaxBytes > 0 {
		var others int64
		err := tx.QueryRow(
			`SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0)
			 FROM kv WHERE key != ?`,
			key,
		).Scan(&others)
		if err != nil {
			return NewError(KindWrite, key, err)
		}

		size := int(others) + len(key) + len(value)
		if int64(size) > s.MaxBytes {
			return quotaError(key, size, s.MaxBytes)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return NewError(KindWrite, key, err)
	}

	if err := tx.Commit(); err != nil {
		return NewError(KindWrite, key, err)
	}

	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return NewError(KindWrite, key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
