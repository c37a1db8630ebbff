package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/pyprac/profilesvg/pkg/errors"
)

const sqlSchema = `
CREATE TABLE IF NOT EXISTS profile_store (
	name       TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// SQLStore keeps values in the profile_store table of a SQLite database.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite database at path. The
// driver is pure Go unless built with the cgo_sqlite tag.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sqlite store: empty path")
	}
	db, err := openSQLite(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "open %s", path)
	}
	s, err := NewSQLStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore uses db, creating the table if it does not exist. The store
// owns db and closes it on Close.
func NewSQLStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, sqlSchema); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create schema")
	}
	return &SQLStore{db: db}, nil
}

// Get implements Store.
func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM profile_store WHERE name = ?`, key).Scan(&value)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(errors.ErrCodeStore, err, "get %s", key)
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile_store (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "set %s", key)
	}
	return nil
}

// Remove implements Store.
func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profile_store WHERE name = ?`, key); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "remove %s", key)
	}
	return nil
}

// Keys implements Lister.
func (s *SQLStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM profile_store ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list keys")
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "scan key")
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list keys")
	}
	return keys, nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

var (
	_ Store  = (*SQLStore)(nil)
	_ Lister = (*SQLStore)(nil)
)
