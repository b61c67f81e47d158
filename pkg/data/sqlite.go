package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

const (
	upsertSQLite = `INSERT INTO kv (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`
	selectSQLite = `SELECT data FROM kv WHERE name = ?`
	deleteSQLite = `DELETE FROM kv WHERE name = ?`

	insertVersionSQLite = `INSERT INTO schema_version (version) VALUES (?)`
)

// SQLiteStore keeps values in the kv table of a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore initializes the database file if needed, opens it and
// makes sure the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := Init(path); err != nil {
		return nil, errors.Wrap(err, "initializing database")
	}
	db, err := GetDB(path)
	if err != nil {
		return nil, err
	}

	// an existing file may still lack the schema
	if err := applySchema(db, insertVersionSQLite); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to apply schema to: %s", path)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, errDBNotInitialized
	}
	return getValue(ctx, s.db, selectSQLite, key)
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	if s == nil || s.db == nil {
		return errDBNotInitialized
	}
	if _, err := s.db.ExecContext(ctx, upsertSQLite, key, string(value), time.Now().UTC()); err != nil {
		return errors.Wrapf(err, "failed to save key: %s", key)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return errDBNotInitialized
	}
	if _, err := s.db.ExecContext(ctx, deleteSQLite, key); err != nil {
		return errors.Wrapf(err, "failed to delete key: %s", key)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func getValue(ctx context.Context, db *sql.DB, query, key string) ([]byte, error) {
	var v string
	if err := db.QueryRowContext(ctx, query, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "failed to read key: %s", key)
	}
	return []byte(v), nil
}
