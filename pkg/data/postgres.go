package data

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

const (
	upsertPostgres = `INSERT INTO kv (name, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`
	selectPostgres = `SELECT data FROM kv WHERE name = $1`
	deletePostgres = `DELETE FROM kv WHERE name = $1`
)

// PostgresStore keeps values in the kv table of a Postgres database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to dsn and makes sure the schema exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn not specified")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres connection")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}

	slog.Debug("ensuring postgres schema")
	if err := applySchema(db, "INSERT INTO schema_version (version) VALUES ($1)"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create postgres schema")
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, errDBNotInitialized
	}
	return getValue(ctx, s.db, selectPostgres, key)
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if s == nil || s.db == nil {
		return errDBNotInitialized
	}
	if _, err := s.db.ExecContext(ctx, upsertPostgres, key, string(value), time.Now().UTC()); err != nil {
		return errors.Wrapf(err, "failed to save key: %s", key)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return errDBNotInitialized
	}
	if _, err := s.db.ExecContext(ctx, deletePostgres, key); err != nil {
		return errors.Wrapf(err, "failed to delete key: %s", key)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
