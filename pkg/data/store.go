package data

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

var (
	// ErrKeyNotFound is returned by Store.Get when nothing was saved under the key.
	ErrKeyNotFound = errors.New("key not found")

	errStoreNotInitialized = errors.New("store not initialized")

	// StoreTypes lists the supported backends.
	StoreTypes = []string{StoreSQLite, StorePostgres, StoreRedis}
)

//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock_data

// Store is a last-write-wins key-value store of serialized values.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// StoreConfig selects and configures a Store backend.
type StoreConfig struct {
	Type string `yaml:"type" validate:"required,oneof=sqlite postgres redis"`
	// Path is the SQLite database file.
	Path string `yaml:"path,omitempty" validate:"required_if=Type sqlite"`
	// DSN is the Postgres connection string.
	DSN string `yaml:"dsn,omitempty"`
	// Addr is the Redis host:port.
	Addr     string `yaml:"addr,omitempty" validate:"required_if=Type redis"`
	Password string `yaml:"-"`
	DB       int    `yaml:"db,omitempty" validate:"min=0"`
	Prefix   string `yaml:"prefix,omitempty"`
}

// Open connects to the backend selected by cfg.Type.
func Open(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Type {
	case StoreSQLite, "":
		return NewSQLiteStore(cfg.Path)
	case StorePostgres:
		return NewPostgresStore(ctx, cfg.DSN)
	case StoreRedis:
		return NewRedisStore(ctx, cfg.Addr, cfg.Password, cfg.DB, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unsupported store type: %s (permitted options: %v)", cfg.Type, StoreTypes)
	}
}
