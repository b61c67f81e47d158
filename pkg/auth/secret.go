package auth

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

const (
	// PostgresDSN holds the Postgres connection string.
	PostgresDSN = "postgres-dsn"
	// RedisPassword holds the Redis AUTH password.
	RedisPassword = "redis-password"

	secretFileExt  = ".secret"
	secretFileMode = 0600
)

var (
	ErrSecretNotFound = errors.New("secret not found")
	ErrUnknownSecret  = errors.New("unknown secret")

	// Names lists the secrets the app knows how to use.
	Names = []string{PostgresDSN, RedisPassword}
)

// Secrets keeps backend credentials in the OS keychain. When the keychain is
// unavailable the values are written to 0600 files in dir instead.
type Secrets struct {
	service string
	dir     string
}

func NewSecrets(service, dir string) *Secrets {
	return &Secrets{service: service, dir: dir}
}

// IsName reports whether name is a known secret.
func IsName(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Set saves the value of the named secret.
func (s *Secrets) Set(name, value string) error {
	if !IsName(name) {
		return errors.Wrapf(ErrUnknownSecret, "%s (valid: %s)", name, strings.Join(Names, ", "))
	}
	if value == "" {
		return errors.New("secret value required")
	}

	if err := keyring.Set(s.service, name, value); err != nil {
		slog.Warn("keychain unavailable, falling back to file", "error", err)
		return s.saveFile(name, value)
	}

	// a value in the keychain supersedes any file copy
	s.removeFile(name)
	return nil
}

// Get returns the value of the named secret. Values found only in the
// fallback file are moved into the keychain when it becomes available.
func (s *Secrets) Get(name string) (string, error) {
	if !IsName(name) {
		return "", errors.Wrapf(ErrUnknownSecret, "%s", name)
	}

	v, err := keyring.Get(s.service, name)
	if err == nil && v != "" {
		return v, nil
	}

	v, err = s.readFile(name)
	if err != nil {
		return "", err
	}

	if err := keyring.Set(s.service, name, v); err == nil {
		slog.Info("migrated secret from file to OS keychain", "name", name)
		s.removeFile(name)
	}
	return v, nil
}

// Delete removes the named secret from both the keychain and the file.
func (s *Secrets) Delete(name string) error {
	if !IsName(name) {
		return errors.Wrapf(ErrUnknownSecret, "%s", name)
	}
	if err := keyring.Delete(s.service, name); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		slog.Debug("keychain delete failed", "name", name, "error", err)
	}
	s.removeFile(name)
	return nil
}

func (s *Secrets) path(name string) string {
	return filepath.Join(s.dir, name+secretFileExt)
}

func (s *Secrets) saveFile(name, value string) error {
	if s.dir == "" {
		return errors.New("secret directory required")
	}
	if err := os.WriteFile(s.path(name), []byte(value), secretFileMode); err != nil {
		return errors.Wrapf(err, "failed to write secret file for %s", name)
	}
	return nil
}

func (s *Secrets) readFile(name string) (string, error) {
	if s.dir == "" {
		return "", errors.Wrapf(ErrSecretNotFound, "%s", name)
	}
	b, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errors.Wrapf(ErrSecretNotFound, "%s", name)
		}
		return "", errors.Wrapf(err, "failed to read secret file for %s", name)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *Secrets) removeFile(name string) {
	if s.dir == "" {
		return
	}
	if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Debug("failed to remove secret file", "name", name, "error", err)
	}
}
