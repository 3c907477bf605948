// Package state is the durable client-local store: a small sqlite-backed
// key/value table holding whatever must survive process restarts. The
// session credential and the theme preference live here under fixed keys.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finwise/internal/core"

	_ "modernc.org/sqlite"
)

// Fixed storage keys.
const (
	KeyToken = "token"
	KeyTheme = "theme"
)

// Theme preference values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("state key not found")

// Store is a sqlite-backed key/value store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the state database at path and runs
// migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping state database: %w", err)
	}

	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate state database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the stored value for key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM client_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get state %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO client_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set state %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

// Credential returns the persisted session credential, or an empty
// credential when none is stored.
func (s *Store) Credential(ctx context.Context) (core.Credential, error) {
	v, err := s.Get(ctx, KeyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return core.Credential(v), nil
}

// SetCredential persists the session credential.
func (s *Store) SetCredential(ctx context.Context, cred core.Credential) error {
	return s.Set(ctx, KeyToken, string(cred))
}

// ClearCredential erases the persisted credential.
func (s *Store) ClearCredential(ctx context.Context) error {
	return s.Delete(ctx, KeyToken)
}

// Theme returns the persisted theme preference, defaulting to light.
func (s *Store) Theme(ctx context.Context) string {
	v, err := s.Get(ctx, KeyTheme)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.WarnContext(ctx, "Failed to read theme preference", "error", err)
		}
		return ThemeLight
	}
	if v != ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("invalid theme %q", theme)
	}
	return s.Set(ctx, KeyTheme, theme)
}
