// Package store persists per-site derivation profiles, so the CLI can
// remember which length (and notes) a site was generated with. Master
// passwords and derived passwords are never stored.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/flowerpass/flowerpass/pkg/fpcode"
)

// ErrNotFound is returned when no profile exists for the requested site.
var ErrNotFound = errors.New("site profile not found")

// Profile describes the derivation settings remembered for one site.
type Profile struct {
	Site      string
	Length    int
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store wraps the SQLite database holding site profiles.
type Store struct {
	conn *sql.DB
	path string
}

// Config holds store configuration options.
type Config struct {
	Path            string        // Database file path
	MaxOpenConns    int           // Maximum number of open connections
	MaxIdleConns    int           // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum connection lifetime
	BusyTimeout     time.Duration // SQLite busy timeout
}

// DefaultConfig returns sensible defaults for store configuration.
func DefaultConfig(path string) Config {
	return Config{
		Path:            path,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		BusyTimeout:     5 * time.Second,
	}
}

// Open creates a store at path with default configuration.
func Open(path string) (*Store, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens the store with custom configuration.
// Enables WAL mode, foreign keys, and a busy timeout for better
// concurrency, and creates the schema if it does not exist.
func OpenWithConfig(cfg Config) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=%d",
		cfg.Path,
		int(cfg.BusyTimeout.Milliseconds()),
	)

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	s := &Store{
		conn: conn,
		path: cfg.Path,
	}

	if err := s.migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	slog.Debug("site profile store opened", "path", cfg.Path)
	return s, nil
}

// migrate creates the schema if it does not exist.
func (s *Store) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS site_profiles (
	site       TEXT PRIMARY KEY,
	length     INTEGER NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

	if _, err := s.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Put inserts or updates the profile for a site. The length must be
// within the derivation bounds.
func (s *Store) Put(ctx context.Context, p Profile) error {
	if p.Site == "" {
		return fmt.Errorf("site must not be empty")
	}
	if p.Length < fpcode.MinLength || p.Length > fpcode.MaxLength {
		return &fpcode.InvalidLengthError{Length: p.Length}
	}

	now := time.Now().UTC()
	_, err := s.conn.ExecContext(ctx, `
INSERT INTO site_profiles (site, length, notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(site) DO UPDATE SET
	length = excluded.length,
	notes = excluded.notes,
	updated_at = excluded.updated_at`,
		p.Site, p.Length, p.Notes, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile for %q: %w", p.Site, err)
	}

	slog.Debug("site profile saved", "site", p.Site, "length", p.Length)
	return nil
}

// Get returns the profile for a site, or ErrNotFound.
func (s *Store) Get(ctx context.Context, site string) (*Profile, error) {
	var p Profile
	err := s.conn.QueryRowContext(ctx, `
SELECT site, length, notes, created_at, updated_at
FROM site_profiles WHERE site = ?`, site,
	).Scan(&p.Site, &p.Length, &p.Notes, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for %q: %w", site, err)
	}
	return &p, nil
}

// List returns all profiles ordered by site name.
func (s *Store) List(ctx context.Context) ([]Profile, error) {
	rows, err := s.conn.QueryContext(ctx, `
SELECT site, length, notes, created_at, updated_at
FROM site_profiles ORDER BY site`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.Site, &p.Length, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

// Delete removes the profile for a site. Returns ErrNotFound when the
// site has no profile.
func (s *Store) Delete(ctx context.Context, site string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM site_profiles WHERE site = ?`, site)
	if err != nil {
		return fmt.Errorf("failed to delete profile for %q: %w", site, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.Debug("site profile deleted", "site", site)
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
