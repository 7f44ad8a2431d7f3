// Package store provides the SQLite-backed persistence layer.
//
// The store owns every write-path invariant the engine assumes: it never
// persists a non-positive contact frequency or an unknown tier, and logging
// an interaction is the only thing that moves a friend's last-contacted
// timestamp.
package store

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

// DB wraps a sql.DB connection to the keepintouch SQLite database.
type DB struct {
	*sql.DB
	Path string

	entropy *rand.Rand
}

// DefaultDBPath returns the default database path: ~/.keepintouch/keepintouch.db,
// overridable via the KEEPINTOUCH_DB environment variable.
func DefaultDBPath() (string, error) {
	if env := os.Getenv(config.EnvDBPath); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, config.DBDirName, config.DBFileName), nil
}

// Open opens (or creates) the SQLite database at the given path,
// configures pragmas, and runs migrations.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrOpenDB, err)
	}
	return initDB(sqlDB, path)
}

// OpenMemory opens an in-memory SQLite database for testing.
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrOpenDB, err)
	}
	return initDB(sqlDB, ":memory:")
}

func initDB(sqlDB *sql.DB, path string) (*DB, error) {
	db := &DB{
		DB:      sqlDB,
		Path:    path,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := db.configurePragmas(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrMigrate, err)
	}
	return db, nil
}

func (db *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

// newID returns a lexicographically sortable unique identifier. ULIDs sort
// by creation time, which keeps the default roster order stable.
func (db *DB) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), db.entropy).String()
}
