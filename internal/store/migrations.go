package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "friends: tracked relationships",
		SQL: `
CREATE TABLE friends (
    id                     TEXT PRIMARY KEY,
    name                   TEXT NOT NULL CHECK (name <> ''),
    birthday               TEXT,
    tier                   TEXT NOT NULL CHECK (tier IN ('top', 'close', 'cordialities', 'other')),
    starred                INTEGER NOT NULL DEFAULT 0,
    contact_frequency_days INTEGER NOT NULL CHECK (contact_frequency_days > 0),
    last_contacted_at      TEXT,
    created_at             TEXT NOT NULL,
    updated_at             TEXT NOT NULL
);

CREATE INDEX idx_friends_tier ON friends(tier);
CREATE INDEX idx_friends_last_contacted ON friends(last_contacted_at);
`,
	},
	{
		Version:     2,
		Description: "interactions: immutable contact log",
		SQL: `
CREATE TABLE interactions (
    id          TEXT PRIMARY KEY,
    friend_id   TEXT NOT NULL REFERENCES friends(id) ON DELETE CASCADE,
    note        TEXT,
    occurred_at TEXT NOT NULL,
    created_at  TEXT NOT NULL
);

CREATE INDEX idx_interactions_friend   ON interactions(friend_id);
CREATE INDEX idx_interactions_occurred ON interactions(occurred_at DESC);
`,
	},
	{
		Version:     3,
		Description: "settings: process-wide key/value configuration",
		SQL: `
CREATE TABLE settings (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`,
	},
}

func (db *DB) migrate() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		)`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Description, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_versions (version, description) VALUES (?, ?)`, m.Version, m.Description); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}
