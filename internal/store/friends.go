package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

// ErrNotFound is returned when a friend lookup matches nothing.
var ErrNotFound = errors.New(config.ErrFriendNotFound)

const friendColumns = `id, name, birthday, tier, starred, contact_frequency_days, last_contacted_at, created_at, updated_at`

// CreateFriend validates and inserts a new friend, assigning its ID and
// timestamps. The invariants enforced here (positive frequency, known tier)
// are what allow the engine to treat its input as well-formed.
func (db *DB) CreateFriend(ctx context.Context, f *model.Friend) error {
	if f.ContactFrequencyDays == 0 {
		f.ContactFrequencyDays = config.DefaultContactFrequencyDays
	}
	if err := f.Validate(); err != nil {
		return err
	}

	f.ID = db.newID()
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now

	_, err := db.ExecContext(ctx, `
		INSERT INTO friends (id, name, birthday, tier, starred, contact_frequency_days, last_contacted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Name, birthdayColumn(f.Birthday), string(f.Tier), boolToInt(f.Starred),
		f.ContactFrequencyDays, timeColumn(f.LastContactedAt),
		now.Format(config.DateFormatStore), now.Format(config.DateFormatStore),
	)
	if err != nil {
		return fmt.Errorf("insert friend: %w", err)
	}
	return nil
}

// GetFriend fetches a friend by exact ID.
func (db *DB) GetFriend(ctx context.Context, id string) (*model.Friend, error) {
	row := db.QueryRowContext(ctx, `SELECT `+friendColumns+` FROM friends WHERE id = ?`, id)
	return scanFriend(row)
}

// FindFriend resolves a CLI-friendly reference: exact ID first, then exact
// name (case-insensitive). Ambiguous names return the oldest match.
func (db *DB) FindFriend(ctx context.Context, ref string) (*model.Friend, error) {
	f, err := db.GetFriend(ctx, ref)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT `+friendColumns+` FROM friends
		WHERE name = ? COLLATE NOCASE
		ORDER BY created_at, id LIMIT 1`, ref)
	return scanFriend(row)
}

// ListFriends returns the roster in stable creation order; the engines rely
// on this order for deterministic tie-breaking. An empty tier lists all.
func (db *DB) ListFriends(ctx context.Context, tier model.Tier) ([]model.Friend, error) {
	query := `SELECT ` + friendColumns + ` FROM friends`
	args := []any{}
	if tier != "" {
		query += ` WHERE tier = ?`
		args = append(args, string(tier))
	}
	query += ` ORDER BY created_at, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	var friends []model.Friend
	for rows.Next() {
		f, err := scanFriendRow(rows)
		if err != nil {
			return nil, err
		}
		friends = append(friends, *f)
	}
	return friends, rows.Err()
}

// UpdateFriend persists mutable fields of an existing friend. The
// last-contacted timestamp is deliberately not written here; only
// AddInteraction moves it.
func (db *DB) UpdateFriend(ctx context.Context, f *model.Friend) error {
	if err := f.Validate(); err != nil {
		return err
	}
	f.UpdatedAt = time.Now().UTC()

	res, err := db.ExecContext(ctx, `
		UPDATE friends
		SET name = ?, birthday = ?, tier = ?, starred = ?, contact_frequency_days = ?, updated_at = ?
		WHERE id = ?`,
		f.Name, birthdayColumn(f.Birthday), string(f.Tier), boolToInt(f.Starred),
		f.ContactFrequencyDays, f.UpdatedAt.Format(config.DateFormatStore), f.ID,
	)
	if err != nil {
		return fmt.Errorf("update friend: %w", err)
	}
	return requireRow(res)
}

// DeleteFriend removes a friend and, via cascade, its interaction log.
func (db *DB) DeleteFriend(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM friends WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete friend: %w", err)
	}
	return requireRow(res)
}

// -----------------------------------------------------------------------------
// Scanning helpers
// -----------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFriend(row *sql.Row) (*model.Friend, error) {
	f, err := scanFriendRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

func scanFriendRow(row rowScanner) (*model.Friend, error) {
	var (
		f         model.Friend
		birthday  sql.NullString
		starred   int
		last      sql.NullString
		createdAt string
		updatedAt string
		tier      string
	)
	if err := row.Scan(&f.ID, &f.Name, &birthday, &tier, &starred,
		&f.ContactFrequencyDays, &last, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan friend: %w", err)
	}

	f.Tier = model.Tier(tier)
	f.Starred = starred != 0

	if birthday.Valid && birthday.String != "" {
		b, err := engine.ParseBirthday(birthday.String)
		if err != nil {
			return nil, fmt.Errorf("friend %s: %s: %w", f.ID, config.ErrDateParse, err)
		}
		f.Birthday = b
	}
	if last.Valid && last.String != "" {
		ts, err := time.Parse(config.DateFormatStore, last.String)
		if err != nil {
			return nil, fmt.Errorf("friend %s: parse last_contacted_at: %w", f.ID, err)
		}
		f.LastContactedAt = &ts
	}

	var err error
	if f.CreatedAt, err = time.Parse(config.DateFormatStore, createdAt); err != nil {
		return nil, fmt.Errorf("friend %s: parse created_at: %w", f.ID, err)
	}
	if f.UpdatedAt, err = time.Parse(config.DateFormatStore, updatedAt); err != nil {
		return nil, fmt.Errorf("friend %s: parse updated_at: %w", f.ID, err)
	}
	return &f, nil
}

func birthdayColumn(b *model.Birthday) any {
	if b == nil {
		return nil
	}
	return engine.FormatBirthday(*b)
}

func timeColumn(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(config.DateFormatStore)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
