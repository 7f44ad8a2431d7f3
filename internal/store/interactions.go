package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

// AddInteraction appends an immutable contact-log entry and moves the owning
// friend's last-contacted timestamp to the interaction's timestamp, in one
// transaction. This is the only write path for last_contacted_at.
func (db *DB) AddInteraction(ctx context.Context, friendID, note string, occurredAt time.Time) (*model.Interaction, error) {
	now := time.Now().UTC()
	occurredAt = occurredAt.UTC()

	in := &model.Interaction{
		ID:         db.newID(),
		FriendID:   friendID,
		Note:       note,
		OccurredAt: occurredAt,
		CreatedAt:  now,
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin interaction: %w", err)
	}
	defer tx.Rollback()

	// Bump the friend first: an unknown ID surfaces as ErrNotFound here,
	// before the insert can trip the foreign key constraint.
	res, err := tx.ExecContext(ctx, `
		UPDATE friends SET last_contacted_at = ?, updated_at = ? WHERE id = ?`,
		in.OccurredAt.Format(config.DateFormatStore),
		now.Format(config.DateFormatStore),
		friendID,
	)
	if err != nil {
		return nil, fmt.Errorf("bump last contact: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO interactions (id, friend_id, note, occurred_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.FriendID, in.Note,
		in.OccurredAt.Format(config.DateFormatStore),
		in.CreatedAt.Format(config.DateFormatStore),
	); err != nil {
		return nil, fmt.Errorf("insert interaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit interaction: %w", err)
	}

	slog.Debug(config.MsgInteractionLog,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFriendID, friendID,
	)
	return in, nil
}

// ListInteractions returns a friend's contact log, most recent first.
// limit <= 0 means no limit.
func (db *DB) ListInteractions(ctx context.Context, friendID string, limit int) ([]model.Interaction, error) {
	query := `
		SELECT id, friend_id, note, occurred_at, created_at
		FROM interactions WHERE friend_id = ?
		ORDER BY occurred_at DESC, id DESC`
	args := []any{friendID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var out []model.Interaction
	for rows.Next() {
		var (
			in         model.Interaction
			occurredAt string
			createdAt  string
		)
		if err := rows.Scan(&in.ID, &in.FriendID, &in.Note, &occurredAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		if in.OccurredAt, err = time.Parse(config.DateFormatStore, occurredAt); err != nil {
			return nil, fmt.Errorf("parse occurred_at: %w", err)
		}
		if in.CreatedAt, err = time.Parse(config.DateFormatStore, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
