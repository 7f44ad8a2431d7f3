// Package importer turns vCard data into friend records.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/emersion/go-vcard"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

// FriendCreator is the slice of the store the importer needs.
type FriendCreator interface {
	CreateFriend(ctx context.Context, f *model.Friend) error
}

// Options control how imported cards map onto friend records.
type Options struct {
	Tier          model.Tier
	FrequencyDays int
}

// Stats summarizes one import run.
type Stats struct {
	Cards    int // cards decoded, malformed ones excluded
	Imported int
	Skipped  int // malformed cards
}

// Parse decodes a vCard stream into friend records. Malformed cards are
// skipped to maximize data recovery; a card without a parseable BDAY still
// imports, just without a birthday.
func Parse(ctx context.Context, r io.Reader, opts Options) ([]model.Friend, Stats, error) {
	decoder := vcard.NewDecoder(r)

	var (
		friends []model.Friend
		stats   Stats
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyError, err,
			)
			stats.Skipped++
			continue
		}
		stats.Cards++

		// Name strategy: FN (formatted) > N (structured) > fallback.
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		f := model.Friend{
			Name:                 name,
			Tier:                 opts.Tier,
			ContactFrequencyDays: opts.FrequencyDays,
		}

		if bday := card.Get(config.VCardBDAY); bday != nil && bday.Value != "" {
			b, err := engine.ParseBirthday(bday.Value)
			if err != nil {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompImporter,
					config.LogKeyValue, bday.Value,
				)
			} else {
				f.Birthday = b
			}
		}

		friends = append(friends, f)
	}
	return friends, stats, nil
}

// Run parses the stream and persists every decoded friend.
func Run(ctx context.Context, creator FriendCreator, r io.Reader, opts Options) (Stats, error) {
	slog.Info(config.MsgImportStarted, config.LogKeyComponent, config.CompImporter)

	friends, stats, err := Parse(ctx, r, opts)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}

	for i := range friends {
		if err := creator.CreateFriend(ctx, &friends[i]); err != nil {
			return stats, fmt.Errorf("import %q: %w", friends[i].Name, err)
		}
		stats.Imported++
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyTotal, stats.Cards,
		config.LogKeyImported, stats.Imported,
		config.LogKeySkipped, stats.Skipped,
	)
	return stats, nil
}
