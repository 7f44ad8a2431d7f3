package engine

import (
	"log/slog"
	"sort"
	"time"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

// DeriveBacklog produces the secondary, capped, ranked list of friends that
// the timeline did not already surface as urgent. urgentFriendIDs must be
// exactly the set returned by DeriveTimeline for the same friends, settings
// and now, which guarantees a friend never appears in both views.
//
// Ranking is overdueRatio x tierWeight x starredBoost. Friends never
// contacted carry an infinite ratio and always sort before any finite-ratio
// friend regardless of tier or starring. Ties keep roster order; the result
// is truncated to the top 10.
func (e *Engine) DeriveBacklog(friends []model.Friend, settings model.Settings, now time.Time, urgentFriendIDs map[string]struct{}) []model.TimelineItem {
	items := make([]model.TimelineItem, 0, len(friends))

	for _, f := range friends {
		if err := f.Validate(); err != nil {
			slog.Warn(config.MsgSkippedFriend,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyFriendID, f.ID,
				config.LogKeyError, err,
			)
			continue
		}
		if f.Tier == model.TierOther {
			continue
		}
		if _, ok := urgentFriendIDs[f.ID]; ok {
			continue
		}

		ratio, days, contacted := overdueRatio(f, now)

		boost := 1.0
		if f.Starred {
			boost = config.StarredBoost
		}

		date := now
		if contacted {
			date = *f.LastContactedAt
		}

		items = append(items, model.TimelineItem{
			Kind:       model.KindCheckInSuggestion,
			FriendID:   f.ID,
			FriendName: f.Name,
			Title:      f.Name,
			Subtitle:   e.checkInSubtitle(days, contacted),
			Date:       date,
			Priority:   ratio * f.Tier.Weight() * boost,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority > items[j].Priority
	})

	if len(items) > config.BacklogLimit {
		items = items[:config.BacklogLimit]
	}

	slog.Debug(config.MsgDeriveDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyBacklog, len(items),
	)
	return items
}
