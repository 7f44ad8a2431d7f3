package engine

import (
	"log/slog"
	"sort"
	"time"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

// DeriveTimeline produces the "urgent today / upcoming this week" feed:
// birthdays today (priority 100), birthdays within the next 7 days
// (priority 50-daysUntil, so nearer outranks farther), and check-in
// suggestions for overdue friends in an active tier (priority capped at 30,
// always below any birthday item).
//
// The returned set contains the IDs of friends that produced a check-in
// suggestion; DeriveBacklog must be invoked with it so no friend is surfaced
// twice. A single friend may legitimately emit both a birthday item and a
// check-in item in the same call.
//
// Deterministic for fixed inputs. Malformed friend records are skipped with
// a warning rather than failing the whole derivation.
func (e *Engine) DeriveTimeline(friends []model.Friend, settings model.Settings, now time.Time) ([]model.TimelineItem, map[string]struct{}) {
	items := make([]model.TimelineItem, 0, len(friends))
	urgent := make(map[string]struct{})

	for _, f := range friends {
		if err := f.Validate(); err != nil {
			slog.Warn(config.MsgSkippedFriend,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyFriendID, f.ID,
				config.LogKeyError, err,
			)
			continue
		}

		if f.Birthday != nil {
			occurrence, daysUntil := NextOccurrence(*f.Birthday, now)
			switch {
			case daysUntil == 0:
				slog.Debug(config.MsgBdayToday,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyName, f.Name,
				)
				items = append(items, model.TimelineItem{
					Kind:       model.KindBirthdayToday,
					FriendID:   f.ID,
					FriendName: f.Name,
					Title:      f.Name,
					Subtitle:   e.birthdaySubtitle(0),
					Date:       occurrence,
					Priority:   config.BirthdayTodayPriority,
				})
			case daysUntil >= 1 && daysUntil <= config.UpcomingWindowDays:
				items = append(items, model.TimelineItem{
					Kind:       model.KindBirthdayUpcoming,
					FriendID:   f.ID,
					FriendName: f.Name,
					Title:      f.Name,
					Subtitle:   e.birthdaySubtitle(daysUntil),
					Date:       occurrence,
					Priority:   config.UpcomingBasePriority - float64(daysUntil),
				})
			}
		}

		if !settings.CheckInRemindersEnabled || f.Tier == model.TierOther {
			continue
		}

		ratio, days, contacted := overdueRatio(f, now)
		if ratio < 1 {
			continue
		}

		priority := ratio * config.CheckInPriorityScale
		if priority > config.CheckInPriorityCap {
			priority = config.CheckInPriorityCap
		}

		date := now
		if contacted {
			date = f.LastContactedAt.AddDate(0, 0, f.ContactFrequencyDays)
		}

		items = append(items, model.TimelineItem{
			Kind:       model.KindCheckInSuggestion,
			FriendID:   f.ID,
			FriendName: f.Name,
			Title:      f.Name,
			Subtitle:   e.checkInSubtitle(days, contacted),
			Date:       date,
			Priority:   priority,
		})
		urgent[f.ID] = struct{}{}
	}

	// Stable: friends with equal priority keep their roster order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority > items[j].Priority
	})

	slog.Debug(config.MsgDeriveDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyTimeline, len(items),
		config.LogKeyUrgent, len(urgent),
	)
	return items, urgent
}
