package engine

import (
	"time"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

// Status categorizes the current contact urgency of a friend. It is shared
// by the derivation engines and every display surface so that a friend never
// shows conflicting urgency in two places.
type Status string

const (
	StatusOverdue  Status = "overdue"
	StatusDueSoon  Status = "due_soon"
	StatusRecent   Status = "recent"
	StatusBirthday Status = "birthday"
	StatusNew      Status = "new"
)

// ClassifyStatus applies the status rules in precedence order:
// birthday beats everything, a friend never contacted is "new", then the
// gap since last contact decides overdue / due-soon / recent.
// Side-effect free; all inputs are assumed valid per the model invariants.
func ClassifyStatus(lastContactedAt *time.Time, contactFrequencyDays int, isBirthdayToday bool, now time.Time) Status {
	if isBirthdayToday {
		return StatusBirthday
	}
	if lastContactedAt == nil {
		return StatusNew
	}

	days := daysSince(*lastContactedAt, now)
	switch {
	case days >= contactFrequencyDays:
		return StatusOverdue
	case days >= contactFrequencyDays-config.DueSoonWindowDays:
		return StatusDueSoon
	default:
		return StatusRecent
	}
}

// daysSince counts whole elapsed days, truncated (not rounded).
func daysSince(t, now time.Time) int {
	return int(now.Sub(t) / (24 * time.Hour))
}
