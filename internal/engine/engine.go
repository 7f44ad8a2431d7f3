// Package engine implements the timeline and backlog derivation engines.
//
// Both engines are pure functions of the friend roster, the settings, and an
// injected "now": no state is retained between calls, no clock is read, and
// no I/O happens inside the engine boundary. Every read is a full
// recomputation; there is deliberately no incremental-update path.
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

// Engine bundles the derivation logic with optional presentation hooks.
//
// FormatBirthdaySubtitle and FormatCheckInSubtitle let the caller inject
// localized strings into the logic layer without the engine importing a
// translation bundle. When nil, English fallbacks are used.
type Engine struct {
	FormatBirthdaySubtitle func(daysUntil int) string
	FormatCheckInSubtitle  func(daysSince int, contacted bool) string
}

// New creates an Engine with fallback formatting.
func New() *Engine {
	return &Engine{}
}

func (e *Engine) birthdaySubtitle(daysUntil int) string {
	if e.FormatBirthdaySubtitle != nil {
		return e.FormatBirthdaySubtitle(daysUntil)
	}
	switch daysUntil {
	case 0:
		return config.FallbackSubtitleToday
	case 1:
		return config.FallbackSubtitleTomorrow
	default:
		return fmt.Sprintf(config.FallbackSubtitleInDays, daysUntil)
	}
}

func (e *Engine) checkInSubtitle(daysSince int, contacted bool) string {
	if e.FormatCheckInSubtitle != nil {
		return e.FormatCheckInSubtitle(daysSince, contacted)
	}
	if !contacted {
		return config.FallbackSubtitleNever
	}
	return fmt.Sprintf(config.FallbackSubtitleDaysAgo, daysSince)
}

// overdueRatio returns daysSince/frequency with never-contacted friends
// treated as infinitely overdue. The whole-day count is also returned for
// subtitle rendering (meaningless when contacted is false).
func overdueRatio(f model.Friend, now time.Time) (ratio float64, days int, contacted bool) {
	if f.LastContactedAt == nil {
		return math.Inf(1), 0, false
	}
	days = daysSince(*f.LastContactedAt, now)
	return float64(days) / float64(f.ContactFrequencyDays), days, true
}
