// Package model defines the core relationship-tracking data types.
package model

import (
	"errors"
	"time"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

// Tier is the priority bucket of a friend. It controls whether the friend
// participates in check-in suggestions at all (TierOther is excluded) and the
// ranking weight when included.
type Tier string

const (
	TierTop          Tier = "top"
	TierClose        Tier = "close"
	TierCordialities Tier = "cordialities"
	TierOther        Tier = "other"
)

// ValidTiers is the closed set of accepted tier values.
var ValidTiers = map[Tier]bool{
	TierTop:          true,
	TierClose:        true,
	TierCordialities: true,
	TierOther:        true,
}

// ParseTier validates a raw tier string.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !ValidTiers[t] {
		return "", errors.New(config.ErrTierUnknown)
	}
	return t, nil
}

// Weight returns the ranking multiplier for the tier.
// TierOther is unreachable in ranking paths (excluded upstream) but keeps a
// defined weight for completeness.
func (t Tier) Weight() float64 {
	switch t {
	case TierTop:
		return 4
	case TierClose:
		return 3
	case TierCordialities:
		return 2
	default:
		return 1
	}
}

// Birthday is a civil date: year/month/day fields compared without reference
// to time-of-day or timezone offset. When YearKnown is false the Year field
// holds the leap-year sentinel (config.DefaultLeapYear).
type Birthday struct {
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`
	Day       int        `json:"day"`
	YearKnown bool       `json:"year_known"`
}

// Friend is one tracked relationship.
type Friend struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Birthday             *Birthday  `json:"birthday,omitempty"`
	Tier                 Tier       `json:"tier"`
	Starred              bool       `json:"starred"`
	ContactFrequencyDays int        `json:"contact_frequency_days"`
	LastContactedAt      *time.Time `json:"last_contacted_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Validate checks the record invariants: non-empty name, positive contact
// frequency, known tier. The store refuses to persist anything that fails
// here; the engine additionally skips records that do.
func (f *Friend) Validate() error {
	if f.Name == "" {
		return errors.New(config.ErrNameRequired)
	}
	if f.ContactFrequencyDays <= 0 {
		return errors.New(config.ErrFrequencyRange)
	}
	if !ValidTiers[f.Tier] {
		return errors.New(config.ErrTierUnknown)
	}
	return nil
}

// Interaction is an immutable log entry of one contact event. Creating one
// updates the owning friend's LastContactedAt; that side effect is owned by
// the store, never the engine.
type Interaction struct {
	ID         string    `json:"id"`
	FriendID   string    `json:"friend_id"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Settings holds the process-wide configuration read by the engines.
type Settings struct {
	DefaultContactFrequencyDays int    `json:"default_contact_frequency_days"`
	CheckInRemindersEnabled     bool   `json:"check_in_reminders_enabled"`
	Language                    string `json:"language"`
}

// DefaultSettings returns the out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		DefaultContactFrequencyDays: config.DefaultContactFrequencyDays,
		CheckInRemindersEnabled:     true,
		Language:                    config.DefaultLanguage,
	}
}
