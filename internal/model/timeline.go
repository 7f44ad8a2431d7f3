package model

import "time"

// ItemKind tags the origin of a timeline item.
type ItemKind string

const (
	KindBirthdayToday     ItemKind = "birthday_today"
	KindBirthdayUpcoming  ItemKind = "birthday_upcoming"
	KindCheckInSuggestion ItemKind = "check_in_suggestion"
)

// TimelineItem is the display-ready output record of the derivation engines.
// Items are recomputed from scratch on every read and have no identity or
// lifecycle of their own; Priority orders a single derivation result and is
// never compared across invocations.
type TimelineItem struct {
	Kind       ItemKind  `json:"kind"`
	FriendID   string    `json:"friend_id"`
	FriendName string    `json:"friend_name"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	Date       time.Time `json:"date"`
	Priority   float64   `json:"priority"`
}
