package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestClassifyStatus checks the precedence order of the classification rules
// and the boundaries of the overdue / due-soon windows.
func TestClassifyStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) *time.Time {
		ts := now.AddDate(0, 0, -d)
		return &ts
	}

	tests := []struct {
		name          string
		last          *time.Time
		frequency     int
		birthdayToday bool
		want          Status
	}{
		{"Birthday beats overdue", daysAgo(100), 14, true, StatusBirthday},
		{"Birthday beats never contacted", nil, 14, true, StatusBirthday},
		{"Never contacted is new", nil, 14, false, StatusNew},
		{"Exactly at frequency is overdue", daysAgo(14), 14, false, StatusOverdue},
		{"Far past frequency is overdue", daysAgo(60), 14, false, StatusOverdue},
		{"Window start is due-soon", daysAgo(11), 14, false, StatusDueSoon},
		{"One day before deadline is due-soon", daysAgo(13), 14, false, StatusDueSoon},
		{"Below the window is recent", daysAgo(10), 14, false, StatusRecent},
		{"Contacted today is recent", daysAgo(0), 14, false, StatusRecent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStatus(tt.last, tt.frequency, tt.birthdayToday, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestClassifyStatus_WholeDayTruncation: 13 days and 23 hours is still 13
// whole days, not 14 — truncation, never rounding.
func TestClassifyStatus_WholeDayTruncation(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	last := now.Add(-(13*24 + 23) * time.Hour)

	got := ClassifyStatus(&last, 14, false, now)
	assert.Equal(t, StatusDueSoon, got)
}
