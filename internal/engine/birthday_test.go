package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-keepintouch/internal/model"
)

// TestParseBirthday covers the literal-substring parser across the formats
// encountered in the wild (CLI flags and vCard BDAY fields).
func TestParseBirthday(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantErr   bool
		wantYear  int
		wantMonth time.Month
		wantDay   int
		yearKnown bool
	}{
		{"ISO8601 Standard", "1990-10-25", false, 1990, time.October, 25, true},
		{"Basic Format", "19901025", false, 1990, time.October, 25, true},
		{"RFC3339", "1990-10-25T00:00:00Z", false, 1990, time.October, 25, true},
		{"Truncated (Month-Day)", "--10-25", false, 2000, time.October, 25, false},
		{"Truncated Basic", "--1025", false, 2000, time.October, 25, false},
		{"Leapling Truncated", "--02-29", false, 2000, time.February, 29, false},
		{"Garbage Data", "not-a-date", true, 0, 0, 0, false},
		{"Empty Date", "", true, 0, 0, 0, false},
		{"Normalizing Tuple Rejected", "1990-04-31", true, 0, 0, 0, false},
		{"Month Out Of Range", "1990-13-01", true, 0, 0, 0, false},
		{"Feb 29 Non-Leap Year", "1999-02-29", true, 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBirthday(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, b.Year)
			assert.Equal(t, tt.wantMonth, b.Month)
			assert.Equal(t, tt.wantDay, b.Day)
			assert.Equal(t, tt.yearKnown, b.YearKnown)
		})
	}
}

// TestParseBirthday_TimezoneDiscipline guards the reason the parser exists:
// an RFC3339 value with a non-UTC offset must yield the literal month/day,
// not the fields after a timezone conversion.
func TestParseBirthday_TimezoneDiscipline(t *testing.T) {
	b, err := ParseBirthday("1990-06-15T23:30:00+11:00")
	require.NoError(t, err)
	assert.Equal(t, time.June, b.Month)
	assert.Equal(t, 15, b.Day, "literal day must survive, regardless of offset")
}

func TestFormatBirthday_RoundTrip(t *testing.T) {
	for _, value := range []string{"1990-10-25", "--02-29"} {
		b, err := ParseBirthday(value)
		require.NoError(t, err)
		assert.Equal(t, value, FormatBirthday(*b))
	}
}

// TestNextOccurrence verifies the core temporal logic: year rollover,
// same-day detection, and leap-year normalization.
func TestNextOccurrence(t *testing.T) {
	// Reference "today": June 15th, 2025 (non-leap year), mid-morning.
	today := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		birthday      model.Birthday
		wantDate      time.Time
		wantDaysUntil int
	}{
		{
			name:          "Passed this year rolls to next year",
			birthday:      model.Birthday{Year: 1990, Month: time.January, Day: 1, YearKnown: true},
			wantDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			wantDaysUntil: 200,
		},
		{
			name:          "Still ahead this year",
			birthday:      model.Birthday{Year: 1990, Month: time.December, Day: 31, YearKnown: true},
			wantDate:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			wantDaysUntil: 199,
		},
		{
			name:          "Same calendar day counts as today despite time-of-day",
			birthday:      model.Birthday{Year: 1990, Month: time.June, Day: 15, YearKnown: true},
			wantDate:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			wantDaysUntil: 0,
		},
		{
			name:          "Tomorrow",
			birthday:      model.Birthday{Year: 2000, Month: time.June, Day: 16, YearKnown: false},
			wantDate:      time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			wantDaysUntil: 1,
		},
		{
			name:          "Leapling normalizes to Mar 1 in a non-leap year",
			birthday:      model.Birthday{Year: 2000, Month: time.February, Day: 29, YearKnown: true},
			wantDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			wantDaysUntil: 259,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, daysUntil := NextOccurrence(tt.birthday, today)
			assert.Equal(t, tt.wantDate, date)
			assert.Equal(t, tt.wantDaysUntil, daysUntil)
			assert.GreaterOrEqual(t, daysUntil, 0, "daysUntil is never negative after rollover")
		})
	}
}

// TestNextOccurrence_LeapYearContext: in a leap year Feb 29 is preserved.
func TestNextOccurrence_LeapYearContext(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := model.Birthday{Year: 2000, Month: time.February, Day: 29, YearKnown: true}

	date, daysUntil := NextOccurrence(b, today)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, 59, daysUntil)
}

// TestNextOccurrence_YearRolloverBoundary: Dec 31 seen from Jan 1.
func TestNextOccurrence_YearRolloverBoundary(t *testing.T) {
	today := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
	b := model.Birthday{Year: 2000, Month: time.December, Day: 31, YearKnown: false}

	date, daysUntil := NextOccurrence(b, today)
	assert.Equal(t, 2025, date.Year())
	assert.Equal(t, 364, daysUntil)
}

func TestAgeAt(t *testing.T) {
	known := model.Birthday{Year: 1990, Month: time.June, Day: 15, YearKnown: true}
	unknown := model.Birthday{Year: 2000, Month: time.June, Day: 15, YearKnown: false}
	occ := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 35, AgeAt(known, occ))
	assert.Equal(t, 0, AgeAt(unknown, occ), "unknown birth year yields age 0")
}
