package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

// Birthday arithmetic works strictly in civil-date terms (year/month/day
// fields). Raw epoch subtraction is never used for comparison, so a stored
// time-of-day or timezone offset can never shift a birthday across midnight.

// ParseBirthday parses a birthday string by its literal date components.
// Accepted forms:
//
//	2006-01-02, 20060102            (year known)
//	2006-01-02T15:04:05...          (year known; time-of-day ignored)
//	--01-02, --0102                 (year unknown, vCard truncated forms)
//
// Year-unknown forms are mapped onto the leap-year sentinel so that Feb 29
// stays representable.
func ParseBirthday(value string) (*model.Birthday, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New(config.ErrDateParse)
	}

	// Deliberately cut the literal substrings instead of going through
	// time.Parse: reading calendar fields back through a timezone conversion
	// is exactly the off-by-one trap this parser exists to avoid.
	switch {
	case strings.HasPrefix(value, "--"):
		rest := strings.ReplaceAll(value[2:], "-", "")
		if len(rest) != 4 {
			return nil, errors.New(config.ErrDateParse)
		}
		return newBirthday(config.DefaultLeapYear, rest[0:2], rest[2:4], false)

	case len(value) >= 10 && value[4] == '-' && value[7] == '-':
		return newBirthday(0, value[5:7], value[8:10], true, value[0:4])

	case len(value) == 8:
		return newBirthday(0, value[4:6], value[6:8], true, value[0:4])
	}

	return nil, errors.New(config.ErrDateParse)
}

func newBirthday(year int, monthStr, dayStr string, yearKnown bool, yearStr ...string) (*model.Birthday, error) {
	if yearKnown {
		y, err := strconv.Atoi(yearStr[0])
		if err != nil {
			return nil, errors.New(config.ErrDateParse)
		}
		year = y
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return nil, errors.New(config.ErrDateParse)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return nil, errors.New(config.ErrDateParse)
	}

	b := &model.Birthday{
		Year:      year,
		Month:     time.Month(month),
		Day:       day,
		YearKnown: yearKnown,
	}
	if !validCivil(b.Year, b.Month, b.Day) {
		return nil, errors.New(config.ErrDateParse)
	}
	return b, nil
}

// validCivil rejects tuples that time.Date would silently normalize
// (month 13, April 31, Feb 29 in a non-leap year, ...).
func validCivil(year int, month time.Month, day int) bool {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && t.Month() == month && t.Day() == day
}

// FormatBirthday renders a birthday back into its canonical storage string:
// "2006-01-02" when the year is known, "--01-02" otherwise.
func FormatBirthday(b model.Birthday) string {
	if b.YearKnown {
		return fmt.Sprintf("%04d-%02d-%02d", b.Year, b.Month, b.Day)
	}
	return fmt.Sprintf("--%02d-%02d", b.Month, b.Day)
}

// NextOccurrence determines the next calendar occurrence of a birthday
// relative to "today" and the number of whole days until it. A birthday
// falling on today's calendar date counts as today (daysUntil == 0), never
// as next year. Feb 29 normalizes to Mar 1 in non-leap years (Go's time.Date
// normalization).
func NextOccurrence(b model.Birthday, today time.Time) (time.Time, int) {
	loc := today.Location()
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	candidate := time.Date(today.Year(), b.Month, b.Day, 0, 0, 0, 0, loc)
	if candidate.Before(todayStart) {
		// Passed this year; same-day was excluded by the strict Before.
		candidate = time.Date(today.Year()+1, b.Month, b.Day, 0, 0, 0, 0, loc)
	}

	return candidate, wholeDaysBetween(todayStart, candidate)
}

// AgeAt returns the age turned on the given occurrence date, or 0 when the
// birth year is unknown.
func AgeAt(b model.Birthday, occurrence time.Time) int {
	if !b.YearKnown {
		return 0
	}
	return occurrence.Year() - b.Year
}

// wholeDaysBetween counts calendar days from one date to another. Both
// endpoints are re-anchored at UTC midnight of their civil fields first, so
// DST transitions and mixed locations cannot produce 23- or 25-hour "days".
func wholeDaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}
