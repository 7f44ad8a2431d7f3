// Package calendar renders friends' birthdays as an iCalendar feed.
package calendar

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
	"github.com/tartampluch/go-keepintouch/internal/model"
)

// Builder converts a friend roster into ICS data.
type Builder struct {
	// Summary allows localized event titles to be injected; nil falls back
	// to English.
	Summary func(name string, age int, yearKnown bool) string
}

// Build renders birthdays as all-day events for the previous, current, and
// next year, so calendar clients scrolling backward or forward see events
// without an immediate re-sync. reminderTrigger is an ISO8601 duration
// (e.g. "-P1D") adding a DISPLAY alarm to every event; empty disables alarms.
// Returns the ICS payload and the number of birthdays falling on now's date.
func (b *Builder) Build(friends []model.Friend, now time.Time, reminderTrigger string) ([]byte, int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Local time drives the day logic; UTC is only for the DTSTAMP. A
	// birthday is defined by the person's local calendar date, not an
	// absolute instant.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	today := 0
	withBirthday := 0
	for _, f := range friends {
		if f.Birthday == nil {
			continue
		}
		withBirthday++

		events, isToday := b.createEvents(f, now, reminderTrigger)
		if isToday {
			today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompCalendar,
				config.LogKeyName, f.Name,
				config.LogKeyDOB, engine.FormatBirthday(*f.Birthday),
			)
		}
		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if len(cal.Children) == 0 {
		b.logSuccess(len(friends), withBirthday, today)
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	b.logSuccess(len(friends), withBirthday, today)
	return buf.Bytes(), today, nil
}

func (b *Builder) logSuccess(total, withBirthday, today int) {
	slog.Info(config.MsgCalGenSuccess,
		config.LogKeyComponent, config.CompCalendar,
		slog.Group(config.LogKeyStats,
			slog.Int("friends", total),
			slog.Int("birthdays_found", withBirthday),
			slog.Int("birthdays_today", today),
		),
	)
}

// createEvents generates events for CurrentYear-1, CurrentYear, CurrentYear+1,
// never before the person was born.
func (b *Builder) createEvents(f model.Friend, now time.Time, reminderTrigger string) ([]*ical.Event, bool) {
	bday := *f.Birthday
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	var events []*ical.Event
	isToday := false
	todayYear, todayMonth, todayDay := now.Date()

	for _, y := range targetYears {
		if bday.YearKnown && y < bday.Year {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, f.ID, y, config.ICalDomain))

		age := 0
		if bday.YearKnown {
			age = y - bday.Year
		}
		event.Props.SetText(config.PropSummary, b.summary(f.Name, age, bday.YearKnown))

		eventDate := time.Date(y, bday.Month, bday.Day, 0, 0, 0, 0, loc)
		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, b.summary(f.Name, age, bday.YearKnown))
		}

		events = append(events, event)
	}
	return events, isToday
}

func (b *Builder) summary(name string, age int, yearKnown bool) string {
	if b.Summary != nil {
		return b.Summary(name, age, yearKnown)
	}
	if yearKnown && age > 0 {
		return fmt.Sprintf(config.FallbackEventSummaryAge, name, age)
	}
	return fmt.Sprintf(config.FallbackEventSummary, name)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid a "VALUE=TEXT" param on the duration.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
