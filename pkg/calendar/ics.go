package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/unowned-ai/eduquest/pkg/flashcards"
	"github.com/unowned-ai/eduquest/pkg/logging"
	"github.com/unowned-ai/eduquest/pkg/records"
)

const (
	productID = "-//EduQuest//Study Calendar//EN"

	icsDateLayout     = "20060102"
	icsDateTimeLayout = "20060102T150405"

	// importHorizon bounds recurring imports without COUNT or UNTIL.
	importHorizon = 365 * 24 * time.Hour
)

// ErrEmptyCalendar is returned when an import holds no usable events.
var ErrEmptyCalendar = errors.New("calendar contains no events")

// ExportICS writes events as an iCalendar document. Untimed events become
// all-day entries and timed events use floating local time. Flashcards are
// skipped.
func ExportICS(events []records.Event, w io.Writer) error {
	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)

	stamp := time.Now().UTC()
	for _, ev := range flashcards.CalendarOnly(events) {
		day, err := time.Parse(records.DateLayout, ev.Date)
		if err != nil {
			return fmt.Errorf("event %d: %w", ev.ID, records.ErrInvalidDate)
		}

		vevent := cal.AddEvent(fmt.Sprintf("event-%d@eduquest", ev.ID))
		vevent.SetSummary(ev.Title)
		vevent.SetDtStampTime(stamp)
		if !ev.HasTime() {
			vevent.SetAllDayStartAt(day)
			continue
		}
		clock, err := time.Parse(records.TimeLayout, ev.Time)
		if err != nil {
			return fmt.Errorf("event %d: %w", ev.ID, records.ErrInvalidTime)
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
		vevent.SetProperty(ical.ComponentPropertyDtStart, at.Format(icsDateTimeLayout))
	}

	return cal.SerializeTo(w)
}

// ImportICS reads VEVENTs into unsaved events. Recurring entries are
// expanded for up to a year. Entries without a summary or start are
// logged and skipped.
func ImportICS(ctx context.Context, r io.Reader) ([]records.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	logger := logging.FromContext(ctx)
	var out []records.Event
	for _, vevent := range cal.Events() {
		title := ""
		if p := vevent.GetProperty(ical.ComponentPropertySummary); p != nil {
			title = strings.TrimSpace(p.Value)
		}
		startProp := vevent.GetProperty(ical.ComponentPropertyDtStart)
		if title == "" || startProp == nil {
			logger.Warn("skipping calendar entry without summary or start", "uid", vevent.Id())
			continue
		}

		start, allDay, err := parseICSTime(startProp.Value)
		if err != nil {
			logger.Warn("skipping calendar entry with unreadable start", "uid", vevent.Id(), "value", startProp.Value, "error", err)
			continue
		}

		starts := []time.Time{start}
		if p := vevent.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
			expanded, err := ExpandRecurrence(p.Value, start, start.Add(importHorizon))
			if err != nil {
				logger.Warn("ignoring unreadable recurrence", "uid", vevent.Id(), "rrule", p.Value, "error", err)
			} else if len(expanded) > 0 {
				starts = expanded
			}
		}

		for _, at := range starts {
			ev := records.Event{Title: title, Date: at.Format(records.DateLayout)}
			if !allDay {
				ev.Time = at.Format(records.TimeLayout)
			}
			out = append(out, ev)
		}
	}

	if len(out) == 0 {
		return nil, ErrEmptyCalendar
	}
	return out, nil
}

// parseICSTime understands DATE, floating DATE-TIME and UTC DATE-TIME
// values. UTC values are converted to local wall time.
func parseICSTime(v string) (time.Time, bool, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, false, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		t, err := time.Parse(icsDateTimeLayout+"Z", v)
		if err != nil {
			return time.Time{}, false, err
		}
		local := t.In(time.Local)
		return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), local.Second(), 0, time.UTC), false, nil
	case strings.Contains(v, "T"):
		t, err := time.Parse(icsDateTimeLayout, v)
		return t, false, err
	default:
		t, err := time.Parse(icsDateLayout, v)
		return t, true, err
	}
}
