package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/unowned-ai/eduquest/pkg/flashcards"
	"github.com/unowned-ai/eduquest/pkg/records"
)

// EventSource is the storage the engine reads from.
type EventSource interface {
	ListEventsByDate(ctx context.Context, date string) ([]records.Event, error)
	ListEventsInRange(ctx context.Context, start, end string) ([]records.Event, error)
}

// Notice is an upcoming event with a relative day label.
type Notice struct {
	When  string        `json:"when" yaml:"when"`
	Event records.Event `json:"event" yaml:"event"`
}

// Label renders the notice like "[Today @ 09:00] Exam".
func (n Notice) Label() string {
	clock := n.Event.Time
	if clock == "" {
		clock = "N/A"
	}
	return fmt.Sprintf("[%s @ %s] %s", n.When, clock, n.Event.Title)
}

// Engine joins month grids with stored events. Flashcards never show up on
// the calendar.
type Engine struct {
	source EventSource
}

func NewEngine(source EventSource) *Engine {
	return &Engine{source: source}
}

// DayEvents lists the calendar events of date in display order.
func (e *Engine) DayEvents(ctx context.Context, date time.Time) ([]records.Event, error) {
	events, err := e.source.ListEventsByDate(ctx, DateOnly(date).Format(records.DateLayout))
	if err != nil {
		return nil, err
	}
	return flashcards.CalendarOnly(events), nil
}

// Month builds the grid for year/month and fills in-month cells with their
// calendar events. today, when non-zero, marks the current day.
func (e *Engine) Month(ctx context.Context, year int, month time.Month, today time.Time) (Grid, error) {
	g := MonthGrid(year, month)
	if !today.IsZero() {
		g.MarkToday(today)
	}
	if err := e.Populate(ctx, &g); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// Populate attaches events to every in-month cell of g with one range query.
func (e *Engine) Populate(ctx context.Context, g *Grid) error {
	first := time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	events, err := e.source.ListEventsInRange(ctx, first.Format(records.DateLayout), last.Format(records.DateLayout))
	if err != nil {
		return fmt.Errorf("failed to load events for %s: %w", first.Format("2006-01"), err)
	}

	byDay := make(map[string][]records.Event)
	for _, ev := range flashcards.CalendarOnly(events) {
		byDay[ev.Date] = append(byDay[ev.Date], ev)
	}
	for r := range g.Cells {
		for c := range g.Cells[r] {
			cell := &g.Cells[r][c]
			if cell.InMonth {
				cell.Events = byDay[cell.Day]
			} else {
				cell.Events = nil
			}
		}
	}
	return nil
}

// Upcoming returns calendar events for today and tomorrow.
func (e *Engine) Upcoming(ctx context.Context, today time.Time) ([]Notice, error) {
	day := DateOnly(today)
	todayKey := day.Format(records.DateLayout)
	tomorrowKey := day.AddDate(0, 0, 1).Format(records.DateLayout)

	events, err := e.source.ListEventsInRange(ctx, todayKey, tomorrowKey)
	if err != nil {
		return nil, err
	}

	notices := []Notice{}
	for _, ev := range flashcards.CalendarOnly(events) {
		when := "Tomorrow"
		if ev.Date == todayKey {
			when = "Today"
		}
		notices = append(notices, Notice{When: when, Event: ev})
	}
	return notices, nil
}
