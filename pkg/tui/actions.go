package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unowned-ai/eduquest/pkg/app"
	"github.com/unowned-ai/eduquest/pkg/calendar"
	"github.com/unowned-ai/eduquest/pkg/flashcards"
	"github.com/unowned-ai/eduquest/pkg/notes"
	"github.com/unowned-ai/eduquest/pkg/records"
)

type gridMsg calendar.Grid

type dayEventsMsg struct {
	date   string
	events []records.Event
}

type upcomingMsg []calendar.Notice

type deckMsg struct{ deck *flashcards.Deck }

type notesMsg []notes.Note

type noteMsg notes.Note

// statusMsg replaces the status line and optionally reloads the day.
type statusMsg struct {
	text   string
	reload bool
}

// Build the populated grid for month
func loadMonth(ctx context.Context, a *app.App, month time.Time) tea.Cmd {
	return func() tea.Msg {
		g, err := a.MonthView(ctx, month)
		if err != nil {
			return err
		}
		return gridMsg(g)
	}
}

// List calendar events of one day
func loadDayEvents(ctx context.Context, a *app.App, date string) tea.Cmd {
	return func() tea.Msg {
		events, err := a.DayEvents(ctx, date)
		if err != nil {
			return err
		}
		return dayEventsMsg{date: date, events: events}
	}
}

func loadUpcoming(ctx context.Context, a *app.App) tea.Cmd {
	return func() tea.Msg {
		notices, err := a.Upcoming(ctx)
		if err != nil {
			return err
		}
		return upcomingMsg(notices)
	}
}

func loadDeck(ctx context.Context, a *app.App) tea.Cmd {
	return func() tea.Msg {
		deck, err := a.TodayDeck(ctx)
		if err != nil {
			return err
		}
		return deckMsg{deck: deck}
	}
}

func searchNotes(ctx context.Context, a *app.App, query string) tea.Cmd {
	return func() tea.Msg {
		found, err := a.SearchNotes(ctx, query)
		if err != nil {
			return err
		}
		return notesMsg(found)
	}
}

func loadNote(ctx context.Context, a *app.App, id string) tea.Cmd {
	return func() tea.Msg {
		n, err := a.Notes().Get(ctx, id)
		if err != nil {
			return statusMsg{text: err.Error()}
		}
		return noteMsg(n)
	}
}

func addEvent(ctx context.Context, a *app.App, in app.EventInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.AddEvent(ctx, in); err != nil {
			return statusMsg{text: err.Error()}
		}
		return statusMsg{text: "Event added: " + in.Title, reload: true}
	}
}

func deleteEvent(ctx context.Context, a *app.App, ev records.Event) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.DeleteEvent(ctx, ev.ID); err != nil {
			return statusMsg{text: err.Error()}
		}
		return statusMsg{text: "Event deleted: " + ev.Title, reload: true}
	}
}

func addFlashcard(ctx context.Context, a *app.App, in app.FlashcardInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.AddFlashcard(ctx, in); err != nil {
			return statusMsg{text: err.Error()}
		}
		return statusMsg{text: "Flashcard added"}
	}
}
