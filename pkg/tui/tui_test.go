package tui

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/eduquest/pkg/app"
	"github.com/unowned-ai/eduquest/pkg/config"
	"github.com/unowned-ai/eduquest/pkg/records"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestApp(t *testing.T) (*app.App, *testClock) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "eduquest.db")},
		Notes:    config.NotesConfig{Directory: filepath.Join(dir, "notes")},
	}
	clock := &testClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)}
	a, err := app.New(cfg, app.WithClock(clock.Now))
	require.NoError(t, err)
	require.NoError(t, a.Init(context.Background()))
	return a, clock
}

var cmdSliceType = reflect.TypeOf([]tea.Cmd(nil))

// run executes cmd and feeds every resulting message back into m until no
// command is left. Batched and sequenced commands run in order.
func run(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if v := reflect.ValueOf(msg); v.IsValid() && v.Type().ConvertibleTo(cmdSliceType) {
		for _, c := range v.Convert(cmdSliceType).Interface().([]tea.Cmd) {
			m = run(t, m, c)
		}
		return m
	}
	next, nextCmd := m.Update(msg)
	return run(t, next.(model), nextCmd)
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, cmd := m.Update(msg)
		m = run(t, next.(model), cmd)
	}
	return m
}

func loggedIn(t *testing.T, a *app.App) model {
	t.Helper()
	m := initModel(context.Background(), a)
	m.width, m.height = 120, 40
	m.userInput.SetValue(app.DemoUser)
	m = press(t, m, "enter")
	m.passInput.SetValue(app.DemoPassword)
	m = press(t, m, "enter")
	require.Equal(t, screenCalendar, m.screen)
	require.NoError(t, m.err)
	return m
}

func TestLoginGate(t *testing.T) {
	a, _ := newTestApp(t)
	m := initModel(context.Background(), a)

	m.userInput.SetValue("demo")
	m = press(t, m, "enter")
	assert.Equal(t, 1, m.loginStep)

	m.passInput.SetValue("wrong")
	m = press(t, m, "enter")
	assert.Equal(t, screenLogin, m.screen)
	assert.Equal(t, app.ErrInvalidCredentials.Error(), m.loginError)
	assert.Empty(t, m.passInput.Value())
	assert.Contains(t, m.View(), "Log in")

	m.passInput.SetValue(app.DemoPassword)
	m = press(t, m, "enter")
	assert.Equal(t, screenCalendar, m.screen)
	assert.True(t, m.state.LoggedIn)
	assert.Empty(t, m.loginError)
	assert.Equal(t, "2025-03-10", m.selectedDate())

	m = press(t, m, "o")
	assert.Equal(t, screenLogin, m.screen)
	assert.False(t, m.state.LoggedIn)
}

func TestCalendarNavigation(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()
	_, err := a.AddEvent(ctx, app.EventInput{Title: "Exam", Date: "2025-03-10", Time: "09:00"})
	require.NoError(t, err)

	m := loggedIn(t, a)
	require.Len(t, m.dayEvents, 1)
	assert.Equal(t, "Exam", m.dayEvents[0].Title)
	require.Len(t, m.upcoming, 1)
	assert.Equal(t, "[Today @ 09:00] Exam", m.upcoming[0].Label())

	view := m.View()
	assert.Contains(t, view, "March 2025")
	assert.Contains(t, view, "Exam")

	m = press(t, m, "right")
	assert.Equal(t, "2025-03-11", m.selectedDate())
	assert.Empty(t, m.dayEvents)

	m = press(t, m, "up")
	assert.Equal(t, "2025-03-04", m.selectedDate())
	// March 2025 starts on a Saturday; nothing above the 1st row is in the month.
	m = press(t, m, "up")
	assert.Equal(t, "2025-03-04", m.selectedDate())

	m = press(t, m, "]")
	assert.Equal(t, time.April, m.grid.Month)
	assert.Equal(t, "2025-04-01", m.selectedDate())

	m = press(t, m, "[", "[")
	assert.Equal(t, time.February, m.grid.Month)
	assert.Equal(t, 2025, m.grid.Year)

	m = press(t, m, "t")
	assert.Equal(t, time.March, m.grid.Month)
	assert.Equal(t, "2025-03-10", m.selectedDate())
}

func TestAddAndDeleteEvent(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()
	_, err := a.AddEvent(ctx, app.EventInput{Title: "Exam", Date: "2025-03-10", Time: "09:00"})
	require.NoError(t, err)
	m := loggedIn(t, a)

	m = press(t, m, "a")
	require.True(t, m.eventAdding)
	m = press(t, m, "enter")
	assert.Equal(t, "Event title cannot be empty", m.eventAddingError)

	m.eventTitleInput.SetValue("Lab")
	m = press(t, m, "enter")
	m.eventTimeInput.SetValue("25:00")
	m = press(t, m, "enter")
	assert.Equal(t, "Time must be HH:MM", m.eventAddingError)

	m.eventTimeInput.SetValue("14:00")
	m = press(t, m, "enter")
	assert.False(t, m.eventAdding)
	assert.Equal(t, "Event added: Lab", m.status)
	require.Len(t, m.dayEvents, 2)
	assert.Equal(t, "Lab", m.dayEvents[1].Title)

	m = press(t, m, "enter", "down", "d")
	require.True(t, m.eventDeleting)
	assert.Equal(t, 1, m.eventDeleteConfirmIdx)

	// "No" keeps the event.
	m = press(t, m, "enter")
	assert.False(t, m.eventDeleting)
	assert.Len(t, m.dayEvents, 2)

	m = press(t, m, "d", "up", "enter")
	assert.Equal(t, "Event deleted: Lab", m.status)
	require.Len(t, m.dayEvents, 1)
	assert.Equal(t, "Exam", m.dayEvents[0].Title)
}

func TestFlashcardReview(t *testing.T) {
	a, clock := newTestApp(t)
	ctx := context.Background()
	for _, in := range []app.FlashcardInput{{Front: "H2O", Back: "water"}, {Front: "Na", Back: "sodium"}} {
		_, err := a.AddFlashcard(ctx, in)
		require.NoError(t, err)
	}
	m := loggedIn(t, a)
	assert.Empty(t, m.dayEvents, "flashcards stay off the calendar")

	m = press(t, m, "f")
	require.Equal(t, screenFlashcards, m.screen)
	assert.True(t, a.ActivityOpen())
	require.NotNil(t, m.deck)
	assert.Equal(t, "1/2", m.deck.Position())
	assert.Equal(t, "H2O", m.deck.Face())

	m = press(t, m, " ")
	assert.Equal(t, "water", m.deck.Face())
	m = press(t, m, "right")
	assert.Equal(t, "Na", m.deck.Face())
	m = press(t, m, "right")
	assert.Equal(t, "Na", m.deck.Face())
	m = press(t, m, "left")
	assert.Equal(t, "H2O", m.deck.Face())
	assert.Contains(t, m.View(), "H2O")

	clock.now = clock.now.Add(90 * time.Second)
	m = press(t, m, "esc")
	assert.Equal(t, screenCalendar, m.screen)
	assert.False(t, a.ActivityOpen())
	assert.Equal(t, "Flashcards session recorded: 1m 30s", m.status)

	h, err := a.History(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 90, h.TotalSeconds)
}

func TestShortSessionIsNotRecorded(t *testing.T) {
	a, _ := newTestApp(t)
	m := loggedIn(t, a)

	m = press(t, m, "f")
	assert.Contains(t, m.View(), "No flashcards for today")
	m = press(t, m, "esc")
	assert.Equal(t, "Flashcards session not recorded (0s is too short)", m.status)

	h, err := a.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, h.Sessions)
}

func TestAddFlashcardForm(t *testing.T) {
	a, _ := newTestApp(t)
	m := loggedIn(t, a)
	m = press(t, m, "f", "a")
	require.True(t, m.cardAdding)

	m.cardFrontInput.SetValue("a — b")
	m = press(t, m, "enter")
	assert.Contains(t, m.cardAddingError, "cannot contain")

	m.cardFrontInput.SetValue("pick one —")
	m = press(t, m, "enter")
	assert.Contains(t, m.cardAddingError, "cannot contain")

	m.cardFrontInput.SetValue("Fe")
	m = press(t, m, "enter")
	m.cardBackInput.SetValue("iron")
	m = press(t, m, "enter")
	assert.False(t, m.cardAdding)
	assert.Equal(t, "Flashcard added", m.status)
	require.NotNil(t, m.deck)
	assert.Equal(t, 1, m.deck.Len())
	assert.Equal(t, "Fe", m.deck.Face())
}

func TestNotesSearch(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()
	for _, in := range []app.NoteInput{{Title: "Optics", Body: "Snell's law"}, {Title: "Algebra", Body: "Groups"}} {
		_, err := a.SaveNote(ctx, in)
		require.NoError(t, err)
	}
	m := loggedIn(t, a)

	m = press(t, m, "s")
	require.Equal(t, screenNotes, m.screen)
	assert.True(t, a.ActivityOpen())
	require.Len(t, m.noteList, 2)
	assert.Equal(t, "Algebra", m.noteList[0].Title)
	assert.Equal(t, "Groups", m.currentNote.Body)

	m = press(t, m, "down")
	assert.Equal(t, "Optics", m.currentNote.Title)

	m = press(t, m, "opt")
	require.Len(t, m.noteList, 1)
	assert.Equal(t, "Snell's law", m.currentNote.Body)

	m = press(t, m, "zzz")
	assert.Empty(t, m.noteList)
	assert.Empty(t, m.currentNote.ID)

	m = press(t, m, "esc")
	assert.Equal(t, screenCalendar, m.screen)
	assert.False(t, a.ActivityOpen())
	assert.Contains(t, m.status, records.SessionTypeNotes)
}

func TestLeavingActivityClosesBeforeNextKey(t *testing.T) {
	a, _ := newTestApp(t)
	m := loggedIn(t, a)
	m = press(t, m, "f")
	require.True(t, a.ActivityOpen())

	// Leave flashcards and open notes before any pending command runs.
	next, pending := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)
	assert.False(t, a.ActivityOpen())
	assert.Contains(t, m.status, "Flashcards session not recorded")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = next.(model)
	assert.Equal(t, screenNotes, m.screen)
	assert.True(t, a.ActivityOpen())

	// The calendar reload queued by esc must not end the notes session.
	m = run(t, m, pending)
	assert.True(t, a.ActivityOpen())

	m = press(t, m, "esc")
	assert.False(t, a.ActivityOpen())
	assert.Contains(t, m.status, records.SessionTypeNotes)
}

func TestQuitClosesActivity(t *testing.T) {
	a, _ := newTestApp(t)
	m := loggedIn(t, a)
	m = press(t, m, "s", "ctrl+c")
	assert.True(t, m.quitting)
	assert.False(t, a.ActivityOpen())
	assert.Contains(t, m.View(), "Closing EduQuest")
}

func TestMarqueeText(t *testing.T) {
	m := model{}
	assert.Equal(t, "short", m.marqueeText("short", 10))
	assert.Equal(t, "long t", m.marqueeText("long title", 6))
	m.marqueeOffset = 5
	assert.Equal(t, "title ", m.marqueeText("long title", 6))
	assert.Equal(t, "abcd..", truncate("abcdefgh", 6))
}
