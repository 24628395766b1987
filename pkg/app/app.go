// Package app is the facade front-ends use: it opens the database for each
// operation, wires the calendar, flashcard, tracker and note packages
// together and validates user input.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/unowned-ai/eduquest/pkg/calendar"
	"github.com/unowned-ai/eduquest/pkg/config"
	"github.com/unowned-ai/eduquest/pkg/db"
	"github.com/unowned-ai/eduquest/pkg/flashcards"
	"github.com/unowned-ai/eduquest/pkg/logging"
	"github.com/unowned-ai/eduquest/pkg/notes"
	"github.com/unowned-ai/eduquest/pkg/records"
	"github.com/unowned-ai/eduquest/pkg/tracker"
	"github.com/unowned-ai/eduquest/pkg/utils"
)

const (
	firstDate = "0001-01-01"
	lastDate  = "9999-12-31"

	// defaultRepeatSpan bounds a repeat rule that has no Until.
	defaultRepeatSpan = 1 // years
)

type Option func(*App)

// WithClock replaces time.Now for everything the app dates.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

type App struct {
	cfg      config.Config
	now      func() time.Time
	notes    *notes.FileStore
	tracker  *tracker.Tracker
	validate *inputValidator
}

func New(cfg config.Config, opts ...Option) (*App, error) {
	v, err := newInputValidator()
	if err != nil {
		return nil, err
	}
	a := &App{
		cfg:      cfg,
		now:      time.Now,
		notes:    notes.NewFileStore(cfg.Notes.Directory),
		validate: v,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.tracker = tracker.New(sessionSink{app: a}, tracker.WithClock(a.now))
	return a, nil
}

// Now is the app clock.
func (a *App) Now() time.Time { return a.now() }

// Config is the configuration the app runs with. After Init the database
// path is absolute.
func (a *App) Config() config.Config { return a.cfg }

// Init creates the database and the notes directory if needed and brings
// the schema up to date.
func (a *App) Init(ctx context.Context) error {
	path, err := utils.ResolveAndEnsureDBPath(a.cfg.Database.Path)
	if err != nil {
		return err
	}
	a.cfg.Database.Path = path

	if err := a.withDB(ctx, func(conn *sqlx.DB) error {
		return db.UpgradeDB(ctx, conn, path, db.TargetSchemaVersion)
	}); err != nil {
		return err
	}
	return a.notes.Init()
}

// withDB opens a connection for the duration of fn.
func (a *App) withDB(ctx context.Context, fn func(conn *sqlx.DB) error) error {
	conn, err := db.OpenDBConnection(a.cfg.Database.Path, a.cfg.Database.WAL, a.cfg.Database.Synchronous)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			logging.FromContext(ctx).Warn("failed to close database", "error", cerr)
		}
	}()
	return fn(conn)
}

// withTx runs fn in a transaction, rolling back when it fails.
func (a *App) withTx(ctx context.Context, fn func(store *records.Store) error) error {
	return a.withDB(ctx, func(conn *sqlx.DB) error {
		tx, err := conn.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		if err := fn(records.NewStore(tx)); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit()
	})
}

// AddEvent stores an event, or one event per occurrence when in.Repeat is
// set.
func (a *App) AddEvent(ctx context.Context, in EventInput) ([]records.Event, error) {
	if err := a.validate.check(&in); err != nil {
		return nil, err
	}

	dates := []string{in.Date}
	if in.Repeat != "" {
		start, _ := time.Parse(records.DateLayout, in.Date)
		until := start.AddDate(defaultRepeatSpan, 0, 0)
		if in.Until != "" {
			until, _ = time.Parse(records.DateLayout, in.Until)
		}
		occurrences, err := calendar.ExpandRecurrence(in.Repeat, start, until)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		dates = dates[:0]
		for _, at := range occurrences {
			dates = append(dates, at.Format(records.DateLayout))
		}
	}

	var added []records.Event
	err := a.withTx(ctx, func(store *records.Store) error {
		for _, date := range dates {
			ev, err := store.AddEvent(ctx, in.Title, date, in.Time)
			if err != nil {
				return err
			}
			added = append(added, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("events added", "title", in.Title, "count", len(added))
	return added, nil
}

func (a *App) GetEvent(ctx context.Context, id int64) (records.Event, error) {
	var ev records.Event
	err := a.withDB(ctx, func(conn *sqlx.DB) error {
		var err error
		ev, err = records.GetEvent(ctx, conn, id)
		return err
	})
	return ev, err
}

func (a *App) UpdateEvent(ctx context.Context, id int64, in EventInput) (records.Event, error) {
	if err := a.validate.check(&in); err != nil {
		return records.Event{}, err
	}
	var ev records.Event
	err := a.withDB(ctx, func(conn *sqlx.DB) error {
		var err error
		ev, err = records.UpdateEvent(ctx, conn, id, in.Title, in.Date, in.Time)
		return err
	})
	return ev, err
}

// DeleteEvent removes an event. It reports false when the id did not exist.
func (a *App) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := a.withDB(ctx, func(conn *sqlx.DB) error {
		var err error
		deleted, err = records.DeleteEvent(ctx, conn, id)
		return err
	})
	return deleted, err
}

// DayEvents lists the calendar events of a YYYY-MM-DD date.
func (a *App) DayEvents(ctx context.Context, date string) ([]records.Event, error) {
	day, err := time.Parse(records.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", records.ErrInvalidDate, date)
	}
	var events []records.Event
	err = a.withDB(ctx, func(conn *sqlx.DB) error {
		var err error
		events, err = calendar.NewEngine(records.NewStore(conn)).DayEvents(ctx, day)
		return err
	})
	return events, err
}

// EventsInRange lists calendar events between two dates, both inclusive.
// Empty bounds are open.
func (a *App) EventsInRange(ctx context.Context, start, end string) ([]records.Event, error) {
	if start == "" {
		start = firstDate
	}
	if end == "" {
		end = lastDate
	}
	var events []records.Event
	err := a.withDB(ctx, func(conn *sqlx.DB) error {
		all, err := records.ListEventsInRange(ctx, conn, start, end)
		if err != nil {
			return err
		}
		events = flashcards.CalendarOnly(all)
		return nil
	})
	return events, err
}

// MonthView builds the populated grid for the month of month.
func (a *App) MonthView(ctx context.Context, month time.Time) (calendar.Grid, error) {
	var g calendar.Grid
	err := a.withDB(ctx, func(conn *sqlx.DB) error {
		var err error
		g, err = calendar.NewEngine(records.NewStore(conn)).Month(ctx, month.Year(), month.Month(), a.now())
		return err
	})
	return g, err
}

// Upcoming lists calendar events for today and tomorrow.
func (a *App) Upcoming(ctx context.Context) ([]calendar.Notice, error) {
	var notices []calendar.Notice
	err := a.withDB(ctx, func(conn *sqlx.DB) error {
		var err error
		notices, err = calendar.NewEngine(records.NewStore(conn)).Upcoming(ctx, a.now())
		return err
	})
	return notices, err
}

// AddFlashcard stores a card for today.
func (a *App) AddFlashcard(ctx context.Context, in FlashcardInput) (flashcards.Flashcard, error) {
	if err := a.validate.check(&in); err != nil {
		return flashcards.Flashcard{}, err
	}
	var card flashcards.Flashcard
	err := a.withDB(ctx, func(conn *sqlx.DB) error {
		var err error
		card, err = flashcards.Add(ctx, records.NewStore(conn), in.Front, in.Back, a.now())
		return err
	})
	return card, err
}

// TodayCards lists today's flashcards, oldest first.
func (a *App) TodayCards(ctx context.Context) ([]flashcards.Flashcard, error) {
	var cards []flashcards.Flashcard
	err := a.withDB(ctx, func(conn *sqlx.DB) error {
		var err error
		cards, err = flashcards.Today(ctx, records.NewStore(conn), a.now())
		return err
	})
	return cards, err
}

// TodayDeck is a review deck over today's flashcards.
func (a *App) TodayDeck(ctx context.Context) (*flashcards.Deck, error) {
	cards, err := a.TodayCards(ctx)
	if err != nil {
		return nil, err
	}
	return flashcards.NewDeck(cards), nil
}

// OpenActivity starts timing a study activity such as records.SessionTypeNotes.
func (a *App) OpenActivity(kind string) error {
	return a.tracker.Open(kind)
}

// CloseActivity stops the running activity and records it when long enough.
func (a *App) CloseActivity(ctx context.Context) (tracker.Summary, error) {
	return a.tracker.Close(ctx)
}

// ActivityOpen reports whether an activity is being timed.
func (a *App) ActivityOpen() bool {
	return a.tracker.Active()
}

// History is the study history view.
type History struct {
	TotalSeconds int64                  `json:"total_seconds" yaml:"total_seconds"`
	Total        string                 `json:"total" yaml:"total"`
	ByType       []records.TypeTotal    `json:"by_type" yaml:"by_type"`
	Sessions     []records.StudySession `json:"sessions" yaml:"sessions"`
}

func (a *App) History(ctx context.Context) (History, error) {
	var h History
	err := a.withDB(ctx, func(conn *sqlx.DB) error {
		var err error
		if h.TotalSeconds, err = records.TotalStudySeconds(ctx, conn); err != nil {
			return err
		}
		if h.ByType, err = records.StudyTotalsByType(ctx, conn); err != nil {
			return err
		}
		h.Sessions, err = records.ListSessions(ctx, conn)
		return err
	})
	if err != nil {
		return History{}, err
	}
	h.Total = tracker.FormatDuration(h.TotalSeconds)
	return h, nil
}

// ExportICS writes the calendar events between start and end as iCalendar.
func (a *App) ExportICS(ctx context.Context, w io.Writer, start, end string) (int, error) {
	events, err := a.EventsInRange(ctx, start, end)
	if err != nil {
		return 0, err
	}
	if err := calendar.ExportICS(events, w); err != nil {
		return 0, fmt.Errorf("failed to export calendar: %w", err)
	}
	return len(events), nil
}

// ImportICS stores every event of an iCalendar document in one
// transaction.
func (a *App) ImportICS(ctx context.Context, r io.Reader) ([]records.Event, error) {
	parsed, err := calendar.ImportICS(ctx, r)
	if err != nil {
		return nil, err
	}
	var added []records.Event
	err = a.withTx(ctx, func(store *records.Store) error {
		for _, ev := range parsed {
			saved, err := store.AddEvent(ctx, ev.Title, ev.Date, ev.Time)
			if err != nil {
				return fmt.Errorf("failed to import %q: %w", ev.Title, err)
			}
			added = append(added, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("calendar imported", "events", len(added))
	return added, nil
}

// Notes is the note store.
func (a *App) Notes() notes.Store {
	return a.notes
}

// SaveNote validates and stores a note. An empty ID creates a new note.
func (a *App) SaveNote(ctx context.Context, in NoteInput) (notes.Note, error) {
	if err := a.validate.check(&in); err != nil {
		return notes.Note{}, err
	}
	return a.notes.Put(ctx, notes.Note{ID: in.ID, Title: in.Title, Body: in.Body})
}

// SearchNotes filters notes by title, ignoring case.
func (a *App) SearchNotes(ctx context.Context, query string) ([]notes.Note, error) {
	idx, err := notes.LoadIndex(ctx, a.notes)
	if err != nil {
		return nil, err
	}
	return idx.Search(query), nil
}

// sessionSink records tracker sessions through a short-lived connection.
type sessionSink struct {
	app *App
}

func (s sessionSink) RecordSession(ctx context.Context, sessionType string, start, end time.Time, durationSeconds int64) (bool, error) {
	var recorded bool
	err := s.app.withDB(ctx, func(conn *sqlx.DB) error {
		var err error
		recorded, err = records.RecordSession(ctx, conn, sessionType, start, end, durationSeconds)
		return err
	})
	return recorded, err
}
