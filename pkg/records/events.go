package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrEmptyTitle    = errors.New("event title is required")
	ErrInvalidDate   = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidTime   = errors.New("time must be formatted as HH:MM")
	ErrInvalidRange  = errors.New("range start is after range end")
)

// Untimed events sort before timed ones; ties break on id.
const (
	createEventStatement = `
	INSERT INTO events (title, date, time)
	VALUES (?, ?, ?)
	`

	getEventStatement = `
	SELECT id, title, date, COALESCE(time, '') AS time
	FROM events
	WHERE id = ?
	`

	listEventsByDateStatement = `
	SELECT id, title, date, COALESCE(time, '') AS time
	FROM events
	WHERE date = ?
	ORDER BY COALESCE(time, '') ASC, id ASC
	`

	listEventsInRangeStatement = `
	SELECT id, title, date, COALESCE(time, '') AS time
	FROM events
	WHERE date BETWEEN ? AND ?
	ORDER BY date ASC, COALESCE(time, '') ASC, id ASC
	`

	updateEventStatement = `
	UPDATE events
	SET title = ?, date = ?, time = ?
	WHERE id = ?
	`

	deleteEventStatement = `
	DELETE FROM events
	WHERE id = ?
	`
)

// NormalizeDate validates a YYYY-MM-DD date and returns it in canonical form.
func NormalizeDate(date string) (string, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t.Format(DateLayout), nil
}

// NormalizeTime validates an optional HH:MM time. Blank input means no time.
func NormalizeTime(clock string) (string, error) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return "", nil
	}
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	return t.Format(TimeLayout), nil
}

func validateEvent(title, date, clock string) (string, string, sql.NullString, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", sql.NullString{}, ErrEmptyTitle
	}
	d, err := NormalizeDate(date)
	if err != nil {
		return "", "", sql.NullString{}, err
	}
	c, err := NormalizeTime(clock)
	if err != nil {
		return "", "", sql.NullString{}, err
	}
	return title, d, sql.NullString{String: c, Valid: c != ""}, nil
}

// AddEvent stores a new event and returns it with its assigned id.
// An empty clock stores the event without a time of day.
func AddEvent(ctx context.Context, db sqlx.ExtContext, title, date, clock string) (Event, error) {
	title, date, t, err := validateEvent(title, date, clock)
	if err != nil {
		return Event{}, err
	}

	res, err := db.ExecContext(ctx, createEventStatement, title, date, t)
	if err != nil {
		return Event{}, fmt.Errorf("failed to insert event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Event{}, fmt.Errorf("failed to read event id: %w", err)
	}

	return Event{ID: id, Title: title, Date: date, Time: t.String}, nil
}

func GetEvent(ctx context.Context, db sqlx.ExtContext, id int64) (Event, error) {
	var ev Event
	if err := sqlx.GetContext(ctx, db, &ev, getEventStatement, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		return Event{}, err
	}
	return ev, nil
}

// ListEventsByDate returns every event on date, flashcards included.
// Callers that only want calendar entries filter them out themselves.
func ListEventsByDate(ctx context.Context, db sqlx.ExtContext, date string) ([]Event, error) {
	d, err := NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	events := []Event{}
	if err := sqlx.SelectContext(ctx, db, &events, listEventsByDateStatement, d); err != nil {
		return nil, fmt.Errorf("failed to list events for %s: %w", d, err)
	}
	return events, nil
}

// ListEventsInRange returns events dated between start and end inclusive.
func ListEventsInRange(ctx context.Context, db sqlx.ExtContext, start, end string) ([]Event, error) {
	s, err := NormalizeDate(start)
	if err != nil {
		return nil, err
	}
	e, err := NormalizeDate(end)
	if err != nil {
		return nil, err
	}
	if s > e {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, s, e)
	}

	events := []Event{}
	if err := sqlx.SelectContext(ctx, db, &events, listEventsInRangeStatement, s, e); err != nil {
		return nil, fmt.Errorf("failed to list events between %s and %s: %w", s, e, err)
	}
	return events, nil
}

func UpdateEvent(ctx context.Context, db sqlx.ExtContext, id int64, title, date, clock string) (Event, error) {
	title, date, t, err := validateEvent(title, date, clock)
	if err != nil {
		return Event{}, err
	}

	res, err := db.ExecContext(ctx, updateEventStatement, title, date, t, id)
	if err != nil {
		return Event{}, fmt.Errorf("failed to update event %d: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return Event{}, err
	}
	if rowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return Event{ID: id, Title: title, Date: date, Time: t.String}, nil
}

// DeleteEvent removes the event with id. Deleting an id that no longer
// exists is not an error; the returned bool tells whether a row went away.
func DeleteEvent(ctx context.Context, db sqlx.ExtContext, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, deleteEventStatement, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
