package records

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store binds the package functions to one connection so the calendar,
// flashcard and tracker packages can depend on small interfaces.
type Store struct {
	db sqlx.ExtContext
}

func NewStore(db sqlx.ExtContext) *Store {
	return &Store{db: db}
}

func (s *Store) AddEvent(ctx context.Context, title, date, clock string) (Event, error) {
	return AddEvent(ctx, s.db, title, date, clock)
}

func (s *Store) ListEventsByDate(ctx context.Context, date string) ([]Event, error) {
	return ListEventsByDate(ctx, s.db, date)
}

func (s *Store) ListEventsInRange(ctx context.Context, start, end string) ([]Event, error) {
	return ListEventsInRange(ctx, s.db, start, end)
}

func (s *Store) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	return DeleteEvent(ctx, s.db, id)
}

func (s *Store) RecordSession(ctx context.Context, sessionType string, start, end time.Time, durationSeconds int64) (bool, error) {
	return RecordSession(ctx, s.db, sessionType, start, end, durationSeconds)
}
