// Package flashcards decodes flashcards out of calendar events and keeps
// the review state of a day's deck.
//
// A flashcard is stored as an ordinary event whose title joins the two faces
// with Separator. Decode turns a stored event into the Item variant it
// represents so callers never split titles themselves.
package flashcards

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/unowned-ai/eduquest/pkg/records"
)

// Separator joins the front and back faces inside an event title.
const Separator = " — "

var (
	ErrEmptyFace        = errors.New("flashcard front and back are both required")
	ErrSeparatorInFront = errors.New("flashcard front must not contain the separator")
)

// Item is a decoded calendar row: either a CalendarEvent or a Flashcard.
type Item interface {
	ItemID() int64
	ItemDate() string
}

// CalendarEvent is a plain dated entry.
type CalendarEvent struct {
	records.Event
}

func (e CalendarEvent) ItemID() int64    { return e.ID }
func (e CalendarEvent) ItemDate() string { return e.Date }

// Flashcard is a front/back pair scheduled for review on Date.
type Flashcard struct {
	ID    int64  `json:"id" yaml:"id"`
	Front string `json:"front" yaml:"front"`
	Back  string `json:"back" yaml:"back"`
	Date  string `json:"date" yaml:"date"`
}

func (c Flashcard) ItemID() int64    { return c.ID }
func (c Flashcard) ItemDate() string { return c.Date }

// Title is the stored form of the card.
func (c Flashcard) Title() string {
	return c.Front + Separator + c.Back
}

// IsFlashcard reports whether title carries the flashcard encoding.
func IsFlashcard(title string) bool {
	return strings.Contains(title, Separator)
}

// Split cuts title at the first separator. Later separators stay in back.
func Split(title string) (front, back string, ok bool) {
	return strings.Cut(title, Separator)
}

// Encode validates both faces and joins them into an event title.
func Encode(front, back string) (string, error) {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" || back == "" {
		return "", ErrEmptyFace
	}
	title := front + Separator + back
	// A front ending in part of the separator can still form one at the join.
	if f, b, _ := Split(title); f != front || b != back {
		return "", ErrSeparatorInFront
	}
	return title, nil
}

// Decode classifies a stored event.
func Decode(ev records.Event) Item {
	front, back, ok := Split(ev.Title)
	if !ok {
		return CalendarEvent{Event: ev}
	}
	return Flashcard{ID: ev.ID, Front: front, Back: back, Date: ev.Date}
}

// CalendarOnly drops flashcard-encoded events, keeping order.
func CalendarOnly(events []records.Event) []records.Event {
	out := make([]records.Event, 0, len(events))
	for _, ev := range events {
		if !IsFlashcard(ev.Title) {
			out = append(out, ev)
		}
	}
	return out
}

// EventAdder is the storage capability needed to create cards.
type EventAdder interface {
	AddEvent(ctx context.Context, title, date, clock string) (records.Event, error)
}

// EventLister is the storage capability needed to read a day's cards.
type EventLister interface {
	ListEventsByDate(ctx context.Context, date string) ([]records.Event, error)
}

// Add stores a new card for the day of today, without a time of day.
func Add(ctx context.Context, store EventAdder, front, back string, today time.Time) (Flashcard, error) {
	title, err := Encode(front, back)
	if err != nil {
		return Flashcard{}, err
	}
	ev, err := store.AddEvent(ctx, title, today.Format(records.DateLayout), "")
	if err != nil {
		return Flashcard{}, fmt.Errorf("failed to add flashcard: %w", err)
	}
	card, _ := Decode(ev).(Flashcard)
	return card, nil
}

// ForDate returns the cards scheduled on date, oldest first.
func ForDate(ctx context.Context, store EventLister, date string) ([]Flashcard, error) {
	events, err := store.ListEventsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	cards := []Flashcard{}
	for _, ev := range events {
		if card, ok := Decode(ev).(Flashcard); ok {
			cards = append(cards, card)
		}
	}
	slices.SortStableFunc(cards, func(a, b Flashcard) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return cards, nil
}

// Today returns the cards scheduled for the day of now.
func Today(ctx context.Context, store EventLister, now time.Time) ([]Flashcard, error) {
	return ForDate(ctx, store, now.Format(records.DateLayout))
}
