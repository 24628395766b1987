package flashcards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/eduquest/pkg/db"
	"github.com/unowned-ai/eduquest/pkg/records"
)

func setupStore(t *testing.T) *records.Store {
	t.Helper()
	conn, err := db.OpenDBConnection(":memory:", false, "")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.InitializeSchema(context.Background(), conn, db.TargetSchemaVersion))
	return records.NewStore(conn)
}

type failingLister struct{ err error }

func (f failingLister) ListEventsByDate(context.Context, string) ([]records.Event, error) {
	return nil, f.err
}

func TestSplit(t *testing.T) {
	tests := []struct {
		title     string
		wantFront string
		wantBack  string
		wantOK    bool
	}{
		{title: "2+2 — 4", wantFront: "2+2", wantBack: "4", wantOK: true},
		{title: "a — b — c", wantFront: "a", wantBack: "b — c", wantOK: true},
		{title: "Exam", wantFront: "Exam", wantOK: false},
		{title: "dash-without-spaces—x", wantFront: "dash-without-spaces—x", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			front, back, ok := Split(tt.title)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFront, front)
			assert.Equal(t, tt.wantBack, back)
		})
	}
}

func TestEncode(t *testing.T) {
	title, err := Encode("  capital of France ", " Paris ")
	require.NoError(t, err)
	assert.Equal(t, "capital of France — Paris", title)

	title, err = Encode("q", "first — second")
	require.NoError(t, err)
	front, back, ok := Split(title)
	assert.True(t, ok)
	assert.Equal(t, "q", front)
	assert.Equal(t, "first — second", back)

	_, err = Encode("", "x")
	assert.ErrorIs(t, err, ErrEmptyFace)
	_, err = Encode("x", "   ")
	assert.ErrorIs(t, err, ErrEmptyFace)
	_, err = Encode("a — b", "c")
	assert.ErrorIs(t, err, ErrSeparatorInFront)
	_, err = Encode("pick one —", "b")
	assert.ErrorIs(t, err, ErrSeparatorInFront)

	title, err = Encode("pick one", "— b")
	require.NoError(t, err)
	front, back, _ = Split(title)
	assert.Equal(t, "pick one", front)
	assert.Equal(t, "— b", back)
}

func TestDecode(t *testing.T) {
	item := Decode(records.Event{ID: 3, Title: "2+2 — 4", Date: "2025-03-10"})
	card, ok := item.(Flashcard)
	require.True(t, ok)
	assert.Equal(t, Flashcard{ID: 3, Front: "2+2", Back: "4", Date: "2025-03-10"}, card)
	assert.Equal(t, "2+2 — 4", card.Title())

	item = Decode(records.Event{ID: 4, Title: "Exam", Date: "2025-03-10", Time: "09:00"})
	ev, ok := item.(CalendarEvent)
	require.True(t, ok)
	assert.Equal(t, int64(4), ev.ItemID())
	assert.Equal(t, "09:00", ev.Time)
}

func TestCalendarOnly(t *testing.T) {
	events := []records.Event{
		{ID: 1, Title: "Exam"},
		{ID: 2, Title: "a — b"},
		{ID: 3, Title: "Lab"},
	}
	got := CalendarOnly(events)
	require.Len(t, got, 2)
	assert.Equal(t, "Exam", got[0].Title)
	assert.Equal(t, "Lab", got[1].Title)
}

func TestAddAndToday(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	today := time.Date(2025, 3, 10, 15, 4, 0, 0, time.Local)

	first, err := Add(ctx, store, "2+2", "4", today)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", first.Date)

	_, err = store.AddEvent(ctx, "Exam", "2025-03-10", "09:00")
	require.NoError(t, err)
	_, err = Add(ctx, store, "H2O", "water", today)
	require.NoError(t, err)
	_, err = Add(ctx, store, "yesterday", "old", today.AddDate(0, 0, -1))
	require.NoError(t, err)

	cards, err := Today(ctx, store, today)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, first, cards[0])
	assert.Equal(t, "H2O", cards[1].Front)
	assert.Equal(t, "water", cards[1].Back)
}

func TestToday_NoCards(t *testing.T) {
	store := setupStore(t)

	cards, err := Today(context.Background(), store, time.Now())
	require.NoError(t, err)
	assert.Empty(t, cards)

	deck := NewDeck(cards)
	assert.True(t, deck.Empty())
	assert.Equal(t, NothingToReview, deck.Face())
	assert.Equal(t, "0/0", deck.Position())
	_, err = deck.Current()
	assert.ErrorIs(t, err, ErrNoCards)
}

func TestForDate_PropagatesStorageErrors(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := ForDate(context.Background(), failingLister{err: boom}, "2025-03-10")
	assert.ErrorIs(t, err, boom)
}
