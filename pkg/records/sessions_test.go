package records

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSession_Threshold(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	for _, elapsed := range []time.Duration{
		0,
		4 * time.Second,
		5 * time.Second,
		5*time.Second + 999*time.Millisecond,
		6 * time.Second,
		6*time.Second + 400*time.Millisecond,
		42 * time.Minute,
	} {
		t.Run(elapsed.String(), func(t *testing.T) {
			testDB := setupTestDB(t)
			ctx := context.Background()
			end := start.Add(elapsed)
			seconds := SessionDuration(start, end)

			written, err := RecordSession(ctx, testDB, SessionTypeNotes, start, end, seconds)
			require.NoError(t, err)

			sessions, err := ListSessions(ctx, testDB)
			require.NoError(t, err)

			if seconds > MinSessionSeconds {
				assert.True(t, written)
				require.Len(t, sessions, 1)
				assert.Equal(t, seconds, sessions[0].DurationSeconds)
				assert.Equal(t, int64(elapsed/time.Second), sessions[0].DurationSeconds)
			} else {
				assert.False(t, written)
				assert.Empty(t, sessions)
			}
		})
	}
}

func TestRecordSession_RejectsInconsistentInput(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	_, err := RecordSession(ctx, testDB, SessionTypeNotes, start, start.Add(-time.Minute), 60)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = RecordSession(ctx, testDB, SessionTypeNotes, start, start.Add(time.Minute), 90)
	assert.ErrorIs(t, err, ErrDurationMismatch)

	_, err = RecordSession(ctx, testDB, "  ", start, start.Add(time.Minute), 60)
	assert.ErrorIs(t, err, ErrEmptySessionType)

	// A short session is dropped even when its duration is off.
	written, err := RecordSession(ctx, testDB, SessionTypeNotes, start, start.Add(time.Minute), 3)
	require.NoError(t, err)
	assert.False(t, written)

	sessions, err := ListSessions(ctx, testDB)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestTotalStudySeconds(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	total, err := TotalStudySeconds(ctx, testDB)
	require.NoError(t, err)
	assert.Zero(t, total)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	_, err = RecordSession(ctx, testDB, SessionTypeNotes, start, start.Add(time.Hour), 3600)
	require.NoError(t, err)
	later := start.Add(2 * time.Hour)
	_, err = RecordSession(ctx, testDB, SessionTypeFlashcards, later, later.Add(30*time.Minute), 1800)
	require.NoError(t, err)

	total, err = TotalStudySeconds(ctx, testDB)
	require.NoError(t, err)
	assert.Equal(t, int64(5400), total)

	totals, err := StudyTotalsByType(ctx, testDB)
	require.NoError(t, err)
	assert.Equal(t, []TypeTotal{
		{Type: SessionTypeFlashcards, Seconds: 1800, Sessions: 1},
		{Type: SessionTypeNotes, Seconds: 3600, Sessions: 1},
	}, totals)
}

func TestListSessions_NewestFirst(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	for i, offset := range []time.Duration{time.Hour, 0, 3 * time.Hour} {
		start := base.Add(offset)
		_, err := RecordSession(ctx, testDB, fmt.Sprintf("type-%d", i), start, start.Add(10*time.Second), 10)
		require.NoError(t, err)
	}

	sessions, err := ListSessions(ctx, testDB)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, []string{"type-2", "type-0", "type-1"}, []string{sessions[0].Type, sessions[1].Type, sessions[2].Type})
	assert.True(t, sessions[0].StartTime.Equal(base.Add(3*time.Hour)))
	assert.True(t, sessions[0].EndTime.Equal(base.Add(3*time.Hour+10*time.Second)))
}

func TestListSessions_ReadsLegacyTimestamps(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	_, err := testDB.Exec(`INSERT INTO study_sessions (type, start_time, end_time, duration_seconds)
		VALUES ('Notes', '2024-12-01T18:00:00.123456', '2024-12-01T18:01:40.654321', 100)`)
	require.NoError(t, err)

	sessions, err := ListSessions(ctx, testDB)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 123456000, sessions[0].StartTime.Nanosecond())
	assert.Equal(t, int64(100), sessions[0].DurationSeconds)
}

func TestDeleteSession(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	_, err := RecordSession(ctx, testDB, SessionTypeNotes, start, start.Add(time.Minute), 60)
	require.NoError(t, err)
	sessions, err := ListSessions(ctx, testDB)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	require.NoError(t, DeleteSession(ctx, testDB, sessions[0].ID))
	assert.ErrorIs(t, DeleteSession(ctx, testDB, sessions[0].ID), ErrSessionNotFound)
}
