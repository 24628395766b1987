package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/unowned-ai/eduquest/pkg/db"
	"github.com/unowned-ai/eduquest/pkg/records"
	"github.com/unowned-ai/eduquest/pkg/tracker/mocks"
)

// steppedClock returns each time in order, repeating the last one.
func steppedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m 0s"},
		{125, "2m 5s"},
		{3600, "1h 0s"},
		{3605, "1h 5s"},
		{5400, "1h 30m 0s"},
		{90061, "25h 1m 1s"},
		{-3, "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.seconds))
		})
	}
}

func TestTracker_RecordsLongSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockSessionRecorder(ctrl)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	end := start.Add(65*time.Second + 700*time.Millisecond)

	recorder.EXPECT().
		RecordSession(gomock.Any(), records.SessionTypeNotes, start, end, int64(65)).
		Return(true, nil)

	tr := New(recorder, WithClock(steppedClock(start, end)))
	require.NoError(t, tr.Open(records.SessionTypeNotes))
	assert.True(t, tr.Active())
	assert.Equal(t, records.SessionTypeNotes, tr.Kind())
	assert.Equal(t, start, tr.Started())

	summary, err := tr.Close(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.Recorded)
	assert.Equal(t, int64(65), summary.Seconds)
	assert.Equal(t, "1m 5s", summary.Duration())
	assert.Equal(t, "Notes session recorded: 1m 5s", summary.Message())
	assert.False(t, tr.Active())
}

func TestTracker_ShortSessionSkipsRecorder(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockSessionRecorder(ctrl)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	tr := New(recorder, WithClock(steppedClock(start, start.Add(5*time.Second+900*time.Millisecond))))

	require.NoError(t, tr.Open(records.SessionTypeFlashcards))
	summary, err := tr.Close(context.Background())
	require.NoError(t, err)
	assert.False(t, summary.Recorded)
	assert.Equal(t, int64(5), summary.Seconds)
	assert.Contains(t, summary.Message(), "not recorded")
}

func TestTracker_RecorderFailureStillCloses(t *testing.T) {
	ctrl := gomock.NewController(t)
	recorder := mocks.NewMockSessionRecorder(ctrl)
	boom := errors.New("database is locked")

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	recorder.EXPECT().RecordSession(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, boom)

	tr := New(recorder, WithClock(steppedClock(start, start.Add(time.Minute))))
	require.NoError(t, tr.Open(records.SessionTypeNotes))

	_, err := tr.Close(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, tr.Active())
}

func TestTracker_StateErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := New(mocks.NewMockSessionRecorder(ctrl))

	_, err := tr.Close(context.Background())
	assert.ErrorIs(t, err, ErrNotActive)

	assert.ErrorIs(t, tr.Open(" "), ErrEmptyType)

	require.NoError(t, tr.Open(records.SessionTypeNotes))
	assert.ErrorIs(t, tr.Open(records.SessionTypeFlashcards), ErrAlreadyActive)
	assert.Equal(t, records.SessionTypeNotes, tr.Kind())
}

func TestTracker_ClockGoingBackwardsCountsAsZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	tr := New(mocks.NewMockSessionRecorder(ctrl), WithClock(steppedClock(start, start.Add(-time.Hour))))

	require.NoError(t, tr.Open(records.SessionTypeNotes))
	summary, err := tr.Close(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Seconds)
	assert.Equal(t, start, summary.End)
}

func TestTracker_WithRecordsStore(t *testing.T) {
	conn, err := db.OpenDBConnection(":memory:", false, "")
	require.NoError(t, err)
	defer conn.Close()
	ctx := context.Background()
	require.NoError(t, db.InitializeSchema(ctx, conn, db.TargetSchemaVersion))

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	tr := New(records.NewStore(conn), WithClock(steppedClock(start, start.Add(3600*time.Second))))
	require.NoError(t, tr.Open(records.SessionTypeNotes))
	summary, err := tr.Close(ctx)
	require.NoError(t, err)
	assert.True(t, summary.Recorded)

	total, err := records.TotalStudySeconds(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), total)
	assert.Equal(t, "1h 0s", FormatDuration(total))
}
