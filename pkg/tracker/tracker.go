// Package tracker times study activities and records the ones worth keeping.
package tracker

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination=mocks/mock_session_recorder.go -package=mocks github.com/unowned-ai/eduquest/pkg/tracker SessionRecorder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unowned-ai/eduquest/pkg/logging"
	"github.com/unowned-ai/eduquest/pkg/records"
)

var (
	ErrAlreadyActive = errors.New("an activity is already being tracked")
	ErrNotActive     = errors.New("no activity is being tracked")
	ErrEmptyType     = errors.New("activity type is required")
)

// SessionRecorder persists a finished session. It returns false when the
// session was too short to keep.
type SessionRecorder interface {
	RecordSession(ctx context.Context, sessionType string, start, end time.Time, durationSeconds int64) (bool, error)
}

// Summary describes a closed activity.
type Summary struct {
	Type     string    `json:"type" yaml:"type"`
	Start    time.Time `json:"start" yaml:"start"`
	End      time.Time `json:"end" yaml:"end"`
	Seconds  int64     `json:"seconds" yaml:"seconds"`
	Recorded bool      `json:"recorded" yaml:"recorded"`
}

// Duration is the human readable length of the session.
func (s Summary) Duration() string {
	return FormatDuration(s.Seconds)
}

// Message is the status line shown when the activity view closes.
func (s Summary) Message() string {
	if s.Recorded {
		return fmt.Sprintf("%s session recorded: %s", s.Type, s.Duration())
	}
	return fmt.Sprintf("%s session not recorded (%s is too short)", s.Type, s.Duration())
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// Tracker is Idle until Open and goes back to Idle on Close.
type Tracker struct {
	recorder SessionRecorder
	now      func() time.Time

	active bool
	kind   string
	start  time.Time
}

func New(recorder SessionRecorder, opts ...Option) *Tracker {
	t := &Tracker{recorder: recorder, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Active() bool { return t.active }

// Kind is the type of the running activity, empty when idle.
func (t *Tracker) Kind() string { return t.kind }

// Started is when the running activity was opened.
func (t *Tracker) Started() time.Time { return t.start }

// Open starts timing an activity of the given type.
func (t *Tracker) Open(kind string) error {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return ErrEmptyType
	}
	if t.active {
		return fmt.Errorf("%w: %s", ErrAlreadyActive, t.kind)
	}
	t.active = true
	t.kind = kind
	t.start = t.now()
	return nil
}

// Close stops the running activity and hands it to the recorder when it
// lasted longer than records.MinSessionSeconds. The tracker is idle
// afterwards even if recording failed.
func (t *Tracker) Close(ctx context.Context) (Summary, error) {
	if !t.active {
		return Summary{}, ErrNotActive
	}

	end := t.now()
	if end.Before(t.start) {
		end = t.start
	}
	summary := Summary{
		Type:    t.kind,
		Start:   t.start,
		End:     end,
		Seconds: records.SessionDuration(t.start, end),
	}
	t.active = false
	t.kind = ""
	t.start = time.Time{}

	if summary.Seconds <= records.MinSessionSeconds {
		logging.FromContext(ctx).Debug("discarding short study session", "type", summary.Type, "seconds", summary.Seconds)
		return summary, nil
	}

	recorded, err := t.recorder.RecordSession(ctx, summary.Type, summary.Start, summary.End, summary.Seconds)
	if err != nil {
		return summary, fmt.Errorf("failed to record %s session: %w", summary.Type, err)
	}
	summary.Recorded = recorded
	logging.FromContext(ctx).Info("study session closed", "type", summary.Type, "seconds", summary.Seconds, "recorded", recorded)
	return summary, nil
}

// FormatDuration renders seconds as "1h 30m 0s", dropping zero hours and
// minutes but always keeping seconds.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	parts := make([]string, 0, 3)
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", secs))
	return strings.Join(parts, " ")
}
