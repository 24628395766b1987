package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrEmptySessionType = errors.New("session type is required")
	ErrInvalidInterval  = errors.New("session ends before it starts")
	ErrDurationMismatch = errors.New("duration does not match start and end")
	ErrSessionNotFound  = errors.New("study session not found")
)

const (
	createSessionStatement = `
	INSERT INTO study_sessions (type, start_time, end_time, duration_seconds)
	VALUES (?, ?, ?, ?)
	`

	totalStudySecondsStatement = `
	SELECT COALESCE(SUM(duration_seconds), 0)
	FROM study_sessions
	`

	listSessionsStatement = `
	SELECT id, type, start_time, end_time, duration_seconds
	FROM study_sessions
	ORDER BY start_time DESC, id DESC
	`

	totalsByTypeStatement = `
	SELECT type, COALESCE(SUM(duration_seconds), 0) AS seconds, COUNT(*) AS sessions
	FROM study_sessions
	GROUP BY type
	ORDER BY type ASC
	`

	deleteSessionStatement = `
	DELETE FROM study_sessions
	WHERE id = ?
	`
)

// SessionDuration is the whole number of seconds between start and end.
func SessionDuration(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Second)
}

// RecordSession appends a study session. Sessions of MinSessionSeconds or
// less are dropped without touching the database, before the duration is
// checked against the interval; the bool reports whether a row was written.
func RecordSession(ctx context.Context, db sqlx.ExtContext, sessionType string, start, end time.Time, durationSeconds int64) (bool, error) {
	sessionType = strings.TrimSpace(sessionType)
	if sessionType == "" {
		return false, ErrEmptySessionType
	}
	if end.Before(start) {
		return false, ErrInvalidInterval
	}
	if durationSeconds <= MinSessionSeconds {
		return false, nil
	}
	if want := SessionDuration(start, end); want != durationSeconds {
		return false, fmt.Errorf("%w: got %d, want %d", ErrDurationMismatch, durationSeconds, want)
	}

	_, err := db.ExecContext(ctx, createSessionStatement,
		sessionType,
		start.Format(TimestampLayout),
		end.Format(TimestampLayout),
		durationSeconds,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert study session: %w", err)
	}
	return true, nil
}

// TotalStudySeconds sums the duration of every recorded session.
func TotalStudySeconds(ctx context.Context, db sqlx.ExtContext) (int64, error) {
	var total int64
	if err := sqlx.GetContext(ctx, db, &total, totalStudySecondsStatement); err != nil {
		return 0, fmt.Errorf("failed to sum study sessions: %w", err)
	}
	return total, nil
}

// ListSessions returns all sessions, newest first.
func ListSessions(ctx context.Context, db sqlx.ExtContext) ([]StudySession, error) {
	var rows []sessionRow
	if err := sqlx.SelectContext(ctx, db, &rows, listSessionsStatement); err != nil {
		return nil, fmt.Errorf("failed to list study sessions: %w", err)
	}

	sessions := make([]StudySession, 0, len(rows))
	for _, r := range rows {
		s, err := r.toSession()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func StudyTotalsByType(ctx context.Context, db sqlx.ExtContext) ([]TypeTotal, error) {
	totals := []TypeTotal{}
	if err := sqlx.SelectContext(ctx, db, &totals, totalsByTypeStatement); err != nil {
		return nil, fmt.Errorf("failed to total study sessions: %w", err)
	}
	return totals, nil
}

func DeleteSession(ctx context.Context, db sqlx.ExtContext, id int64) error {
	res, err := db.ExecContext(ctx, deleteSessionStatement, id)
	if err != nil {
		return fmt.Errorf("failed to delete study session %d: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ParseTimestamp reads a stored session timestamp as local time. Rows written
// by the original app carry microseconds; rows written here may not.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid session timestamp %q: %w", value, err)
	}
	return t, nil
}

func (r sessionRow) toSession() (StudySession, error) {
	start, err := ParseTimestamp(r.StartTime)
	if err != nil {
		return StudySession{}, err
	}
	end, err := ParseTimestamp(r.EndTime)
	if err != nil {
		return StudySession{}, err
	}
	return StudySession{
		ID:              r.ID,
		Type:            r.Type,
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: r.DurationSeconds,
	}, nil
}
