package records

import "time"

const (
	// DateLayout is the on-disk form of Event.Date.
	DateLayout = "2006-01-02"
	// TimeLayout is the on-disk form of Event.Time.
	TimeLayout = "15:04"
	// TimestampLayout is the on-disk form of session start/end times (local, no zone).
	TimestampLayout = "2006-01-02T15:04:05.999999"

	// MinSessionSeconds is the longest session that is still discarded.
	MinSessionSeconds int64 = 5
)

// Session types written by the trackable views.
const (
	SessionTypeNotes      = "Notes"
	SessionTypeFlashcards = "Flashcards"
)

// Event is a dated calendar item. Time is empty when the event has no time of day.
type Event struct {
	ID    int64  `db:"id" json:"id" yaml:"id"`
	Title string `db:"title" json:"title" yaml:"title"`
	Date  string `db:"date" json:"date" yaml:"date"`
	Time  string `db:"time" json:"time,omitempty" yaml:"time,omitempty"`
}

// HasTime reports whether the event is pinned to a time of day.
func (e Event) HasTime() bool {
	return e.Time != ""
}

// StudySession is a recorded interval spent in a trackable activity.
type StudySession struct {
	ID              int64     `json:"id" yaml:"id"`
	Type            string    `json:"type" yaml:"type"`
	StartTime       time.Time `json:"start_time" yaml:"start_time"`
	EndTime         time.Time `json:"end_time" yaml:"end_time"`
	DurationSeconds int64     `json:"duration_seconds" yaml:"duration_seconds"`
}

// TypeTotal aggregates sessions of one type.
type TypeTotal struct {
	Type     string `db:"type" json:"type" yaml:"type"`
	Seconds  int64  `db:"seconds" json:"seconds" yaml:"seconds"`
	Sessions int64  `db:"sessions" json:"sessions" yaml:"sessions"`
}

type sessionRow struct {
	ID              int64  `db:"id"`
	Type            string `db:"type"`
	StartTime       string `db:"start_time"`
	EndTime         string `db:"end_time"`
	DurationSeconds int64  `db:"duration_seconds"`
}
