package db

const (
	// SchemaV1 matches the layout written by the original desktop app:
	// events(id, title, date, time) and study_sessions, plus the version table.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS eduquest_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    time TEXT
);

CREATE TABLE IF NOT EXISTS study_sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    duration_seconds INTEGER NOT NULL
);
`

	// SchemaV2 adds the lookup indexes used by the calendar and history views.
	SchemaV2 = `
CREATE INDEX IF NOT EXISTS idx_events_date ON events (date, time, id);
CREATE INDEX IF NOT EXISTS idx_study_sessions_start ON study_sessions (start_time);
`

	// addEventTimeColumn upgrades events tables created before time-of-day existed.
	addEventTimeColumn = `ALTER TABLE events ADD COLUMN time TEXT`
)
