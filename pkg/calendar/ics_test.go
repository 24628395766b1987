package calendar

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/eduquest/pkg/records"
)

// icsDoc joins lines with CRLF the way calendar files are written.
func icsDoc(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

func TestExportImportICS_RoundTrip(t *testing.T) {
	events := []records.Event{
		{ID: 1, Title: "Lab", Date: "2025-04-02", Time: "14:30"},
		{ID: 2, Title: "Reading week", Date: "2025-04-03"},
		{ID: 3, Title: "H2O — water", Date: "2025-04-02"},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportICS(events, &buf))
	out := buf.String()
	assert.Contains(t, out, "SUMMARY:Lab")
	assert.NotContains(t, out, "H2O")

	imported, err := ImportICS(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, []records.Event{
		{Title: "Lab", Date: "2025-04-02", Time: "14:30"},
		{Title: "Reading week", Date: "2025-04-03"},
	}, imported)
}

func TestImportICS_ExpandsRecurrence(t *testing.T) {
	doc := icsDoc(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:tutorial@test",
		"SUMMARY:Tutorial",
		"DTSTART:20250303T100000",
		"RRULE:FREQ=WEEKLY;COUNT=3",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	imported, err := ImportICS(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, imported, 3)
	for i, want := range []string{"2025-03-03", "2025-03-10", "2025-03-17"} {
		assert.Equal(t, want, imported[i].Date)
		assert.Equal(t, "10:00", imported[i].Time)
		assert.Equal(t, "Tutorial", imported[i].Title)
	}
}

func TestImportICS_SkipsIncompleteEntries(t *testing.T) {
	doc := icsDoc(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:no-summary@test",
		"DTSTART;VALUE=DATE:20250301",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:no-start@test",
		"SUMMARY:Floating idea",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:ok@test",
		"SUMMARY:Exam",
		"DTSTART;VALUE=DATE:20250310",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	imported, err := ImportICS(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []records.Event{{Title: "Exam", Date: "2025-03-10"}}, imported)
}

func TestImportICS_EmptyCalendar(t *testing.T) {
	doc := icsDoc(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"END:VCALENDAR",
	)
	_, err := ImportICS(context.Background(), strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrEmptyCalendar)
}

func TestParseICSTime(t *testing.T) {
	day, allDay, err := parseICSTime("20250310")
	require.NoError(t, err)
	assert.True(t, allDay)
	assert.Equal(t, "2025-03-10", day.Format(records.DateLayout))

	floating, allDay, err := parseICSTime("20250310T091500")
	require.NoError(t, err)
	assert.False(t, allDay)
	assert.Equal(t, "09:15", floating.Format(records.TimeLayout))

	utc, allDay, err := parseICSTime("20250310T120000Z")
	require.NoError(t, err)
	assert.False(t, allDay)
	local := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC).In(time.Local)
	assert.Equal(t, local.Format("2006-01-02 15:04"), utc.Format("2006-01-02 15:04"))

	_, _, err = parseICSTime("")
	assert.Error(t, err)
	_, _, err = parseICSTime("not-a-date")
	assert.Error(t, err)
}
