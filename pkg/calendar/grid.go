// Package calendar lays out month grids and attaches calendar events to them.
package calendar

import (
	"time"

	"github.com/unowned-ai/eduquest/pkg/records"
)

const (
	// Rows is the number of weeks a grid always shows.
	Rows = 6
	// Columns is the number of days per week; column 0 is Sunday.
	Columns = 7
	// CellCount is Rows*Columns.
	CellCount = Rows * Columns
)

// Weekdays are the column headers, Sunday first.
var Weekdays = [Columns]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Cell is one day of a month grid.
type Cell struct {
	Date    time.Time       `json:"-" yaml:"-"`
	Day     string          `json:"date" yaml:"date"`
	InMonth bool            `json:"in_month" yaml:"in_month"`
	IsToday bool            `json:"is_today,omitempty" yaml:"is_today,omitempty"`
	Events  []records.Event `json:"events,omitempty" yaml:"events,omitempty"`
}

// Grid is a Sunday-first six-week view of Year/Month.
type Grid struct {
	Year  int                 `json:"year" yaml:"year"`
	Month time.Month          `json:"month" yaml:"month"`
	Cells [Rows][Columns]Cell `json:"cells" yaml:"cells"`
}

// FirstOfMonth normalizes any date to midnight on the 1st of its month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DateOnly drops the clock and zone from t.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthGrid returns the 42 days shown for year/month. The first cell is the
// Sunday on or before the 1st; neighbouring months fill the rest.
func MonthGrid(year int, month time.Month) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Normalize out-of-range months such as 13 or 0.
	year, month = first.Year(), first.Month()

	start := first.AddDate(0, 0, -int(first.Weekday()))

	g := Grid{Year: year, Month: month}
	for i := 0; i < CellCount; i++ {
		day := start.AddDate(0, 0, i)
		g.Cells[i/Columns][i%Columns] = Cell{
			Date:    day,
			Day:     day.Format(records.DateLayout),
			InMonth: day.Month() == month && day.Year() == year,
		}
	}
	return g
}

// MarkToday flags the cell matching today, if it is on the grid.
func (g *Grid) MarkToday(today time.Time) {
	key := DateOnly(today).Format(records.DateLayout)
	for r := range g.Cells {
		for c := range g.Cells[r] {
			g.Cells[r][c].IsToday = g.Cells[r][c].Day == key
		}
	}
}

// At returns the cell at row/column and whether those coordinates exist.
func (g *Grid) At(row, col int) (Cell, bool) {
	if row < 0 || row >= Rows || col < 0 || col >= Columns {
		return Cell{}, false
	}
	return g.Cells[row][col], true
}

// Flat lists the cells in reading order.
func (g *Grid) Flat() []Cell {
	out := make([]Cell, 0, CellCount)
	for r := range g.Cells {
		out = append(out, g.Cells[r][:]...)
	}
	return out
}

// ShiftMonth moves from the month of current by delta months, one month at
// a time: forward jumps 32 days past the 1st, backward steps to the day
// before the 1st, and both snap to the 1st of where they land. A single
// 32*delta jump would skip February when going back from March.
func ShiftMonth(current time.Time, delta int) time.Time {
	first := FirstOfMonth(current)
	for ; delta > 0; delta-- {
		first = FirstOfMonth(first.AddDate(0, 0, 32))
	}
	for ; delta < 0; delta++ {
		first = FirstOfMonth(first.AddDate(0, 0, -1))
	}
	return first
}
