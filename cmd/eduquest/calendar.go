package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/eduquest/pkg/calendar"
)

const monthLayout = "2006-01"

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month grid with its events",
	Long: `Prints the six-week grid of a month, Sunday first. Days with events are
marked with '*' and listed below the grid; today is highlighted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		month := calendar.FirstOfMonth(a.Now())
		if v, _ := cmd.Flags().GetString("month"); v != "" {
			month, err = time.Parse(monthLayout, v)
			if err != nil {
				return fmt.Errorf("invalid --month %q: use YYYY-MM", v)
			}
		}
		if shift, _ := cmd.Flags().GetInt("shift"); shift != 0 {
			month = calendar.ShiftMonth(month, shift)
		}

		grid, err := a.MonthView(ctx, month)
		if err != nil {
			return err
		}
		return render(cmd, grid, func(w io.Writer) {
			printGrid(w, grid)
		})
	},
}

func printGrid(w io.Writer, g calendar.Grid) {
	headerColor.Fprintf(w, "%s %d\n", g.Month, g.Year)
	for _, name := range calendar.Weekdays {
		faintColor.Fprintf(w, "%-4s", name[:2])
	}
	fmt.Fprintln(w)

	for r := range g.Cells {
		for _, cell := range g.Cells[r] {
			if !cell.InMonth {
				fmt.Fprint(w, "    ")
				continue
			}
			mark := " "
			if len(cell.Events) > 0 {
				mark = "*"
			}
			day := fmt.Sprintf("%2d%s", cell.Date.Day(), mark)
			if cell.IsToday {
				okColor.Fprint(w, day)
			} else {
				fmt.Fprint(w, day)
			}
			fmt.Fprint(w, " ")
		}
		fmt.Fprintln(w)
	}

	for _, cell := range g.Flat() {
		if len(cell.Events) == 0 {
			continue
		}
		fmt.Fprintln(w)
		headerColor.Fprintln(w, cell.Date.Format("Mon, Jan 2"))
		printEvents(w, cell.Events)
	}
}

func initCalendarCmd() {
	calendarCmd.Flags().StringP("month", "m", "", "Month to show as YYYY-MM (default current month)")
	calendarCmd.Flags().Int("shift", 0, "Move this many months forward (negative for back)")
}
