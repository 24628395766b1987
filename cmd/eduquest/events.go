package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/eduquest/pkg/app"
	"github.com/unowned-ai/eduquest/pkg/calendar"
	"github.com/unowned-ai/eduquest/pkg/records"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage calendar events",
	Long:  `Add, list, edit and delete calendar events. Flashcards are stored alongside events but never listed here.`,
}

var eventAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an event",
	Long: `Adds an event on a date, optionally at a time of day. With --repeat the
event is added once per occurrence of an RFC 5545 rule, for example
--repeat "FREQ=WEEKLY;BYDAY=MO,WE" --until 2025-06-30.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		in := app.EventInput{}
		in.Title, _ = cmd.Flags().GetString("title")
		in.Date, _ = cmd.Flags().GetString("date")
		in.Time, _ = cmd.Flags().GetString("time")
		in.Repeat, _ = cmd.Flags().GetString("repeat")
		in.Until, _ = cmd.Flags().GetString("until")
		if in.Date == "" {
			in.Date = a.Now().Format(records.DateLayout)
		}

		added, err := a.AddEvent(ctx, in)
		if err != nil {
			return fmt.Errorf("failed to add event: %w", err)
		}
		return render(cmd, added, func(w io.Writer) {
			okColor.Fprintf(w, "Added %d event(s):\n", len(added))
			printEvents(w, added)
		})
	},
}

var eventListCmd = &cobra.Command{
	Use:   "list [date]",
	Short: "List the events of a day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		date := a.Now().Format(records.DateLayout)
		if len(args) == 1 {
			date = args[0]
		}
		events, err := a.DayEvents(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		if events == nil {
			events = []records.Event{}
		}
		return render(cmd, events, func(w io.Writer) {
			headerColor.Fprintf(w, "Events on %s\n", date)
			printEvents(w, events)
		})
	},
}

var eventRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "List events between two dates, both inclusive",
	Long:  `Lists events between --start and --end. A missing bound is open, so no flags lists every event.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		events, err := a.EventsInRange(ctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		return render(cmd, events, func(w io.Writer) {
			printEvents(w, events)
		})
	},
}

var eventEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change the title, date or time of an event",
	Long:  `Updates an event. Only the provided fields change; --time "" removes the time of day.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEventID(args[0])
		if err != nil {
			return err
		}
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		current, err := a.GetEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get event %d: %w", id, err)
		}

		in := app.EventInput{Title: current.Title, Date: current.Date, Time: current.Time}
		changed := false
		if cmd.Flags().Changed("title") {
			in.Title, _ = cmd.Flags().GetString("title")
			changed = true
		}
		if cmd.Flags().Changed("date") {
			in.Date, _ = cmd.Flags().GetString("date")
			changed = true
		}
		if cmd.Flags().Changed("time") {
			in.Time, _ = cmd.Flags().GetString("time")
			changed = true
		}
		if !changed {
			fmt.Fprintln(cmd.OutOrStdout(), "No update fields provided. Use --title, --date or --time.")
			return nil
		}

		updated, err := a.UpdateEvent(ctx, id, in)
		if err != nil {
			return fmt.Errorf("failed to update event %d: %w", id, err)
		}
		return render(cmd, updated, func(w io.Writer) {
			okColor.Fprintln(w, "Event updated:")
			printEvents(w, []records.Event{updated})
		})
	},
}

var eventDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an event or flashcard by its ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEventID(args[0])
		if err != nil {
			return err
		}
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		deleted, err := a.DeleteEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		if !deleted {
			fmt.Fprintf(cmd.OutOrStdout(), "Event with ID %d not found.\n", id)
			return nil
		}
		okColor.Fprintf(cmd.OutOrStdout(), "Event with ID %d deleted successfully.\n", id)
		return nil
	},
}

var eventUpcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show events for today and tomorrow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		notices, err := a.Upcoming(ctx)
		if err != nil {
			return fmt.Errorf("failed to load upcoming events: %w", err)
		}
		return render(cmd, notices, func(w io.Writer) {
			printNotices(w, notices)
		})
	},
}

func printNotices(w io.Writer, notices []calendar.Notice) {
	if len(notices) == 0 {
		faintColor.Fprintln(w, "Nothing scheduled for today or tomorrow.")
		return
	}
	for _, n := range notices {
		fmt.Fprintln(w, n.Label())
	}
}

func parseEventID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid event ID %q: must be a positive number", arg)
	}
	return id, nil
}

func initEventsCmd() {
	eventAddCmd.Flags().StringP("title", "t", "", "Title of the event (required)")
	eventAddCmd.MarkFlagRequired("title")
	eventAddCmd.Flags().StringP("date", "d", "", "Date as YYYY-MM-DD (default today)")
	eventAddCmd.Flags().String("time", "", "Time of day as HH:MM")
	eventAddCmd.Flags().String("repeat", "", "RFC 5545 recurrence rule, e.g. FREQ=WEEKLY;COUNT=10")
	eventAddCmd.Flags().String("until", "", "Last date for --repeat as YYYY-MM-DD (default one year)")

	eventRangeCmd.Flags().String("start", "", "First date as YYYY-MM-DD")
	eventRangeCmd.Flags().String("end", "", "Last date as YYYY-MM-DD")

	eventEditCmd.Flags().StringP("title", "t", "", "New title")
	eventEditCmd.Flags().StringP("date", "d", "", "New date as YYYY-MM-DD")
	eventEditCmd.Flags().String("time", "", "New time as HH:MM, empty to clear")

	eventsCmd.AddCommand(eventAddCmd, eventListCmd, eventRangeCmd, eventEditCmd, eventDeleteCmd, eventUpcomingCmd)
}
