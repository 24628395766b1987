package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/unowned-ai/eduquest/pkg/records"
	"github.com/unowned-ai/eduquest/pkg/tracker"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show total study time and every recorded session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		h, err := a.History(ctx)
		if err != nil {
			return fmt.Errorf("failed to load study history: %w", err)
		}
		return render(cmd, h, func(w io.Writer) {
			headerColor.Fprintf(w, "Total study time: %s\n", h.Total)
			for _, t := range h.ByType {
				fmt.Fprintf(w, "  %-12s %s (%d sessions)\n", t.Type, tracker.FormatDuration(t.Seconds), t.Sessions)
			}
			if len(h.Sessions) == 0 {
				faintColor.Fprintln(w, "No study sessions recorded yet.")
				return
			}
			fmt.Fprintln(w)
			for _, s := range h.Sessions {
				fmt.Fprintf(w, "%s %-12s %s  %s\n",
					faintColor.Sprintf("#%-5d", s.ID), s.Type,
					s.StartTime.Format("2006-01-02 15:04"), tracker.FormatDuration(s.DurationSeconds))
			}
		})
	},
}

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Time a notes study session",
	Long: `Starts the clock for a Notes study session and stops it when you press
Enter. Sessions of five seconds or less are not recorded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		kind, _ := cmd.Flags().GetString("type")
		if err := a.OpenActivity(kind); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		headerColor.Fprintf(w, "%s session started at %s\n", kind, a.Now().Format("15:04:05"))

		line := liner.NewLiner()
		_, promptErr := line.Prompt("Press Enter when you are done > ")
		line.Close()
		// Ctrl+C and a closed stdin still end the session normally.
		if errors.Is(promptErr, liner.ErrPromptAborted) || errors.Is(promptErr, io.EOF) {
			promptErr = nil
		}
		if promptErr != nil {
			promptErr = fmt.Errorf("reading input: %w", promptErr)
		}

		summary, err := a.CloseActivity(ctx)
		if err != nil {
			return errors.Join(promptErr, err)
		}
		okColor.Fprintln(w, summary.Message())
		return promptErr
	},
}

func initStudyCmd() {
	studyCmd.Flags().String("type", records.SessionTypeNotes, "Session type to record")
}
