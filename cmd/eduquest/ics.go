package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var icsCmd = &cobra.Command{
	Use:   "ics",
	Short: "Exchange events with other calendars as iCalendar (.ics)",
}

var icsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export calendar events as an .ics document",
	Long: `Writes the calendar events between --start and --end (default: all) as
iCalendar. Flashcards are left out. Use --out to write a file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		out, _ := cmd.Flags().GetString("out")

		var buf bytes.Buffer
		n, err := a.ExportICS(ctx, &buf, start, end)
		if err != nil {
			return err
		}
		if err := writeOutput(cmd, out, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d event(s).\n", n)
		return nil
	},
}

var icsImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: `Import the events of an .ics file ("-" for stdin)`,
	Long: `Adds every VEVENT of an iCalendar file as an event. Recurring events are
expanded for one year. Entries without a summary or start are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()
			r = f
		}

		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		added, err := a.ImportICS(ctx, r)
		if err != nil {
			return fmt.Errorf("failed to import calendar: %w", err)
		}
		return render(cmd, added, func(w io.Writer) {
			okColor.Fprintf(w, "Imported %d event(s):\n", len(added))
			printEvents(w, added)
		})
	},
}

func initICSCmd() {
	icsExportCmd.Flags().String("start", "", "First date as YYYY-MM-DD")
	icsExportCmd.Flags().String("end", "", "Last date as YYYY-MM-DD")
	icsExportCmd.Flags().String("out", "", "Write to this file instead of stdout")

	icsCmd.AddCommand(icsExportCmd, icsImportCmd)
}
