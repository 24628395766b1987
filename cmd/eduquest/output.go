package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/unowned-ai/eduquest/pkg/records"
)

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	okColor     = color.New(color.FgGreen)
	errColor    = color.New(color.FgRed)
	faintColor  = color.New(color.Faint)
)

// render writes v as json or yaml when asked to, otherwise it calls text.
func render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	switch cfg.Output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

func clockLabel(ev records.Event) string {
	if ev.HasTime() {
		return ev.Time
	}
	return "--:--"
}

func printEvents(w io.Writer, events []records.Event) {
	if len(events) == 0 {
		faintColor.Fprintln(w, "No events found.")
		return
	}
	for _, ev := range events {
		fmt.Fprintf(w, "%s %s %s  %s\n", faintColor.Sprintf("#%-5d", ev.ID), ev.Date, clockLabel(ev), ev.Title)
	}
}
