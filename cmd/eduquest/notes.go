package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/unowned-ai/eduquest/pkg/app"
	"github.com/unowned-ai/eduquest/pkg/notes"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage plain-text notes",
	Long:  `Notes are text files in the notes directory: the title on the first line, a blank line, then the body.`,
}

func printNoteList(w io.Writer, list []notes.Note) {
	if len(list) == 0 {
		faintColor.Fprintln(w, "No notes found.")
		return
	}
	for _, n := range list {
		fmt.Fprintf(w, "%s  %s\n", faintColor.Sprint(n.ID), n.Title)
	}
}

// titlesOnly drops bodies from list output.
func titlesOnly(list []notes.Note) []notes.Note {
	out := make([]notes.Note, len(list))
	for i, n := range list {
		out[i] = notes.Note{ID: n.ID, Title: n.Title}
	}
	return out
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes by title",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		list, err := a.SearchNotes(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		list = titlesOnly(list)
		return render(cmd, list, func(w io.Writer) { printNoteList(w, list) })
	},
}

var noteSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find notes whose title contains the query, ignoring case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		list, err := a.SearchNotes(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to search notes: %w", err)
		}
		list = titlesOnly(list)
		return render(cmd, list, func(w io.Writer) { printNoteList(w, list) })
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		n, err := a.Notes().Get(ctx, args[0])
		if err != nil {
			return err
		}
		return render(cmd, n, func(w io.Writer) {
			headerColor.Fprintln(w, n.Title)
			if n.Body != "" {
				fmt.Fprintln(w)
				fmt.Fprintln(w, n.Body)
			}
		})
	},
}

var noteSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create a note, or overwrite one with --id",
	Long: `Saves a note. Without --id a new note is created. The body comes from
--body or, with --file, from a file ("-" reads stdin).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := app.NoteInput{}
		in.ID, _ = cmd.Flags().GetString("id")
		in.Title, _ = cmd.Flags().GetString("title")
		in.Body, _ = cmd.Flags().GetString("body")
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			body, err := readInput(cmd, file)
			if err != nil {
				return err
			}
			in.Body = body
		}

		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		saved, err := a.SaveNote(ctx, in)
		if err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}
		return render(cmd, saved, func(w io.Writer) {
			okColor.Fprintf(w, "Note saved: %s\n", saved.ID)
		})
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		if err := a.Notes().Delete(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		okColor.Fprintf(cmd.OutOrStdout(), "Note %s deleted.\n", args[0])
		return nil
	},
}

var noteRenderCmd = &cobra.Command{
	Use:   "render [id]",
	Short: "Render a note as HTML, reading its body as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		n, err := a.Notes().Get(ctx, args[0])
		if err != nil {
			return err
		}
		html, err := notes.RenderHTML(n)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		return writeOutput(cmd, out, []byte(html))
	},
}

// readInput reads a whole file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// writeOutput writes data to stdout, or atomically replaces path.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

func initNotesCmd() {
	noteSaveCmd.Flags().String("id", "", "ID of the note to overwrite")
	noteSaveCmd.Flags().StringP("title", "t", "", "Note title")
	noteSaveCmd.Flags().StringP("body", "b", "", "Note body")
	noteSaveCmd.Flags().StringP("file", "f", "", `Read the body from a file, "-" for stdin`)
	noteSaveCmd.MarkFlagsMutuallyExclusive("body", "file")

	noteRenderCmd.Flags().String("out", "", "Write the HTML to this file instead of stdout")

	notesCmd.AddCommand(noteListCmd, noteSearchCmd, noteShowCmd, noteSaveCmd, noteDeleteCmd, noteRenderCmd)
}
