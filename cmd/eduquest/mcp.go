package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/eduquest/pkg/mcp"
	"github.com/unowned-ai/eduquest/pkg/tui"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the EduQuest MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes events,
flashcards, study history and notes as MCP tools via STDIO.

Example:

  eduquest mcp --db ~/eduquest.db --notes ~/eduquest_notes 2> server.log`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewEduQuestMCPServer(cmd.Context(), eduApp)
		if err != nil {
			return fmt.Errorf("failed to create EduQuest MCP server: %w", err)
		}

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		stderr := cmd.ErrOrStderr()
		c := eduApp.Config()
		fmt.Fprintf(stderr, "EduQuest MCP server started. DB: %s, notes: %s\n", c.Database.Path, c.Notes.Directory)
		fmt.Fprintf(stderr, "Available tools: %s\n", strings.Join(mcp.ToolNames, ", "))
		fmt.Fprintln(stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal interface",
	Long:  `Opens the full-screen interface: log in, browse the month calendar, review flashcards and search notes.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		return tui.ShowTUI(ctx, a)
	},
}
