package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	eduquest "github.com/unowned-ai/eduquest/pkg"
	"github.com/unowned-ai/eduquest/pkg/app"
)

// ToolNames lists every tool RegisterTools adds, in registration order.
var ToolNames = []string{
	"ping",
	"add_event", "list_events", "delete_event", "upcoming_events",
	"add_flashcard", "list_flashcards",
	"study_summary",
	"search_notes", "get_note", "save_note",
}

type EduQuestMCPServer struct {
	mcpServer *server.MCPServer
	app       *app.App
}

// NewEduQuestMCPServer initializes the app's storage and builds an MCP
// server with every tool registered.
func NewEduQuestMCPServer(ctx context.Context, a *app.App) (*EduQuestMCPServer, error) {
	if err := a.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	s := server.NewMCPServer(
		"EduQuest MCP Server",
		eduquest.Version,
		server.WithLogging(),
		server.WithRecovery(),
	)
	RegisterTools(s, a)

	return &EduQuestMCPServer{mcpServer: s, app: a}, nil
}

// RegisterTools adds all study tools to s.
func RegisterTools(s *server.MCPServer, a *app.App) {
	RegisterPingTool(s)
	RegisterAddEventTool(s, a)
	RegisterListEventsTool(s, a)
	RegisterDeleteEventTool(s, a)
	RegisterUpcomingEventsTool(s, a)
	RegisterAddFlashcardTool(s, a)
	RegisterListFlashcardsTool(s, a)
	RegisterStudySummaryTool(s, a)
	RegisterSearchNotesTool(s, a)
	RegisterGetNoteTool(s, a)
	RegisterSaveNoteTool(s, a)
}

// Start runs the stdio event loop until stdin closes.
func (s *EduQuestMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPRawServer exposes the raw mcp-go server.
func (s *EduQuestMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}
