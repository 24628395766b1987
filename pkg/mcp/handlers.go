package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/eduquest/pkg/app"
	"github.com/unowned-ai/eduquest/pkg/notes"
	"github.com/unowned-ai/eduquest/pkg/records"
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the EduQuest MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_eduquest"), nil
}

// RegisterAddEventTool registers the add_event tool.
func RegisterAddEventTool(s *server.MCPServer, a *app.App) {
	tool := mcp.NewTool("add_event",
		mcp.WithDescription("Adds a calendar event. Optionally repeats it with an RFC 5545 rule."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Event title.")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date as YYYY-MM-DD.")),
		mcp.WithString("time", mcp.Description("Optional time of day as HH:MM.")),
		mcp.WithString("repeat", mcp.Description("Optional RRULE such as FREQ=WEEKLY;COUNT=4.")),
		mcp.WithString("until", mcp.Description("Optional last date for repeats, YYYY-MM-DD.")),
	)
	s.AddTool(tool, addEventHandler(a))
}

func addEventHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		events, err := a.AddEvent(ctx, app.EventInput{
			Title:  stringArg(request, "title"),
			Date:   stringArg(request, "date"),
			Time:   stringArg(request, "time"),
			Repeat: stringArg(request, "repeat"),
			Until:  stringArg(request, "until"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add event: %v", err)), nil
		}
		return jsonResult(events), nil
	}
}

// RegisterListEventsTool registers the list_events tool.
func RegisterListEventsTool(s *server.MCPServer, a *app.App) {
	tool := mcp.NewTool("list_events",
		mcp.WithDescription("Lists calendar events on a date, or between two dates. Flashcards are not included."),
		mcp.WithString("date", mcp.Description("Single date as YYYY-MM-DD.")),
		mcp.WithString("start", mcp.Description("Range start as YYYY-MM-DD, inclusive.")),
		mcp.WithString("end", mcp.Description("Range end as YYYY-MM-DD, inclusive.")),
	)
	s.AddTool(tool, listEventsHandler(a))
}

func listEventsHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var (
			events []records.Event
			err    error
		)
		if date := stringArg(request, "date"); date != "" {
			events, err = a.DayEvents(ctx, date)
		} else {
			events, err = a.EventsInRange(ctx, stringArg(request, "start"), stringArg(request, "end"))
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
		}
		if events == nil {
			events = []records.Event{}
		}
		return jsonResult(events), nil
	}
}

// RegisterDeleteEventTool registers the delete_event tool.
func RegisterDeleteEventTool(s *server.MCPServer, a *app.App) {
	tool := mcp.NewTool("delete_event",
		mcp.WithDescription("Deletes a calendar event or flashcard by id. Missing ids are not an error."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Event id.")),
	)
	s.AddTool(tool, deleteEventHandler(a))
}

func deleteEventHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := idArg(request, "id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		deleted, err := a.DeleteEvent(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete event %d: %v", id, err)), nil
		}
		if !deleted {
			return mcp.NewToolResultText(fmt.Sprintf("Event %d not found, nothing to delete.", id)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Event %d deleted successfully.", id)), nil
	}
}

// RegisterUpcomingEventsTool registers the upcoming_events tool.
func RegisterUpcomingEventsTool(s *server.MCPServer, a *app.App) {
	tool := mcp.NewTool("upcoming_events",
		mcp.WithDescription("Lists calendar events for today and tomorrow."),
	)
	s.AddTool(tool, upcomingEventsHandler(a))
}

func upcomingEventsHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		notices, err := a.Upcoming(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load upcoming events: %v", err)), nil
		}
		return jsonResult(notices), nil
	}
}

// RegisterAddFlashcardTool registers the add_flashcard tool.
func RegisterAddFlashcardTool(s *server.MCPServer, a *app.App) {
	tool := mcp.NewTool("add_flashcard",
		mcp.WithDescription("Adds a flashcard for today's review."),
		mcp.WithString("front", mcp.Required(), mcp.Description("Question side.")),
		mcp.WithString("back", mcp.Required(), mcp.Description("Answer side.")),
	)
	s.AddTool(tool, addFlashcardHandler(a))
}

func addFlashcardHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		card, err := a.AddFlashcard(ctx, app.FlashcardInput{
			Front: stringArg(request, "front"),
			Back:  stringArg(request, "back"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add flashcard: %v", err)), nil
		}
		return jsonResult(card), nil
	}
}

// RegisterListFlashcardsTool registers the list_flashcards tool.
func RegisterListFlashcardsTool(s *server.MCPServer, a *app.App) {
	tool := mcp.NewTool("list_flashcards",
		mcp.WithDescription("Lists today's flashcards, oldest first."),
	)
	s.AddTool(tool, listFlashcardsHandler(a))
}

func listFlashcardsHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cards, err := a.TodayCards(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list flashcards: %v", err)), nil
		}
		return jsonResult(cards), nil
	}
}

// RegisterStudySummaryTool registers the study_summary tool.
func RegisterStudySummaryTool(s *server.MCPServer, a *app.App) {
	tool := mcp.NewTool("study_summary",
		mcp.WithDescription("Returns total study time, totals per activity type and every recorded session."),
	)
	s.AddTool(tool, studySummaryHandler(a))
}

func studySummaryHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		h, err := a.History(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load study history: %v", err)), nil
		}
		return jsonResult(h), nil
	}
}

// RegisterSearchNotesTool registers the search_notes tool.
func RegisterSearchNotesTool(s *server.MCPServer, a *app.App) {
	tool := mcp.NewTool("search_notes",
		mcp.WithDescription("Finds notes whose title contains the query, ignoring case. An empty query lists all notes."),
		mcp.WithString("query", mcp.Description("Text to look for in note titles.")),
	)
	s.AddTool(tool, searchNotesHandler(a))
}

func searchNotesHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		found, err := a.SearchNotes(ctx, stringArg(request, "query"))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to search notes: %v", err)), nil
		}
		// Titles only; get_note returns bodies.
		for i := range found {
			found[i].Body = ""
		}
		return jsonResult(found), nil
	}
}

// RegisterGetNoteTool registers the get_note tool.
func RegisterGetNoteTool(s *server.MCPServer, a *app.App) {
	tool := mcp.NewTool("get_note",
		mcp.WithDescription("Retrieves a note with its body by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id as returned by search_notes.")),
	)
	s.AddTool(tool, getNoteHandler(a))
}

func getNoteHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := stringArg(request, "id")
		if id == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		note, err := a.Notes().Get(ctx, id)
		if errors.Is(err, notes.ErrNoteNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Note '%s' not found.", id)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read note '%s': %v", id, err)), nil
		}
		return jsonResult(note), nil
	}
}

// RegisterSaveNoteTool registers the save_note tool.
func RegisterSaveNoteTool(s *server.MCPServer, a *app.App) {
	tool := mcp.NewTool("save_note",
		mcp.WithDescription("Creates a note, or overwrites the note with the given id."),
		mcp.WithString("id", mcp.Description("Existing note id. Leave empty to create a new note.")),
		mcp.WithString("title", mcp.Description("Note title.")),
		mcp.WithString("body", mcp.Description("Note body.")),
	)
	s.AddTool(tool, saveNoteHandler(a))
}

func saveNoteHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		note, err := a.SaveNote(ctx, app.NoteInput{
			ID:    stringArg(request, "id"),
			Title: stringArg(request, "title"),
			Body:  stringArg(request, "body"),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to save note: %v", err)), nil
		}
		return jsonResult(note), nil
	}
}
