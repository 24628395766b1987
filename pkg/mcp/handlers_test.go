package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unowned-ai/eduquest/pkg/app"
	"github.com/unowned-ai/eduquest/pkg/calendar"
	"github.com/unowned-ai/eduquest/pkg/config"
	"github.com/unowned-ai/eduquest/pkg/flashcards"
	"github.com/unowned-ai/eduquest/pkg/notes"
	"github.com/unowned-ai/eduquest/pkg/records"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "eduquest.db")},
		Notes:    config.NotesConfig{Directory: filepath.Join(dir, "notes")},
	}
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	a, err := app.New(cfg, app.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	require.NoError(t, a.Init(context.Background()))
	return a
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var out T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	return out
}

func TestPing(t *testing.T) {
	res := call(t, pingHandler, nil)
	assert.Equal(t, "pong_eduquest", resultText(t, res))
}

func TestEventTools(t *testing.T) {
	a := newTestApp(t)

	added := decode[[]records.Event](t, call(t, addEventHandler(a), map[string]any{
		"title": "Exam", "date": "2025-03-10", "time": "09:00",
	}))
	require.Len(t, added, 1)

	res := call(t, addEventHandler(a), map[string]any{"title": "", "date": "2025-03-10"})
	assert.True(t, res.IsError)

	listed := decode[[]records.Event](t, call(t, listEventsHandler(a), map[string]any{"date": "2025-03-10"}))
	assert.Equal(t, added, listed)

	upcoming := decode[[]calendar.Notice](t, call(t, upcomingEventsHandler(a), nil))
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Today", upcoming[0].When)

	res = call(t, deleteEventHandler(a), map[string]any{"id": float64(added[0].ID)})
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "deleted successfully")

	res = call(t, deleteEventHandler(a), map[string]any{"id": float64(added[0].ID)})
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "not found")

	res = call(t, deleteEventHandler(a), map[string]any{"id": 1.5})
	assert.True(t, res.IsError)
	res = call(t, deleteEventHandler(a), map[string]any{})
	assert.True(t, res.IsError)

	listed = decode[[]records.Event](t, call(t, listEventsHandler(a), map[string]any{}))
	assert.Empty(t, listed)
}

func TestFlashcardTools(t *testing.T) {
	a := newTestApp(t)

	card := decode[flashcards.Flashcard](t, call(t, addFlashcardHandler(a), map[string]any{"front": "H2O", "back": "water"}))
	assert.Equal(t, "H2O", card.Front)

	cards := decode[[]flashcards.Flashcard](t, call(t, listFlashcardsHandler(a), nil))
	require.Len(t, cards, 1)
	assert.Equal(t, card.ID, cards[0].ID)

	events := decode[[]records.Event](t, call(t, listEventsHandler(a), map[string]any{"date": "2025-03-10"}))
	assert.Empty(t, events)
}

func TestStudySummaryTool(t *testing.T) {
	a := newTestApp(t)
	h := decode[app.History](t, call(t, studySummaryHandler(a), nil))
	assert.Zero(t, h.TotalSeconds)
	assert.Equal(t, "0s", h.Total)
}

func TestNoteTools(t *testing.T) {
	a := newTestApp(t)

	saved := decode[notes.Note](t, call(t, saveNoteHandler(a), map[string]any{"title": "Optics", "body": "Snell's law"}))
	require.NotEmpty(t, saved.ID)

	found := decode[[]notes.Note](t, call(t, searchNotesHandler(a), map[string]any{"query": "opt"}))
	require.Len(t, found, 1)
	assert.Empty(t, found[0].Body)

	got := decode[notes.Note](t, call(t, getNoteHandler(a), map[string]any{"id": saved.ID}))
	assert.Equal(t, "Snell's law", got.Body)

	res := call(t, getNoteHandler(a), map[string]any{"id": "note_0_missing"})
	assert.True(t, res.IsError)
	res = call(t, saveNoteHandler(a), map[string]any{})
	assert.True(t, res.IsError)
}

func TestRegisterTools(t *testing.T) {
	s := server.NewMCPServer("test", "0.0.0")
	RegisterTools(s, newTestApp(t))

	msg := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var resp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))

	var names []string
	for _, tool := range resp.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, ToolNames, names)
}
