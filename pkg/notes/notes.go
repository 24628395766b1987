// Package notes stores free-form study notes and indexes them for search.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrEmptyNote    = errors.New("title or body cannot be empty")
	ErrInvalidID    = errors.New("invalid note id")
	ErrTitleNewline = errors.New("title must be a single line")
)

// blankLine separates a note's title from its body on disk.
const blankLine = "\n\n"

// Note is a titled body of text. ID is assigned on first save and never
// changes; Title is display metadata only.
type Note struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body,omitempty" yaml:"body,omitempty"`
}

// Store is a place notes live. Put with an empty ID creates a note.
type Store interface {
	List(ctx context.Context) ([]Note, error)
	Get(ctx context.Context, id string) (Note, error)
	Put(ctx context.Context, note Note) (Note, error)
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh identifier like "note_1741600000_1b4e28ba".
func NewID(now time.Time) string {
	return fmt.Sprintf("note_%d_%s", now.Unix(), uuid.NewString()[:8])
}

// Parse reads stored content: the first line is the title and the rest,
// trimmed, is the body.
func Parse(id, content string) Note {
	title, body, _ := strings.Cut(content, "\n")
	return Note{
		ID:    id,
		Title: strings.TrimSpace(title),
		Body:  strings.TrimSpace(body),
	}
}

// Format renders a note the way Parse reads it back.
func Format(n Note) string {
	return strings.TrimSpace(n.Title) + blankLine + strings.TrimSpace(n.Body)
}

func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}
