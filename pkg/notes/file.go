package notes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/unowned-ai/eduquest/pkg/logging"
)

const noteExt = ".txt"

// FileStore keeps one "<id>.txt" file per note in a directory.
type FileStore struct {
	dir string
	now func() time.Time
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

// Dir is the directory holding the note files.
func (s *FileStore) Dir() string { return s.dir }

// Init creates the notes directory if it is missing.
func (s *FileStore) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create notes directory '%s': %w", s.dir, err)
	}
	return nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+noteExt)
}

// List reads every note in the directory, ordered by ID. Files that vanish
// or cannot be read are skipped.
func (s *FileStore) List(ctx context.Context) ([]Note, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list notes in '%s': %w", s.dir, err)
	}

	logger := logging.FromContext(ctx)
	notes := make([]Note, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, noteExt) {
			continue
		}
		id := strings.TrimSuffix(name, noteExt)
		note, err := s.Get(ctx, id)
		if err != nil {
			logger.Debug("skipping unreadable note", "id", id, "error", err)
			continue
		}
		notes = append(notes, note)
	}

	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (s *FileStore) Get(_ context.Context, id string) (Note, error) {
	if !validID(id) {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	if err != nil {
		return Note{}, fmt.Errorf("failed to read note %s: %w", id, err)
	}

	note := Parse(id, string(data))
	if note.Title == "" && note.Body == "" {
		note.Title = id
	}
	return note, nil
}

// Put writes the note atomically. A note without an ID, or whose file is
// gone, is saved under a fresh ID; otherwise the existing file is
// overwritten.
func (s *FileStore) Put(ctx context.Context, note Note) (Note, error) {
	note.Title = strings.TrimSpace(note.Title)
	note.Body = strings.TrimSpace(note.Body)
	if note.Title == "" && note.Body == "" {
		return Note{}, ErrEmptyNote
	}
	if strings.ContainsAny(note.Title, "\r\n") {
		return Note{}, ErrTitleNewline
	}

	if note.ID != "" {
		if !validID(note.ID) {
			return Note{}, fmt.Errorf("%w: %q", ErrInvalidID, note.ID)
		}
		if _, err := os.Stat(s.path(note.ID)); errors.Is(err, fs.ErrNotExist) {
			logging.FromContext(ctx).Debug("note file is gone, saving as new note", "id", note.ID)
			note.ID = ""
		}
	}
	if note.ID == "" {
		note.ID = NewID(s.now())
	}

	if err := atomic.WriteFile(s.path(note.ID), bytes.NewReader([]byte(Format(note)))); err != nil {
		return Note{}, fmt.Errorf("failed to save note %s: %w", note.ID, err)
	}
	logging.FromContext(ctx).Info("note saved", "id", note.ID, "title", note.Title)
	return note, nil
}

// Delete removes the note. Deleting a missing note is not an error.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		logging.FromContext(ctx).Debug("note already deleted", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	return nil
}
