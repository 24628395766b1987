package notes

import (
	"context"
	"sort"
	"strings"
)

// Index is an in-memory view of all notes keyed by ID. Notes sharing a
// title stay distinct.
type Index struct {
	byID  map[string]Note
	order []string
}

func NewIndex(notes []Note) *Index {
	idx := &Index{byID: make(map[string]Note, len(notes))}
	for _, n := range notes {
		idx.byID[n.ID] = n
	}
	idx.order = make([]string, 0, len(idx.byID))
	for id := range idx.byID {
		idx.order = append(idx.order, id)
	}
	sort.Slice(idx.order, func(i, j int) bool {
		a, b := idx.byID[idx.order[i]], idx.byID[idx.order[j]]
		at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if at != bt {
			return at < bt
		}
		return a.ID < b.ID
	})
	return idx
}

// LoadIndex lists the store and indexes the result.
func LoadIndex(ctx context.Context, store Store) (*Index, error) {
	notes, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewIndex(notes), nil
}

func (idx *Index) Len() int { return len(idx.order) }

func (idx *Index) Get(id string) (Note, bool) {
	n, ok := idx.byID[id]
	return n, ok
}

// All returns every note ordered by title, then ID.
func (idx *Index) All() []Note {
	return idx.Search("")
}

// Search returns notes whose title contains query, ignoring case. An empty
// query matches everything.
func (idx *Index) Search(query string) []Note {
	query = strings.ToLower(strings.TrimSpace(query))
	out := []Note{}
	for _, id := range idx.order {
		n := idx.byID[id]
		if strings.Contains(strings.ToLower(n.Title), query) {
			out = append(out, n)
		}
	}
	return out
}
