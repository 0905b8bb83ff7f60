package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
)

// Ensure HighlightStore implements the interface.
var _ driven.HighlightStore = (*HighlightStore)(nil)

// HighlightStore is an in-memory implementation of driven.HighlightStore.
type HighlightStore struct {
	mu         sync.RWMutex
	highlights map[string]domain.Highlight
}

// NewHighlightStore creates a new in-memory highlight store.
func NewHighlightStore() *HighlightStore {
	return &HighlightStore{
		highlights: make(map[string]domain.Highlight),
	}
}

// Save stores or replaces a highlight.
func (s *HighlightStore) Save(_ context.Context, h domain.Highlight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlights[h.ID] = h
	return nil
}

// List returns highlights, newest first.
func (s *HighlightStore) List(_ context.Context, groupID string) ([]domain.Highlight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Highlight, 0, len(s.highlights))
	for _, h := range s.highlights {
		if groupID != "" && h.GroupID != groupID {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes a highlight.
func (s *HighlightStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.highlights[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.highlights, id)
	return nil
}
