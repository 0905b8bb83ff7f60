package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
)

// Ensure SummaryStore implements the interface.
var _ driven.SummaryStore = (*SummaryStore)(nil)

// SummaryStore is an in-memory implementation of driven.SummaryStore.
type SummaryStore struct {
	mu    sync.RWMutex
	files map[string]string
	errs  map[string]error
}

// NewSummaryStore creates a new in-memory summary store.
func NewSummaryStore() *SummaryStore {
	return &SummaryStore{
		files: make(map[string]string),
		errs:  make(map[string]error),
	}
}

// Put adds or replaces a summary file.
func (s *SummaryStore) Put(name, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = text
}

// FailRead makes reads of name return err. The file is still listed.
func (s *SummaryStore) FailRead(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[name] = err
	if _, ok := s.files[name]; !ok {
		s.files[name] = ""
	}
}

// List returns the stored file names in lexical order.
func (s *SummaryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Read returns a summary file.
func (s *SummaryStore) Read(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err, ok := s.errs[name]; ok {
		return "", err
	}
	text, ok := s.files[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}
