package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
)

// Ensure MessageStore implements the interface.
var _ driven.MessageStore = (*MessageStore)(nil)

// MessageStore is an in-memory implementation of driven.MessageStore.
type MessageStore struct {
	mu     sync.RWMutex
	groups []domain.GroupStats
	err    error
	closed bool
}

// NewMessageStore creates a store returning the given group stats.
func NewMessageStore(groups ...domain.GroupStats) *MessageStore {
	return &MessageStore{groups: groups}
}

// SetError makes GroupStats fail with err.
func (s *MessageStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// GroupStats returns the groups, most recently active first.
func (s *MessageStore) GroupStats(_ context.Context) ([]domain.GroupStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	out := append([]domain.GroupStats{}, s.groups...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastTimestamp > out[j].LastTimestamp
	})
	return out, nil
}

// Close marks the store closed.
func (s *MessageStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *MessageStore) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
