package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is an in-memory implementation of driven.ArtifactStore.
type ArtifactStore struct {
	mu        sync.RWMutex
	summaries map[string]string
	groups    []domain.Group
	sections  []domain.SearchSection
	topics    domain.TopicIndex
}

// NewArtifactStore creates a new in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		summaries: make(map[string]string),
	}
}

// WriteSummary stores a summary copy.
func (s *ArtifactStore) WriteSummary(_ context.Context, groupID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[groupID] = text
	return nil
}

// WriteGroups replaces the group list.
func (s *ArtifactStore) WriteGroups(_ context.Context, groups []domain.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append([]domain.Group{}, groups...)
	return nil
}

// WriteSearchIndex replaces the search index.
func (s *ArtifactStore) WriteSearchIndex(_ context.Context, sections []domain.SearchSection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections = append([]domain.SearchSection{}, sections...)
	return nil
}

// WriteTopicIndex replaces the topic index.
func (s *ArtifactStore) WriteTopicIndex(_ context.Context, index domain.TopicIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = make(domain.TopicIndex, len(index))
	for k, v := range index {
		s.topics[k] = v
	}
	return nil
}

// ReadSummary returns a stored summary copy.
func (s *ArtifactStore) ReadSummary(_ context.Context, groupID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.summaries[groupID]
	if !ok {
		return "", domain.ErrArtifactMissing
	}
	return text, nil
}

// ReadGroups returns the group list.
func (s *ArtifactStore) ReadGroups(_ context.Context) ([]domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.groups == nil {
		return nil, domain.ErrArtifactMissing
	}
	return append([]domain.Group{}, s.groups...), nil
}

// ReadSearchIndex returns the search index.
func (s *ArtifactStore) ReadSearchIndex(_ context.Context) ([]domain.SearchSection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sections == nil {
		return nil, domain.ErrArtifactMissing
	}
	return append([]domain.SearchSection{}, s.sections...), nil
}

// ReadTopicIndex returns the topic index.
func (s *ArtifactStore) ReadTopicIndex(_ context.Context) (domain.TopicIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.topics == nil {
		return nil, domain.ErrArtifactMissing
	}
	out := make(domain.TopicIndex, len(s.topics))
	for k, v := range s.topics {
		out[k] = v
	}
	return out, nil
}
