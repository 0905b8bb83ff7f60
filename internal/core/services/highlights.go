package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
)

// Ensure HighlightService implements the interface.
var _ driving.HighlightService = (*HighlightService)(nil)

// HighlightService manages bookmarked summary excerpts.
type HighlightService struct {
	store driven.HighlightStore
	now   func() time.Time
}

// NewHighlightService creates a highlight service.
func NewHighlightService(store driven.HighlightStore) *HighlightService {
	return &HighlightService{store: store, now: time.Now}
}

// Add validates and stores a new highlight.
func (s *HighlightService) Add(ctx context.Context, groupID, groupName, text string) (*domain.Highlight, error) {
	if groupID == "" {
		return nil, fmt.Errorf("%w: group id is required", domain.ErrInvalidInput)
	}
	text = strings.TrimSpace(text)
	n := utf8.RuneCountInString(text)
	if n < domain.MinHighlightLength || n > domain.MaxHighlightLength {
		return nil, fmt.Errorf("%w: highlight must be %d-%d characters, got %d",
			domain.ErrInvalidInput, domain.MinHighlightLength, domain.MaxHighlightLength, n)
	}

	h := domain.Highlight{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		GroupName: groupName,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, h); err != nil {
		return nil, fmt.Errorf("save highlight: %w", err)
	}
	return &h, nil
}

// List returns highlights, newest first.
func (s *HighlightService) List(ctx context.Context, groupID string) ([]domain.Highlight, error) {
	return s.store.List(ctx, groupID)
}

// Remove deletes a highlight.
func (s *HighlightService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: highlight id is required", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}
