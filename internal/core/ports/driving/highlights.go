package driving

import (
	"context"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// HighlightService manages bookmarked excerpts.
type HighlightService interface {
	// Add saves an excerpt of a group's summary.
	Add(ctx context.Context, groupID, groupName, text string) (*domain.Highlight, error)

	// List returns highlights, newest first. An empty groupID lists all.
	List(ctx context.Context, groupID string) ([]domain.Highlight, error)

	// Remove deletes a highlight by ID.
	Remove(ctx context.Context, id string) error
}
