package driven

import (
	"context"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// HighlightStore persists bookmarked excerpts.
type HighlightStore interface {
	// Save stores a highlight.
	Save(ctx context.Context, h domain.Highlight) error

	// List returns highlights, newest first. An empty groupID lists all.
	List(ctx context.Context, groupID string) ([]domain.Highlight, error)

	// Delete removes a highlight.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
