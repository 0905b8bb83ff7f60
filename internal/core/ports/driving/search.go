package driving

import (
	"context"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search scores the generated section index against a free-text query.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
