package driving

import (
	"context"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// TopicService exposes tracked-topic views over the generated summaries.
type TopicService interface {
	// Topics aggregates tracked topics across all groups.
	// order is "mentions" (default) or "recent".
	Topics(ctx context.Context, order string) ([]domain.AggregatedTopic, error)

	// GroupTopics extracts tracked topics from one group's summary.
	GroupTopics(ctx context.Context, groupID string) ([]domain.TopicResult, error)

	// Catalog returns the tracked topic definitions.
	Catalog() domain.Catalog
}
