package driven

import (
	"context"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// MessageStore provides read-only access to the chat message database.
type MessageStore interface {
	// GroupStats returns one row per group with its message count and
	// first/last message timestamps, most recently active first.
	GroupStats(ctx context.Context) ([]domain.GroupStats, error)

	// Close releases resources.
	Close() error
}
