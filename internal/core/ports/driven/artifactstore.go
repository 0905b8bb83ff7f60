package driven

import (
	"context"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// ArtifactStore persists the static artifacts consumed by the viewer.
// Readers return domain.ErrArtifactMissing when an artifact was never written.
type ArtifactStore interface {
	// WriteSummary stores a copy of a group's summary under its safe ID.
	WriteSummary(ctx context.Context, groupID, text string) error

	// WriteGroups replaces the group list.
	WriteGroups(ctx context.Context, groups []domain.Group) error

	// WriteSearchIndex replaces the flat search index.
	WriteSearchIndex(ctx context.Context, sections []domain.SearchSection) error

	// WriteTopicIndex replaces the per-group topic index.
	WriteTopicIndex(ctx context.Context, index domain.TopicIndex) error

	// ReadSummary returns a group's summary copy.
	ReadSummary(ctx context.Context, groupID string) (string, error)

	// ReadGroups returns the group list.
	ReadGroups(ctx context.Context) ([]domain.Group, error)

	// ReadSearchIndex returns the flat search index.
	ReadSearchIndex(ctx context.Context) ([]domain.SearchSection, error)

	// ReadTopicIndex returns the per-group topic index.
	ReadTopicIndex(ctx context.Context) (domain.TopicIndex, error)
}
