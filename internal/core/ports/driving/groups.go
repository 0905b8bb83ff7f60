package driving

import (
	"context"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// GroupDetail is everything the viewer shows on a group page.
type GroupDetail struct {
	Group    domain.Group         `json:"group"`
	Summary  string               `json:"summary"`
	Headings []domain.Heading     `json:"headings"`
	Topics   []domain.TopicResult `json:"topics"`
}

// GroupService provides read access to published groups.
type GroupService interface {
	// List returns all published groups.
	List(ctx context.Context) ([]domain.Group, error)

	// Get returns a group with its summary, table of contents and topics.
	// Returns domain.ErrNotFound for an unknown group.
	Get(ctx context.Context, id string) (*GroupDetail, error)
}
