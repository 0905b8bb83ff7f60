package driving

import (
	"context"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// Generator rebuilds every viewer artifact from the current corpus.
type Generator interface {
	// Run performs one full generation pass.
	Run(ctx context.Context) (*domain.GenerationReport, error)
}
