package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatdigest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/services"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
	opts    domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.opts = opts
	return m.results, m.err
}

const (
	llcSummary = "## **Wyoming LLC**\nWe formed a wyoming llc and got an EIN.\n\n" +
		"## **Paraguay**\nSomeone asked about paraguay residency and the cedula."
)

// newTestPorts generates artifacts for two groups, one without a summary,
// and returns ports over real services.
func newTestPorts(t *testing.T) (*Ports, string, string) {
	t.Helper()

	summaries := memory.NewSummaryStore()
	summaries.Put("summary_llcchat.md", llcSummary)
	artifacts := memory.NewArtifactStore()
	extractor := services.NewExtractor(domain.DefaultCatalog(), services.DefaultExtractOptions())
	dates := services.NewDateFormatter(time.UTC)

	gen := services.NewGenerator(
		memory.NewMessageStore(
			domain.GroupStats{ID: "g1", Name: "LLC Chat", MessageCount: 10,
				FirstTimestamp: 1700000000000, LastTimestamp: 1700500000000},
			domain.GroupStats{ID: "g2", Name: "Quiet", MessageCount: 1,
				FirstTimestamp: 1600000000000, LastTimestamp: 1600000000000},
		),
		summaries, artifacts, nil, extractor, dates,
	)
	_, err := gen.Run(context.Background())
	require.NoError(t, err)

	return &Ports{
		Search: services.NewSearchService(artifacts, nil),
		Topics: services.NewTopicService(artifacts, extractor, dates),
		Groups: services.NewGroupService(artifacts, extractor),
	}, services.SafeID("g1"), services.SafeID("g2")
}
