package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

// Ensure TopicService implements the interface.
var _ driving.TopicService = (*TopicService)(nil)

// TopicService computes topic views from the published summaries.
type TopicService struct {
	artifacts  driven.ArtifactStore
	extractor  *Extractor
	aggregator *Aggregator
	dates      DateFormatter
}

// NewTopicService creates a topic service.
func NewTopicService(artifacts driven.ArtifactStore, extractor *Extractor, dates DateFormatter) *TopicService {
	return &TopicService{
		artifacts:  artifacts,
		extractor:  extractor,
		aggregator: NewAggregator(extractor),
		dates:      dates,
	}
}

// Catalog returns the tracked topics.
func (s *TopicService) Catalog() domain.Catalog {
	return s.extractor.Catalog()
}

// Topics aggregates topics across every group with a summary.
func (s *TopicService) Topics(ctx context.Context, order string) ([]domain.AggregatedTopic, error) {
	o, err := ParseTopicOrder(order)
	if err != nil {
		return nil, err
	}

	docs, err := LoadSummaries(ctx, s.artifacts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Aggregating topics over %d summaries", len(docs))

	return s.aggregator.Aggregate(docs).Sorted(o), nil
}

// GroupTopics extracts topics from a single group's summary. A group
// without a summary has no topics.
func (s *TopicService) GroupTopics(ctx context.Context, groupID string) ([]domain.TopicResult, error) {
	text, err := s.artifacts.ReadSummary(ctx, groupID)
	if err != nil {
		if isMissing(err) {
			return []domain.TopicResult{}, nil
		}
		return nil, fmt.Errorf("read summary %s: %w", groupID, err)
	}

	results := s.extractor.ExtractOrdered(text)
	if results == nil {
		results = []domain.TopicResult{}
	}
	return results, nil
}

// LoadSummaries reads the summary of every published group that has one.
// Missing artifacts yield no documents; a summary that cannot be read is
// logged and skipped.
func LoadSummaries(ctx context.Context, artifacts driven.ArtifactStore) ([]domain.SummaryDocument, error) {
	groups, err := artifacts.ReadGroups(ctx)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read groups: %w", err)
	}

	docs := make([]domain.SummaryDocument, 0, len(groups))
	for _, g := range groups {
		if !g.HasSummary {
			continue
		}
		text, err := artifacts.ReadSummary(ctx, g.ID)
		if err != nil {
			logger.Warn("skipping summary of %q: %v", g.Name, err)
			continue
		}
		dr := g.DateRange
		docs = append(docs, domain.SummaryDocument{
			GroupID:       g.ID,
			GroupName:     g.Name,
			Text:          text,
			DateRange:     &dr,
			LastTimestamp: g.LastTimestamp,
			LastUpdated:   g.LastUpdated,
		})
	}
	return docs, nil
}

func isMissing(err error) bool {
	return errors.Is(err, domain.ErrArtifactMissing) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrNoSummary)
}
