package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
)

// Ensure GroupService implements the interface.
var _ driving.GroupService = (*GroupService)(nil)

// GroupService serves the published group list and group pages.
type GroupService struct {
	artifacts driven.ArtifactStore
	extractor *Extractor
}

// NewGroupService creates a group service.
func NewGroupService(artifacts driven.ArtifactStore, extractor *Extractor) *GroupService {
	return &GroupService{artifacts: artifacts, extractor: extractor}
}

// List returns the published groups, most recently active first.
func (s *GroupService) List(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.artifacts.ReadGroups(ctx)
	if err != nil {
		if isMissing(err) {
			return []domain.Group{}, nil
		}
		return nil, fmt.Errorf("read groups: %w", err)
	}
	return groups, nil
}

// Get returns a group page: the group, its summary, headings and topics.
func (s *GroupService) Get(ctx context.Context, id string) (*driving.GroupDetail, error) {
	groups, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		if g.ID != id {
			continue
		}

		detail := &driving.GroupDetail{
			Group:    g,
			Headings: []domain.Heading{},
			Topics:   []domain.TopicResult{},
		}
		if !g.HasSummary {
			return detail, nil
		}

		text, err := s.artifacts.ReadSummary(ctx, id)
		if err != nil {
			if isMissing(err) {
				return detail, nil
			}
			return nil, fmt.Errorf("read summary %s: %w", id, err)
		}
		detail.Summary = text
		if h := Headings(text); h != nil {
			detail.Headings = h
		}
		if t := s.extractor.ExtractOrdered(text); t != nil {
			detail.Topics = t
		}
		return detail, nil
	}
	return nil, fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
}
