package services

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// Aggregator merges per-document topic matches across groups.
type Aggregator struct {
	extractor *Extractor
}

// NewAggregator creates an aggregator backed by the given extractor.
func NewAggregator(extractor *Extractor) *Aggregator {
	return &Aggregator{extractor: extractor}
}

// Aggregation is the cross-group topic view. Both presentation orders are
// derived from the same structure; nothing is recomputed.
type Aggregation struct {
	// topics is in catalog order.
	topics []*domain.AggregatedTopic
}

// Aggregate runs the extractor once per document and merges the results.
// Documents without any topic contribute nothing.
func (a *Aggregator) Aggregate(docs []domain.SummaryDocument) *Aggregation {
	byID := make(map[domain.TopicID]*domain.AggregatedTopic)

	for i := range docs {
		doc := &docs[i]
		for _, tr := range a.extractor.ExtractOrdered(doc.Text) {
			agg, ok := byID[tr.Topic.ID]
			if !ok {
				agg = &domain.AggregatedTopic{Topic: tr.Topic}
				byID[tr.Topic.ID] = agg
			}

			agg.Groups = append(agg.Groups, domain.GroupContribution{
				GroupID:       doc.GroupID,
				GroupName:     doc.GroupName,
				MatchCount:    len(tr.Matches),
				Matches:       tr.Matches,
				DateRange:     doc.DateRange,
				LastTimestamp: doc.LastTimestamp,
				LastUpdated:   doc.LastUpdated,
			})
			agg.TotalMatches += len(tr.Matches)
			if doc.LastTimestamp > 0 && doc.LastTimestamp > agg.LatestTimestamp {
				agg.LatestTimestamp = doc.LastTimestamp
			}
		}
	}

	// Catalog order, so ties break the same way regardless of which document
	// mentioned a topic first.
	result := &Aggregation{topics: make([]*domain.AggregatedTopic, 0, len(byID))}
	for _, tp := range a.extractor.topics {
		agg, ok := byID[tp.topic.ID]
		if !ok {
			continue
		}
		sortContributions(agg.Groups)
		result.topics = append(result.topics, agg)
	}
	return result
}

// sortContributions orders groups by their own last timestamp, newest first;
// groups without a timestamp go last.
func sortContributions(groups []domain.GroupContribution) {
	sort.SliceStable(groups, func(i, j int) bool {
		ti, tj := groups[i].LastTimestamp, groups[j].LastTimestamp
		if ti <= 0 {
			return false
		}
		if tj <= 0 {
			return true
		}
		return ti > tj
	})
}

// Len returns the number of topics found.
func (g *Aggregation) Len() int {
	return len(g.topics)
}

// Topic returns one aggregated topic.
func (g *Aggregation) Topic(id domain.TopicID) (domain.AggregatedTopic, bool) {
	for _, t := range g.topics {
		if t.Topic.ID == id {
			return copyTopic(t), true
		}
	}
	return domain.AggregatedTopic{}, false
}

// ByMentions lists topics by total match count, most discussed first.
func (g *Aggregation) ByMentions() []domain.AggregatedTopic {
	out := g.snapshot()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalMatches > out[j].TotalMatches
	})
	return out
}

// ByRecency lists topics by their latest group timestamp, most recent first.
func (g *Aggregation) ByRecency() []domain.AggregatedTopic {
	out := g.snapshot()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LatestTimestamp > out[j].LatestTimestamp
	})
	return out
}

// Sorted dispatches on a TopicOrder.
func (g *Aggregation) Sorted(order TopicOrder) []domain.AggregatedTopic {
	if order == OrderRecent {
		return g.ByRecency()
	}
	return g.ByMentions()
}

func (g *Aggregation) snapshot() []domain.AggregatedTopic {
	out := make([]domain.AggregatedTopic, len(g.topics))
	for i, t := range g.topics {
		out[i] = copyTopic(t)
	}
	return out
}

func copyTopic(t *domain.AggregatedTopic) domain.AggregatedTopic {
	c := *t
	c.Groups = append([]domain.GroupContribution(nil), t.Groups...)
	return c
}

// TopicOrder selects a presentation order for aggregated topics.
type TopicOrder string

const (
	// OrderMentions sorts by total match count.
	OrderMentions TopicOrder = "mentions"
	// OrderRecent sorts by most recent activity.
	OrderRecent TopicOrder = "recent"
)

// ParseTopicOrder maps user input to a TopicOrder.
func ParseTopicOrder(s string) (TopicOrder, error) {
	switch TopicOrder(s) {
	case "", OrderMentions:
		return OrderMentions, nil
	case OrderRecent:
		return OrderRecent, nil
	default:
		return "", fmt.Errorf("%w: unknown topic order %q", domain.ErrInvalidInput, s)
	}
}
