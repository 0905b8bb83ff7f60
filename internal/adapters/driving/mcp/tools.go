package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// defaultSearchLimit caps search_summaries when the client sends no limit.
const defaultSearchLimit = 10

// SearchInput is the input schema for the search_summaries tool.
type SearchInput struct {
	Query    string   `json:"query" jsonschema:"free-text query; terms in section titles rank higher"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	GroupIDs []string `json:"group_ids,omitempty" jsonschema:"only search these group IDs"`
}

// SearchOutput is the output schema for the search_summaries tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single ranked summary section.
type SearchResultOutput struct {
	GroupID      string   `json:"group_id"`
	GroupName    string   `json:"group_name"`
	Section      string   `json:"section"`
	Score        int      `json:"score"`
	MatchedTerms []string `json:"matched_terms"`
	Snippet      string   `json:"snippet"`
}

// TopicsInput is the input schema for the list_topics tool.
type TopicsInput struct {
	Sort    string `json:"sort,omitempty" jsonschema:"mentions (default) or recent"`
	GroupID string `json:"group_id,omitempty" jsonschema:"restrict to one group's summary"`
}

// TopicsOutput is the output schema for the list_topics tool.
type TopicsOutput struct {
	Topics []TopicOutput `json:"topics"`
}

// TopicOutput is one tracked topic with the groups mentioning it.
type TopicOutput struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Mentions int                `json:"mentions"`
	Groups   []TopicGroupOutput `json:"groups,omitempty"`
	Snippets []string           `json:"snippets,omitempty"`
}

// TopicGroupOutput is one group's share of a topic.
type TopicGroupOutput struct {
	GroupID     string   `json:"group_id"`
	GroupName   string   `json:"group_name"`
	Mentions    int      `json:"mentions"`
	LastUpdated string   `json:"last_updated,omitempty"`
	Snippets    []string `json:"snippets,omitempty"`
}

// GroupsInput is the (empty) input schema for the list_groups tool.
type GroupsInput struct{}

// GroupsOutput is the output schema for the list_groups tool.
type GroupsOutput struct {
	Groups []GroupOutput `json:"groups"`
}

// GroupOutput describes one published group.
type GroupOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	MessageCount int    `json:"message_count"`
	LastUpdated  string `json:"last_updated"`
	HasSummary   bool   `json:"has_summary"`
}

// SummaryInput is the input schema for the get_summary tool.
type SummaryInput struct {
	GroupID string `json:"group_id" jsonschema:"group ID as returned by list_groups"`
}

// SummaryOutput is the output schema for the get_summary tool.
type SummaryOutput struct {
	GroupID  string   `json:"group_id"`
	Name     string   `json:"name"`
	Summary  string   `json:"summary"`
	Sections []string `json:"sections"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_summaries",
		Description: "Search chat group summaries and return the best matching sections",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_topics",
		Description: "List tracked topics mentioned across chat groups, with example snippets",
	}, s.handleTopics)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_groups",
		Description: "List the published chat groups",
	}, s.handleGroups)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_summary",
		Description: "Get the full summary of one chat group",
	}, s.handleSummary)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	opts := domain.SearchOptions{Limit: limit, GroupIDs: input.GroupIDs}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			GroupID:      results[i].GroupID,
			GroupName:    results[i].GroupName,
			Section:      results[i].Title,
			Score:        results[i].Score,
			MatchedTerms: results[i].MatchedTerms,
			Snippet:      results[i].Snippet,
		}
	}
	return nil, output, nil
}

func (s *Server) handleTopics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TopicsInput,
) (*mcp.CallToolResult, TopicsOutput, error) {
	if input.GroupID != "" {
		results, err := s.ports.Topics.GroupTopics(ctx, input.GroupID)
		if err != nil {
			return nil, TopicsOutput{}, err
		}
		output := TopicsOutput{Topics: make([]TopicOutput, len(results))}
		for i := range results {
			output.Topics[i] = TopicOutput{
				ID:       string(results[i].Topic.ID),
				Name:     results[i].Topic.Name,
				Mentions: len(results[i].Matches),
				Snippets: snippets(results[i].Matches),
			}
		}
		return nil, output, nil
	}

	topics, err := s.ports.Topics.Topics(ctx, input.Sort)
	if err != nil {
		return nil, TopicsOutput{}, err
	}
	output := TopicsOutput{Topics: make([]TopicOutput, len(topics))}
	for i := range topics {
		t := &topics[i]
		groups := make([]TopicGroupOutput, len(t.Groups))
		for j := range t.Groups {
			groups[j] = TopicGroupOutput{
				GroupID:     t.Groups[j].GroupID,
				GroupName:   t.Groups[j].GroupName,
				Mentions:    t.Groups[j].MatchCount,
				LastUpdated: t.Groups[j].LastUpdated,
				Snippets:    snippets(t.Groups[j].Matches),
			}
		}
		output.Topics[i] = TopicOutput{
			ID:       string(t.Topic.ID),
			Name:     t.Topic.Name,
			Mentions: t.TotalMatches,
			Groups:   groups,
		}
	}
	return nil, output, nil
}

func (s *Server) handleGroups(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GroupsInput,
) (*mcp.CallToolResult, GroupsOutput, error) {
	groups, err := s.ports.Groups.List(ctx)
	if err != nil {
		return nil, GroupsOutput{}, err
	}

	output := GroupsOutput{Groups: make([]GroupOutput, len(groups))}
	for i := range groups {
		output.Groups[i] = GroupOutput{
			ID:           groups[i].ID,
			Name:         groups[i].Name,
			Description:  groups[i].Description,
			MessageCount: groups[i].MessageCount,
			LastUpdated:  groups[i].LastUpdated,
			HasSummary:   groups[i].HasSummary,
		}
	}
	return nil, output, nil
}

func (s *Server) handleSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummaryInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	if input.GroupID == "" {
		return nil, SummaryOutput{}, errors.New("group_id is required")
	}

	detail, err := s.ports.Groups.Get(ctx, input.GroupID)
	if err != nil {
		return nil, SummaryOutput{}, err
	}
	if !detail.Group.HasSummary {
		return nil, SummaryOutput{}, fmt.Errorf("group %s: %w", input.GroupID, domain.ErrNoSummary)
	}

	sections := make([]string, len(detail.Headings))
	for i, h := range detail.Headings {
		sections[i] = h.Text
	}
	return nil, SummaryOutput{
		GroupID:  detail.Group.ID,
		Name:     detail.Group.Name,
		Summary:  detail.Summary,
		Sections: sections,
	}, nil
}

func snippets(matches []domain.Match) []string {
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Snippet
	}
	return out
}
