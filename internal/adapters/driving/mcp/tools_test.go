package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

func topicIDs(topics []TopicOutput) []string {
	ids := make([]string, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}
	return ids
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked sections", func(t *testing.T) {
		ports, g1, _ := newTestPorts(t)
		server, err := NewServer(ports, "test")
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "wyoming ein"})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		r := output.Results[0]
		assert.Equal(t, g1, r.GroupID)
		assert.Equal(t, "LLC Chat", r.GroupName)
		assert.Equal(t, "Wyoming LLC", r.Section)
		assert.Equal(t, 12, r.Score)
		assert.Equal(t, []string{"wyoming", "ein"}, r.MatchedTerms)
		assert.Contains(t, r.Snippet, "wyoming llc")
	})

	t.Run("default limit is 10", func(t *testing.T) {
		ports, _, _ := newTestPorts(t)
		mock := &mockSearchService{}
		ports.Search = mock
		server, err := NewServer(ports, "test")
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "test", GroupIDs: []string{"abc"}})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, 10, mock.opts.Limit)
		assert.Equal(t, []string{"abc"}, mock.opts.GroupIDs)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		ports, _, _ := newTestPorts(t)
		ports.Search = &mockSearchService{err: errors.New("search failed")}
		server, err := NewServer(ports, "test")
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleTopics(t *testing.T) {
	ctx := context.Background()
	ports, g1, g2 := newTestPorts(t)
	server, err := NewServer(ports, "test")
	require.NoError(t, err)

	t.Run("aggregates across groups", func(t *testing.T) {
		_, output, err := server.handleTopics(ctx, nil, TopicsInput{Sort: "mentions"})

		require.NoError(t, err)
		ids := topicIDs(output.Topics)
		assert.ElementsMatch(t, []string{"paraguay-residency", "us-llc-taxes"}, ids)
		for _, topic := range output.Topics {
			require.Len(t, topic.Groups, 1)
			assert.Equal(t, g1, topic.Groups[0].GroupID)
			assert.Equal(t, topic.Mentions, topic.Groups[0].Mentions)
			assert.NotEmpty(t, topic.Groups[0].Snippets)
		}
	})

	t.Run("single group", func(t *testing.T) {
		_, output, err := server.handleTopics(ctx, nil, TopicsInput{GroupID: g1})

		require.NoError(t, err)
		assert.Equal(t, []string{"paraguay-residency", "us-llc-taxes"}, topicIDs(output.Topics))
	})

	t.Run("group without summary has no topics", func(t *testing.T) {
		_, output, err := server.handleTopics(ctx, nil, TopicsInput{GroupID: g2})

		require.NoError(t, err)
		assert.Empty(t, output.Topics)
	})

	t.Run("unknown sort", func(t *testing.T) {
		_, _, err := server.handleTopics(ctx, nil, TopicsInput{Sort: "alphabetical"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleGroups(t *testing.T) {
	ports, g1, g2 := newTestPorts(t)
	server, err := NewServer(ports, "test")
	require.NoError(t, err)

	_, output, err := server.handleGroups(context.Background(), nil, GroupsInput{})

	require.NoError(t, err)
	require.Len(t, output.Groups, 2)
	assert.Equal(t, g1, output.Groups[0].ID)
	assert.True(t, output.Groups[0].HasSummary)
	assert.Equal(t, 10, output.Groups[0].MessageCount)
	assert.Equal(t, g2, output.Groups[1].ID)
	assert.False(t, output.Groups[1].HasSummary)
}

func TestServer_handleSummary(t *testing.T) {
	ctx := context.Background()
	ports, g1, g2 := newTestPorts(t)
	server, err := NewServer(ports, "test")
	require.NoError(t, err)

	t.Run("returns summary and sections", func(t *testing.T) {
		_, output, err := server.handleSummary(ctx, nil, SummaryInput{GroupID: g1})

		require.NoError(t, err)
		assert.Equal(t, "LLC Chat", output.Name)
		assert.Equal(t, llcSummary, output.Summary)
		assert.Equal(t, []string{"Wyoming LLC", "Paraguay"}, output.Sections)
	})

	t.Run("requires group id", func(t *testing.T) {
		_, _, err := server.handleSummary(ctx, nil, SummaryInput{})
		assert.Error(t, err)
	})

	t.Run("group without summary", func(t *testing.T) {
		_, _, err := server.handleSummary(ctx, nil, SummaryInput{GroupID: g2})
		assert.ErrorIs(t, err, domain.ErrNoSummary)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, _, err := server.handleSummary(ctx, nil, SummaryInput{GroupID: "ffff"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
