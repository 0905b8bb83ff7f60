package topics

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/services"
)

type mockTopicService struct {
	orders []string
	topics []domain.AggregatedTopic
	err    error
}

func (m *mockTopicService) Topics(_ context.Context, order string) ([]domain.AggregatedTopic, error) {
	m.orders = append(m.orders, order)
	return m.topics, m.err
}

func (m *mockTopicService) GroupTopics(_ context.Context, _ string) ([]domain.TopicResult, error) {
	return nil, nil
}

func (m *mockTopicService) Catalog() domain.Catalog {
	return nil
}

func testTopics() []domain.AggregatedTopic {
	return []domain.AggregatedTopic{
		{
			Topic:        domain.Topic{ID: "us-llc-taxes", Name: "US LLC & Taxes", Icon: "$", Color: "green"},
			TotalMatches: 5,
			Groups: []domain.GroupContribution{
				{
					GroupID: "6731", GroupName: "LLC Chat", MatchCount: 4, LastUpdated: "Mar 3, 2024",
					Matches: []domain.Match{{Keyword: "wyoming", Snippet: "formed a wyoming llc"}},
				},
				{GroupID: "6732", GroupName: "Travel", MatchCount: 1},
			},
		},
		{
			Topic:        domain.Topic{ID: "paraguay-residency", Name: "Paraguay Residency", Icon: "P", Color: "red"},
			TotalMatches: 1,
			Groups:       []domain.GroupContribution{{GroupID: "6731", GroupName: "LLC Chat", MatchCount: 1}},
		},
	}
}

func loaded(t *testing.T, v *View) {
	t.Helper()
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestView_LoadsByMentions(t *testing.T) {
	svc := &mockTopicService{topics: testTopics()}
	view := NewView(nil, svc)

	loaded(t, view)

	assert.Equal(t, []string{"mentions"}, svc.orders)
	require.Len(t, view.Topics(), 2)
	out := view.View()
	assert.Contains(t, out, "by mentions")
	assert.Contains(t, out, "US LLC & Taxes")
	assert.Contains(t, out, "5 mentions in 2 groups")
	assert.Contains(t, out, "1 mentions in 1 group")
}

func TestView_ToggleSort(t *testing.T) {
	svc := &mockTopicService{topics: testTopics()}
	view := NewView(nil, svc)
	loaded(t, view)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.NotNil(t, cmd)
	assert.Equal(t, services.OrderRecent, view.Order())
	view.Update(cmd())
	assert.Equal(t, []string{"mentions", "recent"}, svc.orders)
	assert.Contains(t, view.View(), "by recent")

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.NotNil(t, cmd)
	assert.Equal(t, services.OrderMentions, view.Order())
}

func TestView_IgnoresResultsForOtherOrder(t *testing.T) {
	view := NewView(nil, &mockTopicService{})
	loaded(t, view)

	view.Update(messages.TopicsLoaded{Order: "recent", Topics: testTopics()})

	assert.Empty(t, view.Topics())
}

func TestView_ExpandAndOpenGroup(t *testing.T) {
	view := NewView(nil, &mockTopicService{topics: testTopics()})
	view.SetDimensions(100, 30)
	loaded(t, view)

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, view.Expanded())
	out := view.View()
	assert.Contains(t, out, "LLC Chat (4)  Mar 3, 2024")
	assert.Contains(t, out, "formed a wyoming llc")

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.GroupSelected{GroupID: "6732", Back: messages.ViewTopics}, cmd())

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, view.Expanded())
}

func TestView_NavigateTopics(t *testing.T) {
	view := NewView(nil, &mockTopicService{topics: testTopics()})
	loaded(t, view)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	require.NotNil(t, view.SelectedTopic())
	assert.Equal(t, domain.TopicID("paraguay-residency"), view.SelectedTopic().Topic.ID)

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, domain.TopicID("us-llc-taxes"), view.SelectedTopic().Topic.ID)
}

func TestView_EmptyAndErrors(t *testing.T) {
	view := NewView(nil, &mockTopicService{})
	loaded(t, view)
	assert.Contains(t, view.View(), "No tracked topics mentioned yet.")

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, view.Expanded())

	failing := NewView(nil, &mockTopicService{err: errors.New("no index")})
	loaded(t, failing)
	assert.Contains(t, failing.View(), "no index")

	missing := NewView(nil, nil)
	loaded(t, missing)
	assert.ErrorIs(t, missing.Err(), ErrNoTopicService)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
