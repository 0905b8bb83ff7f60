// Package topics provides the tracked topics view for the TUI.
package topics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
	"github.com/custodia-labs/chatdigest/internal/core/services"
)

// ErrNoTopicService indicates that no topic service was provided.
var ErrNoTopicService = errors.New("topic service is required")

// View lists aggregated topics. Enter expands the selected topic into its
// contributing groups; enter again opens that group's summary.
type View struct {
	styles       *styles.Styles
	topicService driving.TopicService
	ctx          context.Context

	order    services.TopicOrder
	topics   []domain.AggregatedTopic
	selected int

	expanded bool
	groupSel int

	width   int
	height  int
	err     error
	loading bool
}

// NewView creates a new topics view ordered by mentions.
func NewView(s *styles.Styles, topicService driving.TopicService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:       s,
		topicService: topicService,
		ctx:          context.Background(),
		order:        services.OrderMentions,
		width:        80,
		height:       24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the topics.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that aggregates topics in the current order.
func (v *View) Load() tea.Cmd {
	v.loading = true
	v.err = nil
	ctx := v.ctx
	svc := v.topicService
	order := string(v.order)
	return func() tea.Msg {
		if svc == nil {
			return messages.TopicsLoaded{Order: order, Err: ErrNoTopicService}
		}
		topics, err := svc.Topics(ctx, order)
		return messages.TopicsLoaded{Order: order, Topics: topics, Err: err}
	}
}

// Update handles messages for the topics view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.expanded {
			return v.handleGroupKey(msg)
		}
		return v.handleTopicKey(msg)

	case messages.TopicsLoaded:
		if msg.Order != string(v.order) {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.topics = msg.Topics
		v.selected = 0
		v.expanded = false
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

func (v *View) handleTopicKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.topics)-1 {
			v.selected++
		}
	case "enter":
		if t := v.SelectedTopic(); t != nil && len(t.Groups) > 0 {
			v.expanded = true
			v.groupSel = 0
		}
	case "s":
		if v.order == services.OrderMentions {
			v.order = services.OrderRecent
		} else {
			v.order = services.OrderMentions
		}
		return v, v.Load()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

func (v *View) handleGroupKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	t := v.SelectedTopic()
	switch msg.String() {
	case "up", "k":
		if v.groupSel > 0 {
			v.groupSel--
		}
	case "down", "j":
		if t != nil && v.groupSel < len(t.Groups)-1 {
			v.groupSel++
		}
	case "enter":
		if t != nil && v.groupSel < len(t.Groups) {
			id := t.Groups[v.groupSel].GroupID
			return v, func() tea.Msg {
				return messages.GroupSelected{GroupID: id, Back: messages.ViewTopics}
			}
		}
	case "esc":
		v.expanded = false
	}
	return v, nil
}

// View renders the topics view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Topics"))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render("by " + string(v.order)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading topics..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.topics) == 0:
		b.WriteString(v.styles.Muted.Render("No tracked topics mentioned yet."))
	default:
		for i := range v.topics {
			b.WriteString(v.renderTopic(i, &v.topics[i]))
			b.WriteString("\n")
			if v.expanded && i == v.selected {
				b.WriteString(v.renderGroups(&v.topics[i]))
			}
		}
	}

	b.WriteString("\n")
	if v.expanded {
		b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] summary  [esc] collapse"))
	} else {
		b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] groups  [s] sort  [esc] back"))
	}
	return b.String()
}

func (v *View) renderTopic(index int, t *domain.AggregatedTopic) string {
	indicator := "  "
	if index == v.selected && !v.expanded {
		indicator = "> "
	}
	noun := "groups"
	if len(t.Groups) == 1 {
		noun = "group"
	}
	name := v.styles.Topic(t.Topic.Color).Render(t.Topic.Icon + " " + t.Topic.Name)
	meta := v.styles.Muted.Render(fmt.Sprintf("  %d mentions in %d %s", t.TotalMatches, len(t.Groups), noun))
	return indicator + name + meta
}

func (v *View) renderGroups(t *domain.AggregatedTopic) string {
	var b strings.Builder
	for j := range t.Groups {
		g := &t.Groups[j]
		indicator := "     "
		line := fmt.Sprintf("%s (%d)", g.GroupName, g.MatchCount)
		if g.LastUpdated != "" {
			line += "  " + g.LastUpdated
		}
		if j == v.groupSel {
			indicator = "   > "
			b.WriteString(indicator + v.styles.Selected.Render(line))
		} else {
			b.WriteString(indicator + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
		if j == v.groupSel && len(g.Matches) > 0 {
			snippet := list.Truncate(strings.Join(strings.Fields(g.Matches[0].Snippet), " "), max(v.width-10, 20))
			b.WriteString("       ")
			b.WriteString(list.Render(v.styles, services.Highlight(snippet, []string{g.Matches[0].Keyword})))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Topics returns the loaded topics.
func (v *View) Topics() []domain.AggregatedTopic {
	return v.topics
}

// Order returns the current ordering.
func (v *View) Order() services.TopicOrder {
	return v.order
}

// SelectedTopic returns the selected topic, or nil.
func (v *View) SelectedTopic() *domain.AggregatedTopic {
	if v.selected < 0 || v.selected >= len(v.topics) {
		return nil
	}
	return &v.topics[v.selected]
}

// Expanded reports whether the selected topic's groups are shown.
func (v *View) Expanded() bool {
	return v.expanded
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
