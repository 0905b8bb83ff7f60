// Package summary provides the group summary reader for the TUI.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
	"github.com/custodia-labs/chatdigest/internal/core/services"
)

// ErrNoGroupService indicates that no group service was provided.
var ErrNoGroupService = errors.New("group service is required")

// reservedLines covers the title, meta line, separator, scroll line and help.
const reservedLines = 7

// View shows one group's summary in a scrollable viewport.
type View struct {
	styles       *styles.Styles
	groupService driving.GroupService
	ctx          context.Context
	dates        services.DateFormatter
	now          func() time.Time

	groupID  string
	back     messages.ViewType
	detail   *driving.GroupDetail
	viewport viewport.Model

	width   int
	height  int
	err     error
	loading bool
}

// NewView creates a new summary view.
func NewView(s *styles.Styles, groupService driving.GroupService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:       s,
		groupService: groupService,
		ctx:          context.Background(),
		now:          time.Now,
		back:         messages.ViewGroups,
		viewport:     viewport.New(80, 24-reservedLines),
		width:        80,
		height:       24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithDates sets the formatter for activity times and the clock they are
// measured against. A nil now keeps the current clock.
func (v *View) WithDates(dates services.DateFormatter, now func() time.Time) *View {
	v.dates = dates
	if now != nil {
		v.now = now
	}
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetGroup switches to a group and returns a command that loads it.
// back is the view esc returns to.
func (v *View) SetGroup(groupID string, back messages.ViewType) tea.Cmd {
	v.groupID = groupID
	v.back = back
	v.detail = nil
	v.err = nil
	v.loading = true
	v.viewport.SetContent("")
	v.viewport.GotoTop()

	ctx := v.ctx
	svc := v.groupService
	return func() tea.Msg {
		if svc == nil {
			return messages.SummaryLoaded{GroupID: groupID, Err: ErrNoGroupService}
		}
		detail, err := svc.Get(ctx, groupID)
		return messages.SummaryLoaded{GroupID: groupID, Detail: detail, Err: err}
	}
}

// Update handles messages for the summary view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			back := v.back
			return v, func() tea.Msg {
				return messages.ViewChanged{View: back}
			}
		case "home", "g":
			v.viewport.GotoTop()
			return v, nil
		case "end", "G":
			v.viewport.GotoBottom()
			return v, nil
		}
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd

	case messages.SummaryLoaded:
		if msg.GroupID != v.groupID {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.detail = msg.Detail
		v.refresh()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

// refresh re-renders the summary into the viewport at the current width.
func (v *View) refresh() {
	if v.detail == nil {
		return
	}
	v.viewport.SetContent(v.render())
}

func (v *View) render() string {
	d := v.detail
	width := max(v.width-4, 20)
	wrap := v.styles.Normal.Width(width)

	var b strings.Builder
	if d.Group.Description != "" {
		b.WriteString(wrap.Render(d.Group.Description))
		b.WriteString("\n\n")
	}

	if len(d.Topics) > 0 {
		parts := make([]string, len(d.Topics))
		for i, t := range d.Topics {
			parts[i] = v.styles.Topic(t.Topic.Color).Render(
				fmt.Sprintf("%s %s (%d)", t.Topic.Icon, t.Topic.Name, len(t.Matches)))
		}
		b.WriteString(strings.Join(parts, "  "))
		b.WriteString("\n\n")
	}

	if d.Summary == "" {
		b.WriteString(v.styles.Muted.Render("(No summary yet)"))
		return b.String()
	}

	for _, line := range strings.Split(d.Summary, "\n") {
		if heading, ok := headingText(line); ok {
			b.WriteString(v.styles.Subtitle.Render(heading))
		} else {
			b.WriteString(wrap.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// headingText strips markdown heading and bold markers from a heading line.
func headingText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	text := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
	return strings.ReplaceAll(text, "**", ""), true
}

// View renders the summary view.
func (v *View) View() string {
	var b strings.Builder

	title := "Summary"
	if v.detail != nil {
		title = v.detail.Group.Name
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.detail != nil {
		g := v.detail.Group
		meta := fmt.Sprintf("%d messages", g.MessageCount)
		if g.DateRange.Start != "" {
			meta += fmt.Sprintf("  %s to %s", g.DateRange.Start, g.DateRange.End)
		}
		if g.LastTimestamp > 0 {
			meta += "  updated " + v.dates.Relative(g.LastTimestamp, v.now())
		}
		b.WriteString(v.styles.Muted.Render(meta))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading summary..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.detail != nil:
		b.WriteString(v.viewport.View())
		if v.viewport.TotalLineCount() > v.viewport.Height {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%]", int(v.viewport.ScrollPercent()*100))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions and rewraps the summary.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-reservedLines, 1)
	v.refresh()
}

// GroupID returns the group being shown.
func (v *View) GroupID() string {
	return v.groupID
}

// Detail returns the loaded group detail.
func (v *View) Detail() *driving.GroupDetail {
	return v.detail
}

// Back returns the view esc returns to.
func (v *View) Back() messages.ViewType {
	return v.back
}

// YOffset returns the scroll offset.
func (v *View) YOffset() int {
	return v.viewport.YOffset
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
