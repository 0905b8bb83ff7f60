// Package groups provides the published groups list view for the TUI.
package groups

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
	"github.com/custodia-labs/chatdigest/internal/core/services"
)

// ErrNoGroupService indicates that no group service was provided.
var ErrNoGroupService = errors.New("group service is required")

// View lists published groups, most recently active first.
type View struct {
	styles       *styles.Styles
	groupService driving.GroupService
	ctx          context.Context
	dates        services.DateFormatter
	now          func() time.Time

	groups       []domain.Group
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
}

// NewView creates a new groups view.
func NewView(s *styles.Styles, groupService driving.GroupService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:       s,
		groupService: groupService,
		ctx:          context.Background(),
		now:          time.Now,
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

// Init loads the groups.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that fetches the published groups.
func (v *View) Load() tea.Cmd {
	v.loading = true
	v.err = nil
	ctx := v.ctx
	svc := v.groupService
	return func() tea.Msg {
		if svc == nil {
			return messages.GroupsLoaded{Err: ErrNoGroupService}
		}
		groups, err := svc.List(ctx)
		return messages.GroupsLoaded{Groups: groups, Err: err}
	}
}

// Update handles messages for the groups view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.GroupsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.groups = msg.Groups
		v.selected = min(v.selected, max(len(v.groups)-1, 0))
		v.adjustScroll()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.groups)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if g := v.SelectedGroup(); g != nil {
			id := g.ID
			return v, func() tea.Msg {
				return messages.GroupSelected{GroupID: id, Back: messages.ViewGroups}
			}
		}
	case "r":
		return v, v.Load()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// adjustScroll keeps the selected group visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleItemCount() int {
	// title, counts, help and padding
	return max(v.height-8, 1)
}

// View renders the groups view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Groups (%d)", len(v.groups))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading groups..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.groups) == 0:
		b.WriteString(v.styles.Muted.Render("No groups published yet. Run \"chatdigest generate\"."))
	default:
		visible := v.visibleItemCount()
		end := min(v.scrollOffset+visible, len(v.groups))
		for i := v.scrollOffset; i < end; i++ {
			b.WriteString(v.renderGroup(i, &v.groups[i]))
			b.WriteString("\n")
		}
		if len(v.groups) > visible {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
				v.scrollOffset+1, end, len(v.groups))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] summary  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderGroup(index int, g *domain.Group) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	maxName := max(v.width/2-4, 10)
	name := list.Truncate(g.Name, maxName)

	marker := " "
	if g.HasSummary {
		marker = "*"
	}
	meta := fmt.Sprintf("%s %5d msgs  %s", marker, g.MessageCount, v.activity(g))

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxName, name, meta))
	}
	return v.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxName, name)) +
		v.styles.Muted.Render(meta)
}

// activity is the group's last activity relative to now, or the published
// date when no timestamp is known.
func (v *View) activity(g *domain.Group) string {
	if g.LastTimestamp <= 0 {
		return g.LastUpdated
	}
	return v.dates.Relative(g.LastTimestamp, v.now())
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.adjustScroll()
}

// Groups returns the loaded groups.
func (v *View) Groups() []domain.Group {
	return v.groups
}

// SelectedIndex returns the currently selected group index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedGroup returns the currently selected group, or nil.
func (v *View) SelectedGroup() *domain.Group {
	if v.selected < 0 || v.selected >= len(v.groups) {
		return nil
	}
	return &v.groups[v.selected]
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
