// Package search provides the live search view for the TUI.
package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
)

// View is the search view: a query input that re-scores the index on every
// edit, a result list and a status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	ctx           context.Context

	// seq numbers queries so results for superseded input are dropped.
	seq int

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewSearchInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd, _ = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyTab {
		v.toggleFocus()
		return v, nil
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			if !v.list.IsEmpty() {
				v.toggleFocus()
			}
			return v, nil
		}
		var cmd tea.Cmd
		var changed bool
		v.input, cmd, changed = v.input.Update(msg)
		if changed {
			return v, tea.Batch(cmd, v.performSearch(v.input.Value()))
		}
		return v, cmd
	}

	switch msg.String() {
	case "enter":
		result := v.list.SelectedResult()
		if result == nil {
			return v, nil
		}
		id := result.GroupID
		return v, func() tea.Msg {
			return messages.GroupSelected{GroupID: id, Back: messages.ViewSearch}
		}
	case "/":
		v.toggleFocus()
		return v, nil
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) toggleFocus() {
	v.focusInput = !v.focusInput
	if v.focusInput {
		v.input.Focus()
	} else {
		v.input.Blur()
	}
	v.statusbar.SetListFocused(!v.focusInput)
}

// performSearch scores the query in a command. A blank query clears the
// results without calling the service.
func (v *View) performSearch(query string) tea.Cmd {
	v.seq++
	seq := v.seq

	if strings.TrimSpace(query) == "" {
		v.list.SetResults(nil)
		v.err = nil
		v.statusbar.Clear()
		v.statusbar.SetListFocused(!v.focusInput)
		return nil
	}

	v.statusbar.SetState(status.StateSearching)
	ctx := v.ctx
	svc := v.searchService
	return func() tea.Msg {
		if svc == nil {
			return messages.SearchCompleted{Seq: seq, Query: query, Err: ErrNoSearchService}
		}
		results, err := svc.Search(ctx, query, domain.SearchOptions{})
		return messages.SearchCompleted{Seq: seq, Query: query, Results: results, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Seq != v.seq {
		return
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Chat Digest"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if strings.TrimSpace(v.input.Value()) == "" {
		sections = append(sections, v.styles.Muted.Render("Type to search group summaries"))
	} else {
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // header, input, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the query and results and focuses the input.
func (v *View) Reset() {
	v.seq++
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
