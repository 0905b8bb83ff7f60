package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/views/groups"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/views/summary"
	"github.com/custodia-labs/chatdigest/internal/adapters/driving/tui/views/topics"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles

	menuView    *menu.View
	searchView  *search.View
	topicsView  *topics.View
	groupsView  *groups.View
	summaryView *summary.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, ErrInvalidPorts
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		searchView:  search.NewView(s, km, ports.Search),
		topicsView:  topics.NewView(s, ports.Topics),
		groupsView:  groups.NewView(s, ports.Groups).WithDates(ports.Dates, nil),
		summaryView: summary.NewView(s, ports.Groups).WithDates(ports.Dates, nil),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context used for every service call.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.topicsView.WithContext(ctx)
	a.groupsView.WithContext(ctx)
	a.summaryView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("chatdigest"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewTopics:
			return a, a.topicsView.Init()
		case messages.ViewGroups:
			return a, a.groupsView.Init()
		case messages.ViewMenu, messages.ViewSummary, messages.ViewHelp:
		}
		return a, nil

	case messages.GroupSelected:
		a.currentView = messages.ViewSummary
		return a, a.summaryView.SetGroup(msg.GroupID, msg.Back)

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.TopicsLoaded:
		a.topicsView, cmd = a.topicsView.Update(msg)
		a.err = a.topicsView.Err()
		return a, cmd

	case messages.GroupsLoaded:
		a.groupsView, cmd = a.groupsView.Update(msg)
		a.err = a.groupsView.Err()
		return a, cmd

	case messages.SummaryLoaded:
		a.summaryView, cmd = a.summaryView.Update(msg)
		a.err = a.summaryView.Err()
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward everything else to the active view.
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewTopics:
		a.topicsView, cmd = a.topicsView.Update(msg)
	case messages.ViewGroups:
		a.groupsView, cmd = a.groupsView.Update(msg)
	case messages.ViewSummary:
		a.summaryView, cmd = a.summaryView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewTopics:
		return a.topicsView.View()
	case messages.ViewGroups:
		return a.groupsView.View()
	case messages.ViewSummary:
		return a.summaryView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Search:
  (type)      Results update as you type
  tab, enter  Move to results
  /           Back to the query
  enter       Open the group summary

Topics:
  s           Toggle mentions / recent
  enter       Show groups, then open a summary

Summary:
  ↑/↓, PgUp/PgDn  Scroll
  g/G             Top / bottom

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error reported by a view.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.topicsView.SetDimensions(width, height)
	a.groupsView.SetDimensions(width, height)
	a.summaryView.SetDimensions(width, height)
}
