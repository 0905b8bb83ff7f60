// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
)

// SearchCompleted carries search results back to the model.
// Seq identifies the query that produced them so stale results from
// earlier keystrokes can be dropped.
type SearchCompleted struct {
	Seq     int
	Query   string
	Results []domain.SearchResult
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the live search view.
	ViewSearch
	// ViewTopics lists tracked topics across groups.
	ViewTopics
	// ViewGroups lists published groups.
	ViewGroups
	// ViewSummary shows one group's summary.
	ViewSummary
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewTopics:
		return "topics"
	case ViewGroups:
		return "groups"
	case ViewSummary:
		return "summary"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// GroupsLoaded carries the published groups.
type GroupsLoaded struct {
	Groups []domain.Group
	Err    error
}

// GroupSelected asks the app to open a group's summary.
// Back is the view to return to when the summary is closed.
type GroupSelected struct {
	GroupID string
	Back    ViewType
}

// SummaryLoaded carries one group's detail.
type SummaryLoaded struct {
	GroupID string
	Detail  *driving.GroupDetail
	Err     error
}

// TopicsLoaded carries aggregated topics in the requested order.
type TopicsLoaded struct {
	Order  string
	Topics []domain.AggregatedTopic
	Err    error
}
