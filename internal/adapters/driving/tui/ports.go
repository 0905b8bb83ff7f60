// Package tui provides an interactive terminal interface for browsing
// generated chat summaries.
package tui

import (
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
	"github.com/custodia-labs/chatdigest/internal/core/services"
)

// Ports holds the driving ports the TUI reads from.
type Ports struct {
	// Search scores summary sections against a query.
	Search driving.SearchService

	// Topics lists tracked topics across groups.
	Topics driving.TopicService

	// Groups lists published groups and loads their summaries.
	Groups driving.GroupService

	// Dates renders activity times. The zero value uses the local zone.
	Dates services.DateFormatter
}

// NewPorts creates a Ports struct with the given services.
func NewPorts(
	search driving.SearchService,
	topics driving.TopicService,
	groups driving.GroupService,
) *Ports {
	return &Ports{
		Search: search,
		Topics: topics,
		Groups: groups,
	}
}

// Validate checks that all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Topics == nil {
		return ErrMissingTopicService
	}
	if p.Groups == nil {
		return ErrMissingGroupService
	}
	return nil
}
