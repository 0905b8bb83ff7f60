package mcp

import (
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search ranks summary sections against a query.
	Search driving.SearchService

	// Topics aggregates tracked topics across groups.
	Topics driving.TopicService

	// Groups lists groups and serves their summaries.
	Groups driving.GroupService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
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
