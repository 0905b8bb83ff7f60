// Package mcp provides an MCP (Model Context Protocol) server adapter for chatdigest.
// It lets AI assistants search the group summaries and browse tracked topics.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingTopicService is returned when the topic service is not provided.
	ErrMissingTopicService = errors.New("mcp: topic service is required")

	// ErrMissingGroupService is returned when the group service is not provided.
	ErrMissingGroupService = errors.New("mcp: group service is required")
)
