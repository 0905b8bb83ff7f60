package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingTopicService is returned when the topic service is not provided.
var ErrMissingTopicService = errors.New("tui: topic service is required")

// ErrMissingGroupService is returned when the group service is not provided.
var ErrMissingGroupService = errors.New("tui: group service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
