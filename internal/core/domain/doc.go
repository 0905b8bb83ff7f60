// Package domain defines the core business entities for chatdigest.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Topic / Catalog: tracked interest categories and their keywords
//   - Match / TopicResult / AggregatedTopic: keyword extraction output
//   - SearchSection / SearchResult: the flat search index and its hits
//   - Group / GroupStats: chat groups as read from the store and as published
//   - Highlight: a bookmarked excerpt
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
