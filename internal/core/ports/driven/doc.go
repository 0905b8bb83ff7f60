// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - MessageStore: Read-only per-group statistics from the message database
//   - SummaryStore: Lookup of AI-written summary documents
//   - ArtifactStore: Generated viewer artifacts (groups, search index, topic index)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DisplayConfigStore: Per-group display overrides. Without it, defaults apply.
//   - HighlightStore: Bookmarked excerpts. Without it, highlight commands are disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
