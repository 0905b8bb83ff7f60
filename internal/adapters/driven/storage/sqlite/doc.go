// Package sqlite provides SQLite-based implementations of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It covers two databases:
//
//   - MessageStore: read-only access to the collected chat messages
//   - HighlightStore: bookmarked excerpts, kept in the application's own database
//
// # Schema
//
// The application database schema is managed through versioned migrations stored
// in the migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files. The message database is never migrated or written.
//
// # Data Location
//
// By default, the application database is stored at ~/.chatdigest/data/chatdigest.db
package sqlite
