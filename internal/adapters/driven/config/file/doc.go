// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - DisplayConfigStore: TOML-based per-group display overrides
package file
