package driven

import "github.com/custodia-labs/chatdigest/internal/core/domain"

// DisplayConfigStore provides per-group display overrides.
// Implementations handle persistence (e.g., TOML files).
type DisplayConfigStore interface {
	// Load reads the display configuration.
	// A missing file yields an empty configuration, not an error.
	Load() (domain.DisplayConfig, error)

	// Path returns the configuration file path.
	Path() string
}
