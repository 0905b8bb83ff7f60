package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
)

// DefaultDisplayFile is the group display configuration file name.
const DefaultDisplayFile = "groups.toml"

// Ensure DisplayConfigStore implements the interface.
var _ driven.DisplayConfigStore = (*DisplayConfigStore)(nil)

// DisplayConfigStore is a file-based implementation of driven.DisplayConfigStore using TOML.
//
// Example:
//
//	restrict = true
//
//	[groups."global opportunists"]
//	display_name = "Global Opportunists"
//	summary_file = "summary_global_opportunists.md"
type DisplayConfigStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewDisplayConfigStore creates a store reading the given file.
// If path is empty, defaults to ~/.chatdigest/groups.toml.
func NewDisplayConfigStore(path string) (*DisplayConfigStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".chatdigest", DefaultDisplayFile)
	}
	return &DisplayConfigStore{filePath: path}, nil
}

// Load reads the display configuration. A missing file is an empty
// configuration. Every group key is also registered lowercased so that name
// lookups ignore case.
func (s *DisplayConfigStore) Load() (domain.DisplayConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return domain.DisplayConfig{Groups: map[string]domain.GroupOverride{}}, nil
	}
	if err != nil {
		return domain.DisplayConfig{}, fmt.Errorf("reading %s: %w", s.filePath, err)
	}

	var cfg domain.DisplayConfig
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return domain.DisplayConfig{}, fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	groups := make(map[string]domain.GroupOverride, len(cfg.Groups)*2)
	for key, o := range cfg.Groups {
		groups[key] = o
		if lower := strings.ToLower(key); lower != key {
			if _, exists := cfg.Groups[lower]; !exists {
				groups[lower] = o
			}
		}
	}
	cfg.Groups = groups
	return cfg, nil
}

// Save writes the configuration, creating the parent directory if needed.
func (s *DisplayConfigStore) Save(cfg domain.DisplayConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return err
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding display config: %w", err)
	}

	return os.WriteFile(s.filePath, content, 0600)
}

// Path returns the configuration file path.
func (s *DisplayConfigStore) Path() string {
	return s.filePath
}
