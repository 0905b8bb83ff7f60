package memory

import (
	"sync"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
)

// Ensure DisplayConfigStore implements the interface.
var _ driven.DisplayConfigStore = (*DisplayConfigStore)(nil)

// DisplayConfigStore is an in-memory implementation of driven.DisplayConfigStore for testing.
type DisplayConfigStore struct {
	mu  sync.RWMutex
	cfg domain.DisplayConfig
	err error
}

// NewDisplayConfigStore creates a store holding cfg.
func NewDisplayConfigStore(cfg domain.DisplayConfig) *DisplayConfigStore {
	return &DisplayConfigStore{cfg: cfg}
}

// SetError makes Load fail with err.
func (s *DisplayConfigStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Load returns the configuration.
func (s *DisplayConfigStore) Load() (domain.DisplayConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return domain.DisplayConfig{}, s.err
	}
	return s.cfg, nil
}

// Path returns a placeholder path.
func (s *DisplayConfigStore) Path() string {
	return "memory://groups.toml"
}
