package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
)

// Ensure SummaryStore implements the interface.
var _ driven.SummaryStore = (*SummaryStore)(nil)

// SummaryStore reads markdown summaries from a single directory.
type SummaryStore struct {
	dir string
}

// NewSummaryStore creates a summary store over dir.
func NewSummaryStore(dir string) *SummaryStore {
	return &SummaryStore{dir: dir}
}

// Dir returns the summaries directory.
func (s *SummaryStore) Dir() string {
	return s.dir
}

// List returns the .md files in the directory, sorted by name.
// A missing directory lists nothing.
func (s *SummaryStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing summaries: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the content of one summary file.
func (s *SummaryStore) Read(_ context.Context, name string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("summary %q: %w", name, domain.ErrNotFound)
	}
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("summary %s: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading summary %s: %w", name, err)
	}
	return string(content), nil
}
