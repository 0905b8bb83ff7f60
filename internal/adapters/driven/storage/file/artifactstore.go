package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
)

// Artifact file names.
const (
	GroupsFile      = "groups.json"
	SearchIndexFile = "search-index.json"
	TopicIndexFile  = "topic-index.json"
	SummariesDir    = "summaries"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore writes JSON artifacts and summary copies under one directory.
// Files are replaced atomically so readers never see a partial write.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates the output directory and its summaries folder.
func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: output directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Join(dir, SummariesDir), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &ArtifactStore{dir: dir}, nil
}

// Dir returns the output directory.
func (s *ArtifactStore) Dir() string {
	return s.dir
}

// WriteSummary stores summaries/<groupID>.md.
func (s *ArtifactStore) WriteSummary(_ context.Context, groupID, text string) error {
	path, err := s.summaryPath(groupID)
	if err != nil {
		return err
	}
	return writeAtomic(path, []byte(text))
}

// WriteGroups replaces groups.json.
func (s *ArtifactStore) WriteGroups(_ context.Context, groups []domain.Group) error {
	if groups == nil {
		groups = []domain.Group{}
	}
	return s.writeJSON(GroupsFile, groups)
}

// WriteSearchIndex replaces search-index.json.
func (s *ArtifactStore) WriteSearchIndex(_ context.Context, sections []domain.SearchSection) error {
	if sections == nil {
		sections = []domain.SearchSection{}
	}
	return s.writeJSON(SearchIndexFile, sections)
}

// WriteTopicIndex replaces topic-index.json.
func (s *ArtifactStore) WriteTopicIndex(_ context.Context, index domain.TopicIndex) error {
	if index == nil {
		index = domain.TopicIndex{}
	}
	return s.writeJSON(TopicIndexFile, index)
}

// ReadSummary reads summaries/<groupID>.md.
func (s *ArtifactStore) ReadSummary(_ context.Context, groupID string) (string, error) {
	path, err := s.summaryPath(groupID)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("summary %s: %w", groupID, domain.ErrArtifactMissing)
	}
	if err != nil {
		return "", fmt.Errorf("reading summary %s: %w", groupID, err)
	}
	return string(content), nil
}

// ReadGroups reads groups.json.
func (s *ArtifactStore) ReadGroups(_ context.Context) ([]domain.Group, error) {
	var groups []domain.Group
	if err := s.readJSON(GroupsFile, &groups); err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []domain.Group{}
	}
	return groups, nil
}

// ReadSearchIndex reads search-index.json.
func (s *ArtifactStore) ReadSearchIndex(_ context.Context) ([]domain.SearchSection, error) {
	var sections []domain.SearchSection
	if err := s.readJSON(SearchIndexFile, &sections); err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []domain.SearchSection{}
	}
	return sections, nil
}

// ReadTopicIndex reads topic-index.json.
func (s *ArtifactStore) ReadTopicIndex(_ context.Context) (domain.TopicIndex, error) {
	index := domain.TopicIndex{}
	if err := s.readJSON(TopicIndexFile, &index); err != nil {
		return nil, err
	}
	return index, nil
}

// summaryPath rejects IDs that would escape the summaries directory.
func (s *ArtifactStore) summaryPath(groupID string) (string, error) {
	if groupID == "" || strings.ContainsAny(groupID, `/\`) || strings.Contains(groupID, "..") {
		return "", fmt.Errorf("%w: bad group id %q", domain.ErrInvalidInput, groupID)
	}
	return filepath.Join(s.dir, SummariesDir, groupID+".md"), nil
}

func (s *ArtifactStore) writeJSON(name string, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return writeAtomic(filepath.Join(s.dir, name), content)
}

func (s *ArtifactStore) readJSON(name string, v any) error {
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", name, domain.ErrArtifactMissing)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// writeAtomic writes to a temp file in the target directory and renames it
// into place.
func writeAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
