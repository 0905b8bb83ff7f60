package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Scoring weights and windows.
const (
	TitleWeight          = 10
	DefaultSearchLimit   = 20
	DefaultSearchWindow  = 80
	DefaultFallbackChars = 200
)

// Searcher scores a flat section index against free-text queries.
// It holds no state between calls and is safe for concurrent use.
type Searcher struct {
	// Window is the number of characters kept on each side of a snippet term.
	Window int

	// FallbackChars is the snippet length used when no term hits the body.
	FallbackChars int
}

// NewSearcher creates a searcher with the default snippet settings.
func NewSearcher() *Searcher {
	return &Searcher{Window: DefaultSearchWindow, FallbackChars: DefaultFallbackChars}
}

// Tokenize lowercases a query, splits it on whitespace and drops one-character tokens.
func Tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			terms = append(terms, f)
		}
	}
	return terms
}

// Search scores every section and returns the best hits, highest score first.
// Ties keep index order. An empty query or index yields an empty slice.
func (s *Searcher) Search(query string, index []domain.SearchSection, opts domain.SearchOptions) []domain.SearchResult {
	results := []domain.SearchResult{}
	if strings.TrimSpace(query) == "" || len(index) == 0 {
		return results
	}

	terms := Tokenize(query)
	if len(terms) == 0 {
		return results
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var groupFilter map[string]bool
	if len(opts.GroupIDs) > 0 {
		groupFilter = make(map[string]bool, len(opts.GroupIDs))
		for _, id := range opts.GroupIDs {
			groupFilter[id] = true
		}
	}

	for i := range index {
		section := &index[i]
		if groupFilter != nil && !groupFilter[section.GroupID] {
			continue
		}
		if r, ok := s.score(section, terms); ok {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (s *Searcher) score(section *domain.SearchSection, terms []string) (domain.SearchResult, bool) {
	titleLower := strings.ToLower(section.Title)
	contentLower := strings.ToLower(section.Content)

	score := 0
	var matched []string
	seen := make(map[string]bool, len(terms))
	mark := func(term string) {
		if !seen[term] {
			seen[term] = true
			matched = append(matched, term)
		}
	}

	for _, term := range terms {
		if strings.Contains(titleLower, term) {
			score += TitleWeight
			mark(term)
		}
		if n := strings.Count(contentLower, term); n > 0 {
			score += n
			mark(term)
		}
	}

	if score == 0 {
		return domain.SearchResult{}, false
	}

	return domain.SearchResult{
		SearchSection: *section,
		Score:         score,
		MatchedTerms:  matched,
		Snippet:       s.snippet(section.Content, contentLower, terms),
	}, true
}

// snippet centres on the first query term present in the body, falling back
// to the opening characters of the body.
func (s *Searcher) snippet(content, contentLower string, terms []string) string {
	window := s.Window
	if window <= 0 {
		window = DefaultSearchWindow
	}

	for _, term := range terms {
		idx := strings.Index(contentLower, term)
		if idx == -1 {
			continue
		}
		runes := []rune(content)
		offset := utf8.RuneCountInString(contentLower[:idx])
		return snippet(runes, offset, utf8.RuneCountInString(term), window, false)
	}

	n := s.FallbackChars
	if n <= 0 {
		n = DefaultFallbackChars
	}
	runes := []rune(content)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

// SearchService answers queries against the generated search index.
type SearchService struct {
	artifacts driven.ArtifactStore
	searcher  *Searcher
}

// NewSearchService creates a search service over the given artifact store.
func NewSearchService(artifacts driven.ArtifactStore, searcher *Searcher) *SearchService {
	if searcher == nil {
		searcher = NewSearcher()
	}
	return &SearchService{artifacts: artifacts, searcher: searcher}
}

// Search loads the current index and scores it. A missing index is an empty
// result, not an error.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	index, err := s.artifacts.ReadSearchIndex(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrArtifactMissing) {
			logger.Debug("No search index generated yet")
			return []domain.SearchResult{}, nil
		}
		return nil, fmt.Errorf("load search index: %w", err)
	}
	logger.Debug("Index sections: %d", len(index))

	results := s.searcher.Search(query, index, opts)
	logger.Info("Final results: %d", len(results))
	return results, nil
}

// Index returns the sections of the current search index.
func (s *SearchService) Index(ctx context.Context) ([]domain.SearchSection, error) {
	index, err := s.artifacts.ReadSearchIndex(ctx)
	if errors.Is(err, domain.ErrArtifactMissing) {
		return []domain.SearchSection{}, nil
	}
	return index, err
}
