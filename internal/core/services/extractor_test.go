package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

func testCatalog() domain.Catalog {
	return domain.Catalog{
		{ID: "alpha", Name: "Alpha", Icon: "A", Color: "red", Keywords: []string{"alpha", "beta"}},
		{ID: "gamma", Name: "Gamma", Icon: "G", Color: "blue", Keywords: []string{"gamma", "us llc"}},
	}
}

func TestNewExtractor_Defaults(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})
	assert.Equal(t, DefaultExtractOptions(), e.Options())
	assert.Equal(t, testCatalog(), e.Catalog())
}

func TestNewExtractor_SkipsEmptyKeywords(t *testing.T) {
	catalog := domain.Catalog{{ID: "t", Keywords: []string{"", "  ", "word"}}}
	e := NewExtractor(catalog, ExtractOptions{})

	found := e.Extract("a word here")
	require.Contains(t, found, domain.TopicID("t"))
	assert.Len(t, found["t"].Matches, 1)
}

func TestExtract_ParaguayText(t *testing.T) {
	e := NewExtractor(domain.DefaultCatalog(), DefaultExtractOptions())
	text := "We discussed Paraguay residency options." +
		strings.Repeat(" filler", 30) +
		" Anyone moved to Paraguay recently?"

	found := e.Extract(text)
	result, ok := found["paraguay-residency"]
	require.True(t, ok)
	require.GreaterOrEqual(t, len(result.Matches), 2)

	for _, m := range result.Matches {
		assert.Equal(t, "paraguay", m.Keyword)
		assert.Contains(t, m.Snippet, "Paraguay")
	}
}

func TestExtract_EmptyText(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})
	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.ExtractOrdered(""))
}

func TestExtract_NoMatchesOmitsTopic(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})
	found := e.Extract("alpha only")
	assert.Contains(t, found, domain.TopicID("alpha"))
	assert.NotContains(t, found, domain.TopicID("gamma"))
}

func TestExtract_WordBoundaries(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})
	assert.Empty(t, e.Extract("alphabet betamax"))

	found := e.Extract("Set up a US LLC today")
	require.Contains(t, found, domain.TopicID("gamma"))
	assert.Equal(t, "us llc", found["gamma"].Matches[0].Keyword)
	assert.Equal(t, 9, found["gamma"].Matches[0].Offset)
}

func TestExtract_CaseInsensitive(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})
	found := e.Extract("ALPHA")
	require.Contains(t, found, domain.TopicID("alpha"))
	assert.Equal(t, "ALPHA", found["alpha"].Matches[0].Snippet)
}

func TestExtract_ProximityDedup(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})

	// beta sits 6 characters after alpha and collapses into it.
	near := e.Extract("alpha beta")
	require.Len(t, near["alpha"].Matches, 1)
	assert.Equal(t, "alpha", near["alpha"].Matches[0].Keyword)

	far := e.Extract("alpha " + strings.Repeat("y", 60) + " alpha")
	require.Len(t, far["alpha"].Matches, 2)
	assert.Equal(t, 0, far["alpha"].Matches[0].Offset)
	assert.Equal(t, 67, far["alpha"].Matches[1].Offset)
}

func TestExtract_DedupAcrossKeywordsKeepsKeywordOrder(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})

	// beta precedes alpha in the text, but alpha is scanned first.
	found := e.Extract("beta alpha")
	require.Len(t, found["alpha"].Matches, 1)
	assert.Equal(t, "alpha", found["alpha"].Matches[0].Keyword)
	assert.Equal(t, 5, found["alpha"].Matches[0].Offset)
}

func TestExtract_MaxMatchesCap(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})
	parts := make([]string, 10)
	for i := range parts {
		parts[i] = "alpha"
	}
	text := strings.Join(parts, strings.Repeat(" ", 60))

	found := e.Extract(text)
	assert.Len(t, found["alpha"].Matches, 5)
	assert.Equal(t, 10, e.Count(text)["alpha"])
}

func TestExtract_CustomOptions(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{SnippetWindow: 3, ProximityThreshold: 2, MaxMatches: 1})

	found := e.Extract("xxxxx alpha beta yyyyy")
	require.Len(t, found["alpha"].Matches, 1)
	assert.Equal(t, "...xx alpha be...", found["alpha"].Matches[0].Snippet)
}

func TestExtract_SnippetMarkers(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})
	text := strings.Repeat("a ", 100) + "Alpha" + strings.Repeat(" b", 100)

	m := e.Extract(text)["alpha"].Matches
	require.Len(t, m, 1)
	assert.Equal(t, 200, m[0].Offset)
	assert.True(t, strings.HasPrefix(m[0].Snippet, "..."))
	assert.True(t, strings.HasSuffix(m[0].Snippet, "..."))
	assert.Contains(t, m[0].Snippet, "Alpha")

	short := e.Extract("  Alpha here  ")["alpha"].Matches
	require.Len(t, short, 1)
	assert.Equal(t, "Alpha here", short[0].Snippet)
}

func TestExtract_RuneOffsets(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})
	found := e.Extract("ÄÖÜ alpha")
	require.Contains(t, found, domain.TopicID("alpha"))
	assert.Equal(t, 4, found["alpha"].Matches[0].Offset)
	assert.Equal(t, "ÄÖÜ alpha", found["alpha"].Matches[0].Snippet)
}

func TestExtractOrdered_CatalogOrder(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})
	results := e.ExtractOrdered("gamma first, then alpha")
	require.Len(t, results, 2)
	assert.Equal(t, domain.TopicID("alpha"), results[0].Topic.ID)
	assert.Equal(t, domain.TopicID("gamma"), results[1].Topic.ID)
}

func TestCount_RawOccurrences(t *testing.T) {
	e := NewExtractor(testCatalog(), ExtractOptions{})
	counts := e.Count("alpha alpha beta gamma")
	assert.Equal(t, 3, counts["alpha"])
	assert.Equal(t, 1, counts["gamma"])
	assert.Empty(t, e.Count(""))
}

func TestCount_PrefixAnchored(t *testing.T) {
	catalog := domain.Catalog{{ID: "tax", Keywords: []string{"tax"}}}
	e := NewExtractor(catalog, ExtractOptions{})
	text := "tax taxes taxation syntax"

	assert.Equal(t, 3, e.Count(text)["tax"])

	found := e.Extract(text)
	require.Contains(t, found, domain.TopicID("tax"))
	require.Len(t, found["tax"].Matches, 1)
	assert.Equal(t, 0, found["tax"].Matches[0].Offset)
}

func TestExtract_CloseKeywordsCollapse(t *testing.T) {
	e := NewExtractor(domain.DefaultCatalog(), DefaultExtractOptions())
	text := "We discussed the Paraguay cedula process and residencia rules."

	result, ok := e.Extract(text)["paraguay-residency"]
	require.True(t, ok)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "paraguay", result.Matches[0].Keyword)
	assert.Equal(t, 17, result.Matches[0].Offset)
	assert.Contains(t, result.Matches[0].Snippet, "Paraguay")
}
