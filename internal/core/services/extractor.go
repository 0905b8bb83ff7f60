package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

// ExtractOptions tunes the match extractor.
type ExtractOptions struct {
	// SnippetWindow is the number of characters kept on each side of a match.
	SnippetWindow int

	// ProximityThreshold collapses matches of one topic whose offsets are
	// closer than this many characters.
	ProximityThreshold int

	// MaxMatches caps the retained matches per topic and document.
	MaxMatches int
}

// DefaultExtractOptions returns the stock extractor settings.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		SnippetWindow:      100,
		ProximityThreshold: 50,
		MaxMatches:         5,
	}
}

type keywordPattern struct {
	keyword string
	re      *regexp.Regexp

	// prefix anchors only the start of the keyword; Count uses it.
	prefix *regexp.Regexp
}

type topicPatterns struct {
	topic    domain.Topic
	keywords []keywordPattern
}

// rawMatch is a keyword hit located in the lowercased text.
type rawMatch struct {
	keyword string
	offset  int // rune offset
	length  int // rune length
}

// Extractor finds catalog keywords in text bodies.
// It is immutable after construction and safe for concurrent use.
type Extractor struct {
	opts   ExtractOptions
	topics []topicPatterns
}

// NewExtractor compiles the catalog's keywords into word-boundary patterns.
// Zero-valued options fall back to DefaultExtractOptions.
func NewExtractor(catalog domain.Catalog, opts ExtractOptions) *Extractor {
	defaults := DefaultExtractOptions()
	if opts.SnippetWindow <= 0 {
		opts.SnippetWindow = defaults.SnippetWindow
	}
	if opts.ProximityThreshold <= 0 {
		opts.ProximityThreshold = defaults.ProximityThreshold
	}
	if opts.MaxMatches <= 0 {
		opts.MaxMatches = defaults.MaxMatches
	}

	e := &Extractor{opts: opts, topics: make([]topicPatterns, 0, len(catalog))}
	for _, topic := range catalog {
		tp := topicPatterns{topic: topic}
		for _, kw := range topic.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			quoted := regexp.QuoteMeta(kw)
			re, err := regexp.Compile(`\b` + quoted + `\b`)
			if err != nil {
				logger.Warn("topic %s: skipping keyword %q: %v", topic.ID, kw, err)
				continue
			}
			prefix, err := regexp.Compile(`\b` + quoted)
			if err != nil {
				logger.Warn("topic %s: skipping keyword %q: %v", topic.ID, kw, err)
				continue
			}
			tp.keywords = append(tp.keywords, keywordPattern{keyword: kw, re: re, prefix: prefix})
		}
		e.topics = append(e.topics, tp)
	}
	return e
}

// Options returns the effective extractor settings.
func (e *Extractor) Options() ExtractOptions {
	return e.opts
}

// Catalog returns the topics the extractor was built from, in catalog order.
func (e *Extractor) Catalog() domain.Catalog {
	catalog := make(domain.Catalog, len(e.topics))
	for i, tp := range e.topics {
		catalog[i] = tp.topic
	}
	return catalog
}

// Extract returns the retained matches of every topic found in text, keyed by
// topic ID. Topics without matches are absent.
func (e *Extractor) Extract(text string) map[domain.TopicID]domain.TopicResult {
	results := e.ExtractOrdered(text)
	found := make(map[domain.TopicID]domain.TopicResult, len(results))
	for _, r := range results {
		found[r.Topic.ID] = r
	}
	return found
}

// ExtractOrdered is Extract with results in catalog order.
func (e *Extractor) ExtractOrdered(text string) []domain.TopicResult {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	runes := []rune(text)

	var results []domain.TopicResult
	for _, tp := range e.topics {
		raw := scanTopic(tp, lower)
		if len(raw) == 0 {
			continue
		}

		kept := dedupe(raw, e.opts.ProximityThreshold)
		if len(kept) > e.opts.MaxMatches {
			kept = kept[:e.opts.MaxMatches]
		}

		matches := make([]domain.Match, len(kept))
		for i, m := range kept {
			matches[i] = domain.Match{
				Keyword: m.keyword,
				Snippet: snippet(runes, m.offset, m.length, e.opts.SnippetWindow, true),
				Offset:  m.offset,
			}
		}
		results = append(results, domain.TopicResult{Topic: tp.topic, Matches: matches})
	}
	return results
}

// Count returns the raw number of keyword occurrences per topic, before
// deduplication or capping. Only the start of a keyword must fall on a word
// boundary, so "tax" also counts inside "taxes". Topics with no occurrences
// are absent.
func (e *Extractor) Count(text string) map[domain.TopicID]int {
	counts := make(map[domain.TopicID]int)
	if text == "" {
		return counts
	}

	lower := strings.ToLower(text)
	for _, tp := range e.topics {
		n := 0
		for _, kp := range tp.keywords {
			n += len(kp.prefix.FindAllStringIndex(lower, -1))
		}
		if n > 0 {
			counts[tp.topic.ID] = n
		}
	}
	return counts
}

// scanTopic collects every keyword hit for a topic, keyword by keyword.
// Byte positions in lower are converted to rune offsets; strings.ToLower maps
// rune for rune, so the offsets index the original text too.
func scanTopic(tp topicPatterns, lower string) []rawMatch {
	var raw []rawMatch
	for _, kp := range tp.keywords {
		locs := kp.re.FindAllStringIndex(lower, -1)
		byteCursor, runeCursor := 0, 0
		for _, loc := range locs {
			runeCursor += utf8.RuneCountInString(lower[byteCursor:loc[0]])
			byteCursor = loc[0]
			raw = append(raw, rawMatch{
				keyword: kp.keyword,
				offset:  runeCursor,
				length:  utf8.RuneCountInString(lower[loc[0]:loc[1]]),
			})
		}
	}
	return raw
}

// dedupe keeps a match only if no already kept match lies within threshold.
func dedupe(raw []rawMatch, threshold int) []rawMatch {
	kept := make([]rawMatch, 0, len(raw))
	for _, m := range raw {
		dup := false
		for _, k := range kept {
			if abs(k.offset-m.offset) < threshold {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, m)
		}
	}
	return kept
}

// snippet cuts window characters around runes[offset:offset+length] and marks
// clipped ends with "...".
func snippet(runes []rune, offset, length, window int, trim bool) string {
	start := offset - window
	if start < 0 {
		start = 0
	}
	end := offset + length + window
	if end > len(runes) {
		end = len(runes)
	}

	s := string(runes[start:end])
	if trim {
		s = strings.TrimSpace(s)
	}
	if start > 0 {
		s = "..." + s
	}
	if end < len(runes) {
		s += "..."
	}
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
