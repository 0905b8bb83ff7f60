package services

import (
	"regexp"
	"sort"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

// compileTerm builds a case-insensitive literal pattern for one term.
// It is a variable so tests can inject compile failures.
var compileTerm = func(term string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
}

// Highlight splits text into segments, marking every case-insensitive
// occurrence of the given terms. A term whose pattern cannot be built is
// skipped; the remaining terms are still highlighted.
func Highlight(text string, terms []string) []domain.Segment {
	if text == "" {
		return nil
	}

	type span struct{ start, end int }
	var spans []span
	for _, term := range terms {
		if term == "" {
			continue
		}
		re, err := compileTerm(term)
		if err != nil {
			logger.Debug("highlight: skipping term %q: %v", term, err)
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{loc[0], loc[1]})
		}
	}

	if len(spans) == 0 {
		return []domain.Segment{{Text: text}}
	}

	// Earliest first; at the same start the longer term wins.
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var segments []domain.Segment
	cursor := 0
	for _, sp := range spans {
		if sp.start < cursor {
			continue
		}
		if sp.start > cursor {
			segments = append(segments, domain.Segment{Text: text[cursor:sp.start]})
		}
		segments = append(segments, domain.Segment{Text: text[sp.start:sp.end], Matched: true})
		cursor = sp.end
	}
	if cursor < len(text) {
		segments = append(segments, domain.Segment{Text: text[cursor:]})
	}
	return segments
}
