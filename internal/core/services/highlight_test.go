package services

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

func TestHighlight_MarksEveryOccurrence(t *testing.T) {
	got := Highlight("Wise and wise", []string{"wise"})
	assert.Equal(t, []domain.Segment{
		{Text: "Wise", Matched: true},
		{Text: " and "},
		{Text: "wise", Matched: true},
	}, got)
}

func TestHighlight_NoTerms(t *testing.T) {
	assert.Equal(t, []domain.Segment{{Text: "plain"}}, Highlight("plain", nil))
	assert.Nil(t, Highlight("", []string{"x"}))
}

func TestHighlight_OverlapPrefersLongest(t *testing.T) {
	got := Highlight("taxes due", []string{"tax", "taxes"})
	assert.Equal(t, []domain.Segment{
		{Text: "taxes", Matched: true},
		{Text: " due"},
	}, got)
}

func TestHighlight_LiteralSpecialCharacters(t *testing.T) {
	got := Highlight("I like c++ a lot", []string{"c++"})
	assert.Equal(t, []domain.Segment{
		{Text: "I like "},
		{Text: "c++", Matched: true},
		{Text: " a lot"},
	}, got)
}

func TestHighlight_CompileFailureSkipsTerm(t *testing.T) {
	orig := compileTerm
	t.Cleanup(func() { compileTerm = orig })
	compileTerm = func(term string) (*regexp.Regexp, error) {
		if term == "broken" {
			return nil, errors.New("boom")
		}
		return orig(term)
	}

	got := Highlight("broken but fine", []string{"broken", "fine"})
	assert.Equal(t, []domain.Segment{
		{Text: "broken but "},
		{Text: "fine", Matched: true},
	}, got)
}
