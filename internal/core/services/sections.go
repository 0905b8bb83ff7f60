package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// OverviewTitle labels the untitled lead section of a summary.
const OverviewTitle = "Overview"

var (
	// Summaries open every top-level section with a bold level-2 heading.
	sectionMarker = regexp.MustCompile(`(?m)^## \*\*`)

	headingPattern = regexp.MustCompile(`(?m)^##\s+\*\*(.+?)\*\*|^##\s+(.+?)$`)
	nonSlugRun     = regexp.MustCompile(`[^a-z0-9]+`)
)

// BuildIndex splits every summary into titled sections for the flat search
// index. Section order within a document and document order are preserved.
func BuildIndex(docs []domain.SummaryDocument) []domain.SearchSection {
	var index []domain.SearchSection
	for i := range docs {
		index = append(index, SplitSections(docs[i].GroupID, docs[i].GroupName, docs[i].Text)...)
	}
	return index
}

// SplitSections cuts one summary at its section markers. Sections with an
// empty body are dropped.
func SplitSections(groupID, groupName, text string) []domain.SearchSection {
	parts := sectionMarker.Split(text, -1)

	var sections []domain.SearchSection
	for idx, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}

		title, body := splitTitle(idx, part)
		if body == "" {
			continue
		}

		sections = append(sections, domain.SearchSection{
			GroupID:   groupID,
			GroupName: groupName,
			Title:     title,
			Content:   body,
		})
	}
	return sections
}

// splitTitle separates the heading line from the body. The lead part only
// carries a title when it opens with a markdown heading; otherwise all of it
// is body text under OverviewTitle.
func splitTitle(idx int, part string) (string, string) {
	first, rest, _ := strings.Cut(part, "\n")

	if idx == 0 && !strings.HasPrefix(strings.TrimSpace(first), "#") {
		return OverviewTitle, strings.TrimSpace(part)
	}

	title := stripHeadingMarkup(first)
	if title == "" {
		title = OverviewTitle
	}
	return title, strings.TrimSpace(rest)
}

func stripHeadingMarkup(line string) string {
	line = strings.ReplaceAll(line, "**", "")
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "#")
	return strings.TrimSpace(line)
}

// Headings extracts the level-2 headings of a summary for a table of contents.
func Headings(text string) []domain.Heading {
	var headings []domain.Heading
	for _, m := range headingPattern.FindAllStringSubmatch(text, -1) {
		heading := m[1]
		if heading == "" {
			heading = m[2]
		}
		heading = strings.TrimSpace(heading)
		if heading == "" {
			continue
		}
		headings = append(headings, domain.Heading{ID: Slug(heading), Text: heading})
	}
	return headings
}

// Slug converts heading text to a URL fragment: lowercase, runs of
// non-alphanumerics collapsed to "-", no leading or trailing dash.
func Slug(text string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}
