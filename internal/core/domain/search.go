package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means the default (20).
	Limit int

	// GroupIDs filters results to specific groups.
	GroupIDs []string
}

// SearchSection is one row of the flat search index.
type SearchSection struct {
	// GroupID is the owning group's safe (hex) identifier.
	GroupID string `json:"groupId"`

	// GroupName is the group's display name.
	GroupName string `json:"groupName"`

	// Title is the heading of the section, or "Overview" for the lead section.
	Title string `json:"title"`

	// Content is the section body without its title line.
	Content string `json:"content"`
}

// SearchResult represents a single scored search hit.
type SearchResult struct {
	SearchSection

	// Score is the linear relevance score.
	Score int `json:"score"`

	// MatchedTerms are the distinct query terms that contributed to Score.
	MatchedTerms []string `json:"matchedTerms"`

	// Snippet is a representative excerpt of the section body.
	Snippet string `json:"snippet"`
}

// Heading is a table-of-contents entry extracted from a summary.
type Heading struct {
	// ID is the URL fragment slug.
	ID string `json:"id"`

	// Text is the heading text without markup.
	Text string `json:"text"`
}

// Segment is a piece of text that is either a highlighted term or plain text.
type Segment struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}
