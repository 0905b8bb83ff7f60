package domain

// TopicID is the stable key of a tracked topic, e.g. "paraguay-residency".
type TopicID string

// Topic is a named interest category defined by a keyword set.
type Topic struct {
	// ID is the stable key used in artifacts and URLs.
	ID TopicID `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Icon is a single glyph shown next to the name.
	Icon string `json:"icon"`

	// Color is a palette tag (red, blue, green, purple, orange).
	Color string `json:"color"`

	// Keywords are matched case-insensitively on word boundaries.
	// Entries may be multi-word phrases.
	Keywords []string `json:"keywords,omitempty"`
}

// Catalog is the ordered, immutable set of tracked topics.
// Order is significant: it is the tie-break order for every topic listing.
type Catalog []Topic

// Lookup returns the topic with the given ID.
func (c Catalog) Lookup(id TopicID) (Topic, bool) {
	for _, t := range c {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// Match is one located occurrence of a topic keyword in a text body.
type Match struct {
	// Keyword is the catalog keyword that matched.
	Keyword string `json:"keyword"`

	// Snippet is the original-case text surrounding the match.
	Snippet string `json:"snippet"`

	// Offset is the character (rune) offset of the match start.
	Offset int `json:"index"`
}

// TopicResult is a topic with its retained matches for a single document.
type TopicResult struct {
	Topic   Topic   `json:"topic"`
	Matches []Match `json:"matches"`
}

// GroupContribution is one group's share of an aggregated topic.
type GroupContribution struct {
	GroupID       string     `json:"groupId"`
	GroupName     string     `json:"groupName"`
	MatchCount    int        `json:"matchCount"`
	Matches       []Match    `json:"matches"`
	DateRange     *DateRange `json:"dateRange,omitempty"`
	LastTimestamp int64      `json:"lastTimestamp,omitempty"`
	LastUpdated   string     `json:"lastUpdated,omitempty"`
}

// AggregatedTopic is a topic merged across many groups.
//
// TotalMatches always equals the sum of the contributions' MatchCount, and
// LatestTimestamp is the maximum non-zero contribution timestamp (0 when none).
type AggregatedTopic struct {
	Topic           Topic               `json:"topic"`
	TotalMatches    int                 `json:"totalMatches"`
	LatestTimestamp int64               `json:"latestTimestamp"`
	Groups          []GroupContribution `json:"groups"`
}

// TopicSummary is the compact per-group topic entry written to the topic index.
type TopicSummary struct {
	ID         TopicID `json:"id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	Color      string  `json:"color"`
	MatchCount int     `json:"matchCount"`
}

// GroupTopics is the topic index entry for one group.
type GroupTopics struct {
	Topics        []TopicSummary `json:"topics"`
	DateRange     DateRange      `json:"dateRange"`
	LastTimestamp int64          `json:"lastTimestamp"`
	LastUpdated   string         `json:"lastUpdated"`
}

// TopicIndex maps a group ID to the topics found in its summary.
type TopicIndex map[string]GroupTopics
