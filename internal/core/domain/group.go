package domain

// GroupStats is the per-group snapshot read from the message store.
// Timestamps are epoch milliseconds.
type GroupStats struct {
	ID             string
	Name           string
	MessageCount   int
	FirstTimestamp int64
	LastTimestamp  int64
}

// DateRange is the formatted activity window of a group.
type DateRange struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	StartTimestamp int64  `json:"startTimestamp"`
	EndTimestamp   int64  `json:"endTimestamp"`
}

// Group is a chat group as published to the viewer.
type Group struct {
	// ID is the hex encoding of OriginalID, safe for filenames and URLs.
	ID string `json:"id"`

	// OriginalID is the identifier stored in the message database.
	OriginalID string `json:"originalId"`

	Name            string    `json:"name"`
	Description     string    `json:"description"`
	MessageCount    int       `json:"messageCount"`
	LastUpdated     string    `json:"lastUpdated"`
	LastUpdatedFull string    `json:"lastUpdatedFull"`
	LastTimestamp   int64     `json:"lastTimestamp"`
	FirstTimestamp  int64     `json:"firstTimestamp"`
	DateRange       DateRange `json:"dateRange"`
	HasSummary      bool      `json:"hasSummary"`

	// SummaryFile is the source file name the summary was read from, if any.
	SummaryFile string `json:"summaryFile,omitempty"`
}

// GroupOverride holds optional display settings for one group.
type GroupOverride struct {
	DisplayName string `toml:"display_name"`
	Description string `toml:"description"`
	SummaryFile string `toml:"summary_file"`
	OutputFile  string `toml:"output_file"`
}

// DisplayConfig holds per-group display overrides keyed by group ID or by
// lowercased group name.
type DisplayConfig struct {
	// Restrict publishes only groups that have an override entry.
	Restrict bool `toml:"restrict"`

	Groups map[string]GroupOverride `toml:"groups"`
}

// Override returns the override for a group, preferring an ID match over a
// lowercased-name match.
func (c DisplayConfig) Override(id, lowerName string) (GroupOverride, bool) {
	if o, ok := c.Groups[id]; ok {
		return o, true
	}
	if lowerName == "" {
		return GroupOverride{}, false
	}
	o, ok := c.Groups[lowerName]
	return o, ok
}

// SummaryDocument is a group's summary text handed to the indexing pipeline.
type SummaryDocument struct {
	GroupID       string
	GroupName     string
	Text          string
	DateRange     *DateRange
	LastTimestamp int64
	LastUpdated   string
}

// GenerationReport summarises one generation run.
type GenerationReport struct {
	// Groups is the number of published groups.
	Groups int

	// WithSummary is the number of groups that have a summary.
	WithSummary int

	// Sections is the size of the flat search index.
	Sections int

	// TopicGroups is the number of groups present in the topic index.
	TopicGroups int

	// Skipped lists summary files that could not be read or copied.
	Skipped []string
}
