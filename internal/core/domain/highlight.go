package domain

import "time"

// Highlight length bounds, in characters.
const (
	MinHighlightLength = 10
	MaxHighlightLength = 1000
)

// Highlight is a text excerpt the reader bookmarked from a summary.
type Highlight struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	GroupName string    `json:"groupName"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
