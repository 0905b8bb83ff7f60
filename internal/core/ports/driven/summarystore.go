package driven

import "context"

// SummaryStore looks up summary documents by file name.
type SummaryStore interface {
	// List returns the names of all available summary files.
	List(ctx context.Context) ([]string, error)

	// Read returns the text of a summary file.
	// Returns domain.ErrNotFound if the file does not exist.
	Read(ctx context.Context, name string) (string, error)
}
