package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
)

// MessageStore reads group statistics from the chat message database.
// The database is opened read-only.
type MessageStore struct {
	db   *sql.DB
	path string
}

var _ driven.MessageStore = (*MessageStore)(nil)

// groupStatsQuery lists one row per group, most recently active first.
const groupStatsQuery = `
	SELECT
		groupId,
		groupName,
		COUNT(*),
		MIN(timestamp),
		MAX(timestamp)
	FROM messages
	WHERE groupId IS NOT NULL
	GROUP BY groupId
	ORDER BY MAX(timestamp) DESC
`

// OpenMessageStore opens the message database at path.
// A missing or unreadable database yields domain.ErrStoreUnavailable.
func OpenMessageStore(ctx context.Context, path string) (*MessageStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, path, err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrStoreUnavailable, path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, path, err)
	}

	return &MessageStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *MessageStore) Path() string {
	return s.path
}

// GroupStats returns per-group message counts and activity timestamps.
func (s *MessageStore) GroupStats(ctx context.Context) ([]domain.GroupStats, error) {
	rows, err := s.db.QueryContext(ctx, groupStatsQuery)
	if err != nil {
		return nil, fmt.Errorf("querying group stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.GroupStats //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			st          domain.GroupStats
			name        sql.NullString
			first, last sql.NullInt64
		)
		if err := rows.Scan(&st.ID, &name, &st.MessageCount, &first, &last); err != nil {
			return nil, fmt.Errorf("scanning group stats: %w", err)
		}
		st.Name = name.String
		st.FirstTimestamp = first.Int64
		st.LastTimestamp = last.Int64
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating group stats: %w", err)
	}

	return stats, nil
}

// Close closes the database connection.
func (s *MessageStore) Close() error {
	return s.db.Close()
}
