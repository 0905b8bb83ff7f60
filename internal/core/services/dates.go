package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

// Display layouts for epoch-millisecond timestamps.
const (
	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006, 3:04 PM"
	shortLayout    = "Jan 2"
)

// DateFormatter renders timestamps in a fixed location.
type DateFormatter struct {
	loc *time.Location
}

// NewDateFormatter creates a formatter; a nil location means time.Local.
func NewDateFormatter(loc *time.Location) DateFormatter {
	if loc == nil {
		loc = time.Local
	}
	return DateFormatter{loc: loc}
}

func (f DateFormatter) format(ms int64, layout string) string {
	if ms <= 0 {
		return ""
	}
	loc := f.loc
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc).Format(layout)
}

// Date formats as "Oct 14, 2026".
func (f DateFormatter) Date(ms int64) string { return f.format(ms, dateLayout) }

// DateTime formats as "Oct 14, 2026, 3:04 PM".
func (f DateFormatter) DateTime(ms int64) string { return f.format(ms, dateTimeLayout) }

// Range builds a DateRange from first and last timestamps.
func (f DateFormatter) Range(first, last int64) domain.DateRange {
	return domain.DateRange{
		Start:          f.Date(first),
		End:            f.Date(last),
		StartTimestamp: first,
		EndTimestamp:   last,
	}
}

// ShortRange renders a range as "Oct 2 - Oct 14", or a single day when both
// ends fall on the same day.
func (f DateFormatter) ShortRange(r *domain.DateRange) string {
	if r == nil {
		return ""
	}
	start := f.format(r.StartTimestamp, shortLayout)
	end := f.format(r.EndTimestamp, shortLayout)
	switch {
	case start == "":
		return end
	case end == "" || start == end:
		return start
	default:
		return start + " - " + end
	}
}

// relativeDays is the age past which Relative falls back to DateTime.
const relativeDays = 7

// Relative renders ms relative to now: "just now", "5 minutes ago",
// "1 hour ago", "3 days ago". Ages beyond seven whole days, counted down,
// use DateTime instead. Future timestamps read as "just now".
func (f DateFormatter) Relative(ms int64, now time.Time) string {
	if ms <= 0 {
		return ""
	}

	seconds := (now.UnixMilli() - ms) / 1000
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > relativeDays:
		return f.DateTime(ms)
	case days > 0:
		return ago(days, "day")
	case hours > 0:
		return ago(hours, "hour")
	case minutes > 0:
		return ago(minutes, "minute")
	default:
		return "just now"
	}
}

func ago(n int64, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
