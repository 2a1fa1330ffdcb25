package track

import (
	"fmt"
	"time"

	"github.com/runnerr0/growthtrack/internal/storage"
)

// RangeKind selects how a time window is resolved.
type RangeKind string

const (
	RangeToday  RangeKind = "today"
	Range7Days  RangeKind = "7d"
	Range30Days RangeKind = "30d"
	RangeCustom RangeKind = "custom"
)

// Range is the active time window used to filter records before display,
// metrics, and export. Start/End are only meaningful for RangeCustom and
// hold "YYYY-MM-DD" or "YYYY-MM-DD HH:MM" strings; an unparsable bound is
// treated as unbounded on that side, not as an error.
type Range struct {
	Kind  RangeKind
	Start string
	End   string
}

// ParseRangeKind validates a user-supplied range keyword.
func ParseRangeKind(s string) (RangeKind, error) {
	switch RangeKind(s) {
	case RangeToday, Range7Days, Range30Days, RangeCustom:
		return RangeKind(s), nil
	}
	return "", fmt.Errorf("unknown range %q (use today, 7d, 30d, or custom)", s)
}

// Bounds resolves the window to inclusive epoch-millisecond bounds relative
// to now. A zero lower bound means unbounded below; a zero upper bound means
// unbounded above (ok flags distinguish "no bound" from the epoch itself).
func (r Range) Bounds(now time.Time) (start, end int64, hasStart, hasEnd bool) {
	switch r.Kind {
	case RangeToday:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return midnight.UnixMilli(), now.UnixMilli(), true, true
	case Range7Days:
		return now.Add(-7 * 24 * time.Hour).UnixMilli(), now.UnixMilli(), true, true
	case Range30Days:
		return now.Add(-30 * 24 * time.Hour).UnixMilli(), now.UnixMilli(), true, true
	case RangeCustom:
		if t, ok := parseBound(r.Start, now.Location()); ok {
			start, hasStart = t.UnixMilli(), true
		}
		if t, ok := parseBound(r.End, now.Location()); ok {
			end, hasEnd = t.UnixMilli(), true
		}
		return start, end, hasStart, hasEnd
	}
	return 0, 0, false, false
}

// parseBound accepts a date or a date-with-time custom bound.
func parseBound(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{dateLayout, exportTsLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilterByRange returns the records whose timestamps fall inside the window,
// bounds inclusive. The input is not mutated; filtering an already-filtered
// set by the same range returns the same set.
func FilterByRange(records []storage.Record, r Range, now time.Time) []storage.Record {
	start, end, hasStart, hasEnd := r.Bounds(now)

	out := make([]storage.Record, 0, len(records))
	for _, rec := range records {
		if hasStart && rec.Timestamp < start {
			continue
		}
		if hasEnd && rec.Timestamp > end {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// RangeLabel renders the span covered by a time-ascending record window,
// used in report headers.
func RangeLabel(sorted []storage.Record) string {
	if len(sorted) == 0 {
		return "-"
	}
	first := sorted[0]
	last := sorted[len(sorted)-1]
	return DisplayTime(first.Timestamp) + " ~ " + DisplayTime(last.Timestamp)
}
