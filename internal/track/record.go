// Package track implements the growth-tracking analytics core: record
// normalization, time-window filtering, conversion/growth metrics, and
// chart event markers. All functions are pure over their inputs; the
// Repository type owns the in-memory snapshot of durable state.
package track

import (
	"math/rand"
	"sort"
	"time"

	"github.com/runnerr0/growthtrack/internal/storage"
)

// NewID mints an identifier for a record or content item: current unix
// milliseconds plus a small random suffix to keep ids unique within the
// same millisecond.
func NewID(now time.Time) int64 {
	return now.UnixMilli() + rand.Int63n(1000)
}

// Normalize returns a copy of records where every record carries a concrete
// marker flag: true iff the note is non-empty AND (the stored flag when
// present, true by default otherwise). Applied after every load from
// storage, before the data enters the rest of the pipeline. Storage itself
// may keep holding the un-normalized legacy shape until rewritten.
func Normalize(records []storage.Record) []storage.Record {
	out := make([]storage.Record, len(records))
	for i, r := range records {
		resolved := r.MarkerEnabled()
		r.NoteLineEnabled = &resolved
		out[i] = r
	}
	return out
}

// SortByTimestamp returns a copy of records sorted ascending by timestamp.
func SortByTimestamp(records []storage.Record) []storage.Record {
	sorted := make([]storage.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})
	return sorted
}
