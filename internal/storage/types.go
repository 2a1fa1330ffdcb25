package storage

import "strings"

// Record is a single timestamped engagement data point: the follower count
// on the primary channel (threads), optionally the count on the secondary
// channel (line), and a free-text note.
type Record struct {
	ID        int64
	Timestamp int64 // epoch milliseconds; sort key
	Threads   int64
	Line      *int64 // nil means "not tracked at this point", distinct from zero
	Note      string
	// NoteLineEnabled is the raw stored marker flag. Legacy rows may not
	// carry it (nil); track.Normalize resolves it to a concrete value
	// before the record enters the rest of the pipeline.
	NoteLineEnabled *bool
	CreatedAt       string // ISO-8601
	UpdatedAt       string // ISO-8601
}

// HasNote reports whether the record carries a non-empty trimmed note.
func (r *Record) HasNote() bool {
	return strings.TrimSpace(r.Note) != ""
}

// MarkerEnabled reports whether this record's note should render as a chart
// overlay marker. A record with an empty note is never marked, regardless of
// the stored flag; a non-empty note defaults to marked when the flag is absent.
func (r *Record) MarkerEnabled() bool {
	if !r.HasNote() {
		return false
	}
	if r.NoteLineEnabled != nil {
		return *r.NoteLineEnabled
	}
	return true
}

// ContentItem is a stored piece of reusable content (script, caption, asset
// description) in the content library.
type ContentItem struct {
	ID        int64
	Title     string
	Type      string
	Tags      string
	Ref       string // optional external URL; validated lazily at render time
	Body      string
	CreatedAt string
	UpdatedAt string
}

// Field length caps applied on manual entry and on import.
const (
	MaxNoteLen  = 120
	MaxTitleLen = 80
	MaxTypeLen  = 50
	MaxTagsLen  = 80
	MaxRefLen   = 160
	MaxBodyLen  = 6000
)

// Setting keys persisted in the settings table.
const (
	SettingRoleID       = "role_id"
	SettingShowMarkers  = "show_markers"
	SettingLastEditedAt = "last_edited_at"
	SettingLastSavedAt  = "last_saved_at"
)

// Stats holds aggregate statistics about the GrowthTrack database.
type Stats struct {
	TotalRecords      int64
	TotalContent      int64
	OldestTimestamp   int64 // epoch millis; 0 when there are no records
	NewestTimestamp   int64
	DatabaseSizeBytes int64
}
