// Package codec implements the versioned JSON interchange document:
// serialization of the current state to an export document, and tolerant
// import of two generations of that format.
package codec

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/runnerr0/growthtrack/internal/track"
)

// PlatformName identifies this exporter in the interchange document.
const PlatformName = "GrowthTrack"

// SchemaVersion is the current interchange document version.
const SchemaVersion = 1

// Document is the current (nested-modules) interchange format.
type Document struct {
	Platform Platform `json:"platform"`
	Meta     Meta     `json:"meta"`
	Modules  Modules  `json:"modules"`
}

// Platform is the exporter identity block.
type Platform struct {
	Name       string `json:"name"`
	Version    int    `json:"version"`
	ExportedAt string `json:"exported_at"`
}

// Meta carries export context: date, IANA timezone, and the user's role id.
type Meta struct {
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
	NoteRule string `json:"note_rule"`
	RoleID   string `json:"role_id"`
}

// Modules groups the two exported module blocks.
type Modules struct {
	Dashboard      Dashboard      `json:"dashboard"`
	ContentLibrary ContentLibrary `json:"content_library"`
}

// Dashboard holds the time-ascending engagement records.
type Dashboard struct {
	Records []RecordRow `json:"records"`
}

// RecordRow is one exported engagement record, reduced to the interchange
// shape: space-separated minute-precision timestamp, counts, shortened note.
type RecordRow struct {
	Ts              string `json:"ts"`
	Threads         int64  `json:"threads"`
	Line            *int64 `json:"line"`
	Note            string `json:"note"`
	NoteLineEnabled bool   `json:"note_line_enabled"`
}

// ContentLibrary holds the exported content items.
type ContentLibrary struct {
	Items []ContentRow `json:"items"`
}

// ContentRow is one exported content library item.
type ContentRow struct {
	Title     string `json:"title"`
	Type      string `json:"type"`
	Tags      string `json:"tags"`
	Ref       string `json:"ref"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// exportNoteLen caps notes in the interchange document; chart overlays only
// ever show a short prefix, and the cap keeps archives compact.
const exportNoteLen = 24

var roleIDPattern = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeRoleID strips everything outside [A-Za-z0-9_-] from a role
// identifier. The result may be empty.
func SanitizeRoleID(value string) string {
	return roleIDPattern.ReplaceAllString(strings.TrimSpace(value), "")
}

// ArchiveFilename builds the JSON export filename for a role.
func ArchiveFilename(roleID string, now time.Time) string {
	return fmt.Sprintf("%s_growth-archive_%s.json", SanitizeRoleID(roleID), track.FileStamp(now))
}

// ReportFilename builds the PDF report filename for a role.
func ReportFilename(roleID string, now time.Time) string {
	return fmt.Sprintf("%s_growth-report_%s.pdf", SanitizeRoleID(roleID), track.FileStamp(now))
}
