package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// noteRule documents, inside the archive itself, how notes were reduced.
const noteRule = "notes truncated to 24 chars"

// BuildDocument assembles the current interchange document from a snapshot.
// The role id is mandatory: it is sanitized first and an empty result is an
// error, because the id anchors export filenames and re-import identity.
func BuildDocument(records []storage.Record, items []storage.ContentItem, roleID string, now time.Time) (*Document, error) {
	id := SanitizeRoleID(roleID)
	if id == "" {
		return nil, fmt.Errorf("role id is required for export (letters, digits, _ or -)")
	}

	sorted := track.SortByTimestamp(records)
	rows := make([]RecordRow, 0, len(sorted))
	for _, r := range sorted {
		row := RecordRow{
			Ts:              track.ExportTs(r.Timestamp),
			Threads:         r.Threads,
			Note:            clampText(r.Note, exportNoteLen),
			NoteLineEnabled: r.MarkerEnabled(),
		}
		if r.Line != nil {
			line := *r.Line
			row.Line = &line
		}
		rows = append(rows, row)
	}

	contentRows := make([]ContentRow, 0, len(items))
	for _, it := range items {
		contentRows = append(contentRows, ContentRow{
			Title:     it.Title,
			Type:      it.Type,
			Tags:      it.Tags,
			Ref:       it.Ref,
			Body:      it.Body,
			CreatedAt: it.CreatedAt,
			UpdatedAt: it.UpdatedAt,
		})
	}

	return &Document{
		Platform: Platform{
			Name:       PlatformName,
			Version:    SchemaVersion,
			ExportedAt: now.Format(time.RFC3339),
		},
		Meta: Meta{
			Date:     track.DateYYYYMMDD(now),
			Timezone: timezoneName(now),
			NoteRule: noteRule,
			RoleID:   id,
		},
		Modules: Modules{
			Dashboard:      Dashboard{Records: rows},
			ContentLibrary: ContentLibrary{Items: contentRows},
		},
	}, nil
}

// Marshal renders a document as indented JSON, the on-disk archive form.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export document: %w", err)
	}
	return append(data, '\n'), nil
}

// timezoneName reports the zone of t. The Go runtime only knows the system
// zone as "Local", so that case falls back to the zone abbreviation.
func timezoneName(t time.Time) string {
	name := t.Location().String()
	if name != "" && name != "Local" {
		return name
	}
	zone, _ := t.Zone()
	if zone != "" {
		return zone
	}
	return "UTC"
}
