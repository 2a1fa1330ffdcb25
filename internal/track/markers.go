package track

import (
	"strings"

	"github.com/runnerr0/growthtrack/internal/storage"
)

// Marker is a chart annotation derived from a note-bearing record. Index is
// the record's position on the categorical x-axis (one slot per record in
// the rendered window), not a timestamp.
type Marker struct {
	Index     int
	Label     string // note truncated for the idle chip
	FullLabel string // longer form shown while hovered
	Color     string
}

const (
	markerLabelLen     = 12
	markerFullLabelLen = 44
)

// markerPalette is cycled in marker order: a marker's color depends on its
// position among the markers, not on record identity.
var markerPalette = []string{"#f2a531", "#6bcf7d", "#d27fff", "#ff7f7f"}

// BuildMarkers derives overlay markers from a time-ascending record
// sequence: one marker per record with a non-empty trimmed note and an
// enabled marker flag.
func BuildMarkers(sorted []storage.Record) []Marker {
	var markers []Marker
	for i, r := range sorted {
		if !r.MarkerEnabled() {
			continue
		}
		note := strings.TrimSpace(r.Note)
		markers = append(markers, Marker{
			Index:     i,
			Label:     ShortenText(note, markerLabelLen),
			FullLabel: ShortenText(note, markerFullLabelLen),
			Color:     markerPalette[len(markers)%len(markerPalette)],
		})
	}
	return markers
}

// ShortenText truncates text to maxLen runes, appending an ellipsis when
// anything was cut.
func ShortenText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
