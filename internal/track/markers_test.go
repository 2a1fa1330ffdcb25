package track

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/growthtrack/internal/storage"
)

func TestBuildMarkers_OnlyEnabledNoteRecords(t *testing.T) {
	records := []storage.Record{
		{ID: 1, Note: ""},                                          // no note
		{ID: 2, Note: "launch", NoteLineEnabled: boolPtr(true)},    // marker
		{ID: 3, Note: "   "},                                       // whitespace only
		{ID: 4, Note: "paused", NoteLineEnabled: boolPtr(false)},   // disabled
		{ID: 5, Note: "collab"},                                    // flag absent, defaults on
	}

	markers := BuildMarkers(records)
	require.Len(t, markers, 2)
	assert.Equal(t, 1, markers[0].Index)
	assert.Equal(t, 4, markers[1].Index)
}

func TestBuildMarkers_PaletteCyclesByMarkerOrder(t *testing.T) {
	// Five markers out of seven records: colors must follow marker order,
	// not record position, so the fifth marker wraps back to the first color.
	records := []storage.Record{
		{ID: 1, Note: "a"},
		{ID: 2},
		{ID: 3, Note: "b"},
		{ID: 4, Note: "c"},
		{ID: 5},
		{ID: 6, Note: "d"},
		{ID: 7, Note: "e"},
	}

	markers := BuildMarkers(records)
	require.Len(t, markers, 5)
	assert.Equal(t, markers[0].Color, markers[4].Color, "palette should wrap after four markers")
	assert.NotEqual(t, markers[0].Color, markers[1].Color)
	assert.NotEqual(t, markers[1].Color, markers[2].Color)
	assert.NotEqual(t, markers[2].Color, markers[3].Color)
}

func TestBuildMarkers_Labels(t *testing.T) {
	long := strings.Repeat("x", 60)
	records := []storage.Record{{ID: 1, Note: long}}

	markers := BuildMarkers(records)
	require.Len(t, markers, 1)
	assert.Equal(t, strings.Repeat("x", 12)+"...", markers[0].Label)
	assert.Equal(t, strings.Repeat("x", 44)+"...", markers[0].FullLabel)
}

func TestBuildMarkers_ShortNoteKeptVerbatim(t *testing.T) {
	records := []storage.Record{{ID: 1, Note: "  big day  "}}

	markers := BuildMarkers(records)
	require.Len(t, markers, 1)
	assert.Equal(t, "big day", markers[0].Label)
	assert.Equal(t, "big day", markers[0].FullLabel)
}

func TestShortenText_RuneSafe(t *testing.T) {
	assert.Equal(t, "短い", ShortenText("短い", 12))
	assert.Equal(t, "あいうえおかきくけこさし...", ShortenText("あいうえおかきくけこさしすせそ", 12))
	assert.Equal(t, "exact", ShortenText("exact", 5))
}
