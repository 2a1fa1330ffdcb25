package chart

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/growthtrack/internal/storage"
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func sampleRecords() []storage.Record {
	return []storage.Record{
		{ID: 1, Timestamp: 1000, Threads: 100, Line: int64Ptr(10)},
		{ID: 2, Timestamp: 2000, Threads: 150, Note: "launch day", NoteLineEnabled: boolPtr(true)},
		{ID: 3, Timestamp: 3000, Threads: 230, Line: int64Ptr(40)},
		{ID: 4, Timestamp: 4000, Threads: 260, Line: int64Ptr(55), Note: "collab post", NoteLineEnabled: boolPtr(true)},
	}
}

func TestBuildSeries(t *testing.T) {
	// out of order on purpose
	records := sampleRecords()
	records[0], records[3] = records[3], records[0]

	s := BuildSeries(records)
	require.Equal(t, 4, s.Len())
	assert.Equal(t, []int64{1, 2, 3, 4}, s.IDs)
	assert.Equal(t, 260.0, s.MaxThreads())
	assert.Equal(t, 55.0, s.MaxLine())
	assert.True(t, math.IsNaN(s.Line[1]), "untracked line is a gap, not zero")

	require.Len(t, s.Markers, 2)
	assert.Equal(t, 1, s.Markers[0].Index)
	assert.Equal(t, 3, s.Markers[1].Index)
}

func TestNiceTicks(t *testing.T) {
	ticks := NiceTicks(0, 100, 5)
	require.NotEmpty(t, ticks)
	assert.Equal(t, 0.0, ticks[0])
	step := ticks[1] - ticks[0]
	mag := math.Pow(10, math.Floor(math.Log10(step)))
	normalized := step / mag
	assert.Contains(t, []float64{1, 2, 2.5, 5, 10}, normalized)
	for i := 1; i < len(ticks); i++ {
		assert.InDelta(t, step, ticks[i]-ticks[i-1], 1e-9)
	}

	assert.Nil(t, NiceTicks(0, 10, 1))
	assert.Nil(t, NiceTicks(math.NaN(), 10, 5))
}

func TestNiceCeil(t *testing.T) {
	assert.Equal(t, 100.0, NiceCeil(73))
	assert.Equal(t, 250.0, NiceCeil(201))
	assert.Equal(t, 5.0, NiceCeil(0))
	assert.Equal(t, 5.0, NiceCeil(4.2))
}

func TestViewportZoomClamps(t *testing.T) {
	s := BuildSeries(sampleRecords())
	full := FullViewport(s)

	v := full
	// zoom far in at the center; spans must never drop below the minimums
	for i := 0; i < 30; i++ {
		v = v.ZoomAt(full, 0.5, 0.5, 0.5)
	}
	assert.InDelta(t, minXSpan, v.X1-v.X0, 1e-9)
	assert.InDelta(t, minYSpan, v.L1-v.L0, 1e-9)
	assert.InDelta(t, minYSpan, v.R1-v.R0, 1e-9)
	assert.GreaterOrEqual(t, v.X0, full.X0)
	assert.LessOrEqual(t, v.X1, full.X1)

	// zooming out never exceeds the full domain
	for i := 0; i < 10; i++ {
		v = v.ZoomAt(full, 4, 0.5, 0.5)
	}
	assert.Equal(t, full, v)
}

func TestViewportPanClamps(t *testing.T) {
	s := BuildSeries(sampleRecords())
	full := FullViewport(s)
	v := full.ZoomAt(full, 0.5, 0.5, 0.5)

	panned := v.Pan(full, 100, 0)
	assert.InDelta(t, full.X1, panned.X1, 1e-9)
	assert.InDelta(t, v.X1-v.X0, panned.X1-panned.X0, 1e-9, "pan preserves the span")

	panned = v.Pan(full, -100, 0)
	assert.InDelta(t, full.X0, panned.X0, 1e-9)

	assert.Equal(t, full, FullViewport(s), "reset is just the full viewport")
}

func TestViewportPinch(t *testing.T) {
	s := BuildSeries(sampleRecords())
	full := FullViewport(s)

	pinched := full.Pinch(full, 2, 0.5, 0.5)
	zoomed := full.ZoomAt(full, 0.5, 0.5, 0.5)
	assert.Equal(t, zoomed, pinched, "pinch spread is a zoom in")
	assert.Equal(t, full, full.Pinch(full, 0, 0.5, 0.5), "bad scale is ignored")
}

func TestUpdateHover(t *testing.T) {
	s := BuildSeries(sampleRecords())
	l := NewLayout(1080, 480, FullViewport(s))
	guides := MarkerGuides(l, s)
	require.Len(t, guides, 2)

	midY := l.Plot.Y + l.Plot.H/2

	h := UpdateHover(l, guides, guides[0]+5, midY)
	assert.Equal(t, 0, h.Marker)

	h = UpdateHover(l, guides, guides[1]-9, midY)
	assert.Equal(t, 1, h.Marker)

	h = UpdateHover(l, guides, guides[0]+markerHoverBand+1, midY)
	assert.False(t, h.Active(), "outside the band goes idle")

	h = UpdateHover(l, guides, guides[0], l.Plot.Y-5)
	assert.False(t, h.Active(), "above the plot goes idle")

	assert.False(t, PointerLeave().Active())
}

func TestHitTestResolvesRecordID(t *testing.T) {
	s := BuildSeries(sampleRecords())
	l := NewLayout(1080, 480, FullViewport(s))
	points := VisiblePoints(l, s)
	require.Len(t, points, 4)

	id, ok := HitTest(points, points[2].X+4, points[2].Y-4)
	require.True(t, ok)
	assert.Equal(t, int64(3), id)

	_, ok = HitTest(points, points[0].X+pointHitRadius+10, points[0].Y+pointHitRadius+10)
	assert.False(t, ok)
}

func TestBuildOpsEmptySeries(t *testing.T) {
	l := NewLayout(1080, 480, FullViewport(Series{}))
	ops := BuildOps(l, Series{}, IdleHover(), true)

	require.Len(t, ops, 2)
	label, ok := ops[1].(Label)
	require.True(t, ok)
	assert.Equal(t, "no data", label.Text)
}

func TestBuildOpsMarkerChips(t *testing.T) {
	s := BuildSeries(sampleRecords())
	l := NewLayout(1080, 480, FullViewport(s))

	idle := BuildOps(l, s, IdleHover(), true)
	assert.Equal(t, 2, countChips(idle))
	assert.Equal(t, 0, countDims(idle))

	hovered := BuildOps(l, s, Hover{Marker: 0}, true)
	assert.Equal(t, 2, countChips(hovered))
	assert.Equal(t, 1, countDims(hovered), "hover dims the plot behind the chip")

	chips := chipTexts(hovered)
	assert.Contains(t, chips, "launch day", "hovered marker shows the full label")

	bare := BuildOps(l, s, IdleHover(), false)
	assert.Equal(t, 0, countChips(bare), "marker overlay disabled")
}

func TestRenderProducesPNG(t *testing.T) {
	data, err := Render(BuildSeries(sampleRecords()), DefaultOptions())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	data, err = Render(Series{}, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "empty series still renders the placeholder")
}

func countChips(ops []Op) int {
	n := 0
	for _, op := range ops {
		if _, ok := op.(Chip); ok {
			n++
		}
	}
	return n
}

func countDims(ops []Op) int {
	n := 0
	for _, op := range ops {
		if _, ok := op.(Dim); ok {
			n++
		}
	}
	return n
}

func chipTexts(ops []Op) []string {
	var texts []string
	for _, op := range ops {
		if c, ok := op.(Chip); ok {
			texts = append(texts, c.Text)
		}
	}
	return texts
}
