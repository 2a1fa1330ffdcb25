package chart

import "math"

// Pixel tolerances for pointer interaction. Markers use a narrow vertical
// band around the guide line; data points use a round hit radius.
const (
	markerHoverBand = 10.0
	pointHitRadius  = 14.0
)

// Hover is the pointer interaction state: either idle or locked onto one
// marker guide. The zero value is idle.
type Hover struct {
	Marker int // marker index, -1 when idle
}

// IdleHover is the no-marker state.
func IdleHover() Hover { return Hover{Marker: -1} }

// Active reports whether a marker is hovered.
func (h Hover) Active() bool { return h.Marker >= 0 }

// UpdateHover picks the nearest marker guide within the hover band, or goes
// idle. The pointer must be inside the plot area vertically; guides are the
// pixel x positions of each marker, parallel to markers by index.
func UpdateHover(l Layout, guides []float64, px, py float64) Hover {
	if py < l.Plot.Y || py > l.Plot.Y+l.Plot.H {
		return IdleHover()
	}
	best := -1
	bestDist := markerHoverBand
	for i, gx := range guides {
		d := math.Abs(px - gx)
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return Hover{Marker: best}
}

// PointerLeave clears any hover.
func PointerLeave() Hover { return IdleHover() }

// PlotPoint is one rendered data point with its backing record identity.
type PlotPoint struct {
	X, Y     float64
	RecordID int64
}

// HitTest resolves a pointer position to the nearest rendered point within
// the hit radius. It returns the record's stable id, never its index, so a
// hit survives re-sorting and re-rendering.
func HitTest(points []PlotPoint, px, py float64) (int64, bool) {
	bestID := int64(0)
	bestDist := pointHitRadius
	found := false
	for _, p := range points {
		d := math.Hypot(px-p.X, py-p.Y)
		if d <= bestDist {
			bestID = p.RecordID
			bestDist = d
			found = true
		}
	}
	return bestID, found
}
