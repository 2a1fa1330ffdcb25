package chart

import (
	"fmt"
	"math"
)

// Dark dashboard theme. The marker palette lives with the marker builder;
// these cover everything else.
const (
	colorBackground = "#10141c"
	colorGrid       = "#242b38"
	colorAxisText   = "#9aa4b2"
	colorThreads    = "#5aa9e6"
	colorLine       = "#f2a0c0"
	colorChipText   = "#10141c"
)

// Op is one drawing command. The full chart render is a flat []Op produced
// purely from layout, series, and interaction state; rasterization walks
// the list in order with no decisions of its own.
type Op interface{ op() }

// Clear fills the whole canvas.
type Clear struct{ Color string }

// Line is a single segment, optionally dashed.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Width          float64
	Dashed         bool
}

// Polyline is a connected run of points. Gaps in a series are expressed as
// separate polylines, never bridged.
type Polyline struct {
	Xs, Ys []float64
	Color  string
	Width  float64
}

// Dot is a filled circle at a data point.
type Dot struct {
	X, Y, R float64
	Color   string
}

// Label is a text run. Anchor is the horizontal alignment: 0 left,
// 0.5 centered, 1 right of (X, Y).
type Label struct {
	X, Y   float64
	Text   string
	Color  string
	Anchor float64
}

// Chip is a rounded-rect badge with centered text, used for marker labels.
type Chip struct {
	X, Y, W, H, Radius float64
	Fill, Text         string
	TextColor          string
}

// Dim darkens a region, pushing the plot behind a hovered marker's chip.
type Dim struct {
	Region Rect
	Alpha  float64
}

func (Clear) op()    {}
func (Line) op()     {}
func (Polyline) op() {}
func (Dot) op()      {}
func (Label) op()    {}
func (Chip) op()     {}
func (Dim) op()      {}

// approximate advance of the built-in face, used to size chips
const chipCharWidth = 7.0

// BuildOps produces the complete draw-command list for one frame.
func BuildOps(l Layout, s Series, hover Hover, showMarkers bool) []Op {
	ops := []Op{Clear{Color: colorBackground}}

	if s.Empty() {
		ops = append(ops, Label{
			X:      l.Width / 2,
			Y:      l.Height / 2,
			Text:   "no data",
			Color:  colorAxisText,
			Anchor: 0.5,
		})
		return ops
	}

	ops = append(ops, axisOps(l)...)
	ops = append(ops, seriesOps(l, s)...)
	if showMarkers {
		ops = append(ops, markerOps(l, s, hover)...)
	}
	return ops
}

// VisiblePoints lists the rendered threads points inside the plot area,
// the hit-testing surface for point selection.
func VisiblePoints(l Layout, s Series) []PlotPoint {
	var points []PlotPoint
	for i := range s.IDs {
		x := l.XToPx(float64(i))
		if x < l.Plot.X || x > l.Plot.X+l.Plot.W {
			continue
		}
		points = append(points, PlotPoint{
			X:        x,
			Y:        l.LeftToPx(s.Threads[i]),
			RecordID: s.IDs[i],
		})
	}
	return points
}

func axisOps(l Layout) []Op {
	var ops []Op
	for _, v := range NiceTicks(l.View.L0, l.View.L1, 5) {
		y := l.LeftToPx(v)
		ops = append(ops,
			Line{X1: l.Plot.X, Y1: y, X2: l.Plot.X + l.Plot.W, Y2: y, Color: colorGrid, Width: 1},
			Label{X: l.Plot.X - 6, Y: y, Text: formatAxisValue(v), Color: colorAxisText, Anchor: 1},
		)
	}
	for _, v := range NiceTicks(l.View.R0, l.View.R1, 5) {
		ops = append(ops, Label{
			X: l.Plot.X + l.Plot.W + 6, Y: l.RightToPx(v),
			Text: formatAxisValue(v), Color: colorAxisText, Anchor: 0,
		})
	}
	return ops
}

func seriesOps(l Layout, s Series) []Op {
	var ops []Op

	// x tick labels, thinned so neighbors never collide
	visible := l.View.X1 - l.View.X0
	step := int(math.Ceil(visible / 8))
	if step < 1 {
		step = 1
	}
	for i := 0; i < s.Len(); i += step {
		x := l.XToPx(float64(i))
		if x < l.Plot.X || x > l.Plot.X+l.Plot.W {
			continue
		}
		ops = append(ops, Label{
			X: x, Y: l.Plot.Y + l.Plot.H + 16,
			Text: s.Labels[i], Color: colorAxisText, Anchor: 0.5,
		})
	}

	ops = append(ops, valueLineOps(l, s.Threads, l.LeftToPx, colorThreads)...)
	ops = append(ops, valueLineOps(l, s.Line, l.RightToPx, colorLine)...)
	return ops
}

// valueLineOps draws one series as polyline runs plus point dots. NaN
// values end the current run; the next finite value starts a new one.
func valueLineOps(l Layout, values []float64, toPx func(float64) float64, color string) []Op {
	var ops []Op
	var xs, ys []float64
	flush := func() {
		if len(xs) > 1 {
			ops = append(ops, Polyline{Xs: xs, Ys: ys, Color: color, Width: 2})
		}
		xs, ys = nil, nil
	}
	for i, v := range values {
		if math.IsNaN(v) {
			flush()
			continue
		}
		x := l.XToPx(float64(i))
		y := toPx(v)
		if x >= l.Plot.X && x <= l.Plot.X+l.Plot.W {
			ops = append(ops, Dot{X: x, Y: y, R: 3, Color: color})
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	flush()
	return ops
}

func markerOps(l Layout, s Series, hover Hover) []Op {
	var ops []Op
	for i, m := range s.Markers {
		x := l.XToPx(float64(m.Index))
		if x < l.Plot.X || x > l.Plot.X+l.Plot.W {
			continue
		}
		if hover.Marker == i {
			continue // hovered marker redraws last, above the dim layer
		}
		ops = append(ops, guideOps(l, x, m.Label, m.Color)...)
	}

	if hover.Active() && hover.Marker < len(s.Markers) {
		m := s.Markers[hover.Marker]
		x := l.XToPx(float64(m.Index))
		if x >= l.Plot.X && x <= l.Plot.X+l.Plot.W {
			ops = append(ops, Dim{Region: l.Plot, Alpha: 0.45})
			ops = append(ops, guideOps(l, x, m.FullLabel, m.Color)...)
		}
	}
	return ops
}

// guideOps draws one marker: a dashed vertical guide and a label chip
// pinned near the top of the plot, nudged inward at the edges.
func guideOps(l Layout, x float64, text, color string) []Op {
	w := chipCharWidth*float64(len([]rune(text))) + 14
	cx := x - w/2
	if cx < l.Plot.X {
		cx = l.Plot.X
	}
	if cx+w > l.Plot.X+l.Plot.W {
		cx = l.Plot.X + l.Plot.W - w
	}
	return []Op{
		Line{X1: x, Y1: l.Plot.Y, X2: x, Y2: l.Plot.Y + l.Plot.H, Color: color, Width: 1, Dashed: true},
		Chip{X: cx, Y: l.Plot.Y + 4, W: w, H: 18, Radius: 5, Fill: color, Text: text, TextColor: colorChipText},
	}
}

func formatAxisValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
