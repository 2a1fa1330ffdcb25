package chart

// Viewport is the visible window over the chart domain. X is in category
// units, L and R are the two value axes (threads left, line right). Both
// value axes start from zero at full view; zooming may lift them.
type Viewport struct {
	X0, X1 float64
	L0, L1 float64
	R0, R1 float64
}

// Minimum visible spans. Tighter than this and a chart stops meaning
// anything: one full category slot on x, five units on either value axis.
const (
	minXSpan = 1.0
	minYSpan = 5.0
)

// FullViewport shows the entire series: every category with half a slot of
// padding on each side, value axes from zero to a nice ceiling.
func FullViewport(s Series) Viewport {
	n := float64(s.Len())
	if n < 1 {
		n = 1
	}
	return Viewport{
		X0: -0.5,
		X1: n - 0.5,
		L0: 0,
		L1: NiceCeil(s.MaxThreads()),
		R0: 0,
		R1: NiceCeil(s.MaxLine()),
	}
}

// ZoomAt scales the window by factor around a focal point given as plot
// fractions (0..1 across the plot area). Factor < 1 zooms in. The result
// is clamped to the full domain and to the minimum spans.
func (v Viewport) ZoomAt(full Viewport, factor, fx, fy float64) Viewport {
	if factor <= 0 {
		return v
	}
	out := v
	out.X0, out.X1 = zoomRange(v.X0, v.X1, factor, fx, full.X0, full.X1, minXSpan)
	// fy is measured from the top of the plot, value axes grow upward
	out.L0, out.L1 = zoomRange(v.L0, v.L1, factor, 1-fy, full.L0, full.L1, minYSpan)
	out.R0, out.R1 = zoomRange(v.R0, v.R1, factor, 1-fy, full.R0, full.R1, minYSpan)
	return out
}

// Pan shifts the window by fractions of the current spans. Positive dx
// moves the view toward later categories, positive dy toward higher values.
func (v Viewport) Pan(full Viewport, dx, dy float64) Viewport {
	out := v
	out.X0, out.X1 = panRange(v.X0, v.X1, dx*(v.X1-v.X0), full.X0, full.X1)
	out.L0, out.L1 = panRange(v.L0, v.L1, dy*(v.L1-v.L0), full.L0, full.L1)
	out.R0, out.R1 = panRange(v.R0, v.R1, dy*(v.R1-v.R0), full.R0, full.R1)
	return out
}

// Pinch is a zoom gesture: scale > 1 spreads fingers apart, zooming in.
func (v Viewport) Pinch(full Viewport, scale, fx, fy float64) Viewport {
	if scale <= 0 {
		return v
	}
	return v.ZoomAt(full, 1/scale, fx, fy)
}

func zoomRange(lo, hi, factor, focal, fullLo, fullHi, minSpan float64) (float64, float64) {
	span := (hi - lo) * factor
	if span < minSpan {
		span = minSpan
	}
	if span > fullHi-fullLo {
		span = fullHi - fullLo
	}
	anchor := lo + focal*(hi-lo)
	newLo := anchor - focal*span
	newHi := newLo + span
	return clampRange(newLo, newHi, fullLo, fullHi)
}

func panRange(lo, hi, delta, fullLo, fullHi float64) (float64, float64) {
	return clampRange(lo+delta, hi+delta, fullLo, fullHi)
}

func clampRange(lo, hi, fullLo, fullHi float64) (float64, float64) {
	if lo < fullLo {
		hi += fullLo - lo
		lo = fullLo
	}
	if hi > fullHi {
		lo -= hi - fullHi
		hi = fullHi
	}
	if lo < fullLo {
		lo = fullLo
	}
	return lo, hi
}
