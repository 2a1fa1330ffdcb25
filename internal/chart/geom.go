// Package chart turns an engagement record snapshot into a dual-axis chart:
// pure geometry and state first, a draw-command list second, and a PNG
// rasterization last. Every render rebuilds the whole command list from
// scratch.
package chart

import "math"

// Rect is a pixel-space rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

// Layout maps data space to pixel space for one render. The x-axis is
// categorical: each record owns one slot and slots are equally wide
// regardless of the time gaps between records.
type Layout struct {
	Width, Height float64
	Plot          Rect
	View          Viewport
}

// Margins around the plot area: axis labels left and right, tick labels
// below, a little breathing room on top.
const (
	marginLeft   = 56.0
	marginRight  = 56.0
	marginTop    = 24.0
	marginBottom = 40.0
)

// NewLayout builds the pixel mapping for a canvas of the given size.
// Dimensions are clamped to a minimum renderable size.
func NewLayout(width, height float64, view Viewport) Layout {
	if width < 320 {
		width = 320
	}
	if height < 200 {
		height = 200
	}
	return Layout{
		Width:  width,
		Height: height,
		Plot: Rect{
			X: marginLeft,
			Y: marginTop,
			W: width - marginLeft - marginRight,
			H: height - marginTop - marginBottom,
		},
		View: view,
	}
}

// XToPx maps a category coordinate to a pixel x position.
func (l Layout) XToPx(cat float64) float64 {
	span := l.View.X1 - l.View.X0
	if span <= 0 {
		span = 1
	}
	return l.Plot.X + (cat-l.View.X0)/span*l.Plot.W
}

// LeftToPx maps a threads value to a pixel y position.
func (l Layout) LeftToPx(v float64) float64 {
	return l.yToPx(v, l.View.L0, l.View.L1)
}

// RightToPx maps a line value to a pixel y position.
func (l Layout) RightToPx(v float64) float64 {
	return l.yToPx(v, l.View.R0, l.View.R1)
}

func (l Layout) yToPx(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	return l.Plot.Y + l.Plot.H - (v-lo)/span*l.Plot.H
}

// PxToCat inverts XToPx, used for focal-point zooming.
func (l Layout) PxToCat(px float64) float64 {
	if l.Plot.W <= 0 {
		return l.View.X0
	}
	return l.View.X0 + (px-l.Plot.X)/l.Plot.W*(l.View.X1-l.View.X0)
}

// NiceTicks returns roughly n tick values covering [min, max] on a step
// chosen from 1/2/2.5/5/10 scaled by the span's order of magnitude.
func NiceTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Ceil(min/bestStep) * bestStep
	var ticks []float64
	for v := start; v <= max+bestStep/2; v += bestStep {
		ticks = append(ticks, v)
	}
	return ticks
}

// NiceCeil rounds a data maximum up to the next nice tick boundary so the
// top of an axis lands on a labeled line.
func NiceCeil(max float64) float64 {
	if max <= 0 || math.IsNaN(max) || math.IsInf(max, 0) {
		return 5
	}
	mag := math.Pow(10, math.Floor(math.Log10(max)))
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		if c*mag >= max {
			return c * mag
		}
	}
	return 10 * mag
}
