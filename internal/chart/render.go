package chart

import (
	"bytes"
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

// Options controls one render.
type Options struct {
	Width, Height int
	ShowMarkers   bool
}

// DefaultOptions matches the dashboard's default canvas.
func DefaultOptions() Options {
	return Options{Width: 1080, Height: 480, ShowMarkers: true}
}

// Render draws the full-domain chart for a series and returns PNG bytes.
func Render(s Series, opts Options) ([]byte, error) {
	l := NewLayout(float64(opts.Width), float64(opts.Height), FullViewport(s))
	img := Rasterize(BuildOps(l, s, IdleHover(), opts.ShowMarkers), opts.Width, opts.Height)

	var buf bytes.Buffer
	if err := gg.NewContextForImage(img).EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode chart png: %w", err)
	}
	return buf.Bytes(), nil
}

// MarkerGuides returns the pixel x position of each marker's guide line,
// parallel to the series markers by index.
func MarkerGuides(l Layout, s Series) []float64 {
	guides := make([]float64, len(s.Markers))
	for i, m := range s.Markers {
		guides[i] = l.XToPx(float64(m.Index))
	}
	return guides
}

// Rasterize walks a draw-command list onto a fresh canvas. All layout and
// state decisions were already made; this only translates ops to gg calls.
func Rasterize(ops []Op, width, height int) image.Image {
	dc := gg.NewContext(width, height)

	for _, op := range ops {
		switch o := op.(type) {
		case Clear:
			dc.SetHexColor(o.Color)
			dc.Clear()
		case Line:
			dc.SetHexColor(o.Color)
			dc.SetLineWidth(o.Width)
			if o.Dashed {
				dc.SetDash(4, 4)
			}
			dc.DrawLine(o.X1, o.Y1, o.X2, o.Y2)
			dc.Stroke()
			if o.Dashed {
				dc.SetDash()
			}
		case Polyline:
			dc.SetHexColor(o.Color)
			dc.SetLineWidth(o.Width)
			for i := range o.Xs {
				dc.LineTo(o.Xs[i], o.Ys[i])
			}
			dc.Stroke()
		case Dot:
			dc.SetHexColor(o.Color)
			dc.DrawCircle(o.X, o.Y, o.R)
			dc.Fill()
		case Label:
			dc.SetHexColor(o.Color)
			dc.DrawStringAnchored(o.Text, o.X, o.Y, o.Anchor, 0.35)
		case Chip:
			dc.SetHexColor(o.Fill)
			dc.DrawRoundedRectangle(o.X, o.Y, o.W, o.H, o.Radius)
			dc.Fill()
			dc.SetHexColor(o.TextColor)
			dc.DrawStringAnchored(o.Text, o.X+o.W/2, o.Y+o.H/2, 0.5, 0.35)
		case Dim:
			dc.SetRGBA(0, 0, 0, o.Alpha)
			dc.DrawRectangle(o.Region.X, o.Region.Y, o.Region.W, o.Region.H)
			dc.Fill()
		}
	}
	return dc.Image()
}
