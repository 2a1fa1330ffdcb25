package report

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/go-pdf/fpdf"
)

// Raster fallback geometry: A4 at 150 dpi, drawn with the built-in bitmap
// face. Used when the embeddable font could not be obtained.
const (
	rasterPageW = 1240
	rasterPageH = 1754
	rasterLeft  = 60.0
	rasterTop   = 80.0
	rasterLineH = 28.0
)

// buildRaster renders each report page as a PNG and embeds them full-page.
func buildRaster(p Params) ([]byte, error) {
	pages, err := rasterPages(p)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, page := range pages {
		name := fmt.Sprintf("page-%d", i)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(page))
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, 210, 297, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func rasterPages(p Params) ([][]byte, error) {
	var pages [][]byte

	dc := newRasterPage()
	y := rasterTop

	dc.DrawString("Growth Report", rasterLeft, y)
	y += rasterLineH * 1.5
	for _, line := range headerLines(p) {
		dc.DrawString(line, rasterLeft, y)
		y += rasterLineH
	}

	if len(p.ChartPNG) > 0 {
		img, err := png.Decode(bytes.NewReader(p.ChartPNG))
		if err != nil {
			return nil, fmt.Errorf("decode chart png: %w", err)
		}
		y += rasterLineH / 2
		dc.DrawImage(img, int(rasterLeft), int(y))
		y += float64(img.Bounds().Dy()) + rasterLineH
	}

	flush := func() error {
		data, err := encodePage(dc)
		if err != nil {
			return err
		}
		pages = append(pages, data)
		return nil
	}

	dc.DrawString(tableHeaderText(), rasterLeft, y)
	y += rasterLineH
	for _, row := range tableRows(p.Records) {
		if y > rasterPageH-rasterTop {
			if err := flush(); err != nil {
				return nil, err
			}
			dc = newRasterPage()
			y = rasterTop
			dc.DrawString(tableHeaderText(), rasterLeft, y)
			y += rasterLineH
		}
		dc.DrawString(rowText(row), rasterLeft, y)
		y += rasterLineH
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return pages, nil
}

func newRasterPage() *gg.Context {
	dc := gg.NewContext(rasterPageW, rasterPageH)
	dc.SetHexColor("#ffffff")
	dc.Clear()
	dc.SetHexColor("#10141c")
	return dc
}

func encodePage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode report page: %w", err)
	}
	return buf.Bytes(), nil
}

func tableHeaderText() string {
	return fmt.Sprintf("%-18s %10s %10s %12s  %s", tableHeader[0], tableHeader[1], tableHeader[2], tableHeader[3], tableHeader[4])
}

func rowText(row []string) string {
	return fmt.Sprintf("%-18s %10s %10s %12s  %s", row[0], row[1], row[2], row[3], row[4])
}
