package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// Params is everything a report needs, already filtered and computed by the
// caller. Records are time-ascending; the table prints them newest first.
type Params struct {
	RoleID      string
	GeneratedAt time.Time
	RangeLabel  string
	KPI         track.KPI
	Records     []storage.Record
	ChartPNG    []byte
}

// table note column cap
const reportNoteLen = 18

// A4 content geometry in millimetres.
const (
	pageMarginMM   = 10.0
	contentWidthMM = 190.0
	pageBreakAtMM  = 272.0
)

var tableColumnsMM = []float64{42, 26, 26, 30, 66}

var tableHeader = []string{"Time", "Threads", "Line", "Conversion", "Note"}

// Build renders the report PDF. With font bytes the text is vector and the
// TTF is embedded; with nil font the same content is rasterized page by
// page so the export still succeeds.
func Build(p Params, font []byte) ([]byte, error) {
	if font == nil {
		return buildRaster(p)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes("report", "", font)
	pdf.SetAutoPageBreak(false, pageMarginMM)
	pdf.AddPage()

	pdf.SetFont("report", "", 18)
	pdf.SetXY(pageMarginMM, 16)
	pdf.CellFormat(contentWidthMM, 9, "Growth Report", "", 1, "L", false, 0, "")

	pdf.SetFont("report", "", 10)
	for _, line := range headerLines(p) {
		pdf.SetX(pageMarginMM)
		pdf.CellFormat(contentWidthMM, 6, line, "", 1, "L", false, 0, "")
	}

	if len(p.ChartPNG) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(p.ChartPNG))
		pdf.SetY(pdf.GetY() + 4)
		pdf.ImageOptions("chart", pageMarginMM, pdf.GetY(), contentWidthMM, 0, true, opts, 0, "")
	}

	pdf.SetY(pdf.GetY() + 6)
	writeTableHeader(pdf)
	for _, row := range tableRows(p.Records) {
		if pdf.GetY() > pageBreakAtMM {
			pdf.AddPage()
			pdf.SetY(16)
			writeTableHeader(pdf)
		}
		pdf.SetX(pageMarginMM)
		for i, cell := range row {
			align := "L"
			if i > 0 && i < 4 {
				align = "R"
			}
			pdf.CellFormat(tableColumnsMM[i], 6, cell, "B", 0, align, false, 0, "")
		}
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("report", "", 10)
	pdf.SetX(pageMarginMM)
	for i, h := range tableHeader {
		pdf.CellFormat(tableColumnsMM[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(7)
}

func headerLines(p Params) []string {
	return []string{
		fmt.Sprintf("Role: %s", p.RoleID),
		fmt.Sprintf("Generated: %s", track.DisplayTimeSeconds(p.GeneratedAt)),
		fmt.Sprintf("Range: %s", p.RangeLabel),
		fmt.Sprintf("Latest conversion: %s", track.FormatPercent(p.KPI.LatestConversion)),
		fmt.Sprintf("Average conversion: %s", track.FormatPercent(p.KPI.AvgConversion)),
		fmt.Sprintf("Threads growth: %s", track.FormatSignedPercent(p.KPI.ThreadsGrowth)),
		fmt.Sprintf("Line growth: %s", track.FormatSignedPercent(p.KPI.LineGrowth)),
	}
}

// tableRows renders the record table cells, newest first.
func tableRows(records []storage.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		line := "-"
		if r.Line != nil {
			line = fmt.Sprintf("%d", *r.Line)
		}
		rows = append(rows, []string{
			track.DisplayTime(r.Timestamp),
			fmt.Sprintf("%d", r.Threads),
			line,
			track.FormatPercent(track.Conversion(r)),
			track.ShortenText(r.Note, reportNoteLen),
		})
	}
	return rows
}
