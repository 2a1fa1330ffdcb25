package report

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

func int64Ptr(v int64) *int64 { return &v }

func sampleParams(t *testing.T) Params {
	t.Helper()
	records := []storage.Record{
		{ID: 1, Timestamp: 1000, Threads: 100, Line: int64Ptr(20), Note: "kickoff"},
		{ID: 2, Timestamp: 2000, Threads: 180, Line: int64Ptr(45), Note: strings.Repeat("n", 30)},
	}
	return Params{
		RoleID:      "team-a",
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local),
		RangeLabel:  track.RangeLabel(records),
		KPI:         track.ComputeKPI(records),
		Records:     records,
		ChartPNG:    tinyPNG(t),
	}
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestTableRowsNewestFirst(t *testing.T) {
	p := sampleParams(t)
	rows := tableRows(p.Records)
	require.Len(t, rows, 2)

	assert.Equal(t, "180", rows[0][1], "newest record prints first")
	assert.Equal(t, "100", rows[1][1])
	assert.Equal(t, "20", rows[1][2])
	assert.Equal(t, "25.00%", rows[0][3])
	assert.Equal(t, strings.Repeat("n", reportNoteLen)+"...", rows[0][4])
	assert.Equal(t, "kickoff", rows[1][4])
}

func TestTableRowsUntrackedLine(t *testing.T) {
	rows := tableRows([]storage.Record{{ID: 1, Timestamp: 1000, Threads: 5}})
	require.Len(t, rows, 1)
	assert.Equal(t, "-", rows[0][2])
	assert.Equal(t, "--", rows[0][3], "no line channel, no conversion")
}

func TestHeaderLines(t *testing.T) {
	p := sampleParams(t)
	lines := headerLines(p)
	require.Len(t, lines, 7)
	assert.Equal(t, "Role: team-a", lines[0])
	assert.Contains(t, lines[3], "25.00%")
	assert.Contains(t, lines[5], "+80.00%")

	p.KPI = track.KPI{
		LatestConversion: math.NaN(),
		AvgConversion:    math.NaN(),
		ThreadsGrowth:    math.NaN(),
		LineGrowth:       math.NaN(),
	}
	lines = headerLines(p)
	assert.Contains(t, lines[3], "--")
	assert.Contains(t, lines[5], "--")
}

func TestBuildRasterFallback(t *testing.T) {
	data, err := Build(sampleParams(t), nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBuildRasterFallbackManyRecords(t *testing.T) {
	p := sampleParams(t)
	p.ChartPNG = nil
	for i := 0; i < 200; i++ {
		p.Records = append(p.Records, storage.Record{
			ID: int64(100 + i), Timestamp: int64(10000 + i*1000), Threads: int64(i),
		})
	}

	data, err := Build(p, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), 10_000, "multiple raster pages embedded")
}

func TestFontSourceFetchAndCache(t *testing.T) {
	payload := []byte("pretend-ttf-bytes")
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	src := NewFontSource(srv.URL, dir)

	data, err := src.Load()
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, 1, hits)

	// second load is served from disk
	srv.Close()
	data, err = src.Load()
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, 1, hits)

	cached, err := os.ReadFile(filepath.Join(dir, "report-font.ttf"))
	require.NoError(t, err)
	assert.Equal(t, payload, cached)
}

func TestFontSourceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewFontSource(srv.URL, t.TempDir())
	_, err := src.Load()
	require.Error(t, err)

	src = NewFontSource("", t.TempDir())
	_, err = src.Load()
	require.Error(t, err)
}

func TestFontSourceClearCache(t *testing.T) {
	dir := t.TempDir()
	src := NewFontSource("", dir)
	require.NoError(t, src.ClearCache(), "missing cache is not an error")

	require.NoError(t, os.WriteFile(src.CachePath, []byte("x"), 0o644))
	require.NoError(t, src.ClearCache())
	_, err := os.Stat(src.CachePath)
	assert.True(t, os.IsNotExist(err))
}
