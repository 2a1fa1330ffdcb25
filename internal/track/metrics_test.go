package track

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/growthtrack/internal/storage"
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(b bool) *bool    { return &b }

// mustMillis parses a local "YYYY-MM-DD HH:MM" string into epoch millis.
func mustMillis(t *testing.T, s string) int64 {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	require.NoError(t, err)
	return parsed.UnixMilli()
}

func TestSafeRatio(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		want     float64
	}{
		{"normal", 1, 10, 0.1},
		{"zero denominator", 5, 0, math.NaN()},
		{"negative denominator", 5, -2, math.NaN()},
		{"nan numerator", math.NaN(), 10, math.NaN()},
		{"inf numerator", math.Inf(1), 10, math.NaN()},
		{"inf denominator", 5, math.Inf(1), math.NaN()},
		{"zero numerator", 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeRatio(tt.num, tt.den)
			if math.IsNaN(tt.want) {
				assert.True(t, math.IsNaN(got))
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGrowthRate_ZeroStart(t *testing.T) {
	assert.Equal(t, math.Inf(1), GrowthRate(0, 10))
	assert.Equal(t, math.Inf(-1), GrowthRate(0, -10))
	assert.Equal(t, 0.0, GrowthRate(0, 0))
}

func TestGrowthRate_SameValueIsZero(t *testing.T) {
	assert.Equal(t, 0.0, GrowthRate(7, 7))
	assert.Equal(t, 0.0, GrowthRate(-3, -3))
}

func TestGrowthRate_NonFinite(t *testing.T) {
	assert.True(t, math.IsNaN(GrowthRate(math.NaN(), 5)))
	assert.True(t, math.IsNaN(GrowthRate(5, math.Inf(1))))
}

func TestGrowthRateFloored_ZeroStartDoesNotBlowUp(t *testing.T) {
	// Floored growth stays finite where the plain rate would be +Inf.
	assert.Equal(t, 10.0, GrowthRateFloored(0, 10, 1))
	assert.Equal(t, math.Inf(1), GrowthRate(0, 10))
}

func TestGrowthRateFloored_AboveFloorMatchesPlainRate(t *testing.T) {
	assert.Equal(t, GrowthRate(10, 20), GrowthRateFloored(10, 20, 1))
}

func TestComputeKPI_SpecExample(t *testing.T) {
	records := []storage.Record{
		{ID: 1, Timestamp: mustMillis(t, "2024-01-01 09:00"), Threads: 10, Line: int64Ptr(1)},
		{ID: 2, Timestamp: mustMillis(t, "2024-02-01 09:00"), Threads: 20, Line: int64Ptr(4)},
	}

	kpi := ComputeKPI(records)

	assert.InDelta(t, 0.15, kpi.AvgConversion, 1e-9)
	assert.Equal(t, "15.00%", FormatPercent(kpi.AvgConversion))
	assert.InDelta(t, 1.0, kpi.ThreadsGrowth, 1e-9)
	assert.Equal(t, "+100.00%", FormatSignedPercent(kpi.ThreadsGrowth))
	assert.InDelta(t, 3.0, kpi.LineGrowth, 1e-9)
	assert.Equal(t, "+300.00%", FormatSignedPercent(kpi.LineGrowth))
	assert.InDelta(t, 0.2, kpi.LatestConversion, 1e-9)
}

func TestComputeKPI_Empty(t *testing.T) {
	kpi := ComputeKPI(nil)
	assert.True(t, math.IsNaN(kpi.LatestConversion))
	assert.True(t, math.IsNaN(kpi.AvgConversion))
	assert.True(t, math.IsNaN(kpi.ThreadsGrowth))
	assert.True(t, math.IsNaN(kpi.LineGrowth))
}

func TestComputeKPI_LatestSkipsNonFiniteRatios(t *testing.T) {
	records := []storage.Record{
		{ID: 1, Timestamp: 1000, Threads: 10, Line: int64Ptr(2)},
		{ID: 2, Timestamp: 2000, Threads: 20, Line: int64Ptr(5)},
		{ID: 3, Timestamp: 3000, Threads: 30}, // no line -> NaN ratio, skipped
	}

	kpi := ComputeKPI(records)
	assert.InDelta(t, 0.25, kpi.LatestConversion, 1e-9)
}

// LineGrowth picks the oldest/newest records that individually carry a line
// value, which are not necessarily the window's endpoint records. Sparse
// secondary-channel data makes this asymmetry intentional.
func TestComputeKPI_LineGrowthUsesLineBearingEndpoints(t *testing.T) {
	records := []storage.Record{
		{ID: 1, Timestamp: 1000, Threads: 10},                   // no line
		{ID: 2, Timestamp: 2000, Threads: 12, Line: int64Ptr(2)},
		{ID: 3, Timestamp: 3000, Threads: 15, Line: int64Ptr(6)},
		{ID: 4, Timestamp: 4000, Threads: 30},                   // no line
	}

	kpi := ComputeKPI(records)

	// Threads growth spans records 1..4, line growth spans records 2..3.
	assert.InDelta(t, 2.0, kpi.ThreadsGrowth, 1e-9)
	assert.InDelta(t, 2.0, kpi.LineGrowth, 1e-9)
}

func TestComputeKPI_UnorderedInput(t *testing.T) {
	records := []storage.Record{
		{ID: 2, Timestamp: 2000, Threads: 20, Line: int64Ptr(4)},
		{ID: 1, Timestamp: 1000, Threads: 10, Line: int64Ptr(1)},
	}

	kpi := ComputeKPI(records)
	assert.InDelta(t, 1.0, kpi.ThreadsGrowth, 1e-9)
	assert.InDelta(t, 3.0, kpi.LineGrowth, 1e-9)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.34%", FormatPercent(0.1234))
	assert.Equal(t, "--", FormatPercent(math.NaN()))
	assert.Equal(t, "--", FormatPercent(math.Inf(1)))
}

func TestFormatSignedPercent(t *testing.T) {
	assert.Equal(t, "+12.34%", FormatSignedPercent(0.1234))
	assert.Equal(t, "-50.00%", FormatSignedPercent(-0.5))
	assert.Equal(t, "0.00%", FormatSignedPercent(0))
	assert.Equal(t, "+∞", FormatSignedPercent(math.Inf(1)))
	assert.Equal(t, "-∞", FormatSignedPercent(math.Inf(-1)))
	assert.Equal(t, "--", FormatSignedPercent(math.NaN()))
}

func TestConversion_FiniteIffLinePresentAndThreadsPositive(t *testing.T) {
	tests := []struct {
		name   string
		rec    storage.Record
		finite bool
	}{
		{"line present, threads positive", storage.Record{Threads: 10, Line: int64Ptr(3)}, true},
		{"line present, threads zero", storage.Record{Threads: 0, Line: int64Ptr(3)}, false},
		{"line absent", storage.Record{Threads: 10}, false},
		{"line zero, threads positive", storage.Record{Threads: 10, Line: int64Ptr(0)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Conversion(tt.rec)
			assert.Equal(t, tt.finite, !math.IsNaN(v) && !math.IsInf(v, 0))
		})
	}
}
