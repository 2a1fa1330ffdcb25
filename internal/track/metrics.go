package track

import (
	"fmt"
	"math"

	"github.com/runnerr0/growthtrack/internal/storage"
)

// ThreadsGrowthFloor is the denominator floor for the primary-channel growth
// rate, so a near-zero starting count does not blow up the percentage.
const ThreadsGrowthFloor = 1

// SafeRatio returns numerator/denominator, or NaN when either operand is
// non-finite or the denominator is not positive. NaN renders as a
// placeholder, never as an error.
func SafeRatio(num, den float64) float64 {
	if math.IsNaN(num) || math.IsInf(num, 0) || math.IsNaN(den) || math.IsInf(den, 0) || den <= 0 {
		return math.NaN()
	}
	return num / den
}

// GrowthRate returns the relative change (end-start)/start. A zero start is
// special-cased to signed infinity (or zero when end is also zero) so that
// "grew from nothing" renders distinctly from "no data".
func GrowthRate(start, end float64) float64 {
	if math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(end) || math.IsInf(end, 0) {
		return math.NaN()
	}
	if start == 0 {
		switch {
		case end > 0:
			return math.Inf(1)
		case end < 0:
			return math.Inf(-1)
		}
		return 0
	}
	return (end - start) / start
}

// GrowthRateFloored is GrowthRate with the denominator floored at floor.
func GrowthRateFloored(start, end, floor float64) float64 {
	if math.IsNaN(start) || math.IsInf(start, 0) || math.IsNaN(end) || math.IsInf(end, 0) {
		return math.NaN()
	}
	base := math.Max(start, floor)
	return (end - start) / base
}

// KPI is the metrics summary for one time window. All fields may be NaN or
// signed infinity; FormatPercent/FormatSignedPercent define how each renders.
type KPI struct {
	LatestConversion float64
	AvgConversion    float64
	ThreadsGrowth    float64
	LineGrowth       float64
}

// conversion is the per-record ratio of secondary to primary channel count.
// NaN when the secondary channel is untracked or the primary count is zero.
func conversion(r storage.Record) float64 {
	if r.Line == nil {
		return math.NaN()
	}
	return SafeRatio(float64(*r.Line), float64(r.Threads))
}

// ComputeKPI summarizes a window of records. The window may arrive in any
// order; it is sorted ascending by time internally.
//
// LineGrowth deliberately uses the oldest and newest records that each have
// a present line value, which may not be the endpoint records used for
// ThreadsGrowth — secondary-channel data is often sparse, and growth between
// two absent values would otherwise always be "no data".
func ComputeKPI(records []storage.Record) KPI {
	sorted := SortByTimestamp(records)

	kpi := KPI{
		LatestConversion: math.NaN(),
		AvgConversion:    math.NaN(),
		ThreadsGrowth:    math.NaN(),
		LineGrowth:       math.NaN(),
	}
	if len(sorted) == 0 {
		return kpi
	}

	var sum float64
	var count int
	for _, r := range sorted {
		if v := conversion(r); !math.IsNaN(v) {
			sum += v
			count++
		}
	}
	if count > 0 {
		kpi.AvgConversion = sum / float64(count)
	}

	// Newest record with a finite ratio, scanning backward.
	for i := len(sorted) - 1; i >= 0; i-- {
		if v := conversion(sorted[i]); !math.IsNaN(v) {
			kpi.LatestConversion = v
			break
		}
	}

	first := sorted[0]
	last := sorted[len(sorted)-1]
	kpi.ThreadsGrowth = GrowthRateFloored(float64(first.Threads), float64(last.Threads), ThreadsGrowthFloor)

	var firstLine, lastLine *storage.Record
	for i := range sorted {
		if sorted[i].Line != nil {
			firstLine = &sorted[i]
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Line != nil {
			lastLine = &sorted[i]
			break
		}
	}
	if firstLine != nil && lastLine != nil {
		kpi.LineGrowth = GrowthRate(float64(*firstLine.Line), float64(*lastLine.Line))
	}

	return kpi
}

// Conversion exposes the per-record conversion ratio for table rendering.
func Conversion(r storage.Record) float64 {
	return conversion(r)
}

// FormatPercent renders a ratio as "12.34%", or "--" for non-finite values.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "--"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatSignedPercent renders a growth rate with an explicit sign. Signed
// infinities render distinctly from "no data".
func FormatSignedPercent(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+∞"
	case math.IsInf(v, -1):
		return "-∞"
	case math.IsNaN(v):
		return "--"
	case v > 0:
		return fmt.Sprintf("+%.2f%%", v*100)
	}
	return fmt.Sprintf("%.2f%%", v*100)
}
