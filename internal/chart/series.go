package chart

import (
	"math"

	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// Series is the chart-ready view of a record snapshot: one category per
// record in time-ascending order, with parallel value slices. A missing
// line value is NaN so gaps stay gaps instead of plotting as zero.
type Series struct {
	IDs     []int64
	Labels  []string
	Threads []float64
	Line    []float64
	Markers []track.Marker
}

// Len returns the number of categories.
func (s Series) Len() int { return len(s.IDs) }

// Empty reports whether there is anything to plot.
func (s Series) Empty() bool { return len(s.IDs) == 0 }

// BuildSeries converts records into plot series. Input order is not
// trusted; records are re-sorted by timestamp first.
func BuildSeries(records []storage.Record) Series {
	sorted := track.SortByTimestamp(records)
	s := Series{
		IDs:     make([]int64, 0, len(sorted)),
		Labels:  make([]string, 0, len(sorted)),
		Threads: make([]float64, 0, len(sorted)),
		Line:    make([]float64, 0, len(sorted)),
	}
	for _, r := range sorted {
		s.IDs = append(s.IDs, r.ID)
		s.Labels = append(s.Labels, track.ChartTime(r.Timestamp))
		s.Threads = append(s.Threads, float64(r.Threads))
		if r.Line != nil {
			s.Line = append(s.Line, float64(*r.Line))
		} else {
			s.Line = append(s.Line, math.NaN())
		}
	}
	s.Markers = track.BuildMarkers(sorted)
	return s
}

// MaxThreads returns the largest threads value, 0 when empty.
func (s Series) MaxThreads() float64 {
	max := 0.0
	for _, v := range s.Threads {
		if v > max {
			max = v
		}
	}
	return max
}

// MaxLine returns the largest line value, skipping gaps, 0 when none.
func (s Series) MaxLine() float64 {
	max := 0.0
	for _, v := range s.Line {
		if !math.IsNaN(v) && v > max {
			max = v
		}
	}
	return max
}
