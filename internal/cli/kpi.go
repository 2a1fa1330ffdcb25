package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// kpiJSON is the JSON output structure for the kpi command. Values are the
// formatted strings, so non-finite rates survive the trip ("--", "+∞").
type kpiJSON struct {
	Range            string `json:"range"`
	Records          int    `json:"records"`
	LatestConversion string `json:"latest_conversion"`
	AvgConversion    string `json:"avg_conversion"`
	ThreadsGrowth    string `json:"threads_growth"`
	LineGrowth       string `json:"line_growth"`
}

// Execute implements the go-flags Commander interface for KpiCommand.
func (c *KpiCommand) Execute(args []string) error {
	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, time.Now())
}

// executeWithStore runs the kpi logic against a provided store (used by tests).
func (c *KpiCommand) executeWithStore(store storage.Store, now time.Time) error {
	window, err := buildRange(c.RangeFlags)
	if err != nil {
		return err
	}

	ctx := context.Background()
	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading records: %w", err)
	}

	records := track.FilterByRange(repo.Records(), window, now)
	kpi := track.ComputeKPI(records)
	label := track.RangeLabel(track.SortByTimestamp(records))

	if c.globals.JSON {
		return printJSON(kpiJSON{
			Range:            label,
			Records:          len(records),
			LatestConversion: track.FormatPercent(kpi.LatestConversion),
			AvgConversion:    track.FormatPercent(kpi.AvgConversion),
			ThreadsGrowth:    track.FormatSignedPercent(kpi.ThreadsGrowth),
			LineGrowth:       track.FormatSignedPercent(kpi.LineGrowth),
		})
	}

	fmt.Println("KPI Summary")
	fmt.Println("===========")
	fmt.Printf("Range:              %s\n", label)
	fmt.Printf("Records:            %d\n", len(records))
	fmt.Printf("Latest conversion:  %s\n", track.FormatPercent(kpi.LatestConversion))
	fmt.Printf("Average conversion: %s\n", track.FormatPercent(kpi.AvgConversion))
	fmt.Printf("Threads growth:     %s\n", track.FormatSignedPercent(kpi.ThreadsGrowth))
	fmt.Printf("LINE growth:        %s\n", track.FormatSignedPercent(kpi.LineGrowth))
	return nil
}
