package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/runnerr0/growthtrack/internal/chart"
	"github.com/runnerr0/growthtrack/internal/codec"
	"github.com/runnerr0/growthtrack/internal/config"
	"github.com/runnerr0/growthtrack/internal/report"
	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// Execute implements the go-flags Commander interface for ReportCommand.
func (c *ReportCommand) Execute(args []string) error {
	store, db, cfg, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, cfg, time.Now())
}

// executeWithStore runs the report logic against a provided store (used by tests).
func (c *ReportCommand) executeWithStore(store storage.Store, cfg *config.Config, now time.Time) error {
	window, err := buildRange(c.RangeFlags)
	if err != nil {
		return err
	}

	ctx := context.Background()
	roleID, err := resolveRoleID(ctx, store, c.Role)
	if err != nil {
		return err
	}
	if roleID == "" {
		return fmt.Errorf("a role id is required: pass --role or set one with a previous export")
	}

	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading records: %w", err)
	}
	records := track.SortByTimestamp(track.FilterByRange(repo.Records(), window, now))
	if len(records) == 0 {
		return fmt.Errorf("no records in the selected range")
	}

	showMarkers, err := markersEnabled(ctx, store, c.NoMarkers)
	if err != nil {
		return err
	}
	chartPNG, err := chart.Render(chart.BuildSeries(records), chart.Options{
		Width:       cfg.Chart.Width,
		Height:      cfg.Chart.Height,
		ShowMarkers: showMarkers,
	})
	if err != nil {
		return err
	}

	// Font failure is not fatal; Build falls back to raster pages.
	var font []byte
	fontDir, err := cfg.FontCacheDir()
	if err == nil {
		font, _ = report.NewFontSource(cfg.Report.FontURL, fontDir).Load()
	}

	data, err := report.Build(report.Params{
		RoleID:      roleID,
		GeneratedAt: now,
		RangeLabel:  track.RangeLabel(records),
		KPI:         track.ComputeKPI(records),
		Records:     records,
		ChartPNG:    chartPNG,
	}, font)
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		dir, err := cfg.ExportDir()
		if err != nil {
			return err
		}
		out = filepath.Join(dir, codec.ReportFilename(roleID, now))
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if c.globals.JSON {
		return printJSON(map[string]interface{}{
			"path":     out,
			"role":     roleID,
			"records":  len(records),
			"embedded": font != nil,
		})
	}
	fmt.Printf("Wrote report (%d records) to %s\n", len(records), out)
	if font == nil {
		fmt.Println("Note: report font unavailable, used raster fallback.")
	}
	return nil
}
