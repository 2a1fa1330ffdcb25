package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/runnerr0/growthtrack/internal/chart"
	"github.com/runnerr0/growthtrack/internal/config"
	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// defaultChartFilename is where chart renders land when --out is not given.
const defaultChartFilename = "growth-chart.png"

// Execute implements the go-flags Commander interface for ChartCommand.
func (c *ChartCommand) Execute(args []string) error {
	store, db, cfg, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, cfg, time.Now())
}

// executeWithStore runs the chart logic against a provided store (used by tests).
func (c *ChartCommand) executeWithStore(store storage.Store, cfg *config.Config, now time.Time) error {
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
	showMarkers, err := markersEnabled(ctx, store, c.NoMarkers)
	if err != nil {
		return err
	}

	data, err := chart.Render(chart.BuildSeries(records), chart.Options{
		Width:       cfg.Chart.Width,
		Height:      cfg.Chart.Height,
		ShowMarkers: showMarkers,
	})
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		dir, err := cfg.ExportDir()
		if err != nil {
			return err
		}
		out = filepath.Join(dir, defaultChartFilename)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}

	if c.globals.JSON {
		return printJSON(map[string]interface{}{
			"path":    out,
			"records": len(records),
			"markers": showMarkers,
		})
	}
	fmt.Printf("Wrote chart (%d records) to %s\n", len(records), out)
	return nil
}

// markersEnabled resolves the marker overlay toggle: the stored preference
// unless the command line disables it for this render.
func markersEnabled(ctx context.Context, store storage.Store, noMarkers bool) (bool, error) {
	if noMarkers {
		return false, nil
	}
	stored, err := store.GetSetting(ctx, storage.SettingShowMarkers)
	if err != nil {
		return false, fmt.Errorf("read marker setting: %w", err)
	}
	return stored != "false", nil
}
