package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runnerr0/growthtrack/internal/config"
	"github.com/runnerr0/growthtrack/internal/report"
	"github.com/runnerr0/growthtrack/internal/storage"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete ALL GrowthTrack data.")
		fmt.Println("  - All engagement records")
		fmt.Println("  - All content library items")
		fmt.Println("  - Role id and bookkeeping settings")
		fmt.Println()
		fmt.Println("This action cannot be undone.")
		fmt.Println()
		if !confirmTyped("PURGE") {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	store, db, cfg, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, cfg)
}

// executeWithStore runs the purge logic against a provided store (used by tests).
func (c *PurgeCommand) executeWithStore(store storage.Store, cfg *config.Config) error {
	ctx := context.Background()
	if err := store.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	// Auxiliary cleanup is best-effort; leftovers are harmless.
	if cfg != nil {
		if dir, err := cfg.FontCacheDir(); err == nil {
			_ = report.NewFontSource(cfg.Report.FontURL, dir).ClearCache()
		}
		if dir, err := cfg.ExportDir(); err == nil {
			_ = os.Remove(filepath.Join(dir, defaultChartFilename))
		}
	}

	if c.globals.JSON {
		return printJSON(map[string]interface{}{
			"purged":  true,
			"message": "all data deleted",
		})
	}
	fmt.Println("Purged all data. GrowthTrack is empty.")
	return nil
}
