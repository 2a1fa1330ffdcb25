package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// Execute implements the go-flags Commander interface for ClearCommand.
func (c *ClearCommand) Execute(args []string) error {
	if c.Records == c.Content {
		return fmt.Errorf("clear requires exactly one of --records or --content")
	}

	kind := "records"
	if c.Content {
		kind = "content items"
	}
	if !c.Force {
		if !confirm(fmt.Sprintf("Delete ALL %s? This cannot be undone. [y/N] ", kind)) {
			return fmt.Errorf("aborted")
		}
		if !confirm("Are you sure? [y/N] ") {
			return fmt.Errorf("aborted")
		}
	}

	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, time.Now())
}

// executeWithStore runs the clear logic against a provided store (used by tests).
func (c *ClearCommand) executeWithStore(store storage.Store, now time.Time) error {
	if c.Records == c.Content {
		return fmt.Errorf("clear requires exactly one of --records or --content")
	}

	ctx := context.Background()
	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading data: %w", err)
	}

	var cleared string
	if c.Records {
		if err := repo.ClearRecords(ctx); err != nil {
			return fmt.Errorf("clearing records: %w", err)
		}
		cleared = "records"
	} else {
		if err := repo.ClearContent(ctx); err != nil {
			return fmt.Errorf("clearing content: %w", err)
		}
		cleared = "content"
	}
	if err := touchLastEdited(ctx, store, now); err != nil {
		return err
	}

	if c.globals.JSON {
		return printJSON(map[string]interface{}{"cleared": cleared})
	}
	fmt.Printf("Cleared all %s.\n", cleared)
	return nil
}
