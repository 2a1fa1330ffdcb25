package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// Execute implements the go-flags Commander interface for RmCommand.
func (c *RmCommand) Execute(args []string) error {
	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, time.Now())
}

// executeWithStore runs the rm logic against a provided store (used by tests).
func (c *RmCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading records: %w", err)
	}

	if _, ok := repo.FindRecord(c.Args.ID); !ok {
		return fmt.Errorf("record %d not found", c.Args.ID)
	}
	if err := repo.RemoveRecord(ctx, c.Args.ID); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if err := touchLastEdited(ctx, store, now); err != nil {
		return err
	}

	if c.globals.JSON {
		return printJSON(map[string]interface{}{"deleted": c.Args.ID})
	}
	fmt.Printf("Deleted record %d\n", c.Args.ID)
	return nil
}
