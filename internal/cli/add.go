package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, time.Now())
}

// executeWithStore runs the add logic against a provided store (used by tests).
func (c *AddCommand) executeWithStore(store storage.Store, now time.Time) error {
	if c.Threads < 0 {
		return fmt.Errorf("--threads is required and must be non-negative")
	}
	if len([]rune(c.Note)) > storage.MaxNoteLen {
		return fmt.Errorf("note exceeds %d characters", storage.MaxNoteLen)
	}

	line, _, err := parseLineFlag(c.Line)
	if err != nil {
		return err
	}

	when := now
	if c.Time != "" {
		when, err = parseDateTime(c.Time)
		if err != nil {
			return err
		}
	}

	ctx := context.Background()
	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading records: %w", err)
	}

	nowISO := now.Format(time.RFC3339)
	enabled := c.Note != "" && !c.NoMarker
	rec := storage.Record{
		ID:              track.NewID(now),
		Timestamp:       when.UnixMilli(),
		Threads:         c.Threads,
		Line:            line,
		Note:            c.Note,
		NoteLineEnabled: &enabled,
		CreatedAt:       nowISO,
		UpdatedAt:       nowISO,
	}

	if err := repo.SaveRecord(ctx, &rec); err != nil {
		return fmt.Errorf("storing record: %w", err)
	}
	if err := touchLastEdited(ctx, store, now); err != nil {
		return err
	}

	if c.globals.JSON {
		return printJSON(map[string]interface{}{
			"id":      rec.ID,
			"time":    track.DisplayTime(rec.Timestamp),
			"threads": rec.Threads,
			"line":    rec.Line,
			"note":    rec.Note,
			"marker":  rec.MarkerEnabled(),
		})
	}

	fmt.Printf("Added record %d (%s)\n", rec.ID, track.DisplayTime(rec.Timestamp))
	fmt.Printf("  Threads: %d\n", rec.Threads)
	fmt.Printf("  LINE:    %s\n", formatLine(rec.Line))
	if rec.HasNote() {
		fmt.Printf("  Note:    %s\n", rec.Note)
	}
	return nil
}
