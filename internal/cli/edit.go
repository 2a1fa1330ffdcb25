package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// Execute implements the go-flags Commander interface for EditCommand.
func (c *EditCommand) Execute(args []string) error {
	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, time.Now())
}

// executeWithStore runs the edit logic against a provided store (used by tests).
// Unset flags leave the field unchanged; the id and createdAt are preserved
// and updatedAt is refreshed.
func (c *EditCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading records: %w", err)
	}

	rec, ok := repo.FindRecord(c.Args.ID)
	if !ok {
		return fmt.Errorf("record %d not found", c.Args.ID)
	}

	if c.Time != "" {
		when, err := parseDateTime(c.Time)
		if err != nil {
			return err
		}
		rec.Timestamp = when.UnixMilli()
	}
	if c.Threads != nil {
		if *c.Threads < 0 {
			return fmt.Errorf("--threads must be non-negative")
		}
		rec.Threads = *c.Threads
	}
	if line, set, err := parseLineFlag(c.Line); err != nil {
		return err
	} else if set {
		rec.Line = line
	}
	if c.Note != nil {
		if len([]rune(*c.Note)) > storage.MaxNoteLen {
			return fmt.Errorf("note exceeds %d characters", storage.MaxNoteLen)
		}
		rec.Note = *c.Note
	}

	// An emptied note always drops its marker; otherwise the stored flag
	// survives the edit unless --marker overrides it.
	switch strings.ToLower(c.Marker) {
	case "":
		if !rec.HasNote() {
			disabled := false
			rec.NoteLineEnabled = &disabled
		}
	case "on":
		enabled := true
		rec.NoteLineEnabled = &enabled
	case "off":
		disabled := false
		rec.NoteLineEnabled = &disabled
	default:
		return fmt.Errorf("invalid --marker value %q (use on or off)", c.Marker)
	}

	rec.UpdatedAt = now.Format(time.RFC3339)

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

	fmt.Printf("Updated record %d (%s)\n", rec.ID, track.DisplayTime(rec.Timestamp))
	return nil
}
