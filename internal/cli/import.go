package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/growthtrack/internal/codec"
	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, time.Now())
}

// executeWithStore runs the import logic against a provided store (used by tests).
// Import is replace-all: the archive is validated first, then both
// collections are cleared and the accepted rows written. Nothing is touched
// when the file does not parse as a known format.
func (c *ImportCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()

	if !c.Force {
		unsaved, err := hasUnsavedChanges(ctx, store)
		if err != nil {
			return err
		}
		if unsaved {
			return fmt.Errorf("unsaved changes exist (no export since the last edit); use --force to import anyway")
		}
	}

	data, err := os.ReadFile(c.Args.File)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}

	result, err := codec.ParseDocument(data, now)
	if err != nil {
		return err
	}

	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading data: %w", err)
	}
	if err := repo.ClearRecords(ctx); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}
	if err := repo.ClearContent(ctx); err != nil {
		return fmt.Errorf("clearing content: %w", err)
	}
	for i := range result.Records {
		if err := store.PutRecord(ctx, &result.Records[i]); err != nil {
			return fmt.Errorf("storing record: %w", err)
		}
	}
	for i := range result.Items {
		if err := store.PutContent(ctx, &result.Items[i]); err != nil {
			return fmt.Errorf("storing content item: %w", err)
		}
	}

	// The archive's identity wins when it carries one.
	if result.RoleID != "" {
		if err := store.SetSetting(ctx, storage.SettingRoleID, result.RoleID); err != nil {
			return fmt.Errorf("save role id: %w", err)
		}
	}
	if err := touchLastEdited(ctx, store, now); err != nil {
		return err
	}

	if c.globals.JSON {
		return printJSON(map[string]interface{}{
			"records": len(result.Records),
			"content": len(result.Items),
			"role":    result.RoleID,
		})
	}
	fmt.Printf("Imported %d record(s) and %d content item(s)\n", len(result.Records), len(result.Items))
	if result.RoleID != "" {
		fmt.Printf("Role id set to %s\n", result.RoleID)
	}
	return nil
}

// hasUnsavedChanges reports whether an edit happened after the last export.
func hasUnsavedChanges(ctx context.Context, store storage.Store) (bool, error) {
	edited, err := store.GetSetting(ctx, storage.SettingLastEditedAt)
	if err != nil {
		return false, fmt.Errorf("read bookkeeping: %w", err)
	}
	if edited == "" {
		return false, nil
	}
	saved, err := store.GetSetting(ctx, storage.SettingLastSavedAt)
	if err != nil {
		return false, fmt.Errorf("read bookkeeping: %w", err)
	}
	if saved == "" {
		return true, nil
	}
	editedAt, err1 := time.Parse(time.RFC3339, edited)
	savedAt, err2 := time.Parse(time.RFC3339, saved)
	if err1 != nil || err2 != nil {
		return false, nil
	}
	return editedAt.After(savedAt), nil
}
