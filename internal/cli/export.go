package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/runnerr0/growthtrack/internal/codec"
	"github.com/runnerr0/growthtrack/internal/config"
	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	store, db, cfg, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, cfg, time.Now())
}

// executeWithStore runs the export logic against a provided store (used by tests).
func (c *ExportCommand) executeWithStore(store storage.Store, cfg *config.Config, now time.Time) error {
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
		return fmt.Errorf("loading data: %w", err)
	}

	doc, err := codec.BuildDocument(repo.Records(), repo.Content(), roleID, now)
	if err != nil {
		return err
	}
	data, err := codec.Marshal(doc)
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		dir, err := cfg.ExportDir()
		if err != nil {
			return err
		}
		out = filepath.Join(dir, codec.ArchiveFilename(roleID, now))
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}

	if err := store.SetSetting(ctx, storage.SettingLastSavedAt, now.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("record save time: %w", err)
	}

	if c.globals.JSON {
		return printJSON(map[string]interface{}{
			"path":    out,
			"role":    roleID,
			"records": len(doc.Modules.Dashboard.Records),
			"content": len(doc.Modules.ContentLibrary.Items),
		})
	}
	fmt.Printf("Exported %d record(s) and %d content item(s) to %s\n",
		len(doc.Modules.Dashboard.Records), len(doc.Modules.ContentLibrary.Items), out)
	return nil
}
