package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/growthtrack/internal/config"
	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string `json:"version"`
	DatabasePath      string `json:"database_path"`
	DatabaseSizeBytes int64  `json:"database_size_bytes"`
	TotalRecords      int64  `json:"total_records"`
	TotalContent      int64  `json:"total_content"`
	OldestRecord      string `json:"oldest_record,omitempty"`
	NewestRecord      string `json:"newest_record,omitempty"`
	RoleID            string `json:"role_id,omitempty"`
	LastEditedAt      string `json:"last_edited_at,omitempty"`
	LastSavedAt       string `json:"last_saved_at,omitempty"`
	UnsavedChanges    bool   `json:"unsaved_changes"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	store, db, cfg, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, cfg)
}

// executeWithStore runs status against a provided store (used by tests).
func (c *StatusCommand) executeWithStore(store storage.Store, cfg *config.Config) error {
	ctx := context.Background()

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbPath := ""
	if cfg != nil {
		dbPath, _ = cfg.DBPath()
	}

	roleID, err := store.GetSetting(ctx, storage.SettingRoleID)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	edited, err := store.GetSetting(ctx, storage.SettingLastEditedAt)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	saved, err := store.GetSetting(ctx, storage.SettingLastSavedAt)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	unsaved, err := hasUnsavedChanges(ctx, store)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		out := statusJSON{
			Version:           c.version,
			DatabasePath:      dbPath,
			DatabaseSizeBytes: stats.DatabaseSizeBytes,
			TotalRecords:      stats.TotalRecords,
			TotalContent:      stats.TotalContent,
			RoleID:            roleID,
			LastEditedAt:      edited,
			LastSavedAt:       saved,
			UnsavedChanges:    unsaved,
		}
		if stats.TotalRecords > 0 {
			out.OldestRecord = track.DisplayTime(stats.OldestTimestamp)
			out.NewestRecord = track.DisplayTime(stats.NewestTimestamp)
		}
		return printJSON(out)
	}

	fmt.Println("GrowthTrack Status")
	fmt.Println("==================")
	fmt.Printf("Version:    %s\n", c.version)
	fmt.Printf("Database:   %s (%s)\n", dbPath, formatBytes(stats.DatabaseSizeBytes))
	fmt.Printf("Records:    %d\n", stats.TotalRecords)
	fmt.Printf("Content:    %d\n", stats.TotalContent)
	if stats.TotalRecords > 0 {
		fmt.Printf("Oldest:     %s\n", track.DisplayTime(stats.OldestTimestamp))
		fmt.Printf("Newest:     %s\n", track.DisplayTime(stats.NewestTimestamp))
	}
	if roleID != "" {
		fmt.Printf("Role:       %s\n", roleID)
	}
	if edited != "" {
		fmt.Printf("Last edit:  %s\n", edited)
	}
	if saved != "" {
		fmt.Printf("Last save:  %s\n", saved)
	}
	if unsaved {
		fmt.Println("\nUnsaved changes: edits exist since the last export.")
	}
	return nil
}
