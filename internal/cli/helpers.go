package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/growthtrack/internal/codec"
	"github.com/runnerr0/growthtrack/internal/config"
	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// loadConfig resolves the config file, honoring the --config override.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.LoadOrCreateAt(globals.Config)
	}
	return config.LoadOrCreate()
}

// openStore opens the configured SQLite database with migrations applied.
func openStore(globals *GlobalFlags) (*storage.SQLiteStore, *sql.DB, *config.Config, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, nil, nil, err
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, cfg, nil
}

// datetime layouts accepted from the command line, most specific first
var inputTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDateTime parses a user-supplied local time.
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")", s)
}

// parseLineFlag interprets the --line value: empty means unchanged/untracked,
// "none" explicitly clears, anything else must be a non-negative integer.
func parseLineFlag(s string) (*int64, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false, nil
	}
	if strings.EqualFold(s, "none") {
		return nil, true, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return nil, false, fmt.Errorf("invalid --line value %q (non-negative integer or \"none\")", s)
	}
	return &n, true, nil
}

// buildRange converts range flags into a record window.
func buildRange(f RangeFlags) (track.Range, error) {
	kind, err := track.ParseRangeKind(f.Range)
	if err != nil {
		return track.Range{}, err
	}
	if kind != track.RangeCustom && (f.From != "" || f.To != "") {
		return track.Range{}, fmt.Errorf("--from/--to require --range custom")
	}
	return track.Range{Kind: kind, Start: f.From, End: f.To}, nil
}

// resolveRoleID prefers the flag, falling back to the stored setting. A
// role passed on the command line is persisted for later runs.
func resolveRoleID(ctx context.Context, store storage.Store, flag string) (string, error) {
	if id := codec.SanitizeRoleID(flag); id != "" {
		if err := store.SetSetting(ctx, storage.SettingRoleID, id); err != nil {
			return "", fmt.Errorf("save role id: %w", err)
		}
		return id, nil
	}
	stored, err := store.GetSetting(ctx, storage.SettingRoleID)
	if err != nil {
		return "", fmt.Errorf("read role id: %w", err)
	}
	return codec.SanitizeRoleID(stored), nil
}

// touchLastEdited records that a mutating command ran.
func touchLastEdited(ctx context.Context, store storage.Store, now time.Time) error {
	return store.SetSetting(ctx, storage.SettingLastEditedAt, now.Format(time.RFC3339))
}

// confirm prompts for a yes/no answer and returns true only on "y"/"yes".
func confirm(prompt string) bool {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// confirmTyped prompts until the user types the exact word, once.
func confirmTyped(word string) bool {
	fmt.Printf("Type %q to confirm: ", word)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	return strings.TrimSpace(scanner.Text()) == word
}

// printJSON writes indented JSON to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatLine renders an optional LINE count for table output.
func formatLine(line *int64) string {
	if line == nil {
		return "-"
	}
	return strconv.FormatInt(*line, 10)
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
