package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// recordJSON is the JSON output structure for one listed record.
type recordJSON struct {
	ID         int64  `json:"id"`
	Time       string `json:"time"`
	Threads    int64  `json:"threads"`
	Line       *int64 `json:"line"`
	Conversion string `json:"conversion"`
	Note       string `json:"note,omitempty"`
	Marker     bool   `json:"marker"`
}

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, time.Now())
}

// executeWithStore runs the list logic against a provided store (used by tests).
func (c *ListCommand) executeWithStore(store storage.Store, now time.Time) error {
	if c.Sort != "time_asc" && c.Sort != "time_desc" {
		return fmt.Errorf("invalid --sort value %q (use time_asc or time_desc)", c.Sort)
	}
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
	if c.Search != "" {
		records = track.FilterRecordsByKeyword(records, c.Search)
	}
	if c.Sort == "time_desc" {
		reverseRecords(records)
	}

	if c.globals.JSON {
		out := make([]recordJSON, 0, len(records))
		for _, r := range records {
			out = append(out, recordJSON{
				ID:         r.ID,
				Time:       track.DisplayTime(r.Timestamp),
				Threads:    r.Threads,
				Line:       r.Line,
				Conversion: track.FormatPercent(track.Conversion(r)),
				Note:       r.Note,
				Marker:     r.MarkerEnabled(),
			})
		}
		return printJSON(out)
	}

	if len(records) == 0 {
		fmt.Println("No records in range.")
		return nil
	}

	fmt.Printf("%-15s %-17s %9s %7s %8s %-3s %s\n", "ID", "TIME", "THREADS", "LINE", "CONV", "MK", "NOTE")
	for _, r := range records {
		marker := ""
		if r.MarkerEnabled() {
			marker = "*"
		}
		fmt.Printf("%-15d %-17s %9d %7s %8s %-3s %s\n",
			r.ID,
			track.DisplayTime(r.Timestamp),
			r.Threads,
			formatLine(r.Line),
			track.FormatPercent(track.Conversion(r)),
			marker,
			track.ShortenText(r.Note, 40),
		)
	}
	fmt.Printf("\n%d record(s)\n", len(records))
	return nil
}

func reverseRecords(records []storage.Record) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}
