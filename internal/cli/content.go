package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/growthtrack/internal/storage"
	"github.com/runnerr0/growthtrack/internal/track"
)

// contentJSON is the JSON output structure for content items.
type contentJSON struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type,omitempty"`
	Tags      string `json:"tags,omitempty"`
	Ref       string `json:"ref,omitempty"`
	Body      string `json:"body,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// validateContentFields enforces the entry caps shared by add and edit.
func validateContentFields(item *storage.ContentItem) error {
	checks := []struct {
		name  string
		value string
		max   int
	}{
		{"title", item.Title, storage.MaxTitleLen},
		{"type", item.Type, storage.MaxTypeLen},
		{"tags", item.Tags, storage.MaxTagsLen},
		{"ref", item.Ref, storage.MaxRefLen},
		{"body", item.Body, storage.MaxBodyLen},
	}
	for _, c := range checks {
		if len([]rune(c.value)) > c.max {
			return fmt.Errorf("%s exceeds %d characters", c.name, c.max)
		}
	}
	return nil
}

// resolveBody merges the --body and --body-file flags.
func resolveBody(inline, file string) (string, error) {
	if inline != "" && file != "" {
		return "", fmt.Errorf("--body and --body-file are mutually exclusive")
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading body file: %w", err)
		}
		return string(data), nil
	}
	return inline, nil
}

// Execute implements the go-flags Commander interface for ContentAddCommand.
func (c *ContentAddCommand) Execute(args []string) error {
	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, time.Now())
}

// executeWithStore runs the content add logic against a provided store (used by tests).
func (c *ContentAddCommand) executeWithStore(store storage.Store, now time.Time) error {
	body, err := resolveBody(c.Body, c.BodyFile)
	if err != nil {
		return err
	}
	if c.Title == "" {
		return fmt.Errorf("--title is required")
	}
	if body == "" {
		return fmt.Errorf("a body is required (--body or --body-file)")
	}

	nowISO := now.Format(time.RFC3339)
	item := storage.ContentItem{
		ID:        track.NewID(now),
		Title:     c.Title,
		Type:      c.Type,
		Tags:      c.Tags,
		Ref:       c.Ref,
		Body:      body,
		CreatedAt: nowISO,
		UpdatedAt: nowISO,
	}
	if err := validateContentFields(&item); err != nil {
		return err
	}

	ctx := context.Background()
	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	if err := repo.SaveContent(ctx, &item); err != nil {
		return fmt.Errorf("storing content item: %w", err)
	}
	if err := touchLastEdited(ctx, store, now); err != nil {
		return err
	}

	if c.globals.JSON {
		return printJSON(contentJSON{ID: item.ID, Title: item.Title, Type: item.Type, Tags: item.Tags, Ref: item.Ref, UpdatedAt: item.UpdatedAt})
	}
	fmt.Printf("Added content item %d: %s\n", item.ID, item.Title)
	return nil
}

// Execute implements the go-flags Commander interface for ContentEditCommand.
func (c *ContentEditCommand) Execute(args []string) error {
	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, time.Now())
}

// executeWithStore runs the content edit logic against a provided store (used by tests).
func (c *ContentEditCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	item, ok := repo.FindContent(c.Args.ID)
	if !ok {
		return fmt.Errorf("content item %d not found", c.Args.ID)
	}

	if c.Title != nil {
		item.Title = *c.Title
	}
	if c.Type != nil {
		item.Type = *c.Type
	}
	if c.Tags != nil {
		item.Tags = *c.Tags
	}
	if c.Ref != nil {
		item.Ref = *c.Ref
	}
	if c.BodyFile != "" {
		if c.Body != nil {
			return fmt.Errorf("--body and --body-file are mutually exclusive")
		}
		data, err := os.ReadFile(c.BodyFile)
		if err != nil {
			return fmt.Errorf("reading body file: %w", err)
		}
		item.Body = string(data)
	} else if c.Body != nil {
		item.Body = *c.Body
	}

	if item.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if item.Body == "" {
		return fmt.Errorf("body cannot be empty")
	}
	if err := validateContentFields(&item); err != nil {
		return err
	}
	item.UpdatedAt = now.Format(time.RFC3339)

	if err := repo.SaveContent(ctx, &item); err != nil {
		return fmt.Errorf("storing content item: %w", err)
	}
	if err := touchLastEdited(ctx, store, now); err != nil {
		return err
	}

	if c.globals.JSON {
		return printJSON(contentJSON{ID: item.ID, Title: item.Title, Type: item.Type, Tags: item.Tags, Ref: item.Ref, UpdatedAt: item.UpdatedAt})
	}
	fmt.Printf("Updated content item %d: %s\n", item.ID, item.Title)
	return nil
}

// Execute implements the go-flags Commander interface for ContentRmCommand.
func (c *ContentRmCommand) Execute(args []string) error {
	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store, time.Now())
}

// executeWithStore runs the content rm logic against a provided store (used by tests).
func (c *ContentRmCommand) executeWithStore(store storage.Store, now time.Time) error {
	ctx := context.Background()
	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	if _, ok := repo.FindContent(c.Args.ID); !ok {
		return fmt.Errorf("content item %d not found", c.Args.ID)
	}
	if err := repo.RemoveContent(ctx, c.Args.ID); err != nil {
		return fmt.Errorf("deleting content item: %w", err)
	}
	if err := touchLastEdited(ctx, store, now); err != nil {
		return err
	}

	if c.globals.JSON {
		return printJSON(map[string]interface{}{"deleted": c.Args.ID})
	}
	fmt.Printf("Deleted content item %d\n", c.Args.ID)
	return nil
}

// Execute implements the go-flags Commander interface for ContentListCommand.
func (c *ContentListCommand) Execute(args []string) error {
	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the content list logic against a provided store (used by tests).
// Items come back from the store most recently updated first.
func (c *ContentListCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	items := repo.Content()
	if c.Search != "" {
		items = track.FilterContentByKeyword(items, c.Search)
	}

	if c.globals.JSON {
		out := make([]contentJSON, 0, len(items))
		for _, it := range items {
			out = append(out, contentJSON{ID: it.ID, Title: it.Title, Type: it.Type, Tags: it.Tags, Ref: it.Ref, UpdatedAt: it.UpdatedAt})
		}
		return printJSON(out)
	}

	if len(items) == 0 {
		fmt.Println("No content items.")
		return nil
	}

	fmt.Printf("%-15s %-32s %-12s %s\n", "ID", "TITLE", "TYPE", "TAGS")
	for _, it := range items {
		fmt.Printf("%-15d %-32s %-12s %s\n",
			it.ID,
			track.ShortenText(it.Title, 30),
			track.ShortenText(it.Type, 10),
			track.ShortenText(it.Tags, 30),
		)
	}
	fmt.Printf("\n%d item(s)\n", len(items))
	return nil
}

// Execute implements the go-flags Commander interface for ContentViewCommand.
func (c *ContentViewCommand) Execute(args []string) error {
	store, db, _, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()
	defer db.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the content view logic against a provided store (used by tests).
func (c *ContentViewCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	repo := track.NewRepository(store)
	if err := repo.Refresh(ctx); err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	item, ok := repo.FindContent(c.Args.ID)
	if !ok {
		return fmt.Errorf("content item %d not found", c.Args.ID)
	}

	// The ref is validated here, not at entry: only http(s) URLs print as links.
	link := track.SafeExternalURL(item.Ref)

	if c.globals.JSON {
		out := contentJSON{ID: item.ID, Title: item.Title, Type: item.Type, Tags: item.Tags, Ref: link, Body: item.Body, UpdatedAt: item.UpdatedAt}
		return printJSON(out)
	}

	fmt.Printf("Title:   %s\n", item.Title)
	if item.Type != "" {
		fmt.Printf("Type:    %s\n", item.Type)
	}
	if item.Tags != "" {
		fmt.Printf("Tags:    %s\n", item.Tags)
	}
	if link != "" {
		fmt.Printf("Ref:     %s\n", link)
	} else if item.Ref != "" {
		fmt.Printf("Ref:     (not a valid http(s) link)\n")
	}
	fmt.Printf("Updated: %s\n", item.UpdatedAt)
	fmt.Println()
	fmt.Println(item.Body)
	return nil
}
