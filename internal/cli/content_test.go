package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/growthtrack/internal/storage"
)

func TestContentAddCommand_Basic(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	cmd := &ContentAddCommand{
		Title:   "Reel script",
		Type:    "script",
		Tags:    "reel,launch",
		Body:    "hook, demo, cta",
		globals: &GlobalFlags{},
	}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, testNow))
	})
	assert.Contains(t, output, "Added content item")
	assert.Contains(t, output, "Reel script")
	assert.Equal(t, 1, countContent(t, store))
}

func TestContentAddCommand_BodyFromFile(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("long form body"), 0644))

	cmd := &ContentAddCommand{Title: "Post draft", BodyFile: path, globals: &GlobalFlags{}}
	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, testNow))
	})

	view := &ContentViewCommand{globals: &GlobalFlags{}}
	items, err := store.ListContent(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	view.Args.ID = items[0].ID
	output := captureOutput(t, func() {
		require.NoError(t, view.executeWithStore(store))
	})
	assert.Contains(t, output, "long form body")
}

func TestContentAddCommand_Validation(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	cmd := &ContentAddCommand{Body: "b", globals: &GlobalFlags{}}
	err := cmd.executeWithStore(store, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--title is required")

	cmd = &ContentAddCommand{Title: "t", globals: &GlobalFlags{}}
	err = cmd.executeWithStore(store, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body is required")

	cmd = &ContentAddCommand{Title: "t", Body: "b", BodyFile: "x.txt", globals: &GlobalFlags{}}
	err = cmd.executeWithStore(store, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")

	cmd = &ContentAddCommand{Title: strings.Repeat("x", storage.MaxTitleLen+1), Body: "b", globals: &GlobalFlags{}}
	err = cmd.executeWithStore(store, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title exceeds")
}

func TestContentEditCommand_PartialUpdate(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()
	seedContent(t, store, 1, "Old title", "old body")

	title := "New title"
	cmd := &ContentEditCommand{Title: &title, globals: &GlobalFlags{}}
	cmd.Args.ID = 1
	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, testNow))
	})

	items, err := store.ListContent(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "New title", items[0].Title)
	assert.Equal(t, "old body", items[0].Body)
	assert.Equal(t, testNow.Format(time.RFC3339), items[0].UpdatedAt)
}

func TestContentEditCommand_RejectsEmptyTitle(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()
	seedContent(t, store, 1, "Title", "body")

	empty := ""
	cmd := &ContentEditCommand{Title: &empty, globals: &GlobalFlags{}}
	cmd.Args.ID = 1
	err := cmd.executeWithStore(store, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title cannot be empty")
}

func TestContentEditCommand_NotFound(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	cmd := &ContentEditCommand{globals: &GlobalFlags{}}
	cmd.Args.ID = 42
	err := cmd.executeWithStore(store, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content item 42 not found")
}

func TestContentRmCommand(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()
	seedContent(t, store, 1, "Title", "body")

	cmd := &ContentRmCommand{globals: &GlobalFlags{}}
	cmd.Args.ID = 1
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, testNow))
	})
	assert.Contains(t, output, "Deleted content item 1")
	assert.Equal(t, 0, countContent(t, store))

	cmd.Args.ID = 2
	err := cmd.executeWithStore(store, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestContentListCommand_SearchAndEmpty(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()

	cmd := &ContentListCommand{globals: &GlobalFlags{}}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})
	assert.Contains(t, output, "No content items.")

	seedContent(t, store, 1, "Launch teaser", "short teaser copy")
	seedContent(t, store, 2, "Weekly recap", "recap body")

	cmd = &ContentListCommand{Search: "teaser", globals: &GlobalFlags{}}
	output = captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})
	assert.Contains(t, output, "Launch teaser")
	assert.NotContains(t, output, "Weekly recap")
	assert.Contains(t, output, "1 item(s)")
}

func TestContentViewCommand_RefValidation(t *testing.T) {
	store, cleanup := testStore(t)
	defer cleanup()
	item := storage.ContentItem{
		ID: 1, Title: "Asset", Ref: "javascript:alert(1)", Body: "body",
		CreatedAt: testNow.Format(time.RFC3339), UpdatedAt: testNow.Format(time.RFC3339),
	}
	require.NoError(t, store.PutContent(context.Background(), &item))

	cmd := &ContentViewCommand{globals: &GlobalFlags{}}
	cmd.Args.ID = 1
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})
	assert.Contains(t, output, "(not a valid http(s) link)")
	assert.NotContains(t, output, "javascript:")

	item.ID = 2
	item.Ref = "https://example.com/post"
	require.NoError(t, store.PutContent(context.Background(), &item))
	cmd.Args.ID = 2
	output = captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})
	assert.Contains(t, output, "Ref:     https://example.com/post")
}
