package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/growthtrack/internal/config"
	"github.com/runnerr0/growthtrack/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// testStore creates a temporary SQLite database with migrations applied and
// returns a storage.Store along with a cleanup function.
func testStore(t *testing.T) (*storage.SQLiteStore, func()) {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	require.NoError(t, err)

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
		db.Close()
	}
	return store, cleanup
}

// testConfig returns a config rooted in temp directories with font fetching
// disabled.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Path = t.TempDir()
	cfg.Export.Dir = t.TempDir()
	cfg.Report.FontURL = ""
	return cfg
}

func int64Ptr(v int64) *int64 { return &v }

// seedRecord inserts a record directly through the store.
func seedRecord(t *testing.T, store storage.Store, id, ts, threads int64, line *int64, note string) {
	t.Helper()
	rec := storage.Record{
		ID:        id,
		Timestamp: ts,
		Threads:   threads,
		Line:      line,
		Note:      note,
		CreatedAt: time.Now().Format(time.RFC3339),
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	require.NoError(t, store.PutRecord(context.Background(), &rec))
}

func seedContent(t *testing.T, store storage.Store, id int64, title, body string) {
	t.Helper()
	item := storage.ContentItem{
		ID:        id,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().Format(time.RFC3339),
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	require.NoError(t, store.PutContent(context.Background(), &item))
}

func countRecords(t *testing.T, store storage.Store) int {
	t.Helper()
	records, err := store.ListRecords(context.Background())
	require.NoError(t, err)
	return len(records)
}

func countContent(t *testing.T, store storage.Store) int {
	t.Helper()
	items, err := store.ListContent(context.Background())
	require.NoError(t, err)
	return len(items)
}
