package storage

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner_FreshDB(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)

	err := runner.Run()
	require.NoError(t, err)

	expectedTables := []string{
		"records",
		"content_items",
		"settings",
		"schema_migrations",
	}
	for _, table := range expectedTables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrationRunner_IndexesCreated(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	expectedIndexes := []string{
		"idx_records_ts",
		"idx_content_updated_at",
	}
	for _, idx := range expectedIndexes {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx,
		).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
		assert.Equal(t, idx, name)
	}
}

func TestMigrationRunner_Idempotent(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)

	require.NoError(t, runner.Run())
	require.NoError(t, runner.Run())

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "should have exactly 1 migration recorded after double-run")
}

func TestMigrationRunner_SchemaMigrationsTracking(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	var version int
	var name string
	err := db.QueryRow("SELECT version, name FROM schema_migrations WHERE version = 1").Scan(&version, &name)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.Equal(t, "initial_schema", name)
}

func TestMigrationRunner_NegativeThreadsRejected(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	_, err := db.Exec("INSERT INTO records (id, ts, threads) VALUES (1, 1000, -5)")
	assert.Error(t, err, "CHECK constraint should reject negative threads")
}

func TestMigrationRunner_NullLineAccepted(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	_, err := db.Exec("INSERT INTO records (id, ts, threads, line) VALUES (1, 1000, 5, NULL)")
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO records (id, ts, threads, line) VALUES (2, 2000, 5, -1)")
	assert.Error(t, err, "CHECK constraint should reject negative line")
}

func TestMigrationRunner_WALMode(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	var journalMode string
	err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	require.NoError(t, err)
	// In-memory databases report "memory"; WAL only takes effect file-backed.
	assert.Contains(t, []string{"wal", "memory"}, journalMode,
		"journal_mode should be wal (file) or memory (in-memory)")
}
