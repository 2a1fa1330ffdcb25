package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Store defines the interface for GrowthTrack data operations. Records and
// content items are two independent entity kinds; clearing one never touches
// the other. ListRecords always returns records sorted ascending by timestamp.
type Store interface {
	PutRecord(ctx context.Context, record *Record) error
	DeleteRecord(ctx context.Context, id int64) error
	ListRecords(ctx context.Context) ([]Record, error)
	ClearRecords(ctx context.Context) error

	PutContent(ctx context.Context, item *ContentItem) error
	DeleteContent(ctx context.Context, id int64) error
	ListContent(ctx context.Context) ([]ContentItem, error)
	ClearContent(ctx context.Context) error

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	putRecord     *sql.Stmt
	deleteRecord  *sql.Stmt
	putContent    *sql.Stmt
	deleteContent *sql.Stmt
	getSetting    *sql.Stmt
	setSetting    *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.putRecord, err = s.db.Prepare(`
		INSERT INTO records (id, ts, threads, line, note, note_line_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ts = excluded.ts,
			threads = excluded.threads,
			line = excluded.line,
			note = excluded.note,
			note_line_enabled = excluded.note_line_enabled,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}

	s.deleteRecord, err = s.db.Prepare(`DELETE FROM records WHERE id = ?`)
	if err != nil {
		return err
	}

	s.putContent, err = s.db.Prepare(`
		INSERT INTO content_items (id, title, type, tags, ref, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			type = excluded.type,
			tags = excluded.tags,
			ref = excluded.ref,
			body = excluded.body,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}

	s.deleteContent, err = s.db.Prepare(`DELETE FROM content_items WHERE id = ?`)
	if err != nil {
		return err
	}

	s.getSetting, err = s.db.Prepare(`SELECT value FROM settings WHERE key = ?`)
	if err != nil {
		return err
	}

	s.setSetting, err = s.db.Prepare(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`)
	return err
}

// PutRecord inserts or replaces a record by its ID.
func (s *SQLiteStore) PutRecord(ctx context.Context, record *Record) error {
	var line sql.NullInt64
	if record.Line != nil {
		line = sql.NullInt64{Int64: *record.Line, Valid: true}
	}
	var flag sql.NullBool
	if record.NoteLineEnabled != nil {
		flag = sql.NullBool{Bool: *record.NoteLineEnabled, Valid: true}
	}

	_, err := s.putRecord.ExecContext(ctx,
		record.ID, record.Timestamp, record.Threads, line, record.Note,
		flag, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	return nil
}

// DeleteRecord removes a record by ID.
func (s *SQLiteStore) DeleteRecord(ctx context.Context, id int64) error {
	res, err := s.deleteRecord.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("record %d not found", id)
	}

	return nil
}

// ListRecords returns all records sorted ascending by timestamp.
func (s *SQLiteStore) ListRecords(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, threads, line, note, note_line_enabled, created_at, updated_at
		FROM records ORDER BY ts ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var line sql.NullInt64
		var flag sql.NullBool
		if err := rows.Scan(
			&r.ID, &r.Timestamp, &r.Threads, &line, &r.Note,
			&flag, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if line.Valid {
			v := line.Int64
			r.Line = &v
		}
		if flag.Valid {
			v := flag.Bool
			r.NoteLineEnabled = &v
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Return empty slice rather than nil
	if records == nil {
		records = []Record{}
	}

	return records, nil
}

// ClearRecords deletes all records without touching content items.
func (s *SQLiteStore) ClearRecords(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

// PutContent inserts or replaces a content item by its ID.
func (s *SQLiteStore) PutContent(ctx context.Context, item *ContentItem) error {
	_, err := s.putContent.ExecContext(ctx,
		item.ID, item.Title, item.Type, item.Tags, item.Ref, item.Body,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put content item: %w", err)
	}
	return nil
}

// DeleteContent removes a content item by ID.
func (s *SQLiteStore) DeleteContent(ctx context.Context, id int64) error {
	res, err := s.deleteContent.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete content item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("content item %d not found", id)
	}

	return nil
}

// ListContent returns all content items sorted by last update, newest first.
func (s *SQLiteStore) ListContent(ctx context.Context) ([]ContentItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, type, tags, ref, body, created_at, updated_at
		FROM content_items ORDER BY updated_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query content items: %w", err)
	}
	defer rows.Close()

	var items []ContentItem
	for rows.Next() {
		var it ContentItem
		if err := rows.Scan(
			&it.ID, &it.Title, &it.Type, &it.Tags, &it.Ref, &it.Body,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan content item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []ContentItem{}
	}

	return items, nil
}

// ClearContent deletes all content items without touching records.
func (s *SQLiteStore) ClearContent(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM content_items"); err != nil {
		return fmt.Errorf("clear content items: %w", err)
	}
	return nil
}

// GetSetting returns the stored value for key, or "" when the key is unset.
func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.getSetting.QueryRowContext(ctx, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a key-value setting, replacing any previous value.
func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	if _, err := s.setSetting.ExecContext(ctx, key, value); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// PurgeAll deletes all records, content items, and settings.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	stmts := []string{
		"DELETE FROM records",
		"DELETE FROM content_items",
		"DELETE FROM settings",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return nil
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&stats.TotalRecords)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content_items").Scan(&stats.TotalContent)
	if err != nil {
		return nil, fmt.Errorf("count content items: %w", err)
	}

	if stats.TotalRecords > 0 {
		err = s.db.QueryRowContext(ctx, "SELECT MIN(ts), MAX(ts) FROM records").
			Scan(&stats.OldestTimestamp, &stats.NewestTimestamp)
		if err != nil {
			return nil, fmt.Errorf("record time range: %w", err)
		}
	}

	// Page math works for in-memory databases where os.Stat would not.
	var pageCount, pageSize int64
	if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
		if err := s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err == nil {
			stats.DatabaseSizeBytes = pageCount * pageSize
		}
	}

	return stats, nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed — that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.putRecord, s.deleteRecord,
		s.putContent, s.deleteContent,
		s.getSetting, s.setSetting,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
