package track

import (
	"context"
	"fmt"

	"github.com/runnerr0/growthtrack/internal/storage"
)

// Repository owns the in-memory snapshot mirroring durable storage. Every
// mutation is awaited and then followed by a full re-read of the affected
// entity kind — the snapshot is never patched incrementally, so it cannot
// drift from what the store holds.
type Repository struct {
	store   storage.Store
	records []storage.Record
	content []storage.ContentItem
}

// NewRepository wraps a store. Call Refresh before reading the snapshot.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Refresh re-reads both entity kinds from storage. Records come back
// pre-sorted ascending by timestamp and are normalized before entering
// the snapshot.
func (r *Repository) Refresh(ctx context.Context) error {
	records, err := r.store.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("refresh records: %w", err)
	}
	content, err := r.store.ListContent(ctx)
	if err != nil {
		return fmt.Errorf("refresh content: %w", err)
	}
	r.records = Normalize(records)
	r.content = content
	return nil
}

// Records returns a copy of the current record snapshot.
func (r *Repository) Records() []storage.Record {
	out := make([]storage.Record, len(r.records))
	copy(out, r.records)
	return out
}

// Content returns a copy of the current content snapshot.
func (r *Repository) Content() []storage.ContentItem {
	out := make([]storage.ContentItem, len(r.content))
	copy(out, r.content)
	return out
}

// FindRecord looks a record up by its stable id in the snapshot.
func (r *Repository) FindRecord(id int64) (storage.Record, bool) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return storage.Record{}, false
}

// FindContent looks a content item up by id in the snapshot.
func (r *Repository) FindContent(id int64) (storage.ContentItem, bool) {
	for _, it := range r.content {
		if it.ID == id {
			return it, true
		}
	}
	return storage.ContentItem{}, false
}

// SaveRecord writes a record and refreshes the record snapshot.
func (r *Repository) SaveRecord(ctx context.Context, rec *storage.Record) error {
	if err := r.store.PutRecord(ctx, rec); err != nil {
		return err
	}
	return r.refreshRecords(ctx)
}

// RemoveRecord deletes a record by id and refreshes the record snapshot.
func (r *Repository) RemoveRecord(ctx context.Context, id int64) error {
	if err := r.store.DeleteRecord(ctx, id); err != nil {
		return err
	}
	return r.refreshRecords(ctx)
}

// ClearRecords removes all records without touching content items.
func (r *Repository) ClearRecords(ctx context.Context) error {
	if err := r.store.ClearRecords(ctx); err != nil {
		return err
	}
	return r.refreshRecords(ctx)
}

// SaveContent writes a content item and refreshes the content snapshot.
func (r *Repository) SaveContent(ctx context.Context, item *storage.ContentItem) error {
	if err := r.store.PutContent(ctx, item); err != nil {
		return err
	}
	return r.refreshContent(ctx)
}

// RemoveContent deletes a content item by id and refreshes the snapshot.
func (r *Repository) RemoveContent(ctx context.Context, id int64) error {
	if err := r.store.DeleteContent(ctx, id); err != nil {
		return err
	}
	return r.refreshContent(ctx)
}

// ClearContent removes all content items without touching records.
func (r *Repository) ClearContent(ctx context.Context) error {
	if err := r.store.ClearContent(ctx); err != nil {
		return err
	}
	return r.refreshContent(ctx)
}

func (r *Repository) refreshRecords(ctx context.Context) error {
	records, err := r.store.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("refresh records: %w", err)
	}
	r.records = Normalize(records)
	return nil
}

func (r *Repository) refreshContent(ctx context.Context) error {
	content, err := r.store.ListContent(ctx)
	if err != nil {
		return fmt.Errorf("refresh content: %w", err)
	}
	r.content = content
	return nil
}
