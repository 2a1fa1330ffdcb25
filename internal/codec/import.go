package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/runnerr0/growthtrack/internal/storage"
)

// ErrUnrecognized is returned when an import file parses as JSON but matches
// neither the current nested-modules shape nor the legacy flat shape.
var ErrUnrecognized = errors.New("unrecognized import format")

// importTsPattern is the only timestamp form the current shape accepts.
// Anything else drops the row rather than guessing.
var importTsPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)

const importTsLayout = "2006-01-02 15:04"

// ImportResult is the normalized outcome of parsing an import file. Counts
// reflect accepted rows only; malformed rows are dropped silently.
type ImportResult struct {
	RoleID  string
	Records []storage.Record
	Items   []storage.ContentItem
}

// ParseDocument parses and normalizes an import file. Document detection runs
// in order: current nested-modules documents first, then the legacy flat
// shape, and anything else fails with ErrUnrecognized. Rows are classified
// individually regardless of which shape the document carries, so a legacy
// row inside a current document still imports. Per-row validation drops bad
// rows instead of failing the whole import.
func ParseDocument(data []byte, now time.Time) (*ImportResult, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}

	recordRows, itemRows, ok := extractRows(doc)
	if !ok {
		return nil, ErrUnrecognized
	}

	result := &ImportResult{RoleID: metaRoleID(doc)}
	nowISO := now.Format(time.RFC3339)
	base := now.UnixMilli() + rand.Int63n(1000)

	for i, raw := range recordRows {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if rec, ok := normalizeRow(row, base+int64(i), nowISO); ok {
			result.Records = append(result.Records, rec)
		}
	}

	for i, raw := range itemRows {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if item, ok := normalizeContentRow(row, base+int64(i), nowISO); ok {
			result.Items = append(result.Items, item)
		}
	}

	return result, nil
}

// extractRows locates the record and content arrays for either supported
// shape. A document is recognized as soon as one known array is present.
func extractRows(doc map[string]any) (records, items []any, ok bool) {
	if modules, isMap := doc["modules"].(map[string]any); isMap {
		if dashboard, isMap := modules["dashboard"].(map[string]any); isMap {
			if rows, isList := dashboard["records"].([]any); isList {
				records, ok = rows, true
			}
		}
		if library, isMap := modules["content_library"].(map[string]any); isMap {
			if rows, isList := library["items"].([]any); isList {
				items, ok = rows, true
			}
		}
		if ok {
			return records, items, true
		}
	}
	if rows, isList := doc["records"].([]any); isList {
		return rows, nil, true
	}
	return nil, nil, false
}

// normalizeRow classifies one record row by its own fields: a string ts means
// the current shape, a numeric timestamp means the legacy shape, anything
// else drops the row.
func normalizeRow(row map[string]any, fallbackID int64, nowISO string) (storage.Record, bool) {
	if _, isString := row["ts"].(string); isString {
		return normalizeRecordRow(row, fallbackID, nowISO)
	}
	if _, isNumber := row["timestamp"].(float64); isNumber {
		return normalizeLegacyRow(row, fallbackID, nowISO)
	}
	return storage.Record{}, false
}

func metaRoleID(doc map[string]any) string {
	meta, ok := doc["meta"].(map[string]any)
	if !ok {
		return ""
	}
	id, _ := meta["role_id"].(string)
	return SanitizeRoleID(id)
}

// normalizeRecordRow validates one current-shape record row. The timestamp
// must match the exported minute-precision form, and threads must be a
// non-negative finite number; either failing drops the row. A present line
// value must also be valid, but an absent one just means untracked.
func normalizeRecordRow(row map[string]any, id int64, nowISO string) (storage.Record, bool) {
	ts, _ := row["ts"].(string)
	if !importTsPattern.MatchString(ts) {
		return storage.Record{}, false
	}
	when, err := time.ParseInLocation(importTsLayout, ts, time.Local)
	if err != nil {
		return storage.Record{}, false
	}

	threads, ok := asNumber(row["threads"])
	if !ok || threads < 0 {
		return storage.Record{}, false
	}

	var line *int64
	if v, present := row["line"]; present && v != nil && v != "" {
		n, ok := asNumber(v)
		if !ok || n < 0 {
			return storage.Record{}, false
		}
		ln := int64(n)
		line = &ln
	}

	note := clampText(stringOr(row["note"], ""), storage.MaxNoteLen)
	enabled := strings.TrimSpace(note) != ""
	if v, isBool := row["note_line_enabled"].(bool); isBool {
		enabled = v
	}

	return storage.Record{
		ID:              id,
		Timestamp:       when.UnixMilli(),
		Threads:         int64(threads),
		Line:            line,
		Note:            note,
		NoteLineEnabled: &enabled,
		CreatedAt:       nowISO,
		UpdatedAt:       nowISO,
	}, true
}

// normalizeLegacyRow validates one legacy flat-shape record row. Legacy rows
// carry epoch-millisecond timestamps and stable ids, both preserved when
// valid. Timestamp and threads must both be finite numbers or the row drops;
// negative counts clamp to zero. A present line value must be a non-negative
// number, matching the current shape.
func normalizeLegacyRow(row map[string]any, fallbackID int64, nowISO string) (storage.Record, bool) {
	ts, isNumber := row["timestamp"].(float64)
	if !isNumber || math.IsNaN(ts) || math.IsInf(ts, 0) {
		return storage.Record{}, false
	}

	threads, isNumber := row["threads"].(float64)
	if !isNumber || math.IsNaN(threads) || math.IsInf(threads, 0) {
		return storage.Record{}, false
	}
	threads = math.Max(0, math.Floor(threads))

	var line *int64
	if v, present := row["line"]; present && v != nil {
		n, isNumber := v.(float64)
		if !isNumber || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return storage.Record{}, false
		}
		ln := int64(n)
		line = &ln
	}

	note := clampText(stringOr(row["note"], ""), storage.MaxNoteLen)
	enabled := strings.TrimSpace(note) != ""
	if v, isBool := row["noteLineEnabled"].(bool); isBool {
		enabled = v
	}

	id := fallbackID
	if n, ok := asNumber(row["id"]); ok && n > 0 {
		id = int64(n)
	}

	return storage.Record{
		ID:              id,
		Timestamp:       int64(ts),
		Threads:         int64(threads),
		Line:            line,
		Note:            note,
		NoteLineEnabled: &enabled,
		CreatedAt:       stringOr(row["createdAt"], nowISO),
		UpdatedAt:       stringOr(row["updatedAt"], nowISO),
	}, true
}

// normalizeContentRow validates one content item row. Title and body are
// required after trimming; everything else is clamped to its field cap.
func normalizeContentRow(row map[string]any, id int64, nowISO string) (storage.ContentItem, bool) {
	title := clampText(strings.TrimSpace(stringOr(row["title"], "")), storage.MaxTitleLen)
	if title == "" {
		return storage.ContentItem{}, false
	}
	body := clampText(stringOr(row["body"], ""), storage.MaxBodyLen)
	if strings.TrimSpace(body) == "" {
		return storage.ContentItem{}, false
	}

	return storage.ContentItem{
		ID:        id,
		Title:     title,
		Type:      clampText(strings.TrimSpace(stringOr(row["type"], "")), storage.MaxTypeLen),
		Tags:      clampText(strings.TrimSpace(stringOr(row["tags"], "")), storage.MaxTagsLen),
		Ref:       clampText(strings.TrimSpace(stringOr(row["ref"], "")), storage.MaxRefLen),
		Body:      body,
		CreatedAt: stringOr(row["created_at"], nowISO),
		UpdatedAt: stringOr(row["updated_at"], nowISO),
	}, true
}

// asNumber coerces a decoded JSON value to a finite float64, truncated to an
// integer. Numeric strings are accepted; legacy exports stringified counts.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return math.Floor(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return math.Floor(f), true
	default:
		return 0, false
	}
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

// clampText hard-truncates to max runes, no ellipsis. Archive fields keep the
// data as-is rather than decorating it.
func clampText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
