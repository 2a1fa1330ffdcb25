package track

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/runnerr0/growthtrack/internal/storage"
)

// FilterRecordsByKeyword keeps records whose display time, counts, or note
// contain the keyword, case-insensitively. An empty keyword keeps everything.
func FilterRecordsByKeyword(records []storage.Record, keyword string) []storage.Record {
	q := strings.ToLower(strings.TrimSpace(keyword))
	if q == "" {
		return records
	}
	out := make([]storage.Record, 0, len(records))
	for _, r := range records {
		line := ""
		if r.Line != nil {
			line = strconv.FormatInt(*r.Line, 10)
		}
		bag := strings.ToLower(strings.Join([]string{
			DisplayTime(r.Timestamp),
			strconv.FormatInt(r.Threads, 10),
			line,
			r.Note,
		}, " "))
		if strings.Contains(bag, q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterContentByKeyword keeps content items matching the keyword across
// title, type, tags, body, and ref.
func FilterContentByKeyword(items []storage.ContentItem, keyword string) []storage.ContentItem {
	q := strings.ToLower(strings.TrimSpace(keyword))
	if q == "" {
		return items
	}
	out := make([]storage.ContentItem, 0, len(items))
	for _, it := range items {
		bag := strings.ToLower(strings.Join([]string{
			it.Title, it.Type, it.Tags, it.Body, it.Ref,
		}, " "))
		if strings.Contains(bag, q) {
			out = append(out, it)
		}
	}
	return out
}

// SafeExternalURL validates a content ref lazily at render time: only
// absolute http/https URLs are considered safe to print as links. Anything
// else renders as empty.
func SafeExternalURL(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	u, err := url.Parse(text)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
