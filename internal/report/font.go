// Package report produces the PDF growth report. The preferred path embeds
// a UTF-8 TTF fetched from a configured URL; when the font cannot be
// obtained the report falls back to raster pages so export never fails on
// a missing font.
package report

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// fontFetchTimeout bounds the one font download attempt. No retries; a
// slow or offline network degrades straight to the raster path.
const fontFetchTimeout = 10 * time.Second

// FontSource loads the report typeface, preferring a disk cache over the
// network. A zero URL disables fetching entirely.
type FontSource struct {
	URL       string
	CachePath string
	Client    *http.Client
}

// NewFontSource builds a source caching under dir.
func NewFontSource(url, dir string) *FontSource {
	return &FontSource{
		URL:       url,
		CachePath: filepath.Join(dir, "report-font.ttf"),
		Client:    &http.Client{Timeout: fontFetchTimeout},
	}
}

// Load returns the TTF bytes, from cache when present, otherwise fetched
// once and cached. Cache write failures are ignored; the fetched bytes are
// still usable for this run.
func (f *FontSource) Load() ([]byte, error) {
	if data, err := os.ReadFile(f.CachePath); err == nil && len(data) > 0 {
		return data, nil
	}
	if f.URL == "" {
		return nil, fmt.Errorf("no report font configured")
	}

	resp, err := f.Client.Get(f.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch report font: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch report font: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read report font: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetch report font: empty response")
	}

	if err := os.MkdirAll(filepath.Dir(f.CachePath), 0o755); err == nil {
		_ = os.WriteFile(f.CachePath, data, 0o644)
	}
	return data, nil
}

// ClearCache removes the cached font file. Used by purge; the caller
// decides whether to care about the error.
func (f *FontSource) ClearCache() error {
	err := os.Remove(f.CachePath)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
