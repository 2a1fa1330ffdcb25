package track

import "time"

// Display layouts used across table output, exports, and filenames.
const (
	displayLayout      = "2006/01/02 15:04"
	displaySecsLayout  = "2006/01/02 15:04:05"
	chartTickLayout    = "01/02 15:04"
	exportTsLayout     = "2006-01-02 15:04"
	dateLayout         = "2006-01-02"
	fileStampLayout    = "2006-01-02_15-04-05"
)

// DisplayTime renders an epoch-millisecond timestamp in local time,
// minute precision. This is the derived, never-authoritative rendering
// stored alongside each record for display.
func DisplayTime(ms int64) string {
	return time.UnixMilli(ms).Format(displayLayout)
}

// DisplayTimeSeconds renders a time with second precision, used for
// generation timestamps in reports and status output.
func DisplayTimeSeconds(t time.Time) string {
	return t.Format(displaySecsLayout)
}

// ChartTime renders the compact per-point x-axis label.
func ChartTime(ms int64) string {
	return time.UnixMilli(ms).Format(chartTickLayout)
}

// ExportTs renders the space-separated interchange timestamp
// ("YYYY-MM-DD HH:MM", no seconds).
func ExportTs(ms int64) string {
	return time.UnixMilli(ms).Format(exportTsLayout)
}

// DateYYYYMMDD renders just the date part.
func DateYYYYMMDD(t time.Time) string {
	return t.Format(dateLayout)
}

// FileStamp renders the readable timestamp embedded in export filenames.
func FileStamp(t time.Time) string {
	return t.Format(fileStampLayout)
}
