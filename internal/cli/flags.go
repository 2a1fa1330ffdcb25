package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// RangeFlags selects the record window shared by list, kpi, chart, report.
type RangeFlags struct {
	Range string `long:"range" description:"Time range: today | 7d | 30d | custom" default:"30d"`
	From  string `long:"from" description:"Custom range start (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")"`
	To    string `long:"to" description:"Custom range end (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")"`
}

// AddCommand — record an engagement snapshot.
type AddCommand struct {
	Time     string `long:"time" description:"Snapshot time (YYYY-MM-DD HH:MM), defaults to now"`
	Threads  int64  `long:"threads" description:"Threads follower count (required)" default:"-1"`
	Line     string `long:"line" description:"LINE follower count; omit when untracked"`
	Note     string `long:"note" description:"Event note, up to 120 characters"`
	NoMarker bool   `long:"no-marker" description:"Keep the note off the chart"`

	globals *GlobalFlags
	version string
}

// EditCommand — update an existing record by id.
type EditCommand struct {
	Time    string  `long:"time" description:"New snapshot time"`
	Threads *int64  `long:"threads" description:"New Threads count"`
	Line    string  `long:"line" description:"New LINE count, or \"none\" to mark untracked"`
	Note    *string `long:"note" description:"New note (empty string clears it)"`
	Marker  string  `long:"marker" description:"Chart marker for the note: on | off"`

	Args struct {
		ID int64 `positional-arg-name:"id" description:"Record id"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// RmCommand — delete a record by id.
type RmCommand struct {
	Args struct {
		ID int64 `positional-arg-name:"id" description:"Record id"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// ListCommand — print records in a range.
type ListCommand struct {
	RangeFlags
	Sort   string `long:"sort" description:"Order: time_asc | time_desc" default:"time_desc"`
	Search string `long:"search" description:"Keyword filter over time, counts, and note"`

	globals *GlobalFlags
	version string
}

// KpiCommand — print the KPI summary for a range.
type KpiCommand struct {
	RangeFlags

	globals *GlobalFlags
	version string
}

// ChartCommand — render the growth chart to a PNG file.
type ChartCommand struct {
	RangeFlags
	Out       string `long:"out" description:"Output path (defaults to growth-chart.png in the export dir)"`
	NoMarkers bool   `long:"no-markers" description:"Disable the note marker overlay"`

	globals *GlobalFlags
	version string
}

// ContentCommand groups the content library subcommands.
type ContentCommand struct {
	globals *GlobalFlags
	version string
}

// ContentAddCommand — add a content library item.
type ContentAddCommand struct {
	Title    string `long:"title" description:"Item title (required)"`
	Type     string `long:"type" description:"Free-form content type"`
	Tags     string `long:"tags" description:"Comma-separated tags"`
	Ref      string `long:"ref" description:"Reference URL"`
	Body     string `long:"body" description:"Inline body text"`
	BodyFile string `long:"body-file" description:"Path to a file containing the body"`

	globals *GlobalFlags
	version string
}

// ContentEditCommand — update a content item by id.
type ContentEditCommand struct {
	Title    *string `long:"title" description:"New title"`
	Type     *string `long:"type" description:"New type"`
	Tags     *string `long:"tags" description:"New tags"`
	Ref      *string `long:"ref" description:"New reference URL"`
	Body     *string `long:"body" description:"New body text"`
	BodyFile string  `long:"body-file" description:"Path to a file containing the new body"`

	Args struct {
		ID int64 `positional-arg-name:"id" description:"Content item id"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// ContentRmCommand — delete a content item by id.
type ContentRmCommand struct {
	Args struct {
		ID int64 `positional-arg-name:"id" description:"Content item id"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// ContentListCommand — list content items, most recently updated first.
type ContentListCommand struct {
	Search string `long:"search" description:"Keyword filter over title, type, tags, and body"`

	globals *GlobalFlags
	version string
}

// ContentViewCommand — print one content item in full.
type ContentViewCommand struct {
	Args struct {
		ID int64 `positional-arg-name:"id" description:"Content item id"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// ClearCommand — bulk-delete one collection.
type ClearCommand struct {
	Records bool `long:"records" description:"Clear all engagement records"`
	Content bool `long:"content" description:"Clear all content items"`
	Force   bool `long:"force" description:"Skip the confirmation prompts"`

	globals *GlobalFlags
	version string
}

// ExportCommand — write the interchange JSON archive.
type ExportCommand struct {
	Role string `long:"role" description:"Role id for the archive (persisted for later runs)"`
	Out  string `long:"out" description:"Output path (defaults to the archive filename in the export dir)"`

	globals *GlobalFlags
	version string
}

// ImportCommand — replace all data from an archive file.
type ImportCommand struct {
	Force bool `long:"force" description:"Import even when unsaved changes exist"`

	Args struct {
		File string `positional-arg-name:"file" description:"Archive file to import"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// ReportCommand — write the PDF growth report.
type ReportCommand struct {
	RangeFlags
	Role      string `long:"role" description:"Role id for the report (persisted for later runs)"`
	Out       string `long:"out" description:"Output path (defaults to the report filename in the export dir)"`
	NoMarkers bool   `long:"no-markers" description:"Disable the chart's note marker overlay"`

	globals *GlobalFlags
	version string
}

// StatusCommand — show database statistics and bookkeeping.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PurgeCommand — delete ALL data with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
}
