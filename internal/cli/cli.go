package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Add    *AddCommand
	Edit   *EditCommand
	Rm     *RmCommand
	List   *ListCommand
	Kpi    *KpiCommand
	Chart  *ChartCommand
	Clear  *ClearCommand
	Export *ExportCommand
	Import *ImportCommand
	Report *ReportCommand
	Status *StatusCommand
	Purge  *PurgeCommand

	ContentAdd  *ContentAddCommand
	ContentEdit *ContentEditCommand
	ContentRm   *ContentRmCommand
	ContentList *ContentListCommand
	ContentView *ContentViewCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "growthtrack"
	parser.LongDescription = "Local-first growth tracking for Threads and LINE follower counts: records, KPIs, charts, and reports."

	cmds := &commands{
		Add:         &AddCommand{globals: &globals, version: version},
		Edit:        &EditCommand{globals: &globals, version: version},
		Rm:          &RmCommand{globals: &globals, version: version},
		List:        &ListCommand{globals: &globals, version: version},
		Kpi:         &KpiCommand{globals: &globals, version: version},
		Chart:       &ChartCommand{globals: &globals, version: version},
		Clear:       &ClearCommand{globals: &globals, version: version},
		Export:      &ExportCommand{globals: &globals, version: version},
		Import:      &ImportCommand{globals: &globals, version: version},
		Report:      &ReportCommand{globals: &globals, version: version},
		Status:      &StatusCommand{globals: &globals, version: version},
		Purge:       &PurgeCommand{globals: &globals, version: version},
		ContentAdd:  &ContentAddCommand{globals: &globals, version: version},
		ContentEdit: &ContentEditCommand{globals: &globals, version: version},
		ContentRm:   &ContentRmCommand{globals: &globals, version: version},
		ContentList: &ContentListCommand{globals: &globals, version: version},
		ContentView: &ContentViewCommand{globals: &globals, version: version},
	}

	parser.AddCommand("add", "Record an engagement snapshot", "Record an engagement snapshot: Threads count, optional LINE count, optional note.", cmds.Add)
	parser.AddCommand("edit", "Update a record", "Update an existing record by id. Unset flags leave fields unchanged.", cmds.Edit)
	parser.AddCommand("rm", "Delete a record", "Delete a record by id.", cmds.Rm)
	parser.AddCommand("list", "List records in a range", "List records in a time range with conversion rates and marker state.", cmds.List)
	parser.AddCommand("kpi", "Show the KPI summary", "Show latest/average conversion and growth rates for a time range.", cmds.Kpi)
	parser.AddCommand("chart", "Render the growth chart", "Render the dual-axis growth chart for a time range to a PNG file.", cmds.Chart)
	parser.AddCommand("clear", "Clear one collection", "Bulk-delete all records or all content items. Destructive operation with safety prompts.", cmds.Clear)
	parser.AddCommand("export", "Export the JSON archive", "Write all data as a versioned JSON archive.", cmds.Export)
	parser.AddCommand("import", "Import a JSON archive", "Replace all data from a JSON archive (current or legacy format).", cmds.Import)
	parser.AddCommand("report", "Export the PDF report", "Write the growth report PDF for a time range.", cmds.Report)
	parser.AddCommand("status", "Show database statistics", "Show database statistics, data bounds, and bookkeeping timestamps.", cmds.Status)
	parser.AddCommand("purge", "Delete ALL data", "Delete ALL data. Destructive operation with safety prompt.", cmds.Purge)

	content, _ := parser.AddCommand("content", "Manage the content library", "Create, edit, and browse content library items.", &ContentCommand{globals: &globals, version: version})
	if content != nil {
		content.AddCommand("add", "Add a content item", "Add a content library item.", cmds.ContentAdd)
		content.AddCommand("edit", "Update a content item", "Update a content item by id. Unset flags leave fields unchanged.", cmds.ContentEdit)
		content.AddCommand("rm", "Delete a content item", "Delete a content item by id.", cmds.ContentRm)
		content.AddCommand("list", "List content items", "List content items, most recently updated first.", cmds.ContentList)
		content.AddCommand("view", "Print a content item", "Print a content item in full, including its body and reference link.", cmds.ContentView)
	}

	return parser, &globals, cmds
}

// Run is the main entry point for the GrowthTrack CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("growthtrack %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
