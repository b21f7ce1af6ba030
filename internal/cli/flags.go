package cli

import "database/sql"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// IngestCommand discovers fragments, reconstructs the timeline, and stores it.
type IngestCommand struct {
	Dir    string `long:"dir" description:"Export tree to scan (overrides config export.dir)"`
	Style  string `long:"style" description:"Source style filter: pedometer | shealth | all"`
	CSV    string `long:"csv" description:"Also write the timeline to this CSV file"`
	DryRun bool   `long:"dry-run" description:"Run the pipeline without writing to the database"`

	globals *GlobalFlags
	version string
}

// StatusCommand shows timeline statistics and last run coverage.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// ExportCommand writes the stored timeline as CSV.
type ExportCommand struct {
	Output string `long:"output" description:"Output CSV path (default: stdout)"`

	globals *GlobalFlags
	version string
}

// ChartCommand renders HTML bar charts of the stored timeline.
type ChartCommand struct {
	Dir string `long:"dir" description:"Directory for chart files (overrides config output.chart_dir)"`

	globals *GlobalFlags
	version string
}

// PurgeCommand deletes ALL stored data with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	db      *sql.DB // injectable for testing; nil means open default DB
}
