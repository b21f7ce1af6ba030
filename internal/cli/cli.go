package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Ingest *IngestCommand
	Status *StatusCommand
	Export *ExportCommand
	Chart  *ChartCommand
	Purge  *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "stridelog"
	parser.LongDescription = "Reconstructs a continuous daily step and distance timeline from fragmented Samsung Health exports with unreliable timestamps."

	cmds := &commands{
		Ingest: &IngestCommand{globals: &globals, version: version},
		Status: &StatusCommand{globals: &globals, version: version},
		Export: &ExportCommand{globals: &globals, version: version},
		Chart:  &ChartCommand{globals: &globals, version: version},
		Purge:  &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("ingest", "Reconstruct the timeline from an export tree", "Discover export fragments, reconstruct the dated timeline, and store it.", cmds.Ingest)
	parser.AddCommand("status", "Show stored timeline statistics", "Show stored timeline statistics and the last ingestion run's coverage counters.", cmds.Status)
	parser.AddCommand("export", "Write the stored timeline as CSV", "Write the stored timeline as date,steps,distance_km CSV.", cmds.Export)
	parser.AddCommand("chart", "Render timeline charts", "Render daily and monthly bar charts of the stored timeline as HTML.", cmds.Chart)
	parser.AddCommand("purge", "Delete ALL stored data", "Delete the stored timeline and run history. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the stridelog CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the
// matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("stridelog %s\n", version)
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
