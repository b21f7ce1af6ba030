package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/stridelog/internal/calibrate"
	"github.com/runnerr0/stridelog/internal/config"
	"github.com/runnerr0/stridelog/internal/export"
	"github.com/runnerr0/stridelog/internal/storage"
	"github.com/runnerr0/stridelog/internal/timeline"
)

// ingestJSON is the JSON output structure for the ingest command.
type ingestJSON struct {
	ExportDir        string `json:"export_dir"`
	FragmentsFound   int    `json:"fragments_found"`
	RecordsParsed    int    `json:"records_parsed"`
	FragmentsEmpty   int    `json:"fragments_empty"`
	FragmentsSkipped int    `json:"fragments_skipped"`
	RecordsUsed      int    `json:"records_used"`
	ClustersMatched  int    `json:"clusters_matched"`
	AnchoredRecords  int    `json:"anchored_records"`
	TimelineDays     int    `json:"timeline_days"`
	FirstDay         string `json:"first_day,omitempty"`
	LastDay          string `json:"last_day,omitempty"`
	DryRun           bool   `json:"dry_run"`
	CSVFile          string `json:"csv_file,omitempty"`
}

// Execute implements the go-flags Commander interface for IngestCommand.
func (c *IngestCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	dir := c.Dir
	if dir == "" {
		dir = cfg.Export.Dir
	}
	if dir == "" {
		return fmt.Errorf("no export directory: pass --dir or set export.dir in the config")
	}

	var store storage.Store
	if !c.DryRun {
		s, db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		defer s.Close()
		store = s
	}

	return c.executeWithStore(cfg, dir, store)
}

// executeWithStore runs the ingest logic against a provided store (nil for
// dry runs; also the seam used by tests).
func (c *IngestCommand) executeWithStore(cfg *config.Config, dir string, store storage.Store) error {
	cal := calibrate.Calibration{
		StrideShortKm: cfg.Calibration.StrideShortKm,
		StrideLongKm:  cfg.Calibration.StrideLongKm,
	}
	parser := &export.Parser{KmForSteps: cal.KmForSteps}

	disc, err := export.Discover(dir, parser)
	if err != nil {
		return err
	}

	style := c.Style
	if style == "" {
		style = cfg.Export.SourceStyle
	}
	if style == "all" {
		style = ""
	}
	records := export.FilterStyle(disc.Records, style)

	clusters, err := cfg.TimelineClusters()
	if err != nil {
		return err
	}
	calStart, calEnd, err := cfg.CalendarSpan()
	if err != nil {
		return err
	}

	tl, sum := timeline.Reconstruct(records, timeline.Params{
		Clusters: clusters,
		CalStart: calStart,
		CalEnd:   calEnd,
	})

	if store != nil {
		ctx := context.Background()
		if err := store.ReplaceTimeline(ctx, tl); err != nil {
			return fmt.Errorf("store timeline: %w", err)
		}
		run := &storage.RunRecord{
			ExportDir:        dir,
			FragmentsFound:   disc.Found,
			RecordsParsed:    disc.Parsed,
			FragmentsSkipped: disc.Skipped,
			ClustersMatched:  sum.ClustersMatched,
			TimelineDays:     sum.TimelineDays,
		}
		if err := store.RecordRun(ctx, run); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}

	if c.CSV != "" {
		if err := writeTimelineCSV(tl, c.CSV); err != nil {
			return err
		}
	}

	out := ingestJSON{
		ExportDir:        dir,
		FragmentsFound:   disc.Found,
		RecordsParsed:    disc.Parsed,
		FragmentsEmpty:   disc.Empty,
		FragmentsSkipped: disc.Skipped,
		RecordsUsed:      len(records),
		ClustersMatched:  sum.ClustersMatched,
		AnchoredRecords:  sum.AnchoredIndices,
		TimelineDays:     sum.TimelineDays,
		DryRun:           c.DryRun,
		CSVFile:          c.CSV,
	}
	if len(tl) > 0 {
		out.FirstDay = tl[0].Day.String()
		out.LastDay = tl[len(tl)-1].Day.String()
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return printIngestHuman(out, len(clusters), style)
}

func printIngestHuman(out ingestJSON, clustersConfigured int, style string) error {
	styleLabel := style
	if styleLabel == "" {
		styleLabel = "all styles"
	}

	fmt.Printf("Ingested %s\n", out.ExportDir)
	fmt.Printf("  Fragments:  %d found, %d parsed, %d empty, %d skipped\n",
		out.FragmentsFound, out.RecordsParsed, out.FragmentsEmpty, out.FragmentsSkipped)
	fmt.Printf("  Records:    %d (%s)\n", out.RecordsUsed, styleLabel)
	fmt.Printf("  Clusters:   %d of %d matched (%d anchored records)\n",
		out.ClustersMatched, clustersConfigured, out.AnchoredRecords)
	if out.TimelineDays > 0 {
		fmt.Printf("  Timeline:   %d days (%s .. %s)\n", out.TimelineDays, out.FirstDay, out.LastDay)
	} else {
		fmt.Println("  Timeline:   empty (no calendar span; configure clusters or calendar bounds)")
	}
	if out.CSVFile != "" {
		fmt.Printf("  CSV:        %s\n", out.CSVFile)
	}
	if out.DryRun {
		fmt.Println("  Dry run: nothing written to the database.")
	}
	return nil
}

// writeTimelineCSV writes the timeline to path as date,steps,distance_km.
func writeTimelineCSV(tl timeline.Timeline, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()
	if err := timeline.WriteCSV(f, tl); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
