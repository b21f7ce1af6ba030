package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/stridelog/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version         string       `json:"version"`
	TimelineDays    int64        `json:"timeline_days"`
	ActiveDays      int64        `json:"active_days"`
	TotalSteps      int64        `json:"total_steps"`
	TotalDistanceKm float64      `json:"total_distance_km"`
	FirstDay        string       `json:"first_day,omitempty"`
	LastDay         string       `json:"last_day,omitempty"`
	Runs            int64        `json:"runs"`
	LastRun         *lastRunJSON `json:"last_run,omitempty"`
}

type lastRunJSON struct {
	StartedAt        string `json:"started_at"`
	ExportDir        string `json:"export_dir"`
	FragmentsFound   int    `json:"fragments_found"`
	RecordsParsed    int    `json:"records_parsed"`
	FragmentsSkipped int    `json:"fragments_skipped"`
	ClustersMatched  int    `json:"clusters_matched"`
	TimelineDays     int    `json:"timeline_days"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs status against a provided store (for testing).
func (c *StatusCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	lastRun, err := store.LastRun(ctx)
	if err != nil {
		return fmt.Errorf("get last run: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(stats, lastRun)
	}
	return c.printStatusHuman(stats, lastRun)
}

func (c *StatusCommand) printStatusHuman(stats *storage.Stats, lastRun *storage.RunRecord) error {
	fmt.Println("Stridelog Status")
	fmt.Println("================")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Timeline:      %s days\n", formatNumber(stats.TimelineDays))

	if stats.TimelineDays > 0 {
		pct := float64(stats.ActiveDays) / float64(stats.TimelineDays) * 100
		fmt.Printf("Active days:   %s (%.1f%%)\n", formatNumber(stats.ActiveDays), pct)
		fmt.Printf("Total steps:   %s\n", formatNumber(stats.TotalSteps))
		fmt.Printf("Distance:      %.2f km\n", stats.TotalDistanceKm)
		fmt.Printf("First day:     %s\n", stats.FirstDay)
		fmt.Printf("Last day:      %s\n", stats.LastDay)
	}

	fmt.Printf("Runs:          %s\n", formatNumber(stats.Runs))

	if lastRun != nil {
		fmt.Println()
		fmt.Println("Last Run:")
		fmt.Printf("  Started:    %s\n", lastRun.StartedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("  Export dir: %s\n", lastRun.ExportDir)
		fmt.Printf("  Fragments:  %d found, %d parsed, %d skipped\n",
			lastRun.FragmentsFound, lastRun.RecordsParsed, lastRun.FragmentsSkipped)
		fmt.Printf("  Clusters:   %d matched\n", lastRun.ClustersMatched)
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(stats *storage.Stats, lastRun *storage.RunRecord) error {
	out := statusJSON{
		Version:         c.version,
		TimelineDays:    stats.TimelineDays,
		ActiveDays:      stats.ActiveDays,
		TotalSteps:      stats.TotalSteps,
		TotalDistanceKm: stats.TotalDistanceKm,
		FirstDay:        stats.FirstDay,
		LastDay:         stats.LastDay,
		Runs:            stats.Runs,
	}

	if lastRun != nil {
		out.LastRun = &lastRunJSON{
			StartedAt:        lastRun.StartedAt.UTC().Format(time.RFC3339),
			ExportDir:        lastRun.ExportDir,
			FragmentsFound:   lastRun.FragmentsFound,
			RecordsParsed:    lastRun.RecordsParsed,
			FragmentsSkipped: lastRun.FragmentsSkipped,
			ClustersMatched:  lastRun.ClustersMatched,
			TimelineDays:     lastRun.TimelineDays,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
