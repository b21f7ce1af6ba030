package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/runnerr0/stridelog/internal/storage"
	"github.com/runnerr0/stridelog/internal/timeline"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
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

// executeWithStore runs the export against a provided store (for testing).
func (c *ExportCommand) executeWithStore(store storage.Store) error {
	tl, err := store.GetTimeline(context.Background())
	if err != nil {
		return fmt.Errorf("load timeline: %w", err)
	}

	if c.Output == "" {
		return timeline.WriteCSV(os.Stdout, tl)
	}

	if err := writeTimelineCSV(tl, c.Output); err != nil {
		return err
	}
	fmt.Printf("Wrote %d days to %s\n", len(tl), c.Output)
	return nil
}
