package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/stridelog/internal/chart"
	"github.com/runnerr0/stridelog/internal/storage"
)

// Execute implements the go-flags Commander interface for ChartCommand.
func (c *ChartCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	dir := c.Dir
	if dir == "" {
		dir = cfg.Output.ChartDir
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, dir)
}

// executeWithStore renders charts from a provided store (for testing).
func (c *ChartCommand) executeWithStore(store storage.Store, dir string) error {
	tl, err := store.GetTimeline(context.Background())
	if err != nil {
		return fmt.Errorf("load timeline: %w", err)
	}
	if len(tl) == 0 {
		return fmt.Errorf("no stored timeline; run ingest first")
	}

	paths, err := chart.RenderAll(tl, dir)
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Printf("Saved: %s\n", p)
	}
	return nil
}
