package cli

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/stridelog/internal/storage"
)

// setDB allows tests to inject a database connection.
func (c *PurgeCommand) setDB(db *sql.DB) {
	c.db = db
}

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete ALL stridelog data.")
		fmt.Println("  - The reconstructed timeline")
		fmt.Println("  - All ingestion run history")
		fmt.Println()
		fmt.Println("This action cannot be undone.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	// Open or use injected DB
	db := c.db
	if db == nil {
		cfg, err := loadConfig(c.globals)
		if err != nil {
			return err
		}
		dbPath, err := cfg.DatabasePath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
		db, err = sql.Open("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
	}

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer store.Close()

	if err := store.PurgeAll(context.Background()); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"purged":  true,
			"message": "all data deleted",
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(out)
	}

	fmt.Println("Purged all data. The timeline is empty.")
	return nil
}
