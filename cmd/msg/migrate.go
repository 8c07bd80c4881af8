package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/ht-932/MeltSortGrow/internal/db"
)

func runMigrate(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: msg migrate [flags] up|down|status|force <version>")
	}

	cfg, err := c.setup(stderr)
	if err != nil {
		return err
	}
	path := cfg.GetArchivePath()
	if path == "" {
		return fmt.Errorf("no archive configured: set archive_path or pass -archive")
	}

	// Open without migrating: the schema is what this command manages.
	database, err := db.Open(path)
	if err != nil {
		return err
	}
	defer database.Close()

	switch action := fs.Arg(0); action {
	case "up":
		if err := database.MigrateUp(); err != nil {
			return err
		}
	case "down":
		if err := database.MigrateDown(); err != nil {
			return err
		}
	case "status":
	case "force":
		if fs.NArg() < 2 {
			return fmt.Errorf("usage: msg migrate force <version>")
		}
		v, err := strconv.Atoi(fs.Arg(1))
		if err != nil {
			return fmt.Errorf("invalid version number: %s", fs.Arg(1))
		}
		if err := database.MigrateForce(v); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown migrate action: %s", action)
	}

	version, dirty, err := database.MigrateVersion()
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	fmt.Fprintf(stdout, "Current version: %d (dirty: %v)\n", version, dirty)
	if dirty {
		fmt.Fprintln(stdout, "WARNING: a migration failed mid-execution; inspect the archive and run: msg migrate force <version>")
	}
	return nil
}
