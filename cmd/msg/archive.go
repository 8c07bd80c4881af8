package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/ht-932/MeltSortGrow/internal/db"
	"github.com/ht-932/MeltSortGrow/internal/textfmt"
)

func runArchive(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	asJSON := fs.Bool("json", false, "print plan headers as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: msg archive [flags] list|get <id>|delete <id>")
	}

	cfg, err := c.setup(stderr)
	if err != nil {
		return err
	}
	path := cfg.GetArchivePath()
	if path == "" {
		return fmt.Errorf("no archive configured: set archive_path or pass -archive")
	}
	database, err := db.OpenAndMigrate(path)
	if err != nil {
		return err
	}
	defer database.Close()
	store := db.NewPlanStore(database, clock)

	action := fs.Arg(0)
	switch action {
	case "list":
		records, err := store.List()
		if err != nil {
			return err
		}
		if *asJSON {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}
		for _, r := range records {
			fmt.Fprintf(stdout, "%s  %-16s  %s  modules=%d movements=%d\n",
				r.PlanID[:8], r.Name, r.CreatedAt.Format("2006-01-02 15:04:05"), r.ModuleCount, r.MovementCount)
		}
		return nil

	case "get":
		if fs.NArg() < 2 {
			return fmt.Errorf("usage: msg archive get <id>")
		}
		plan, err := store.Get(fs.Arg(1))
		if err != nil {
			return err
		}
		if *asJSON {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(plan.PlanRecord)
		}
		fmt.Fprintf(stdout, "# plan %s %s (%s)\n", plan.PlanID, plan.Name, plan.Algorithm)
		fmt.Fprintf(stdout, "# lines %s -> %s\n", plan.InitialLine, plan.GoalLine)
		return textfmt.EncodeMovements(stdout, plan.Movements)

	case "delete":
		if fs.NArg() < 2 {
			return fmt.Errorf("usage: msg archive delete <id>")
		}
		if err := store.Delete(fs.Arg(1)); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "deleted plan %s\n", fs.Arg(1))
		return nil

	default:
		return fmt.Errorf("unknown archive action: %s", action)
	}
}
