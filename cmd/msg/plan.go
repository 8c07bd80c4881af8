package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ht-932/MeltSortGrow/internal/db"
	"github.com/ht-932/MeltSortGrow/internal/library"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/msg"
	"github.com/ht-932/MeltSortGrow/internal/planerr"
	"github.com/ht-932/MeltSortGrow/internal/report"
	"github.com/ht-932/MeltSortGrow/internal/security"
	"github.com/ht-932/MeltSortGrow/internal/textfmt"
	"github.com/ht-932/MeltSortGrow/internal/timeutil"
)

// clock is swapped for a mock in tests.
var clock timeutil.Clock = timeutil.RealClock{}

func runPlan(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	initialRef := fs.String("initial", "", "initial structure: library name or .txt file")
	goalRef := fs.String("goal", "", "goal structure: library name or .txt file")
	algorithm := fs.String("algorithm", "", "planning algorithm (overrides config)")
	name := fs.String("name", "", "plan name used in the archive")
	save := fs.String("save", "", "save the movement log to the library under this id")
	printMoves := fs.Bool("print", false, "print the movement log")
	htmlOut := fs.String("report", "", "write an HTML report to this path")
	pngOut := fs.String("travel", "", "write a PNG travel chart to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.setup(stderr)
	if err != nil {
		return err
	}
	if *algorithm != "" {
		cfg.Algorithm = algorithm
	}

	lib := library.Open(cfg.GetLibraryDir())
	initial, err := loadLattice(lib, *initialRef)
	if err != nil {
		return fmt.Errorf("initial: %w", err)
	}
	goal, err := loadLattice(lib, *goalRef)
	if err != nil {
		return fmt.Errorf("goal: %w", err)
	}

	start := clock.Now()
	res, err := msg.New(cfg).Plan(initial, goal)
	elapsed := clock.Since(start)
	if planerr.IsKind(err, planerr.KindUnsupportedAlgorithm) {
		// Not a failure: the algorithm is recognised but has no planner yet.
		fmt.Fprintln(stdout, msg.ComingSoonMessage)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, res.Message)
	fmt.Fprintf(stdout, "movements: %d (", res.Log.Len())
	for i, ph := range movement.Phases {
		if i > 0 {
			fmt.Fprint(stdout, ", ")
		}
		fmt.Fprintf(stdout, "%s %d", ph, res.Counts[ph])
	}
	fmt.Fprintf(stdout, ") in %s\n", elapsed)

	if *printMoves {
		if err := textfmt.EncodeMovements(stdout, res.Log.Movements()); err != nil {
			return err
		}
	}
	if *save != "" {
		if err := lib.SaveMovements(*save, res.Log.Movements()); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "saved movements as %s\n", *save)
	}
	if *htmlOut != "" {
		if err := writeOutput(*htmlOut, func(w io.Writer) error { return report.NewHTML().Write(w, res) }); err != nil {
			return err
		}
	}
	if *pngOut != "" {
		if err := writeOutput(*pngOut, func(w io.Writer) error { return report.NewTravelPlot().WritePNG(w, res.Log) }); err != nil {
			return err
		}
	}

	if path := cfg.GetArchivePath(); path != "" {
		database, err := db.OpenAndMigrate(path)
		if err != nil {
			return err
		}
		defer database.Close()
		id, err := db.NewPlanStore(database, clock).Insert(*name, res, elapsed)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "archived plan %s\n", id)
	}
	return nil
}

// writeOutput creates path after checking it lies somewhere safe to write.
func writeOutput(path string, render func(io.Writer) error) error {
	if err := security.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
