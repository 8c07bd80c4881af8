package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ht-932/MeltSortGrow/internal/library"
	"github.com/ht-932/MeltSortGrow/internal/movement"
	"github.com/ht-932/MeltSortGrow/internal/replay"
	"github.com/ht-932/MeltSortGrow/internal/textfmt"
)

func runReplay(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	initialRef := fs.String("initial", "", "starting structure: library name or .txt file")
	movesRef := fs.String("moves", "", "movement log: library id or .txt file")
	to := fs.Int("to", -1, "stop at this step (default: the end of the log)")
	back := fs.Int("back", 0, "after reaching -to, step backwards this many times")
	show := fs.Bool("show", false, "print the structure at the final cursor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.setup(stderr)
	if err != nil {
		return err
	}
	lib := library.Open(cfg.GetLibraryDir())
	start, err := loadLattice(lib, *initialRef)
	if err != nil {
		return fmt.Errorf("initial: %w", err)
	}
	moves, err := loadMovements(lib, *movesRef)
	if err != nil {
		return fmt.Errorf("moves: %w", err)
	}
	log, err := movement.FromMovements(start, moves)
	if err != nil {
		return err
	}

	p, err := replay.New(start, log)
	if err != nil {
		return err
	}
	target := p.Len()
	if *to >= 0 {
		target = *to
	}
	for p.Step() < target {
		ok, line := p.Forward()
		if !ok {
			break
		}
		fmt.Fprintln(stdout, line)
	}
	if err := p.Goto(target); err != nil {
		return err
	}
	for _, line := range p.Skip(*back, false) {
		fmt.Fprintln(stdout, line)
	}

	if *show {
		return textfmt.EncodeLattice(stdout, p.Shape())
	}
	return nil
}

func loadMovements(lib *library.Library, ref string) ([]movement.Movement, error) {
	if ref == "" {
		return nil, fmt.Errorf("missing movement log")
	}
	if !strings.HasSuffix(ref, ".txt") {
		return lib.LoadMovements(ref)
	}
	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("open movement log: %w", err)
	}
	defer f.Close()
	return textfmt.DecodeMovements(f)
}
