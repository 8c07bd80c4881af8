package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/library"
	"github.com/ht-932/MeltSortGrow/internal/textfmt"
)

func runShow(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	template := fs.Bool("template", false, "print an empty structure of the configured lattice size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.setup(stderr)
	if err != nil {
		return err
	}
	if *template {
		l, err := lattice.New(cfg.GetLatticeSize())
		if err != nil {
			return err
		}
		return textfmt.EncodeLattice(stdout, l)
	}

	lib := library.Open(cfg.GetLibraryDir())
	if fs.NArg() > 0 {
		l, err := loadLattice(lib, fs.Arg(0))
		if err != nil {
			return err
		}
		return textfmt.EncodeLattice(stdout, l)
	}

	structures, err := lib.Structures()
	if err != nil {
		return err
	}
	plans, err := lib.Plans()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, "structures:")
	for _, s := range structures {
		fmt.Fprintf(stdout, "  %s\n", s)
	}
	fmt.Fprintln(stdout, "movements:")
	for _, p := range plans {
		fmt.Fprintf(stdout, "  %s\n", p)
	}
	return nil
}
