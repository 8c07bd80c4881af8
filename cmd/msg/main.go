// Command msg plans and replays modular robot reconfigurations with the
// Melt Sort Grow algorithm.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ht-932/MeltSortGrow/internal/config"
	"github.com/ht-932/MeltSortGrow/internal/lattice"
	"github.com/ht-932/MeltSortGrow/internal/library"
	"github.com/ht-932/MeltSortGrow/internal/monitoring"
	"github.com/ht-932/MeltSortGrow/internal/msg"
	"github.com/ht-932/MeltSortGrow/internal/textfmt"
	"github.com/ht-932/MeltSortGrow/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printHelp(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "plan":
		err = runPlan(args[1:], stdout, stderr)
	case "replay":
		err = runReplay(args[1:], stdout, stderr)
	case "show":
		err = runShow(args[1:], stdout, stderr)
	case "archive":
		err = runArchive(args[1:], stdout, stderr)
	case "migrate":
		err = runMigrate(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, version.String())
	case "help", "-h", "--help":
		printHelp(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printHelp(stderr)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "msg %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `Usage: msg <command> [flags]

Commands:
  plan      plan a reconfiguration between two structures
  replay    step through a saved movement log
  show      print a structure or list the library
  archive   list, get or delete archived plans (list|get|delete)
  migrate   manage the archive schema (up|down|status|force)
  version   print build information

Run 'msg <command> -h' for the flags of a command.`)
}

// common holds the flags shared by commands that read the planner config.
type common struct {
	configPath string
	libraryDir string
	archive    string
	verbose    bool
	trace      bool
	quiet      bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "planner config JSON (defaults when empty)")
	fs.StringVar(&c.libraryDir, "library", "", "structure and movement library directory (overrides config)")
	fs.StringVar(&c.archive, "archive", "", "sqlite plan archive (overrides config)")
	fs.BoolVar(&c.verbose, "v", false, "log per-phase diagnostics")
	fs.BoolVar(&c.trace, "trace", false, "log every movement as it is planned")
	fs.BoolVar(&c.quiet, "quiet", false, "suppress all logging")
}

// setup loads the config, applies flag overrides and configures logging.
func (c *common) setup(stderr io.Writer) (*config.PlannerConfig, error) {
	cfg := config.EmptyPlannerConfig()
	if c.configPath != "" {
		loaded, err := config.LoadPlannerConfig(c.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.libraryDir != "" {
		cfg.LibraryDir = &c.libraryDir
	}
	if c.archive != "" {
		cfg.ArchivePath = &c.archive
	}

	w := msg.LogWriters{Ops: stderr}
	if c.verbose || c.trace {
		w.Diag = stderr
	}
	if c.trace {
		w.Trace = stderr
	}
	if c.quiet {
		w = msg.LogWriters{}
		monitoring.SetLogger(nil)
	}
	msg.SetLogWriters(w)
	return cfg, nil
}

// loadLattice reads ref as a text file when it ends in .txt, otherwise as
// a named structure in lib.
func loadLattice(lib *library.Library, ref string) (*lattice.Lattice, error) {
	if ref == "" {
		return nil, fmt.Errorf("missing structure")
	}
	if !strings.HasSuffix(ref, ".txt") {
		return lib.LoadStructure(ref)
	}
	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("open structure: %w", err)
	}
	defer f.Close()
	return textfmt.DecodeLattice(f)
}
