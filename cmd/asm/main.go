// Command asm assembles one or more ".as" source files into base-4 encoded
// object files, driving the preprocessor and the two assembler passes per
// file and rolling up a process exit code across the whole run.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/JosefShenhav/wordasm/config"
	"github.com/JosefShenhav/wordasm/internal/assemble"
	"github.com/JosefShenhav/wordasm/internal/diag"
	"github.com/JosefShenhav/wordasm/internal/listing"
	"github.com/JosefShenhav/wordasm/internal/preprocess"
	"github.com/JosefShenhav/wordasm/internal/writer"
)

var (
	Version = "dev"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")
		listingFlag = flag.Bool("listing", false, "Write a <base>.lst listing alongside the object file")
		interactive = flag.Bool("interactive", false, "Open an interactive listing viewer after assembling (requires -listing)")
		verbose     = flag.Bool("v", false, "Print per-file and per-run word counts (no timings)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: asm [options] file [file...]\n\nEach file argument is a base name; asm reads <base>.as and writes\n<base>.am, <base>.ob, and (when applicable) <base>.ent/<base>.ext.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("asm %s\n", Version)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "CRITICAL: Found 0 file to assembly")
		os.Exit(1)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: %v\n", err)
		os.Exit(1)
	}
	if *listingFlag {
		cfg.Listing.Enabled = true
	}

	failures := 0
	totalWords := 0
	for _, base := range flag.Args() {
		ok, words := assembleFile(base, cfg, *interactive, *verbose)
		totalWords += words
		if !ok {
			failures++
		}
	}

	if *verbose {
		fmt.Printf("%d file(s) processed, %d failed, %d word(s) emitted\n", flag.NArg(), failures, totalWords)
	}

	if failures > 0 {
		os.Exit(1)
	}
}

// assembleFile runs the full pipeline for one base filename, returning
// whether it succeeded and how many code+data words it emitted.
func assembleFile(base string, cfg *config.Config, interactive, verbose bool) (ok bool, wordCount int) {
	srcPath := base + ".as"
	amPath := base + ".am"

	source, err := os.ReadFile(srcPath) // #nosec G304 -- user-provided source file path
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: cannot open %s: %v\n", srcPath, err)
		return false, 0
	}

	d := &diag.List{}
	pre := preprocess.Run(string(source), d)
	reportDiagnostics(d)

	if d.HasErrors() {
		fmt.Fprintf(os.Stderr, "WARNING: Pre-assembler failed on %s. Skipping to next file...\n", srcPath)
		return false, 0
	}

	amContent := strings.Join(pre.Lines, "\n") + "\n"
	if err := os.WriteFile(amPath, []byte(amContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: cannot write %s: %v\n", amPath, err)
		return false, 0
	}

	d2 := &diag.List{}
	state := assemble.NewState(pre.Macros, d2)
	assemble.RunPass1(state, pre.Lines)
	assemble.RunPass2(state)
	reportDiagnostics(d2)

	if d2.HasErrors() {
		fmt.Fprintf(os.Stderr, "WARNING: Assembler failed on %s.\n", srcPath)
		if !cfg.Assembler.KeepIntermediateOnFailure {
			_ = os.Remove(amPath)
		}
		return false, 0
	}

	if err := writeOutputs(base, state); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: %v\n", err)
		return false, 0
	}

	wordCount = len(state.Code.All()) + len(state.Data.All())

	if cfg.Listing.Enabled {
		rows := listing.Build(state, pre.Lines)
		lstContent := listing.Plain(rows)
		if err := os.WriteFile(base+".lst", []byte(lstContent), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot write listing for %s: %v\n", base, err)
		}
		if interactive {
			if err := listing.View(base, rows); err != nil {
				fmt.Fprintf(os.Stderr, "WARNING: listing viewer failed: %v\n", err)
			}
		}
	}

	if verbose {
		fmt.Printf("%s: %d code/data word(s), %d entr(y/ies), %d external reference(s)\n",
			base, wordCount, len(state.Entries.All()), len(state.Externals.All()))
	}

	return true, wordCount
}

func writeOutputs(base string, state *assemble.State) error {
	obFile, err := os.Create(base + ".ob") // #nosec G304 -- user-provided output base path
	if err != nil {
		return fmt.Errorf("cannot create %s.ob: %w", base, err)
	}
	defer obFile.Close()
	if err := writer.WriteObject(obFile, state); err != nil {
		return fmt.Errorf("writing %s.ob: %w", base, err)
	}

	if entries := state.Entries.All(); len(entries) > 0 {
		entFile, err := os.Create(base + ".ent") // #nosec G304 -- user-provided output base path
		if err != nil {
			return fmt.Errorf("cannot create %s.ent: %w", base, err)
		}
		defer entFile.Close()
		if err := writer.WriteEntries(entFile, state); err != nil {
			return fmt.Errorf("writing %s.ent: %w", base, err)
		}
	}

	if uses := state.Externals.All(); len(uses) > 0 {
		extFile, err := os.Create(base + ".ext") // #nosec G304 -- user-provided output base path
		if err != nil {
			return fmt.Errorf("cannot create %s.ext: %w", base, err)
		}
		defer extFile.Close()
		if err := writer.WriteExternals(extFile, state); err != nil {
			return fmt.Errorf("writing %s.ext: %w", base, err)
		}
	}

	return nil
}

func reportDiagnostics(d *diag.List) {
	for _, item := range d.Items() {
		fmt.Fprintln(os.Stderr, item.String())
	}
}
