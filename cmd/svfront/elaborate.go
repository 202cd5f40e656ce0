package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svfront/internal/cache"
	"svfront/internal/compilation"
	"svfront/internal/diag"
	"svfront/internal/diagfmt"
	"svfront/internal/pipeline"
	"svfront/internal/sourcemap"
)

var elaborateCmd = &cobra.Command{
	Use:   "elaborate [flags] <file.sv|directory>",
	Short: "Preprocess, parse, and elaborate every source file, reporting binder diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runElaborate,
}

func init() {
	elaborateCmd.Flags().Bool("params", false, "report every top-level parameter's folded constant value")
	addWarningPolicyFlags(elaborateCmd)
}

func runElaborate(cmd *cobra.Command, args []string) error {
	paths, err := resolveInputs(args[0])
	if err != nil {
		return fmt.Errorf("resolving inputs: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .sv/.svh/.v files found under %s", args[0])
	}

	includeDirs, defines, maxDiag, jobs, err := commonFlags(cmd)
	if err != nil {
		return err
	}
	kv, err := parseKeywordVersionFlag(cmd)
	if err != nil {
		return err
	}
	var diskCache *cache.Disk
	if diskCache, err = openCacheIfRequested(cmd); err != nil {
		return err
	}

	sm := sourcemap.New()
	c := compilation.New(sm)
	opts := pipeline.Options{
		IncludeDirs:    includeDirs,
		Predefine:      defines,
		KeywordVersion: kv,
		Jobs:           jobs,
		MaxDiagnostics: maxDiag,
		Cache:          diskCache,
	}
	if len(paths) > 1 {
		bar := diagfmt.NewProgress(os.Stderr)
		opts.OnProgress = func(done, total int, path string) { bar.Update(done, total, path) }
		defer bar.Done()
	}

	if _, err := pipeline.Run(context.Background(), c, sm, paths, opts); err != nil {
		return fmt.Errorf("elaborate: %w", err)
	}

	diags := c.AllDiagnostics()
	hasErrors := false
	if len(diags) > 0 {
		bag := diagBagFromSlice(diags, maxDiag)
		if err := applyWarningPolicy(cmd, bag); err != nil {
			return err
		}
		hasErrors = bag.HasErrors()
		diagfmt.Pretty(os.Stderr, bag, sm, diagfmt.PrettyOpts{Color: resolveUseColor(cmd, os.Stderr), Context: 2})
	}

	root := c.Table()
	fmt.Fprintf(cmd.OutOrStdout(), "elaborated %d file(s): %d scopes, %d symbols\n", len(paths), root.Scopes.Len(), root.Symbols.Len())

	if dumpParams, _ := cmd.Flags().GetBool("params"); dumpParams {
		for _, p := range c.Parameters() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", p.Name, p.Value)
		}
	}

	if hasErrors {
		return fmt.Errorf("elaborate: elaboration reported errors")
	}
	return nil
}

// diagBagFromSlice rewraps an already-collected diagnostic slice (e.g.
// Compilation.AllDiagnostics) into a fresh Bag so diagfmt's rendering
// functions, which take a *diag.Bag, can be reused here too.
func diagBagFromSlice(diags []diag.Diagnostic, minCap int) *diag.Bag {
	if minCap < len(diags) {
		minCap = len(diags)
	}
	bag := diag.NewBag(minCap)
	for _, d := range diags {
		bag.Add(d)
	}
	return bag
}
