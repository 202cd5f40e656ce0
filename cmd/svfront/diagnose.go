package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svfront/internal/compilation"
	"svfront/internal/diag"
	"svfront/internal/diagfmt"
	"svfront/internal/pipeline"
	"svfront/internal/sourcemap"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [flags] <file.sv|directory>",
	Short: "Run the full pipeline and report diagnostics in pretty, short, JSON, or SARIF form",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnoseCmd,
}

func init() {
	diagnoseCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	diagnoseCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagnoseCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	addWarningPolicyFlags(diagnoseCmd)
}

func runDiagnoseCmd(cmd *cobra.Command, args []string) error {
	paths, err := resolveInputs(args[0])
	if err != nil {
		return fmt.Errorf("resolving inputs: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .sv/.svh/.v files found under %s", args[0])
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return err
	}

	includeDirs, defines, maxDiag, jobs, err := commonFlags(cmd)
	if err != nil {
		return err
	}
	kv, err := parseKeywordVersionFlag(cmd)
	if err != nil {
		return err
	}
	diskCache, err := openCacheIfRequested(cmd)
	if err != nil {
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
		return fmt.Errorf("diagnose: %w", err)
	}

	diagsSlice := c.AllDiagnostics()
	bag := diagBagFromSlice(diagsSlice, maxDiag)
	if err := applyWarningPolicy(cmd, bag); err != nil {
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	useColor := resolveUseColor(cmd, os.Stdout)

	switch format {
	case "pretty":
		diagfmt.Pretty(cmd.OutOrStdout(), bag, sm, diagfmt.PrettyOpts{Color: useColor, Context: 2, PathMode: pathMode, ShowNotes: withNotes})
	case "short":
		diagfmt.Short(cmd.OutOrStdout(), bag, sm, diagfmt.PrettyOpts{Color: useColor, PathMode: pathMode})
	case "json":
		rendered := diagfmt.Render(bag, sm, diagfmt.JSONOpts{IncludePositions: true, PathMode: pathMode, IncludeNotes: withNotes})
		if err := diagfmt.JSON(cmd.OutOrStdout(), map[string]diagfmt.DiagnosticsOutput{args[0]: {Path: args[0], Diagnostics: rendered}}); err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{ToolName: "svfront", ToolVersion: "0.1.0"}
		if err := diagfmt.SARIF(cmd.OutOrStdout(), map[string]*diag.Bag{args[0]: bag}, sm, meta); err != nil {
			return fmt.Errorf("encoding SARIF output: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if bag.HasErrors() {
		return fmt.Errorf("diagnose: %s reported errors", args[0])
	}
	return nil
}
