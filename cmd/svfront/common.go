package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"svfront/internal/cache"
	"svfront/internal/diag"
	"svfront/internal/preprocess"
	"svfront/internal/token"
)

// addWarningPolicyFlags registers the --no-warnings/--warnings-as-errors
// pair on cmd, shared by every subcommand that renders a diag.Bag.
func addWarningPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
}

// applyWarningPolicy reads --no-warnings/--warnings-as-errors off cmd and
// rewrites bag in place, after it has been collected and sorted and before
// it is rendered:
// warnings-as-errors promotes every SevWarning to SevError first (so a
// build downstream that checks HasErrors sees it), then no-warnings drops
// anything still below SevError.
func applyWarningPolicy(cmd *cobra.Command, bag *diag.Bag) error {
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return err
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return err
	}
	if warningsAsErrors {
		bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
	if noWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool { return d.Severity >= diag.SevError })
	}
	return nil
}

var keywordVersionsByFlag = map[string]token.KeywordVersion{
	"":              token.KeywordsDefault,
	"1995":          token.KeywordsVerilog1995,
	"2001":          token.KeywordsVerilog2001,
	"2001-noconfig": token.KeywordsVerilog2001NoConfig,
	"2005":          token.KeywordsSystemVerilog2005,
	"2009":          token.KeywordsSystemVerilog2009,
	"2012":          token.KeywordsSystemVerilog2012,
	"2017":          token.KeywordsSystemVerilog2017,
}

func parseKeywordVersionFlag(cmd *cobra.Command) (token.KeywordVersion, error) {
	raw, err := cmd.Root().PersistentFlags().GetString("keyword-version")
	if err != nil {
		return 0, err
	}
	v, ok := keywordVersionsByFlag[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return 0, fmt.Errorf("unrecognized --keyword-version %q", raw)
	}
	return v, nil
}

// parseDefines splits each "NAME=TEXT" (or bare "NAME", defined as empty
// text) entry from --define into the map preprocess.Options.Predefine
// expects.
func parseDefines(entries []string) map[string]string {
	if len(entries) == 0 {
		return nil
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		name, text, _ := strings.Cut(e, "=")
		out[name] = text
	}
	return out
}

func commonFlags(cmd *cobra.Command) (includeDirs []string, defines map[string]string, maxDiag int, jobs int, err error) {
	includeDirs, err = cmd.Root().PersistentFlags().GetStringSlice("include")
	if err != nil {
		return
	}
	rawDefines, err := cmd.Root().PersistentFlags().GetStringSlice("define")
	if err != nil {
		return
	}
	defines = parseDefines(rawDefines)
	maxDiag, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return
	}
	jobs, err = cmd.Root().PersistentFlags().GetInt("jobs")
	return
}

func openCacheIfRequested(cmd *cobra.Command) (*cache.Disk, error) {
	enabled, err := cmd.Root().PersistentFlags().GetBool("disk-cache")
	if err != nil || !enabled {
		return nil, err
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("resolving cache directory: %w", err)
	}
	return cache.Open(dir)
}

// singleFileIncludeResolver resolves `include operands against the
// including file's own directory, then each of dirs in order — the same
// search order internal/pipeline's own resolver uses, duplicated here
// because the tokenize/preprocess commands run below internal/pipeline,
// directly against one file's Preprocessor.
type singleFileIncludeResolver struct {
	dirs    []string
	fromDir string
}

func (r *singleFileIncludeResolver) Resolve(spec preprocess.IncludeSpec) (string, []byte, bool) {
	candidates := append([]string{r.fromDir}, r.dirs...)
	for _, dir := range candidates {
		full := filepath.Join(dir, spec.Name)
		content, err := os.ReadFile(full) // #nosec G304 -- operand is source text, search path is caller-configured
		if err == nil {
			return full, content, true
		}
	}
	return "", nil, false
}
