package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"svfront/internal/diag"
	"svfront/internal/diagfmt"
	"svfront/internal/parser"
	"svfront/internal/preprocess"
	"svfront/internal/sourcemap"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.sv",
	Short: "Preprocess and parse a file, reporting syntax diagnostics without elaborating",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	includeDirs, defines, maxDiag, _, err := commonFlags(cmd)
	if err != nil {
		return err
	}
	kv, err := parseKeywordVersionFlag(cmd)
	if err != nil {
		return err
	}

	sm := sourcemap.New()
	id, err := sm.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	bag := diag.NewBag(maxDiag)
	reporter := &diag.BagReporter{Bag: bag}
	pp := preprocess.New(sm, id, preprocess.Options{
		Reporter:        reporter,
		IncludeResolver: &singleFileIncludeResolver{dirs: includeDirs, fromDir: filepath.Dir(path)},
		KeywordVersion:  kv,
		Predefine:       defines,
	})
	p := parser.New(pp, nil, parser.Options{Reporter: reporter})
	tree := p.ParseCompilationUnit()

	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, sm, diagfmt.PrettyOpts{Color: resolveUseColor(cmd, os.Stderr), Context: 2})
	}
	if bag.HasErrors() {
		return fmt.Errorf("parse: %s had syntax errors", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "parsed %s: %d nodes\n", path, tree.Len())
	return nil
}
