package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"svfront/internal/diag"
	"svfront/internal/diagfmt"
	"svfront/internal/preprocess"
	"svfront/internal/sourcemap"
	"svfront/internal/token"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess [flags] file.sv",
	Short: "Run the preprocessor over a file and print the expanded token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreprocess,
}

func runPreprocess(cmd *cobra.Command, args []string) error {
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
	pp := preprocess.New(sm, id, preprocess.Options{
		Reporter:        &diag.BagReporter{Bag: bag},
		IncludeResolver: &singleFileIncludeResolver{dirs: includeDirs, fromDir: filepath.Dir(path)},
		KeywordVersion:  kv,
		Predefine:       defines,
	})

	for {
		tok := pp.Next()
		fmt.Fprint(cmd.OutOrStdout(), tok.Text)
		if tok.Kind == token.EOF {
			break
		}
	}
	fmt.Fprintln(cmd.OutOrStdout())

	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, sm, diagfmt.PrettyOpts{Color: resolveUseColor(cmd, os.Stderr), Context: 2})
	}
	if bag.HasErrors() {
		return fmt.Errorf("preprocess: %s had errors", path)
	}
	return nil
}
