package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svfront/internal/diag"
	"svfront/internal/diagfmt"
	"svfront/internal/lexer"
	"svfront/internal/sourcemap"
	"svfront/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.sv",
	Short: "Run the raw lexer over a source file, before any directive or macro processing",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	kv, err := parseKeywordVersionFlag(cmd)
	if err != nil {
		return err
	}
	maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	sm := sourcemap.New()
	id, err := sm.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	bag := diag.NewBag(maxDiag)
	lx := lexer.New(sm.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}, KeywordVersion: kv})

	for {
		tok := lx.Next()
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%q\n", tok.Kind, tok.Text)
		if tok.Kind == token.EOF {
			break
		}
	}

	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, sm, diagfmt.PrettyOpts{Color: resolveUseColor(cmd, os.Stderr), Context: 0})
	}
	if bag.HasErrors() {
		return fmt.Errorf("tokenize: %s had lexical errors", path)
	}
	return nil
}
