package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"svfront/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "svfront",
	Short: "SystemVerilog front-end toolchain",
	Long:  `svfront lexes, preprocesses, parses, and elaborates SystemVerilog sources`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(elaborateCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show phase timing diagnostics")
	rootCmd.PersistentFlags().Int("max-diagnostics", 200, "maximum diagnostics collected per file")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel preprocess+parse workers (0=auto)")
	rootCmd.PersistentFlags().Bool("disk-cache", false, "enable the persisted per-file status cache")
	rootCmd.PersistentFlags().StringSlice("include", nil, "additional `include search directory (repeatable)")
	rootCmd.PersistentFlags().StringSlice("define", nil, "predefine NAME=TEXT (repeatable)")
	rootCmd.PersistentFlags().String("keyword-version", "", "keyword set: 1995|2001|2001-noconfig|2005|2009|2012|2017")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to an interactive terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func resolveUseColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag != "off" && isTerminal(f))
}
