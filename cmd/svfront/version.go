package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"svfront/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the svfront version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version.Version)
		return nil
	},
}
