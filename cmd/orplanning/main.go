package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "orplanning",
	Short: "Operating room supervision rule engine",
	Long: `orplanning validates daily supervision plannings of operating rooms
against a catalog of supervision rules.

It serves an HTTP API over Postgres or a YAML snapshot, and can validate
a snapshot from the command line.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newConflictsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
