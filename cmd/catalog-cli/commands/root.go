package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
	strict     bool
)

var rootCmd = &cobra.Command{
	Use:   "catalog-cli",
	Short: "catalog-cli scrapes and parses a Y Combinator-style company catalog into a local database.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "catalog.db", "Path to the sqlite database file.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "catalog.json5", "Path to the catalog.json5 config file.")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Exit non-zero if any page failed.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
