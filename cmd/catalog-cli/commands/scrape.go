package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var scrapeN int

func init() {
	scrapeCmd.Flags().IntVarP(&scrapeN, "n", "n", 0, "Max pages to fetch (0 = all pending).")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetches up to N pending pages and records their raw markdown.",
	Run: func(cmd *cobra.Command, args []string) {
		p, st, _ := requirePipeline()
		defer st.Close()

		result, err := p.Scrape(cmd.Context(), scrapeN)
		if err != nil {
			fmt.Println("scrape failed:", err)
			os.Exit(1)
		}

		fmt.Printf("fetched %d pages, %d failed\n", result.Succeeded, result.Failed)
		os.Exit(exitCode(result.Failed > 0))
	},
}
