package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var runN int

func init() {
	runCmd.Flags().IntVarP(&runN, "n", "n", 0, "Max pages per stage (0 = unbounded).")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrapes then processes up to N pages, end to end.",
	Run: func(cmd *cobra.Command, args []string) {
		p, st, _ := requirePipeline()
		defer st.Close()

		scraped, processed, err := p.Run(cmd.Context(), runN)
		if err != nil {
			fmt.Println("run failed:", err)
			os.Exit(1)
		}

		fmt.Printf("fetched %d pages (%d failed), processed %d pages (%d failed)\n",
			scraped.Succeeded, scraped.Failed, processed.Succeeded, processed.Failed)
		os.Exit(exitCode(scraped.Failed > 0 || processed.Failed > 0))
	},
}
