package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var processN int

func init() {
	processCmd.Flags().IntVarP(&processN, "n", "n", 0, "Max pages to parse (0 = all fetched-but-unparsed).")
	rootCmd.AddCommand(processCmd)
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Parses up to N fetched-but-unparsed pages into the structured tables.",
	Run: func(cmd *cobra.Command, args []string) {
		p, st, _ := requirePipeline()
		defer st.Close()

		result, err := p.Process(cmd.Context(), processN)
		if err != nil {
			fmt.Println("process failed:", err)
			os.Exit(1)
		}

		fmt.Printf("processed %d pages, %d failed\n", result.Succeeded, result.Failed)
		os.Exit(exitCode(result.Failed > 0))
	},
}
