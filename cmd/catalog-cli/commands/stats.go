package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"catalogscrape/internal/cliutil"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints queue counters: pending, fetched, parsed, failed.",
	Run: func(cmd *cobra.Command, args []string) {
		st, _ := requireStore()
		defer st.Close()

		s, err := st.FetchStats()
		if err != nil {
			fmt.Println("stats failed:", err)
			os.Exit(1)
		}

		t := cliutil.NewTable()
		t.AppendHeader(table.Row{"Total", "Pending", "Fetched", "Parsed", "Failed", "Companies"})
		t.AppendRow(table.Row{s.Total, s.Pending, s.Fetched, s.Parsed, s.Failed, s.Companies})
		t.Render()
	},
}
