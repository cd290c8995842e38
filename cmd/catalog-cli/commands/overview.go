package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"catalogscrape/internal/cliutil"
)

var (
	overviewStatus string
	overviewBatch  string
	overviewN      int
)

func init() {
	overviewCmd.Flags().StringVar(&overviewStatus, "status", "", "Filter by company status (Active, Acquired, Public, Inactive).")
	overviewCmd.Flags().StringVar(&overviewBatch, "batch", "", "Filter by batch season (e.g. \"Summer\").")
	overviewCmd.Flags().IntVarP(&overviewN, "n", "n", 50, "Max rows to print.")
	rootCmd.AddCommand(overviewCmd)
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Prints a tabular view of parsed companies.",
	Run: func(cmd *cobra.Command, args []string) {
		st, _ := requireStore()
		defer st.Close()

		rows, err := st.FetchOverview(overviewStatus, overviewBatch, overviewN)
		if err != nil {
			fmt.Println("overview failed:", err)
			os.Exit(1)
		}

		t := cliutil.NewTable()
		t.AppendHeader(table.Row{"Slug", "Name", "Batch", "Status", "Team", "Location", "Partner", "Jobs"})
		for _, r := range rows {
			t.AppendRow(table.Row{r.Slug, r.Name, r.Batch, r.Status, r.TeamSize, r.Location, r.Partner, r.JobCount})
		}
		t.Render()
	},
}
