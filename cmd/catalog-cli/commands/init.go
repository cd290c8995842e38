package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"catalogscrape/internal/fetch"
)

var excludedPathSubstrings = []string{
	"/companies/industry/", "/companies/location/", "?batch=", "/jobs", "/launches",
}

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Fetches the catalog's sitemap(s) and enqueues every company page found.",
	Run: func(cmd *cobra.Command, args []string) {
		st, cfg := requireStore()
		defer st.Close()

		sitemapURL := strings.TrimRight(cfg.Catalog.BaseURL, "/") + "/sitemap.xml"
		urls, err := fetch.DiscoverSitemapURLs(cmd.Context(), sitemapURL)
		if err != nil {
			fmt.Println("failed to discover sitemap:", err)
			return
		}

		pages := map[string]string{}
		for _, u := range urls {
			if !isEnqueueable(u, cfg.Catalog.PartnersPath) {
				continue
			}
			pages[u] = slugFromURL(u)
		}

		if cfg.Catalog.PartnersPath != "" {
			partnersURL := strings.TrimRight(cfg.Catalog.BaseURL, "/") + cfg.Catalog.PartnersPath
			pages[partnersURL] = "partners"
		}

		n, err := st.Enqueue(pages)
		if err != nil {
			fmt.Println("failed to enqueue:", err)
			return
		}

		fmt.Printf("discovered %d urls, enqueued %d new\n", len(urls), n)
	},
}

// isEnqueueable keeps company pages and the partners index itself, and
// drops the catalog's industry/location/batch filter views and individual
// job/launch pages, which the sitemap lists alongside real company pages.
func isEnqueueable(u, partnersPath string) bool {
	for _, sub := range excludedPathSubstrings {
		if strings.Contains(u, sub) {
			return false
		}
	}
	if partnersPath != "" && strings.HasSuffix(strings.TrimRight(u, "/"), strings.TrimRight(partnersPath, "/")) {
		return true
	}
	return strings.Contains(u, "/companies/")
}

func slugFromURL(u string) string {
	trimmed := strings.TrimRight(u, "/")
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-1]
}
