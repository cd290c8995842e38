package extract

import (
	"strings"

	"catalogscrape/internal/parser"
	"catalogscrape/internal/store"
)

var socialDomains = []string{
	"twitter.com", "x.com", "linkedin.com", "facebook.com", "instagram.com",
	"github.com", "tiktok.com", "threads.net", "reddit.com",
}

var mediaDomains = []string{
	"youtube.com", "youtu.be", "vimeo.com", "spotify.com", "soundcloud.com",
	"podcasts.apple.com", "twitch.tv",
}

// Links sweeps every section's Link blocks plus every Person's attached
// links into one deduped, classified page-link table. A link surfaced
// through a Person block carries that founder's name so the store can
// resolve it to a founder_id after founders have been written.
func Links(slug string, sections []parser.Section) []store.LinkRow {
	var out []store.LinkRow
	seen := map[string]bool{}

	add := func(url, anchor, founderName string) {
		if url == "" || strings.Contains(url, "ycombinator.com") || seen[url] {
			return
		}
		seen[url] = true
		domain := extractDomain(url)
		out = append(out, store.LinkRow{
			Slug:           slug,
			URL:            url,
			AnchorText:     anchor,
			Domain:         domain,
			Classification: classifyLink(url, domain),
			FounderName:    founderName,
		})
	}

	for _, sec := range sections {
		for _, b := range sec.Blocks {
			switch b.Kind {
			case parser.BlockLink:
				add(b.URL, b.LinkText, "")
			case parser.BlockPerson:
				for _, l := range b.Links {
					add(l.URL, "", b.Name)
				}
			}
		}
	}

	return out
}

func classifyLink(url, domain string) string {
	if strings.Contains(url, "/companies/") || strings.Contains(domain, "ycombinator.com") {
		return "catalog-internal"
	}
	for _, d := range socialDomains {
		if strings.Contains(domain, d) {
			return "social"
		}
	}
	for _, d := range mediaDomains {
		if strings.Contains(domain, d) {
			return "media"
		}
	}
	return "other"
}

func extractDomain(url string) string {
	rest := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	rest = strings.TrimPrefix(rest, "www.")
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
