package extract

import (
	"strings"

	"catalogscrape/internal/parser"
	"catalogscrape/internal/store"
)

// News pairs each non-YC Link in a News section with the DateLine that
// immediately follows it, skipping blank gaps. A link with no trailing
// date is kept with an empty PublishedDate rather than dropped.
func News(slug string, sections []parser.Section) []store.NewsRow {
	var out []store.NewsRow
	seen := map[string]bool{}

	for _, sec := range sections {
		if sec.Kind != parser.SectionNews {
			continue
		}
		for i, b := range sec.Blocks {
			if b.Kind != parser.BlockLink || b.LinkText == "" || strings.Contains(b.URL, "ycombinator.com") {
				continue
			}
			if seen[b.URL] {
				continue
			}
			seen[b.URL] = true

			published := ""
			for j := i + 1; j < len(sec.Blocks); j++ {
				if sec.Blocks[j].Kind == parser.BlockEmpty {
					continue
				}
				if sec.Blocks[j].Kind == parser.BlockDateLine {
					published = sec.Blocks[j].ISODate
				}
				break
			}

			out = append(out, store.NewsRow{
				Slug:          slug,
				URL:           b.URL,
				Title:         b.LinkText,
				PublishedDate: published,
			})
		}
	}

	return out
}
