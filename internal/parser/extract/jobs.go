package extract

import (
	"regexp"
	"strings"

	"catalogscrape/internal/parser"
	"catalogscrape/internal/store"
)

var (
	experienceRe = regexp.MustCompile(`^\d+\+?\s*years?$`)
	salaryRe     = regexp.MustCompile(`^\$[\d,]+K?\s*-\s*\$[\d,]+K?`)
)

// Jobs reads a Jobs section's job-posting links and scavenges the next few
// blocks for location, experience, and salary detail, stopping at the
// next job link, section boundary, or a six-block lookahead cap so one
// sparse tile can't swallow the next listing's fields.
func Jobs(slug string, sections []parser.Section) []store.JobRow {
	var out []store.JobRow
	seen := map[string]bool{}

	for _, sec := range sections {
		if sec.Kind != parser.SectionJobs {
			continue
		}
		for i, b := range sec.Blocks {
			if b.Kind != parser.BlockLink || !strings.Contains(b.URL, "/jobs/") || b.LinkText == "" {
				continue
			}
			if strings.Contains(strings.ToLower(b.LinkText), "view all") {
				continue
			}
			if seen[b.URL] {
				continue
			}
			seen[b.URL] = true

			row := store.JobRow{Slug: slug, URL: b.URL, Title: b.LinkText}

			limit := i + 7
			if limit > len(sec.Blocks) {
				limit = len(sec.Blocks)
			}
			for j := i + 1; j < limit; j++ {
				nb := sec.Blocks[j]
				if nb.Kind == parser.BlockLink && strings.Contains(nb.URL, "/jobs/") {
					break
				}
				if nb.Kind != parser.BlockText {
					continue
				}
				switch {
				case experienceRe.MatchString(nb.Text):
					row.Experience = nb.Text
				case salaryRe.MatchString(nb.Text):
					// salary noted but not persisted as a column; location below gets the free slot
				case row.Location == "":
					row.Location = nb.Text
				}
			}

			out = append(out, row)
		}
	}

	return out
}
