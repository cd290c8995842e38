package extract

import (
	"regexp"
	"strings"

	"catalogscrape/internal/parser"
	"catalogscrape/internal/store"
	"catalogscrape/lib/textutil"
)

var stopWordNames = map[string]bool{
	"Founders": true, "Active Founders": true, "Former Founders": true, "Inactive Founders": true,
}

var collapseWhitespace = regexp.MustCompile(`\s+`)

// Founders reads every Founders section, classifying each Person block's
// attached links by host and tracking the Active/Former toggle emitted as
// plain Text between groups. Duplicates within the page are collapsed by
// normalized name, with a later occurrence's non-null fields overwriting
// an earlier null — never the reverse — so the richer tile always wins.
func Founders(slug string, sections []parser.Section) []store.FounderRow {
	order := []string{}
	byName := map[string]*store.FounderRow{}
	isActive := true

	for _, sec := range sections {
		if sec.Kind != parser.SectionFounders {
			continue
		}
		for _, b := range sec.Blocks {
			switch b.Kind {
			case parser.BlockText:
				switch {
				case strings.Contains(b.Text, "Former") || strings.Contains(b.Text, "Inactive"):
					isActive = false
				case strings.Contains(b.Text, "Active Founders") || b.Text == "Founders":
					isActive = true
				}

			case parser.BlockPerson:
				name := collapseWhitespace.ReplaceAllString(strings.TrimSpace(b.Name), " ")
				if name == "" || stopWordNames[name] {
					continue
				}

				row := store.FounderRow{
					Slug:     slug,
					Name:     name,
					Title:    b.Title,
					Bio:      b.Bio,
					IsActive: isActive,
					LinkedIn: findPersonLink(b.Links, "linkedin.com"),
					Twitter:  firstNonEmpty(findPersonLink(b.Links, "twitter.com"), findPersonLink(b.Links, "x.com")),
					GitHub:   findPersonLink(b.Links, "github.com"),
					Email:    findMailto(b.Links),
				}

				key := textutil.NormalizeName(name)
				if existing, ok := byName[key]; ok {
					mergeFounder(existing, row)
				} else {
					byName[key] = &row
					order = append(order, key)
				}
			}
		}
	}

	out := make([]store.FounderRow, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// mergeFounder fills any null field on dst from src, so a later occurrence
// of the same person can only add detail, never erase it.
func mergeFounder(dst *store.FounderRow, src store.FounderRow) {
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Bio == "" {
		dst.Bio = src.Bio
	}
	if dst.LinkedIn == "" {
		dst.LinkedIn = src.LinkedIn
	}
	if dst.Twitter == "" {
		dst.Twitter = src.Twitter
	}
	if dst.GitHub == "" {
		dst.GitHub = src.GitHub
	}
	if dst.Email == "" {
		dst.Email = src.Email
	}
	dst.IsActive = src.IsActive
}

func findPersonLink(links []parser.PersonLink, domainPattern string) string {
	for _, l := range links {
		if strings.Contains(l.Domain, domainPattern) {
			return l.URL
		}
	}
	return ""
}

func findMailto(links []parser.PersonLink) string {
	for _, l := range links {
		if strings.HasPrefix(l.URL, "mailto:") {
			return l.URL
		}
	}
	return ""
}

func firstNonEmpty(xs ...string) string {
	for _, x := range xs {
		if x != "" {
			return x
		}
	}
	return ""
}
