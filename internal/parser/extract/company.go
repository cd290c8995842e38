// Package extract holds the per-section-kind routines (C3) that turn a
// clustered block stream into the domain rows the store persists.
package extract

import (
	"strconv"
	"strings"

	"catalogscrape/internal/parser"
	"catalogscrape/internal/store"
)

// Company reads the Header, Description, Meta, and Jobs sections and
// derives one companies row. Missing fields are left zero-valued rather
// than failing the page — ParseWarn territory, never raised.
func Company(slug, url string, sections []parser.Section) store.CompanyRow {
	header := findSection(sections, parser.SectionHeader)
	footer := findSection(sections, parser.SectionFooterMeta)
	jobs := findSection(sections, parser.SectionJobs)

	var headerTexts []string
	if header != nil {
		for _, b := range header.Blocks {
			if b.Kind == parser.BlockText && b.Text != "" &&
				!strings.Contains(b.Text, "| Y Combinator") && !strings.Contains(b.Text, "›") {
				headerTexts = append(headerTexts, b.Text)
			}
		}
	}
	name := firstOr(headerTexts, 0, "")
	tagline := firstOr(headerTexts, 1, "")

	var tags []string
	for _, sec := range sections {
		for _, b := range sec.Blocks {
			if b.Kind == parser.BlockTagLink {
				tags = append(tags, b.Tag)
			}
		}
	}

	var season string
	var year int
	if header != nil {
		for _, b := range header.Blocks {
			if b.Kind == parser.BlockBatchLink {
				season, year = b.Season, b.Year
				break
			}
		}
	}
	if season == "" {
		if raw := getMeta(footer, "Batch"); raw != "" {
			season, year = splitBatch(raw)
		}
	}

	status := ""
	for _, sec := range sections {
		for _, b := range sec.Blocks {
			if b.Kind == parser.BlockStatusLine {
				status = b.Status
				break
			}
		}
		if status != "" {
			break
		}
	}
	if status == "" {
		status = getMeta(footer, "Status")
	}

	homepage := ""
	if header != nil {
		for _, b := range header.Blocks {
			if b.Kind == parser.BlockLink && strings.HasPrefix(b.URL, "http") && !strings.Contains(b.URL, "ycombinator.com") {
				homepage = b.URL
				break
			}
		}
	}

	foundedYear, _ := strconv.Atoi(getMeta(footer, "Founded"))
	teamSize, _ := strconv.Atoi(strings.ReplaceAll(getMeta(footer, "Team Size"), ",", ""))
	location := getMeta(footer, "Location")
	partner := getMeta(footer, "Group Partner")
	if partner == "" {
		partner = getMeta(footer, "Primary Partner")
	}

	isHiring := false
	if jobs != nil {
		for _, b := range jobs.Blocks {
			if b.Kind == parser.BlockLink && strings.Contains(b.URL, "/jobs/") &&
				!strings.Contains(strings.ToLower(b.LinkText), "view all") {
				isHiring = true
				break
			}
		}
	}

	return store.CompanyRow{
		Slug:        slug,
		Name:        name,
		Tagline:     tagline,
		BatchSeason: season,
		BatchYear:   year,
		Status:      status,
		Location:    location,
		FoundedYear: foundedYear,
		TeamSize:    teamSize,
		Partner:     partner,
		Homepage:    homepage,
		IsHiring:    isHiring,
		SourceURL:   url,
		Tags:        strings.Join(tags, ", "),
	}
}

func findSection(sections []parser.Section, kind parser.SectionKind) *parser.Section {
	for i := range sections {
		if sections[i].Kind == kind {
			return &sections[i]
		}
	}
	return nil
}

func getMeta(section *parser.Section, key string) string {
	if section == nil {
		return ""
	}
	for _, b := range section.Blocks {
		if b.Kind == parser.BlockMetaField && b.Key == key {
			return b.Value
		}
	}
	return ""
}

func splitBatch(raw string) (string, int) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", 0
	}
	season := fields[0]
	year, _ := strconv.Atoi(fields[len(fields)-1])
	return season, year
}

func firstOr(xs []string, i int, fallback string) string {
	if i < len(xs) {
		return xs[i]
	}
	return fallback
}
