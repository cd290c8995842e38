package extract

import (
	"encoding/json"

	"catalogscrape/internal/parser"
	"catalogscrape/internal/store"
)

// Extract runs all C3 extractors over one page's clustered sections and
// assembles the PageRecords C4 persists in a single transaction. Section
// JSON blobs are carried alongside the typed rows so the store keeps an
// audit trail of exactly what was clustered, independent of extraction
// logic evolving later.
func Extract(slug, url string, sections []parser.Section) store.PageRecords {
	company := Company(slug, url, sections)

	return store.PageRecords{
		Sections: sectionRows(url, slug, sections),
		Company:  &company,
		Founders: Founders(slug, sections),
		News:     News(slug, sections),
		Jobs:     Jobs(slug, sections),
		Links:    Links(slug, sections),
		Meetings: Meetings(slug, sections),
	}
}

func sectionRows(url, slug string, sections []parser.Section) []store.SectionRow {
	out := make([]store.SectionRow, 0, len(sections))
	for i, sec := range sections {
		blob, err := json.Marshal(sec.Blocks)
		if err != nil {
			blob = []byte("[]")
		}
		out = append(out, store.SectionRow{
			URL:         url,
			Slug:        slug,
			SectionKind: string(sec.Kind),
			Ord:         i,
			JSONBlob:    string(blob),
		})
	}
	return out
}
