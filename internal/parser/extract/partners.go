package extract

import (
	"html"
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"

	"catalogscrape/internal/parser"
	"catalogscrape/internal/store"
	"catalogscrape/lib/textutil"
)

var peopleURLRe = regexp.MustCompile(`/people/([a-z0-9-]+)/?$`)

// peopleURLScanRe finds a /people/<slug> reference anywhere in a page's raw
// markdown, unanchored since the link can appear mid-document rather than
// at the end of the string peopleURLRe expects.
var peopleURLScanRe = regexp.MustCompile(`/people/([a-z][a-z0-9-]+)`)

var partnerTitleKeywords = []string{
	"Partner", "President", "CEO", "Managing", "General", "Emeritus", "Visiting", "Head of", "Founder",
}

// DefaultNameMatchThreshold is the minimum Jaro-Winkler similarity
// MatchCompanyPartner accepts for a name-based match when the caller has no
// configured override; below it a company's partner is left unmatched
// rather than risk a false positive.
const DefaultNameMatchThreshold = 0.92

// ParsePartnersPage lexes a catalog partners directory page into one row
// per person tile with a /people/<slug> profile link, reading title and
// bio from the plain-text blocks among the next five blocks, stopping
// early at the next link or heading. The first text containing a title
// keyword is the title; every other text block joins the bio.
func ParsePartnersPage(markdown string) []store.PartnerRow {
	blocks := parser.Lex(markdown)
	var out []store.PartnerRow
	seen := map[string]bool{}

	for i, b := range blocks {
		if b.Kind != parser.BlockLink || b.LinkText == "" {
			continue
		}
		m := peopleURLRe.FindStringSubmatch(b.URL)
		if m == nil {
			continue
		}
		slug := m[1]
		if seen[slug] {
			continue
		}
		seen[slug] = true

		title := ""
		var bioParts []string
		for j := i + 1; j < len(blocks) && j < i+6; j++ {
			nb := blocks[j]
			if nb.Kind == parser.BlockLink || nb.Kind == parser.BlockHeading {
				break
			}
			if nb.Kind != parser.BlockText {
				continue
			}
			if title == "" && containsAny(nb.Text, partnerTitleKeywords) {
				title = decodeEntities(nb.Text)
				continue
			}
			bioParts = append(bioParts, decodeEntities(nb.Text))
		}

		out = append(out, store.PartnerRow{
			Slug:  slug,
			URL:   b.URL,
			Name:  decodeEntities(b.LinkText),
			Title: title,
			Bio:   strings.Join(bioParts, " "),
		})
	}

	return out
}

func decodeEntities(s string) string {
	return html.UnescapeString(s)
}

// MatchCompanyPartner ties a company's Group Partner meta value to the
// partners roster. A /people/<slug> link appearing on the company's own
// page is authoritative; absent that, the meta value's name is fuzzy
// matched against the roster by Jaro-Winkler similarity. threshold <= 0
// falls back to DefaultNameMatchThreshold.
func MatchCompanyPartner(rawMarkdown, partnerMetaValue string, partners []store.PartnerRow, threshold float64) (slug, method string) {
	if threshold <= 0 {
		threshold = DefaultNameMatchThreshold
	}

	if m := peopleURLScanRe.FindStringSubmatch(rawMarkdown); m != nil {
		candidate := m[1]
		for _, p := range partners {
			if p.Slug == candidate {
				return p.Slug, "url"
			}
		}
	}

	name := strings.TrimSpace(partnerMetaValue)
	if name == "" {
		return "", ""
	}

	normalizedName := textutil.NormalizeName(name)
	bestSlug := ""
	bestScore := 0.0
	for _, p := range partners {
		score := matchr.JaroWinkler(normalizedName, textutil.NormalizeName(p.Name), false)
		if score > bestScore {
			bestScore = score
			bestSlug = p.Slug
		}
	}
	if bestScore >= threshold {
		return bestSlug, "name"
	}
	return "", ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
