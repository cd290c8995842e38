package parser

import "strings"

type SectionKind string

const (
	SectionHeader      SectionKind = "header"
	SectionDescription SectionKind = "description"
	SectionFooterMeta  SectionKind = "footer_meta"
	SectionFounders    SectionKind = "founders"
	SectionNews        SectionKind = "news"
	SectionJobs        SectionKind = "jobs"
	SectionLaunches    SectionKind = "launches"
	SectionUnknown     SectionKind = "unknown"
)

type Section struct {
	Kind   SectionKind
	Blocks []Block
}

// Cluster partitions a flat block list into an ordered, total section
// list: every block belongs to exactly one section. A transition fires on
// the block that opens the new section, following the original
// detect_transition rule set. The rules do not stop a later block from
// reopening a kind seen earlier on the page (so a page can hold more than
// one section of a kind), and no rule produces SectionUnknown.
func Cluster(blocks []Block) []Section {
	var sections []Section
	var current []Block
	currentKind := SectionHeader

	for i, b := range blocks {
		if newKind, ok := detectTransition(b, blocks, i, currentKind); ok {
			if len(current) > 0 {
				sections = append(sections, Section{Kind: currentKind, Blocks: current})
				current = nil
			}
			currentKind = newKind
		}
		current = append(current, b)
	}

	if len(current) > 0 {
		sections = append(sections, Section{Kind: currentKind, Blocks: current})
	}

	return sections
}

func detectTransition(b Block, all []Block, idx int, currentKind SectionKind) (SectionKind, bool) {
	switch b.Kind {
	case BlockHeading:
		if b.Level == 3 {
			return SectionDescription, true
		}

	case BlockMetaField:
		if currentKind != SectionFooterMeta && countMetaCluster(all, idx) >= 3 {
			return SectionFooterMeta, true
		}

	case BlockPerson:
		if currentKind != SectionFounders {
			return SectionFounders, true
		}

	case BlockText:
		t := b.Text
		if currentKind != SectionFounders &&
			(t == "Founders" || t == "Active Founders" || t == "Former Founders" || t == "Inactive Founders") {
			return SectionFounders, true
		}
		if currentKind != SectionNews && strings.Contains(t, "Latest News") {
			return SectionNews, true
		}
		if currentKind != SectionJobs && strings.HasPrefix(t, "Jobs at ") {
			return SectionJobs, true
		}
		if strings.Contains(t, "Company Launches") {
			return SectionLaunches, true
		}

	case BlockLink:
		if b.LinkText != "" && !strings.Contains(b.URL, "ycombinator.com") &&
			currentKind != SectionNews && currentKind != SectionJobs {
			if nextNonEmptyIsDate(all, idx) {
				return SectionNews, true
			}
		}
		if strings.Contains(b.URL, "/jobs/") && b.LinkText != "" && currentKind != SectionJobs {
			return SectionJobs, true
		}
		if strings.Contains(b.LinkText, "View all jobs") && currentKind != SectionJobs {
			return SectionJobs, true
		}
	}

	return "", false
}

// countMetaCluster counts consecutive MetaField blocks starting at idx,
// allowing Empty, StatusLine, and bare Link gaps (footer social icons).
func countMetaCluster(blocks []Block, start int) int {
	count := 0
	for i := start; i < len(blocks); i++ {
		b := blocks[i]
		switch {
		case b.Kind == BlockMetaField:
			count++
		case b.Kind == BlockStatusLine || b.Kind == BlockEmpty:
			// gap, keep scanning
		case b.Kind == BlockLink && b.LinkText == "":
			// bare social link, keep scanning
		default:
			return count
		}
	}
	return count
}

func nextNonEmptyIsDate(blocks []Block, idx int) bool {
	for i := idx + 1; i < len(blocks); i++ {
		if blocks[i].Kind == BlockEmpty {
			continue
		}
		return blocks[i].Kind == BlockDateLine
	}
	return false
}
