// Package parser implements the three-pass structural parser: a line
// lexer emitting typed blocks, a section clusterer grouping blocks by
// structural transition, and per-section extractors in the extract
// subpackage.
package parser

import (
	"strings"
)

type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockLink
	BlockTagLink
	BlockBatchLink
	BlockMetaField
	BlockStatusLine
	BlockPerson
	BlockDateLine
	BlockText
	BlockEmpty
)

type PersonLink struct {
	Domain string
	URL    string
}

// Block is a tagged-variant line classification: one Kind, with only the
// fields relevant to that kind populated. Equality is structural, not
// pointer-based, so tests can compare blocks directly.
type Block struct {
	Kind BlockKind
	Line int

	// Heading
	Level int
	Text  string

	// Link / TagLink / BatchLink
	LinkText string
	URL      string

	// TagLink
	Tag string

	// BatchLink
	Season string
	Year   int

	// MetaField
	Key   string
	Value string

	// StatusLine
	Status string

	// Person
	Name  string
	Title string
	Bio   string
	Links []PersonLink

	// DateLine
	ISODate string
}

// knownMetaKeys is the fixed vocabulary a MetaField key must belong to;
// anything else falls through to Text.
var knownMetaKeys = map[string]bool{
	"Founded": true, "Batch": true, "Team Size": true, "Status": true,
	"Location": true, "Group Partner": true, "Primary Partner": true,
}

// Lex classifies every line of a markdown page into Blocks. It is total:
// it never fails, and unrecognized lines become BlockText. Every empty line
// produces BlockEmpty; a line carrying several inline links produces one
// block per link; the lines a multi-line construct (split link, person
// tile) consumes yield one block; a repeated person tile yields none.
func Lex(markdown string) []Block {
	if strings.TrimSpace(markdown) == "" {
		return []Block{{Kind: BlockEmpty}}
	}

	re := regexes()
	lines := strings.Split(markdown, "\n")
	blocks := make([]Block, 0, len(lines))
	seen := map[string]bool{}

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			blocks = append(blocks, Block{Kind: BlockEmpty, Line: i})
			i++
			continue
		}

		if line == "[" {
			i = consumeMultilineLink(re, lines, i, i+1, &blocks)
			continue
		}

		if strings.HasPrefix(line, "](") {
			if m := re.closeLink.FindStringSubmatch(line); m != nil {
				emitLink(re, "", m[1], i, &blocks)
				rest := strings.TrimSpace(m[2])
				if rest == "[" {
					i = consumeMultilineLink(re, lines, i, i+1, &blocks)
					continue
				}
			}
			i++
			continue
		}

		if m := re.heading.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Kind: BlockHeading, Line: i, Level: len(m[1]), Text: m[2]})
			i++
			continue
		}

		if m := re.singleLink.FindStringSubmatch(line); m != nil {
			emitLink(re, m[1], m[2], i, &blocks)
			i++
			continue
		}

		if strings.Contains(line, "](") && strings.Contains(line, "[") {
			for _, m := range re.inlineLinks.FindAllStringSubmatch(line, -1) {
				emitLink(re, m[1], m[2], i, &blocks)
			}
			if strings.HasSuffix(line, "[") {
				i = consumeMultilineLink(re, lines, i, i+1, &blocks)
				continue
			}
			i++
			continue
		}

		if statusKeywords[line] {
			blocks = append(blocks, Block{Kind: BlockStatusLine, Line: i, Status: line})
			i++
			continue
		}

		if re.dateLine.MatchString(line) {
			blocks = append(blocks, Block{Kind: BlockDateLine, Line: i, ISODate: line})
			i++
			continue
		}

		if m := re.meta.FindStringSubmatch(line); m != nil {
			key := strings.TrimSpace(m[1])
			if knownMetaKeys[key] {
				blocks = append(blocks, Block{Kind: BlockMetaField, Line: i, Key: key, Value: strings.TrimSpace(m[2])})
				i++
				continue
			}
		}

		if isPersonCandidate(line) {
			if person, consumed := tryParsePerson(re, lines, i, seen); consumed > 0 {
				if person != nil {
					blocks = append(blocks, *person)
				}
				i += consumed
				continue
			}
		}

		blocks = append(blocks, Block{Kind: BlockText, Line: i, Text: line})
		i++
	}

	return blocks
}

func isPersonCandidate(line string) bool {
	if len(line) >= 60 {
		return false
	}
	if strings.Contains(line, "](") || strings.Contains(line, ":") || strings.Contains(line, "›") {
		return false
	}
	if strings.HasPrefix(line, "[>") {
		return false
	}
	if isDateLike(line) || isNoiseLine(line) {
		return false
	}
	return len(strings.Fields(line)) <= 6
}

func isDateLike(s string) bool {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	last := trimmed[len(trimmed)-1]
	if last < '0' || last > '9' {
		return false
	}
	for _, m := range months {
		if strings.HasPrefix(trimmed, m) {
			return true
		}
	}
	return false
}

func isNoiseLine(s string) bool {
	lower := strings.ToLower(s)
	if noiseLineExact[lower] {
		return true
	}
	for _, p := range noiseLinePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	for _, c := range noiseLineContains {
		if strings.Contains(lower, c) {
			return true
		}
	}
	if strings.HasSuffix(lower, "+ years") || strings.HasSuffix(lower, "+ employees") {
		return true
	}
	isDigitsOnly := true
	for _, r := range s {
		if r != ',' && r != ' ' && (r < '0' || r > '9') {
			isDigitsOnly = false
			break
		}
	}
	return isDigitsOnly
}

// consumeMultilineLink reads text lines starting at `textStart` until a
// closing `](url)` (possibly chained into another `[`), emitting one Link
// per closed block. `lineIdx` labels the emitted block with where the
// construct began. Returns the next line index to resume lexing at.
func consumeMultilineLink(re *regexTable, lines []string, lineIdx, textStart int, blocks *[]Block) int {
	var textParts []string
	j := textStart

	for j < len(lines) {
		l := strings.TrimSpace(lines[j])
		if strings.HasPrefix(l, "](") {
			urlPart := strings.TrimPrefix(l, "](")
			var url, rest string
			if end := strings.Index(urlPart, ")"); end >= 0 {
				url = urlPart[:end]
				rest = strings.TrimSpace(urlPart[end+1:])
			} else {
				url = strings.TrimSuffix(urlPart, ")")
			}
			text := strings.Join(textParts, " ")
			emitLink(re, text, url, lineIdx, blocks)

			if rest == "[" || strings.HasSuffix(rest, "[") {
				return consumeMultilineLink(re, lines, j+1, j+1, blocks)
			}
			return j + 1
		}
		textParts = append(textParts, l)
		j++
	}

	for _, part := range textParts {
		*blocks = append(*blocks, Block{Kind: BlockText, Line: lineIdx, Text: part})
	}
	return j
}

func emitLink(re *regexTable, text, url string, lineIdx int, blocks *[]Block) {
	if re.tagPath.MatchString(url) {
		parts := strings.Split(url, "/")
		tag := strings.ReplaceAll(parts[len(parts)-1], "%20", " ")
		*blocks = append(*blocks, Block{Kind: BlockTagLink, Line: lineIdx, Tag: tag, URL: url})
		return
	}
	if m := re.batchQuery.FindStringSubmatch(url); m != nil {
		season, year := parseBatch(strings.ReplaceAll(m[1], "%20", " "))
		*blocks = append(*blocks, Block{Kind: BlockBatchLink, Line: lineIdx, Season: season, Year: year, URL: url})
		return
	}
	*blocks = append(*blocks, Block{Kind: BlockLink, Line: lineIdx, LinkText: text, URL: url})
}

func parseBatch(batch string) (string, int) {
	fields := strings.Fields(batch)
	if len(fields) == 0 {
		return "", 0
	}
	season := fields[0]
	year := 0
	for _, f := range fields[len(fields)-1:] {
		for _, r := range f {
			if r < '0' || r > '9' {
				return season, 0
			}
		}
		n := 0
		for _, r := range f {
			n = n*10 + int(r-'0')
		}
		year = n
	}
	return season, year
}

// tryParsePerson implements the bounded peekable-cursor lookahead: it
// never backtracks past four following lines and never uses regex
// back-references. seen dedups by exact name across the whole page; a
// repeat returns a nil block with the count of lines its tile spans, so
// Lex skips those lines without emitting anything, and C3's founder
// extractor never sees the duplicate tile.
func tryParsePerson(re *regexTable, lines []string, start int, seen map[string]bool) (*Block, int) {
	name := strings.TrimSpace(lines[start])

	if seen[name] {
		return nil, skipPersonBlock(lines, start)
	}

	j := start + 1
	var personLinks []PersonLink

	for j < len(lines) {
		l := strings.TrimSpace(lines[j])
		if l == "" {
			j++
			continue
		}
		isBare := strings.HasPrefix(l, "[](") || strings.HasPrefix(l, "](") ||
			(strings.HasPrefix(l, "[") && !containsAlpha(l))
		if isBare {
			cleaned := strings.NewReplacer("<", "", ">", "").Replace(l)
			for _, m := range re.url.FindAllStringSubmatch(cleaned, -1) {
				url := m[1]
				domain := ""
				if dm := re.domain.FindStringSubmatch(url); dm != nil {
					domain = dm[1]
				}
				personLinks = append(personLinks, PersonLink{Domain: domain, URL: url})
			}
			j++
			continue
		}
		break
	}

	if len(personLinks) == 0 {
		nextIsTitle := j < len(lines) && containsAny(strings.TrimSpace(lines[j]), titleKeywords)
		if !nextIsTitle {
			return nil, 0
		}
	}

	title := ""
	if j < len(lines) {
		t := strings.TrimSpace(lines[j])
		if containsAny(t, titleKeywords) {
			title = t
			j++
		}
	}

	var bioParts []string
	for j < len(lines) {
		l := strings.TrimSpace(lines[j])
		if l == "" || strings.HasPrefix(l, "[") || strings.HasPrefix(l, "#") {
			break
		}
		if len(l) < 60 && !strings.Contains(l, "](") && seen[l] {
			break
		}
		bioParts = append(bioParts, l)
		j++
	}
	bio := strings.Join(bioParts, " ")

	seen[name] = true

	return &Block{
		Kind:  BlockPerson,
		Line:  start,
		Name:  name,
		Title: title,
		Bio:   bio,
		Links: personLinks,
	}, j - start
}

func skipPersonBlock(lines []string, start int) int {
	j := start + 1
	for j < len(lines) {
		l := strings.TrimSpace(lines[j])
		if l == "" {
			j++
			continue
		}
		if strings.HasPrefix(l, "[") || strings.HasPrefix(l, "](") || strings.Contains(l, "](") {
			j++
			continue
		}
		break
	}
	if j < len(lines) && containsAny(strings.TrimSpace(lines[j]), titleKeywords) {
		j++
	}
	for j < len(lines) && strings.TrimSpace(lines[j]) != "" {
		t := strings.TrimSpace(lines[j])
		if strings.HasPrefix(t, "[") || strings.HasPrefix(t, "#") {
			break
		}
		j++
	}
	return j - start
}

func containsAlpha(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
