package parser

import (
	"regexp"
	"sync"
)

// regexTable holds every pattern the lexer and clusterer need, compiled
// once per process and shared read-only by every parse worker — the same
// "global precompiled regex table" discipline as a Rust LazyLock,
// initialized lazily through sync.OnceValue on the first call.
type regexTable struct {
	heading     *regexp.Regexp
	singleLink  *regexp.Regexp
	inlineLinks *regexp.Regexp
	closeLink   *regexp.Regexp
	meta        *regexp.Regexp
	tagPath     *regexp.Regexp
	batchQuery  *regexp.Regexp
	url         *regexp.Regexp
	domain      *regexp.Regexp
	dateLine    *regexp.Regexp
	jobsPath    *regexp.Regexp
	salary      *regexp.Regexp
	experience  *regexp.Regexp
	applyNow    *regexp.Regexp
}

var regexes = sync.OnceValue(func() *regexTable {
	return &regexTable{
		heading:     regexp.MustCompile(`^(#{1,6})\s+(.+)$`),
		singleLink:  regexp.MustCompile(`^\[([^\]]*)\]\(([^)]+)\)$`),
		inlineLinks: regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`),
		closeLink:   regexp.MustCompile(`^\]\(([^)]+)\)(.*)$`),
		meta:        regexp.MustCompile(`^([A-Z][A-Za-z ]{1,22}):(.*)$`),
		tagPath:     regexp.MustCompile(`/companies/(industry|location)/`),
		batchQuery:  regexp.MustCompile(`\?batch=([^)]+)`),
		url:         regexp.MustCompile(`\((https?://[^)]+)\)`),
		domain:      regexp.MustCompile(`https?://(?:www\.)?([^/]+)`),
		dateLine:    regexp.MustCompile(`^[A-Z][a-z]{2} \d{2}, \d{4}$`),
		jobsPath:    regexp.MustCompile(`/jobs/`),
		salary:      regexp.MustCompile(`^\$[\d,]+K?\s*-\s*\$[\d,]+K?`),
		experience:  regexp.MustCompile(`^\d+\+?\s*years?$`),
		applyNow:    regexp.MustCompile(`\[Apply Now[^\]]*\]\(([^)]+)\)`),
	}
})

var statusKeywords = map[string]bool{
	"Active": true, "Public": true, "Acquired": true, "Inactive": true,
}

var titleKeywords = []string{
	"Founder", "CEO", "CTO", "COO", "Co-", "President", "Partner", "Chairman",
}

var noiseLinePrefixes = []string{
	"jobs at ", "company launches", "active founders", "former founders", "yc ",
}

var noiseLineContains = []string{"view all", "demo day"}

var noiseLineExact = map[string]bool{
	"latest news": true, "founders": true, "inactive founders": true,
}
