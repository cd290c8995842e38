package pipeline

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"catalogscrape/internal/assert"
	"catalogscrape/internal/fetch"
	"catalogscrape/internal/parser"
	"catalogscrape/internal/parser/extract"
	"catalogscrape/internal/store"
	"catalogscrape/internal/telemetry"
)

const (
	report_pipeline_scrape  = "pipeline.scrape"
	report_pipeline_process = "pipeline.process"
)

// Pipeline wires the queue (C5), fetcher (C6), and parser/extractor (C1-C3)
// into the two resumable operations the CLI drives: scraping claims pages
// and stores their raw markdown, processing lexes/clusters/extracts
// whatever has been fetched but not yet parsed.
type Pipeline struct {
	store          *store.Store
	fetcher        fetch.Client
	tel            telemetry.API
	concurrency    int
	partnersPath   string
	matchThreshold float64
}

// New wires a Pipeline. partnersPath identifies the catalog's partners
// index page by URL suffix (e.g. "/people"), which is parsed differently
// from a company page; matchThreshold overrides the fuzzy-match cutoff
// MatchCompanyPartner uses, 0 meaning its default.
func New(s *store.Store, f fetch.Client, tel telemetry.API, concurrency int, partnersPath string, matchThreshold float64) Pipeline {
	assert.NotNil(s)
	assert.NotNil(tel)
	if concurrency <= 0 {
		concurrency = 10
	}
	return Pipeline{
		store:          s,
		fetcher:        f,
		tel:            tel,
		concurrency:    concurrency,
		partnersPath:   partnersPath,
		matchThreshold: matchThreshold,
	}
}

// Result tallies one stage's outcome, letting the CLI decide its exit
// code under --strict without re-deriving counts from the store.
type Result struct {
	Succeeded int
	Failed    int
}

// Scrape claims up to n pending pages and fetches each one, bounded by a
// channel-based semaphore sized to p.concurrency. A fetch failure marks
// the page failed rather than aborting the batch.
func (p Pipeline) Scrape(ctx context.Context, n int) (Result, error) {
	pages, err := p.store.NextToFetch(n)
	if err != nil {
		return Result{}, err
	}

	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var result Result

	for _, pg := range pages {
		wg.Add(1)
		sem <- struct{}{}
		go func(pg store.Page) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := p.fetcher.Fetch(ctx, pg.URL)
			if err != nil {
				p.tel.ReportWarning(report_pipeline_scrape, pg.URL, err.Error())
				if markErr := p.store.MarkFailed(pg.URL, err); markErr != nil {
					slog.ErrorContext(ctx, "failed to mark page failed", "url", pg.URL, "err", markErr)
				}
				mu.Lock()
				result.Failed++
				mu.Unlock()
				return
			}

			if err := p.store.MarkFetched(pg.URL, res.Markdown, res.HTTPStatus, res.LatencyMs); err != nil {
				slog.ErrorContext(ctx, "failed to mark page fetched", "url", pg.URL, "err", err)
				mu.Lock()
				result.Failed++
				mu.Unlock()
				return
			}

			mu.Lock()
			result.Succeeded++
			mu.Unlock()
		}(pg)
	}

	wg.Wait()
	p.tel.ReportCount(report_pipeline_scrape, int64(result.Succeeded))
	return result, nil
}

// Process claims up to n fetched-but-unparsed pages and runs them through
// the lexer, clusterer, and extractors on a worker pool sized to the host's
// GOMAXPROCS, since this stage is CPU-bound rather than I/O-bound.
func (p Pipeline) Process(ctx context.Context, n int) (Result, error) {
	pages, err := p.store.NextToParse(n)
	if err != nil {
		return Result{}, err
	}

	partners, err := p.store.FetchPartners()
	if err != nil {
		return Result{}, err
	}

	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan store.FetchedPage)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var result Result

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pg := range jobs {
				var err error
				if p.isPartnersPage(pg.URL) {
					err = p.processPartnersPage(pg)
				} else {
					err = p.processCompanyPage(pg, partners)
				}

				mu.Lock()
				if err != nil {
					p.tel.ReportWarning(report_pipeline_process, pg.URL, err.Error())
					result.Failed++
				} else {
					result.Succeeded++
				}
				mu.Unlock()
			}
		}()
	}

	for _, pg := range pages {
		jobs <- pg
	}
	close(jobs)
	wg.Wait()

	if err := p.reconcilePartners(); err != nil {
		p.tel.ReportWarning(report_pipeline_process, "reconcile partners", err.Error())
	}

	p.tel.ReportCount(report_pipeline_process, int64(result.Succeeded))
	return result, nil
}

// reconcilePartners retries any company whose Group Partner value has
// never resolved to a partners row, against the roster as it stands after
// this batch — covering the case where a company page was parsed before
// the partners index page that would have matched it.
func (p Pipeline) reconcilePartners() error {
	unmatched, err := p.store.FetchUnmatchedPartners()
	if err != nil || len(unmatched) == 0 {
		return err
	}

	partners, err := p.store.FetchPartners()
	if err != nil || len(partners) == 0 {
		return err
	}

	markdownBySlug, err := p.store.FetchScrapedMarkdown()
	if err != nil {
		return err
	}

	var resolved []store.CompanyPartnerRow
	for _, pair := range unmatched {
		slug, partnerValue := pair[0], pair[1]
		matchSlug, method := extract.MatchCompanyPartner(markdownBySlug[slug], partnerValue, partners, p.matchThreshold)
		if matchSlug == "" {
			continue
		}
		resolved = append(resolved, store.CompanyPartnerRow{CompanySlug: slug, PartnerSlug: matchSlug, MatchMethod: method})
	}
	if len(resolved) == 0 {
		return nil
	}

	_, err = p.store.SaveCompanyPartners(resolved)
	return err
}

func (p Pipeline) isPartnersPage(url string) bool {
	if p.partnersPath == "" {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(url, "/"), strings.TrimRight(p.partnersPath, "/"))
}

// processPartnersPage parses the catalog's /people index into the partners
// roster. It never produces a companies row, so it advances pages.state
// directly instead of going through WriteRecords.
func (p Pipeline) processPartnersPage(pg store.FetchedPage) error {
	rows := extract.ParsePartnersPage(pg.Markdown)
	if _, err := p.store.SavePartners(rows); err != nil {
		return err
	}
	return p.store.MarkPageParsed(pg.URL)
}

// processCompanyPage runs the lex/cluster/extract pipeline for a company
// page, then attempts to resolve its Group Partner meta value against the
// partners roster fetched at the start of this batch.
func (p Pipeline) processCompanyPage(pg store.FetchedPage, partners []store.PartnerRow) error {
	blocks := parser.Lex(pg.Markdown)
	sections := parser.Cluster(blocks)
	records := extract.Extract(pg.Slug, pg.URL, sections)

	if err := p.store.WriteRecords(pg.URL, records); err != nil {
		return err
	}

	if records.Company == nil || records.Company.Partner == "" || len(partners) == 0 {
		return nil
	}

	slug, method := extract.MatchCompanyPartner(pg.Markdown, records.Company.Partner, partners, p.matchThreshold)
	if slug == "" {
		return nil
	}

	_, err := p.store.SaveCompanyPartners([]store.CompanyPartnerRow{
		{CompanySlug: records.Company.Slug, PartnerSlug: slug, MatchMethod: method},
	})
	return err
}

// Run scrapes then processes in one call, the mode the CLI's `run`
// subcommand drives for an end-to-end pass over n pages.
func (p Pipeline) Run(ctx context.Context, n int) (scraped, processed Result, err error) {
	scraped, err = p.Scrape(ctx, n)
	if err != nil {
		return scraped, Result{}, err
	}
	processed, err = p.Process(ctx, n)
	return scraped, processed, err
}
