package fetch

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"

	"catalogscrape/internal/telemetry"
	"catalogscrape/lib/restyutil"
)

const (
	report_client_fetch = "fetch.client.fetch"
	// maxAttempts is the initial try plus three retries, backed off
	// 2s/4s/8s per the fixed schedule.
	maxAttempts = 4
	baseBackoff = 2 * time.Second
)

var imageMarkdownRe = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
var blankRunRe = regexp.MustCompile(`\n{3,}`)

// envelope is the fetch service's wire format: it always answers 200 at
// the transport level and carries the origin page's real outcome inside
// the JSON body.
type envelope struct {
	URL       string `json:"url"`
	Status    int    `json:"status"`
	Content   string `json:"content"`
	LatencyMs int64  `json:"latency_ms"`
}

// Client fetches a catalog page's markdown rendering with a fixed
// exponential backoff schedule, classifying every failure as transient or
// permanent so the caller knows whether to requeue or give up.
type Client struct {
	http   *resty.Client
	tel    telemetry.API
	policy retryPolicy
	apiKey string
}

// NewClient builds a fetch client instrumented the same way every other
// resty client in this codebase is, through restyutil.InstrumentClient:
// spans, debug logs and on-disk message dumps, all gated on output being
// non-nil (a nil output leaves the client uninstrumented). serviceBaseURL points at the
// markdown-rendering service; apiKey is sent as a bearer token on every
// request and is never logged.
func NewClient(tel telemetry.API, timeout time.Duration, serviceBaseURL, apiKey string, tracer trace.Tracer, output restyutil.InstrumentOutput) Client {
	http := resty.New().SetTimeout(timeout).SetBaseURL(serviceBaseURL)
	restyutil.InstrumentClient(http, tracer, output)
	return Client{http: http, tel: tel, policy: newRetryPolicy(), apiKey: apiKey}
}

// Result is one fetch's outcome, ready for the store to persist verbatim.
type Result struct {
	Markdown   string
	HTTPStatus int
	LatencyMs  int64
}

// Fetch retries up to three times on a transient failure, sleeping
// 2s/4s/8s (±10% jitter) between attempts, and strips inline image
// markdown before returning so the store never has to.
func (c Client) Fetch(ctx context.Context, pageURL string) (Result, error) {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, c.policy.backoff(attempt-1)); err != nil {
				return Result{}, err
			}
		}

		var env envelope
		res, err := c.http.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bearer "+c.apiKey).
			SetQueryParam("url", pageURL).
			SetResult(&env).
			Get("/fetch")

		if err != nil {
			lastErr = &TransientError{URL: pageURL, Err: err}
			c.tel.ReportWarning(report_client_fetch, pageURL, err.Error())
			if !c.policy.shouldRetry(err, attempt) {
				return Result{}, lastErr
			}
			continue
		}

		if res.StatusCode() >= 400 {
			lastErr = &PermanentError{URL: pageURL, Status: res.StatusCode()}
			c.tel.ReportWarning(report_client_fetch, pageURL, res.StatusCode())
			return Result{}, lastErr
		}

		if isTransientStatus(env.Status) {
			lastErr = &TransientError{URL: pageURL, Status: env.Status}
			c.tel.ReportWarning(report_client_fetch, pageURL, env.Status)
			continue
		}
		if env.Status >= 400 {
			return Result{}, &PermanentError{URL: pageURL, Status: env.Status}
		}

		return Result{
			Markdown:   stripImages(env.Content),
			HTTPStatus: env.Status,
			LatencyMs:  env.LatencyMs,
		}, nil
	}

	c.tel.ReportBroken(report_client_fetch, pageURL, fmt.Sprintf("exhausted %d attempts", maxAttempts))
	return Result{}, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func stripImages(markdown string) string {
	stripped := imageMarkdownRe.ReplaceAllString(markdown, "")
	stripped = blankRunRe.ReplaceAllString(stripped, "\n\n")
	return strings.TrimSpace(stripped)
}
