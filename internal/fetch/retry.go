package fetch

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"net"
	"time"
)

// retryPolicy is the fixed 2s/4s/8s schedule the fetcher's retry property
// is tested against, with jitter bounded to ±10% rather than the
// half-open interval a generic backoff policy would use.
type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
}

func newRetryPolicy() retryPolicy {
	return retryPolicy{maxAttempts: maxAttempts, baseDelay: baseBackoff}
}

func (p retryPolicy) shouldRetry(err error, attempt int) bool {
	if err == nil || attempt >= p.maxAttempts {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return true
}

// backoff returns baseDelay*2^attempt, jittered by up to ±10% of itself.
func (p retryPolicy) backoff(attempt int) time.Duration {
	delay := p.baseDelay * time.Duration(1<<uint(attempt))
	jitterBound := delay / 5 // 10% on either side of delay
	jitter := randomJitter(jitterBound) - jitterBound/2
	return delay + jitter
}

func randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(limit)))
	if err != nil {
		return limit / 2
	}
	return time.Duration(n.Int64())
}
