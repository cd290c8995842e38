package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShouldRetryStopsAtMaxAttempts(t *testing.T) {
	p := newRetryPolicy()
	require.True(t, p.shouldRetry(errors.New("boom"), 0))
	require.False(t, p.shouldRetry(errors.New("boom"), p.maxAttempts))
}

func TestShouldRetryNeverRetriesContextCancellation(t *testing.T) {
	p := newRetryPolicy()
	require.False(t, p.shouldRetry(context.Canceled, 0))
	require.False(t, p.shouldRetry(context.DeadlineExceeded, 0))
}

func TestShouldRetryFalseForNilError(t *testing.T) {
	p := newRetryPolicy()
	require.False(t, p.shouldRetry(nil, 0))
}

func TestBackoffFollowsFixedScheduleWithinJitterBound(t *testing.T) {
	p := newRetryPolicy()

	cases := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 2 * time.Second},
		{1, 4 * time.Second},
		{2, 8 * time.Second},
	}
	for _, c := range cases {
		d := p.backoff(c.attempt)
		low := c.expected - c.expected/10
		high := c.expected + c.expected/10
		require.GreaterOrEqual(t, d, low)
		require.LessOrEqual(t, d, high)
	}
}

func TestIsTransientStatusClassifiesRetryableCodes(t *testing.T) {
	for _, s := range []int{408, 425, 429, 500, 502, 503, 504} {
		require.True(t, isTransientStatus(s), "status %d should be transient", s)
	}
	for _, s := range []int{200, 301, 400, 401, 404, 410} {
		require.False(t, isTransientStatus(s), "status %d should not be transient", s)
	}
}
