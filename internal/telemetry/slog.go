package telemetry

import (
	"fmt"
	"log/slog"
	"testing"
)

// SlogAPI implements API using the log/slog package.
type SlogAPI struct{}

// NewSlogAPI constructs the default telemetry backend, reporting every
// event through the process-wide slog logger.
func NewSlogAPI() SlogAPI {
	return SlogAPI{}
}

func (SlogAPI) formatParams(out *[]any, params []any) {
	for i, p := range params {
		*out = append(
			*out,
			fmt.Sprintf("params.%d", i),
			p,
		)
	}
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	slog.Error("broken component", remainingPairs...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	slog.Warn("warning", remainingPairs...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	slog.Info("count", "id", id, "n", count)
}

// SetupForTesting redirects the default slog logger to t.Log for the
// duration of the test and returns a cleanup that restores it.
func SetupForTesting(t testing.TB, scope string) func() {
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(testWriter{t}, nil)).With("scope", scope))
	return func() { slog.SetDefault(prev) }
}

type testWriter struct{ t testing.TB }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
