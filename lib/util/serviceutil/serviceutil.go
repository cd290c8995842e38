package serviceutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext returns a context that lives until Ctrl+C or SIGTERM is received.
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	return ctx
}

func Fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

// FatalCode is Fatal with a caller-chosen exit code, used for conditions
// that scripts need to distinguish from a generic failure, e.g. a missing
// required secret.
func FatalCode(message string, err error, code int) {
	slog.Error(message, "err", err.Error())
	os.Exit(code)
}
