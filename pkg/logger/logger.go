// Package logger builds the process logger of the bot: JSON records on
// stdout, mirrored to Sentry when a DSN is configured.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// flushTimeout bounds how long Flush waits for buffered Sentry events.
const flushTimeout = 2 * time.Second

// Config selects where records go.
type Config struct {
	// SentryDSN enables Sentry when set. Warnings are kept as Sentry logs,
	// errors also open issues.
	SentryDSN         string
	SentryEnvironment string
	// Level is the minimum level written to Output. Zero means Info.
	Level slog.Level
	// Output defaults to os.Stdout.
	Output io.Writer
}

// New returns the logger and a flush func to call before the process exits.
// Without a DSN, or when Sentry fails to start, flush is a no-op.
func New(cfg Config) (*slog.Logger, func()) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	stdout := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: cfg.Level})
	noop := func() {}

	if cfg.SentryDSN == "" {
		return slog.New(stdout), noop
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	})
	if err != nil {
		log := slog.New(stdout)
		log.Error("sentry disabled", slog.Any("error", err))
		return log, noop
	}

	mirror := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(newMultiHandler(stdout, mirror)), Flush
}

// Flush waits for buffered Sentry events to be sent.
func Flush() {
	sentry.Flush(flushTimeout)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
