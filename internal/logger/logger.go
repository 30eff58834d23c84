package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Init installs the default logger for one service and returns it.
// Development writes text at debug level, everything else JSON at info.
// With a Sentry DSN, error records are also reported to Sentry.
func Init(service string, isDev bool, sentryDSN string) *slog.Logger {
	handler := consoleHandler(os.Stdout, isDev)

	if reporter := sentryHandler(service, isDev, sentryDSN); reporter != nil {
		handler = slogmulti.Fanout(handler, reporter)
	}

	log := slog.New(handler).With("service", service)
	slog.SetDefault(log)
	return log
}

func consoleHandler(w io.Writer, isDev bool) slog.Handler {
	if isDev {
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}

// sentryHandler returns nil when Sentry is off or fails to start.
func sentryHandler(service string, isDev bool, dsn string) slog.Handler {
	if dsn == "" {
		return nil
	}

	environment := "production"
	if isDev {
		environment = "development"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		ServerName:       service,
		Environment:      environment,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Warn("sentry disabled", "error", err)
		return nil
	}

	return slogsentry.Option{Level: slog.LevelError}.NewSentryHandler()
}

// Flush waits briefly for queued Sentry events. Safe to call when Sentry is off.
func Flush() {
	sentry.Flush(2 * time.Second)
}
