package algoviz

import (
	"log/slog"

	"github.com/gogpu/algoviz/internal/logging"
)

// SetLogger configures the logger for algoviz and all its sub-packages.
// By default, algoviz produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by algoviz:
//   - [slog.LevelDebug]: request traces (request IDs, status, sizes, timing)
//   - [slog.LevelInfo]: lifecycle events (dataset loaded, run committed)
//   - [slog.LevelWarn]: non-fatal issues (superseded runs, stream reconnects)
//
// Example:
//
//	algoviz.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by algoviz. It never returns nil.
func Logger() *slog.Logger {
	return logging.Logger()
}
