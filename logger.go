package unwrap

import (
	"log/slog"
	"sync/atomic"
)

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(discardLogger())
}

// SetLogger configures the logger used by unwrap and its sub-packages.
// By default unwrap produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent default.
//
// Log levels used by unwrap:
//   - [slog.LevelDebug]: per-phase statistics (charts, chains, solver iterations)
//   - [slog.LevelWarn]: skipped seam ids, ambiguous seam chains, solves that hit
//     the iteration cap, non-finite UVs
//
// Example:
//
//	unwrap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by unwrap.
// Sub-packages such as meshio and seamstore call this to share the same
// configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
