package touchpoint

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// NewDebugLogger returns a colorized debug-level logger writing to w.
func NewDebugLogger(w io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.StampMilli,
		NoColor:    w != os.Stderr,
	}))
}

// SetLogger replaces the logger used for warnings and, in debug mode,
// per-event tracing. A nil logger discards everything.
func (in *Input) SetLogger(l *slog.Logger) {
	in.customLog = l != nil
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	in.log = l
}

// Logger returns the current logger.
func (in *Input) Logger() *slog.Logger {
	return in.log
}

// SetDebugMode enables or disables per-event tracing. Enabling it without a
// logger set via SetLogger installs a debug logger on stderr.
func (in *Input) SetDebugMode(enabled bool) {
	in.debug = enabled
	if enabled && !in.customLog {
		in.log = NewDebugLogger(os.Stderr)
	}
}

// trace logs a debug record for p when debug mode is on.
func (in *Input) trace(msg string, p *Pointer, args ...any) {
	if !in.debug {
		return
	}
	attrs := append([]any{"pointer", p.ID, "x", p.X, "y", p.Y}, args...)
	in.log.Debug(msg, attrs...)
}
