package monument

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so callers never
// format the message.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var active atomic.Pointer[slog.Logger]

func init() {
	active.Store(slog.New(discard{}))
}

// SetLogger installs l as the logger shared by every monument package.
// Nothing is logged until SetLogger is called; passing nil silences
// output again. It may be called while pipelines are running.
//
// Levels:
//   - [slog.LevelDebug]: per-stage counts (records, glyphs, triangles, buffer bytes)
//   - [slog.LevelInfo]: a pipeline became ready
//   - [slog.LevelError]: a pipeline run failed
//
//	monument.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discard{})
	}
	active.Store(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return active.Load()
}
