// Package diag provides structured diagnostics and progress reporting for
// a single conversion run. Diagnostic lines correspond to the
// specification's recovered-error taxonomy (DegradedPage, ImageUnreadable,
// TableRejected, AnnotationFailure); progress events correspond to its
// coarse 0/20/per-page/100 async progress model.
package diag

import (
	"go.uber.org/zap"
)

// Sink receives progress percentages (0-100) during an asynchronous
// conversion. Implementations must return quickly; the pipeline does not
// wait for slow consumers.
type Sink interface {
	Progress(percent int)
}

// NoopSink discards progress events.
type NoopSink struct{}

// Progress implements Sink.
func (NoopSink) Progress(int) {}

// FuncSink adapts a plain function to the Sink interface.
type FuncSink func(percent int)

// Progress implements Sink.
func (f FuncSink) Progress(percent int) { f(percent) }

// Logger wraps a zap.Logger scoped to one conversion, recording
// diagnostic lines for recovered errors without aborting the pipeline.
type Logger struct {
	z *zap.Logger
}

// New builds a Logger. When verbose is false the logger only emits
// warnings and above, matching the CLI's default quiet behavior; pass
// true for --diagnostics.
func New(verbose bool) (*Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapWarnLevel())
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// Noop returns a Logger that discards everything, for tests and embedders
// who do not want diagnostics.
func Noop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// Sync flushes buffered log entries. Callers should defer Sync() after
// New().
func (l *Logger) Sync() {
	if l != nil && l.z != nil {
		_ = l.z.Sync()
	}
}

// DegradedPage logs a page with no extractable text.
func (l *Logger) DegradedPage(page int) {
	l.z.Warn("page has no extractable text", zap.Int("page", page))
}

// ImageUnreadable logs an image decode failure.
func (l *Logger) ImageUnreadable(page int, err error) {
	l.z.Warn("image could not be decoded, omitting", zap.Int("page", page), zap.Error(err))
}

// TableRejected logs a dropped table candidate.
func (l *Logger) TableRejected(page int, reason string, confidence float64) {
	l.z.Info("table candidate rejected",
		zap.Int("page", page), zap.String("reason", reason), zap.Float64("confidence", confidence))
}

// AnnotationFailure logs a malformed annotation dictionary.
func (l *Logger) AnnotationFailure(page int, err error) {
	l.z.Warn("annotation dictionary malformed, skipping hyperlinks", zap.Int("page", page), zap.Error(err))
}

// Progress logs a coarse progress milestone.
func (l *Logger) Progress(percent int) {
	l.z.Debug("progress", zap.Int("percent", percent))
}
