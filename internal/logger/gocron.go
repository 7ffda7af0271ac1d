package logger

import (
	"log/slog"

	"github.com/go-co-op/gocron/v2"
)

// gocronLogger forwards gocron's internal logging to slog.
type gocronLogger struct {
	log *slog.Logger
}

// NewGocronLogger returns a gocron.Logger writing to log. gocron logs job
// lifecycle events at debug level and job errors at error level.
//
//nolint:ireturn // Interface return is required by gocron's API contract
func NewGocronLogger(log *slog.Logger) gocron.Logger {
	if log == nil {
		log = slog.Default()
	}
	return &gocronLogger{log: log.With("component", "gocron")}
}

func (l *gocronLogger) Debug(msg string, args ...any) { l.log.Debug(msg, normalizeArgs(args)...) }
func (l *gocronLogger) Info(msg string, args ...any)  { l.log.Info(msg, normalizeArgs(args)...) }
func (l *gocronLogger) Warn(msg string, args ...any)  { l.log.Warn(msg, normalizeArgs(args)...) }
func (l *gocronLogger) Error(msg string, args ...any) { l.log.Error(msg, normalizeArgs(args)...) }

// normalizeArgs keeps key/value pairs intact and tags a dangling trailing
// value so slog does not report it as !BADKEY.
func normalizeArgs(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)
	return append(out, "extra", args[len(args)-1])
}
