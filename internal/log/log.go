package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	defaultLogLevel slog.LevelVar
	defaultLogger   = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: &defaultLogLevel,
	}))
)

func init() {
	defaultLogLevel.Set(slog.LevelInfo)
}

type contextKey struct{}

var loggerKey = contextKey{}

// Ctx returns the logger from the context. If no logger is found, it returns the default logger.
func Ctx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

// With returns a new context with the given logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func SetDefaultLogLevel(level slog.Level) {
	defaultLogLevel.Set(level)
}

// NewText returns a human readable logger for terminal output
func NewText(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Adapter exposes a slog.Logger through printf-style methods
type Adapter struct {
	L   *slog.Logger
	Ctx context.Context
}

// NewAdapter wraps the logger stored in ctx
func NewAdapter(ctx context.Context) *Adapter {
	return &Adapter{L: Ctx(ctx), Ctx: ctx}
}

func (a *Adapter) logf(level slog.Level, format string, args ...interface{}) {
	ctx := a.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if !a.L.Enabled(ctx, level) {
		return
	}
	a.L.Log(ctx, level, fmt.Sprintf(format, args...))
}

func (a *Adapter) Debugf(format string, args ...interface{}) { a.logf(slog.LevelDebug, format, args...) }
func (a *Adapter) Infof(format string, args ...interface{})  { a.logf(slog.LevelInfo, format, args...) }
func (a *Adapter) Warnf(format string, args ...interface{})  { a.logf(slog.LevelWarn, format, args...) }
func (a *Adapter) Errorf(format string, args ...interface{}) { a.logf(slog.LevelError, format, args...) }
