// Package logger is the structured logging facade used across nnx1.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// caller -> log -> Info/Warn/... -> user code
const callerSkipFrames = 3

// Logger is the logging interface handed to services and handlers.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Fatal(ctx context.Context, msg string, fields ...Field)

	Named(name string) Logger
	With(fields ...Field) Logger
}

// Field is a key-value pair attached to a log record.
type Field struct {
	Key   string
	Value any
}

func String(key, val string) Field                 { return Field{Key: key, Value: val} }
func Int(key string, val int) Field                { return Field{Key: key, Value: val} }
func Int64(key string, val int64) Field            { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field        { return Field{Key: key, Value: val} }
func Bool(key string, val bool) Field              { return Field{Key: key, Value: val} }
func Duration(key string, val time.Duration) Field { return Field{Key: key, Value: val} }
func Any(key string, val any) Field                { return Field{Key: key, Value: val} }
func Error(err error) Field                        { return Field{Key: "error", Value: err} }

type slogLogger struct {
	base *slog.Logger
	exit func(int)
}

func (l *slogLogger) Named(name string) Logger {
	return &slogLogger{base: l.base.WithGroup(name), exit: l.exit}
}

func (l *slogLogger) With(fields ...Field) Logger {
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = slog.Any(f.Key, f.Value)
	}
	return &slogLogger{base: l.base.With(args...), exit: l.exit}
}

func (l *slogLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields)
}

func (l *slogLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelWarn, msg, fields)
}

func (l *slogLogger) Fatal(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields)
	l.exit(1)
}

func (l *slogLogger) log(ctx context.Context, level slog.Level, msg string, fields []Field) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.base.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(fields)+1)
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	attrs = append(attrs, slog.String("source", getCaller()))
	l.base.LogAttrs(ctx, level, msg, attrs...)
}

// Options controls the global logger.
type Options struct {
	Level  string    // debug, info, warn, error
	Format string    // text or json
	Output io.Writer // defaults to stdout
}

var (
	mu       sync.RWMutex
	global   Logger
	levelVar slog.LevelVar
)

// Init installs the global logger. Calling it again replaces the handler.
func Init(opts ...Options) error {
	o := Options{Level: "info", Format: "text"}
	if len(opts) > 0 {
		o = opts[0]
	}
	if err := SetLevelString(o.Level); err != nil {
		return err
	}
	l, err := New(o.Output, o.Format, &levelVar)
	if err != nil {
		return err
	}
	mu.Lock()
	global = l
	mu.Unlock()
	return nil
}

// New builds a standalone logger writing to w.
func New(w io.Writer, format string, level slog.Leveler) (Logger, error) {
	if w == nil {
		w = os.Stdout
	}
	ho := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		h = slog.NewTextHandler(w, ho)
	case "json":
		h = slog.NewJSONHandler(w, ho)
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}
	return &slogLogger{base: slog.New(h), exit: os.Exit}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	l, _ := New(io.Discard, "text", slog.LevelError+1)
	return l
}

func getCaller() string {
	_, file, line, ok := runtime.Caller(callerSkipFrames)
	if !ok {
		return "unknown:0"
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	rel, err := filepath.Rel(cwd, file)
	if err != nil {
		return fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	return fmt.Sprintf("%s:%d", rel, line)
}

// Get returns the global logger. Init must have been called.
func Get() Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		panic("logger not initialized: call logger.Init first")
	}
	return global
}

// Named returns a child of the global logger.
func Named(name string) Logger {
	return Get().Named(name)
}

// Sync is a no-op kept for call sites that flush on shutdown.
func Sync() error {
	return nil
}

// SetLevel changes the level of the global handler.
func SetLevel(level slog.Level) { levelVar.Set(level) }

// SetLevelString parses debug, info, warn/warning or error.
func SetLevelString(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		SetLevel(slog.LevelDebug)
	case "", "info":
		SetLevel(slog.LevelInfo)
	case "warn", "warning":
		SetLevel(slog.LevelWarn)
	case "error":
		SetLevel(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	return nil
}
