package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogLevel represents logging verbosity levels.
type LogLevel int

// Log level constants.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelDebug
)

// Log record encodings.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// slogOff sits above every level slog emits, so nothing passes.
const slogOff = slog.LevelError + 64

//nolint:gochecknoglobals // Static lookup table
var levelNames = map[string]LogLevel{
	"off":   LogLevelOff,
	"none":  LogLevelOff,
	"error": LogLevelError,
	"debug": LogLevelDebug,
}

// ParseLogLevel parses a log level string. Unknown values map to error.
func ParseLogLevel(s string) LogLevel {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l
	}
	return LogLevelError
}

func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "off"
	case LogLevelDebug:
		return "debug"
	default:
		return "error"
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelOff:
		return slogOff
	case LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelError
	}
}

// Logger writes slog records to an append-only file. Without a file it
// discards everything.
type Logger struct {
	mu    sync.Mutex
	level LogLevel
	gate  slog.LevelVar
	file  *os.File
	log   *slog.Logger
}

// LoggerOption adjusts a Logger built by NewLogger.
type LoggerOption func(*loggerOptions)

type loggerOptions struct {
	json bool
}

// WithJSON encodes records as JSON objects instead of key=value text.
func WithJSON() LoggerOption {
	return func(o *loggerOptions) { o.json = true }
}

// NewLogger opens path for appending. Nothing is created when the level is
// off or the path is empty.
func NewLogger(level LogLevel, path string, opts ...LoggerOption) (*Logger, error) {
	var o loggerOptions
	for _, opt := range opts {
		opt(&o)
	}

	l := NullLogger()
	l.SetLevel(level)
	if level == LogLevelOff || path == "" {
		return l, nil
	}

	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	// #nosec G304 -- log file path is from validated config
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	l.file = f
	l.log = slog.New(newHandler(f, &l.gate, o.json))
	return l, nil
}

func newHandler(w io.Writer, level slog.Leveler, json bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Open creates the logger described by cfg, raising the level to debug when
// verbose is set. A file that cannot be opened yields a NullLogger.
func Open(cfg LoggingConfig, verbose bool) *Logger {
	level := ParseLogLevel(cfg.Level)
	if verbose {
		level = LogLevelDebug
	}
	var opts []LoggerOption
	if strings.EqualFold(cfg.Format, LogFormatJSON) {
		opts = append(opts, WithJSON())
	}
	l, err := NewLogger(level, cfg.File, opts...)
	if err != nil {
		return NullLogger()
	}
	return l
}

// NullLogger returns a logger that discards all output.
func NullLogger() *Logger {
	l := &Logger{}
	l.SetLevel(LogLevelOff)
	l.log = slog.New(slog.DiscardHandler)
	return l
}

// Close closes the log file. Later records are discarded.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.log = slog.New(slog.DiscardHandler)
	return err
}

// SetLevel changes the log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.gate.Set(level.slogLevel())
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Debug logs a formatted debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.emit(slog.LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Error logs a formatted error message.
func (l *Logger) Error(format string, args ...any) {
	l.emit(slog.LevelError, fmt.Sprintf(format, args...), nil)
}

// DebugAttrs logs a debug record with attributes.
func (l *Logger) DebugAttrs(msg string, attrs ...slog.Attr) {
	l.emit(slog.LevelDebug, msg, attrs)
}

// ErrorAttrs logs an error record with attributes.
func (l *Logger) ErrorAttrs(msg string, attrs ...slog.Attr) {
	l.emit(slog.LevelError, msg, attrs)
}

func (l *Logger) emit(level slog.Level, msg string, attrs []slog.Attr) {
	l.mu.Lock()
	log := l.log
	l.mu.Unlock()
	log.LogAttrs(context.Background(), level, msg, attrs...)
}
