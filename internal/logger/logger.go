package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes structured JSON logs tagged with the service name and host
type Logger struct {
	service  string
	hostname string
	zl       *zap.Logger
}

// Options controls where and at which level logs are written
type Options struct {
	Level string
	// Path redirects output to a file; empty means stdout.
	Path string
}

// New creates a debug-level logger writing to stdout
func New(service string) *Logger {
	l, _ := NewWithOptions(service, Options{Level: "debug"})
	return l
}

// NewWithOptions creates a logger honoring the given level and output path.
// When the file cannot be opened the logger falls back to stdout and
// returns the error alongside it.
func NewWithOptions(service string, opts Options) (*Logger, error) {
	hostname, _ := os.Hostname()

	var (
		sink    zapcore.WriteSyncer = zapcore.AddSync(os.Stdout)
		openErr error
	)
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			openErr = fmt.Errorf("create log dir: %w", err)
		} else if f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err != nil {
			openErr = fmt.Errorf("open log file: %w", err)
		} else {
			sink = zapcore.AddSync(f)
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encCfg.MessageKey = "message"

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, parseLevel(opts.Level))
	zl := zap.New(core).With(
		zap.String("service", service),
		zap.String("hostname", hostname),
	)

	return &Logger{service: service, hostname: hostname, zl: zl}, openErr
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{zl: zap.NewNop()}
}

// Info logs an informational event
func (l *Logger) Info(action, message, requestID string, fields map[string]interface{}) {
	l.zl.Info(message, l.attrs(action, requestID, fields)...)
}

// Debug logs a debug event
func (l *Logger) Debug(action, message, requestID string, fields map[string]interface{}) {
	l.zl.Debug(message, l.attrs(action, requestID, fields)...)
}

// Error logs an error event. err may be nil.
func (l *Logger) Error(action, message, requestID string, err error, fields map[string]interface{}) {
	attrs := l.attrs(action, requestID, fields)
	if err != nil {
		attrs = append(attrs, zap.Dict("error",
			zap.String("msg", err.Error()),
			zap.StackSkip("stack", 1),
		))
	}
	l.zl.Error(message, attrs...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func (l *Logger) attrs(action, requestID string, fields map[string]interface{}) []zap.Field {
	attrs := make([]zap.Field, 0, len(fields)+2)
	attrs = append(attrs, zap.String("action", action))
	if requestID != "" {
		attrs = append(attrs, zap.String("request_id", requestID))
	}
	for k, v := range fields {
		attrs = append(attrs, zap.Any(k, v))
	}
	return attrs
}

// GenerateRequestID returns a fresh request identifier
func GenerateRequestID() string {
	return uuid.NewString()
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.DebugLevel
	}
}
