package app

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLogLevel parses a level name. Unknown names mean info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum level written.
	Level LogLevel
	// Output defaults to os.Stderr.
	Output io.Writer
	// Prefix names the root logger.
	Prefix string
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "softtab",
	}
}

// Logger is the application's leveled logger. Messages are printf-style;
// fields attach structured context.
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewLogger creates a console logger.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(cfg.Output),
		cfg.Level.zapLevel(),
	)
	base := zap.New(core)
	if cfg.Prefix != "" {
		base = base.Named(cfg.Prefix)
	}
	return wrap(base)
}

// NewLoggerFromZap wraps an existing zap logger.
func NewLoggerFromZap(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return wrap(l)
}

func wrap(l *zap.Logger) *Logger {
	return &Logger{base: l, sugar: l.Sugar()}
}

// NullLogger discards all output.
var NullLogger = wrap(zap.NewNop())

// WithField returns a logger with key=value attached.
func (l *Logger) WithField(key string, value any) *Logger {
	return wrap(l.base.With(zap.Any(key, value)))
}

// WithFields returns a logger with all fields attached.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return wrap(l.base.With(zf...))
}

// WithComponent returns a logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

func (l *Logger) Debug(msg string, args ...any) { l.sugar.Debugf(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.sugar.Infof(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.sugar.Warnf(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.sugar.Errorf(msg, args...) }

// Zap returns the underlying logger for components that take one.
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

// Sync flushes buffered output.
func (l *Logger) Sync() {
	_ = l.base.Sync()
}
