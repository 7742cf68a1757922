/*
Package logger owns the process-wide zap logger.

Init builds it once from config.LogConfig: the encoding is console in
development and JSON everywhere else unless the format is pinned, output goes
to stdout or to a lumberjack-rotated file, and the level can be changed at
runtime through UpdateLevel without rebuilding the logger.

Every exported helper tolerates an uninitialized package, so packages under
test can log without calling Init first.
*/
package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"shopcore/config"
)

var (
	log       *zap.Logger
	atomLevel zap.AtomicLevel
)

// Init builds the global logger. Call it once during bootstrap, before
// anything that logs.
func Init(cfg *config.LogConfig, env string) error {
	atomLevel = zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	sink, err := newSink(cfg)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format, env), sink, atomLevel)
	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return nil
}

// newEncoder picks the encoding. An explicit format wins; with no format set,
// development gets human-readable console output and everything else JSON.
func newEncoder(format, env string) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	switch {
	case format == "console":
		return zapcore.NewConsoleEncoder(encoderConfig)
	case format == "json":
		return zapcore.NewJSONEncoder(encoderConfig)
	case env == "dev" || env == "development":
		return zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return zapcore.NewJSONEncoder(encoderConfig)
	}
}

// newSink opens the log destination. File output is rotated by lumberjack
// with the sizes configured on LogConfig; anything else means stdout.
func newSink(cfg *config.LogConfig) (zapcore.WriteSyncer, error) {
	if cfg.Output != "file" {
		return zapcore.AddSync(os.Stdout), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}), nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Get returns the global logger, nil before Init.
func Get() *zap.Logger { return log }

// UpdateLevel changes the minimum level at runtime. Unknown names fall back
// to info, same as Init.
func UpdateLevel(level string) {
	atomLevel.SetLevel(parseLevel(level))
}

// Sync flushes buffered entries. Syncing a terminal stdout is unsupported on
// most platforms and fails with ENOTTY or EINVAL; those and EBADF from an
// already-closed descriptor are swallowed because there is nothing left to
// flush anyway.
func Sync() error {
	if log == nil {
		return nil
	}
	err := log.Sync()
	if err == nil ||
		errors.Is(err, syscall.ENOTTY) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EBADF) {
		return nil
	}
	return err
}

// With returns a child logger carrying the given fields.
func With(fields ...zap.Field) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log.With(fields...)
}

// WithRequestID returns a child logger tagged with the request id.
func WithRequestID(requestID string) *zap.Logger {
	return With(zap.String("request_id", requestID))
}

func Debug(msg string, fields ...zap.Field) {
	if log != nil {
		log.Debug(msg, fields...)
	}
}

func Info(msg string, fields ...zap.Field) {
	if log != nil {
		log.Info(msg, fields...)
	}
}

func Warn(msg string, fields ...zap.Field) {
	if log != nil {
		log.Warn(msg, fields...)
	}
}

func Error(msg string, fields ...zap.Field) {
	if log != nil {
		log.Error(msg, fields...)
	}
}

func Fatal(msg string, fields ...zap.Field) {
	if log != nil {
		log.Fatal(msg, fields...)
	}
}
