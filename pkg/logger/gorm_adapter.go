package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"shopcore/infrastructure/persistence"
)

// GormLoggerConfig holds the trace thresholds for the gorm adapter.
type GormLoggerConfig struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

func DefaultGormLoggerConfig() *GormLoggerConfig {
	return &GormLoggerConfig{SlowThreshold: 200 * time.Millisecond}
}

// GormLogger adapts the global zap logger to gorm's logger.Interface,
// tagging every entry with the request id carried in the query context.
type GormLogger struct {
	level gormlogger.LogLevel
	base  *zap.Logger
	cfg   *GormLoggerConfig
}

var _ gormlogger.Interface = (*GormLogger)(nil)

func NewGormLogger(level gormlogger.LogLevel) *GormLogger {
	return NewGormLoggerWith(level, DefaultGormLoggerConfig())
}

func NewGormLoggerWith(level gormlogger.LogLevel, cfg *GormLoggerConfig) *GormLogger {
	if cfg == nil {
		cfg = DefaultGormLoggerConfig()
	}
	base := log
	if base == nil {
		base = zap.NewNop()
	}
	return &GormLogger{level: level, base: base, cfg: cfg}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &GormLogger{level: level, base: l.base, cfg: l.cfg}
}

func (l *GormLogger) forContext(ctx context.Context) *zap.Logger {
	if requestID := persistence.RequestIDFromContext(ctx); requestID != "" {
		return l.base.With(zap.String("request_id", requestID))
	}
	return l.base
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.forContext(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.forContext(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.forContext(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

// Trace logs one executed statement: failures at error level, statements
// past the slow threshold at warn, everything else at info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	entry := l.forContext(ctx)
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}

	switch {
	case err != nil && l.level >= gormlogger.Error:
		if l.cfg.IgnoreRecordNotFoundError && errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		entry.Error("Query failed", append(fields, zap.Error(err))...)
	case l.cfg.SlowThreshold > 0 && elapsed >= l.cfg.SlowThreshold && l.level >= gormlogger.Warn:
		entry.Warn("Slow query", fields...)
	case l.level >= gormlogger.Info:
		entry.Info("Query", fields...)
	}
}
