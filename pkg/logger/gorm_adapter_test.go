package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"

	"shopcore/infrastructure/persistence"
)

func observedGormLogger(t *testing.T, level gormlogger.LogLevel, cfg *GormLoggerConfig) (*GormLogger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := NewGormLoggerWith(level, cfg)
	adapter.base = zap.New(core)
	return adapter, logs
}

func TestGormLoggerRespectsLevel(t *testing.T) {
	ctx := context.Background()

	adapter, logs := observedGormLogger(t, gormlogger.Warn, nil)
	adapter.Info(ctx, "connection pool ready")
	adapter.Warn(ctx, "retrying statement")
	adapter.Error(ctx, "statement failed")

	require.Len(t, logs.All(), 2)
	assert.Zero(t, logs.FilterMessage("connection pool ready").Len())
	assert.Equal(t, 1, logs.FilterMessage("retrying statement").Len())
	assert.Equal(t, 1, logs.FilterMessage("statement failed").Len())
}

func TestGormLoggerTraceLogsQueryFields(t *testing.T) {
	adapter, logs := observedGormLogger(t, gormlogger.Info, nil)

	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM carts WHERE session_id = ?", 1
	}, nil)

	entries := logs.FilterMessage("Query").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "SELECT * FROM carts WHERE session_id = ?", fields["sql"])
	assert.EqualValues(t, 1, fields["rows"])
}

func TestGormLoggerTraceSilent(t *testing.T) {
	adapter, logs := observedGormLogger(t, gormlogger.Silent, nil)

	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)

	assert.Zero(t, logs.Len())
}

func TestGormLoggerSlowQueryCarriesRequestID(t *testing.T) {
	adapter, logs := observedGormLogger(t, gormlogger.Warn, &GormLoggerConfig{
		SlowThreshold: time.Millisecond,
	})

	ctx := persistence.ContextWithRequestID(context.Background(), "req-123")
	begin := time.Now().Add(-time.Second)
	adapter.Trace(ctx, begin, func() (string, int64) {
		return "SELECT * FROM cart_items", 40
	}, nil)

	entries := logs.FilterMessage("Slow query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
}

func TestGormLoggerTraceError(t *testing.T) {
	adapter, logs := observedGormLogger(t, gormlogger.Error, nil)

	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO carts", 0
	}, assert.AnError)

	entries := logs.FilterMessage("Query failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestGormLoggerIgnoresRecordNotFound(t *testing.T) {
	adapter, logs := observedGormLogger(t, gormlogger.Error, &GormLoggerConfig{
		SlowThreshold:             200 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
	})

	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM carts WHERE id = ?", 0
	}, gormlogger.ErrRecordNotFound)

	assert.Zero(t, logs.Len())
}

func TestGormLoggerLogMode(t *testing.T) {
	adapter, logs := observedGormLogger(t, gormlogger.Warn, nil)

	verbose, ok := adapter.LogMode(gormlogger.Info).(*GormLogger)
	require.True(t, ok)

	verbose.Info(context.Background(), "now visible")
	adapter.Info(context.Background(), "still filtered")

	assert.Equal(t, 1, logs.FilterMessage("now visible").Len())
	assert.Zero(t, logs.FilterMessage("still filtered").Len())
}
