package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observeGlobal(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestDefaultGormLoggerConfigEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_LOG_LEVEL", "info")
	t.Setenv("DATABASE_SLOW_QUERY_MS", "50")

	cfg := DefaultGormLoggerConfig()
	require.Equal(t, gormlogger.Info, cfg.Level)
	require.Equal(t, 50*time.Millisecond, cfg.SlowThreshold)
	require.True(t, cfg.IgnoreRecordNotFound)
}

func TestGormLoggerTraceRoutesByOutcome(t *testing.T) {
	logs := observeGlobal(t)
	l := NewGormLogger(GormLoggerConfig{
		Level:                gormlogger.Warn,
		SlowThreshold:        time.Second,
		IgnoreRecordNotFound: true,
	})
	fc := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now(), fc, errors.New("disk full"))
	require.Len(t, logs.FilterMessage("db.query_failed").All(), 1)

	l.Trace(context.Background(), time.Now().Add(-2*time.Second), fc, nil)
	require.Len(t, logs.FilterMessage("db.slow_query").All(), 1)

	// Fast, error-free statements stay quiet below Info.
	l.Trace(context.Background(), time.Now(), fc, nil)
	require.Empty(t, logs.FilterMessage("db.query").All())
}

func TestGormLoggerIgnoresRecordNotFound(t *testing.T) {
	logs := observeGlobal(t)
	l := NewGormLogger(GormLoggerConfig{
		Level:                gormlogger.Error,
		SlowThreshold:        time.Second,
		IgnoreRecordNotFound: true,
	})
	fc := func() (string, int64) { return "SELECT 1", 0 }

	l.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)
	require.Empty(t, logs.All())
}
