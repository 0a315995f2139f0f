package logger

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// GormLoggerConfig configures the GORM zap adapter.
type GormLoggerConfig struct {
	Level                gormlogger.LogLevel
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
}

// DefaultGormLoggerConfig returns the posting-pipeline defaults, with
// DATABASE_LOG_LEVEL and DATABASE_SLOW_QUERY_MS env overrides. Record-not-found
// is ignored: lookups that miss are ordinary domain flow here (hotel scoping,
// idempotent replays), not query failures.
func DefaultGormLoggerConfig() GormLoggerConfig {
	cfg := GormLoggerConfig{
		Level:                gormlogger.Warn,
		SlowThreshold:        200 * time.Millisecond,
		IgnoreRecordNotFound: true,
	}

	switch strings.ToLower(strings.TrimSpace(os.Getenv("DATABASE_LOG_LEVEL"))) {
	case "silent":
		cfg.Level = gormlogger.Silent
	case "error":
		cfg.Level = gormlogger.Error
	case "info":
		cfg.Level = gormlogger.Info
	}

	if raw := strings.TrimSpace(os.Getenv("DATABASE_SLOW_QUERY_MS")); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			cfg.SlowThreshold = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg
}

// GormLogger adapts GORM's logging callbacks onto the service's zap logger,
// carrying the request/trace correlation fields from the query context.
type GormLogger struct {
	cfg GormLoggerConfig
}

// NewGormLogger builds a GormLogger.
func NewGormLogger(cfg GormLoggerConfig) *GormLogger {
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = 200 * time.Millisecond
	}
	return &GormLogger{cfg: cfg}
}

// LogMode returns a copy honoring the session-scoped level GORM requests.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.cfg.Level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.message(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

// Trace logs completed statements: errors at error level, statements past the
// slow threshold at warn, and everything else at debug when level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	notFound := errors.Is(err, gormlogger.ErrRecordNotFound)

	switch {
	case err != nil && !(notFound && l.cfg.IgnoreRecordNotFound) && l.cfg.Level >= gormlogger.Error:
		l.statement(ctx, zapcore.ErrorLevel, "db.query_failed", fc, elapsed, err)
	case elapsed >= l.cfg.SlowThreshold && l.cfg.Level >= gormlogger.Warn:
		l.statement(ctx, zapcore.WarnLevel, "db.slow_query", fc, elapsed, nil)
	case l.cfg.Level >= gormlogger.Info:
		l.statement(ctx, zapcore.DebugLevel, "db.query", fc, elapsed, nil)
	}
}

// ParamsFilter drops bound values so guest names and rates never reach the log.
func (l *GormLogger) ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{}) {
	_ = ctx
	_ = params
	return sql, nil
}

func (l *GormLogger) message(ctx context.Context, min gormlogger.LogLevel, level zapcore.Level, msg string, data []interface{}) {
	if l.cfg.Level < min {
		return
	}
	log := l.scoped(ctx)
	if ce := log.Check(level, msg); ce != nil {
		if len(data) > 0 {
			ce.Write(zap.Any("detail", data))
		} else {
			ce.Write()
		}
	}
}

func (l *GormLogger) statement(ctx context.Context, level zapcore.Level, msg string, fc func() (string, int64), elapsed time.Duration, err error) {
	log := l.scoped(ctx)
	ce := log.Check(level, msg)
	if ce == nil {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", strings.TrimSpace(sql)),
		zap.Duration("elapsed", elapsed),
		zap.Duration("slow_threshold", l.cfg.SlowThreshold),
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows", rows))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	ce.Write(fields...)
}

// scoped returns the process logger enriched with the request, hotel, and
// trace fields carried on the query context.
func (l *GormLogger) scoped(ctx context.Context) *zap.Logger {
	return WithContext(ctx, zap.L().Named("db"))
}

var _ gormlogger.Interface = (*GormLogger)(nil)
