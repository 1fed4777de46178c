package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"edgeserver/config"
	deliverycontext "edgeserver/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// maxLoggedSQLLength caps logged statements; bulk inserts can be very long.
const maxLoggedSQLLength = 2048

// queryLogger is the GORM logger of the device store. Records go to the request-scoped
// logger when the query runs inside a request, so they carry its request_id.
type queryLogger struct {
	base          *slog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newQueryLogger(base *slog.Logger, cfg *config.Config) gormlogger.Interface {
	l := &queryLogger{
		base:          base,
		level:         gormlogger.Warn,
		slowThreshold: cfg.Persistence.SlowQueryThreshold,
	}
	if cfg.Env.Debug {
		l.level = gormlogger.Info
	}

	return l
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level

	return &next
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Info, slog.LevelInfo, msg, args)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Warn, slog.LevelWarn, msg, args)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Error, slog.LevelError, msg, args)
}

func (l *queryLogger) printf(ctx context.Context, threshold gormlogger.LogLevel, level slog.Level, msg string, args []any) {
	if l.level < threshold {
		return
	}

	l.loggerFor(ctx).LogAttrs(ctx, level, fmt.Sprintf(msg, args...))
}

// Trace reports failed queries at Error, slow ones at Warn and, in debug mode, every statement.
// A missing row is an expected outcome of device lookups and is not reported.
func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var (
		level slog.Level
		msg   string
	)
	switch {
	case failed && l.level >= gormlogger.Error:
		level, msg = slog.LevelError, "Device store query failed"
	case slow && l.level >= gormlogger.Warn:
		level, msg = slog.LevelWarn, "Device store slow query"
	case l.level >= gormlogger.Info:
		level, msg = slog.LevelInfo, "Device store query"
	default:
		return
	}

	sql, rows := fc()
	if len(sql) > maxLoggedSQLLength {
		sql = sql[:maxLoggedSQLLength] + "..."
	}

	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	if failed {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	l.loggerFor(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *queryLogger) loggerFor(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFromContext(ctx, l.base).With(slog.String("component", "gorm"))
}
