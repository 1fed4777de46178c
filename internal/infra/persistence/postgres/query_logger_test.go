package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"edgeserver/config"
	deliverycontext "edgeserver/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newBufferedQueryLogger(debug bool) (gormlogger.Interface, *slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{}
	cfg.Env.Debug = debug
	cfg.Persistence.SlowQueryThreshold = 200 * time.Millisecond

	return newQueryLogger(base, cfg), base, buf
}

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestQueryLogger_TraceLogsErrors(t *testing.T) {
	l, _, buf := newBufferedQueryLogger(false)

	l.Trace(context.Background(), time.Now(), sqlFn(`SELECT * FROM "iot_devices"`), errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "Device store query failed")
	assert.Contains(t, out, `"component":"gorm"`)
	assert.Contains(t, out, "boom")
}

func TestQueryLogger_IgnoresRecordNotFound(t *testing.T) {
	l, _, buf := newBufferedQueryLogger(false)

	l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestQueryLogger_SlowQuery(t *testing.T) {
	l, _, buf := newBufferedQueryLogger(false)

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT 1"), nil)

	assert.Contains(t, buf.String(), "Device store slow query")
}

func TestQueryLogger_StatementsOnlyInDebug(t *testing.T) {
	quiet, _, quietBuf := newBufferedQueryLogger(false)
	quiet.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), nil)
	assert.Empty(t, quietBuf.String())

	verbose, _, verboseBuf := newBufferedQueryLogger(true)
	verbose.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), nil)
	assert.Contains(t, verboseBuf.String(), "Device store query")
}

func TestQueryLogger_SilentModeLogsNothing(t *testing.T) {
	l, _, buf := newBufferedQueryLogger(true)

	l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), errors.New("boom"))

	assert.Empty(t, buf.String())
}

func TestQueryLogger_UsesRequestScopedLogger(t *testing.T) {
	l, base, buf := newBufferedQueryLogger(false)
	ctx, _ := deliverycontext.WithScope(context.Background(), "req-42", base)

	l.Trace(ctx, time.Now(), sqlFn("SELECT 1"), errors.New("boom"))

	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}

func TestQueryLogger_TruncatesLongStatements(t *testing.T) {
	l, _, buf := newBufferedQueryLogger(true)

	l.Trace(context.Background(), time.Now(), sqlFn(strings.Repeat("x", maxLoggedSQLLength*2)), nil)

	assert.Less(t, buf.Len(), maxLoggedSQLLength+512)
	assert.Contains(t, buf.String(), "...")
}
