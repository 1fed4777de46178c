package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestPoolMonitor(samples ...sql.DBStats) (*poolMonitor, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	next := 0

	return &poolMonitor{
		logger: slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		stats: func() sql.DBStats {
			s := samples[next]
			next++

			return s
		},
	}, buf
}

func TestPoolMonitor_NoWaitsIsSilent(t *testing.T) {
	m, buf := newTestPoolMonitor(sql.DBStats{InUse: 3})

	m.sample(context.Background())

	assert.Empty(t, buf.String())
	assert.Equal(t, 3, m.prev.InUse)
}

func TestPoolMonitor_ReportsWaitsSincePreviousSample(t *testing.T) {
	m, buf := newTestPoolMonitor(
		sql.DBStats{WaitCount: 2, WaitDuration: 10 * time.Millisecond},
		sql.DBStats{WaitCount: 6, WaitDuration: 210 * time.Millisecond},
	)

	m.sample(context.Background())
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "Device store pool wait observed")

	buf.Reset()
	m.sample(context.Background())
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "waits=4")
	assert.Contains(t, buf.String(), "avgWait=50ms")
}
