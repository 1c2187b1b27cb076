package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func statement(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, FromContext(ctx), "req-3")
	ctx, _ = WithUserID(ctx, FromContext(ctx), "landlord-3")

	t.Run("error carries request and user", func(t *testing.T) {
		base, logs := observed()
		l := NewGormLogger(base, gormlogger.Warn)
		l.Trace(ctx, time.Now(), statement(`UPDATE "property_units" SET "is_occupied"=true`, 0), errors.New("deadlock detected"))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "gorm", entry.LoggerName)
		fields := entry.ContextMap()
		assert.Equal(t, "req-3", fields["request_id"])
		assert.Equal(t, "landlord-3", fields["user_id"])
		assert.Equal(t, "deadlock detected", fields["error"])
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		base, logs := observed()
		l := NewGormLogger(base, gormlogger.Warn)
		l.Trace(ctx, time.Now(), statement(`SELECT * FROM "tenants"`, 0), gormlogger.ErrRecordNotFound)
		assert.Zero(t, logs.Len())
	})

	t.Run("slow query", func(t *testing.T) {
		base, logs := observed()
		l := NewGormLogger(base, gormlogger.Warn, WithSlowThreshold(10*time.Millisecond))
		l.Trace(ctx, time.Now().Add(-time.Second), statement(`SELECT * FROM "properties"`, 3), nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "Slow SQL", logs.All()[0].Message)
		assert.Equal(t, int64(3), logs.All()[0].ContextMap()["rows"])
	})

	t.Run("fast query only at info", func(t *testing.T) {
		base, logs := observed()
		NewGormLogger(base, gormlogger.Warn).Trace(ctx, time.Now(), statement("SELECT 1", 1), nil)
		assert.Zero(t, logs.Len())

		NewGormLogger(base, gormlogger.Info).Trace(ctx, time.Now(), statement("SELECT 1", 1), nil)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
	})

	t.Run("silent via LogMode", func(t *testing.T) {
		base, logs := observed()
		l := NewGormLogger(base, gormlogger.Info).LogMode(gormlogger.Silent)
		l.Trace(ctx, time.Now(), statement("SELECT 1", 1), errors.New("boom"))
		assert.Zero(t, logs.Len())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}

var _ gormlogger.Interface = (*GormLogger)(nil)
