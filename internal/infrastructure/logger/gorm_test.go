package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func TestNewGormLogger_Defaults(t *testing.T) {
	gormLog, _ := newObservedGormLogger(gormlogger.Info)

	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	assert.Equal(t, defaultSlowThreshold, gormLog.slowThreshold)
	assert.True(t, gormLog.ignoreRecordNotFoundError)
}

func TestNewGormLogger_Options(t *testing.T) {
	gormLog, _ := newObservedGormLogger(
		gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 500*time.Millisecond, gormLog.slowThreshold)
	assert.False(t, gormLog.ignoreRecordNotFoundError)
}

func TestGormLogger_LogModeReturnsClone(t *testing.T) {
	gormLog, _ := newObservedGormLogger(gormlogger.Info)

	quieter := gormLog.LogMode(gormlogger.Warn)

	clone, ok := quieter.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.logLevel)
	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
}

func TestGormLogger_InfoFormatsArgs(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Info)

	gormLog.Info(context.Background(), "migrated table %s", "products")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "migrated table products", logs[0].Message)
}

func TestGormLogger_InfoSuppressedBelowLevel(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Silent)

	gormLog.Info(context.Background(), "should not appear")

	assert.Empty(t, recorded.All())
}

func TestGormLogger_WarnAndError(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Info)

	gormLog.Warn(context.Background(), "pool nearly exhausted: %d", 98)
	gormLog.Error(context.Background(), "connection refused")

	logs := recorded.All()
	require.Len(t, logs, 2)
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	assert.Equal(t, "pool nearly exhausted: 98", logs[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs[1].Level)
}

func TestGormLogger_TraceLogsError(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Error)

	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO orders DEFAULT VALUES", 0
	}, errors.New("constraint violation"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "SQL Error", logs[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
}

func TestGormLogger_TraceIgnoresRecordNotFound(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Error)

	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM products WHERE slug = ?", 0
	}, gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_TraceRecordNotFoundLoggedWhenNotIgnored(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))

	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM products WHERE slug = ?", 0
	}, gormlogger.ErrRecordNotFound)

	require.Len(t, recorded.All(), 1)
}

func TestGormLogger_TraceWarnsOnSlowQuery(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

	gormLog.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM orders", 10
	}, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "SLOW SQL")
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
}

func TestGormLogger_TraceDebugsNormalQuery(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Info)

	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM products", 5
	}, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "SQL Query", logs[0].Message)
}

func TestGormLogger_TraceSilent(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Silent)

	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM products", 5
	}, nil)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_TraceCarriesRequestID(t *testing.T) {
	gormLog, recorded := newObservedGormLogger(gormlogger.Info)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	gormLog.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM orders WHERE id = ?", 1
	}, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)

	var requestID string
	for _, field := range logs[0].Context {
		if field.Key == "request_id" {
			requestID = field.String
		}
	}
	assert.Equal(t, "req-42", requestID)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}
