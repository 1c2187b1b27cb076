package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig configures GORM tracing and query metrics.
type DBConfig struct {
	TraceEnabled bool
	// LogFullSQL keeps bound variables in span statements. Development only.
	LogFullSQL      bool
	SlowQueryThresh time.Duration
	DBName          string
	// PoolStatsInterval is how often connection pool gauges are sampled.
	PoolStatsInterval time.Duration
}

const dbStartKey = "telemetry:db_start"

var dbOperations = []string{"create", "query", "update", "delete", "row", "raw"}

// DBInstrumentation traces GORM statements, flags slow ones and records
// query and pool metrics.
type DBInstrumentation struct {
	cfg    DBConfig
	logger *zap.Logger

	queryTotal    *Counter
	queryDuration *Histogram
	poolGauge     *Gauge

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewDBInstrumentation creates the instruments on meter.
func NewDBInstrumentation(meter metric.Meter, cfg DBConfig, logger *zap.Logger) (*DBInstrumentation, error) {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.PoolStatsInterval <= 0 {
		cfg.PoolStatsInterval = 15 * time.Second
	}
	if cfg.DBName == "" {
		cfg.DBName = "postgresql"
	}
	d := &DBInstrumentation{cfg: cfg, logger: logger, stopCh: make(chan struct{})}

	var err error
	if d.queryTotal, err = NewCounter(meter, "db_query_total", "Database statements executed", "{query}"); err != nil {
		return nil, err
	}
	if d.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database statement latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if d.poolGauge, err = NewGauge(meter, "db_pool_connections", "Connection pool connections by state", "{connection}"); err != nil {
		return nil, err
	}
	return d, nil
}

// Register installs the otelgorm plugin, when tracing is enabled, and the
// timing callbacks on db.
func (d *DBInstrumentation) Register(db *gorm.DB) error {
	if d.cfg.TraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName(d.cfg.DBName)}
		if !d.cfg.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
	}

	cb := db.Callback()
	for _, op := range dbOperations {
		before := "telemetry:before_" + op
		after := "telemetry:after_" + op
		var err error
		switch op {
		case "create":
			err = errors.Join(cb.Create().Before("gorm:create").Register(before, d.before),
				cb.Create().After("gorm:create").Register(after, d.afterFunc(op)))
		case "query":
			err = errors.Join(cb.Query().Before("gorm:query").Register(before, d.before),
				cb.Query().After("gorm:query").Register(after, d.afterFunc(op)))
		case "update":
			err = errors.Join(cb.Update().Before("gorm:update").Register(before, d.before),
				cb.Update().After("gorm:update").Register(after, d.afterFunc(op)))
		case "delete":
			err = errors.Join(cb.Delete().Before("gorm:delete").Register(before, d.before),
				cb.Delete().After("gorm:delete").Register(after, d.afterFunc(op)))
		case "row":
			err = errors.Join(cb.Row().Before("gorm:row").Register(before, d.before),
				cb.Row().After("gorm:row").Register(after, d.afterFunc(op)))
		case "raw":
			err = errors.Join(cb.Raw().Before("gorm:raw").Register(before, d.before),
				cb.Raw().After("gorm:raw").Register(after, d.afterFunc(op)))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *DBInstrumentation) before(db *gorm.DB) {
	db.InstanceSet(dbStartKey, time.Now())
}

func (d *DBInstrumentation) afterFunc(kind string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		op := kind
		v, ok := db.InstanceGet(dbStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}

		if op == "raw" || op == "row" {
			op = operationOf(db.Statement.SQL.String())
		}
		attrs := []attribute.KeyValue{
			AttrDBOperation.String(op),
			AttrDBTable.String(db.Statement.Table),
			attribute.Bool("error", isQueryError(db.Error)),
		}
		d.queryTotal.Inc(ctx, attrs...)
		d.queryDuration.RecordDuration(ctx, elapsed, attrs[:2]...)

		if elapsed < d.cfg.SlowQueryThresh {
			return
		}
		span := trace.SpanFromContext(ctx)
		if span.IsRecording() {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
			)
		}
		d.logger.Warn("Slow query",
			zap.String("operation", op),
			zap.String("table", db.Statement.Table),
			zap.Duration("duration", elapsed),
			zap.String("trace_id", TraceID(ctx)))
	}
}

// isQueryError ignores ErrRecordNotFound, which is a normal lookup miss.
func isQueryError(err error) bool {
	return err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
}

// StartPoolStats samples sqlDB pool gauges until Stop or ctx is done.
func (d *DBInstrumentation) StartPoolStats(ctx context.Context, sqlDB *sql.DB) {
	go func() {
		ticker := time.NewTicker(d.cfg.PoolStatsInterval)
		defer ticker.Stop()
		for {
			d.recordPoolStats(ctx, sqlDB.Stats())
			select {
			case <-ctx.Done():
				return
			case <-d.stopCh:
				return
			case <-ticker.C:
			}
		}
	}()
}

func (d *DBInstrumentation) recordPoolStats(ctx context.Context, s sql.DBStats) {
	d.poolGauge.Record(ctx, int64(s.InUse), AttrDBState.String("in_use"))
	d.poolGauge.Record(ctx, int64(s.Idle), AttrDBState.String("idle"))
	d.poolGauge.Record(ctx, int64(s.OpenConnections), AttrDBState.String("open"))
	d.poolGauge.Record(ctx, int64(s.MaxOpenConnections), AttrDBState.String("max"))
}

// Stop ends pool sampling.
func (d *DBInstrumentation) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })
}

// operationOf classifies a raw SQL statement.
func operationOf(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	switch strings.ToLower(fields[0]) {
	case "select":
		return "select"
	case "insert":
		return "insert"
	case "update":
		return "update"
	case "delete":
		return "delete"
	default:
		return "other"
	}
}
