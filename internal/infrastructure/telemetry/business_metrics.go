package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics tracks tenancy outcomes, rent payments and unit occupancy.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	tenancyCreatedTotal  *Counter
	tenancyRejectedTotal *Counter
	tenancyEndedTotal    *Counter
	paymentTotal         *Counter
	paymentAmountTotal   *Counter

	unitsTotal    *Gauge
	unitsOccupied *Gauge

	lockWait *Histogram

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	occupancyProvider OccupancyProvider
}

// OccupancyProvider reports unit counts for periodic gauge collection
type OccupancyProvider interface {
	// UnitOccupancy returns the total and occupied unit counts across all properties
	UnitOccupancy(ctx context.Context) (total, occupied int64, err error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	OccupancyProvider OccupancyProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:             cfg.Meter,
		logger:            logger,
		stopChan:          make(chan struct{}),
		occupancyProvider: cfg.OccupancyProvider,
	}

	counters := []struct {
		target     **Counter
		name, desc string
		unit       string
	}{
		{&bm.tenancyCreatedTotal, "pms_tenancy_created_total", "Tenancies created", "{tenancies}"},
		{&bm.tenancyRejectedTotal, "pms_tenancy_rejected_total", "Tenancy requests rejected by precondition", "{tenancies}"},
		{&bm.tenancyEndedTotal, "pms_tenancy_ended_total", "Tenancies ended by delete or move-out", "{tenancies}"},
		{&bm.paymentTotal, "pms_payment_total", "Rent payments recorded", "{payments}"},
		{&bm.paymentAmountTotal, "pms_payment_amount_total", "Rent payment amount in minor currency units", "{cents}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(cfg.Meter, c.name, c.desc, c.unit)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}

	var err error
	bm.unitsTotal, err = NewGauge(cfg.Meter, "pms_units_total", "Units across all properties", "{units}")
	if err != nil {
		return nil, err
	}
	bm.unitsOccupied, err = NewGauge(cfg.Meter, "pms_units_occupied", "Occupied units across all properties", "{units}")
	if err != nil {
		return nil, err
	}

	bm.lockWait, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "pms_unit_lock_wait_seconds",
		Description: "Time spent waiting for a per-unit tenancy lock",
		Unit:        "s",
		Boundaries:  LockWaitBuckets,
	})
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordLockWait records how long a unit lock acquisition took
func (bm *BusinessMetrics) RecordLockWait(ctx context.Context, d time.Duration, acquired bool) {
	bm.lockWait.RecordDuration(ctx, d, AttrLockAcquired.Bool(acquired))
}

// RecordTenancyCreated counts a committed tenancy
func (bm *BusinessMetrics) RecordTenancyCreated(ctx context.Context) {
	bm.tenancyCreatedTotal.Inc(ctx)
}

// RecordTenancyRejected counts a createTenancy failure by domain error code
func (bm *BusinessMetrics) RecordTenancyRejected(ctx context.Context, reason string) {
	bm.tenancyRejectedTotal.Inc(ctx, AttrReason.String(reason))
}

// RecordTenancyEnded counts a tenancy teardown
func (bm *BusinessMetrics) RecordTenancyEnded(ctx context.Context, kind string, unitReleased bool) {
	bm.tenancyEndedTotal.Inc(ctx,
		AttrEndKind.String(kind),
		AttrUnitReleased.Bool(unitReleased),
	)
}

// RecordPayment counts a payment and adds its amount in cents
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, method, status string, amount decimal.Decimal) {
	attrs := []attribute.KeyValue{
		AttrPaymentMethod.String(method),
		AttrPaymentStatus.String(status),
	}
	bm.paymentTotal.Inc(ctx, attrs...)
	bm.paymentAmountTotal.Add(ctx, amount.Mul(decimal.NewFromInt(100)).IntPart(), attrs...)
}

// StartPeriodicCollection samples unit occupancy every interval until Stop
// or ctx is done. It is non-blocking and only starts once.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go bm.runPeriodicCollection(ctx, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.collectOccupancy(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			bm.collectOccupancy(ctx)
		}
	}
}

func (bm *BusinessMetrics) collectOccupancy(ctx context.Context) {
	if bm.occupancyProvider == nil {
		return
	}
	total, occupied, err := bm.occupancyProvider.UnitOccupancy(ctx)
	if err != nil {
		bm.logger.Warn("Failed to collect unit occupancy", zap.Error(err))
		return
	}
	bm.unitsTotal.Record(ctx, total)
	bm.unitsOccupied.Record(ctx, occupied)
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// Business attribute keys
var (
	AttrReason       = attribute.Key("reason")
	AttrEndKind      = attribute.Key("end_kind")
	AttrUnitReleased = attribute.Key("unit_released")
	AttrLockAcquired = attribute.Key("lock_acquired")
)
