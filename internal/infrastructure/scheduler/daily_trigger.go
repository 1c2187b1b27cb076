package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Submitter accepts jobs
type Submitter interface {
	Submit(job *Job) error
}

// DailyTriggerConfig holds configuration for the daily trigger
type DailyTriggerConfig struct {
	Kind          JobKind
	Hour          int
	Minute        int
	Location      *time.Location
	CheckInterval time.Duration
	MaxRetries    int
}

// DailyTrigger submits one job of its kind per calendar day once the
// configured time of day has passed
type DailyTrigger struct {
	config    DailyTriggerConfig
	submitter Submitter
	logger    *zap.Logger
	now       func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewDailyTrigger creates a new daily trigger
func NewDailyTrigger(config DailyTriggerConfig, submitter Submitter, logger *zap.Logger) *DailyTrigger {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyTrigger{
		config:    config,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
	}
}

// Start starts the check loop
func (d *DailyTrigger) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = true
	d.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.wg.Add(1)
	go d.runLoop(ctx)

	d.logger.Info("Daily trigger started",
		zap.String("kind", string(d.config.Kind)),
		zap.Int("hour", d.config.Hour),
		zap.Int("minute", d.config.Minute),
	)
	return nil
}

// Stop stops the check loop
func (d *DailyTrigger) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = false
	d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *DailyTrigger) runLoop(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.checkAndTrigger()
		}
	}
}

// checkAndTrigger submits today's job if it is due and not yet submitted.
// It reports whether a job was submitted.
func (d *DailyTrigger) checkAndTrigger() bool {
	now := d.now().In(d.config.Location)
	today := now.Format("2006-01-02")

	due := time.Date(now.Year(), now.Month(), now.Day(), d.config.Hour, d.config.Minute, 0, 0, d.config.Location)
	if now.Before(due) {
		return false
	}

	d.mu.Lock()
	if d.lastRunDate == today {
		d.mu.Unlock()
		return false
	}
	d.mu.Unlock()

	runDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, d.config.Location)
	if err := d.submitter.Submit(NewJob(d.config.Kind, runDate, d.config.MaxRetries)); err != nil {
		d.logger.Error("Failed to submit daily job",
			zap.String("kind", string(d.config.Kind)),
			zap.Error(err))
		return false
	}

	d.mu.Lock()
	d.lastRunDate = today
	d.mu.Unlock()
	d.logger.Info("Daily job submitted",
		zap.String("kind", string(d.config.Kind)),
		zap.String("date", today))
	return true
}
