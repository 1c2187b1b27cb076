package event

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus implements EventBus with in-process pub/sub.
// Without WithWorkers, events are dispatched synchronously inside Publish.
// With workers, Publish enqueues and a fixed pool dispatches, so slow
// handlers such as email delivery stay off the request path.
type InMemoryEventBus struct {
	registry  *HandlerRegistry
	logger    *zap.Logger
	workers   int
	queueSize int
	queue     chan envelope
	running   atomic.Bool
	wg        sync.WaitGroup
	mu        sync.RWMutex
}

type envelope struct {
	ctx   context.Context
	event shared.DomainEvent
}

// BusOption configures an InMemoryEventBus
type BusOption func(*InMemoryEventBus)

// WithWorkers enables asynchronous dispatch with n workers and a bounded queue
func WithWorkers(n, queueSize int) BusOption {
	return func(b *InMemoryEventBus) {
		b.workers = n
		b.queueSize = queueSize
	}
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger, opts ...BusOption) *InMemoryEventBus {
	b := &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish dispatches events to their handlers. Handler failures are logged
// and never returned to the publisher.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, event := range events {
		if b.queue == nil {
			b.dispatch(ctx, event)
			continue
		}

		// Detach from request cancellation; async handlers outlive the request
		env := envelope{ctx: context.WithoutCancel(ctx), event: event}
		select {
		case b.queue <- env:
		default:
			b.logger.Warn("event queue full, dispatching inline",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
			)
			b.dispatch(env.ctx, event)
		}
	}
	return nil
}

// Subscribe registers a handler for specific event types, defaulting to the
// handler's own EventTypes
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start launches the worker pool when asynchronous dispatch is configured
func (b *InMemoryEventBus) Start(_ context.Context) error {
	if !b.running.CompareAndSwap(false, true) {
		return nil
	}
	if b.workers > 0 {
		b.mu.Lock()
		b.queue = make(chan envelope, b.queueSize)
		b.mu.Unlock()

		for i := 0; i < b.workers; i++ {
			b.wg.Add(1)
			go b.work(b.queue)
		}
	}
	b.logger.Info("event bus started", zap.Int("workers", b.workers))
	return nil
}

// Stop closes the queue and waits for queued events to drain or ctx to end
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	if !b.running.CompareAndSwap(true, false) {
		return nil
	}

	b.mu.Lock()
	if b.queue != nil {
		close(b.queue)
		b.queue = nil
	}
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		b.logger.Warn("event bus stop timed out with events still in flight")
		return ctx.Err()
	}
}

func (b *InMemoryEventBus) work(queue <-chan envelope) {
	defer b.wg.Done()
	for env := range queue {
		b.dispatch(env.ctx, env.event)
	}
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, event shared.DomainEvent) {
	for _, handler := range b.registry.GetHandlers(event.EventType()) {
		if err := b.safeHandle(ctx, handler, event); err != nil {
			b.logger.Error("handler failed to process event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err),
			)
		}
	}
}

func (b *InMemoryEventBus) safeHandle(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
