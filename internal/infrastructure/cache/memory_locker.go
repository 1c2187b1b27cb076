package cache

import (
	"context"
	"sync"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
)

// InMemoryLocker implements shared.Locker with one channel semaphore per key.
// It only serializes callers inside a single process.
type InMemoryLocker struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
	wait  time.Duration
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

// NewInMemoryLocker creates a locker that gives up after wait
func NewInMemoryLocker(wait time.Duration) *InMemoryLocker {
	return &InMemoryLocker{
		slots: make(map[string]*lockSlot),
		wait:  wait,
	}
}

// Acquire blocks until the key is free, wait elapses, or ctx ends
func (l *InMemoryLocker) Acquire(ctx context.Context, key string) (func() error, error) {
	slot := l.ref(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case slot.ch <- struct{}{}:
	case <-timer.C:
		l.unref(key)
		return nil, shared.ErrLockTimeout
	case <-ctx.Done():
		l.unref(key)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() error {
		released := false
		once.Do(func() {
			<-slot.ch
			l.unref(key)
			released = true
		})
		if !released {
			return shared.ErrLockNotHeld
		}
		return nil
	}, nil
}

func (l *InMemoryLocker) ref(key string) *lockSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	return slot
}

func (l *InMemoryLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[key]
	if !ok {
		return
	}
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}

// keys reports how many keys are tracked
func (l *InMemoryLocker) keys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

var _ shared.Locker = (*InMemoryLocker)(nil)
