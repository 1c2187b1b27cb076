package shared

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when a lock could not be acquired in time
var ErrLockTimeout = NewDomainError(CodeConcurrencyConflict, "Resource is busy, please retry")

// ErrLockNotHeld is returned when releasing a lock whose lease has expired
// or was taken over by another holder
var ErrLockNotHeld = errors.New("lock not held")

// Locker serializes work on a named key across goroutines and, for
// distributed implementations, across processes
type Locker interface {
	// Acquire blocks until the key is held, the context is done, or the
	// implementation's wait budget runs out (ErrLockTimeout). The returned
	// release function must be called exactly once.
	Acquire(ctx context.Context, key string) (release func() error, err error)
}
