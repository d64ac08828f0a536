// Package locking wraps lock acquisition in release funcs so a held lock is scoped by a
// single deferred call:
//
//	defer locking.Read(&mu)()
//
// Every release func is idempotent.
package locking

import (
	"context"
	"sync"

	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
)

// Release releases a held lock. Calls after the first are no-ops.
type Release func()

// Read acquires mu for reading.
func Read(mu *sync.RWMutex) Release {
	mu.RLock()
	return once(mu.RUnlock)
}

// Write acquires mu for writing.
func Write(mu *sync.RWMutex) Release {
	mu.Lock()
	return once(mu.Unlock)
}

// Lock acquires mu.
func Lock(mu sync.Locker) Release {
	mu.Lock()
	return once(mu.Unlock)
}

// Acquire takes one unit of sem, blocking until it is available or ctx is done.
func Acquire(ctx context.Context, sem *semaphore.Weighted) (Release, error) {
	return AcquireN(ctx, sem, 1)
}

// AcquireN takes n units of sem, blocking until they are available or ctx is done.
func AcquireN(ctx context.Context, sem *semaphore.Weighted, n int64) (Release, error) {
	if err := sem.Acquire(ctx, n); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to acquire semaphore"), "weight", n)
	}
	return once(func() { sem.Release(n) }), nil
}

// TryAcquire takes one unit of sem without blocking. It reports false if none is available.
func TryAcquire(sem *semaphore.Weighted) (Release, bool) {
	if !sem.TryAcquire(1) {
		return nil, false
	}
	return once(func() { sem.Release(1) }), true
}

func once(fn func()) Release {
	return Release(sync.OnceFunc(fn))
}
