package locking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cascade/locking"
	"golang.org/x/sync/semaphore"
)

func TestRead_AllowsConcurrentReaders(t *testing.T) {
	var mu sync.RWMutex

	r1 := locking.Read(&mu)
	r2 := locking.Read(&mu)

	assert.False(t, mu.TryLock())

	r1()
	r2()
	r2()

	require.True(t, mu.TryLock())
	mu.Unlock()
}

func TestWrite_Exclusive(t *testing.T) {
	var mu sync.RWMutex

	release := locking.Write(&mu)
	assert.False(t, mu.TryRLock())

	release()
	release()

	require.True(t, mu.TryRLock())
	mu.RUnlock()
}

func TestLock(t *testing.T) {
	var mu sync.Mutex

	release := locking.Lock(&mu)
	assert.False(t, mu.TryLock())
	release()
	release()

	require.True(t, mu.TryLock())
	mu.Unlock()
}

func TestAcquire(t *testing.T) {
	sem := semaphore.NewWeighted(1)

	release, err := locking.Acquire(context.Background(), sem)
	require.NoError(t, err)

	_, ok := locking.TryAcquire(sem)
	assert.False(t, ok)

	release()
	release()

	again, ok := locking.TryAcquire(sem)
	require.True(t, ok)
	again()

	// A double release must not have returned two units.
	r1, ok := locking.TryAcquire(sem)
	require.True(t, ok)
	_, ok = locking.TryAcquire(sem)
	assert.False(t, ok)
	r1()
}

func TestAcquire_ContextDone(t *testing.T) {
	sem := semaphore.NewWeighted(1)
	held, ok := locking.TryAcquire(sem)
	require.True(t, ok)
	defer held()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	release, err := locking.Acquire(ctx, sem)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, release)
}

func TestAcquireN(t *testing.T) {
	sem := semaphore.NewWeighted(3)

	release, err := locking.AcquireN(context.Background(), sem, 2)
	require.NoError(t, err)

	one, ok := locking.TryAcquire(sem)
	require.True(t, ok)
	_, ok = locking.TryAcquire(sem)
	assert.False(t, ok)

	one()
	release()
	release()

	all, err := locking.AcquireN(context.Background(), sem, 3)
	require.NoError(t, err)
	all()
}
