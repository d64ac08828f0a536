package lifecycle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cascade/lifecycle"
)

type resource struct {
	lifecycle.Disposable
	managed   int
	unmanaged int
}

func newResource() *resource {
	r := &resource{}
	r.OnDispose(func() { r.managed++ })
	r.OnRelease(func() { r.unmanaged++ })
	return r
}

func TestDispose_RunsHooksOnce(t *testing.T) {
	r := newResource()
	require.False(t, r.IsDisposed())
	require.NoError(t, r.CheckDisposed())

	r.Dispose()
	r.Dispose()

	assert.True(t, r.IsDisposed())
	assert.Equal(t, 1, r.managed)
	assert.Equal(t, 1, r.unmanaged)
	assert.ErrorIs(t, r.CheckDisposed(), lifecycle.ErrDisposed)
}

func TestFinalize_ReleasesUnmanagedOnly(t *testing.T) {
	r := newResource()

	r.Finalize()
	r.Dispose()

	assert.True(t, r.IsDisposed())
	assert.Equal(t, 0, r.managed)
	assert.Equal(t, 1, r.unmanaged)
}

func TestDispose_ReverseOrder(t *testing.T) {
	var d lifecycle.Disposable
	var order []string

	d.OnRelease(func() { order = append(order, "release") })
	d.OnDispose(func() { order = append(order, "first") })
	d.OnDispose(func() { order = append(order, "second") })

	d.Dispose()

	assert.Equal(t, []string{"second", "first", "release"}, order)
}

func TestDispose_Concurrent(t *testing.T) {
	r := newResource()

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(r.Dispose)
	}
	wg.Wait()

	assert.Equal(t, 1, r.managed)
	assert.Equal(t, 1, r.unmanaged)
}

func TestDisposeContext(t *testing.T) {
	r := newResource()

	require.NoError(t, r.DisposeContext(context.Background()))
	assert.True(t, r.IsDisposed())
	assert.Equal(t, 1, r.managed)

	require.NoError(t, r.DisposeContext(context.Background()))
	assert.Equal(t, 1, r.managed)
}

func TestDisposeContext_Deadline(t *testing.T) {
	var d lifecycle.Disposable
	release := make(chan struct{})
	d.OnDispose(func() { <-release })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := d.DisposeContext(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, d.IsDisposed())

	close(release)
	assert.Eventually(t, d.IsDisposed, time.Second, time.Millisecond)
}
