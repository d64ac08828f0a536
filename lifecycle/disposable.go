// Package lifecycle provides an idempotent two-phase disposal base for types that own
// resources.
//
// Managed hooks release resources owned by other Go values (subscriptions, child objects).
// Release hooks free resources outside the Go heap (files, handles). An explicit Dispose
// runs both; Finalize, meant for cleanup paths where managed state may already be gone,
// runs only the release hooks. Whichever happens first wins; later calls do nothing.
package lifecycle

import (
	"context"
	"sync"
	"sync/atomic"

	"go.trai.ch/zerr"
)

// ErrDisposed is returned by operations attempted on a disposed object.
var ErrDisposed = zerr.New("object disposed")

// Disposable is embedded by types that need a disposal lifecycle. The zero value is ready
// to use. It must not be copied after first use.
type Disposable struct {
	mu        sync.Mutex
	disposed  atomic.Bool
	managed   []func()
	releasers []func()
}

// OnDispose registers a hook that releases managed resources. Hooks run in reverse order
// of registration, and only on Dispose.
func (d *Disposable) OnDispose(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.managed = append(d.managed, fn)
}

// OnRelease registers a hook that releases unmanaged resources. Hooks run in reverse
// order of registration on both Dispose and Finalize.
func (d *Disposable) OnRelease(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.releasers = append(d.releasers, fn)
}

// Dispose runs the managed hooks, then the release hooks. Calls after the first are no-ops.
func (d *Disposable) Dispose() {
	d.dispose(true)
}

// Finalize runs only the release hooks. Calls after the first disposal are no-ops.
func (d *Disposable) Finalize() {
	d.dispose(false)
}

// DisposeContext disposes d and waits until disposal completes or ctx is done.
// Disposal is not interrupted by ctx; it finishes in the background.
func (d *Disposable) DisposeContext(ctx context.Context) error {
	if d.IsDisposed() {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Dispose()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return zerr.Wrap(ctx.Err(), "dispose did not complete")
	}
}

// IsDisposed reports whether disposal has completed.
func (d *Disposable) IsDisposed() bool {
	return d.disposed.Load()
}

// CheckDisposed returns ErrDisposed once d has been disposed.
func (d *Disposable) CheckDisposed() error {
	if d.IsDisposed() {
		return ErrDisposed
	}
	return nil
}

func (d *Disposable) dispose(deterministic bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed.Load() {
		return
	}

	if deterministic {
		runReversed(d.managed)
	}
	runReversed(d.releasers)

	d.managed = nil
	d.releasers = nil
	d.disposed.Store(true)
}

func runReversed(hooks []func()) {
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}
