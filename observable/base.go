package observable

import (
	"reflect"
	"slices"
	"sync"

	"go.trai.ch/cascade/internal/core/domain"
	"go.trai.ch/cascade/lifecycle"
	"go.trai.ch/cascade/locking"
	"go.trai.ch/zerr"
)

// ErrNilOwner is returned by Init when no owner is given.
var ErrNilOwner = zerr.New("observable owner is nil")

// Base is embedded by types that announce property changes. It must be initialised with
// Init before use and must not be copied afterwards.
//
// Disposing a Base drops every subscription; later raises announce nothing.
type Base struct {
	lifecycle.Disposable

	mu       sync.RWMutex
	owner    any
	graph    *domain.DependencyGraph
	changing []*subscription
	changed  []*subscription
	closed   bool

	registerOnce sync.Once
}

type subscription struct {
	handler Handler
}

// Init resolves the dependency graph of owner's type. owner is normally the pointer to
// the struct that embeds b. The first Init for a type builds and validates its graph;
// a declaration error is returned on every Init until it is fixed.
func (b *Base) Init(owner any) error {
	if owner == nil {
		return ErrNilOwner
	}

	g, err := graphOf(reflect.TypeOf(owner))
	if err != nil {
		return err
	}

	release := locking.Write(&b.mu)
	b.owner = owner
	b.graph = g
	release()

	b.registerOnce.Do(func() {
		b.OnDispose(b.unsubscribeAll)
	})
	return nil
}

// MustInit is like Init but panics on error.
func (b *Base) MustInit(owner any) {
	if err := b.Init(owner); err != nil {
		panic(err)
	}
}

// OnPropertyChanging subscribes h to the changing channel. The returned func unsubscribes.
func (b *Base) OnPropertyChanging(h Handler) (unsubscribe func()) {
	return b.subscribe(&b.changing, h)
}

// OnPropertyChanged subscribes h to the changed channel. The returned func unsubscribes.
func (b *Base) OnPropertyChanged(h Handler) (unsubscribe func()) {
	return b.subscribe(&b.changed, h)
}

// RaisePropertyChanging announces that name, and everything it cascades into, is about
// to change. The empty name announces nothing.
func (b *Base) RaisePropertyChanging(name string) {
	b.raise(&b.changing, name, func(owner any, n string) {
		if hook, ok := owner.(ChangingHook); ok {
			hook.PropertyChanging(n)
		}
	})
}

// RaisePropertyChanged announces that name, and everything it cascades into, has changed.
// The empty name announces nothing.
func (b *Base) RaisePropertyChanged(name string) {
	b.raise(&b.changed, name, func(owner any, n string) {
		if hook, ok := owner.(ChangedHook); ok {
			hook.PropertyChanged(n)
		}
	})
}

func (b *Base) raise(list *[]*subscription, name string, hook func(owner any, name string)) {
	if b.IsDisposed() {
		return
	}

	release := locking.Read(&b.mu)
	owner, g := b.owner, b.graph
	release()

	if g == nil {
		panic("observable: Base used before Init")
	}

	for n := range g.Expand(domain.NewPropertyName(name)) {
		event := PropertyEvent{Sender: owner, Name: n.String()}
		for _, s := range b.snapshot(list) {
			s.handler(event)
		}
		hook(owner, event.Name)
	}
}

func (b *Base) snapshot(list *[]*subscription) []*subscription {
	defer locking.Read(&b.mu)()
	return slices.Clone(*list)
}

func (b *Base) subscribe(list *[]*subscription, h Handler) func() {
	if h == nil || b.IsDisposed() {
		return func() {}
	}

	s := &subscription{handler: h}

	release := locking.Write(&b.mu)
	if b.closed {
		release()
		return func() {}
	}
	*list = append(*list, s)
	release()

	return sync.OnceFunc(func() {
		defer locking.Write(&b.mu)()
		*list = slices.DeleteFunc(*list, func(other *subscription) bool { return other == s })
	})
}

func (b *Base) unsubscribeAll() {
	defer locking.Write(&b.mu)()
	b.closed = true
	b.changing = nil
	b.changed = nil
}
