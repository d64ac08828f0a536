// Package lookup implements the per-type cache of validated dependency graphs.
package lookup

import (
	"fmt"
	"sync"

	"go.trai.ch/cascade/internal/core/domain"
	"go.trai.ch/cascade/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// ErrNilGraph is returned when a build function reports success without a graph.
var ErrNilGraph = zerr.New("graph builder returned no graph")

// BuildFunc builds the graph for a key on a cache miss.
type BuildFunc func() (*domain.DependencyGraph, error)

// Cache memoizes one immutable DependencyGraph per key for the life of the process.
// It is safe for concurrent use without external locking.
type Cache[K comparable] struct {
	entries sync.Map // K -> *domain.DependencyGraph
	logger  ports.Logger

	flight    singleflight.Group
	flightKey func(K) string
}

// Option configures a Cache with key type K.
type Option[K comparable] func(*Cache[K])

// WithLogger reports builds, publications and failures to logger.
func WithLogger[K comparable](logger ports.Logger) Option[K] {
	return func(c *Cache[K]) {
		c.logger = logger
	}
}

// WithCoalescing makes concurrent misses for the same key share one build. key must map
// distinct keys to distinct strings.
func WithCoalescing[K comparable](key func(K) string) Option[K] {
	return func(c *Cache[K]) {
		c.flightKey = key
	}
}

// New creates an empty Cache.
func New[K comparable](opts ...Option[K]) *Cache[K] {
	c := &Cache[K]{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the graph published for key, calling build on a miss.
//
// Concurrent misses for the same key may each call build unless the cache coalesces;
// exactly one result is published and every caller receives that instance. Failed builds
// are not cached, so the next Get for the key builds again.
func (c *Cache[K]) Get(key K, build BuildFunc) (*domain.DependencyGraph, error) {
	if v, ok := c.entries.Load(key); ok {
		return v.(*domain.DependencyGraph), nil
	}

	if c.flightKey == nil {
		return c.buildAndPublish(key, build)
	}

	v, err, _ := c.flight.Do(c.flightKey(key), func() (any, error) {
		return c.buildAndPublish(key, build)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.DependencyGraph), nil
}

func (c *Cache[K]) buildAndPublish(key K, build BuildFunc) (*domain.DependencyGraph, error) {
	g, err := build()
	if err != nil {
		c.logError(err)
		return nil, err
	}
	if g == nil {
		return nil, zerr.With(zerr.Wrap(ErrNilGraph, "lookup failed"), "key", fmt.Sprint(key))
	}

	actual, loaded := c.entries.LoadOrStore(key, g)
	if loaded {
		c.logInfo(fmt.Sprintf("discarded redundant graph for %s", g.TypeName()))
	} else {
		c.logInfo(fmt.Sprintf("published graph for %s", g.TypeName()))
	}
	return actual.(*domain.DependencyGraph), nil
}

// Has reports whether a graph has been published for key.
func (c *Cache[K]) Has(key K) bool {
	_, ok := c.entries.Load(key)
	return ok
}

// Len returns the number of published graphs.
func (c *Cache[K]) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *Cache[K]) logInfo(msg string) {
	if c.logger != nil {
		c.logger.Info(msg)
	}
}

func (c *Cache[K]) logError(err error) {
	if c.logger != nil {
		c.logger.Error(err)
	}
}
