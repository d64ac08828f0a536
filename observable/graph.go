package observable

import (
	"iter"
	"reflect"

	"go.trai.ch/cascade/internal/adapters/reflection"
	"go.trai.ch/cascade/internal/core/domain"
	"go.trai.ch/cascade/internal/engine/lookup"
)

var (
	// ErrMissingMember is matched by errors for declarations that name a non-existent property.
	ErrMissingMember = domain.ErrMissingMember
	// ErrCircularPropertyReference is matched by errors for declarations that form a cycle.
	ErrCircularPropertyReference = domain.ErrCircularPropertyReference
	// ErrNotStruct is returned when the owner is not a struct or a pointer to one.
	ErrNotStruct = domain.ErrNotStruct
	// ErrInvalidTag is returned when a notifies or notifiedBy tag cannot be parsed.
	ErrInvalidTag = domain.ErrInvalidTag
)

type (
	// MissingMemberError reports a declaration that names a non-existent property.
	MissingMemberError = domain.MissingMemberError
	// CircularReferenceError reports a cycle and the properties on it.
	CircularReferenceError = domain.CircularReferenceError
	// Property declares markers for one property.
	Property = domain.Property
	// Marker is one notifies or notifiedBy declaration.
	Marker = domain.Marker
	// MarkerProvider lets a type declare markers for computed properties (getter methods),
	// which cannot carry struct tags.
	MarkerProvider = reflection.MarkerProvider
)

// Notifies declares that the property notifies names when it changes.
func Notifies(names ...string) Marker {
	return domain.Notifies(names...)
}

// NotifiedBy declares that the property is notified when any of names changes.
func NotifiedBy(names ...string) Marker {
	return domain.NotifiedBy(names...)
}

// Declare builds a Property for use in MarkerProvider implementations.
func Declare(name string, markers ...Marker) Property {
	return Property{Name: domain.NewPropertyName(name), Markers: markers}
}

var (
	graphs   = lookup.New[reflect.Type]()
	baseType = reflect.TypeFor[Base]()
)

// Graph is the validated dependency graph of one type.
type Graph struct {
	g *domain.DependencyGraph
}

// GraphFor returns the graph of t, building and validating it on first use.
// A pointer type shares the graph of the struct it points to. Failures are not cached:
// every call for a broken type reports the error again.
func GraphFor(t reflect.Type) (*Graph, error) {
	g, err := graphOf(t)
	if err != nil {
		return nil, err
	}
	return &Graph{g: g}, nil
}

// Expand returns the names raised, in order, when property name of owner changes.
func Expand(owner any, name string) ([]string, error) {
	g, err := GraphFor(reflect.TypeOf(owner))
	if err != nil {
		return nil, err
	}
	var out []string
	for n := range g.Expand(name) {
		out = append(out, n)
	}
	return out, nil
}

func graphOf(t reflect.Type) (*domain.DependencyGraph, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		// Let Describe report the nil type.
		_, err := reflection.Describe(t)
		return nil, err
	}
	return graphs.Get(t, func() (*domain.DependencyGraph, error) {
		spec, err := reflection.Describe(t, reflection.Ignore(baseType))
		if err != nil {
			return nil, err
		}
		return domain.BuildGraph(spec)
	})
}

// TypeName returns the name of the type the graph describes.
func (g *Graph) TypeName() string {
	return g.g.TypeName()
}

// Properties returns every property in declaration order.
func (g *Graph) Properties() []string {
	return nameStrings(g.g.Properties())
}

// Has reports whether name is a property of the type.
func (g *Graph) Has(name string) bool {
	return g.g.HasProperty(domain.NewPropertyName(name))
}

// Dependents returns the properties name notifies directly.
func (g *Graph) Dependents(name string) []string {
	return nameStrings(g.g.Dependents(domain.NewPropertyName(name)))
}

// Expand yields name followed by every property its change cascades into, depth first.
// The empty name yields nothing.
func (g *Graph) Expand(name string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for n := range g.g.Expand(domain.NewPropertyName(name)) {
			if !yield(n.String()) {
				return
			}
		}
	}
}

func nameStrings(names []domain.PropertyName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}
