// Package domain contains the core domain models for property change notification graphs.
package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// DependencyGraph maps each property to the properties that must be treated as changed when it changes.
// A graph is immutable once built and safe for concurrent use.
type DependencyGraph struct {
	typeName   string
	properties []PropertyName
	valid      map[PropertyName]struct{}
	changers   []PropertyName
	dependents map[PropertyName][]PropertyName
}

// BuildGraph normalises the markers of spec into canonical changer -> dependent edges
// and validates that every referenced name exists and that the edges are acyclic.
func BuildGraph(spec TypeSpec) (*DependencyGraph, error) {
	g := &DependencyGraph{
		typeName:   spec.Name,
		valid:      make(map[PropertyName]struct{}, len(spec.Properties)),
		dependents: make(map[PropertyName][]PropertyName),
	}

	var referenced []PropertyName
	seen := make(map[PropertyName]struct{})
	reference := func(n PropertyName) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		referenced = append(referenced, n)
	}

	for _, p := range spec.Properties {
		if p.Name.IsZero() {
			reference(p.Name)
			continue
		}
		if _, ok := g.valid[p.Name]; !ok {
			g.valid[p.Name] = struct{}{}
			g.properties = append(g.properties, p.Name)
		}

		for _, m := range p.Markers {
			reference(p.Name)
			for _, other := range m.Names {
				if m.Direction == Incoming {
					g.addEdge(other, p.Name)
				} else {
					g.addEdge(p.Name, other)
				}
				reference(other)
			}
		}
	}

	for _, name := range referenced {
		if _, ok := g.valid[name]; !ok {
			return nil, g.missingMember(name)
		}
	}

	if err := g.validate(); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *DependencyGraph) addEdge(changer, dependent PropertyName) {
	deps, ok := g.dependents[changer]
	if !ok {
		g.changers = append(g.changers, changer)
	}
	if slices.Contains(deps, dependent) {
		return
	}
	g.dependents[changer] = append(deps, dependent)
}

// validate checks for cycles with a depth-first search over resolved and unresolved sets.
func (g *DependencyGraph) validate() error {
	resolved := make(map[PropertyName]struct{}, len(g.changers))
	unresolved := make(map[PropertyName]int) // property -> index on path
	var path []PropertyName

	var visit func(n PropertyName) error
	visit = func(n PropertyName) error {
		unresolved[n] = len(path)
		path = append(path, n)

		for _, edge := range g.dependents[n] {
			if _, ok := resolved[edge]; ok {
				continue
			}
			if start, ok := unresolved[edge]; ok {
				return g.circularReference(path[start:])
			}
			if err := visit(edge); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		delete(unresolved, n)
		resolved[n] = struct{}{}
		return nil
	}

	for _, n := range g.changers {
		if _, ok := resolved[n]; ok {
			continue
		}
		if err := visit(n); err != nil {
			return err
		}
	}

	return nil
}

func (g *DependencyGraph) missingMember(name PropertyName) error {
	return NewMissingMemberError(g.typeName, name.String())
}

func (g *DependencyGraph) circularReference(chain []PropertyName) error {
	names := propertyStrings(chain)
	err := zerr.With(&CircularReferenceError{Type: g.typeName, Chain: names}, "type", g.typeName)
	return zerr.With(err, "chain", names)
}

// TypeName returns the name of the type the graph was built for.
func (g *DependencyGraph) TypeName() string {
	return g.typeName
}

// Properties returns every declared property in declaration order.
func (g *DependencyGraph) Properties() []PropertyName {
	return slices.Clone(g.properties)
}

// HasProperty reports whether name is a declared property of the type.
func (g *DependencyGraph) HasProperty(name PropertyName) bool {
	_, ok := g.valid[name]
	return ok
}

// Dependents returns the direct dependents of name in declaration order.
func (g *DependencyGraph) Dependents(name PropertyName) []PropertyName {
	return slices.Clone(g.dependents[name])
}

// Edges yields every changer -> dependent edge, changers in first-declaration order.
func (g *DependencyGraph) Edges() iter.Seq2[PropertyName, PropertyName] {
	return func(yield func(PropertyName, PropertyName) bool) {
		for _, changer := range g.changers {
			for _, dep := range g.dependents[changer] {
				if !yield(changer, dep) {
					return
				}
			}
		}
	}
}

// Expand yields name followed by a depth-first, pre-order expansion of its dependents.
// The zero PropertyName yields nothing. A name with no dependents yields only itself.
func (g *DependencyGraph) Expand(name PropertyName) iter.Seq[PropertyName] {
	return func(yield func(PropertyName) bool) {
		if name.IsZero() {
			return
		}
		g.expand(name, yield)
	}
}

// expand relies on the graph being acyclic; no visited set is kept.
func (g *DependencyGraph) expand(name PropertyName, yield func(PropertyName) bool) bool {
	if !yield(name) {
		return false
	}
	for _, dep := range g.dependents[name] {
		if !g.expand(dep, yield) {
			return false
		}
	}
	return true
}
