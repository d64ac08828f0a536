package domain

// Direction tells which endpoint of an edge a Marker was declared on.
type Direction uint8

const (
	// Outgoing markers list the properties the declaring property notifies.
	Outgoing Direction = iota
	// Incoming markers list the properties that notify the declaring property.
	Incoming
)

// Marker is one notification declaration attached to a property.
type Marker struct {
	Direction Direction
	Names     []PropertyName
}

// Notifies declares that the marked property notifies the named properties when it changes.
func Notifies(names ...string) Marker {
	return Marker{Direction: Outgoing, Names: NewPropertyNames(names)}
}

// NotifiedBy declares that the marked property is notified when any of the named properties change.
func NotifiedBy(names ...string) Marker {
	return Marker{Direction: Incoming, Names: NewPropertyNames(names)}
}

// Property is a single property of a type along with its markers.
type Property struct {
	Name    PropertyName
	Markers []Marker
}

// TypeSpec is the closed set of properties declared on one type, in declaration order.
type TypeSpec struct {
	Name       string
	Properties []Property
}

// Lookup returns the declared property with the given name.
func (s TypeSpec) Lookup(name PropertyName) (Property, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// SpecBuilder assembles a TypeSpec through explicit registration.
type SpecBuilder struct {
	spec  TypeSpec
	index map[PropertyName]int
}

// Describe starts a TypeSpec for the type with the given name.
func Describe(typeName string) *SpecBuilder {
	return &SpecBuilder{
		spec:  TypeSpec{Name: typeName},
		index: make(map[PropertyName]int),
	}
}

// Property declares a property with optional markers.
// Declaring the same property again merges the markers and keeps its first position.
func (b *SpecBuilder) Property(name string, markers ...Marker) *SpecBuilder {
	b.add(Property{Name: NewPropertyName(name), Markers: markers})
	return b
}

// Merge adds every property of p, merging markers of properties declared earlier.
func (b *SpecBuilder) Merge(props ...Property) *SpecBuilder {
	for _, p := range props {
		b.add(p)
	}
	return b
}

func (b *SpecBuilder) add(p Property) {
	if i, ok := b.index[p.Name]; ok {
		existing := &b.spec.Properties[i]
		existing.Markers = append(existing.Markers, p.Markers...)
		return
	}
	b.index[p.Name] = len(b.spec.Properties)
	b.spec.Properties = append(b.spec.Properties, Property{
		Name:    p.Name,
		Markers: append([]Marker(nil), p.Markers...),
	})
}

// Spec returns a copy of the assembled TypeSpec.
func (b *SpecBuilder) Spec() TypeSpec {
	props := make([]Property, len(b.spec.Properties))
	for i, p := range b.spec.Properties {
		props[i] = Property{Name: p.Name, Markers: append([]Marker(nil), p.Markers...)}
	}
	return TypeSpec{Name: b.spec.Name, Properties: props}
}
