// Package reflection derives notification declarations from Go struct types.
//
// Every field of the struct (exported or not, promoted fields included) is a property.
// Fields carry markers in struct tags:
//
//	type Person struct {
//	    First    string `notifies:"FullName"`
//	    Last     string `notifies:"FullName"`
//	    FullName string
//	    Age      int    `notifiedBy:"Birthday"`
//	    Birthday time.Time
//	}
//
// Getter-shaped methods of *T (no arguments, one result) are properties too. Because methods
// cannot carry tags, *T may implement MarkerProvider to declare their markers. Only exported
// methods are visible to reflection, so unexported getters are never properties.
package reflection

import (
	"reflect"
	"slices"
	"strings"

	"go.trai.ch/cascade/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// NotifiesTag lists the properties a field notifies when it changes.
	NotifiesTag = "notifies"
	// NotifiedByTag lists the properties that notify a field when they change.
	NotifiedByTag = "notifiedBy"
)

// MarkerProvider declares markers for properties that cannot carry struct tags.
// PropertyMarkers is called on a zero value and must not depend on instance state.
// Every property it declares must be a field or getter of the type.
type MarkerProvider interface {
	PropertyMarkers() []domain.Property
}

var markerProviderType = reflect.TypeFor[MarkerProvider]()

// TypeName returns the name used for t in specs and errors.
func TypeName(t reflect.Type) string {
	return t.String()
}

// Option configures Describe.
type Option func(*describeConfig)

type describeConfig struct {
	ignored []reflect.Type
}

// Ignore excludes embedded helper types from discovery. Fields of an ignored type, the
// fields promoted through it and the methods it contributes are not properties.
func Ignore(types ...reflect.Type) Option {
	return func(cfg *describeConfig) {
		cfg.ignored = append(cfg.ignored, types...)
	}
}

func (cfg *describeConfig) isIgnored(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return slices.Contains(cfg.ignored, t)
}

// ignoredMethod reports whether name is in the method set of an ignored type.
func (cfg *describeConfig) ignoredMethod(name string) bool {
	for _, it := range cfg.ignored {
		if _, ok := reflect.PointerTo(it).MethodByName(name); ok {
			return true
		}
	}
	return false
}

// Describe builds the TypeSpec for the struct type t, or the struct t points to.
func Describe(t reflect.Type, opts ...Option) (domain.TypeSpec, error) {
	var cfg describeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if t == nil {
		return domain.TypeSpec{}, zerr.Wrap(domain.ErrNotStruct, "cannot describe nil type")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return domain.TypeSpec{}, zerr.With(zerr.Wrap(domain.ErrNotStruct, "cannot describe type"), "type", TypeName(t))
	}

	b := domain.Describe(TypeName(t))
	known := make(map[string]struct{})

	for _, f := range reflect.VisibleFields(t) {
		if cfg.throughIgnored(t, f.Index) {
			continue
		}
		markers, err := fieldMarkers(t, f)
		if err != nil {
			return domain.TypeSpec{}, err
		}
		b.Property(f.Name, markers...)
		known[f.Name] = struct{}{}
	}

	ptr := reflect.PointerTo(t)
	for i := range ptr.NumMethod() {
		m := ptr.Method(i)
		if m.Name == "PropertyMarkers" || !isGetter(m.Type) || cfg.ignoredMethod(m.Name) {
			continue
		}
		b.Property(m.Name)
		known[m.Name] = struct{}{}
	}

	if ptr.Implements(markerProviderType) {
		provider, _ := reflect.New(t).Interface().(MarkerProvider)
		declared := provider.PropertyMarkers()
		for _, p := range declared {
			if _, ok := known[p.Name.String()]; !ok {
				return domain.TypeSpec{}, domain.NewMissingMemberError(TypeName(t), p.Name.String())
			}
		}
		b.Merge(declared...)
	}

	return b.Spec(), nil
}

// throughIgnored reports whether the field at index is, or is reached through, an ignored type.
func (cfg *describeConfig) throughIgnored(t reflect.Type, index []int) bool {
	if len(cfg.ignored) == 0 {
		return false
	}
	for i := range index {
		if cfg.isIgnored(t.FieldByIndex(index[:i+1]).Type) {
			return true
		}
	}
	return false
}

// isGetter reports whether a method type (receiver first) takes no arguments and returns one value.
func isGetter(mt reflect.Type) bool {
	return mt.NumIn() == 1 && mt.NumOut() == 1
}

func fieldMarkers(t reflect.Type, f reflect.StructField) ([]domain.Marker, error) {
	var markers []domain.Marker

	if value, ok := f.Tag.Lookup(NotifiesTag); ok {
		names, err := parseTag(t, f, NotifiesTag, value)
		if err != nil {
			return nil, err
		}
		markers = append(markers, domain.Notifies(names...))
	}

	if value, ok := f.Tag.Lookup(NotifiedByTag); ok {
		names, err := parseTag(t, f, NotifiedByTag, value)
		if err != nil {
			return nil, err
		}
		markers = append(markers, domain.NotifiedBy(names...))
	}

	return markers, nil
}

func parseTag(t reflect.Type, f reflect.StructField, key, value string) ([]string, error) {
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidTag, "empty property name in tag"), "type", TypeName(t))
			err = zerr.With(err, "field", f.Name)
			return nil, zerr.With(err, "tag", key+":"+value)
		}
		names = append(names, name)
	}
	return names, nil
}
