package domain

import "unique"

// PropertyName is the interned name of a property, scoped to a single type.
// The zero value means "unspecified" and never names a real property.
type PropertyName struct {
	h unique.Handle[string]
}

// NewPropertyName interns s as a PropertyName.
// The empty string yields the zero (unspecified) PropertyName.
func NewPropertyName(s string) PropertyName {
	if s == "" {
		return PropertyName{}
	}
	return PropertyName{
		h: unique.Make(s),
	}
}

// NewPropertyNames interns every string in names, preserving order.
func NewPropertyNames(names []string) []PropertyName {
	res := make([]PropertyName, len(names))
	for i, s := range names {
		res[i] = NewPropertyName(s)
	}
	return res
}

// IsZero reports whether the name is unspecified.
func (n PropertyName) IsZero() bool {
	var zero unique.Handle[string]
	return n.h == zero
}

// String returns the underlying string value.
func (n PropertyName) String() string {
	if n.IsZero() {
		return ""
	}
	return n.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (n PropertyName) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *PropertyName) UnmarshalText(text []byte) error {
	*n = NewPropertyName(string(text))
	return nil
}

func propertyStrings(names []PropertyName) []string {
	res := make([]string, len(names))
	for i, n := range names {
		res[i] = n.String()
	}
	return res
}
