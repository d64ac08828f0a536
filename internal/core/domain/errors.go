package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrMissingMember is returned when a marker references a name that is not a property of the type.
	ErrMissingMember = zerr.New("missing member")

	// ErrCircularPropertyReference is returned when the declared notifications form a cycle.
	ErrCircularPropertyReference = zerr.New("circular property reference")

	// ErrUnknownType is returned when a requested type is not declared in the configuration.
	ErrUnknownType = zerr.New("unknown type")

	// ErrUnknownProperty is returned when a requested property is not declared on the type.
	ErrUnknownProperty = zerr.New("unknown property")

	// ErrNotStruct is returned when a declaration source is asked to describe a non-struct type.
	ErrNotStruct = zerr.New("type is not a struct")

	// ErrInvalidTag is returned when a notification struct tag cannot be parsed.
	ErrInvalidTag = zerr.New("invalid notification tag")

	// ErrCheckFailed is returned when one or more types fail validation.
	ErrCheckFailed = zerr.New("declaration check failed")
)

// MissingMemberError reports a marker that references a name which is not a property of Type.
type MissingMemberError struct {
	Type   string
	Member string
}

// Error implements the error interface.
func (e *MissingMemberError) Error() string {
	return fmt.Sprintf("member '%s.%s' not found", e.Type, e.Member)
}

// NewMissingMemberError returns a MissingMemberError carrying type and member metadata.
func NewMissingMemberError(typeName, member string) error {
	err := zerr.With(&MissingMemberError{Type: typeName, Member: member}, "type", typeName)
	return zerr.With(err, "member", member)
}

// Is matches ErrMissingMember.
func (e *MissingMemberError) Is(target error) bool {
	return target == ErrMissingMember
}

// CircularReferenceError reports a cycle in the declared notifications of Type.
// Chain lists only the properties on the cycle, starting with the one the closing edge
// points back to. Properties walked before the cycle is entered are left out, so
// W -> X -> Y -> X reports [X Y] rather than the whole search path [W X Y].
type CircularReferenceError struct {
	Type  string
	Chain []string
}

// Error implements the error interface.
func (e *CircularReferenceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "circular property reference detected in the type (%s).\n", e.Type)
	for _, node := range e.Chain {
		b.WriteString(node)
		b.WriteString(" -> ")
	}
	if len(e.Chain) > 0 {
		b.WriteString(e.Chain[0])
		b.WriteByte('.')
	}
	return b.String()
}

// Is matches ErrCircularPropertyReference.
func (e *CircularReferenceError) Is(target error) bool {
	return target == ErrCircularPropertyReference
}
