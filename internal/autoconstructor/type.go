// Package autoconstructor synthesizes constructors from declared members,
// override annotations and base-type constructor requirements.
package autoconstructor

import (
	"strings"
)

// TypeKind classifies a type reference.
type TypeKind uint8

const (
	KindReference TypeKind = iota
	KindValue
	KindTypeParameter
	KindArray
)

func (k TypeKind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindValue:
		return "value"
	case KindTypeParameter:
		return "type parameter"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Constraint is the reference/value constraint of a type parameter.
type Constraint uint8

const (
	ConstraintNone Constraint = iota
	ConstraintClass
	ConstraintStruct
)

// Type is a resolved type reference. Values are treated as immutable once built.
type Type struct {
	// Name is the display name without type arguments, e.g. "System.Guid" or "T".
	Name string
	// Key identifies the type definition ("System.Int32", "Test.Outer`1+Inner").
	// An empty Key falls back to Name.
	Key        string
	Kind       TypeKind
	Constraint Constraint
	Args       []*Type
	// Elem is the element type of an array.
	Elem *Type
	// Annotated reports a trailing '?'.
	Annotated bool
}

// IsReference reports whether values of t are references, the only types that
// can carry a nullable annotation without changing identity.
func (t *Type) IsReference() bool {
	switch t.Kind {
	case KindReference, KindArray:
		return true
	case KindTypeParameter:
		return t.Constraint == ConstraintClass
	default:
		return false
	}
}

func (t *Type) isValue() bool {
	return t.Kind == KindValue || (t.Kind == KindTypeParameter && t.Constraint == ConstraintStruct)
}

func (t *Type) key() string {
	if t.Key != "" {
		return t.Key
	}
	return t.Name
}

// Identity returns the canonical structural key of t. Two references denote
// the same type iff their identities are equal. Nullable annotations on
// reference types are not part of the identity; on value types they denote
// System.Nullable<T>.
func (t *Type) Identity() string {
	if t == nil {
		return ""
	}

	var sb strings.Builder
	t.writeIdentity(&sb)
	return sb.String()
}

func (t *Type) writeIdentity(sb *strings.Builder) {
	if t.Annotated && t.isValue() {
		sb.WriteString("System.Nullable`1[")
		defer sb.WriteString("]")
	}

	if t.Kind == KindArray {
		t.Elem.writeIdentity(sb)
		sb.WriteString("[]")
		return
	}

	sb.WriteString(t.key())
	if len(t.Args) == 0 {
		return
	}

	sb.WriteString("[")
	for i, arg := range t.Args {
		if i > 0 {
			sb.WriteString(",")
		}
		arg.writeIdentity(sb)
	}
	sb.WriteString("]")
}

// String renders t the way it is written in generated code.
func (t *Type) String() string {
	if t == nil {
		return ""
	}

	var sb strings.Builder
	t.writeDisplay(&sb)
	return sb.String()
}

func (t *Type) writeDisplay(sb *strings.Builder) {
	if t.Kind == KindArray {
		t.Elem.writeDisplay(sb)
		sb.WriteString("[]")
	} else {
		sb.WriteString(t.Name)
		if len(t.Args) > 0 {
			sb.WriteString("<")
			for i, arg := range t.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				arg.writeDisplay(sb)
			}
			sb.WriteString(">")
		}
	}

	if t.Annotated {
		sb.WriteString("?")
	}
}

// MarshalText renders the display form, so descriptions encode types as strings.
func (t *Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Identical reports whether a and b denote the same type.
func Identical(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Identity() == b.Identity()
}

// Substitute replaces type parameters, keyed by their Key, with the mapped
// types. t is returned unchanged when nothing is substituted.
func (t *Type) Substitute(mapping map[string]*Type) *Type {
	if t == nil || len(mapping) == 0 {
		return t
	}

	switch t.Kind {
	case KindTypeParameter:
		target, ok := mapping[t.key()]
		if !ok {
			return t
		}
		if t.Annotated && !target.Annotated && target.IsReference() {
			annotated := *target
			annotated.Annotated = true
			return &annotated
		}
		return target
	case KindArray:
		elem := t.Elem.Substitute(mapping)
		if elem == t.Elem {
			return t
		}
		substituted := *t
		substituted.Elem = elem
		return &substituted
	}

	var args []*Type
	for i, arg := range t.Args {
		sub := arg.Substitute(mapping)
		if sub != arg && args == nil {
			args = make([]*Type, len(t.Args))
			copy(args, t.Args[:i])
		}
		if args != nil {
			args[i] = sub
		}
	}
	if args == nil {
		return t
	}

	substituted := *t
	substituted.Args = args
	return &substituted
}
