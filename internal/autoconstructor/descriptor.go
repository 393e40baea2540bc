package autoconstructor

import "strings"

// Role records how a descriptor is consumed by the generated constructor.
type Role uint8

const (
	// RoleInitialized assigns the member in the generated constructor.
	RoleInitialized Role = 1 << iota
	// RolePassedToBase forwards the parameter to the base constructor.
	RolePassedToBase
)

// Has reports whether all bits of r2 are set in r.
func (r Role) Has(r2 Role) bool {
	return r&r2 == r2
}

func (r Role) String() string {
	var parts []string
	if r.Has(RoleInitialized) {
		parts = append(parts, "initialized")
	}
	if r.Has(RolePassedToBase) {
		parts = append(parts, "passed-to-base")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Descriptor is one constructor input.
type Descriptor struct {
	// InjectedType is the parameter type requested by an override, or nil.
	InjectedType  *Type
	ParameterName string
	// MemberName is empty for entries that are only forwarded.
	MemberName  string
	Initializer string
	// DeclaredType is the member's own type, used when InjectedType is nil.
	DeclaredType *Type
	Nullable     bool
	Summary      string
	NullCheck    bool
	Role         Role
	// BaseType is the type the base constructor expects for this parameter.
	BaseType *Type
}

// ParameterType returns the type the descriptor contributes to the signature.
func (d *Descriptor) ParameterType() *Type {
	if d.InjectedType != nil {
		return d.InjectedType
	}
	return d.DeclaredType
}

// baseParam is a parameter required by a base constructor.
type baseParam struct {
	Name string
	// Type is nil when a synthesized base leaves the parameter type to Fallback.
	Type     *Type
	Fallback *Type
}

func (p baseParam) effective() *Type {
	if p.Type != nil {
		return p.Type
	}
	return p.Fallback
}
