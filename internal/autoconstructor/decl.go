package autoconstructor

import (
	"fmt"
	"strings"
)

// DeclKind is the declaration keyword of a type.
type DeclKind string

const (
	DeclClass     DeclKind = "class"
	DeclRecord    DeclKind = "record"
	DeclStruct    DeclKind = "struct"
	DeclInterface DeclKind = "interface"
)

// word is the kind used in documentation and declarations.
func (k DeclKind) word() string {
	if k == "" {
		return string(DeclClass)
	}
	return string(k)
}

// IsValue reports whether declarations of this kind are value types.
func (k DeclKind) IsValue() bool {
	return k == DeclStruct
}

// TypeParam is a generic type parameter of a declaration.
type TypeParam struct {
	Name       string
	Constraint Constraint
}

// Container is an enclosing type of a nested declaration.
type Container struct {
	Name       string
	Kind       DeclKind
	TypeParams []TypeParam
}

// Override is the annotation attached to a member: nil, Ignore or Inject.
type Override interface {
	override()
}

// Ignore excludes a member from the generated constructor.
type Ignore struct{}

func (Ignore) override() {}

// Inject opts a member in and customizes its parameter.
// Empty strings and a nil InjectedType mean "not specified".
type Inject struct {
	Initializer   string
	ParameterName string
	InjectedType  *Type
}

func (Inject) override() {}

// Member is a field, or the backing field of a property, as declared.
type Member struct {
	Name string
	Type *Type
	// Property marks an auto-property; Name is the property name.
	Property bool
	ReadOnly bool
	Static   bool
	// Initialized marks members declared with a default value.
	Initialized bool
	Summary     string
	Override    Override
}

// Fragment is one syntactic part of a (partial) type declaration.
type Fragment struct {
	Location string
	Members  []Member
}

// Parameter is a declared constructor parameter.
type Parameter struct {
	Name string
	Type *Type
}

// DeclaredConstructor is a constructor that exists on a type.
type DeclaredConstructor struct {
	Params []Parameter
	Static bool
	// Implicit marks compiler-declared constructors.
	Implicit bool
}

// AutoConstructor is the annotation requesting constructor synthesis.
type AutoConstructor struct {
	// Accessibility of the generated constructor, "public" when empty.
	Accessibility string
}

// TypeDecl is a type declaration as supplied by the symbol layer.
type TypeDecl struct {
	Name       string
	Namespace  string
	Kind       DeclKind
	Partial    bool
	TypeParams []TypeParam
	// Containers lists enclosing types, outermost first.
	Containers   []Container
	Base         *Type
	Constructors []DeclaredConstructor
	Fragments    []Fragment

	// AutoConstructor is nil for types that are not annotated.
	AutoConstructor *AutoConstructor
	// SerializerConstructor requests a parameterless constructor.
	SerializerConstructor bool
	// InitializerMethod is called at the end of the generated constructor.
	InitializerMethod string
}

// Members returns the declared members of all fragments in declaration order.
func (d *TypeDecl) Members() []Member {
	var members []Member
	for _, fragment := range d.Fragments {
		members = append(members, fragment.Members...)
	}
	return members
}

// FullName is the dotted display name, e.g. "Nested.Outer.Inner".
func (d *TypeDecl) FullName() string {
	parts := make([]string, 0, len(d.Containers)+2)
	if d.Namespace != "" {
		parts = append(parts, d.Namespace)
	}
	for _, c := range d.Containers {
		parts = append(parts, c.Name)
	}
	parts = append(parts, d.Name)
	return strings.Join(parts, ".")
}

// ContainerKey returns the definition key of the i-th enclosing type.
func (d *TypeDecl) ContainerKey(i int) string {
	var sb strings.Builder
	if d.Namespace != "" {
		sb.WriteString(d.Namespace)
		sb.WriteString(".")
	}
	for j, c := range d.Containers[:i+1] {
		if j > 0 {
			sb.WriteString("+")
		}
		sb.WriteString(arityName(c.Name, len(c.TypeParams)))
	}
	return sb.String()
}

// Key is the definition key: namespace-qualified, '+' between nesting levels
// and a `N arity suffix, so distinct declarations never share a key.
func (d *TypeDecl) Key() string {
	name := arityName(d.Name, len(d.TypeParams))
	if len(d.Containers) > 0 {
		return d.ContainerKey(len(d.Containers)-1) + "+" + name
	}
	if d.Namespace != "" {
		return d.Namespace + "." + name
	}
	return name
}

// TypeParamKey returns the key of the named type parameter declared by d.
func (d *TypeDecl) TypeParamKey(name string) string {
	return d.Key() + "!" + name
}

// Self returns the reference to d instantiated with its own type parameters.
func (d *TypeDecl) Self() *Type {
	kind := KindReference
	if d.Kind.IsValue() {
		kind = KindValue
	}

	self := &Type{
		Name: d.FullName(),
		Key:  d.Key(),
		Kind: kind,
	}
	for _, tp := range d.TypeParams {
		self.Args = append(self.Args, &Type{
			Name:       tp.Name,
			Key:        d.TypeParamKey(tp.Name),
			Kind:       KindTypeParameter,
			Constraint: tp.Constraint,
		})
	}
	return self
}

// substitution maps d's type parameters to the arguments of ref.
func (d *TypeDecl) substitution(ref *Type) map[string]*Type {
	if ref == nil || len(ref.Args) == 0 || len(ref.Args) != len(d.TypeParams) {
		return nil
	}

	mapping := make(map[string]*Type, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		mapping[d.TypeParamKey(tp.Name)] = ref.Args[i]
	}
	return mapping
}

// Locations returns the location of every fragment.
func (d *TypeDecl) Locations() []string {
	locations := make([]string, 0, len(d.Fragments))
	for _, fragment := range d.Fragments {
		locations = append(locations, fragment.Location)
	}
	return locations
}

func arityName(name string, arity int) string {
	if arity == 0 {
		return name
	}
	return fmt.Sprintf("%s`%d", name, arity)
}
