package autoconstructor

import (
	"fmt"
	"testing"
)

var (
	tInt      = &Type{Name: "int", Key: "System.Int32", Kind: KindValue}
	tDouble   = &Type{Name: "double", Key: "System.Double", Kind: KindValue}
	tString   = &Type{Name: "string", Key: "System.String", Kind: KindReference}
	tObject   = &Type{Name: "object", Key: "System.Object", Kind: KindReference}
	tGuid     = &Type{Name: "System.Guid", Key: "System.Guid", Kind: KindValue}
	tDateTime = &Type{Name: "System.DateTime", Key: "System.DateTime", Kind: KindValue}
)

func annotated(t *Type) *Type {
	c := *t
	c.Annotated = true
	return &c
}

func ref(name string, args ...*Type) *Type {
	key := name
	if len(args) > 0 {
		key = fmt.Sprintf("%s`%d", name, len(args))
	}
	return &Type{Name: name, Key: key, Kind: KindReference, Args: args}
}

func arrayOf(elem *Type) *Type {
	return &Type{Kind: KindArray, Elem: elem}
}

// refTo references decl instantiated with args.
func refTo(decl *TypeDecl, args ...*Type) *Type {
	t := &Type{Name: decl.FullName(), Key: decl.Key(), Kind: KindReference, Args: args}
	if decl.Kind.IsValue() {
		t.Kind = KindValue
	}
	return t
}

func readonly(name string, t *Type) Member {
	return Member{Name: name, Type: t, ReadOnly: true}
}

func property(name string, t *Type) Member {
	return Member{Name: name, Type: t, ReadOnly: true, Property: true}
}

func withOverride(m Member, o Override) Member {
	m.Override = o
	return m
}

// annotatedDecl declares a partial auto-constructed class in namespace "Test".
func annotatedDecl(name string, members ...Member) *TypeDecl {
	return &TypeDecl{
		Name:            name,
		Namespace:       "Test",
		Kind:            DeclClass,
		Partial:         true,
		Fragments:       []Fragment{{Location: name + ".cs:1", Members: members}},
		AutoConstructor: &AutoConstructor{},
	}
}

// plainDecl declares a class with explicit constructors in namespace "Test".
func plainDecl(name string, constructors ...DeclaredConstructor) *TypeDecl {
	return &TypeDecl{
		Name:         name,
		Namespace:    "Test",
		Kind:         DeclClass,
		Constructors: constructors,
	}
}

func ctor(params ...Parameter) DeclaredConstructor {
	return DeclaredConstructor{Params: params}
}

func param(name string, t *Type) Parameter {
	return Parameter{Name: name, Type: t}
}

func derive(decl *TypeDecl, base *TypeDecl, args ...*Type) *TypeDecl {
	decl.Base = refTo(base, args...)
	return decl
}

func mustCompilation(t *testing.T, types ...*TypeDecl) *Compilation {
	t.Helper()

	c, err := NewCompilation(types...)
	if err != nil {
		t.Fatalf("NewCompilation() error = %v", err)
	}
	return c
}

func mustResolve(t *testing.T, c *Compilation, opts Options, decl *TypeDecl) *Resolution {
	t.Helper()

	res, err := NewResolver(c, opts).Resolve(decl)
	if err != nil {
		t.Fatalf("Resolve(%s) error = %v", decl.Name, err)
	}
	return res
}

func parameterNames(descriptors []Descriptor) []string {
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, d.ParameterName)
	}
	return names
}

// signature renders "name type" pairs of a constructor.
func signature(c *Constructor) []string {
	parts := make([]string, 0, len(c.Params))
	for _, p := range c.Params {
		parts = append(parts, p.Type.String()+" "+p.Name)
	}
	return parts
}
