package manifest

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/DomasM/AutoConstructor/internal/autoconstructor"
)

// builtin maps a C# keyword to its runtime type.
type builtin struct {
	key   string
	value bool
}

var builtins = map[string]builtin{
	"bool":    {"System.Boolean", true},
	"byte":    {"System.Byte", true},
	"sbyte":   {"System.SByte", true},
	"char":    {"System.Char", true},
	"decimal": {"System.Decimal", true},
	"double":  {"System.Double", true},
	"float":   {"System.Single", true},
	"int":     {"System.Int32", true},
	"uint":    {"System.UInt32", true},
	"nint":    {"System.IntPtr", true},
	"nuint":   {"System.UIntPtr", true},
	"long":    {"System.Int64", true},
	"ulong":   {"System.UInt64", true},
	"short":   {"System.Int16", true},
	"ushort":  {"System.UInt16", true},
	"object":  {"System.Object", false},
	"string":  {"System.String", false},
}

// wellKnownValueTypes are external value types recognized without configuration.
var wellKnownValueTypes = []string{
	"System.DateOnly",
	"System.DateTime",
	"System.DateTimeOffset",
	"System.Guid",
	"System.Nullable",
	"System.TimeOnly",
	"System.TimeSpan",
	"System.ValueTuple",
}

var accessibilities = []string{
	"public",
	"internal",
	"protected",
	"private",
	"protected internal",
	"private protected",
}

// Build resolves the declarations of the documents into a compilation.
// Declarations may reference each other across documents.
func Build(docs ...Document) (*autoconstructor.Compilation, error) {
	b := &builder{
		valueTypes: make(map[string]bool),
		byName:     make(map[string]*autoconstructor.TypeDecl),
	}
	for _, name := range wellKnownValueTypes {
		b.valueTypes[name] = true
	}
	for _, v := range builtins {
		if v.value {
			b.valueTypes[v.key] = true
		}
	}

	type pending struct {
		source string
		spec   *TypeSpec
		decl   *autoconstructor.TypeDecl
	}

	var all []pending
	for _, doc := range docs {
		for _, name := range doc.ValueTypes {
			b.valueTypes[name] = true
		}
		for i := range doc.Types {
			spec := &doc.Types[i]
			decl, err := declare(spec)
			if err != nil {
				return nil, &Error{Source: doc.Source, Type: spec.Name, Err: err}
			}
			all = append(all, pending{source: doc.Source, spec: spec, decl: decl})

			name := arityKey(decl.FullName(), len(decl.TypeParams))
			if _, ok := b.byName[name]; !ok {
				b.byName[name] = decl
			}
		}
	}

	types := make([]*autoconstructor.TypeDecl, 0, len(all))
	for _, p := range all {
		s := &scope{builder: b, decl: p.decl}
		if err := s.complete(p.source, p.spec); err != nil {
			return nil, &Error{Source: p.source, Type: p.decl.FullName(), Err: err}
		}
		types = append(types, p.decl)
	}

	return autoconstructor.NewCompilation(types...)
}

type builder struct {
	valueTypes map[string]bool
	// byName indexes declarations by dotted full name and arity.
	byName map[string]*autoconstructor.TypeDecl
}

func arityKey(name string, arity int) string {
	return fmt.Sprintf("%s`%d", name, arity)
}

// declare builds the skeleton of a declaration: everything that does not
// reference other types.
func declare(spec *TypeSpec) (*autoconstructor.TypeDecl, error) {
	if err := checkIdent(spec.Name); err != nil {
		return nil, err
	}

	kind, err := parseKind(spec.Kind)
	if err != nil {
		return nil, err
	}

	typeParams, err := parseTypeParams(spec.TypeParams)
	if err != nil {
		return nil, err
	}

	decl := &autoconstructor.TypeDecl{
		Name:                  spec.Name,
		Namespace:             spec.Namespace,
		Kind:                  kind,
		Partial:               spec.Partial,
		TypeParams:            typeParams,
		SerializerConstructor: spec.SerializerConstructor,
		InitializerMethod:     spec.InitializerMethod,
	}

	if spec.Namespace != "" {
		for _, part := range strings.Split(spec.Namespace, ".") {
			if err := checkIdent(part); err != nil {
				return nil, fmt.Errorf("namespace: %w", err)
			}
		}
	}

	for _, c := range spec.Containing {
		if err := checkIdent(c.Name); err != nil {
			return nil, fmt.Errorf("containing type: %w", err)
		}
		kind, err := parseKind(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("containing type %s: %w", c.Name, err)
		}
		typeParams, err := parseTypeParams(c.TypeParams)
		if err != nil {
			return nil, fmt.Errorf("containing type %s: %w", c.Name, err)
		}
		decl.Containers = append(decl.Containers, autoconstructor.Container{
			Name:       c.Name,
			Kind:       kind,
			TypeParams: typeParams,
		})
	}

	if spec.AutoConstructor.Enabled {
		accessibility := spec.AutoConstructor.Value.Accessibility
		if accessibility != "" && !slices.Contains(accessibilities, accessibility) {
			return nil, fmt.Errorf("invalid accessibility %q", accessibility)
		}
		decl.AutoConstructor = &autoconstructor.AutoConstructor{Accessibility: accessibility}
	}

	if spec.InitializerMethod != "" {
		if err := checkIdent(spec.InitializerMethod); err != nil {
			return nil, fmt.Errorf("initializer method: %w", err)
		}
	}

	for _, f := range spec.Fragments {
		if f.Partial {
			decl.Partial = true
		}
	}

	return decl, nil
}

func parseKind(s string) (autoconstructor.DeclKind, error) {
	switch kind := autoconstructor.DeclKind(s); kind {
	case "":
		return autoconstructor.DeclClass, nil
	case autoconstructor.DeclClass, autoconstructor.DeclRecord, autoconstructor.DeclStruct, autoconstructor.DeclInterface:
		return kind, nil
	default:
		return "", fmt.Errorf("invalid kind %q", s)
	}
}

func parseTypeParams(specs []TypeParamSpec) ([]autoconstructor.TypeParam, error) {
	var params []autoconstructor.TypeParam
	for _, tp := range specs {
		if err := checkIdent(tp.Name); err != nil {
			return nil, fmt.Errorf("type parameter: %w", err)
		}
		if slices.ContainsFunc(params, func(p autoconstructor.TypeParam) bool { return p.Name == tp.Name }) {
			return nil, fmt.Errorf("duplicate type parameter %s", tp.Name)
		}

		var constraint autoconstructor.Constraint
		switch tp.Constraint {
		case "":
			constraint = autoconstructor.ConstraintNone
		case "class":
			constraint = autoconstructor.ConstraintClass
		case "struct":
			constraint = autoconstructor.ConstraintStruct
		default:
			return nil, fmt.Errorf("type parameter %s: invalid constraint %q", tp.Name, tp.Constraint)
		}

		params = append(params, autoconstructor.TypeParam{Name: tp.Name, Constraint: constraint})
	}
	return params, nil
}

var errEmptyIdent = errors.New("empty identifier")

func checkIdent(s string) error {
	if s == "" {
		return errEmptyIdent
	}
	p := &exprParser{src: s}
	if p.parseIdent() != s {
		return fmt.Errorf("invalid identifier %q", s)
	}
	return nil
}

// scope resolves the type references made inside one declaration.
type scope struct {
	*builder
	decl *autoconstructor.TypeDecl
}

// complete resolves base, constructors and members of the declaration.
func (s *scope) complete(source string, spec *TypeSpec) error {
	decl := s.decl

	if spec.Base != "" {
		base, err := s.resolve(spec.Base)
		if err != nil {
			return fmt.Errorf("base: %w", err)
		}
		switch {
		case base.Kind != autoconstructor.KindReference && base.Kind != autoconstructor.KindValue:
			return fmt.Errorf("base: %s cannot be inherited", base)
		case base.Key == "System.Object" || decl.Kind.IsValue():
			// implicit root, no constructor to chain to
		default:
			decl.Base = base
		}
	}

	for i, c := range spec.Constructors {
		ctor := autoconstructor.DeclaredConstructor{
			Static:   c.Static,
			Implicit: c.Implicit,
		}
		for _, p := range c.Params {
			if err := checkIdent(p.Name); err != nil {
				return fmt.Errorf("constructor %d: %w", i, err)
			}
			t, err := s.resolve(p.Type)
			if err != nil {
				return fmt.Errorf("constructor %d: parameter %s: %w", i, p.Name, err)
			}
			ctor.Params = append(ctor.Params, autoconstructor.Parameter{Name: p.Name, Type: t})
		}
		decl.Constructors = append(decl.Constructors, ctor)
	}

	if decl.Kind == autoconstructor.DeclRecord {
		decl.Constructors = append(decl.Constructors, autoconstructor.DeclaredConstructor{
			Params:   []autoconstructor.Parameter{{Name: "original", Type: decl.Self()}},
			Implicit: true,
		})
	}

	if len(spec.Members) > 0 || len(spec.Fragments) == 0 {
		fragment, err := s.fragment(location(spec.Location, source, spec.line), spec.Members)
		if err != nil {
			return err
		}
		decl.Fragments = append(decl.Fragments, fragment)
	}
	for _, f := range spec.Fragments {
		fragment, err := s.fragment(location(f.Location, source, f.line), f.Members)
		if err != nil {
			return err
		}
		decl.Fragments = append(decl.Fragments, fragment)
	}

	return nil
}

func location(explicit, source string, line int) string {
	if explicit != "" {
		return explicit
	}
	if line > 0 {
		return fmt.Sprintf("%s:%d", source, line)
	}
	return source
}

func (s *scope) fragment(loc string, specs []MemberSpec) (autoconstructor.Fragment, error) {
	fragment := autoconstructor.Fragment{Location: loc}
	for _, spec := range specs {
		m, err := s.member(spec)
		if err != nil {
			return fragment, fmt.Errorf("member %s: %w", spec.Name, err)
		}
		fragment.Members = append(fragment.Members, m)
	}
	return fragment, nil
}

func (s *scope) member(spec MemberSpec) (autoconstructor.Member, error) {
	if err := checkIdent(spec.Name); err != nil {
		return autoconstructor.Member{}, err
	}

	t, err := s.resolve(spec.Type)
	if err != nil {
		return autoconstructor.Member{}, err
	}

	summary := spec.Summary
	if summary == "" {
		summary, err = summaryOf(spec.Doc)
		if err != nil {
			return autoconstructor.Member{}, err
		}
	}

	m := autoconstructor.Member{
		Name:        spec.Name,
		Type:        t,
		Property:    spec.Property,
		ReadOnly:    spec.ReadOnly,
		Static:      spec.Static,
		Initialized: spec.Initialized,
		Summary:     summary,
	}

	switch {
	case spec.Ignore && spec.Inject.Enabled:
		return autoconstructor.Member{}, errors.New("ignore and inject are exclusive")
	case spec.Ignore:
		m.Override = autoconstructor.Ignore{}
	case spec.Inject.Enabled:
		inject := autoconstructor.Inject{
			Initializer:   spec.Inject.Value.Initializer,
			ParameterName: spec.Inject.Value.ParameterName,
		}
		if inject.ParameterName != "" {
			if err := checkIdent(inject.ParameterName); err != nil {
				return autoconstructor.Member{}, fmt.Errorf("parameter name: %w", err)
			}
		}
		if spec.Inject.Value.InjectedType != "" {
			inject.InjectedType, err = s.resolve(spec.Inject.Value.InjectedType)
			if err != nil {
				return autoconstructor.Member{}, fmt.Errorf("injected type: %w", err)
			}
		}
		m.Override = inject
	}

	return m, nil
}

// resolve parses and resolves a type expression written inside the declaration.
func (s *scope) resolve(src string) (*autoconstructor.Type, error) {
	if strings.TrimSpace(src) == "" {
		return nil, errors.New("missing type")
	}

	e, err := parseTypeExpr(src)
	if err != nil {
		return nil, err
	}
	return s.resolveExpr(e)
}

func (s *scope) resolveExpr(e *typeExpr) (*autoconstructor.Type, error) {
	if e.elem != nil {
		elem, err := s.resolveExpr(e.elem)
		if err != nil {
			return nil, err
		}
		return &autoconstructor.Type{Kind: autoconstructor.KindArray, Elem: elem, Annotated: e.nullable}, nil
	}

	args := make([]*autoconstructor.Type, 0, len(e.args))
	for _, arg := range e.args {
		t, err := s.resolveExpr(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, t)
	}
	if len(args) == 0 {
		args = nil
	}

	if args == nil && !e.dotted() {
		if t, ok := s.typeParam(e.name); ok {
			t.Annotated = e.nullable
			return t, nil
		}
	}

	if decl, ok := s.declared(e.name, len(args)); ok {
		kind := autoconstructor.KindReference
		if decl.Kind.IsValue() {
			kind = autoconstructor.KindValue
		}
		return &autoconstructor.Type{
			Name:      decl.FullName(),
			Key:       decl.Key(),
			Kind:      kind,
			Args:      args,
			Annotated: e.nullable,
		}, nil
	}

	if b, ok := builtins[e.name]; ok && args == nil {
		kind := autoconstructor.KindReference
		if b.value {
			kind = autoconstructor.KindValue
		}
		return &autoconstructor.Type{
			Name:      e.name,
			Key:       b.key,
			Kind:      kind,
			Annotated: e.nullable,
		}, nil
	}

	kind := autoconstructor.KindReference
	if s.valueTypes[e.name] {
		kind = autoconstructor.KindValue
	}
	key := e.name
	if args != nil {
		key = arityKey(e.name, len(args))
	}
	return &autoconstructor.Type{
		Name:      e.name,
		Key:       key,
		Kind:      kind,
		Args:      args,
		Annotated: e.nullable,
	}, nil
}

// typeParam finds a type parameter of the declaration or of an enclosing
// type, innermost first.
func (s *scope) typeParam(name string) (*autoconstructor.Type, bool) {
	decl := s.decl
	for _, tp := range decl.TypeParams {
		if tp.Name == name {
			return typeParamRef(tp, decl.TypeParamKey(name)), true
		}
	}
	for i := len(decl.Containers) - 1; i >= 0; i-- {
		for _, tp := range decl.Containers[i].TypeParams {
			if tp.Name == name {
				return typeParamRef(tp, decl.ContainerKey(i)+"!"+name), true
			}
		}
	}
	return nil, false
}

func typeParamRef(tp autoconstructor.TypeParam, key string) *autoconstructor.Type {
	return &autoconstructor.Type{
		Name:       tp.Name,
		Key:        key,
		Kind:       autoconstructor.KindTypeParameter,
		Constraint: tp.Constraint,
	}
}

// declared looks a name up from the innermost enclosing scope outwards:
// nested types of the declaration, of its containers, then each namespace
// level and finally the global namespace.
func (s *scope) declared(name string, arity int) (*autoconstructor.TypeDecl, bool) {
	for _, prefix := range s.prefixes() {
		candidate := name
		if prefix != "" {
			candidate = prefix + "." + name
		}
		if decl, ok := s.byName[arityKey(candidate, arity)]; ok {
			return decl, true
		}
	}
	return nil, false
}

func (s *scope) prefixes() []string {
	decl := s.decl
	prefixes := []string{decl.FullName()}

	for i := len(decl.Containers) - 1; i >= 0; i-- {
		parts := make([]string, 0, i+2)
		if decl.Namespace != "" {
			parts = append(parts, decl.Namespace)
		}
		for _, c := range decl.Containers[:i+1] {
			parts = append(parts, c.Name)
		}
		prefixes = append(prefixes, strings.Join(parts, "."))
	}

	for ns := decl.Namespace; ns != ""; {
		prefixes = append(prefixes, ns)
		i := strings.LastIndex(ns, ".")
		if i < 0 {
			break
		}
		ns = ns[:i]
	}

	return append(prefixes, "")
}
