package autoconstructor

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Resolution is the member list of a type merged with its base requirements.
type Resolution struct {
	Descriptors []Descriptor
	// BaseArgs are the forwarded parameter names in base constructor order.
	BaseArgs []string
}

// Resolver merges base constructor requirements into member lists. The
// required parameters of each base are computed once per instantiation and
// shared; a Resolver is safe for concurrent use.
type Resolver struct {
	compilation *Compilation
	opts        Options

	mu     sync.RWMutex
	cache  map[string][]baseParam
	flight singleflight.Group
}

// NewResolver creates a resolver over the declarations of a compilation.
func NewResolver(compilation *Compilation, opts Options) *Resolver {
	return &Resolver{
		compilation: compilation,
		opts:        opts,
		cache:       make(map[string][]baseParam),
	}
}

// Resolve collects the members of decl and merges the parameters required by
// its base constructor, transitively.
func (r *Resolver) Resolve(decl *TypeDecl) (*Resolution, error) {
	descriptors := CollectMembers(decl, r.opts)

	var params []baseParam
	if decl.Base != nil && !rootTypeKeys[decl.Base.key()] {
		var err error
		params, err = r.requiredParams(decl.Base)
		if err != nil {
			return nil, fmt.Errorf("resolve base of %s: %w", decl.FullName(), err)
		}
	}

	descriptors, baseArgs := merge(descriptors, params)
	return &Resolution{
		Descriptors: descriptors,
		BaseArgs:    baseArgs,
	}, nil
}

// merge marks existing descriptors as forwarded or appends forward-only ones.
func merge(descriptors []Descriptor, params []baseParam) ([]Descriptor, []string) {
	baseArgs := make([]string, 0, len(params))
	for _, p := range params {
		baseArgs = append(baseArgs, p.Name)

		if i := indexOfParameter(descriptors, p.Name); i >= 0 {
			descriptors[i].Role |= RolePassedToBase
			descriptors[i].BaseType = p.effective()
			continue
		}

		descriptors = append(descriptors, Descriptor{
			InjectedType:  p.Type,
			ParameterName: p.Name,
			DeclaredType:  p.Fallback,
			Nullable:      IsNullable(p.Fallback),
			Role:          RolePassedToBase,
			BaseType:      p.effective(),
		})
	}
	return descriptors, baseArgs
}

func indexOfParameter(descriptors []Descriptor, name string) int {
	for i := range descriptors {
		if descriptors[i].ParameterName == name {
			return i
		}
	}
	return -1
}

// requiredParams returns the parameters a derived type must pass to the
// single valid constructor of base, in constructor order.
func (r *Resolver) requiredParams(base *Type) ([]baseParam, error) {
	key := base.Identity()

	r.mu.RLock()
	params, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		slog.Debug("base requirements cache hit", "base", key)
		return params, nil
	}

	v, err, _ := r.flight.Do(key, func() (any, error) {
		params, err := r.computeRequiredParams(base)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[key] = params
		r.mu.Unlock()
		return params, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]baseParam), nil
}

func (r *Resolver) computeRequiredParams(base *Type) ([]baseParam, error) {
	decl, ok := r.compilation.Lookup(base)
	if !ok {
		return nil, &UnknownTypeError{Name: base.String()}
	}

	constructors := ValidConstructors(decl)
	if len(constructors) != 1 {
		slog.Debug("base constructor is ambiguous, nothing is forwarded",
			"base", decl.FullName(), "constructors", len(constructors))
		return nil, nil
	}

	mapping := decl.substitution(base)

	if decl.AutoConstructor == nil {
		declared := constructors[0].Params
		params := make([]baseParam, 0, len(declared))
		for _, p := range declared {
			t := p.Type.Substitute(mapping)
			params = appendParam(params, baseParam{Name: p.Name, Type: t, Fallback: t})
		}
		return params, nil
	}

	// The base is synthesized too: its generated constructor takes its own
	// members followed by what it forwards to its own base.
	own := CollectMembers(decl, r.opts)
	params := make([]baseParam, 0, len(own))
	for _, d := range own {
		params = appendParam(params, baseParam{
			Name:     d.ParameterName,
			Type:     d.InjectedType.Substitute(mapping),
			Fallback: d.DeclaredType.Substitute(mapping),
		})
	}

	if decl.Base == nil || rootTypeKeys[decl.Base.key()] {
		return params, nil
	}

	upper, err := r.requiredParams(decl.Base.Substitute(mapping))
	if err != nil {
		return nil, fmt.Errorf("resolve base of %s: %w", decl.FullName(), err)
	}
	for _, p := range upper {
		params = appendParam(params, p)
	}
	return params, nil
}

// appendParam keeps the first parameter of each name.
func appendParam(params []baseParam, p baseParam) []baseParam {
	for _, existing := range params {
		if existing.Name == p.Name {
			return params
		}
	}
	return append(params, p)
}

// ValidConstructors returns the instance constructors of decl that a derived
// type can chain to. The implicit copy constructor of records is excluded; a
// type without instance constructors has an implicit parameterless one.
func ValidConstructors(decl *TypeDecl) []DeclaredConstructor {
	self := decl.Self()

	var valid []DeclaredConstructor
	for _, c := range decl.Constructors {
		if c.Static {
			continue
		}
		if c.Implicit && len(c.Params) == 1 && Identical(c.Params[0].Type, self) {
			continue
		}
		valid = append(valid, c)
	}

	if len(valid) == 0 && decl.Kind != DeclInterface {
		valid = append(valid, DeclaredConstructor{Implicit: true})
	}
	return valid
}
