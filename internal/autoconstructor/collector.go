package autoconstructor

import (
	"github.com/DomasM/AutoConstructor/internal/pkg/strings"
)

// Injectable reports whether a member becomes a constructor input.
func Injectable(m Member) bool {
	if m.Static || m.Initialized {
		return false
	}

	switch m.Override.(type) {
	case Ignore, *Ignore:
		return false
	case Inject, *Inject:
		return true
	default:
		return m.ReadOnly
	}
}

// CollectMembers returns one descriptor per injectable member of decl, in
// declaration order. Base types are not consulted.
func CollectMembers(decl *TypeDecl, opts Options) []Descriptor {
	members := decl.Members()
	descriptors := make([]Descriptor, 0, len(members))
	for _, m := range members {
		if !Injectable(m) {
			continue
		}
		descriptors = append(descriptors, describe(m, opts))
	}
	return descriptors
}

func describe(m Member, opts Options) Descriptor {
	parameterName := strings.TrimUnderscores(m.Name)
	if m.Property {
		parameterName = strings.LowerFirst(m.Name)
	}

	d := Descriptor{
		InjectedType:  m.Type,
		ParameterName: parameterName,
		MemberName:    m.Name,
		Initializer:   parameterName,
		DeclaredType:  m.Type,
		Nullable:      IsNullable(m.Type),
		Summary:       m.Summary,
		NullCheck:     RequiresNullCheck(m.Type, opts),
		Role:          RoleInitialized,
	}

	if inject, ok := injectOf(m.Override); ok {
		if inject.ParameterName != "" {
			d.ParameterName = inject.ParameterName
			d.Initializer = inject.ParameterName
		}
		if inject.Initializer != "" {
			d.Initializer = inject.Initializer
		}
		d.InjectedType = inject.InjectedType
	}

	return d
}

func injectOf(o Override) (Inject, bool) {
	switch v := o.(type) {
	case Inject:
		return v, true
	case *Inject:
		if v != nil {
			return *v, true
		}
	}
	return Inject{}, false
}
