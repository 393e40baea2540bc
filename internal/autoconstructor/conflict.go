package autoconstructor

import "slices"

// DetectConflicts groups descriptors by parameter name and reports every name
// whose members disagree on the parameter type. It returns nil or a
// *ConflictError covering all fragments of decl.
func DetectConflicts(decl *TypeDecl, descriptors []Descriptor) error {
	var conflicts []ParameterConflict
	for _, group := range groupByParameter(descriptors) {
		if types, ok := conflictingTypes(group); ok {
			conflicts = append(conflicts, ParameterConflict{
				Parameter: group[0].ParameterName,
				Types:     types,
			})
		}
	}

	if len(conflicts) == 0 {
		return nil
	}

	fragments := decl.Locations()
	if len(fragments) == 0 {
		fragments = []string{decl.FullName()}
	}

	return &ConflictError{
		Type:      decl.FullName(),
		Fragments: fragments,
		Conflicts: conflicts,
	}
}

// groupByParameter groups descriptors by parameter name, ordered by first occurrence.
func groupByParameter(descriptors []Descriptor) [][]*Descriptor {
	index := make(map[string]int)
	var groups [][]*Descriptor
	for i := range descriptors {
		d := &descriptors[i]
		gi, ok := index[d.ParameterName]
		if !ok {
			gi = len(groups)
			index[d.ParameterName] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], d)
	}
	return groups
}

// conflictingTypes returns the sorted display names of the distinct types of
// a group when they are incompatible.
func conflictingTypes(group []*Descriptor) ([]string, bool) {
	explicit := distinct(group, func(d *Descriptor) *Type { return d.InjectedType })

	var candidates map[string]*Type
	switch {
	case len(explicit) > 1:
		candidates = explicit
	case len(explicit) == 0:
		if fallback := distinct(group, func(d *Descriptor) *Type { return d.DeclaredType }); len(fallback) > 1 {
			candidates = fallback
		}
	}

	if candidates == nil {
		effective := parameterType(group)
		for _, d := range group {
			if d.Role.Has(RolePassedToBase) && d.BaseType != nil && !Identical(d.BaseType, effective) {
				candidates = map[string]*Type{
					effective.Identity():  effective,
					d.BaseType.Identity(): d.BaseType,
				}
				break
			}
		}
	}

	if candidates == nil {
		return nil, false
	}

	names := make([]string, 0, len(candidates))
	for _, t := range candidates {
		names = append(names, t.String())
	}
	slices.Sort(names)
	return names, true
}

func distinct(group []*Descriptor, typeOf func(*Descriptor) *Type) map[string]*Type {
	set := make(map[string]*Type)
	for _, d := range group {
		if t := typeOf(d); t != nil {
			set[t.Identity()] = t
		}
	}
	return set
}

// parameterType is the type a group contributes to the signature: the first
// explicitly injected type, else the first declared type.
func parameterType(group []*Descriptor) *Type {
	for _, d := range group {
		if d.InjectedType != nil {
			return d.InjectedType
		}
	}
	return group[0].DeclaredType
}
