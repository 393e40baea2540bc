package autoconstructor

// IsNullable reports whether t is an annotated reference type or contains one
// as a type argument or array element, at any nesting depth.
func IsNullable(t *Type) bool {
	if t == nil {
		return false
	}

	if t.Annotated && t.IsReference() {
		return true
	}

	if t.Elem != nil && IsNullable(t.Elem) {
		return true
	}

	for _, arg := range t.Args {
		if IsNullable(arg) {
			return true
		}
	}

	return false
}

// RequiresNullCheck reports whether an argument of type t must be checked
// against null before it is assigned.
func RequiresNullCheck(t *Type, opts Options) bool {
	return opts.NullChecks && t != nil && t.IsReference() && !t.Annotated
}
