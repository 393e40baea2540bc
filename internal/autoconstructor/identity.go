package autoconstructor

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

const (
	generatedSuffix  = ".g.cs"
	serializerSuffix = ".ser.g.cs"
)

// OutputName names the artifact generated for decl:
// [namespace.][containers.]Name[.TypeParam...].g.cs
func OutputName(decl *TypeDecl, serializer bool) string {
	var sb strings.Builder
	if decl.Namespace != "" {
		sb.WriteString(decl.Namespace)
		sb.WriteString(".")
	}
	for _, c := range decl.Containers {
		sb.WriteString(c.Name)
		sb.WriteString(".")
	}
	sb.WriteString(decl.Name)
	for _, tp := range decl.TypeParams {
		sb.WriteString(".")
		sb.WriteString(tp.Name)
	}

	if serializer {
		sb.WriteString(serializerSuffix)
	} else {
		sb.WriteString(generatedSuffix)
	}
	return sb.String()
}

// disambiguate rewrites colliding identities in place. Within a collision
// group the constructor whose declaration key sorts first keeps the name and
// the others get ".2", ".3", ... before the suffix.
func disambiguate(constructors []*Constructor) {
	groups := make(map[string][]*Constructor)
	var names []string
	for _, c := range constructors {
		if _, ok := groups[c.Identity]; !ok {
			names = append(names, c.Identity)
		}
		groups[c.Identity] = append(groups[c.Identity], c)
	}

	taken := make(map[string]bool, len(constructors))
	for _, c := range constructors {
		taken[c.Identity] = true
	}

	for _, name := range names {
		group := groups[name]
		if len(group) < 2 {
			continue
		}

		slices.SortFunc(group, func(a, b *Constructor) int {
			return cmp.Compare(a.Decl.Key(), b.Decl.Key())
		})

		n := 2
		for _, c := range group[1:] {
			suffix := generatedSuffix
			if c.Serializer {
				suffix = serializerSuffix
			}
			stem := strings.TrimSuffix(name, suffix)

			candidate := fmt.Sprintf("%s.%d%s", stem, n, suffix)
			for taken[candidate] {
				n++
				candidate = fmt.Sprintf("%s.%d%s", stem, n, suffix)
			}
			taken[candidate] = true
			c.Identity = candidate
			n++
		}
	}
}
