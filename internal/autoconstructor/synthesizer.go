package autoconstructor

const defaultAccessibility = "public"

// ConstructorParam is a parameter of a generated constructor.
type ConstructorParam struct {
	Name string `json:"name"`
	Type *Type  `json:"type"`
	Doc  string `json:"doc,omitempty"`
}

// Assignment initializes a member from a parameter expression.
type Assignment struct {
	Member string `json:"member"`
	Value  string `json:"value"`
	// Parameter is named by the null check error.
	Parameter string `json:"parameter"`
	NullCheck bool   `json:"nullCheck,omitempty"`
}

// Constructor describes a generated constructor, ready for emission.
type Constructor struct {
	Decl *TypeDecl `json:"-"`
	// Identity names the generated artifact; unique within a pass.
	Identity      string             `json:"identity"`
	Type          string             `json:"type"`
	Accessibility string             `json:"accessibility"`
	Summary       string             `json:"summary,omitempty"`
	Params        []ConstructorParam `json:"params"`
	Assignments   []Assignment       `json:"assignments"`
	BaseArgs      []string           `json:"baseArgs,omitempty"`
	// Initializer is a parameterless method called after the assignments.
	Initializer string `json:"initializer,omitempty"`
	// NullableContext is set when a parameter mentions a nullable reference type.
	NullableContext bool `json:"nullableContext,omitempty"`
	Serializer      bool `json:"serializer,omitempty"`
}

// Synthesize builds the constructor of decl from its validated resolution.
// It returns nil when there is nothing to inject.
func Synthesize(decl *TypeDecl, res *Resolution, opts Options) *Constructor {
	if len(res.Descriptors) == 0 {
		return nil
	}

	c := &Constructor{
		Decl:          decl,
		Identity:      OutputName(decl, false),
		Type:          decl.FullName(),
		Accessibility: accessibility(decl),
		Initializer:   decl.InitializerMethod,
		Params:        []ConstructorParam{},
		Assignments:   []Assignment{},
	}

	if opts.Documentation {
		c.Summary = opts.summary(decl.Name, decl.Kind)
	}

	for _, group := range groupByParameter(res.Descriptors) {
		param := ConstructorParam{
			Name: group[0].ParameterName,
			Type: parameterType(group),
		}
		for _, d := range group {
			if d.Summary != "" {
				param.Doc = d.Summary
				break
			}
		}
		if opts.Documentation && param.Doc == "" {
			param.Doc = param.Name
		}
		c.Params = append(c.Params, param)
	}

	for _, d := range res.Descriptors {
		if d.Nullable {
			c.NullableContext = true
		}
		if !d.Role.Has(RoleInitialized) {
			continue
		}
		c.Assignments = append(c.Assignments, Assignment{
			Member:    d.MemberName,
			Value:     d.Initializer,
			Parameter: d.ParameterName,
			NullCheck: d.NullCheck,
		})
	}

	if len(res.BaseArgs) > 0 {
		c.BaseArgs = append([]string(nil), res.BaseArgs...)
	}

	return c
}

// SynthesizeSerializer builds the parameterless constructor requested by the
// serializer marker. It reports false when decl already declares one.
func SynthesizeSerializer(decl *TypeDecl) (*Constructor, bool) {
	for _, c := range decl.Constructors {
		if !c.Static && !c.Implicit && len(c.Params) == 0 {
			return nil, false
		}
	}

	return &Constructor{
		Decl:          decl,
		Identity:      OutputName(decl, true),
		Type:          decl.FullName(),
		Accessibility: defaultAccessibility,
		Params:        []ConstructorParam{},
		Assignments:   []Assignment{},
		Serializer:    true,
	}, true
}

func accessibility(decl *TypeDecl) string {
	if decl.AutoConstructor != nil && decl.AutoConstructor.Accessibility != "" {
		return decl.AutoConstructor.Accessibility
	}
	return defaultAccessibility
}
