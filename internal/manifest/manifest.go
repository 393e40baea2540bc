// Package manifest loads type declarations from YAML manifests.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DomasM/AutoConstructor/internal/autoconstructor"
)

// Document is one YAML document of a manifest file.
type Document struct {
	// Source names the file the document was read from.
	Source string `yaml:"-"`
	// ValueTypes lists external type names that are value types.
	ValueTypes []string   `yaml:"value_types"`
	Types      []TypeSpec `yaml:"types"`
}

// TypeSpec declares one type.
type TypeSpec struct {
	Name                  string                      `yaml:"name"`
	Namespace             string                      `yaml:"namespace"`
	Kind                  string                      `yaml:"kind"`
	Partial               bool                        `yaml:"partial"`
	Location              string                      `yaml:"location"`
	AutoConstructor       Switch[AutoConstructorSpec] `yaml:"auto_constructor"`
	SerializerConstructor bool                        `yaml:"serializer_constructor"`
	InitializerMethod     string                      `yaml:"initializer_method"`
	TypeParams            []TypeParamSpec             `yaml:"type_params"`
	Containing            []ContainerSpec             `yaml:"containing"`
	Base                  string                      `yaml:"base"`
	Constructors          []ConstructorSpec           `yaml:"constructors"`
	Members               []MemberSpec                `yaml:"members"`
	Fragments             []FragmentSpec              `yaml:"fragments"`

	line int
}

// UnmarshalYAML records the declaration line.
func (s *TypeSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain TypeSpec
	if err := decodeStrict(value, (*plain)(s)); err != nil {
		return err
	}
	s.line = value.Line

	// Nested nodes were decoded from a re-encoded copy; take their lines from the source node.
	if fragments := mappingValue(value, "fragments"); fragments != nil && fragments.Kind == yaml.SequenceNode {
		for i, item := range fragments.Content {
			if i < len(s.Fragments) {
				s.Fragments[i].line = item.Line
			}
		}
	}
	return nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// AutoConstructorSpec configures the generated constructor.
type AutoConstructorSpec struct {
	Accessibility string `yaml:"accessibility"`
}

// TypeParamSpec declares a type parameter.
type TypeParamSpec struct {
	Name string `yaml:"name"`
	// Constraint is "", "class" or "struct".
	Constraint string `yaml:"constraint"`
}

// ContainerSpec declares an enclosing type, outermost first.
type ContainerSpec struct {
	Name       string          `yaml:"name"`
	Kind       string          `yaml:"kind"`
	TypeParams []TypeParamSpec `yaml:"type_params"`
}

// ConstructorSpec declares an existing constructor.
type ConstructorSpec struct {
	Params   []ParamSpec `yaml:"params"`
	Static   bool        `yaml:"static"`
	Implicit bool        `yaml:"implicit"`
}

// ParamSpec declares a constructor parameter.
type ParamSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// FragmentSpec declares one partial part of a type.
type FragmentSpec struct {
	Location string       `yaml:"location"`
	Partial  bool         `yaml:"partial"`
	Members  []MemberSpec `yaml:"members"`

	line int
}

// UnmarshalYAML records the declaration line.
func (s *FragmentSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain FragmentSpec
	if err := decodeStrict(value, (*plain)(s)); err != nil {
		return err
	}
	s.line = value.Line
	return nil
}

// MemberSpec declares a field or auto-property.
type MemberSpec struct {
	Name string `yaml:"name"`
	// Type is a type expression. Inside a flow mapping a nullable type must be
	// quoted ("string?"); yaml reads a bare '?' there as a key indicator.
	Type        string `yaml:"type"`
	Property    bool   `yaml:"property"`
	ReadOnly    bool   `yaml:"readonly"`
	Static      bool   `yaml:"static"`
	Initialized bool   `yaml:"initialized"`
	// Doc is the XML documentation comment; its summary documents the parameter.
	Doc string `yaml:"doc"`
	// Summary is used verbatim and takes precedence over Doc.
	Summary string             `yaml:"summary"`
	Ignore  bool               `yaml:"ignore"`
	Inject  Switch[InjectSpec] `yaml:"inject"`
}

// InjectSpec customizes an injected member.
type InjectSpec struct {
	Initializer   string `yaml:"initializer"`
	ParameterName string `yaml:"parameter_name"`
	InjectedType  string `yaml:"injected_type"`
}

// Switch is written either as a bool or as a mapping, which implies true.
type Switch[T any] struct {
	Enabled bool
	Value   T
}

func (s *Switch[T]) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&s.Enabled)
	case yaml.MappingNode:
		if err := decodeStrict(value, &s.Value); err != nil {
			return err
		}
		s.Enabled = true
		return nil
	default:
		return fmt.Errorf("line %d: expected a bool or a mapping", value.Line)
	}
}

// decodeStrict decodes node into v, rejecting unknown fields.
func decodeStrict(node *yaml.Node, v any) error {
	data, err := yaml.Marshal(node)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// Decode reads every YAML document of r.
func Decode(source string, r io.Reader) ([]Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var docs []Document
	for {
		var doc Document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &Error{Source: source, Err: err}
		}
		doc.Source = source
		docs = append(docs, doc)
	}
	return docs, nil
}

// Load reads the manifest files and builds the compilation they describe.
func Load(paths ...string) (*autoconstructor.Compilation, error) {
	var docs []Document
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open manifest: %w", err)
		}

		decoded, err := Decode(path, f)
		f.Close()
		if err != nil {
			return nil, err
		}

		slog.Debug("manifest loaded", "path", path, "documents", len(decoded))
		docs = append(docs, decoded...)
	}

	return Build(docs...)
}

// Parse builds the compilation described by a single manifest.
func Parse(source string, data []byte) (*autoconstructor.Compilation, error) {
	docs, err := Decode(source, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return Build(docs...)
}
