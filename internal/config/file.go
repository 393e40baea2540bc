package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/stoewer/go-strcase"
	"gopkg.in/yaml.v3"
)

// YAMLLoader is a kong.ConfigurationLoader for YAML files. Keys are flag
// names in snake_case, e.g.
//
//	documentation: true
//	disable_null_checking: false
//	documentation_comment: "Creates a {0} {1}."
//	parallel: 4
func YAMLLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := values[strcase.SnakeCase(flag.Name)]; ok {
			return v, nil
		}
		if v, ok := values[flag.Name]; ok {
			return v, nil
		}
		return nil, nil
	}), nil
}
