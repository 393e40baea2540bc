package autoconstructor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is wrapped by *UnknownTypeError.
var ErrUnknownType = errors.New("unknown type")

// ParameterConflict is one parameter name bound to incompatible types.
type ParameterConflict struct {
	Parameter string
	Types     []string
}

// ConflictError aborts synthesis for a type whose merged members disagree
// on the type of a parameter.
type ConflictError struct {
	Type      string
	Fragments []string
	Conflicts []ParameterConflict
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Parameter, strings.Join(c.Types, " vs ")))
	}
	return fmt.Sprintf("%s: mismatching types for parameter %s", e.Type, strings.Join(parts, ", "))
}

// Parameters returns the names of the conflicting parameters.
func (e *ConflictError) Parameters() []string {
	names := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		names = append(names, c.Parameter)
	}
	return names
}

// CycleError reports an inheritance chain that loops back on itself.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "inheritance cycle: " + strings.Join(e.Chain, " -> ")
}

// UnknownTypeError reports a base type with no declaration.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownType, e.Name)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}
