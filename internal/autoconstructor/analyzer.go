package autoconstructor

import (
	"fmt"
	"strings"
)

// Severity of a diagnostic.
type Severity uint8

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic identifiers.
const (
	DiagTypeWithoutPartial         = "ACTR001"
	DiagTypeWithoutMembersToInject = "ACTR002"
	DiagOverrideWithoutAnnotation  = "ACTR003"
	DiagMismatchingParameterTypes  = "ACTR004"
	DiagSynthesisFailed            = "ACTR005"
)

// Diagnostic is a finding reported for one location of a type.
type Diagnostic struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Type     string   `json:"type"`
	Location string   `json:"location,omitempty"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.Location != "" {
		sb.WriteString(d.Location)
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "%s %s: %s", d.Severity, d.ID, d.Message)
	return sb.String()
}

func firstLocation(decl *TypeDecl) string {
	for _, f := range decl.Fragments {
		if f.Location != "" {
			return f.Location
		}
	}
	return ""
}

func withoutPartialDiagnostic(decl *TypeDecl) Diagnostic {
	return Diagnostic{
		ID:       DiagTypeWithoutPartial,
		Severity: SeverityError,
		Type:     decl.FullName(),
		Location: firstLocation(decl),
		Message:  fmt.Sprintf("type %s must be partial to receive a generated constructor", decl.Name),
	}
}

func withoutMembersDiagnostic(decl *TypeDecl) Diagnostic {
	return Diagnostic{
		ID:       DiagTypeWithoutMembersToInject,
		Severity: SeverityWarning,
		Type:     decl.FullName(),
		Location: firstLocation(decl),
		Message:  fmt.Sprintf("type %s has no members to inject", decl.Name),
	}
}

// conflictDiagnostics reports the conflict once per fragment of the type.
func conflictDiagnostics(err *ConflictError) []Diagnostic {
	diagnostics := make([]Diagnostic, 0, len(err.Fragments))
	message := fmt.Sprintf("mismatching types for parameter %s", strings.Join(err.Parameters(), ", "))
	for _, location := range err.Fragments {
		diagnostics = append(diagnostics, Diagnostic{
			ID:       DiagMismatchingParameterTypes,
			Severity: SeverityError,
			Type:     err.Type,
			Location: location,
			Message:  message,
		})
	}
	return diagnostics
}

func failedDiagnostic(decl *TypeDecl, err error) Diagnostic {
	return Diagnostic{
		ID:       DiagSynthesisFailed,
		Severity: SeverityError,
		Type:     decl.FullName(),
		Location: firstLocation(decl),
		Message:  err.Error(),
	}
}

// overrideDiagnostics flags Ignore/Inject annotations that have no effect
// because the type does not request constructor synthesis.
func overrideDiagnostics(decl *TypeDecl) []Diagnostic {
	if decl.AutoConstructor != nil {
		return nil
	}

	var diagnostics []Diagnostic
	for _, fragment := range decl.Fragments {
		for _, m := range fragment.Members {
			if m.Override == nil {
				continue
			}
			diagnostics = append(diagnostics, Diagnostic{
				ID:       DiagOverrideWithoutAnnotation,
				Severity: SeverityWarning,
				Type:     decl.FullName(),
				Location: fragment.Location,
				Message:  fmt.Sprintf("member %s is annotated but %s does not request a generated constructor", m.Name, decl.Name),
			})
		}
	}
	return diagnostics
}
