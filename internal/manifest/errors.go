package manifest

import "fmt"

// Error reports an invalid manifest.
type Error struct {
	Source string
	// Type is the declaration the error belongs to, if any.
	Type string
	Err  error
}

func (e *Error) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Type, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SyntaxError reports a malformed type expression.
type SyntaxError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("type %q at offset %d: %s", e.Expr, e.Pos, e.Msg)
}
