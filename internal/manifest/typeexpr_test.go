package manifest

import (
	"errors"
	"strings"
	"testing"
)

// render prints a parsed expression back in a normalized form.
func render(e *typeExpr) string {
	var sb strings.Builder
	if e.elem != nil {
		sb.WriteString(render(e.elem))
		sb.WriteString("[]")
	} else {
		sb.WriteString(e.name)
		if len(e.args) > 0 {
			sb.WriteString("<")
			for i, arg := range e.args {
				if i > 0 {
					sb.WriteString(",")
				}
				sb.WriteString(render(arg))
			}
			sb.WriteString(">")
		}
	}
	if e.nullable {
		sb.WriteString("?")
	}
	return sb.String()
}

func TestParseTypeExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{src: "int", want: "int"},
		{src: "string?", want: "string?"},
		{src: "System.Guid", want: "System.Guid"},
		{src: "T2", want: "T2"},
		{src: "_private", want: "_private"},
		{src: "System.Threading.Tasks.Task<object?>", want: "System.Threading.Tasks.Task<object?>"},
		{src: "Dictionary< string , List<int?> >", want: "Dictionary<string,List<int?>>"},
		{src: "int[]", want: "int[]"},
		{src: "string?[]?", want: "string?[]?"},
		{src: "int[][]", want: "int[][]"},
		{src: "List<int>[]", want: "List<int>[]"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			e, err := parseTypeExpr(tt.src)
			if err != nil {
				t.Fatalf("parseTypeExpr(%q) error = %v", tt.src, err)
			}
			if got := render(e); got != tt.want {
				t.Errorf("parseTypeExpr(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseTypeExpr_Errors(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		"1int",
		"List<",
		"List<int",
		"List<int,>",
		"int??",
		"int[",
		"System.",
		"int x",
		"Map<int;string>",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			_, err := parseTypeExpr(src)
			var syntax *SyntaxError
			if !errors.As(err, &syntax) {
				t.Fatalf("parseTypeExpr(%q) error = %v, want *SyntaxError", src, err)
			}
			if syntax.Expr != src {
				t.Errorf("SyntaxError.Expr = %q, want %q", syntax.Expr, src)
			}
		})
	}
}
