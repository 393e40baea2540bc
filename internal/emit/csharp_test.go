package emit

import (
	"strings"
	"testing"

	"github.com/DomasM/AutoConstructor/internal/autoconstructor"
)

func TestCSharp_EscapesDocumentation(t *testing.T) {
	t.Parallel()

	c := sampleConstructor("A")
	c.Summary = "Builds A<T> & friends.\n  Second line."
	c.Params[0].Doc = "Count   of\n items > 0"

	got := CSharp(c)

	for _, want := range []string{
		"        /// Builds A&lt;T&gt; &amp; friends.\n",
		"        /// Second line.\n",
		"        /// <param name=\"t\">Count of items &gt; 0</param>\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("CSharp() missing %q in:\n%s", want, got)
		}
	}
}

func TestCSharp_Layout(t *testing.T) {
	t.Parallel()

	str := &autoconstructor.Type{Name: "string", Key: "System.String"}
	c := &autoconstructor.Constructor{
		Decl: &autoconstructor.TypeDecl{
			Name:       "Inner",
			Kind:       autoconstructor.DeclStruct,
			TypeParams: []autoconstructor.TypeParam{{Name: "T"}},
			Containers: []autoconstructor.Container{{Name: "Outer", Kind: autoconstructor.DeclInterface}},
		},
		Accessibility: "private protected",
		Params:        []autoconstructor.ConstructorParam{{Name: "s", Type: str}},
		Assignments:   []autoconstructor.Assignment{{Member: "S", Value: "s", Parameter: "s", NullCheck: true}},
		BaseArgs:      []string{"s"},
	}

	want := header + `partial interface Outer
{
    partial struct Inner<T>
    {
        private protected Inner(string s) : base(s)
        {
            this.S = s ?? throw new System.ArgumentNullException(nameof(s));
        }
    }
}
`
	if got := CSharp(c); got != want {
		t.Errorf("CSharp() mismatch:\n--- expected ---\n%s\n--- got ---\n%s", want, got)
	}
}

func TestKindWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind autoconstructor.DeclKind
		want string
	}{
		{kind: "", want: "class"},
		{kind: autoconstructor.DeclClass, want: "class"},
		{kind: autoconstructor.DeclRecord, want: "record"},
		{kind: autoconstructor.DeclStruct, want: "struct"},
	}

	for _, tt := range tests {
		if got := kindWord(tt.kind); got != tt.want {
			t.Errorf("kindWord(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
