// Package emit renders synthesized constructors.
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/DomasM/AutoConstructor/internal/autoconstructor"
)

const header = `//------------------------------------------------------------------------------
// <auto-generated>
//     This code was generated by the AutoConstructor source generator.
//
//     Changes to this file may cause incorrect behavior and will be lost if
//     the code is regenerated.
// </auto-generated>
//------------------------------------------------------------------------------
`

const indentUnit = "    "

var docEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

type codeWriter struct {
	sb     strings.Builder
	indent int
}

func (w *codeWriter) line(format string, args ...any) {
	w.sb.WriteString(strings.Repeat(indentUnit, w.indent))
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteString("\n")
}

func (w *codeWriter) open(format string, args ...any) {
	w.line(format, args...)
	w.line("{")
	w.indent++
}

func (w *codeWriter) close() {
	w.indent--
	w.line("}")
}

// CSharp renders the source file of a generated constructor.
func CSharp(c *autoconstructor.Constructor) string {
	decl := c.Decl
	w := &codeWriter{}
	w.sb.WriteString(header)

	if c.NullableContext {
		w.line("#nullable enable")
	}

	if decl.Namespace != "" {
		w.open("namespace %s", decl.Namespace)
	}
	for _, container := range decl.Containers {
		w.open("partial %s %s%s", kindWord(container.Kind), container.Name, typeParamList(container.TypeParams))
	}
	w.open("partial %s %s%s", kindWord(decl.Kind), decl.Name, typeParamList(decl.TypeParams))

	writeDocumentation(w, c)

	params := make([]string, 0, len(c.Params))
	for _, p := range c.Params {
		params = append(params, p.Type.String()+" "+p.Name)
	}
	signature := fmt.Sprintf("%s %s(%s)", c.Accessibility, decl.Name, strings.Join(params, ", "))
	if len(c.BaseArgs) > 0 {
		signature += fmt.Sprintf(" : base(%s)", strings.Join(c.BaseArgs, ", "))
	}

	w.open("%s", signature)
	for _, a := range c.Assignments {
		value := a.Value
		if a.NullCheck {
			value += fmt.Sprintf(" ?? throw new System.ArgumentNullException(nameof(%s))", a.Parameter)
		}
		w.line("this.%s = %s;", a.Member, value)
	}
	if c.Initializer != "" {
		w.line("this.%s();", c.Initializer)
	}

	for w.indent > 0 {
		w.close()
	}

	return w.sb.String()
}

// WriteCSharp writes the rendered source of c to out.
func WriteCSharp(out io.Writer, c *autoconstructor.Constructor) error {
	if _, err := io.WriteString(out, CSharp(c)); err != nil {
		return fmt.Errorf("write %s: %w", c.Identity, err)
	}
	return nil
}

func writeDocumentation(w *codeWriter, c *autoconstructor.Constructor) {
	if c.Summary == "" {
		return
	}

	w.line("/// <summary>")
	for _, line := range strings.Split(c.Summary, "\n") {
		w.line("/// %s", docEscaper.Replace(strings.TrimSpace(line)))
	}
	w.line("/// </summary>")

	for _, p := range c.Params {
		doc := strings.Join(strings.Fields(p.Doc), " ")
		w.line(`/// <param name="%s">%s</param>`, p.Name, docEscaper.Replace(doc))
	}
}

func kindWord(kind autoconstructor.DeclKind) string {
	if kind == "" {
		return string(autoconstructor.DeclClass)
	}
	return string(kind)
}

func typeParamList(params []autoconstructor.TypeParam) string {
	if len(params) == 0 {
		return ""
	}

	names := make([]string, 0, len(params))
	for _, tp := range params {
		names = append(names, tp.Name)
	}
	return "<" + strings.Join(names, ", ") + ">"
}
