package autoconstructor

import (
	"runtime"
	"strings"
)

// DefaultDocumentationComment is the constructor summary used when none is configured.
// {0} is replaced by the type name and {1} by its kind ("class", "record", "struct").
const DefaultDocumentationComment = "Initializes a new instance of the {0} {1}."

// Options are the build-wide switches of a synthesis pass.
type Options struct {
	// NullChecks enables argument null checks for non-nullable reference parameters.
	NullChecks bool
	// Documentation enables generated constructor documentation.
	Documentation bool
	// DocumentationComment overrides DefaultDocumentationComment when not blank.
	DocumentationComment string
	// Parallel bounds the number of types synthesized concurrently.
	// Zero or less means GOMAXPROCS.
	Parallel int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		NullChecks: true,
	}
}

func (o Options) parallelism() int {
	if o.Parallel > 0 {
		return o.Parallel
	}
	return runtime.GOMAXPROCS(0)
}

// summary formats the constructor summary for a type.
func (o Options) summary(typeName string, kind DeclKind) string {
	format := o.DocumentationComment
	if strings.TrimSpace(format) == "" {
		format = DefaultDocumentationComment
	}

	return strings.NewReplacer("{0}", typeName, "{1}", kind.word()).Replace(format)
}
