package autoconstructor

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Processor runs synthesis passes over the declarations of a compilation.
type Processor struct {
	compilation *Compilation
	opts        Options
	resolver    *Resolver
}

// NewProcessor creates a new processor instance.
func NewProcessor(compilation *Compilation, opts Options) *Processor {
	return &Processor{
		compilation: compilation,
		opts:        opts,
		resolver:    NewResolver(compilation, opts),
	}
}

// Generate synthesizes the constructor of one annotated type. It returns
// nil without error when the type has nothing to inject, and a
// *ConflictError when merged members disagree on a parameter type.
func (p *Processor) Generate(decl *TypeDecl) (*Constructor, error) {
	res, err := p.resolver.Resolve(decl)
	if err != nil {
		return nil, err
	}

	if err := DetectConflicts(decl, res.Descriptors); err != nil {
		return nil, err
	}

	return Synthesize(decl, res, p.opts), nil
}

// Report is the outcome of a synthesis pass.
type Report struct {
	Constructors []*Constructor `json:"constructors"`
	Diagnostics  []Diagnostic   `json:"diagnostics"`
}

// HasErrors reports whether any diagnostic is an error.
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

type typeResult struct {
	constructors []*Constructor
	diagnostics  []Diagnostic
}

// Run processes every declaration concurrently. Failures are reported per
// type as diagnostics; the returned error is only set when ctx is done.
// Output order follows declaration order regardless of scheduling.
func (p *Processor) Run(ctx context.Context) (*Report, error) {
	types := p.compilation.Types()
	results := make([]typeResult, len(types))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.opts.parallelism())
	for i, decl := range types {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.process(decl)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Constructors: []*Constructor{},
		Diagnostics:  []Diagnostic{},
	}
	for _, r := range results {
		report.Constructors = append(report.Constructors, r.constructors...)
		report.Diagnostics = append(report.Diagnostics, r.diagnostics...)
	}
	disambiguate(report.Constructors)

	slog.Info("Synthesis pass finished",
		"types", len(types),
		"constructors", len(report.Constructors),
		"diagnostics", len(report.Diagnostics))

	return report, nil
}

func (p *Processor) process(decl *TypeDecl) typeResult {
	var r typeResult
	r.diagnostics = overrideDiagnostics(decl)

	if decl.AutoConstructor == nil && !decl.SerializerConstructor {
		return r
	}

	if !decl.Partial {
		r.diagnostics = append(r.diagnostics, withoutPartialDiagnostic(decl))
		return r
	}

	if decl.AutoConstructor != nil {
		c, err := p.Generate(decl)

		var conflict *ConflictError
		switch {
		case errors.As(err, &conflict):
			slog.Debug("conflicting parameter types", "type", decl.FullName(), "parameters", conflict.Parameters())
			r.diagnostics = append(r.diagnostics, conflictDiagnostics(conflict)...)
		case err != nil:
			r.diagnostics = append(r.diagnostics, failedDiagnostic(decl, err))
		case c == nil:
			r.diagnostics = append(r.diagnostics, withoutMembersDiagnostic(decl))
		default:
			r.constructors = append(r.constructors, c)
		}
	}

	if decl.SerializerConstructor {
		if c, ok := SynthesizeSerializer(decl); ok {
			r.constructors = append(r.constructors, c)
		} else {
			slog.Debug("type already declares a parameterless constructor", "type", decl.FullName())
		}
	}

	return r
}
