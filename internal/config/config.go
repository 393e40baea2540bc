// Package config provides CLI configuration and application logic for autoconstructor.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/DomasM/AutoConstructor/internal/autoconstructor"
	"github.com/DomasM/AutoConstructor/internal/emit"
	"github.com/DomasM/AutoConstructor/internal/manifest"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// DefaultConfigFile is read from the working directory when present.
const DefaultConfigFile = ".autoconstructor.yaml"

// CLI is the root command configuration with subcommands.
type CLI struct {
	LogLevel string           `kong:"short='l',help='Log level',enum='debug,info,warn,error',default='info'"`
	Config   kong.ConfigFlag  `kong:"help='YAML configuration file'"`
	Generate GenerateCmd      `kong:"cmd,default='withargs',help='Generate constructors (default)'"`
	Inspect  InspectCmd       `kong:"cmd,help='Print constructor descriptions as JSON'"`
	Version  kong.VersionFlag `kong:"short='v',help='Show version and exit.'"`
}

// SynthesisFlags are the build-wide switches shared by all commands.
type SynthesisFlags struct {
	DisableNullChecking  bool   `kong:"help='Do not emit argument null checks'"`
	Documentation        bool   `kong:"help='Generate constructor documentation'"`
	DocumentationComment string `kong:"help='Constructor summary; {0} is the type name and {1} its kind'"`
	Parallel             int    `kong:"help='Number of types synthesized concurrently, 0 for GOMAXPROCS',default='0'"`
}

// Options converts the flags into synthesis options.
func (f *SynthesisFlags) Options() autoconstructor.Options {
	opts := autoconstructor.DefaultOptions()
	opts.NullChecks = !f.DisableNullChecking
	opts.Documentation = f.Documentation
	opts.DocumentationComment = f.DocumentationComment
	opts.Parallel = f.Parallel
	return opts
}

// GenerateCmd is the default command for generating constructor sources.
type GenerateCmd struct {
	SynthesisFlags `kong:"embed"`

	Output    string   `kong:"short='o',default='.',help='Output directory'"`
	Manifests []string `kong:"arg,optional,help='Manifest files to process'"`
}

// Run executes the generate command.
func (c *GenerateCmd) Run(ctx context.Context, cli *CLI) error {
	setupLogger(cli.LogLevel)

	if len(c.Manifests) == 0 {
		return errors.New("no manifest files specified")
	}

	slog.Info("Generating constructors", "manifests", c.Manifests)

	report, err := synthesize(ctx, c.Manifests, c.Options())
	if err != nil {
		return err
	}
	logDiagnostics(report.Diagnostics)

	if _, err := emit.WriteFiles(c.Output, report.Constructors); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if report.HasErrors() {
		return fmt.Errorf("synthesis reported %d error(s)", countErrors(report.Diagnostics))
	}
	return nil
}

// InspectCmd prints the synthesis report without writing sources.
type InspectCmd struct {
	SynthesisFlags `kong:"embed"`

	Type      string   `kong:"short='t',help='Only show the type with this full name'"`
	Manifests []string `kong:"arg,help='Manifest files to process'"`
}

// Run executes the inspect command.
func (c *InspectCmd) Run(ctx context.Context, cli *CLI, out io.Writer) error {
	setupLogger(cli.LogLevel)

	report, err := synthesize(ctx, c.Manifests, c.Options())
	if err != nil {
		return err
	}

	if c.Type != "" {
		report = filterReport(report, c.Type)
	}

	return emit.WriteJSON(out, report)
}

func synthesize(ctx context.Context, manifests []string, opts autoconstructor.Options) (*autoconstructor.Report, error) {
	compilation, err := manifest.Load(manifests...)
	if err != nil {
		return nil, fmt.Errorf("load manifests: %w", err)
	}

	report, err := autoconstructor.NewProcessor(compilation, opts).Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	return report, nil
}

func filterReport(report *autoconstructor.Report, typeName string) *autoconstructor.Report {
	filtered := &autoconstructor.Report{
		Constructors: []*autoconstructor.Constructor{},
		Diagnostics:  []autoconstructor.Diagnostic{},
	}
	for _, c := range report.Constructors {
		if c.Type == typeName {
			filtered.Constructors = append(filtered.Constructors, c)
		}
	}
	for _, d := range report.Diagnostics {
		if d.Type == typeName {
			filtered.Diagnostics = append(filtered.Diagnostics, d)
		}
	}
	return filtered
}

func logDiagnostics(diagnostics []autoconstructor.Diagnostic) {
	for _, d := range diagnostics {
		level := slog.LevelWarn
		if d.Severity == autoconstructor.SeverityError {
			level = slog.LevelError
		}
		slog.Log(context.Background(), level, d.Message, "id", d.ID, "type", d.Type, "location", d.Location)
	}
}

func countErrors(diagnostics []autoconstructor.Diagnostic) int {
	n := 0
	for _, d := range diagnostics {
		if d.Severity == autoconstructor.SeverityError {
			n++
		}
	}
	return n
}

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdout)
}

func run(ctx context.Context, args []string, out io.Writer, options ...kong.Option) error {
	var cli CLI
	parser, err := kong.New(&cli, append([]kong.Option{
		kong.Name("autoconstructor"),
		kong.Description("Generates constructors for annotated C# types described by YAML manifests"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Configuration(YAMLLoader, DefaultConfigFile),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(out, (*io.Writer)(nil)),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s) released on %s", version, commit, date),
		},
	}, options...)...)
	if err != nil {
		return fmt.Errorf("build cli: %w", err)
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return kongCtx.Run(&cli)
}

func setupLogger(level string) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
