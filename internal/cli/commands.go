package cli

import (
	"context"
	"strings"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/internal/render"
	"github.com/toyz/routedoc/internal/server"
	"github.com/toyz/routedoc/internal/utils"
)

// CLI is the kong command tree. Values come from flags, ROUTEDOC_* env vars
// and routedoc.{json,yaml,yml,toml} configuration files, in that order.
type CLI struct {
	Globals `embed:""`

	Generate  GenerateCmd   `cmd:"" default:"withargs" help:"Extract routes and write documentation (default)"`
	Serve     ServeCmd      `cmd:"" help:"Serve the documentation over HTTP"`
	Clean     CleanCmd      `cmd:"" help:"Remove generated documents"`
	ConfigCmd ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}

// Globals are the flags shared by every command
type Globals struct {
	ConfigFile string `name:"config" help:"Configuration file (json, yaml or toml)" type:"path" env:"ROUTEDOC_CONFIG"`
	LogLevel   string `help:"Diagnostic level" enum:"silent,error,warn,info,verbose,debug" default:"info" env:"ROUTEDOC_LOG_LEVEL"`
	Verbose    bool   `short:"v" help:"Enable verbose output"`
	Quiet      bool   `short:"q" help:"Only show errors and final results"`
}

// Diagnostics creates the diagnostic system selected by the flags
func (g Globals) Diagnostics() (*utils.DiagnosticSystem, error) {
	switch {
	case g.Quiet:
		return utils.NewQuietDiagnostics(), nil
	case g.Verbose:
		return utils.NewVerboseDiagnostics(), nil
	}

	level, err := utils.ParseDiagnosticLevel(g.LogLevel)
	if err != nil {
		return nil, errors.WrapConfigurationError("log-level", "parse", err)
	}
	return utils.NewDiagnosticSystem(level), nil
}

// ExtractFlags configure scanning and extraction; shared by generate and serve
type ExtractFlags struct {
	Paths       []string `arg:"" optional:"" help:"Files or directories to scan; dir/... is accepted"`
	Receivers   []string `help:"Identifiers routes are registered on" default:"app,router" env:"ROUTEDOC_RECEIVERS"`
	Concurrency int      `help:"Files processed in parallel (0 uses every CPU)" default:"0" env:"ROUTEDOC_CONCURRENCY"`
	FailFast    bool     `help:"Abort on the first file that cannot be parsed" env:"ROUTEDOC_FAIL_FAST"`
	MaxFileSize int      `help:"Largest source file parsed, in bytes" default:"2097152" env:"ROUTEDOC_MAX_FILE_SIZE"`
	Title       string   `help:"Document title (defaults to the package.json name)" env:"ROUTEDOC_TITLE"`
	Version     string   `help:"Document version (defaults to the package.json version)" env:"ROUTEDOC_VERSION"`
	Description string   `help:"Document description (defaults to the package.json description)" env:"ROUTEDOC_DESCRIPTION"`
}

func (f *ExtractFlags) validate() error {
	validators := []error{
		utils.ValidateEach("receivers", utils.Chain(utils.NotEmpty("receiver"), utils.IsJSIdentifier("receiver")))(f.Receivers),
		utils.AtLeast("concurrency", 0)(f.Concurrency),
		utils.AtLeast("max-file-size", 0)(f.MaxFileSize),
	}
	for _, err := range validators {
		if err != nil {
			return errors.WrapConfigurationError("flags", "validate", err)
		}
	}
	return nil
}

func (f *ExtractFlags) options() ExtractOptions {
	return ExtractOptions{
		Concurrency: f.Concurrency,
		FailFast:    f.FailFast,
		Receivers:   f.Receivers,
		MaxFileSize: f.MaxFileSize,
	}
}

// Pipeline scans, extracts and assembles the document. It keeps its caches
// between runs.
type Pipeline struct {
	flags       ExtractFlags
	scanner     *DirectoryScanner
	extractor   *Extractor
	reporter    *DiagnosticReporter
	diagnostics *utils.DiagnosticSystem
}

// NewPipeline creates a pipeline for the given flags
func NewPipeline(flags ExtractFlags, diagnostics *utils.DiagnosticSystem) *Pipeline {
	return &Pipeline{
		flags:       flags,
		scanner:     NewDirectoryScanner(),
		extractor:   NewExtractor(flags.options(), diagnostics),
		reporter:    NewDiagnosticReporter(diagnostics),
		diagnostics: diagnostics,
	}
}

// Build runs one extraction and returns the document with the run's result
func (p *Pipeline) Build(ctx context.Context) (render.Document, *Result, error) {
	files, err := p.scanner.ScanFiles(p.flags.Paths)
	if err != nil {
		return render.Document{}, nil, err
	}
	p.diagnostics.Verbose("Found %d source file(s)", len(files))

	result, err := p.extractor.Run(ctx, files)
	if err != nil {
		return render.Document{}, nil, err
	}

	root := "."
	if len(p.flags.Paths) > 0 {
		root = p.flags.Paths[0]
	}
	manifest, err := FindPackageManifest(root)
	if err != nil {
		p.reporter.ReportWarning(err)
	}
	info := ResolveProjectInfo(ProjectInfo{
		Title:       p.flags.Title,
		Version:     p.flags.Version,
		Description: p.flags.Description,
	}, manifest)

	return render.Document{
		Title:       info.Title,
		Version:     info.Version,
		Description: info.Description,
		Routes:      result.Routes,
	}, result, nil
}

// Load adapts Build to server.LoadFunc
func (p *Pipeline) Load(ctx context.Context) (render.Document, error) {
	doc, _, err := p.Build(ctx)
	return doc, err
}

// GenerateCmd extracts routes and writes the documents
type GenerateCmd struct {
	Extract ExtractFlags `embed:""`
	Output  string       `short:"o" help:"Output directory" default:"docs" type:"path" env:"ROUTEDOC_OUTPUT"`
	Format  string       `short:"f" help:"Output format: markdown, html, json, yaml, both (markdown+html) or all" default:"both" env:"ROUTEDOC_FORMAT"`
}

// Validate is called by kong after parsing
func (g *GenerateCmd) Validate() error {
	if _, err := render.ParseFormats(g.Format); err != nil {
		return errors.WrapConfigurationError("format", "validate", err)
	}
	return g.Extract.validate()
}

// Run is called by kong when the generate command is executed
func (g *GenerateCmd) Run(ctx context.Context, diagnostics *utils.DiagnosticSystem) error {
	formats, err := render.ParseFormats(g.Format)
	if err != nil {
		return errors.WrapConfigurationError("format", "parse", err)
	}

	diagnostics.Header("routedoc")
	diagnostics.Section("Extracting routes")

	pipeline := NewPipeline(g.Extract, diagnostics)
	doc, result, err := pipeline.Build(ctx)
	if err != nil {
		return err
	}

	diagnostics.Section("Writing documents")
	written, err := render.WriteFiles(g.Output, doc, formats)
	if err != nil {
		return err
	}
	for _, path := range written {
		diagnostics.Item("%s", path)
	}

	diagnostics.Summary("Summary", result.Summary.Stats())
	diagnostics.Complete("documentation generated")
	return nil
}

// ServeCmd extracts routes and serves the documents
type ServeCmd struct {
	Extract ExtractFlags `embed:""`
	Addr    string       `help:"Listen address" default:"127.0.0.1:8080" env:"ROUTEDOC_ADDR"`
}

// Validate is called by kong after parsing
func (s *ServeCmd) Validate() error {
	if err := utils.NotEmpty("addr")(s.Addr); err != nil {
		return errors.WrapConfigurationError("addr", "validate", err)
	}
	return s.Extract.validate()
}

// Run is called by kong when the serve command is executed
func (s *ServeCmd) Run(ctx context.Context, diagnostics *utils.DiagnosticSystem) error {
	config := server.DefaultConfig()
	config.Addr = s.Addr

	pipeline := NewPipeline(s.Extract, diagnostics)
	srv := server.New(config, pipeline.Load, diagnostics)
	return srv.Start(ctx)
}

// CleanCmd removes the documents generate writes
type CleanCmd struct {
	Dirs []string `arg:"" optional:"" help:"Output directories to clean (default: docs)" type:"path"`
}

// Run is called by kong when the clean command is executed
func (c *CleanCmd) Run(diagnostics *utils.DiagnosticSystem) error {
	dirs := c.Dirs
	if len(dirs) == 0 {
		dirs = []string{"docs"}
	}

	diagnostics.Info("Cleaning %s", strings.Join(dirs, ", "))
	removed, err := NewCleaner().CleanGeneratedFiles(dirs)
	for _, path := range removed {
		diagnostics.Item("removed %s", path)
	}
	if err != nil {
		return err
	}

	diagnostics.Success("Removed %d generated file(s)", len(removed))
	return nil
}
