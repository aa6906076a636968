package cli

import (
	"context"
	stderrors "errors"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/internal/models"
	"github.com/toyz/routedoc/internal/parser"
	"github.com/toyz/routedoc/internal/utils"
)

// ExtractOptions configures an Extractor
type ExtractOptions struct {
	// Concurrency bounds the number of files processed at once; 0 means GOMAXPROCS
	Concurrency int
	// FailFast makes the first unparseable source unit abort the run
	FailFast bool
	// Receivers are the identifiers route registrations are called on
	Receivers []string
	// MaxFileSize is the largest file parsed, in bytes
	MaxFileSize int
}

// Summary counts what one run processed
type Summary struct {
	Files      int
	Routes     int
	Documented int
	Skipped    int
	Cached     int
}

// Stats returns the summary in the shape DiagnosticSystem.Summary expects
func (s Summary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"Files scanned":     s.Files,
		"Routes found":      s.Routes,
		"Documented routes": s.Documented,
		"Skipped files":     s.Skipped,
		"Cached files":      s.Cached,
	}
}

// Result is the outcome of one extraction run
type Result struct {
	Routes  []models.Route
	Summary Summary
	// Skipped holds the unparseable source units that were reported and skipped
	Skipped *errors.MultipleErrors
}

// fileResult is the slot one worker fills for one file
type fileResult struct {
	routes []models.Route
	cached bool
	err    errors.DocError
}

// Extractor runs route extraction over many files. Route lists are cached
// per file and reused while the file is unchanged, so repeated runs over
// the same tree only re-parse edited files.
type Extractor struct {
	options     ExtractOptions
	reader      *utils.FileReader
	parser      *parser.SourceParser
	recognizer  *parser.Recognizer
	routes      *utils.FileCache[[]models.Route]
	reporter    *DiagnosticReporter
	diagnostics *utils.DiagnosticSystem
}

// NewExtractor creates an extractor
func NewExtractor(options ExtractOptions, diagnostics *utils.DiagnosticSystem) *Extractor {
	if options.Concurrency <= 0 {
		options.Concurrency = runtime.GOMAXPROCS(0)
	}

	sourceParser := parser.NewSourceParser()
	if options.MaxFileSize > 0 {
		sourceParser.MaxFileSize = options.MaxFileSize
	}

	return &Extractor{
		options:     options,
		reader:      utils.NewFileReader(),
		parser:      sourceParser,
		recognizer:  parser.NewRecognizer(options.Receivers...),
		routes:      utils.NewFileCache[[]models.Route](),
		reporter:    NewDiagnosticReporter(diagnostics),
		diagnostics: diagnostics,
	}
}

// Run extracts the routes of every file. Files are processed concurrently;
// the returned routes are concatenated in file order.
func (e *Extractor) Run(ctx context.Context, files []string) (*Result, error) {
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.Concurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := e.extractFile(gctx, file)
			results[i] = res
			if res.err != nil && e.options.FailFast {
				return res.err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Routes:  []models.Route{},
		Skipped: errors.NewMultipleErrors(),
	}
	result.Summary.Files = len(files)

	for i, res := range results {
		if res.err != nil {
			result.Skipped.Add(res.err)
			result.Summary.Skipped++
			e.reporter.ReportWarning(res.err)
			continue
		}
		if res.cached {
			result.Summary.Cached++
		}

		e.diagnostics.Verbose("%s: %d route(s)", files[i], len(res.routes))
		for _, route := range res.routes {
			e.diagnostics.Debug("%s %s (%s)", route.Method, route.Path, route.Source)
			if route.Documented {
				result.Summary.Documented++
			}
		}
		result.Routes = append(result.Routes, res.routes...)
	}
	result.Summary.Routes = len(result.Routes)

	return result, nil
}

// extractFile parses one file and extracts its routes
func (e *Extractor) extractFile(ctx context.Context, path string) fileResult {
	if routes, ok := e.routes.Get(path); ok {
		return fileResult{routes: routes, cached: true}
	}

	// stat first: routes are cached against the state before the read
	info, statErr := os.Stat(path)

	content, err := e.reader.ReadFile(path)
	if err != nil {
		return fileResult{err: asDocError(path, err)}
	}

	unit, err := e.parser.Parse(ctx, path, content)
	if err != nil {
		return fileResult{err: asDocError(path, err)}
	}
	defer unit.Close()

	if unit.HasSyntaxErrors() {
		e.diagnostics.Debug("%s contains syntax errors, extracting what parsed", path)
	}

	routes := e.recognizer.Extract(unit)
	if statErr != nil {
		e.diagnostics.Debug("not caching %s: %v", path, statErr)
	} else {
		e.routes.Put(path, info, routes)
	}

	return fileResult{routes: routes}
}

// Invalidate drops every cached route list
func (e *Extractor) Invalidate() {
	e.routes.Clear()
}

func asDocError(path string, err error) errors.DocError {
	var docErr errors.DocError
	if stderrors.As(err, &docErr) {
		return docErr
	}
	return errors.WrapParseError(path, err)
}
