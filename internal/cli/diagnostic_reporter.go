package cli

import (
	stderrors "errors"
	"sort"
	"strings"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/internal/utils"
)

// DiagnosticReporter turns errors into user-friendly diagnostic output
type DiagnosticReporter struct {
	diagnostics *utils.DiagnosticSystem
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(diagnostics *utils.DiagnosticSystem) *DiagnosticReporter {
	return &DiagnosticReporter{
		diagnostics: diagnostics,
	}
}

// ReportWarning reports a skipped source unit or another recoverable problem
func (r *DiagnosticReporter) ReportWarning(err error) {
	r.diagnostics.Warn("%s", err.Error())
	r.reportDetails(err)
}

// ReportError reports a fatal error with its context and suggestions
func (r *DiagnosticReporter) ReportError(err error) {
	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) && multi.Count() > 1 {
		r.diagnostics.Error("%d errors occurred", multi.Count())
		r.diagnostics.Indent()
		for _, e := range multi.Errors {
			r.ReportError(e)
		}
		r.diagnostics.Unindent()
		return
	}

	var docErr errors.DocError
	if stderrors.As(err, &docErr) {
		r.diagnostics.Error("%s: %s", errorTitle(docErr.ErrorCode()), err.Error())
	} else {
		r.diagnostics.Error("%s", err.Error())
	}
	r.reportDetails(err)
}

func (r *DiagnosticReporter) reportDetails(err error) {
	var docErr errors.DocError
	if !stderrors.As(err, &docErr) {
		return
	}

	r.diagnostics.Indent()
	defer r.diagnostics.Unindent()

	if context := docErr.Context(); len(context) > 0 {
		keys := make([]string, 0, len(context))
		for key := range context {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			r.diagnostics.Verbose("%s: %v", formatContextKey(key), context[key])
		}
	}

	if cause := docErr.Unwrap(); cause != nil {
		r.diagnostics.Debug("Underlying cause: %v", cause)
	}

	for _, suggestion := range docErr.Suggestions() {
		r.diagnostics.Item("%s", suggestion)
	}
}

// errorTitle names an error code for headers
func errorTitle(code errors.ErrorCode) string {
	switch code {
	case errors.SyntaxErrorCode:
		return "Comment Tag Syntax Error"
	case errors.ValidationErrorCode:
		return "Validation Error"
	case errors.ParseErrorCode:
		return "Unparseable Source"
	case errors.FileSystemErrorCode:
		return "File System Error"
	case errors.RenderErrorCode:
		return "Render Error"
	case errors.ConfigurationErrorCode:
		return "Configuration Error"
	case errors.ServerErrorCode:
		return "Server Error"
	default:
		return "Error"
	}
}

// formatContextKey converts snake_case context keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
