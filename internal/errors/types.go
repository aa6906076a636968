package errors

import (
	"fmt"
	"strings"

	"github.com/toyz/routedoc/internal/models"
)

// DocError is implemented by every error routedoc reports to the user
type DocError interface {
	error
	ErrorCode() ErrorCode
	Location() models.SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies a DocError
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	SyntaxErrorCode
	ValidationErrorCode

	// Source unit could not be turned into a syntax tree
	ParseErrorCode
	FileSystemErrorCode

	RenderErrorCode
	ConfigurationErrorCode
	ServerErrorCode
)

var codeNames = map[ErrorCode]string{
	SyntaxErrorCode:        "SyntaxError",
	ValidationErrorCode:    "ValidationError",
	ParseErrorCode:         "ParseError",
	FileSystemErrorCode:    "FileSystemError",
	RenderErrorCode:        "RenderError",
	ConfigurationErrorCode: "ConfigurationError",
	ServerErrorCode:        "ServerError",
}

// String returns the name printed in diagnostics headers
func (e ErrorCode) String() string {
	if name, ok := codeNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// BaseError is the DocError used throughout routedoc
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         models.SourceLocation  // file, and line when known
	Cause       error                  // wrapped error, may be nil
	ContextData map[string]interface{} // key/value details shown at verbose level
	Hints       []string               // printed as "try:" items
}

// Error renders "location: message: cause", omitting empty parts
func (e *BaseError) Error() string {
	parts := make([]string, 0, 3)
	if loc := e.Loc.String(); loc != "" {
		parts = append(parts, loc)
	}
	parts = append(parts, e.Message)
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

func (e *BaseError) Location() models.SourceLocation {
	return e.Loc
}

// Context never returns nil so callers can range over it directly
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return e.ContextData
}

func (e *BaseError) Suggestions() []string {
	return e.Hints
}

func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithLocation sets where the error happened
func (e *BaseError) WithLocation(loc models.SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithContext records one detail
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = map[string]interface{}{}
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion appends a hint for the user
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New creates an error without a cause
func New(code ErrorCode, message string) *BaseError {
	return Wrap(code, message, nil)
}

// Wrap creates an error around cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{Code: code, Message: message, Cause: cause, Hints: []string{}}
}

// CodeOf returns the code of the first DocError in the chain
func CodeOf(err error) ErrorCode {
	for err != nil {
		if docErr, ok := err.(DocError); ok {
			return docErr.ErrorCode()
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return UnknownErrorCode
}

// MultipleErrors collects the errors of a run that continues past failures,
// such as the source units skipped during extraction.
type MultipleErrors struct {
	Errors []DocError
}

// Error returns the single message, or a numbered list
func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "multiple errors (%d total):", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes every collected error to errors.Is and errors.As
func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

func (e *MultipleErrors) Add(err DocError) {
	e.Errors = append(e.Errors, err)
}

func (e *MultipleErrors) IsEmpty() bool {
	return e.Count() == 0
}

func (e *MultipleErrors) Count() int {
	return len(e.Errors)
}

// HasCode reports whether any collected error has code
func (e *MultipleErrors) HasCode(code ErrorCode) bool {
	for _, err := range e.Errors {
		if err.ErrorCode() == code {
			return true
		}
	}
	return false
}

// ErrOrNil returns nil for a nil or empty collection
func (e *MultipleErrors) ErrOrNil() error {
	if e == nil || e.IsEmpty() {
		return nil
	}
	return e
}

func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{Errors: []DocError{}}
}
