package annotations

import (
	"fmt"
)

// ErrorCode represents different types of tag errors
type ErrorCode int

const (
	SyntaxErrorCode ErrorCode = iota
	ValidationErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case SyntaxErrorCode:
		return "SyntaxError"
	case ValidationErrorCode:
		return "ValidationError"
	default:
		return "UnknownError"
	}
}

// TagError is returned for a tag line that does not follow its grammar.
// Block parsing drops such lines without reporting them; the error is only
// visible to callers of ParseParamLine and ParseReturnsLine.
type TagError struct {
	Tag   string    // tag name, e.g. "param"
	Line  string    // offending line
	Msg   string    // what went wrong
	Kind  ErrorCode // syntax or validation failure
	Cause error     // underlying grammar error, if any
}

func (e *TagError) Error() string {
	return fmt.Sprintf("malformed @%s tag %q: %s", e.Tag, e.Line, e.Msg)
}

// Code returns the error code
func (e *TagError) Code() ErrorCode { return e.Kind }

// Unwrap returns the underlying grammar error
func (e *TagError) Unwrap() error { return e.Cause }

func syntaxError(tag, line, msg string, cause error) *TagError {
	return &TagError{Tag: tag, Line: line, Msg: msg, Kind: SyntaxErrorCode, Cause: cause}
}

func validationError(tag, line, msg string) *TagError {
	return &TagError{Tag: tag, Line: line, Msg: msg, Kind: ValidationErrorCode}
}
