package errors

import (
	"fmt"

	"github.com/toyz/routedoc/internal/models"
)

// WrapWithOperation wraps an error with an operation context
func WrapWithOperation(operation, item string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s %s", operation, item)
	return Wrap(UnknownErrorCode, message, cause)
}

// WrapParseError reports a source unit that could not be parsed into a tree
func WrapParseError(path string, cause error) *BaseError {
	return Wrap(ParseErrorCode, "failed to parse source unit", cause).
		WithLocation(locationOf(path)).
		WithContext("path", path)
}

// ParseError creates an unparseable source unit error without a cause
func ParseError(path, reason string) *BaseError {
	return New(ParseErrorCode, fmt.Sprintf("cannot parse source unit: %s", reason)).
		WithLocation(locationOf(path)).
		WithContext("path", path)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapRenderError wraps errors raised while producing an output document
func WrapRenderError(format, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s %s output", operation, format)
	return Wrap(RenderErrorCode, message, cause).
		WithContext("format", format).
		WithContext("operation", operation)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(RenderErrorCode, message, cause).
		WithContext("template", templateName).
		WithContext("operation", operation)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// ConfigurationError creates a configuration error
func ConfigurationError(configType, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", configType, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_type", configType)
}

// WrapServerError wraps preview server failures
func WrapServerError(operation string, cause error) *BaseError {
	return Wrap(ServerErrorCode, fmt.Sprintf("server failed to %s", operation), cause).
		WithContext("operation", operation)
}

func locationOf(path string) models.SourceLocation {
	return models.SourceLocation{File: path}
}
