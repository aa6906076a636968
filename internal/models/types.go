package models

import "fmt"

// Method represents an HTTP method a route can be registered for
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// registrationNames maps the property names used in source to their methods
var registrationNames = map[string]Method{
	"get":     MethodGet,
	"post":    MethodPost,
	"put":     MethodPut,
	"delete":  MethodDelete,
	"patch":   MethodPatch,
	"head":    MethodHead,
	"options": MethodOptions,
}

// ParseMethod converts a registration property name (e.g. "get") to a Method.
// Only the lower-case names used by the routing API are accepted.
func ParseMethod(name string) (Method, bool) {
	method, ok := registrationNames[name]
	return method, ok
}

// AllMethods returns every supported method in canonical order
func AllMethods() []Method {
	return []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodHead, MethodOptions}
}

// Location represents where a parameter is carried in a request
type Location string

const (
	LocationPath     Location = "path"
	LocationQuery    Location = "query"
	LocationBody     Location = "body"
	LocationHeader   Location = "header"
	LocationFormData Location = "formData"
)

// ParseLocation converts a documented location name to a Location
func ParseLocation(name string) (Location, bool) {
	switch Location(name) {
	case LocationPath, LocationQuery, LocationBody, LocationHeader, LocationFormData:
		return Location(name), true
	default:
		return "", false
	}
}

// SourceLocation represents where a registration appears in a source unit
type SourceLocation struct {
	File   string // file path
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns file:line:column, or an empty string for an unknown location
func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return ""
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
}
