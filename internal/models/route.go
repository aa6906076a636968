package models

import (
	"github.com/google/uuid"
)

// AnonymousMiddleware stands in for a middleware argument that is not a plain identifier
const AnonymousMiddleware = "<anonymous>"

// Param describes one request parameter, either inferred from a path literal
// or declared in a documentation comment.
type Param struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	In          Location `json:"in" yaml:"in"`
	Required    bool     `json:"required" yaml:"required"`
	Description string   `json:"description" yaml:"description"`
	Format      string   `json:"format,omitempty" yaml:"format,omitempty"`
}

// Return describes one documented response
type Return struct {
	Type        string `json:"type" yaml:"type"`
	StatusCode  int    `json:"statusCode" yaml:"statusCode"`
	Description string `json:"description" yaml:"description"`
}

// Route is one registered endpoint. Routes are built once during a traversal
// and never modified afterwards.
type Route struct {
	Method      Method   `json:"method" yaml:"method"`
	Path        string   `json:"path" yaml:"path"`
	Description string   `json:"description" yaml:"description"`
	Middlewares []string `json:"middlewares" yaml:"middlewares"`
	Metadata    Metadata `json:"metadata" yaml:"metadata"`

	// Source is where the registration was found. It is diagnostic only.
	Source SourceLocation `json:"-" yaml:"-"`
	// Documented is set when the resolved comment block has a description or tags
	Documented bool `json:"-" yaml:"-"`
}

// routeNamespace seeds operation ids so they stay stable across runs
var routeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("routedoc://operations"))

// OperationID returns a deterministic identifier for the method and path pair
func (r Route) OperationID() string {
	return uuid.NewSHA1(routeNamespace, []byte(string(r.Method)+" "+r.Path)).String()
}

// Params returns the reconciled parameter list of the route
func (r Route) Params() []Param {
	return r.Metadata.Params()
}

// Returns returns the documented responses of the route
func (r Route) Returns() []Return {
	return r.Metadata.Returns()
}

// ChainIdentity identifies the base route(path) call of a builder chain.
// Each identity is processed at most once per traversal.
type ChainIdentity struct {
	Path  string
	Start uint32
	End   uint32
}
