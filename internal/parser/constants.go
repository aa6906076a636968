package parser

const (
	// RouteBuilderName is the property that starts a builder chain
	RouteBuilderName = "route"

	// MinDirectCallArgs is the argument count below which a direct call is
	// not a registration. app.get(name) reads a setting.
	MinDirectCallArgs = 2

	// DefaultMaxFileSize bounds the source units handed to tree-sitter
	DefaultMaxFileSize = 2 << 20
)

// DefaultReceivers are the identifiers treated as routable receivers
var DefaultReceivers = []string{"app", "router"}

// tree-sitter node types used by the recognizer
const (
	nodeCallExpression   = "call_expression"
	nodeMemberExpression = "member_expression"
	nodeArguments        = "arguments"
	nodeIdentifier       = "identifier"
	nodeComment          = "comment"
	nodeExportStatement  = "export_statement"
	nodeString           = "string"
	nodeTemplateString   = "template_string"
	nodeTemplateSubst    = "template_substitution"
)

// tree-sitter field names
const (
	fieldFunction  = "function"
	fieldArguments = "arguments"
	fieldObject    = "object"
	fieldProperty  = "property"
)
