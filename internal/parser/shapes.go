package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/toyz/routedoc/internal/models"
)

// Shape is the registration grammar a call expression matches
type Shape int

const (
	Unrecognized Shape = iota
	// DirectCall is receiver.method(path, ...middlewares, handler)
	DirectCall
	// ChainedMethodCall is <call>.method(...handlers), a segment of a builder chain
	ChainedMethodCall
)

// String returns the string representation of the shape
func (s Shape) String() string {
	switch s {
	case DirectCall:
		return "direct"
	case ChainedMethodCall:
		return "chained"
	default:
		return "unrecognized"
	}
}

// callParts is a call expression split into the pieces the recognizer needs
type callParts struct {
	call     *sitter.Node
	member   *sitter.Node
	object   *sitter.Node
	property *sitter.Node
	args     []*sitter.Node
}

// splitCall returns the parts of a receiver.property(args) call, or false
// when the node is not a call through a member access.
func splitCall(node *sitter.Node) (callParts, bool) {
	if node == nil || node.Type() != nodeCallExpression {
		return callParts{}, false
	}
	member := node.ChildByFieldName(fieldFunction)
	if member == nil || member.Type() != nodeMemberExpression {
		return callParts{}, false
	}
	object := member.ChildByFieldName(fieldObject)
	property := member.ChildByFieldName(fieldProperty)
	if object == nil || property == nil {
		return callParts{}, false
	}

	return callParts{
		call:     node,
		member:   member,
		object:   object,
		property: property,
		args:     callArguments(node),
	}, true
}

// callArguments returns the argument expressions, skipping comments
func callArguments(call *sitter.Node) []*sitter.Node {
	argsNode := call.ChildByFieldName(fieldArguments)
	if argsNode == nil || argsNode.Type() != nodeArguments {
		return nil
	}

	var args []*sitter.Node
	for i := 0; i < int(argsNode.NamedChildCount()); i++ {
		child := argsNode.NamedChild(i)
		if child.Type() == nodeComment {
			continue
		}
		args = append(args, child)
	}
	return args
}

// Classify decides which registration grammar, if any, a node matches
func (r *Recognizer) Classify(node *sitter.Node, src []byte) Shape {
	parts, ok := splitCall(node)
	if !ok {
		return Unrecognized
	}
	if _, isMethod := models.ParseMethod(parts.property.Content(src)); !isMethod {
		return Unrecognized
	}

	switch parts.object.Type() {
	case nodeIdentifier:
		if r.isReceiver(parts.object.Content(src)) {
			return DirectCall
		}
	case nodeCallExpression:
		return ChainedMethodCall
	}
	return Unrecognized
}

// isRouteBuilder reports whether the call is receiver.route(path, ...)
func (r *Recognizer) isRouteBuilder(parts callParts, src []byte) bool {
	return parts.object.Type() == nodeIdentifier &&
		r.isReceiver(parts.object.Content(src)) &&
		parts.property.Content(src) == RouteBuilderName &&
		len(parts.args) > 0
}

// literalPath returns the value of a string literal or a template string
// without substitutions.
func literalPath(node *sitter.Node, src []byte) (string, bool) {
	switch node.Type() {
	case nodeString:
		raw := node.Content(src)
		if len(raw) < 2 {
			return "", false
		}
		return unescape(raw[1 : len(raw)-1]), true
	case nodeTemplateString:
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if node.NamedChild(i).Type() == nodeTemplateSubst {
				return "", false
			}
		}
		raw := node.Content(src)
		if len(raw) < 2 {
			return "", false
		}
		return unescape(raw[1 : len(raw)-1]), true
	default:
		return "", false
	}
}

var simpleEscapes = map[byte]string{
	'n': "\n", 't': "\t", 'r': "\r", 'b': "\b", 'f': "\f", 'v': "\v", '0': "\x00",
}

// unescape decodes the escape sequences of a string literal body. A line
// continuation disappears, an unknown escape stands for the character itself
// and a malformed \x or \u sequence is kept as written.
func unescape(body string) string {
	if !strings.Contains(body, "\\") {
		return body
	}

	var out strings.Builder
	out.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 == len(body) {
			out.WriteByte(body[i])
			continue
		}

		i++
		c := body[i]
		switch {
		case simpleEscapes[c] != "":
			out.WriteString(simpleEscapes[c])
		case c == '\n':
		case c == '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case c == 'x' || c == 'u':
			r, width, ok := codePoint(body[i:])
			if !ok {
				out.WriteByte('\\')
				out.WriteByte(c)
				continue
			}
			out.WriteRune(r)
			i += width - 1
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

// codePoint reads \xHH, \uHHHH or \u{H...} starting at the x or u and
// returns the rune with the number of bytes consumed.
func codePoint(s string) (rune, int, bool) {
	var digits string
	width := 0
	switch {
	case s[0] == 'x' && len(s) >= 3:
		digits, width = s[1:3], 3
	case s[0] == 'u' && len(s) >= 2 && s[1] == '{':
		end := strings.IndexByte(s, '}')
		if end < 3 {
			return 0, 0, false
		}
		digits, width = s[2:end], end+1
	case s[0] == 'u' && len(s) >= 5:
		digits, width = s[1:5], 5
	default:
		return 0, 0, false
	}

	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || n > utf8.MaxRune {
		return 0, 0, false
	}
	return rune(n), width, true
}

// middlewareNames names each argument; anything but an identifier is anonymous
func middlewareNames(args []*sitter.Node, src []byte) []string {
	names := make([]string, 0, len(args))
	for _, arg := range args {
		if arg.Type() == nodeIdentifier {
			names = append(names, arg.Content(src))
		} else {
			names = append(names, models.AnonymousMiddleware)
		}
	}
	return names
}
