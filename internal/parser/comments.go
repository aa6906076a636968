package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/toyz/routedoc/internal/annotations"
)

// commentResolver finds the documentation block of a registration.
//
// tree-sitter keeps comments as extra nodes among the siblings they appear
// between, so every lookup here is a sibling scan.
type commentResolver struct {
	src []byte
}

// forDirectCall applies, in order: the comment leading the call, then the
// comment right before the terminal handler.
func (c commentResolver) forDirectCall(call *sitter.Node, handler *sitter.Node) (annotations.Block, bool) {
	return c.first(
		func() []*sitter.Node { return c.leading(call) },
		func() []*sitter.Node { return c.beforeArgument(handler) },
	)
}

// forSegment resolves a chain segment. prev is the previous method segment,
// nil for the first one, and base is the route(path) builder call.
func (c commentResolver) forSegment(seg, prev chainSegment, first bool, base *sitter.Node) (annotations.Block, bool) {
	candidates := []func() []*sitter.Node{
		func() []*sitter.Node { return c.ownLeading(seg.parts) },
		func() []*sitter.Node { return c.beforeArgument(lastArg(seg.parts.args)) },
	}
	if first {
		candidates = append(candidates,
			func() []*sitter.Node { return c.leadingStatement(base) },
			func() []*sitter.Node { return c.trailing(base) },
		)
	} else {
		candidates = append(candidates, func() []*sitter.Node { return c.trailing(prev.parts.call) })
	}
	return c.first(candidates...)
}

// first returns the block of the first candidate holding any comment text.
// That block wins even when none of its lines parse.
func (c commentResolver) first(candidates ...func() []*sitter.Node) (annotations.Block, bool) {
	for _, candidate := range candidates {
		text := c.blockText(candidate())
		if strings.TrimSpace(text) == "" {
			continue
		}
		return annotations.Parse(text), true
	}
	return annotations.Block{}, false
}

// leading returns the comments directly preceding node, climbing through
// ancestors that start at the same byte so a comment above the enclosing
// statement is found from an inner call.
func (c commentResolver) leading(node *sitter.Node) []*sitter.Node {
	for n := node; n != nil; n = n.Parent() {
		if comments := c.precedingComments(n); len(comments) > 0 {
			return comments
		}
		if n.PrevSibling() != nil {
			return nil
		}
		parent := n.Parent()
		if parent == nil || parent.StartByte() != n.StartByte() {
			return nil
		}
	}
	return nil
}

// leadingStatement is leading with a fallback to the enclosing statement
// or declaration, for builders assigned to a variable or exported. An
// exported declaration is documented above its export keyword.
func (c commentResolver) leadingStatement(node *sitter.Node) []*sitter.Node {
	if comments := c.leading(node); len(comments) > 0 {
		return comments
	}
	for n := node.Parent(); n != nil; n = n.Parent() {
		if !isStatement(n.Type()) {
			continue
		}
		if comments := c.leading(n); len(comments) > 0 {
			return comments
		}
		if parent := n.Parent(); parent != nil && parent.Type() == nodeExportStatement {
			return c.leading(parent)
		}
		return nil
	}
	return nil
}

// precedingComments collects the run of comment siblings right before node.
// A comment that trails the previous sibling on its last line belongs to
// that sibling and stops the run.
func (c commentResolver) precedingComments(node *sitter.Node) []*sitter.Node {
	var run []*sitter.Node
	sib := node.PrevSibling()
	for sib != nil && sib.Type() == nodeComment {
		run = append(run, sib)
		sib = sib.PrevSibling()
	}
	if sib != nil && len(run) > 0 {
		last := run[len(run)-1]
		if last.StartPoint().Row == sib.EndPoint().Row {
			run = run[:len(run)-1]
		}
	}
	reverse(run)
	return run
}

// beforeArgument returns the comments placed right before an argument
func (c commentResolver) beforeArgument(arg *sitter.Node) []*sitter.Node {
	if arg == nil {
		return nil
	}
	var run []*sitter.Node
	for sib := arg.PrevSibling(); sib != nil && sib.Type() == nodeComment; sib = sib.PrevSibling() {
		run = append(run, sib)
	}
	reverse(run)
	return run
}

// ownLeading returns the comments between the previous call of the chain and
// the .method token of the segment, excluding those trailing that call.
func (c commentResolver) ownLeading(parts callParts) []*sitter.Node {
	row := parts.object.EndPoint().Row
	var own []*sitter.Node
	for _, comment := range gapComments(parts) {
		if comment.StartPoint().Row != row {
			own = append(own, comment)
		}
	}
	return own
}

// trailing returns the comments after call that start on its last line,
// inside the member access that continues the chain.
func (c commentResolver) trailing(call *sitter.Node) []*sitter.Node {
	member := call.Parent()
	if member == nil || member.Type() != nodeMemberExpression {
		return nil
	}
	parts, ok := splitCall(member.Parent())
	if !ok || !sameNode(parts.object, call) {
		return nil
	}

	row := call.EndPoint().Row
	var trail []*sitter.Node
	for _, comment := range gapComments(parts) {
		if comment.StartPoint().Row == row {
			trail = append(trail, comment)
		}
	}
	return trail
}

// gapComments lists the comment children of the member access that sit
// between its object and its property.
func gapComments(parts callParts) []*sitter.Node {
	var comments []*sitter.Node
	for i := 0; i < int(parts.member.ChildCount()); i++ {
		child := parts.member.Child(i)
		if child.StartByte() < parts.object.EndByte() {
			continue
		}
		if child.StartByte() >= parts.property.StartByte() {
			break
		}
		if child.Type() == nodeComment {
			comments = append(comments, child)
		}
	}
	return comments
}

// blockText selects one documentation block from candidate comments, which
// are in source order. The nearest comment wins: a block comment stands
// alone, a line comment extends upwards over adjacent line comments.
func (c commentResolver) blockText(comments []*sitter.Node) string {
	if len(comments) == 0 {
		return ""
	}

	last := comments[len(comments)-1]
	if !c.isLineComment(last) {
		return annotations.StripDecoration(last.Content(c.src))
	}

	start := len(comments) - 1
	for start > 0 {
		prev := comments[start-1]
		if !c.isLineComment(prev) || prev.EndPoint().Row+1 != comments[start].StartPoint().Row {
			break
		}
		start--
	}

	lines := make([]string, 0, len(comments)-start)
	for _, comment := range comments[start:] {
		lines = append(lines, annotations.StripDecoration(comment.Content(c.src)))
	}
	return strings.Join(lines, "\n")
}

func (c commentResolver) isLineComment(node *sitter.Node) bool {
	return strings.HasPrefix(node.Content(c.src), "//")
}

func isStatement(nodeType string) bool {
	return strings.HasSuffix(nodeType, "_statement") || strings.HasSuffix(nodeType, "_declaration")
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil &&
		a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func lastArg(args []*sitter.Node) *sitter.Node {
	if len(args) == 0 {
		return nil
	}
	return args[len(args)-1]
}

func reverse(nodes []*sitter.Node) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}
