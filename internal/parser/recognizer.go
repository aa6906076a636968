package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/toyz/routedoc/internal/annotations"
	"github.com/toyz/routedoc/internal/models"
	"github.com/toyz/routedoc/internal/params"
	"github.com/toyz/routedoc/internal/paths"
)

// Recognizer finds route registrations in a syntax tree. It holds no state
// between calls to Extract and may be shared across goroutines.
type Recognizer struct {
	receivers map[string]bool
}

// NewRecognizer creates a recognizer for the given receiver identifiers.
// With no receivers the defaults (app, router) are used.
func NewRecognizer(receivers ...string) *Recognizer {
	if len(receivers) == 0 {
		receivers = DefaultReceivers
	}
	set := make(map[string]bool, len(receivers))
	for _, name := range receivers {
		if name != "" {
			set[name] = true
		}
	}
	return &Recognizer{receivers: set}
}

func (r *Recognizer) isReceiver(name string) bool {
	return r.receivers[name]
}

// chainSegment is one .method(...) call of a builder chain
type chainSegment struct {
	parts  callParts
	method models.Method
}

// traversal is the state of one Extract call. processed never outlives it.
type traversal struct {
	r         *Recognizer
	unit      *SourceUnit
	src       []byte
	comments  commentResolver
	processed map[models.ChainIdentity]bool
	routes    []models.Route
}

// Extract walks the tree of one source unit and returns its routes in
// visitation order: source order for direct calls, declaration order within
// a chain. Registrations that do not fit either grammar are skipped.
func (r *Recognizer) Extract(unit *SourceUnit) []models.Route {
	t := &traversal{
		r:         r,
		unit:      unit,
		src:       unit.Content,
		comments:  commentResolver{src: unit.Content},
		processed: make(map[models.ChainIdentity]bool),
		routes:    []models.Route{},
	}
	t.walk(unit.Root())
	return t.routes
}

func (t *traversal) walk(node *sitter.Node) {
	if node == nil {
		return
	}

	switch t.r.Classify(node, t.src) {
	case DirectCall:
		t.directCall(node)
	case ChainedMethodCall:
		t.chain(node)
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		t.walk(node.NamedChild(i))
	}
}

func (t *traversal) directCall(node *sitter.Node) {
	parts, _ := splitCall(node)
	if len(parts.args) < MinDirectCallArgs {
		return
	}
	rawPath, ok := literalPath(parts.args[0], t.src)
	if !ok {
		return
	}
	method, _ := models.ParseMethod(parts.property.Content(t.src))
	handler := parts.args[len(parts.args)-1]

	block, documented := t.comments.forDirectCall(node, handler)
	t.emit(method, rawPath, middlewareNames(parts.args[1:len(parts.args)-1], t.src), block, documented, node)
}

// chain walks left from the outermost call to the route(path) builder,
// collecting method segments on the way. Every call of the chain is visited
// by walk, so the builder identity makes sure it is emitted once.
func (t *traversal) chain(node *sitter.Node) {
	var (
		segments []chainSegment
		base     callParts
		found    bool
	)

	for cur := node; ; {
		parts, ok := splitCall(cur)
		if !ok {
			return
		}
		if t.r.isRouteBuilder(parts, t.src) {
			base, found = parts, true
			break
		}
		if method, isMethod := models.ParseMethod(parts.property.Content(t.src)); isMethod {
			segments = append(segments, chainSegment{parts: parts, method: method})
		}
		if parts.object.Type() != nodeCallExpression {
			return
		}
		cur = parts.object
	}
	if !found || len(segments) == 0 {
		return
	}

	rawPath, ok := literalPath(base.args[0], t.src)
	if !ok {
		return
	}
	identity := models.ChainIdentity{Path: rawPath, Start: base.call.StartByte(), End: base.call.EndByte()}
	if t.processed[identity] {
		return
	}
	t.processed[identity] = true

	// collected right to left
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}

	for i, seg := range segments {
		var prev chainSegment
		if i > 0 {
			prev = segments[i-1]
		}
		block, documented := t.comments.forSegment(seg, prev, i == 0, base.call)

		var middlewares []string
		if len(seg.parts.args) > 1 {
			middlewares = middlewareNames(seg.parts.args[:len(seg.parts.args)-1], t.src)
		}
		t.emit(seg.method, rawPath, middlewares, block, documented, seg.parts.property)
	}
}

// emit normalizes, reconciles and records one route
func (t *traversal) emit(method models.Method, rawPath string, middlewares []string, block annotations.Block, documented bool, at *sitter.Node) {
	path, structural := paths.Normalize(rawPath)

	metadata := block.Metadata
	if metadata == nil {
		metadata = models.Metadata{}
	}
	metadata.SetParams(params.Reconcile(structural, metadata.Params()))

	if middlewares == nil {
		middlewares = []string{}
	}

	point := at.StartPoint()
	t.routes = append(t.routes, models.Route{
		Method:      method,
		Path:        path,
		Description: block.Description,
		Middlewares: middlewares,
		Metadata:    metadata,
		Source: models.SourceLocation{
			File:   t.unit.Path,
			Line:   int(point.Row) + 1,
			Column: int(point.Column) + 1,
		},
		Documented: documented && !block.IsEmpty(),
	})
}
