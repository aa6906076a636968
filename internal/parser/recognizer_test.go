package parser

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/routedoc/internal/models"
)

func parseSource(t *testing.T, name, src string) *SourceUnit {
	t.Helper()
	unit, err := NewSourceParser().Parse(context.Background(), name, []byte(src))
	require.NoError(t, err)
	t.Cleanup(unit.Close)
	return unit
}

func extract(t *testing.T, src string) []models.Route {
	t.Helper()
	return NewRecognizer().Extract(parseSource(t, "routes.js", src))
}

func TestExtract_DirectCallWithoutComment(t *testing.T) {
	routes := extract(t, `app.get("/users/:id", auth, (req, res) => {});`)

	require.Len(t, routes, 1)
	route := routes[0]
	assert.Equal(t, models.MethodGet, route.Method)
	assert.Equal(t, "/users/{id}", route.Path)
	assert.Equal(t, "", route.Description)
	assert.Equal(t, []string{"auth"}, route.Middlewares)
	assert.False(t, route.Documented)
	assert.Equal(t, models.Metadata{
		models.ParamTag: models.ParamListValue(models.Param{
			Name: "id", Type: "string", In: models.LocationPath, Required: true, Description: "id parameter",
		}),
	}, route.Metadata)
}

func TestExtract_DirectCallWithDocumentation(t *testing.T) {
	src := `
/**
 * Get a user
 * @param {string} id.path.required - User ID
 * @returns {User} 200 - The user
 */
app.get("/users/:id", auth, (req, res) => {});
`
	routes := extract(t, src)

	require.Len(t, routes, 1)
	route := routes[0]
	assert.True(t, route.Documented)
	assert.Equal(t, "Get a user", route.Description)

	params := route.Params()
	require.Len(t, params, 1)
	assert.Equal(t, "User ID", params[0].Description)
	assert.True(t, params[0].Required)
	assert.Equal(t, models.LocationPath, params[0].In)

	require.Len(t, route.Returns(), 1)
	assert.Equal(t, 200, route.Returns()[0].StatusCode)
}

func TestExtract_NoRoutes(t *testing.T) {
	routes := extract(t, `const x = 1;`)

	assert.NotNil(t, routes)
	assert.Empty(t, routes)
}

func TestExtract_SkipsNonRegistrations(t *testing.T) {
	src := `
const env = app.get('env');
client.get('/remote', handler);
app.use('/static', serveStatic);
app.get(prefix + '/dynamic', handler);
app.get(` + "`/tpl/${id}`" + `, handler);
foo.route('/other').get(handler);
router.route(base).post(handler);
app.get('/kept', handler);
`
	routes := extract(t, src)

	require.Len(t, routes, 1)
	assert.Equal(t, "/kept", routes[0].Path)
}

func TestExtract_TemplateLiteralPath(t *testing.T) {
	routes := extract(t, "app.delete(`/items/:itemId`, handler);")

	require.Len(t, routes, 1)
	assert.Equal(t, models.MethodDelete, routes[0].Method)
	assert.Equal(t, "/items/{itemId}", routes[0].Path)
}

func TestExtract_EscapedPath(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{name: "escaped quote", src: `app.get('/a\'b', h);`, expected: "/a'b"},
		{name: "unicode escape", src: `app.get("/caf\u00e9/:id", h);`, expected: "/café/{id}"},
		{name: "template backtick", src: "app.get(`/x\\`y`, h);", expected: "/x`y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes := extract(t, tt.src)
			require.Len(t, routes, 1)
			assert.Equal(t, tt.expected, routes[0].Path)
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: `/plain/:id`, expected: "/plain/:id"},
		{input: `/a\/b`, expected: "/a/b"},
		{input: `\x41\u0042\u{43}`, expected: "ABC"},
		{input: `\u{1F600}`, expected: "\U0001F600"},
		{input: `tab\tend`, expected: "tab\tend"},
		{input: "line\\\ncontinued", expected: "linecontinued"},
		{input: `\xZZ`, expected: `\xZZ`},
		{input: `\u{}`, expected: `\u{}`},
		{input: `trailing\`, expected: `trailing\`},
		{input: `back\\slash`, expected: `back\slash`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, unescape(tt.input))
		})
	}
}

func TestExtract_MiddlewareNames(t *testing.T) {
	routes := extract(t, `router.post('/items', auth, rateLimit({ max: 5 }), validate, async (req, res) => {});`)

	require.Len(t, routes, 1)
	assert.Equal(t, []string{"auth", models.AnonymousMiddleware, "validate"}, routes[0].Middlewares)
}

func TestExtract_AllMethods(t *testing.T) {
	src := `
app.get('/m', h);
app.post('/m', h);
app.put('/m', h);
app.delete('/m', h);
app.patch('/m', h);
app.head('/m', h);
app.options('/m', h);
app.all('/m', h);
`
	routes := extract(t, src)

	methods := make([]models.Method, 0, len(routes))
	for _, r := range routes {
		methods = append(methods, r.Method)
	}
	assert.Equal(t, models.AllMethods(), methods)
}

func TestExtract_SourceOrderAndLocation(t *testing.T) {
	src := "app.get('/a', h);\n\n  router.post('/b', h);\n"
	routes := extract(t, src)

	require.Len(t, routes, 2)
	assert.Equal(t, "/a", routes[0].Path)
	assert.Equal(t, models.SourceLocation{File: "routes.js", Line: 1, Column: 1}, routes[0].Source)
	assert.Equal(t, "/b", routes[1].Path)
	assert.Equal(t, models.SourceLocation{File: "routes.js", Line: 3, Column: 3}, routes[1].Source)
}

func TestExtract_NestedRegistrations(t *testing.T) {
	src := `
function mount(app) {
  app.get('/outer', (req, res) => {
    router.get('/inner', h);
  });
}
`
	routes := extract(t, src)

	require.Len(t, routes, 2)
	assert.Equal(t, "/outer", routes[0].Path)
	assert.Equal(t, "/inner", routes[1].Path)
}

func TestExtract_CustomReceivers(t *testing.T) {
	unit := parseSource(t, "api.js", "api.get('/a', h);\napp.get('/b', h);\n")

	routes := NewRecognizer("api").Extract(unit)

	require.Len(t, routes, 1)
	assert.Equal(t, "/a", routes[0].Path)
}

func TestExtract_ChainDedup(t *testing.T) {
	src := `
router.route('/x')
  .get(list)
  .post(create)
  .delete(remove);
`
	routes := extract(t, src)

	require.Len(t, routes, 3)
	assert.Equal(t, models.MethodGet, routes[0].Method)
	assert.Equal(t, models.MethodPost, routes[1].Method)
	assert.Equal(t, models.MethodDelete, routes[2].Method)
	for _, r := range routes {
		assert.Equal(t, "/x", r.Path)
		assert.Equal(t, []string{}, r.Middlewares)
	}
}

func TestExtract_SeparateChainsOnSamePath(t *testing.T) {
	src := `
router.route('/x').get(a);
router.route('/x').get(b);
`
	routes := extract(t, src)

	assert.Len(t, routes, 2)
}

func TestExtract_ChainSkipsNonMethodSegments(t *testing.T) {
	routes := extract(t, `router.route('/x').all(log).get(auth, show).put(update);`)

	require.Len(t, routes, 2)
	assert.Equal(t, models.MethodGet, routes[0].Method)
	assert.Equal(t, []string{"auth"}, routes[0].Middlewares)
	assert.Equal(t, models.MethodPut, routes[1].Method)
}

func TestExtract_ChainParams(t *testing.T) {
	src := `
/**
 * @param {string} id.path - Order id
 * @param {number} limit.query - Page size
 */
router.route('/orders/:id').get(show);
`
	routes := extract(t, src)

	require.Len(t, routes, 1)
	params := routes[0].Params()
	require.Len(t, params, 2)
	assert.Equal(t, "Order id", params[0].Description)
	assert.True(t, params[0].Required)
	assert.Equal(t, "limit", params[1].Name)
}

func TestExtract_RunTwiceIsIndependent(t *testing.T) {
	unit := parseSource(t, "routes.js", `router.route('/x').get(a).post(b);`)
	r := NewRecognizer()

	first := r.Extract(unit)
	second := r.Extract(unit)

	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestExtract_TypeScript(t *testing.T) {
	src := `
import { Router, Request, Response } from 'express';
const router: Router = Router();

/** Typed handler */
router.get('/typed/:id', (req: Request, res: Response) => {
  res.json({ id: req.params.id });
});
`
	routes := NewRecognizer().Extract(parseSource(t, "routes.ts", src))

	require.Len(t, routes, 1)
	assert.Equal(t, "/typed/{id}", routes[0].Path)
	assert.Equal(t, "Typed handler", routes[0].Description)
}

func TestClassify(t *testing.T) {
	src := []byte(`app.get('/a', h); router.route('/b').get(h); other.get('/c', h); app.listen(3000);`)
	unit := parseSource(t, "classify.js", string(src))
	r := NewRecognizer()

	var shapes []Shape
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n.Type() == nodeCallExpression {
			shapes = append(shapes, r.Classify(n, src))
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(unit.Root())

	// app.get, route().get, route(), other.get, app.listen
	assert.Equal(t, []Shape{DirectCall, ChainedMethodCall, Unrecognized, Unrecognized, Unrecognized}, shapes)
}
