package render

import (
	"bytes"
	"encoding/json"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"gopkg.in/yaml.v3"

	docerrors "github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/internal/models"
	"github.com/toyz/routedoc/internal/utils"
)

// Renderer writes a document in one output format
type Renderer interface {
	Format() Format
	Render(w io.Writer, doc Document) error
}

var renderers = utils.NewRegistry[Format, Renderer]("renderer")

func init() {
	renderers.MustRegister(FormatMarkdown, markdownRenderer{templates: DefaultTemplateRegistry})
	renderers.MustRegister(FormatHTML, htmlRenderer{templates: DefaultTemplateRegistry})
	renderers.MustRegister(FormatJSON, jsonRenderer{})
	renderers.MustRegister(FormatYAML, yamlRenderer{})
}

// RendererFor returns the renderer registered for a format
func RendererFor(format Format) (Renderer, error) {
	renderer, err := renderers.GetOrError(format)
	if err != nil {
		return nil, docerrors.WrapRenderError(string(format), "select renderer for", err)
	}
	return renderer, nil
}

// Render produces the document in the given format
func Render(format Format, doc Document) ([]byte, error) {
	renderer, err := RendererFor(format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// templateFuncs are shared by the markdown and html templates
var templateFuncs = map[string]interface{}{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"cell":  markdownCell,
}

// markdownCell makes a value safe to place inside a markdown table cell
func markdownCell(value string) string {
	value = strings.ReplaceAll(value, "\r\n", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.ReplaceAll(value, "|", `\|`)
}

func newPageData(doc Document) pageData {
	return pageData{Document: doc, Groups: GroupRoutes(doc.Routes)}
}

type markdownRenderer struct {
	templates *TemplateRegistry
}

func (markdownRenderer) Format() Format { return FormatMarkdown }

func (r markdownRenderer) Render(w io.Writer, doc Document) error {
	tmpl, err := texttemplate.New("markdown").Funcs(texttemplate.FuncMap(templateFuncs)).Parse(r.templates.MustGet("markdown"))
	if err != nil {
		return docerrors.WrapTemplateError("markdown", "parse", err)
	}
	if _, err := tmpl.Parse(r.templates.MustGet("markdown-route")); err != nil {
		return docerrors.WrapTemplateError("markdown-route", "parse", err)
	}

	if err := tmpl.Execute(w, newPageData(doc)); err != nil {
		return docerrors.WrapTemplateError("markdown", "execute", err)
	}
	return nil
}

type htmlRenderer struct {
	templates *TemplateRegistry
}

func (htmlRenderer) Format() Format { return FormatHTML }

func (r htmlRenderer) Render(w io.Writer, doc Document) error {
	tmpl, err := htmltemplate.New("html").Funcs(htmltemplate.FuncMap(templateFuncs)).Parse(r.templates.MustGet("html"))
	if err != nil {
		return docerrors.WrapTemplateError("html", "parse", err)
	}
	if _, err := tmpl.Parse(r.templates.MustGet("html-route")); err != nil {
		return docerrors.WrapTemplateError("html-route", "parse", err)
	}

	if err := tmpl.Execute(w, newPageData(doc)); err != nil {
		return docerrors.WrapTemplateError("html", "execute", err)
	}
	return nil
}

type jsonRenderer struct{}

func (jsonRenderer) Format() Format { return FormatJSON }

func (jsonRenderer) Render(w io.Writer, doc Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(exportRoutes(doc.Routes)); err != nil {
		return docerrors.WrapRenderError(string(FormatJSON), "encode", err)
	}
	return nil
}

type yamlRenderer struct{}

func (yamlRenderer) Format() Format { return FormatYAML }

func (yamlRenderer) Render(w io.Writer, doc Document) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(exportRoutes(doc.Routes)); err != nil {
		return docerrors.WrapRenderError(string(FormatYAML), "encode", err)
	}
	if err := encoder.Close(); err != nil {
		return docerrors.WrapRenderError(string(FormatYAML), "flush", err)
	}
	return nil
}

// exportRoutes fills the collections that must never be encoded as null
func exportRoutes(routes []models.Route) []models.Route {
	out := make([]models.Route, len(routes))
	for i, route := range routes {
		if route.Middlewares == nil {
			route.Middlewares = []string{}
		}
		if route.Metadata == nil {
			route.Metadata = models.Metadata{}
		}
		out[i] = route
	}
	return out
}
