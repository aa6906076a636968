package render

// TemplateRegistry provides a centralized way to access the document templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerMarkdownTemplates()
	registry.registerHTMLTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

func (tr *TemplateRegistry) registerMarkdownTemplates() {
	tr.templates["markdown"] = `# {{.Title}}{{if .Version}} ({{.Version}}){{end}}
{{if .Description}}
{{.Description}}
{{end}}
{{if not .Groups}}_No routes found._
{{else}}## Endpoints

{{range .Groups}}- [` + "`{{.Method}} {{.Path}}`" + `](#{{.Anchor}})
{{end}}{{range .Groups}}
<a id="{{.Anchor}}"></a>

### ` + "`{{.Method}} {{.Path}}`" + `
{{range .Routes}}{{template "markdown-route" .}}{{end}}{{end}}{{end}}`

	tr.templates["markdown-route"] = `{{define "markdown-route"}}
{{if .Description}}{{.Description}}

{{end}}{{if .Tags}}**Tags:** {{join .Tags ", "}}

{{end}}{{if .Middlewares}}**Middlewares:** {{range $i, $m := .Middlewares}}{{if $i}}, {{end}}` + "`{{$m}}`" + `{{end}}

{{end}}{{if .Params}}#### Parameters

| Name | In | Type | Required | Description |
| --- | --- | --- | --- | --- |
{{range .Params}}| {{cell .Name}} | {{.In}} | {{cell .Type}}{{if .Format}} ({{cell .Format}}){{end}} | {{if .Required}}yes{{else}}no{{end}} | {{cell .Description}} |
{{end}}
{{end}}{{if .Returns}}#### Responses

| Status | Type | Description |
| --- | --- | --- |
{{range .Returns}}| {{.StatusCode}} | {{cell .Type}} | {{cell .Description}} |
{{end}}
{{end}}{{range .Extra}}**{{.Name}}:** {{join .Values "; "}}

{{end}}{{if .Source}}_Defined at {{.Source}}_
{{end}}{{end}}`
}

func (tr *TemplateRegistry) registerHTMLTemplates() {
	tr.templates["html"] = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 0; color: #1f2328; }
header { padding: 24px 32px; background: #24292f; color: #fff; }
header h1 { margin: 0; font-size: 24px; }
header .version { opacity: .7; font-size: 14px; margin-left: 8px; }
nav { padding: 16px 32px; border-bottom: 1px solid #d0d7de; }
nav a { display: block; padding: 2px 0; color: #0969da; text-decoration: none; font-family: monospace; }
main { padding: 16px 32px; }
section.route { border: 1px solid #d0d7de; border-radius: 6px; margin: 16px 0; padding: 12px 16px; }
.method { display: inline-block; min-width: 64px; padding: 2px 8px; border-radius: 4px; color: #fff; font-weight: 600; text-align: center; font-family: monospace; }
.method-get { background: #1f883d; }
.method-post { background: #0969da; }
.method-put { background: #9a6700; }
.method-patch { background: #8250df; }
.method-delete { background: #cf222e; }
.method-head, .method-options { background: #57606a; }
.path { font-family: monospace; font-size: 16px; margin-left: 8px; }
table { border-collapse: collapse; margin: 8px 0; }
th, td { border: 1px solid #d0d7de; padding: 4px 8px; text-align: left; }
.source { color: #57606a; font-size: 12px; }
.tag { display: inline-block; background: #ddf4ff; border-radius: 12px; padding: 0 8px; margin-right: 4px; font-size: 12px; }
</style>
</head>
<body>
<header><h1>{{.Title}}{{if .Version}}<span class="version">{{.Version}}</span>{{end}}</h1>{{if .Description}}<p>{{.Description}}</p>{{end}}</header>
{{if .Groups}}<nav>
{{range .Groups}}<a href="#{{.Anchor}}">{{.Method}} {{.Path}}</a>
{{end}}</nav>
<main>
{{range .Groups}}<section class="route" id="{{.Anchor}}">
<h2><span class="method method-{{lower (print .Method)}}">{{.Method}}</span><span class="path">{{.Path}}</span></h2>
{{range .Routes}}{{template "html-route" .}}{{end}}</section>
{{end}}</main>
{{else}}<main><p>No routes found.</p></main>
{{end}}</body>
</html>
`

	tr.templates["html-route"] = `{{define "html-route"}}<div class="registration">
{{if .Description}}<p>{{.Description}}</p>
{{end}}{{if .Tags}}<p>{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</p>
{{end}}{{if .Middlewares}}<p>Middlewares: {{range $i, $m := .Middlewares}}{{if $i}}, {{end}}<code>{{$m}}</code>{{end}}</p>
{{end}}{{if .Params}}<h3>Parameters</h3>
<table>
<tr><th>Name</th><th>In</th><th>Type</th><th>Required</th><th>Description</th></tr>
{{range .Params}}<tr><td><code>{{.Name}}</code></td><td>{{.In}}</td><td>{{.Type}}{{if .Format}} ({{.Format}}){{end}}</td><td>{{if .Required}}yes{{else}}no{{end}}</td><td>{{.Description}}</td></tr>
{{end}}</table>
{{end}}{{if .Returns}}<h3>Responses</h3>
<table>
<tr><th>Status</th><th>Type</th><th>Description</th></tr>
{{range .Returns}}<tr><td>{{.StatusCode}}</td><td>{{.Type}}</td><td>{{.Description}}</td></tr>
{{end}}</table>
{{end}}{{range .Extra}}<p><strong>{{.Name}}:</strong> {{join .Values "; "}}</p>
{{end}}{{if .Source}}<p class="source">Defined at {{.Source}}</p>
{{end}}</div>
{{end}}`
}

// DefaultTemplateRegistry holds the built-in document templates
var DefaultTemplateRegistry = NewTemplateRegistry()
