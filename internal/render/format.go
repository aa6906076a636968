package render

import (
	"fmt"
	"strings"
)

// Format is an output format
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Output file names per format
const (
	MarkdownFile = "API_DOCS.md"
	HTMLFile     = "index.html"
	JSONFile     = "routes.json"
	YAMLFile     = "routes.yaml"
)

// FormatNames lists every accepted --format value
var FormatNames = []string{"markdown", "html", "json", "yaml", "both", "all"}

// FileName returns the file a format is written to
func (f Format) FileName() string {
	switch f {
	case FormatHTML:
		return HTMLFile
	case FormatJSON:
		return JSONFile
	case FormatYAML:
		return YAMLFile
	default:
		return MarkdownFile
	}
}

// ContentType returns the MIME type served for a format
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// ParseFormats expands a --format value into the formats to produce.
// "both" is markdown and html, "all" adds json and yaml.
func ParseFormats(name string) ([]Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md":
		return []Format{FormatMarkdown}, nil
	case "html":
		return []Format{FormatHTML}, nil
	case "json":
		return []Format{FormatJSON}, nil
	case "yaml", "yml":
		return []Format{FormatYAML}, nil
	case "both":
		return []Format{FormatMarkdown, FormatHTML}, nil
	case "all":
		return []Format{FormatMarkdown, FormatHTML, FormatJSON, FormatYAML}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q, use one of %s", name, strings.Join(FormatNames, ", "))
	}
}

// AllFileNames returns the output file names of every format
func AllFileNames() []string {
	return []string{MarkdownFile, HTMLFile, JSONFile, YAMLFile}
}
