package annotations

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/routedoc/internal/models"
)

// tagLexer tokenizes the head of a structured tag line, everything before
// the " - description" separator.
var tagLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Tag", Pattern: `@[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
	{Name: "Punct", Pattern: `[{}\[\].]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// paramHead is the grammar of `@param {type} name.location[.required]`
type paramHead struct {
	Type     string `parser:"'@param' '{' @Ident @( '[' ']' )? '}'"`
	Name     string `parser:"@Ident"`
	Location string `parser:"'.' @Ident"`
	Required bool   `parser:"( '.' @'required' )?"`
}

// returnsHead is the grammar of `@returns {type} status`
type returnsHead struct {
	Type   string `parser:"'@returns' '{' @Ident @( '[' ']' )? '}'"`
	Status string `parser:"@Number"`
}

var (
	paramParser = participle.MustBuild[paramHead](
		participle.Lexer(tagLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	returnsParser = participle.MustBuild[returnsHead](
		participle.Lexer(tagLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)

// ParseParamLine parses `@param {<type>} <name>.<location>[.required] - <description>`.
// Required is true iff ".required" occurs anywhere in the line.
func ParseParamLine(line string) (models.Param, error) {
	line = strings.TrimSpace(line)

	head, description, found := strings.Cut(line, "-")
	if !found {
		return models.Param{}, syntaxError(models.ParamTag, line, "missing '- description' separator", nil)
	}

	parsed, err := paramParser.ParseString("", head)
	if err != nil {
		return models.Param{}, syntaxError(models.ParamTag, line, "expected {type} name.location", err)
	}

	location, ok := models.ParseLocation(parsed.Location)
	if !ok {
		return models.Param{}, validationError(models.ParamTag, line, "unknown location '"+parsed.Location+"'")
	}

	return models.Param{
		Name:        parsed.Name,
		Type:        parsed.Type,
		In:          location,
		Required:    strings.Contains(line, ".required"),
		Description: strings.TrimSpace(description),
	}, nil
}

// ParseReturnsLine parses `@returns {<type>} <statusCode> - <description>`
// where the status code has exactly three digits.
func ParseReturnsLine(line string) (models.Return, error) {
	line = strings.TrimSpace(line)

	head, description, found := strings.Cut(line, "-")
	if !found {
		return models.Return{}, syntaxError(models.ReturnsTag, line, "missing '- description' separator", nil)
	}

	parsed, err := returnsParser.ParseString("", head)
	if err != nil {
		return models.Return{}, syntaxError(models.ReturnsTag, line, "expected {type} status", err)
	}

	if len(parsed.Status) != 3 {
		return models.Return{}, validationError(models.ReturnsTag, line, "status code must have three digits")
	}
	status, err := strconv.Atoi(parsed.Status)
	if err != nil {
		return models.Return{}, syntaxError(models.ReturnsTag, line, "invalid status code", err)
	}

	return models.Return{
		Type:        parsed.Type,
		StatusCode:  status,
		Description: strings.TrimSpace(description),
	}, nil
}
