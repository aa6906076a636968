// Package paths converts framework path literals into {name} templates.
package paths

import (
	"strings"

	"github.com/toyz/routedoc/internal/models"
)

// Normalize rewrites every `:identifier` marker in an Express-style path into
// `{identifier}` and returns the structural path parameters in order of
// appearance. An identifier starts with a letter or underscore and continues
// with letters, digits or underscores.
//
// Anything that is not a marker (wildcards, regular expression fragments,
// already normalized placeholders) is copied unchanged.
func Normalize(path string) (string, []models.Param) {
	var (
		out    strings.Builder
		params []models.Param
	)
	out.Grow(len(path) + 2)

	i := 0
	for i < len(path) {
		if path[i] == ':' && i+1 < len(path) && isIdentStart(path[i+1]) {
			j := i + 2
			for j < len(path) && isIdentPart(path[j]) {
				j++
			}
			name := path[i+1 : j]

			out.WriteByte('{')
			out.WriteString(name)
			out.WriteByte('}')
			params = append(params, Structural(name))

			i = j
			continue
		}

		out.WriteByte(path[i])
		i++
	}

	return out.String(), params
}

// Structural creates the parameter implied by a path marker
func Structural(name string) models.Param {
	return models.Param{
		Name:     name,
		Type:     "string",
		In:       models.LocationPath,
		Required: true,
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
