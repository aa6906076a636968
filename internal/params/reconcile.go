// Package params merges the path parameters implied by a route's path with
// the parameters declared in its documentation comment.
package params

import (
	"github.com/toyz/routedoc/internal/models"
)

// DefaultDescription is used for a path parameter nobody documented
func DefaultDescription(name string) string {
	return name + " parameter"
}

// Reconcile produces the final parameter list of a route.
//
// The result holds, in order:
//   - one entry per distinct structural name, in path order, merged with the
//     first documented path parameter of the same name when there is one
//   - documented path parameters that matched nothing in the path, unchanged
//     and in declaration order
//   - documented parameters in any other location, unchanged
//
// When a path parameter name is documented more than once only the first
// declaration is used.
//
// Structural entries always end up with In=path and Required=true whatever
// the documentation says.
func Reconcile(structural, documented []models.Param) []models.Param {
	var (
		pathDocs  []models.Param
		otherDocs []models.Param
	)
	for _, p := range documented {
		if p.In == models.LocationPath {
			pathDocs = append(pathDocs, p)
		} else {
			otherDocs = append(otherDocs, p)
		}
	}

	byName := make(map[string]int, len(pathDocs))
	for i, p := range pathDocs {
		if _, seen := byName[p.Name]; !seen {
			byName[p.Name] = i
		}
	}

	result := make([]models.Param, 0, len(structural)+len(documented))
	consumed := make(map[int]bool, len(pathDocs))
	emitted := make(map[string]bool, len(structural))

	for _, s := range structural {
		if emitted[s.Name] {
			continue
		}
		emitted[s.Name] = true

		i, found := byName[s.Name]
		if !found {
			result = append(result, withDefaults(s))
			continue
		}
		consumed[i] = true
		result = append(result, merge(s, pathDocs[i]))
	}

	for i, p := range pathDocs {
		// only the first declaration of a name is kept
		if consumed[i] || byName[p.Name] != i {
			continue
		}
		result = append(result, p)
	}

	return append(result, otherDocs...)
}

func withDefaults(s models.Param) models.Param {
	s.In = models.LocationPath
	s.Required = true
	if s.Type == "" {
		s.Type = "string"
	}
	if s.Description == "" {
		s.Description = DefaultDescription(s.Name)
	}
	return s
}

func merge(s, doc models.Param) models.Param {
	merged := models.Param{
		Name:        s.Name,
		Type:        firstNonEmpty(s.Type, doc.Type, "string"),
		In:          models.LocationPath,
		Required:    true,
		Description: firstNonEmpty(doc.Description, DefaultDescription(s.Name)),
		Format:      firstNonEmpty(s.Format, doc.Format),
	}
	return merged
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
