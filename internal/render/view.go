package render

import (
	"github.com/toyz/routedoc/internal/models"
)

// TagsTag is rendered as a comma-joined list instead of a labeled block
const TagsTag = "tags"

// Document is everything a renderer needs
type Document struct {
	Title       string
	Version     string
	Description string
	Routes      []models.Route
}

// Group collects the routes registered for one method and path
type Group struct {
	Anchor string
	Method models.Method
	Path   string
	Routes []RouteView
}

// RouteView is one route prepared for the document templates
type RouteView struct {
	Method      models.Method
	Path        string
	Description string
	Middlewares []string
	Tags        []string
	Params      []models.Param
	Returns     []models.Return
	Extra       []ExtraTag
	Source      string
}

// ExtraTag is any metadata tag without a dedicated layout
type ExtraTag struct {
	Name   string
	Values []string
}

// pageData is the value handed to the document templates
type pageData struct {
	Document
	Groups []Group
}

// GroupRoutes groups routes by method and path, in order of first appearance
func GroupRoutes(routes []models.Route) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, route := range routes {
		key := string(route.Method) + " " + route.Path
		i, exists := index[key]
		if !exists {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				Anchor: "op-" + route.OperationID(),
				Method: route.Method,
				Path:   route.Path,
			})
		}
		groups[i].Routes = append(groups[i].Routes, newRouteView(route))
	}

	return groups
}

func newRouteView(route models.Route) RouteView {
	view := RouteView{
		Method:      route.Method,
		Path:        route.Path,
		Description: route.Description,
		Middlewares: route.Middlewares,
		Params:      route.Params(),
		Returns:     route.Returns(),
		Source:      route.Source.String(),
	}

	for _, key := range route.Metadata.Keys() {
		switch key {
		case models.ParamTag, models.ReturnsTag:
			continue
		case TagsTag:
			view.Tags = route.Metadata[key].Strings()
		default:
			view.Extra = append(view.Extra, ExtraTag{Name: key, Values: route.Metadata[key].Strings()})
		}
	}

	return view
}
