package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func TestMetadata_Add(t *testing.T) {
	metadata := Metadata{}

	metadata.Add("deprecated", "use v2")
	assert.Equal(t, ScalarValue("use v2"), metadata["deprecated"])

	metadata.Add("tags", "users")
	metadata.Add("tags", "admin")
	assert.Equal(t, ListValue("users", "admin"), metadata["tags"])

	metadata.Add("tags", "internal")
	assert.Equal(t, []string{"users", "admin", "internal"}, metadata["tags"].Strings())
	assert.Equal(t, "users, admin, internal", metadata.Text("tags", ", "))
	assert.Equal(t, "", metadata.Text("missing", ", "))

	metadata.Add(ParamTag, "ignored")
	metadata.Add(ReturnsTag, "ignored")
	assert.NotContains(t, metadata, ParamTag)
	assert.NotContains(t, metadata, ReturnsTag)

	assert.Equal(t, []string{"deprecated", "tags"}, metadata.Keys())
}

func TestMetadata_ParamsAndReturns(t *testing.T) {
	metadata := Metadata{}
	metadata.AddParam(Param{Name: "id", Type: "string", In: LocationPath})
	metadata.AddParam(Param{Name: "q", Type: "string", In: LocationQuery})
	metadata.AddReturn(Return{Type: "User", StatusCode: 200})

	assert.Equal(t, ParamListTag, metadata[ParamTag].Kind)
	assert.Equal(t, 2, metadata[ParamTag].Len())
	assert.Equal(t, ReturnListTag, metadata[ReturnsTag].Kind)
	assert.Equal(t, 200, metadata.Returns()[0].StatusCode)

	metadata.SetParams([]Param{{Name: "id"}})
	assert.Len(t, metadata.Params(), 1)

	metadata.SetParams(nil)
	assert.NotContains(t, metadata, ParamTag)
	assert.Nil(t, metadata.Params())
}

func TestTagValue_JSON(t *testing.T) {
	metadata := Metadata{
		"summary": ScalarValue("Fetch"),
		"tags":    ListValue("a", "b"),
		"empty":   {Kind: ListTag},
		ParamTag:  ParamListValue(Param{Name: "id", Type: "string", In: LocationPath, Required: true, Description: "id parameter"}),
	}

	content, err := json.Marshal(metadata)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"summary": "Fetch",
		"tags": ["a", "b"],
		"empty": [],
		"param": [{"name": "id", "type": "string", "in": "path", "required": true, "description": "id parameter"}]
	}`, string(content))
}

func TestTagValue_YAML(t *testing.T) {
	metadata := Metadata{
		"summary":  ScalarValue("Fetch"),
		"tags":     ListValue("a", "b"),
		ReturnsTag: ReturnListValue(Return{Type: "User", StatusCode: 200, Description: "ok"}),
	}

	content, err := yaml.Marshal(metadata)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(content, &decoded))
	assert.Equal(t, "Fetch", decoded["summary"])
	assert.Equal(t, []interface{}{"a", "b"}, decoded["tags"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"type": "User", "statusCode": 200, "description": "ok"},
	}, decoded[ReturnsTag])
}

func TestRoute_OperationID(t *testing.T) {
	get := Route{Method: MethodGet, Path: "/users/{id}"}

	assert.Equal(t, get.OperationID(), Route{Method: MethodGet, Path: "/users/{id}", Description: "other"}.OperationID())
	assert.NotEqual(t, get.OperationID(), Route{Method: MethodPost, Path: "/users/{id}"}.OperationID())
	assert.Len(t, get.OperationID(), 36)
}

func TestParseMethod(t *testing.T) {
	for _, method := range AllMethods() {
		name := map[Method]string{
			MethodGet: "get", MethodPost: "post", MethodPut: "put", MethodDelete: "delete",
			MethodPatch: "patch", MethodHead: "head", MethodOptions: "options",
		}[method]
		parsed, ok := ParseMethod(name)
		assert.True(t, ok, name)
		assert.Equal(t, method, parsed)
	}

	for _, name := range []string{"GET", "all", "use", "route", ""} {
		_, ok := ParseMethod(name)
		assert.False(t, ok, name)
	}
}

func TestParseLocation(t *testing.T) {
	location, ok := ParseLocation("formData")
	assert.True(t, ok)
	assert.Equal(t, LocationFormData, location)

	_, ok = ParseLocation("cookie")
	assert.False(t, ok)
}

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		location SourceLocation
		expected string
	}{
		{location: SourceLocation{}, expected: ""},
		{location: SourceLocation{File: "app.js"}, expected: "app.js"},
		{location: SourceLocation{File: "app.js", Line: 4}, expected: "app.js:4"},
		{location: SourceLocation{File: "app.js", Line: 4, Column: 2}, expected: "app.js:4:2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.location.String())
	}
}
