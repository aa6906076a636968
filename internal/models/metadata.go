package models

import (
	"encoding/json"
	"sort"
	"strings"
)

const (
	// ParamTag holds the reconciled parameter list
	ParamTag = "param"
	// ReturnsTag holds the documented responses
	ReturnsTag = "returns"
)

// TagKind identifies which variant a TagValue holds
type TagKind int

const (
	ScalarTag TagKind = iota
	ListTag
	ParamListTag
	ReturnListTag
)

// String returns the string representation of the tag kind
func (k TagKind) String() string {
	switch k {
	case ScalarTag:
		return "scalar"
	case ListTag:
		return "list"
	case ParamListTag:
		return "params"
	case ReturnListTag:
		return "returns"
	default:
		return "unknown"
	}
}

// TagValue is the value stored under one documentation tag name. Exactly one
// of the payload fields is meaningful, selected by Kind.
type TagValue struct {
	Kind    TagKind
	Scalar  string
	List    []string
	Params  []Param
	Returns []Return
}

// ScalarValue creates a single-valued tag
func ScalarValue(value string) TagValue {
	return TagValue{Kind: ScalarTag, Scalar: value}
}

// ListValue creates a repeated tag
func ListValue(values ...string) TagValue {
	return TagValue{Kind: ListTag, List: values}
}

// ParamListValue creates a param tag value
func ParamListValue(params ...Param) TagValue {
	return TagValue{Kind: ParamListTag, Params: params}
}

// ReturnListValue creates a returns tag value
func ReturnListValue(returns ...Return) TagValue {
	return TagValue{Kind: ReturnListTag, Returns: returns}
}

// Strings returns the free-text values of a scalar or list tag
func (v TagValue) Strings() []string {
	switch v.Kind {
	case ScalarTag:
		return []string{v.Scalar}
	case ListTag:
		return v.List
	default:
		return nil
	}
}

// Len returns the number of entries held by the value
func (v TagValue) Len() int {
	switch v.Kind {
	case ScalarTag:
		return 1
	case ListTag:
		return len(v.List)
	case ParamListTag:
		return len(v.Params)
	case ReturnListTag:
		return len(v.Returns)
	default:
		return 0
	}
}

// MarshalJSON encodes the value in its natural shape: a string, an array of
// strings or an array of records.
func (v TagValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.plain())
}

// MarshalYAML mirrors MarshalJSON for gopkg.in/yaml.v3
func (v TagValue) MarshalYAML() (interface{}, error) {
	return v.plain(), nil
}

func (v TagValue) plain() interface{} {
	switch v.Kind {
	case ListTag:
		return nonNil(v.List)
	case ParamListTag:
		if v.Params == nil {
			return []Param{}
		}
		return v.Params
	case ReturnListTag:
		if v.Returns == nil {
			return []Return{}
		}
		return v.Returns
	default:
		return v.Scalar
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// Metadata maps tag names to their values. The param and returns keys always
// hold ParamListTag and ReturnListTag values respectively.
type Metadata map[string]TagValue

// Add records a free-text tag. The first repeat of a name turns the scalar
// into a two element list; later repeats append. Values for the pinned
// param and returns keys are ignored here, use AddParam and AddReturn.
func (m Metadata) Add(name, value string) {
	if name == ParamTag || name == ReturnsTag {
		return
	}
	current, exists := m[name]
	switch {
	case !exists:
		m[name] = ScalarValue(value)
	case current.Kind == ScalarTag:
		m[name] = ListValue(current.Scalar, value)
	default:
		current.List = append(current.List, value)
		m[name] = current
	}
}

// AddParam appends a documented parameter
func (m Metadata) AddParam(p Param) {
	current := m[ParamTag]
	current.Kind = ParamListTag
	current.Params = append(current.Params, p)
	m[ParamTag] = current
}

// AddReturn appends a documented response
func (m Metadata) AddReturn(r Return) {
	current := m[ReturnsTag]
	current.Kind = ReturnListTag
	current.Returns = append(current.Returns, r)
	m[ReturnsTag] = current
}

// Params returns the param list, or nil when absent
func (m Metadata) Params() []Param {
	return m[ParamTag].Params
}

// Returns returns the returns list, or nil when absent
func (m Metadata) Returns() []Return {
	return m[ReturnsTag].Returns
}

// SetParams replaces the param list; an empty list removes the key
func (m Metadata) SetParams(params []Param) {
	if len(params) == 0 {
		delete(m, ParamTag)
		return
	}
	m[ParamTag] = ParamListValue(params...)
}

// Keys returns the tag names in sorted order
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Text returns a free-text tag joined with sep, or "" when absent
func (m Metadata) Text(name, sep string) string {
	value, exists := m[name]
	if !exists {
		return ""
	}
	return strings.Join(value.Strings(), sep)
}
