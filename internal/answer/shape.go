package answer

import "encoding/json"

// Shape tags what a decoded JSON body looks like.
type Shape int

const (
	ShapeUnknownObject Shape = iota
	ShapeString
	ShapeSequence
	ShapeObjectWithField
)

func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	case ShapeSequence:
		return "sequence"
	case ShapeObjectWithField:
		return "object-with-field"
	default:
		return "unknown-object"
	}
}

// answerFields lists the fields probed for the answer, in priority order.
var answerFields = []string{"message", "answer", "result", "html"}

// Resolved is a body classified once into its Shape. Field and Value are set
// only for ShapeObjectWithField.
type Resolved struct {
	Shape Shape
	Field string
	Value any
}

type rule struct {
	shape Shape
	match func(v any) (field string, value any, ok bool)
}

// rules is the normalization order. The first match wins.
var rules = []rule{
	{shape: ShapeString, match: func(v any) (string, any, bool) {
		s, ok := v.(string)
		return "", s, ok
	}},
	{shape: ShapeSequence, match: func(v any) (string, any, bool) {
		seq, ok := v.([]any)
		return "", seq, ok
	}},
	{shape: ShapeObjectWithField, match: func(v any) (string, any, bool) {
		obj, ok := v.(map[string]any)
		if !ok {
			return "", nil, false
		}
		for _, name := range answerFields {
			if value, present := obj[name]; present && value != nil {
				return name, value, true
			}
		}
		return "", nil, false
	}},
}

// Classify resolves a decoded JSON value into its Shape.
func Classify(v any) Resolved {
	for _, r := range rules {
		if field, value, ok := r.match(v); ok {
			return Resolved{Shape: r.shape, Field: field, Value: value}
		}
	}
	return Resolved{Shape: ShapeUnknownObject, Value: v}
}

// Text renders the resolved value as display text.
func (r Resolved) Text() string {
	switch r.Shape {
	case ShapeString:
		return r.Value.(string)
	case ShapeObjectWithField:
		if s, ok := r.Value.(string); ok {
			return s
		}
		return dump(r.Value)
	default:
		return dump(r.Value)
	}
}

// dump is the indented textual form used for anything that is not a string.
func dump(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}
