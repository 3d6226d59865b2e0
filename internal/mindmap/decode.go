package mindmap

import (
	"encoding/json"
	"fmt"
)

// decoder copies generic JSON values into a Request field by field.
// A mistyped value is recorded with its indexed path and left at its zero
// value, so decoding always reaches the end of the tree.
type decoder struct {
	violations []Violation
	// mistyped holds the paths already reported as wrong-typed.
	mistyped map[string]bool
}

func newDecoder() *decoder {
	return &decoder{mistyped: make(map[string]bool)}
}

// normalize turns any Go value into the shapes encoding/json produces for
// an untyped target: map[string]any, []any, string, float64, bool, nil.
func normalize(args map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) mismatch(path, want string, got any) {
	d.mistyped[path] = true
	d.violations = append(d.violations, Violation{
		Field:   path,
		Message: fmt.Sprintf("must be %s, got %s", want, jsonType(got)),
	})
}

func (d *decoder) request(m map[string]any) *Request {
	req := &Request{
		Title:      d.str(m, "title", "title"),
		Filename:   d.str(m, "filename", "filename"),
		OutputPath: d.str(m, "outputPath", "outputPath"),
	}
	if items, ok := d.array(m, "topics", "topics"); ok {
		req.Topics = d.topics(items, "topics")
	}
	if items, ok := d.array(m, "relationships", "relationships"); ok {
		req.Relationships = make([]Relationship, 0, len(items))
		for i, item := range items {
			path := fmt.Sprintf("relationships[%d]", i)
			obj, ok := item.(map[string]any)
			if !ok {
				d.mismatch(path, "an object", item)
				req.Relationships = append(req.Relationships, Relationship{})
				continue
			}
			req.Relationships = append(req.Relationships, Relationship{
				Title: d.presentStr(obj, "title", path+".title"),
				From:  d.str(obj, "from", path+".from"),
				To:    d.str(obj, "to", path+".to"),
			})
		}
	}
	return req
}

// topics keeps one slot per input element. JSON null and mistyped
// elements become nil slots, which the validator reports as required.
func (d *decoder) topics(items []any, prefix string) []*Topic {
	out := make([]*Topic, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		if item == nil {
			out = append(out, nil)
			continue
		}
		obj, ok := item.(map[string]any)
		if !ok {
			d.mismatch(path, "an object", item)
			out = append(out, nil)
			continue
		}
		out = append(out, d.topic(obj, path))
	}
	return out
}

func (d *decoder) topic(m map[string]any, path string) *Topic {
	t := &Topic{
		Title:   d.str(m, "title", path+".title"),
		Ref:     d.str(m, "ref", path+".ref"),
		Note:    d.str(m, "note", path+".note"),
		Labels:  d.strings(m, "labels", path+".labels"),
		Markers: d.strings(m, "markers", path+".markers"),
	}
	if items, ok := d.array(m, "children", path+".children"); ok && len(items) > 0 {
		t.Children = d.topics(items, path+".children")
	}
	return t
}

// str reads an optional string. Absent and null both yield "".
func (d *decoder) str(m map[string]any, key, path string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.mismatch(path, "a string", v)
		return ""
	}
	return s
}

// presentStr reads a string whose key must be present. The empty string
// is a valid value.
func (d *decoder) presentStr(m map[string]any, key, path string) string {
	v, ok := m[key]
	if !ok {
		d.violations = append(d.violations, Violation{Field: path, Message: "is required"})
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.mismatch(path, "a string", v)
		return ""
	}
	return s
}

// array reads an optional array. The bool is false when the key is absent,
// null or mistyped.
func (d *decoder) array(m map[string]any, key, path string) ([]any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	items, ok := v.([]any)
	if !ok {
		d.mismatch(path, "an array", v)
		return nil, false
	}
	return items, true
}

// strings reads an optional string array. Mistyped elements keep their
// slot as "" so later indices stay aligned with the input.
func (d *decoder) strings(m map[string]any, key, path string) []string {
	items, ok := d.array(m, key, path)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			d.mismatch(fmt.Sprintf("%s[%d]", path, i), "a string", item)
		}
		out = append(out, s)
	}
	return out
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
