package dialect

import (
	"fmt"

	"github.com/mixaill76/geminikit/internal/fieldpath"
)

// TransformFunc rewrites a single field value while it moves between the
// canonical model and a dialect wire shape.
type TransformFunc func(tc *Context, v any) (any, error)

// Field declares how one canonical field maps onto each dialect.
//
// Gemini and Vertex hold the wire path for the respective dialect; an empty
// path marks the field as unsupported there, which is an error when the
// field is present in a payload headed that way. Parent fields are written
// onto the parent object under assembly (see Context.Parent) instead of the
// concept's own output record.
type Field struct {
	Name   string // dotted path in the canonical record
	Gemini string // wire path for the Gemini Developer API, "" = unsupported
	Vertex string // wire path for Vertex AI, "" = unsupported
	Parent bool

	ToWire   TransformFunc // optional value rewrite, canonical -> wire
	FromWire TransformFunc // optional value rewrite, wire -> canonical
	Concept  *Concept      // recurse for nested concept values (record or array)
}

// Concept is a named set of field mappings for one transformable concept
// (Content, Part, Tool, generation config, ...).
type Concept struct {
	Name   string
	Fields []Field
}

func (f *Field) wirePath(d Dialect) string {
	if d == VertexAI {
		return f.Vertex
	}
	return f.Gemini
}

// ToWire converts a canonical record into the wire shape of tc.Dialect.
// Absent and nil canonical fields are skipped; present fields without a wire
// path for the dialect raise a *FieldUnsupportedError.
func ToWire(tc *Context, c *Concept, canonical map[string]any) (map[string]any, error) {
	out := map[string]any{}
	for i := range c.Fields {
		f := &c.Fields[i]
		v, ok := fieldpath.Get(canonical, f.Name)
		if !ok || v == nil {
			continue
		}
		path := f.wirePath(tc.Dialect)
		if path == "" {
			return nil, &FieldUnsupportedError{Concept: c.Name, Field: f.Name, Dialect: tc.Dialect}
		}
		if f.ToWire != nil {
			var err error
			if v, err = f.ToWire(tc, v); err != nil {
				return nil, fmt.Errorf("%s.%s: %w", c.Name, f.Name, err)
			}
		}
		if f.Concept != nil {
			var err error
			if v, err = recurse(tc, f.Concept, v, ToWire); err != nil {
				return nil, err
			}
		}
		target := out
		if f.Parent {
			if tc.Parent == nil {
				continue
			}
			target = tc.Parent
		}
		if err := fieldpath.Set(target, path, v); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", c.Name, f.Name, err)
		}
	}
	return out, nil
}

// FromWire converts a dialect wire record back into the canonical shape.
// Wire fields with no mapping for the dialect are ignored: unknown inbound
// data passes through the decoder untouched rather than failing the call.
func FromWire(tc *Context, c *Concept, wire map[string]any) (map[string]any, error) {
	out := map[string]any{}
	for i := range c.Fields {
		f := &c.Fields[i]
		path := f.wirePath(tc.Dialect)
		if path == "" {
			continue
		}
		v, ok := fieldpath.Get(wire, path)
		if !ok || v == nil {
			continue
		}
		if f.FromWire != nil {
			var err error
			if v, err = f.FromWire(tc, v); err != nil {
				return nil, fmt.Errorf("%s.%s: %w", c.Name, f.Name, err)
			}
		}
		if f.Concept != nil {
			var err error
			if v, err = recurse(tc, f.Concept, v, FromWire); err != nil {
				return nil, err
			}
		}
		if err := fieldpath.Set(out, f.Name, v); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", c.Name, f.Name, err)
		}
	}
	return out, nil
}

// recurse applies a sub-concept transformation to a nested record or,
// element-wise and order-preserving, to an array of records.
func recurse(tc *Context, c *Concept, v any, apply func(*Context, *Concept, map[string]any) (map[string]any, error)) (any, error) {
	switch vv := v.(type) {
	case map[string]any:
		return apply(tc, c, vv)
	case []any:
		out := make([]any, len(vv))
		for i, el := range vv {
			em, ok := el.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: element %d is not a record", c.Name, i)
			}
			sub, err := apply(tc, c, em)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: expected record or array, got %T", c.Name, v)
	}
}
