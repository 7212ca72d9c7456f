// ABOUTME: Document is the generic key-value record read from content collections
// ABOUTME: Every field lookup is optional; a missing or mistyped field reports ok=false
package models

import (
	"strings"
)

// Document is a semi-structured record from the projects or certificates collection.
// Nested objects are Document or map[string]any, arrays are []any or typed slices.
type Document map[string]any

// Lookup resolves a dotted path such as "description.overview".
func (d Document) Lookup(path string) (any, bool) {
	var cur any = d
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// String returns a non-empty string field.
func (d Document) String(path string) (string, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Strings returns the non-empty string elements of an array field.
func (d Document) Strings(path string) []string {
	v, ok := d.Lookup(path)
	if !ok {
		return nil
	}
	var out []string
	switch arr := v.(type) {
	case []string:
		for _, s := range arr {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range arr {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Sub returns a nested object field.
func (d Document) Sub(path string) (Document, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return nil, false
	}
	return asMap(v)
}

// Float returns a numeric field as float64.
func (d Document) Float(path string) (float64, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Vector returns a numeric array field, such as the stored embedding.
func (d Document) Vector(path string) ([]float32, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return nil, false
	}
	switch arr := v.(type) {
	case []float32:
		return arr, len(arr) > 0
	case []float64:
		out := make([]float32, len(arr))
		for i, f := range arr {
			out[i] = float32(f)
		}
		return out, len(out) > 0
	case []any:
		out := make([]float32, 0, len(arr))
		for _, item := range arr {
			f, ok := toFloat(item)
			if !ok {
				return nil, false
			}
			out = append(out, float32(f))
		}
		return out, len(out) > 0
	}
	return nil, false
}

// Clone deep-copies maps and slices so callers can't mutate shared state.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return cloneValue(d).(Document)
}

// Without returns a copy minus the named top-level keys.
func (d Document) Without(keys ...string) Document {
	out := d.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case Document:
		out := make(Document, len(x))
		for k, val := range x {
			out[k] = cloneValue(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = cloneValue(val)
		}
		return out
	case []string:
		return append([]string(nil), x...)
	case []float32:
		return append([]float32(nil), x...)
	case []float64:
		return append([]float64(nil), x...)
	default:
		return v
	}
}

func asMap(v any) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return Document(m), true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
