// Package fieldpath implements get/set access into nested untyped records
// using dotted path expressions. Paths support three segment markers beyond
// plain keys:
//
//   - "key[]"  fan-out: apply the rest of the path to every element of the
//     array stored under key, creating the array from the written value when
//     the key is absent.
//   - "key[0]" singleton create: wrap the nested record in a one-element
//     array when the key is absent, then descend into element zero.
//   - "_self"  the current record itself, used to re-interpret a whole
//     payload as a single field's value.
//
// All payload transformation in this module is expressed as "read this path,
// write that path" rules interpreted over these primitives.
package fieldpath

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SelfSegment addresses the current record instead of descending into a key.
const SelfSegment = "_self"

// Get returns the value stored at path inside data. The second return value
// reports whether the path resolved: a missing key or a non-record value in
// the middle of the path yields (nil, false).
//
// A fan-out segment collects the remaining path from every array element and
// returns the results as a []any, with nil holes for elements where the rest
// of the path did not resolve.
func Get(data any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	return get(data, strings.Split(path, "."))
}

func get(cur any, segs []string) (any, bool) {
	if len(segs) == 0 {
		return cur, cur != nil
	}
	seg, rest := segs[0], segs[1:]

	if seg == SelfSegment {
		return get(cur, rest)
	}

	m, ok := cur.(map[string]any)
	if !ok {
		return nil, false
	}

	if key, isFan := strings.CutSuffix(seg, "[]"); isFan {
		arr, ok := m[key].([]any)
		if !ok {
			return nil, false
		}
		if len(rest) == 0 {
			return arr, true
		}
		out := make([]any, len(arr))
		for i, el := range arr {
			v, ok := get(el, rest)
			if ok {
				out[i] = v
			}
		}
		return out, true
	}

	if key, idx, isIdx := splitIndex(seg); isIdx {
		arr, ok := m[key].([]any)
		if !ok || idx >= len(arr) {
			return nil, false
		}
		return get(arr[idx], rest)
	}

	v, exists := m[seg]
	if !exists {
		return nil, false
	}
	return get(v, rest)
}

// Set writes value at path inside data, creating intermediate records as
// needed. Writing nothing (a nil or empty value) over an existing value is a
// no-op, as is rewriting an identical value; two record values are shallow
// merged; any other collision is an error naming the offending key.
func Set(data map[string]any, path string, value any) error {
	if path == "" {
		return fmt.Errorf("fieldpath: empty path")
	}
	return set(data, strings.Split(path, "."), value)
}

func set(data map[string]any, segs []string, value any) error {
	seg, rest := segs[0], segs[1:]
	last := len(rest) == 0

	if seg == SelfSegment {
		if !last {
			return set(data, rest, value)
		}
		vm, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("fieldpath: %s requires a record value, got %T", SelfSegment, value)
		}
		for k, v := range vm {
			if err := setTerminal(data, k, v); err != nil {
				return err
			}
		}
		return nil
	}

	if key, isFan := strings.CutSuffix(seg, "[]"); isFan {
		if last {
			return setTerminal(data, key, value)
		}
		return setFanOut(data, key, rest, value)
	}

	if key, idx, isIdx := splitIndex(seg); isIdx {
		if idx != 0 {
			return fmt.Errorf("fieldpath: only index 0 may be created, got %q", seg)
		}
		if _, exists := data[key]; !exists {
			data[key] = []any{map[string]any{}}
		}
		arr, ok := data[key].([]any)
		if !ok || len(arr) == 0 {
			return fmt.Errorf("fieldpath: key %q is not an array", key)
		}
		el, ok := arr[0].(map[string]any)
		if !ok {
			return fmt.Errorf("fieldpath: element 0 of %q is not a record", key)
		}
		if last {
			return set(el, []string{SelfSegment}, value)
		}
		return set(el, rest, value)
	}

	if last {
		return setTerminal(data, seg, value)
	}
	child, exists := data[seg]
	if !exists || child == nil {
		m := map[string]any{}
		data[seg] = m
		child = m
	}
	cm, ok := child.(map[string]any)
	if !ok {
		return fmt.Errorf("fieldpath: cannot descend into non-record key %q", seg)
	}
	return set(cm, rest, value)
}

// setFanOut pairs array value elements with array data elements, or
// broadcasts a scalar value to every element.
func setFanOut(data map[string]any, key string, rest []string, value any) error {
	existing, exists := data[key]
	if !exists {
		vals, ok := value.([]any)
		if !ok {
			return fmt.Errorf("fieldpath: fan-out write to absent key %q requires an array value, got %T", key, value)
		}
		arr := make([]any, len(vals))
		for i := range arr {
			arr[i] = map[string]any{}
		}
		data[key] = arr
		existing = arr
	}
	arr, ok := existing.([]any)
	if !ok {
		return fmt.Errorf("fieldpath: fan-out over non-array key %q", key)
	}

	vals, paired := value.([]any)
	if paired && len(vals) != len(arr) {
		return fmt.Errorf("fieldpath: fan-out length mismatch at key %q: %d elements, %d values", key, len(arr), len(vals))
	}
	for i, el := range arr {
		em, ok := el.(map[string]any)
		if !ok {
			return fmt.Errorf("fieldpath: element %d of %q is not a record", i, key)
		}
		v := value
		if paired {
			v = vals[i]
		}
		if err := set(em, rest, v); err != nil {
			return err
		}
	}
	return nil
}

func setTerminal(data map[string]any, key string, value any) error {
	existing, exists := data[key]
	if !exists || existing == nil {
		data[key] = value
		return nil
	}
	if isEmpty(value) {
		return nil
	}
	if reflect.DeepEqual(existing, value) {
		return nil
	}
	em, eok := existing.(map[string]any)
	vm, vok := value.(map[string]any)
	if eok && vok {
		for k, v := range vm {
			em[k] = v
		}
		return nil
	}
	return fmt.Errorf("fieldpath: conflicting values for key %q", key)
}

// isEmpty reports whether value carries no information worth overwriting an
// existing value with.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	case int:
		return v == 0
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

// splitIndex parses a trailing "[N]" index marker from a segment.
func splitIndex(seg string) (key string, idx int, ok bool) {
	if !strings.HasSuffix(seg, "]") {
		return "", 0, false
	}
	open := strings.LastIndex(seg, "[")
	if open <= 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(seg[open+1 : len(seg)-1])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return seg[:open], n, true
}
