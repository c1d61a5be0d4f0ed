package geminikit

import (
	"encoding/json"
	"fmt"
)

// The dialect engine operates on untyped records; these helpers bridge the
// typed canonical structs to and from that representation.

func toRecord(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("geminikit: encode %T: %w", v, err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("geminikit: %T is not a record: %w", v, err)
	}
	return m, nil
}

func fromRecord[T any](v any) (*T, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("geminikit: encode record: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("geminikit: decode %T: %w", out, err)
	}
	return out, nil
}
