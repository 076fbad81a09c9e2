// Package decode converts loosely typed values, such as workflow state read
// back from a checkpoint, into concrete Go types.
package decode

import "encoding/json"

// FromMap converts a map into T through a JSON round trip.
func FromMap[T any](data map[string]any) (T, error) {
	return Into[T](data)
}

// Into converts v into T. A value that already has type T is returned as is;
// anything else takes a JSON round trip, which covers values restored from a
// JSON checkpoint as maps and slices of any.
func Into[T any](v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}

	var result T
	b, err := json.Marshal(v)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}
