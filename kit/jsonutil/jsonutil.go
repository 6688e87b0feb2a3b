package jsonutil

import (
	"encoding/json"
	"fmt"
)

func Serialize(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("error encoding JSON: %w", err)
	}
	return data, nil
}

func Parse[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("error decoding JSON: %w", err)
	}
	return v, nil
}

// ParseInto decodes data over an already-populated value, leaving fields
// the payload does not mention untouched.
func ParseInto(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("error decoding JSON: %w", err)
	}
	return nil
}
