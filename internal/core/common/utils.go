package common

import (
	"encoding/json"
	"fmt"
)

// ParseJSON unmarshals a JSON object embedded in a string into a type T.
// Graph stores keep opaque metadata blobs as string properties, sometimes
// with surrounding whitespace or log noise; this trims to the outermost
// object before decoding.
func ParseJSON[T any](raw string) (T, error) {
	var zero T
	jsonStr := raw

	start := -1
	end := -1

	for i, c := range jsonStr {
		if c == '{' {
			start = i
			break
		}
	}
	for i := len(jsonStr) - 1; i >= 0; i-- {
		if jsonStr[i] == '}' {
			end = i + 1
			break
		}
	}

	if start != -1 && end != -1 && start < end {
		jsonStr = jsonStr[start:end]
	} else if start == -1 {
		return zero, fmt.Errorf("no JSON object found in value (missing '{')")
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}
