package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The backend wraps responses inconsistently: a bare JSON array,
// {"data": [...]}, or a resource-keyed form like {"users": [...]} have all
// been observed on the same endpoints across deployments. Every list and
// object decode goes through these two helpers so the tolerance lives in
// exactly one place.

func decodeList[T any](raw []byte, keys ...string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("upstream: decode list: %w", err)
		}
		return out, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("upstream: decode envelope: %w", err)
	}
	for _, key := range append([]string{"data"}, keys...) {
		inner, ok := envelope[key]
		if !ok {
			continue
		}
		var out []T
		if err := json.Unmarshal(inner, &out); err != nil {
			return nil, fmt.Errorf("upstream: decode %q list: %w", key, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("upstream: response carries no recognisable list")
}

func decodeObject[T any](raw []byte, keys ...string) (T, error) {
	var zero T
	trimmed := bytes.TrimSpace(raw)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return zero, fmt.Errorf("upstream: decode envelope: %w", err)
	}
	for _, key := range append([]string{"data"}, keys...) {
		inner, ok := envelope[key]
		if !ok {
			continue
		}
		innerTrimmed := bytes.TrimSpace(inner)
		if len(innerTrimmed) == 0 || innerTrimmed[0] != '{' {
			continue
		}
		var out T
		if err := json.Unmarshal(inner, &out); err != nil {
			return zero, fmt.Errorf("upstream: decode %q object: %w", key, err)
		}
		return out, nil
	}

	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return zero, fmt.Errorf("upstream: decode object: %w", err)
	}
	return out, nil
}
