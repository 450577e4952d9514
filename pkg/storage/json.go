package storage

import (
	"encoding/json"
	"fmt"
)

// JSONStore wraps a Backend and stores values as JSON.
type JSONStore struct {
	Backend
}

// NewJSONStore creates a new JSON store wrapper around a backend
func NewJSONStore(backend Backend) *JSONStore {
	return &JSONStore{Backend: backend}
}

// PutJSON stores a JSON-encoded value in a bucket
func (j *JSONStore) PutJSON(bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return j.Put(bucket, key, data)
}

// GetJSON decodes the value stored under key into v. It reports false, and
// leaves v untouched, if the key does not exist.
func (j *JSONStore) GetJSON(bucket, key []byte, v any) (bool, error) {
	data, err := j.Get(bucket, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return true, nil
}

// ForEachJSON calls fn for every key in the bucket with a function decoding
// its value.
func (j *JSONStore) ForEachJSON(bucket []byte, fn func(k []byte, decode func(v any) error) error) error {
	return j.ForEach(bucket, func(k, data []byte) error {
		return fn(k, func(v any) error {
			if err := json.Unmarshal(data, v); err != nil {
				return fmt.Errorf("failed to decode JSON: %w", err)
			}
			return nil
		})
	})
}
