// Package optional distinguishes an absent JSON key from an explicit null
// in partial-update payloads.
package optional

import (
	"bytes"
	"encoding/json"
)

// Field is absent when Set is false. A present null leaves Null true and
// Value at its zero value.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(b, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns nil for absent or null fields.
func (f Field[T]) Ptr() *T {
	if !f.Set || f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// Apply overwrites *dst when the field was present: nil for null, the value otherwise.
func Apply[T any](dst **T, f Field[T]) {
	if !f.Set {
		return
	}
	*dst = f.Ptr()
}
