package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state request field: absent, explicitly null, or set to a value.
// Update payloads use it so that an omitted key leaves the stored field untouched
// while an explicit empty value (e.g. "subCategories": []) replaces it.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns an Optional carrying v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON is only invoked when the key is present in the payload.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether the key was supplied with a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}
