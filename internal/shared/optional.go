package shared

import "encoding/json"

// Optional is a patch field that distinguishes absent, null and set JSON
// values. A field left out of the payload keeps its stored value; an explicit
// null clears it.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns an Optional holding a value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Ptr returns the value as a nullable pointer, nil when the field was null.
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON records that the field was present before decoding it.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
