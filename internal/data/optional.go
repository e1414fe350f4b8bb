package data

import (
	"bytes"
	"encoding/json"
)

// Optional is a JSON field with an explicit presence marker. It lets a
// partial-update body distinguish three states an ordinary pointer cannot:
// the key was omitted (Set false), the key was present with a null value
// (Set and Null true), or the key was present with a value (Set true,
// Null false, Value populated).
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON is only invoked by encoding/json when the key appears in
// the body, which is what makes Set a reliable presence marker.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}
