// internal/behavior/result.go
package behavior

import "encoding/json"

// Result is a tagged variant holding either a computed metrics value or an
// explicit insufficient-data marker. Stages that depend on another stage's
// output check OK() and forward the marker instead of recomputing.
type Result[T any] struct {
	value  T
	reason string
	ok     bool
}

// Ok wraps a successfully computed value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Insufficient creates a marker for an unmet minimum-input precondition.
func Insufficient[T any](reason string) Result[T] {
	return Result[T]{reason: reason}
}

// OK reports whether the result holds a computed value.
func (r Result[T]) OK() bool { return r.ok }

// Value returns the computed value, or the zero value when insufficient.
func (r Result[T]) Value() T { return r.value }

// Reason returns the human-readable insufficiency reason, or "" when OK.
func (r Result[T]) Reason() string { return r.reason }

// insufficiencyEnvelope is the serialized shape of an insufficient result.
// The distinguished "error" key keeps the output contract stable for
// formatting code that branches on it.
type insufficiencyEnvelope struct {
	Error string `json:"error"`
}

// MarshalJSON serializes the value directly when OK, or an envelope with
// an "error" field when insufficient.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.ok {
		return json.Marshal(r.value)
	}
	return json.Marshal(insufficiencyEnvelope{Error: r.reason})
}

// UnmarshalJSON restores a Result from its serialized form. A payload with
// an "error" key becomes an insufficiency marker; anything else is decoded
// as the value.
func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var env insufficiencyEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Error != "" {
		*r = Insufficient[T](env.Error)
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ok(v)
	return nil
}
