// Package optional provides a tri-state value: a field is either unset, set to
// null, or set to a value.
//
// Partial updates depend on the difference between "not mentioned" (unset) and
// "explicitly cleared" (set to null). The zero Field is unset.
package optional

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Field[T any] struct {
	v   *T
	set bool
}

// Of returns a field set to v.
func Of[T any](v T) Field[T] {
	return Field[T]{v: &v, set: true}
}

// Null returns a field that is set but holds no value.
func Null[T any]() Field[T] {
	return Field[T]{set: true}
}

// FromPtr returns a set field holding p; a nil p yields a set-null field.
func FromPtr[T any](p *T) Field[T] {
	return Field[T]{v: p, set: true}
}

func (f *Field[T]) Set(v T) {
	f.v = &v
	f.set = true
}

// SetPtr assigns p and marks the field set, also when p is nil.
func (f *Field[T]) SetPtr(p *T) {
	f.v = p
	f.set = true
}

func (f *Field[T]) SetNull() {
	f.v = nil
	f.set = true
}

// Unset returns the field to its post-construction state.
func (f *Field[T]) Unset() {
	f.v = nil
	f.set = false
}

// AssignNullFlagged stores p but records presence only when p is nil. Older
// peers used this rule for user and publication attributes; a non-nil
// assignment on a never-set field therefore stays unset.
func (f *Field[T]) AssignNullFlagged(p *T) {
	f.v = p
	if p == nil {
		f.set = true
	}
}

func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the field holds no value, whether or not it was set.
func (f Field[T]) IsNull() bool { return f.v == nil }

// Get returns the value and whether one is present.
func (f Field[T]) Get() (T, bool) {
	if f.v == nil {
		var zero T
		return zero, false
	}
	return *f.v, true
}

// Value returns the value or the zero value of T.
func (f Field[T]) Value() T {
	v, _ := f.Get()
	return v
}

func (f Field[T]) OrElse(def T) T {
	if f.v == nil {
		return def
	}
	return *f.v
}

// Ptr returns exactly what was assigned; nil for unset and null fields.
func (f Field[T]) Ptr() *T { return f.v }

// IsZero reports whether the field is unset, which makes `omitzero` drop
// unset fields from JSON output.
func (f Field[T]) IsZero() bool { return !f.set }

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.v)
}

// UnmarshalJSON marks the field set for any present key, including null.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		f.v = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.v = &v
	return nil
}

func (f Field[T]) String() string {
	switch {
	case !f.set:
		return "<unset>"
	case f.v == nil:
		return "<null>"
	default:
		return fmt.Sprintf("%v", *f.v)
	}
}

// Equal compares presence and value.
func Equal[T comparable](a, b Field[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc compares presence, and values with eq when both hold one.
func EqualFunc[T any](a, b Field[T], eq func(T, T) bool) bool {
	if a.set != b.set || (a.v == nil) != (b.v == nil) {
		return false
	}
	if a.v == nil {
		return true
	}
	return eq(*a.v, *b.v)
}
