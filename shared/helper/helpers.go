package helper

import (
	"fmt"
	"reflect"
)

// AsOr asserts v to T, falling back when v is nil or of another type.
func AsOr[T any](v any, fallback T) T {
	if t, ok := v.(T); ok {
		return t
	}
	return fallback
}

// MustAs asserts v to T. A nil v yields the zero T.
// Use when a mismatch is a programming error.
func MustAs[T any](v any) T {
	var zero T
	if v == nil {
		return zero
	}
	t, ok := v.(T)
	if !ok {
		panic(fmt.Errorf("unexpected type: %T, want %v", v, reflect.TypeOf((*T)(nil)).Elem()))
	}
	return t
}
