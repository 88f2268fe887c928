package value

import (
	"math"
	"reflect"
)

// Identical is the identity comparison used for everything the tracker does not see through.
//
// Comparable values compare with ==, except floats which follow same-value
// semantics (NaN is identical to NaN, +0 is not identical to -0). Slices, maps,
// funcs and channels compare by reference. Identical never panics.
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		return sameFloat(va.Float(), vb.Float())
	case reflect.Slice:
		return va.Len() == vb.Len() && va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.UnsafePointer() == vb.UnsafePointer()
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return false
}

func sameFloat(x, y float64) bool {
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	return x == y && math.Signbit(x) == math.Signbit(y)
}
