package track

import (
	"reflect"

	"github.com/on-the-ground/trackmemo/datatype"
	"github.com/on-the-ground/trackmemo/value"
)

// Original returns the value behind a tracking wrapper.
// ok is false when v does not wrap anything.
func Original(v any) (original value.Structured, ok bool) {
	if s, isShim := v.(*Shim); isShim {
		return s.target, true
	}
	s, isStructured := v.(value.Structured)
	if !isStructured {
		return nil, false
	}
	original, ok = s.Get(value.OriginalKey).(value.Structured)
	return original, ok
}

// Detrack removes wrappers from a result graph.
//
// A wrapper is replaced by the value it wraps. Structured values, Go slices,
// maps and pointers are walked once each and rewritten in place, and only
// where the detracked value differs by identity. Go arrays and structs held
// by value cannot be written in place: when they contain a wrapper, Detrack
// returns an updated copy. Unexported struct fields are left alone.
func Detrack(v any) any {
	return detrack(v, map[any]struct{}{})
}

// ref identifies a Go container by its backing memory.
type ref struct {
	typ reflect.Type
	ptr uintptr
	len int
}

func detrack(v any, seen map[any]struct{}) any {
	if datatype.Of(v) == datatype.Null {
		return v
	}
	if original, ok := Original(v); ok {
		return original
	}
	if s, ok := v.(value.Structured); ok {
		detrackStructured(s, seen)
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer:
		detrackIn(rv, seen)
	case reflect.Array, reflect.Struct:
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		if detrackIn(cp, seen) {
			return cp.Interface()
		}
	}
	return v
}

func detrackStructured(s value.Structured, seen map[any]struct{}) {
	if _, ok := seen[s]; ok {
		return
	}
	seen[s] = struct{}{}

	for _, k := range s.OwnKeys() {
		if k.IsSymbol() {
			continue
		}
		p, ok := s.OwnProperty(k)
		if !ok || !p.Enumerable {
			continue
		}
		if d := detrack(p.Value, seen); !value.Identical(d, p.Value) {
			s.Set(k, d)
		}
	}
}

// detrackIn rewrites wrappers found inside rv and reports whether it wrote anything.
func detrackIn(rv reflect.Value, seen map[any]struct{}) bool {
	if !rv.IsValid() || !rv.CanInterface() {
		return false
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return false
		}
		old := rv.Interface()
		return replace(rv, old, detrack(old, seen))

	case reflect.Pointer:
		if rv.IsNil() {
			return false
		}
		if old, ok := rv.Interface().(value.Structured); ok {
			return replace(rv, old, detrack(old, seen))
		}
		if !mark(seen, rv) {
			return false
		}
		return detrackIn(rv.Elem(), seen)

	case reflect.Slice:
		if rv.IsNil() || !mark(seen, rv) {
			return false
		}
		changed := false
		for i := 0; i < rv.Len(); i++ {
			changed = detrackIn(rv.Index(i), seen) || changed
		}
		return changed

	case reflect.Array:
		changed := false
		for i := 0; i < rv.Len(); i++ {
			changed = detrackIn(rv.Index(i), seen) || changed
		}
		return changed

	case reflect.Struct:
		changed := false
		for i := 0; i < rv.NumField(); i++ {
			changed = detrackIn(rv.Field(i), seen) || changed
		}
		return changed

	case reflect.Map:
		if rv.IsNil() || !mark(seen, rv) {
			return false
		}
		type update struct{ key, val reflect.Value }
		var updates []update
		iter := rv.MapRange()
		for iter.Next() {
			old := iter.Value().Interface()
			d := detrack(old, seen)
			if value.Identical(d, old) {
				continue
			}
			if nv, ok := assignable(d, rv.Type().Elem()); ok {
				updates = append(updates, update{key: iter.Key(), val: nv})
			}
		}
		for _, u := range updates {
			rv.SetMapIndex(u.key, u.val)
		}
		return len(updates) > 0
	}
	return false
}

// mark records a container as walked. It reports false when it already was.
func mark(seen map[any]struct{}, rv reflect.Value) bool {
	r := ref{typ: rv.Type(), ptr: rv.Pointer()}
	if rv.Kind() == reflect.Slice {
		r.len = rv.Len()
	}
	if _, ok := seen[r]; ok {
		return false
	}
	seen[r] = struct{}{}
	return true
}

func replace(dst reflect.Value, old, d any) bool {
	if value.Identical(d, old) || !dst.CanSet() {
		return false
	}
	nv, ok := assignable(d, dst.Type())
	if !ok {
		return false
	}
	dst.Set(nv)
	return true
}

func assignable(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return rv, true
}
