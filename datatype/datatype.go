// Package datatype classifies values into canonical type tags.
//
// The tracker only cares whether a tag is structured (Object or Array).
// Every other tag is compared by identity.
package datatype

import (
	"reflect"

	"github.com/on-the-ground/trackmemo/value"
)

type Tag string

const (
	Null     Tag = "Null"
	Boolean  Tag = "Boolean"
	Number   Tag = "Number"
	String   Tag = "String"
	Symbol   Tag = "Symbol"
	Function Tag = "Function"
	Object   Tag = "Object"
	Array    Tag = "Array"

	// Go values the tracker does not see through.
	Map     Tag = "Map"
	Slice   Tag = "Slice"
	Struct  Tag = "Struct"
	Pointer Tag = "Pointer"
	Channel Tag = "Channel"
	Unknown Tag = "Unknown"
)

// Structured reports whether values of this tag are wrapped and tracked.
func (t Tag) Structured() bool {
	return t == Object || t == Array
}

// Tagger lets a value report its own tag. Tracking wrappers use it to
// classify as the value they wrap.
type Tagger interface {
	TypeTag() Tag
}

// Of returns the tag of v. It is pure and stable for the same value.
func Of(v any) Tag {
	switch x := v.(type) {
	case nil:
		return Null
	case Tagger:
		return x.TypeTag()
	case *value.Object:
		if x == nil {
			return Null
		}
		return Object
	case *value.Array:
		if x == nil {
			return Null
		}
		return Array
	case *value.Symbol:
		return Symbol
	case bool:
		return Boolean
	case string:
		return String
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return Number
	case reflect.Bool:
		return Boolean
	case reflect.String:
		return String
	case reflect.Func:
		return Function
	case reflect.Map:
		return Map
	case reflect.Slice, reflect.Array:
		return Slice
	case reflect.Struct:
		return Struct
	case reflect.Pointer, reflect.UnsafePointer:
		return Pointer
	case reflect.Chan:
		return Channel
	default:
		return Unknown
	}
}
