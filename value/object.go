package value

import (
	"cmp"
	"fmt"
	"slices"
)

var (
	_ Structured = (*Object)(nil)
	_ Cloner     = (*Object)(nil)
)

// Object is a keyed structured value with an optional prototype.
//
// Own keys are listed the way a JavaScript engine lists them: integer-like
// names in ascending numeric order, then the other names in insertion order,
// then symbols in insertion order.
type Object struct {
	proto      *Object
	keys       []Key
	props      map[Key]*Property
	extensible bool
}

// NewObject returns an empty object inheriting from proto, which may be nil.
func NewObject(proto *Object) *Object {
	return &Object{
		proto:      proto,
		props:      map[Key]*Property{},
		extensible: true,
	}
}

// Obj builds an object from alternating name/value pairs.
//
//	value.Obj("n", 1, "tags", value.Arr("a", "b"))
func Obj(pairs ...any) *Object {
	if len(pairs)%2 != 0 {
		panic("value.Obj: odd number of arguments")
	}
	o := NewObject(nil)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("value.Obj: key at %d is %T, not string", i, pairs[i]))
		}
		o.Set(Name(name), pairs[i+1])
	}
	return o
}

func (o *Object) Proto() *Object {
	return o.proto
}

func (o *Object) Get(k Key) any {
	for cur := o; cur != nil; cur = cur.proto {
		if p, ok := cur.props[k]; ok {
			return p.Value
		}
	}
	return nil
}

func (o *Object) Has(k Key) bool {
	for cur := o; cur != nil; cur = cur.proto {
		if _, ok := cur.props[k]; ok {
			return true
		}
	}
	return false
}

func (o *Object) HasOwn(k Key) bool {
	_, ok := o.props[k]
	return ok
}

func (o *Object) OwnKeys() []Key {
	type indexed struct {
		key Key
		i   int
	}
	var ints []indexed
	names := make([]Key, 0, len(o.keys))
	var syms []Key
	for _, k := range o.keys {
		switch i, ok := k.index(); {
		case ok:
			ints = append(ints, indexed{key: k, i: i})
		case k.IsSymbol():
			syms = append(syms, k)
		default:
			names = append(names, k)
		}
	}
	if len(ints) == 0 && len(syms) == 0 {
		return names
	}
	slices.SortFunc(ints, func(a, b indexed) int { return cmp.Compare(a.i, b.i) })

	keys := make([]Key, 0, len(o.keys))
	for _, x := range ints {
		keys = append(keys, x.key)
	}
	keys = append(keys, names...)
	return append(keys, syms...)
}

func (o *Object) OwnProperty(k Key) (Property, bool) {
	p, ok := o.props[k]
	if !ok {
		return Property{}, false
	}
	return *p, true
}

// Set assigns an own data property. It fails on non-writable properties
// and on new keys of a frozen object.
func (o *Object) Set(k Key, v any) bool {
	if p, ok := o.props[k]; ok {
		if !p.Writable {
			return false
		}
		p.Value = v
		return true
	}
	if !o.extensible {
		return false
	}
	o.keys = append(o.keys, k)
	o.props[k] = &Property{Value: v, Writable: true, Enumerable: true, Configurable: true}
	return true
}

// DefineProperty creates or replaces the own property k.
// Non-configurable properties cannot be redefined.
func (o *Object) DefineProperty(k Key, p Property) bool {
	if cur, ok := o.props[k]; ok {
		if !cur.Configurable {
			return false
		}
		*cur = p
		return true
	}
	if !o.extensible {
		return false
	}
	o.keys = append(o.keys, k)
	o.props[k] = &p
	return true
}

func (o *Object) Delete(k Key) bool {
	p, ok := o.props[k]
	if !ok {
		return true
	}
	if !p.Configurable {
		return false
	}
	delete(o.props, k)
	for i, kk := range o.keys {
		if kk == k {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Freeze makes every own property locked and forbids new ones.
func (o *Object) Freeze() *Object {
	for _, p := range o.props {
		p.Writable = false
		p.Configurable = false
	}
	o.extensible = false
	return o
}

func (o *Object) HasLockedProperty() bool {
	for _, p := range o.props {
		if p.Locked() {
			return true
		}
	}
	return false
}

// CloneConfigurable copies o onto the same prototype, marking every own property configurable.
func (o *Object) CloneConfigurable() Structured {
	c := NewObject(o.proto)
	for _, k := range o.keys {
		p := *o.props[k]
		p.Configurable = true
		c.keys = append(c.keys, k)
		c.props[k] = &p
	}
	return c
}

func (o *Object) Len() int {
	return len(o.keys)
}
