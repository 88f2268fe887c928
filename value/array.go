package value

var (
	_ Structured = (*Array)(nil)
	_ Cloner     = (*Array)(nil)
)

// Array is an ordered-indexable structured value.
// Its own keys are the element indexes followed by the non-enumerable length.
type Array struct {
	elems  []any
	frozen bool
}

func Arr(elems ...any) *Array {
	return &Array{elems: elems}
}

func (a *Array) Len() int {
	return len(a.elems)
}

// At returns the i-th element, or nil when i is out of range.
func (a *Array) At(i int) any {
	if i < 0 || i >= len(a.elems) {
		return nil
	}
	return a.elems[i]
}

func (a *Array) Push(vs ...any) bool {
	if a.frozen {
		return false
	}
	a.elems = append(a.elems, vs...)
	return true
}

func (a *Array) Get(k Key) any {
	if k == LengthKey {
		return len(a.elems)
	}
	if i, ok := k.index(); ok {
		return a.At(i)
	}
	return nil
}

func (a *Array) Has(k Key) bool {
	return a.HasOwn(k)
}

func (a *Array) HasOwn(k Key) bool {
	if k == LengthKey {
		return true
	}
	i, ok := k.index()
	return ok && i < len(a.elems)
}

func (a *Array) OwnKeys() []Key {
	keys := make([]Key, 0, len(a.elems)+1)
	for i := range a.elems {
		keys = append(keys, Index(i))
	}
	return append(keys, LengthKey)
}

func (a *Array) OwnProperty(k Key) (Property, bool) {
	if k == LengthKey {
		return Property{Value: len(a.elems), Writable: !a.frozen}, true
	}
	i, ok := k.index()
	if !ok || i >= len(a.elems) {
		return Property{}, false
	}
	return Property{
		Value:        a.elems[i],
		Writable:     !a.frozen,
		Enumerable:   true,
		Configurable: !a.frozen,
	}, true
}

// Set assigns an element, growing the array with nils when k is past the end.
// Assigning LengthKey truncates or grows the array.
func (a *Array) Set(k Key, v any) bool {
	if a.frozen {
		return false
	}
	if k == LengthKey {
		n, ok := v.(int)
		if !ok || n < 0 {
			return false
		}
		if n <= len(a.elems) {
			a.elems = a.elems[:n]
		} else {
			a.elems = append(a.elems, make([]any, n-len(a.elems))...)
		}
		return true
	}
	i, ok := k.index()
	if !ok {
		return false
	}
	if i >= len(a.elems) {
		a.elems = append(a.elems, make([]any, i+1-len(a.elems))...)
	}
	a.elems[i] = v
	return true
}

// Delete clears the element at k. The array keeps its length.
func (a *Array) Delete(k Key) bool {
	if a.frozen || k == LengthKey {
		return false
	}
	if i, ok := k.index(); ok && i < len(a.elems) {
		a.elems[i] = nil
	}
	return true
}

func (a *Array) Freeze() *Array {
	a.frozen = true
	return a
}

func (a *Array) HasLockedProperty() bool {
	return a.frozen
}

func (a *Array) CloneConfigurable() Structured {
	elems := make([]any, len(a.elems))
	copy(elems, a.elems)
	return &Array{elems: elems}
}
