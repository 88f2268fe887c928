// Package value defines the structured values a tracked memoizer can see through.
//
// Go has no transparent proxies, so a function that wants fine-grained
// dependency tracking is written against the Structured accessor interface
// instead of concrete types:
//
//	func total(o value.Structured) int {
//	    return value.Field(o, "price").(int) * value.Field(o, "qty").(int)
//	}
//
// Object and Array are the two structured kinds. Everything else (numbers,
// strings, Symbols, funcs, Go maps and slices) is opaque to the tracker and
// compared by identity, see Identical.
package value
