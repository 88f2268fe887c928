// Package memo memoizes functions over structured arguments by what they actually read.
//
// A memoized function keeps exactly one cached call. On the next call, the
// new arguments are compared only on the properties the previous run read,
// checked for existence, or enumerated. If none of those observations changed,
// the cached result is returned without running the function, even when the
// argument objects were mutated elsewhere or replaced by different objects with
// the same observed content.
//
//	total := memo.Memoize(func(args ...any) (int, error) {
//	    cart := args[0]
//	    n := 0
//	    for i := 0; i < value.Length(value.Field(cart, "items")); i++ {
//	        n += value.Field(value.At(value.Field(cart, "items"), i), "price").(int)
//	    }
//	    return n, nil
//	})
//
// Structured arguments reach the function wrapped, so it must access them
// through value.Structured (or the value.Field family of helpers). Type
// asserting an argument to *value.Object bypasses tracking and fails, because
// the function holds a wrapper. Use Original to get at the unwrapped value.
//
// Results are detracked before they are cached: wrappers that ended up in the
// returned graph are replaced by the values they wrap, so returning
// args[0].nested hands the caller the caller's own nested value.
//
// Errors and panics from the wrapped function are never cached.
package memo
