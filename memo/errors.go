package memo

import "errors"

// ErrPanicked wraps a panic raised by an asynchronously memoized function.
var ErrPanicked = errors.New("memoized function panicked")
