package memo

import (
	"context"
	"time"

	"github.com/on-the-ground/trackmemo/track"
	"github.com/on-the-ground/trackmemo/value"
)

// Memoize returns fn wrapped with a single-slot, read-tracking cache.
//
// fn receives structured arguments wrapped; see the package documentation.
// The returned function may be called from several goroutines, but calls are
// not coalesced: concurrent misses all run fn and the last to finish wins the
// slot. fn itself runs without any lock held, so it may call other memoized
// functions.
func Memoize[R any](fn func(args ...any) (R, error), opts ...Option) func(args ...any) (R, error) {
	s := newSlot[R](opts)
	return func(args ...any) (R, error) {
		ctx := context.Background()
		records, tracked, cached, hit := s.begin(ctx, args)
		if hit {
			return cached, nil
		}
		start := time.Now()
		res, err := fn(tracked...)
		return s.commit(ctx, records, res, err, time.Since(start))
	}
}

// Original returns the unwrapped value behind a tracked argument, or v itself
// when v is not tracked. Reading through Original is not recorded.
func Original(v any) any {
	if o, ok := track.Original(v); ok {
		return o
	}
	return v
}

// OriginalStructured is Original for callers that need the structured value back.
func OriginalStructured(v value.Structured) value.Structured {
	if o, ok := track.Original(v); ok {
		return o
	}
	return v
}
