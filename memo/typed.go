package memo

import "github.com/on-the-ground/trackmemo/shared/helper"

// The I<n>O<m> helpers memoize plain typed functions.
// Structured parameters must be declared as value.Structured (or any), since
// the function receives them wrapped.

func I1O1[I1, O1 any](
	fn func(I1) O1,
	opts ...Option,
) func(I1) O1 {
	memoized := Memoize(
		func(args ...any) (O1, error) {
			return fn(helper.MustAs[I1](args[0])), nil
		},
		opts...,
	)
	return func(i1 I1) O1 {
		o1, _ := memoized(i1)
		return o1
	}
}

func I2O1[I1, I2, O1 any](
	fn func(I1, I2) O1,
	opts ...Option,
) func(I1, I2) O1 {
	memoized := Memoize(
		func(args ...any) (O1, error) {
			return fn(helper.MustAs[I1](args[0]), helper.MustAs[I2](args[1])), nil
		},
		opts...,
	)
	return func(i1 I1, i2 I2) O1 {
		o1, _ := memoized(i1, i2)
		return o1
	}
}

func I3O1[I1, I2, I3, O1 any](
	fn func(I1, I2, I3) O1,
	opts ...Option,
) func(I1, I2, I3) O1 {
	memoized := Memoize(
		func(args ...any) (O1, error) {
			return fn(
				helper.MustAs[I1](args[0]),
				helper.MustAs[I2](args[1]),
				helper.MustAs[I3](args[2]),
			), nil
		},
		opts...,
	)
	return func(i1 I1, i2 I2, i3 I3) O1 {
		o1, _ := memoized(i1, i2, i3)
		return o1
	}
}

type pair[O1, O2 any] struct {
	o1 O1
	o2 O2
}

func I1O2[I1, O1, O2 any](
	fn func(I1) (O1, O2),
	opts ...Option,
) func(I1) (O1, O2) {
	memoized := Memoize(
		func(args ...any) (pair[O1, O2], error) {
			o1, o2 := fn(helper.MustAs[I1](args[0]))
			return pair[O1, O2]{detrackAs(o1), detrackAs(o2)}, nil
		},
		opts...,
	)
	return func(i1 I1) (O1, O2) {
		p, _ := memoized(i1)
		return p.o1, p.o2
	}
}

func I2O2[I1, I2, O1, O2 any](
	fn func(I1, I2) (O1, O2),
	opts ...Option,
) func(I1, I2) (O1, O2) {
	memoized := Memoize(
		func(args ...any) (pair[O1, O2], error) {
			o1, o2 := fn(helper.MustAs[I1](args[0]), helper.MustAs[I2](args[1]))
			return pair[O1, O2]{detrackAs(o1), detrackAs(o2)}, nil
		},
		opts...,
	)
	return func(i1 I1, i2 I2) (O1, O2) {
		p, _ := memoized(i1, i2)
		return p.o1, p.o2
	}
}
