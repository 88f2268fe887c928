package memo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/on-the-ground/trackmemo/track"
	"golang.org/x/sync/semaphore"
)

// Result is the outcome of an asynchronous memoized call.
type Result[R any] struct {
	Value R
	Err   error
}

// MemoizeAsync is Memoize for functions that should run off the caller's goroutine.
//
// Calling the returned function never blocks. Calls are served one at a time,
// in call order: a call made while a recompute is in flight is queued and
// compared against the entry that recompute commits, instead of clobbering it.
// An uncontended call is decided in the caller's goroutine, so a hit is
// already on the channel when it is returned. A queued call whose ctx is done
// before its turn yields ctx.Err(). Once fn has started it runs to completion;
// a panic in fn or in a hook is reported as ErrPanicked. The channel yields
// exactly one Result and is then closed.
//
// fn may call the memoized function again, but must not wait for that result:
// the inner call is queued behind the one running fn.
func MemoizeAsync[R any](
	fn func(ctx context.Context, args ...any) (R, error),
	opts ...Option,
) func(ctx context.Context, args ...any) <-chan Result[R] {
	a := &asyncMemo[R]{
		slot:     newSlot[R](opts),
		fn:       fn,
		inflight: semaphore.NewWeighted(1),
	}
	return a.call
}

type asyncMemo[R any] struct {
	slot *slot[R]
	fn   func(ctx context.Context, args ...any) (R, error)

	// inflight is held from the moment a call is taken up until the queue is drained.
	inflight *semaphore.Weighted

	mu    sync.Mutex
	queue []*asyncCall[R]
}

type asyncCall[R any] struct {
	ctx     context.Context
	args    []any
	done    chan Result[R]
	claimed chan struct{}
}

func (c *asyncCall[R]) finish(r Result[R]) {
	c.done <- r
	close(c.done)
}

func (a *asyncMemo[R]) call(ctx context.Context, args ...any) <-chan Result[R] {
	c := &asyncCall[R]{
		ctx:     ctx,
		args:    args,
		done:    make(chan Result[R], 1),
		claimed: make(chan struct{}),
	}

	a.mu.Lock()
	if len(a.queue) == 0 && a.inflight.TryAcquire(1) {
		a.mu.Unlock()
		if a.step(c) {
			if n := a.next(); n != nil {
				go a.serve(n)
			}
		}
		return c.done
	}
	a.queue = append(a.queue, c)
	a.mu.Unlock()

	if ctx.Done() != nil {
		go a.abandonOnDone(c)
	}
	return c.done
}

// serve runs c and then every queued call, while holding inflight.
func (a *asyncMemo[R]) serve(c *asyncCall[R]) {
	for ; c != nil; c = a.next() {
		if !a.step(c) {
			return
		}
	}
}

// step answers c from the slot, or hands it to a recompute goroutine that
// carries on serving the queue. It reports whether c is already answered.
func (a *asyncMemo[R]) step(c *asyncCall[R]) bool {
	if err := c.ctx.Err(); err != nil {
		c.finish(Result[R]{Err: err})
		return true
	}
	d := a.decide(c)
	switch {
	case d.err != nil:
		c.finish(Result[R]{Err: d.err})
	case d.hit:
		c.finish(Result[R]{Value: d.cached})
	default:
		go a.recompute(c, d)
		return false
	}
	return true
}

type decision[R any] struct {
	records []*track.Record
	tracked []any
	cached  R
	hit     bool
	err     error
}

func (a *asyncMemo[R]) decide(c *asyncCall[R]) (d decision[R]) {
	defer func() {
		if r := recover(); r != nil {
			d = decision[R]{err: fmt.Errorf("%w: %v", ErrPanicked, r)}
		}
	}()
	d.records, d.tracked, d.cached, d.hit = a.slot.begin(c.ctx, c.args)
	return d
}

func (a *asyncMemo[R]) recompute(c *asyncCall[R], d decision[R]) {
	start := time.Now()
	res, err := callRecovering(c.ctx, a.fn, d.tracked)
	v, err := a.slot.commit(c.ctx, d.records, res, err, time.Since(start))
	c.finish(Result[R]{Value: v, Err: err})
	a.serve(a.next())
}

// next takes the oldest queued call, or releases inflight when there is none.
func (a *asyncMemo[R]) next() *asyncCall[R] {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.queue) == 0 {
		a.inflight.Release(1)
		return nil
	}
	c := a.queue[0]
	a.queue[0] = nil
	a.queue = a.queue[1:]
	close(c.claimed)
	return c
}

// abandonOnDone drops c from the queue when its ctx is done before its turn.
func (a *asyncMemo[R]) abandonOnDone(c *asyncCall[R]) {
	select {
	case <-c.claimed:
	case <-c.ctx.Done():
		a.mu.Lock()
		i := slices.Index(a.queue, c)
		if i >= 0 {
			a.queue = slices.Delete(a.queue, i, i+1)
		}
		a.mu.Unlock()
		if i >= 0 {
			c.finish(Result[R]{Err: c.ctx.Err()})
		}
	}
}

func callRecovering[R any](
	ctx context.Context,
	fn func(ctx context.Context, args ...any) (R, error),
	args []any,
) (res R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()
	return fn(ctx, args...)
}
