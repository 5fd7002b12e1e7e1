// Package generator implements spec.md §4.5's value-producing wrapper over
// a coroutine: a body that repeatedly pushes a T and yields, and a caller
// side that pulls one T per step.
package generator

import (
	"iter"

	"github.com/stackco/coro"
)

// Generator pulls a sequence of T values out of a coroutine body that
// calls Yield after each push.
type Generator[T any] struct {
	co *coro.Coroutine
}

// Func is a generator body. It receives a *Ref scoped to its own call
// frame, through which it calls Yield to hand a value to the caller.
type Func[T any] func(ref *Ref[T])

// Ref is the non-owning handle passed to a generator body.
type Ref[T any] struct {
	ref *coro.Ref
}

// Yield is the canonical combined push-then-yield spec.md §4.5 calls
// yield_value: it pushes v onto the underlying byte-stack and then
// suspends back to whoever called Next.
func (r *Ref[T]) Yield(v T) error {
	if err := coro.PushRefT(r.ref, v); err != nil {
		return err
	}
	return r.ref.Yield()
}

// New constructs a Generator wrapping a coroutine that runs fn.
func New[T any](fn Func[T], opts ...coro.Option) (*Generator[T], error) {
	co, err := coro.New(func(ref *coro.Ref) {
		fn(&Ref[T]{ref: ref})
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Generator[T]{co: co}, nil
}

// Next implements spec.md §4.5's three-step next() contract:
//  1. if the coroutine is already dead, report no more values;
//  2. otherwise resume it; if it died during this step, report no more
//     values;
//  3. otherwise pop the T it pushed and return it.
//
// Errors returned by the underlying Resume or the pop propagate as err.
func (g *Generator[T]) Next() (v T, ok bool, err error) {
	if g.co.Done() {
		return v, false, nil
	}
	if err := g.co.Resume(); err != nil {
		return v, false, err
	}
	if g.co.Done() {
		return v, false, nil
	}
	v, err = coro.PopT[T](g.co)
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

// All returns a Go 1.23 range-over-func iterator over the generator's
// values, stopping at the first error (silently — use Next directly if
// the error itself needs inspecting).
func (g *Generator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok, err := g.Next()
			if err != nil || !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Close releases the underlying coroutine. Safe to call whether or not
// the generator has been exhausted.
func (g *Generator[T]) Close() error {
	return g.co.Close()
}
