package engine

import (
	"fmt"

	coroerr "github.com/stackco/coro/errors"
)

// stackOverflowSignal is the internal panic value Yield raises when
// checkMagic trips. It is never allowed to escape runBody: the entry
// function "wraps the real body and, after it returns, marks the
// coroutine dead and performs a final switch back" (spec.md §4.1), and a
// tripped overflow check is spec.md §7's "best-effort diagnostic, then
// treat the coroutine as dead" — there is no recovery path, so runBody
// converts it straight into the terminal report.
type stackOverflowSignal struct {
	err error
}

// runBody is the trampoline: the goroutine entry point a fresh fiber jumps
// into. It registers the coroutine as current for this goroutine for the
// remainder of its life, runs the user body, and guarantees a terminal
// report is always sent on yieldCh exactly once — whether the body
// returned normally, called Yield one final time that happened to trip
// the overflow guard, or panicked outright.
//
// A raw panic from user code must not cross the switch boundary (spec.md
// §7): Go would otherwise unwind straight through the channel receive in
// fiber.resume and crash the resumer's goroutine, which is not the
// resumer's fault. runBody is the one place that boundary is enforced.
func runBody(f *fiber) {
	co := f.co
	glsSet(co)
	defer glsClear()

	rep := report{}
	defer func() {
		if r := recover(); r != nil {
			if sig, ok := r.(stackOverflowSignal); ok {
				rep.err = sig.err
			} else {
				rep.err = coroerr.Wrap("resume", coroerr.CodeGeneric, "coroutine body panicked", asError(r))
			}
		}
		co.state.Store(int32(Dead))
		rep.dead = true
		f.yieldCh <- rep
	}()

	co.body(co)
}

// asError normalizes an arbitrary recovered panic value into an error.
func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
