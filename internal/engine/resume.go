package engine

import coroerr "github.com/stackco/coro/errors"

// Resume implements spec.md §4.2's resume contract. Precondition:
// State() == Suspended.
func (co *Coroutine) Resume() error {
	if co.State() != Suspended {
		return coroerr.New("resume", coroerr.CodeNotSuspended, "")
	}
	return co.ResumeUnchecked()
}

// ResumeUnchecked is Resume's unchecked fast path (spec.md §4.4): it skips
// the Suspended precondition check entirely. Calling it on a coroutine
// that is not Suspended is undefined behavior — the documented contract
// this method trades away for a few percent of throughput in tight
// scheduling loops whose caller has already verified liveness.
func (co *Coroutine) ResumeUnchecked() error {
	caller := Current()

	co.previous = caller
	if caller != nil {
		caller.state.Store(int32(Normal))
		co.depth = caller.depth + 1
	} else {
		co.depth = 1
	}

	if checkDepth(co) {
		co.state.Store(int32(Dead))
		if caller != nil {
			caller.state.Store(int32(Running))
		}
		co.previous = nil
		return coroerr.New("resume", coroerr.CodeStackOverflow, "nesting depth exceeded")
	}

	co.state.Store(int32(Running))

	rep := co.fiber.resume()

	if caller != nil {
		caller.state.Store(int32(Running))
	}
	co.previous = nil

	if rep.dead {
		co.state.Store(int32(Dead))
		return rep.err
	}
	return nil
}

// Close implements spec.md §4.2's destruction contract: valid only in
// Suspended or Dead, otherwise CodeInvalidOperation. There is no
// deallocator callback to invoke in this port — the storage buffer and
// fiber are ordinary Go values collected by the GC once unreferenced — so
// Close exists to enforce the precondition and to make the coroutine
// unusable afterward, matching spec.md §3's ownership/lifecycle contract.
func (co *Coroutine) Close() error {
	switch co.State() {
	case Suspended, Dead:
		co.state.Store(int32(Dead))
		return nil
	default:
		return coroerr.New("close", coroerr.CodeInvalidOperation, "coroutine is running or normal")
	}
}
