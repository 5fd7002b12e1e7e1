package engine

import coroerr "github.com/stackco/coro/errors"

// Yield implements spec.md §4.2's yield contract. It must be called from
// inside this coroutine's own body. Precondition: State() == Running.
func (co *Coroutine) Yield() error {
	if co.State() != Running {
		return coroerr.New("yield", coroerr.CodeNotRunning, "")
	}
	return co.YieldUnchecked()
}

// YieldUnchecked is Yield's unchecked fast path (spec.md §4.4): it skips
// the Running precondition check. Calling it from outside the coroutine's
// own body, or while it is not Running, is undefined behavior.
func (co *Coroutine) YieldUnchecked() error {
	if checkMagic(co) {
		panic(stackOverflowSignal{err: coroerr.New("yield", coroerr.CodeStackOverflow, "magic sentinel corrupted")})
	}
	co.state.Store(int32(Suspended))
	co.fiber.yieldAndPark(report{dead: false})
	return nil
}

// Push copies src onto the coroutine's byte-stack. See
// internal/bytestack.Stack.Push.
func (co *Coroutine) Push(src []byte) error {
	return co.stack.Push(src)
}

// Pop copies the top len(dst) bytes off the coroutine's byte-stack into
// dst. See internal/bytestack.Stack.Pop.
func (co *Coroutine) Pop(dst []byte) error {
	return co.stack.Pop(dst)
}

// Peek copies the top len(dst) bytes without popping them. See
// internal/bytestack.Stack.Peek.
func (co *Coroutine) Peek(dst []byte) error {
	return co.stack.Peek(dst)
}

// PushUnchecked/PopUnchecked/PeekUnchecked are spec.md §4.4's unchecked
// fast paths for the byte-stack. The byte-stack itself has no further
// precondition to skip beyond its own capacity check (which is part of
// its documented contract, not a safety check), so these are plain
// aliases kept for call-site symmetry with the other *Unchecked methods.
func (co *Coroutine) PushUnchecked(src []byte) error { return co.stack.Push(src) }
func (co *Coroutine) PopUnchecked(dst []byte) error  { return co.stack.Pop(dst) }
func (co *Coroutine) PeekUnchecked(dst []byte) error { return co.stack.Peek(dst) }
