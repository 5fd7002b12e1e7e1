package coro

import (
	"github.com/stackco/coro/internal/bytestack"
	"github.com/stackco/coro/internal/engine"

	coroerr "github.com/stackco/coro/errors"
)

// Body is a coroutine's entry function. It receives a *Ref scoped to its
// own call frame (spec §4.4: "validity is coextensive with the call frame
// that received it") — never store ref past the function returning.
type Body func(ref *Ref)

// Coroutine is the owning handle (spec §4.4): move-only, drives the
// coroutine with Resume, and destroys it with Close. Not safe to copy by
// value — pass *Coroutine, never Coroutine. A Coroutine used after Close
// (or whose zero value was never built by New) reports
// errors.ErrInvalidCoroutine from Resume and from PushT/PopT/PeekT; Valid
// reports false, State reports Dead, and a further Close returns nil.
type Coroutine struct {
	eng *engine.Coroutine
}

// Ref is the non-owning handle given to the body (spec §4.4). It exposes
// only the capabilities the body needs on itself: Yield and the typed
// data-channel operations.
type Ref struct {
	eng *engine.Coroutine
}

// New constructs a Coroutine per spec §4.2's creation contract: the entry
// function is required; everything else has a default (see config.go)
// overridable through Option.
func New(body Body, opts ...Option) (*Coroutine, error) {
	if body == nil {
		return nil, coroerr.New("create", coroerr.CodeInvalidArguments, "entry function is nil")
	}
	cfg := buildConfig(opts)

	wrapped := func(co *engine.Coroutine) {
		body(&Ref{eng: co})
	}

	eng, err := engine.New(wrapped, nil, cfg)
	if err != nil {
		return nil, err
	}
	return &Coroutine{eng: eng}, nil
}

func (c *Coroutine) valid() bool {
	return c != nil && c.eng != nil
}

// Valid reports whether c still owns a live engine coroutine, i.e. has not
// been Closed (or zero-valued).
func (c *Coroutine) Valid() bool {
	return c.valid()
}

// State returns the coroutine's current lifecycle state, or
// engine.Dead if c is invalid.
func (c *Coroutine) State() State {
	if !c.valid() {
		return Dead
	}
	return c.eng.State()
}

// Done reports whether the coroutine has reached the terminal dead state.
func (c *Coroutine) Done() bool { return c.State() == Dead }

// IsSuspended reports whether the coroutine is suspended.
func (c *Coroutine) IsSuspended() bool { return c.State() == Suspended }

// IsRunning reports whether the coroutine is running.
func (c *Coroutine) IsRunning() bool { return c.State() == Running }

// Resume transfers control into the coroutine's body (spec §4.2's resume
// contract). Fails with errors.ErrInvalidCoroutine if c has been Closed,
// errors.ErrNotSuspended if the coroutine is not currently suspended.
func (c *Coroutine) Resume() error {
	if !c.valid() {
		return coroerr.New("resume", coroerr.CodeInvalidCoroutine, "")
	}
	return c.eng.Resume()
}

// ResumeUnchecked is Resume's unchecked fast path (spec §4.4): it skips
// the validity and Suspended checks. Calling it on an invalid or
// non-suspended Coroutine is undefined behavior.
func (c *Coroutine) ResumeUnchecked() error {
	return c.eng.ResumeUnchecked()
}

// Close implements spec §4.2's destruction contract: valid only while
// Suspended or Dead. Close is idempotent — calling it twice is not an
// error, and it invalidates c so further use reports
// errors.ErrInvalidCoroutine.
func (c *Coroutine) Close() error {
	if !c.valid() {
		return nil
	}
	err := c.eng.Close()
	c.eng = nil
	return err
}

// PushT pushes a fixed-size value of type T onto the coroutine's
// byte-stack data channel from outside the body (spec §4.4's typed
// push/pop/peek on the owning handle).
func PushT[T any](c *Coroutine, v T) error {
	if !c.valid() {
		return coroerr.New("push", coroerr.CodeInvalidCoroutine, "")
	}
	return bytestack.PushT(c.eng.Stack(), v)
}

// PopT pops a fixed-size value of type T off the coroutine's byte-stack
// data channel from outside the body.
func PopT[T any](c *Coroutine) (T, error) {
	var zero T
	if !c.valid() {
		return zero, coroerr.New("pop", coroerr.CodeInvalidCoroutine, "")
	}
	return bytestack.PopT[T](c.eng.Stack())
}

// PeekT peeks a fixed-size value of type T on the coroutine's byte-stack
// data channel without popping it, from outside the body.
func PeekT[T any](c *Coroutine) (T, error) {
	var zero T
	if !c.valid() {
		return zero, coroerr.New("peek", coroerr.CodeInvalidCoroutine, "")
	}
	return bytestack.PeekT[T](c.eng.Stack())
}

func (r *Ref) valid() bool {
	return r != nil && r.eng != nil
}

// Valid reports whether r still refers to a live engine coroutine.
func (r *Ref) Valid() bool {
	return r.valid()
}

// State returns the coroutine's current lifecycle state as observed from
// inside its own body — ordinarily Running.
func (r *Ref) State() State {
	if !r.valid() {
		return Dead
	}
	return r.eng.State()
}

// Yield implements spec §4.2's yield contract, called from inside the
// coroutine's own body. Fails with errors.ErrNotRunning if called outside
// the body. A corrupted magic sentinel does not return from Yield: it ends
// the body, and the Resume that was driving it returns
// errors.ErrStackOverflow. The nesting-depth budget is checked by Resume,
// not Yield (see internal/engine/stack_guard.go).
func (r *Ref) Yield() error {
	if !r.valid() {
		return coroerr.New("yield", coroerr.CodeInvalidCoroutine, "")
	}
	return r.eng.Yield()
}

// YieldUnchecked is Yield's unchecked fast path (spec §4.4).
func (r *Ref) YieldUnchecked() error {
	return r.eng.YieldUnchecked()
}

// PushRefT pushes a fixed-size value of type T onto the coroutine's
// byte-stack data channel from inside the body.
func PushRefT[T any](r *Ref, v T) error {
	if !r.valid() {
		return coroerr.New("push", coroerr.CodeInvalidCoroutine, "")
	}
	return bytestack.PushT(r.eng.Stack(), v)
}

// PopRefT pops a fixed-size value of type T off the coroutine's byte-stack
// data channel from inside the body.
func PopRefT[T any](r *Ref) (T, error) {
	var zero T
	if !r.valid() {
		return zero, coroerr.New("pop", coroerr.CodeInvalidCoroutine, "")
	}
	return bytestack.PopT[T](r.eng.Stack())
}

// PeekRefT peeks a fixed-size value of type T on the coroutine's
// byte-stack data channel without popping it, from inside the body.
func PeekRefT[T any](r *Ref) (T, error) {
	var zero T
	if !r.valid() {
		return zero, coroerr.New("peek", coroerr.CodeInvalidCoroutine, "")
	}
	return bytestack.PeekT[T](r.eng.Stack())
}

// Current returns the Ref for the coroutine currently executing on the
// calling goroutine, and true — or nil and false if none is active
// (spec §4.4's current-coroutine lookup).
func Current() (*Ref, bool) {
	eng := engine.Current()
	if eng == nil {
		return nil, false
	}
	return &Ref{eng: eng}, true
}
