// Package coro implements a stackful asymmetric coroutine runtime: cooperative,
// single-threaded execution contexts that can suspend and resume from arbitrary
// call depth.
//
// A Coroutine is created with a body function and an owning handle. The owner
// drives it with Resume; the body, given a *Ref, drives itself back out with
// Yield. Values cross the resume/yield boundary through a fixed-capacity
// byte-stack data channel (PushT/PopT/PeekT).
//
// The context switch itself has no assembly: internal/engine realizes it as a
// goroutine parked on an unbuffered channel, which is the portable, GC-safe
// equivalent of saving and restoring a raw register set. See
// internal/engine/fiber.go for the rationale.
package coro
