package coro

import "github.com/stackco/coro/internal/engine"

// State is the lifecycle state of a Coroutine (spec §4.2's table), mirrored
// here so callers never need to import internal/engine.
type State = engine.State

const (
	Suspended = engine.Suspended
	Running   = engine.Running
	Normal    = engine.Normal
	Dead      = engine.Dead
)
