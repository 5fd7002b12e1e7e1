package engine

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// goroutine-local storage for the current-coroutine pointer.
//
// Every fiber runs its body on a dedicated background goroutine parked
// between turns (see fiber.go). That goroutine is registered here for its
// entire life, keyed by its own goroutine id, so that code running deep
// inside a coroutine body — with no Ref in hand — can still ask "am I
// inside a coroutine, and which one" via Current().
//
// Grounded on the goroutine-id-keyed registry in
// other_examples/dispatchrun-coroutine__gls.go, adapted to recover the id
// by parsing runtime.Stack's header instead of that file's getg()/linkname
// trick, so this file needs no //go:linkname and no assembly: see
// SPEC_FULL.md's REDESIGN FLAG for the context primitive.
var (
	glsMu    sync.RWMutex
	glsState = make(map[uint64]*Coroutine)
)

// goroutineID parses the numeric id out of "goroutine 123 [running]:\n...",
// the fixed header runtime.Stack always writes first. It is deliberately
// not cached per-goroutine: goroutine ids are reused once a goroutine
// exits, so a stale cache would point at the wrong coroutine.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	const prefix = "goroutine "
	if !bytes.HasPrefix(buf, []byte(prefix)) {
		return 0
	}
	buf = buf[len(prefix):]
	end := bytes.IndexByte(buf, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(buf[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// glsSet registers co as the current coroutine for the calling goroutine.
func glsSet(co *Coroutine) {
	id := goroutineID()
	glsMu.Lock()
	glsState[id] = co
	glsMu.Unlock()
}

// glsClear removes the current-coroutine registration for the calling
// goroutine, restoring the "no coroutine active here" state.
func glsClear() {
	id := goroutineID()
	glsMu.Lock()
	delete(glsState, id)
	glsMu.Unlock()
}

// glsCurrent returns the coroutine registered for the calling goroutine,
// or nil if none is active.
func glsCurrent() *Coroutine {
	id := goroutineID()
	glsMu.RLock()
	co := glsState[id]
	glsMu.RUnlock()
	return co
}
