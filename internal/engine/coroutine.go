// Package engine implements the coroutine object, the context-switch
// primitive, and the current-coroutine invariant described in spec.md
// §§3-4.2. Nothing outside this module touches Coroutine directly; the
// root coro package wraps it in the owning/non-owning handles spec.md
// §4.4 describes.
package engine

import (
	"sync/atomic"

	"github.com/stackco/coro/internal/bytestack"

	coroerr "github.com/stackco/coro/errors"
)

// coroutineMagic is the fixed sentinel word spec.md §3 requires: set at
// initialization, checked on every Yield as a cheap corruption detector.
const coroutineMagic uintptr = 0xC0703A9E

// State is the lifecycle state of a Coroutine, per spec.md §4.2's table.
type State int32

const (
	// Suspended is the initial state and the state a coroutine returns to
	// after a Yield.
	Suspended State = iota
	// Running means this coroutine's body is currently executing.
	Running
	// Normal means this coroutine has resumed another coroutine and is
	// waiting for it to yield or die.
	Normal
	// Dead is the terminal state: the entry function has returned.
	Dead
)

func (s State) String() string {
	switch s {
	case Suspended:
		return "suspended"
	case Running:
		return "running"
	case Normal:
		return "normal"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Body is the entry function of a coroutine. co is the same Coroutine the
// owner holds; while the body is running it doubles as spec.md §4.4's
// non-owning handle, exposing Yield/Push/Pop/Peek. The root coro package
// wraps co in a Ref before handing it to user code, so user code never
// sees the owner-only Resume/Close methods.
type Body func(co *Coroutine)

// Coroutine is the single-threaded, exclusively-owned object described in
// spec.md §3. It is mutated only by its owner (through Resume) and by code
// running inside its own body (through Yield/Push/Pop/Peek).
type Coroutine struct {
	fiber *fiber

	body     Body
	userData any

	stack *bytestack.Stack // the byte-stack data channel (spec.md §4.3)

	previous *Coroutine // restored on yield/death; non-nil only while Running or Normal

	stackSize uint32
	maxDepth  int
	depth     int

	magic uintptr

	state atomic.Int32
}

// Config mirrors the strong-typed creation contract in spec.md §3/§4.2.
type Config struct {
	StackSize    uint32
	StorageSize  uint32
	MinStackSize uint32
}

// New constructs a Coroutine per the creation contract in spec.md §4.2:
// validates arguments, clamps and aligns the stack size, allocates the
// byte-stack storage region, and readies the body to run on its first
// Resume. The byte-stack's capacity is exactly cfg.StorageSize; only the
// underlying allocation is rounded up to the 16-byte alignment. Fails with
// CodeInvalidArguments if body is nil, and with CodeOutOfMemory if the
// storage allocation cannot be satisfied. A stack size below the floor is
// clamped upward, never rejected.
func New(body Body, userData any, cfg Config) (*Coroutine, error) {
	if body == nil {
		return nil, coroerr.New("create", coroerr.CodeInvalidArguments, "entry function is nil")
	}

	stackSize := clampStackSize(cfg.StackSize, cfg.MinStackSize)
	storageSize := alignedStorageSize(cfg.StorageSize)

	storage, err := allocStorage(storageSize)
	if err != nil {
		return nil, coroerr.Wrap("create", coroerr.CodeOutOfMemory, "storage allocation failed", err)
	}

	co := &Coroutine{
		body:      body,
		userData:  userData,
		stack:     bytestack.New(storage[:cfg.StorageSize]),
		stackSize: stackSize,
		maxDepth:  maxNestingDepth(stackSize, cfg.MinStackSize),
		magic:     coroutineMagic,
	}
	co.state.Store(int32(Suspended))
	co.fiber = newFiber(co)
	return co, nil
}

// allocStorage is the one place a "real" allocation happens in this port;
// kept as its own function (rather than inlined into New) so a future
// pooled-buffer backend has a single seam to replace. make([]byte, n)
// cannot fail in Go the way a C allocator can, but the seam is kept so the
// CodeOutOfMemory path in spec.md §4.2 has somewhere to attach if a pooled
// allocator is plugged in later.
func allocStorage(size uint32) ([]byte, error) {
	return make([]byte, size), nil
}

// State returns the coroutine's current lifecycle state.
func (co *Coroutine) State() State {
	return State(co.state.Load())
}

// Stack returns the coroutine's byte-stack data channel (spec.md §4.3).
func (co *Coroutine) Stack() *bytestack.Stack {
	return co.stack
}

// UserData returns the opaque user pointer passed to New.
func (co *Coroutine) UserData() any {
	return co.userData
}

// Current returns the coroutine currently executing on the calling
// goroutine, or nil if none is active — spec.md §4.4's current-coroutine
// lookup.
func Current() *Coroutine {
	return glsCurrent()
}
