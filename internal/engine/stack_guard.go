package engine

import "go.uber.org/zap"

// DefaultMaxNestingDepth bounds how many coroutines may be nested (A
// resumes B resumes C ...) on a single call chain before Resume reports
// ErrStackOverflow.
//
// REDESIGN FLAG: spec.md's yield-time overflow check takes the address of
// a fresh local variable and compares it against [stack_base,
// stack_base+stack_size). That is a C-only technique: the Go runtime moves
// a goroutine's stack during growth, so comparing raw addresses captured
// at different times is unsafe and can be silently wrong. This port
// detects unbounded growth before it becomes fatal and reports it as an
// error, but with an explicit nesting-depth counter checked at Resume
// (see checkDepth) in place of the address check, scaled from the coroutine's configured
// StackSize so a caller who asked for a bigger stack still gets to nest
// deeper, matching the spirit of spec.md §8's "more stack -> more
// headroom" expectation without pretending to manage raw memory.
const DefaultMaxNestingDepth = 2000

// maxNestingDepth derives a nesting-depth budget from a configured stack
// size, in units of DefaultMaxNestingDepth per MinStackSize-sized stack.
func maxNestingDepth(stackSize uint32, minStackSize uint32) int {
	if minStackSize == 0 {
		return DefaultMaxNestingDepth
	}
	scale := stackSize / minStackSize
	if scale == 0 {
		scale = 1
	}
	return DefaultMaxNestingDepth * int(scale)
}

// checkMagic is half of the engine's "best-effort diagnostic" (spec.md
// §7): the magic-sentinel corruption tripwire. It runs on every Yield,
// since a corrupted sentinel is evidence the running body itself has
// already trashed memory it shouldn't have.
func checkMagic(co *Coroutine) bool {
	if co.magic != coroutineMagic {
		Logger().Warn("coroutine magic sentinel corrupted",
			zap.Uintptr("got", uintptr(co.magic)),
			zap.Uintptr("want", uintptr(coroutineMagic)))
		return true
	}
	return false
}

// checkDepth is the other half: the nesting-depth budget. Unlike the
// magic check, depth is a property of the resume chain, not of the body
// that is about to run, so it is checked at Resume time — before this
// port ever switches into the child — rather than waiting for that child
// to yield.
func checkDepth(co *Coroutine) bool {
	if co.depth > co.maxDepth {
		Logger().Warn("coroutine nesting depth exceeded",
			zap.Int("depth", co.depth),
			zap.Int("max", co.maxDepth))
		return true
	}
	return false
}
