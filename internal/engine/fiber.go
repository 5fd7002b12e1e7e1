package engine

// fiber is this port's realization of spec.md §4.1's switch_context/
// trampoline pair.
//
// REDESIGN FLAG: the reference design requires hand-written per-
// architecture assembly because C/C++/Rust have no other way to swap a
// live register set and stack pointer out from under the running code.
// Go already ships exactly that primitive — a goroutine — and ships it
// safely and portably: the runtime owns the callee-saved register
// save/restore and a stack that can grow and be relocated by the GC.
// Hand-writing assembly to duplicate that would be both non-idiomatic and
// unsafe, since any raw stack-pointer value this port captured itself
// could be invalidated the moment the runtime moved the stack.
//
// A fiber instead parks its body on a dedicated background goroutine
// between turns, using two unbuffered channels as the rendezvous point.
// Because both are unbuffered, a send only completes once the other side
// is ready to receive — exactly one of the two goroutines is runnable past
// that point at any moment, which is the Go-native equivalent of
// switch_context's "atomically saves from, restores to".
type fiber struct {
	co       *Coroutine
	resumeCh chan struct{}
	yieldCh  chan report
	started  bool
}

// report is what the body goroutine hands back across yieldCh: either
// "I yielded, wake me with the next resumeCh send" or "I'm done" together
// with a terminal error, if any.
type report struct {
	err  error
	dead bool
}

func newFiber(co *Coroutine) *fiber {
	return &fiber{
		co:       co,
		resumeCh: make(chan struct{}),
		yieldCh:  make(chan report),
	}
}

// resume is the caller side of switch_context: on the first call it starts
// the body goroutine (the goroutine's own scheduling is the "trampoline
// jump"); on every later call it wakes the parked body. Either way it then
// blocks until the body yields or dies.
func (f *fiber) resume() report {
	if !f.started {
		f.started = true
		go runBody(f)
	} else {
		f.resumeCh <- struct{}{}
	}
	return <-f.yieldCh
}

// yieldAndPark is the body side of switch_context: it hands control back
// to whoever is blocked in resume, then blocks itself until resume sends
// the next wake-up signal.
func (f *fiber) yieldAndPark(rep report) {
	f.yieldCh <- rep
	<-f.resumeCh
}
