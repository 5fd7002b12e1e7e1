// Package bytestack implements the fixed-capacity LIFO byte buffer
// described in spec.md §4.3: the data channel a coroutine's owner and
// body use to pass values across a resume/yield boundary.
package bytestack

import (
	"reflect"
	"sync"
	"unsafe"

	coroerr "github.com/stackco/coro/errors"
)

// MaxTypedElementSize is spec.md §4.3's "at most 1 KiB" bound on the
// element type used with PushT/PopT/PeekT.
const MaxTypedElementSize = 1024

// Stack is a fixed-capacity last-in-first-out byte buffer. It is not safe
// for concurrent use — like the Coroutine it is embedded in, it is a
// single-threaded object mutated only by whichever of owner or body
// currently holds the coroutine's attention.
type Stack struct {
	buf    []byte
	stored uint32
}

// New wraps buf as a Stack with capacity len(buf) and zero bytes stored.
func New(buf []byte) *Stack {
	return &Stack{buf: buf}
}

// Len returns the number of bytes currently stored.
func (s *Stack) Len() uint32 {
	return s.stored
}

// Cap returns the total capacity.
func (s *Stack) Cap() uint32 {
	return uint32(len(s.buf))
}

// Push copies src onto the top of the stack. Fails with
// CodeNotEnoughSpace if src would not fit; no partial writes occur. A
// zero-length src is always a no-op success, per spec.md §4.3.
func (s *Stack) Push(src []byte) error {
	n := uint32(len(src))
	if n == 0 {
		return nil
	}
	if s.stored+n > s.Cap() {
		return coroerr.New("push", coroerr.CodeNotEnoughSpace, "")
	}
	copy(s.buf[s.stored:s.stored+n], src)
	s.stored += n
	return nil
}

// Pop copies the top len(dst) bytes into dst and retreats the cursor. The
// byte count is always len(dst), so a nil or zero-length dst is a no-op
// success; Pop has no pop-and-discard form. Fails with
// CodeNotEnoughSpace if fewer than len(dst) bytes are stored; the cursor
// is left unchanged on failure.
func (s *Stack) Pop(dst []byte) error {
	n := uint32(len(dst))
	if n == 0 {
		return nil
	}
	if n > s.stored {
		return coroerr.New("pop", coroerr.CodeNotEnoughSpace, "")
	}
	start := s.stored - n
	if dst != nil {
		copy(dst, s.buf[start:s.stored])
	}
	s.stored = start
	return nil
}

// Peek copies the top len(dst) bytes into dst without moving the cursor.
func (s *Stack) Peek(dst []byte) error {
	n := uint32(len(dst))
	if n == 0 {
		return nil
	}
	if n > s.stored {
		return coroerr.New("peek", coroerr.CodeNotEnoughSpace, "")
	}
	copy(dst, s.buf[s.stored-n:s.stored])
	return nil
}

// typed-size validation, memoized per type.
//
// REDESIGN FLAG (SPEC_FULL.md §3): spec.md requires "a storable type
// exceeding 1 KiB must be rejected at compile time." Go generics have no
// mechanism to bound sizeof(T) for an arbitrary type parameter at compile
// time, so this port performs the check once per distinct T, the first
// time it is used with PushT/PopT/PeekT, and memoizes the result — a
// violation is CodeInvalidArguments from then on, not a second check.
var sizeChecked sync.Map // map[reflect.Type]error

func checkTypedSize[T any]() error {
	var zero T
	t := reflect.TypeOf(zero)
	if cached, ok := sizeChecked.Load(t); ok {
		if cached == nil {
			return nil
		}
		return cached.(error)
	}
	var err error
	if unsafe.Sizeof(zero) > MaxTypedElementSize {
		err = coroerr.New("typed-stack", coroerr.CodeInvalidArguments, "element type exceeds 1 KiB")
	}
	sizeChecked.Store(t, err)
	return err
}

// PushT pushes a fixed-size, byte-copyable value of type T onto the
// stack. T must be at most MaxTypedElementSize bytes (see the REDESIGN
// FLAG above).
func PushT[T any](s *Stack, v T) error {
	if err := checkTypedSize[T](); err != nil {
		return err
	}
	return s.Push(asBytes(&v))
}

// PopT pops a value of type T off the stack.
func PopT[T any](s *Stack) (T, error) {
	var v T
	if err := checkTypedSize[T](); err != nil {
		return v, err
	}
	err := s.Pop(asBytes(&v))
	return v, err
}

// PeekT peeks a value of type T without popping it.
func PeekT[T any](s *Stack) (T, error) {
	var v T
	if err := checkTypedSize[T](); err != nil {
		return v, err
	}
	err := s.Peek(asBytes(&v))
	return v, err
}

// asBytes views *v as its raw byte representation, for a fixed-size,
// layout-stable T. Callers hold the only reference to v for the duration
// of the call, so this is equivalent to a copy in and out.
func asBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
