package bytestack

import (
	"errors"
	"testing"

	coroerr "github.com/stackco/coro/errors"
)

func TestPush(t *testing.T) {
	cases := []struct {
		name    string
		cap     int
		pushes  [][]byte
		wantErr bool
	}{
		{name: "fits exactly", cap: 4, pushes: [][]byte{{1, 2, 3, 4}}},
		{name: "zero-length is a no-op", cap: 4, pushes: [][]byte{{}}},
		{name: "exceeds capacity", cap: 4, pushes: [][]byte{{1, 2, 3, 4, 5}}, wantErr: true},
		{name: "second push overflows remaining space", cap: 4, pushes: [][]byte{{1, 2}, {3, 4, 5}}, wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := New(make([]byte, c.cap))
			var err error
			for _, p := range c.pushes {
				if err = s.Push(p); err != nil {
					break
				}
			}
			if c.wantErr {
				if !errors.Is(err, coroerr.ErrNotEnoughSpace) {
					t.Fatalf("Push() = %v, want ErrNotEnoughSpace", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Push() = %v, want nil", err)
			}
		})
	}
}

func TestPushNoPartialWriteOnFailure(t *testing.T) {
	s := New(make([]byte, 4))
	if err := s.Push([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := s.Push([]byte{4, 5}); !errors.Is(err, coroerr.ErrNotEnoughSpace) {
		t.Fatalf("Push() = %v, want ErrNotEnoughSpace", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (failed push must not partially land)", s.Len())
	}
}

func TestPop(t *testing.T) {
	s := New(make([]byte, 8))
	if err := s.Push([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}

	var got [2]byte
	if err := s.Pop(got[:]); err != nil {
		t.Fatalf("Pop() = %v", err)
	}
	if got != [2]byte{3, 4} {
		t.Errorf("Pop() = %v, want [3 4]", got)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	if err := s.Pop(make([]byte, 3)); !errors.Is(err, coroerr.ErrNotEnoughSpace) {
		t.Errorf("Pop() past what's stored = %v, want ErrNotEnoughSpace", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() after failed Pop() = %d, want unchanged 2", s.Len())
	}
}

func TestPopZeroLengthAndNilDstAreNoOps(t *testing.T) {
	s := New(make([]byte, 4))
	if err := s.Push([]byte{9, 9, 9}); err != nil {
		t.Fatal(err)
	}

	if err := s.Pop(nil); err != nil {
		t.Fatalf("Pop(nil) = %v, want nil", err)
	}
	if err := s.Pop([]byte{}); err != nil {
		t.Fatalf("Pop([]byte{}) = %v, want nil", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want unchanged 3 after zero-length/nil Pop", s.Len())
	}
}

func TestPeek(t *testing.T) {
	s := New(make([]byte, 8))
	if err := s.Push([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}

	var got [2]byte
	if err := s.Peek(got[:]); err != nil {
		t.Fatalf("Peek() = %v", err)
	}
	if got != [2]byte{3, 4} {
		t.Errorf("Peek() = %v, want [3 4]", got)
	}
	if s.Len() != 4 {
		t.Errorf("Len() after Peek() = %d, want unchanged 4", s.Len())
	}

	if err := s.Peek(make([]byte, 5)); !errors.Is(err, coroerr.ErrNotEnoughSpace) {
		t.Errorf("Peek() past what's stored = %v, want ErrNotEnoughSpace", err)
	}
}

// oversizedElement is well past MaxTypedElementSize regardless of struct
// padding, so PushT/PopT/PeekT must reject it without ever touching the
// underlying byte stack.
type oversizedElement struct {
	data [2 * MaxTypedElementSize]byte
}

func TestTypedOversizedElementRejected(t *testing.T) {
	s := New(make([]byte, 4096))

	if err := PushT(s, oversizedElement{}); !errors.Is(err, coroerr.ErrInvalidArguments) {
		t.Fatalf("PushT() = %v, want ErrInvalidArguments", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 — rejected push must not touch the buffer", s.Len())
	}

	if _, err := PopT[oversizedElement](s); !errors.Is(err, coroerr.ErrInvalidArguments) {
		t.Errorf("PopT() = %v, want ErrInvalidArguments", err)
	}
	if _, err := PeekT[oversizedElement](s); !errors.Is(err, coroerr.ErrInvalidArguments) {
		t.Errorf("PeekT() = %v, want ErrInvalidArguments", err)
	}

	// The check is memoized per type; confirm it still rejects on a
	// second call rather than only catching the type the first time.
	if err := PushT(s, oversizedElement{}); !errors.Is(err, coroerr.ErrInvalidArguments) {
		t.Errorf("second PushT() = %v, want ErrInvalidArguments again", err)
	}
}

func TestTypedRoundTrip(t *testing.T) {
	s := New(make([]byte, 64))
	if err := PushT(s, int64(42)); err != nil {
		t.Fatal(err)
	}
	v, err := PeekT[int64](s)
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Errorf("PeekT() = %d, want 42", v)
	}
	if s.Len() == 0 {
		t.Error("Len() = 0 after PushT, want nonzero until popped")
	}
	v, err = PopT[int64](s)
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Errorf("PopT() = %d, want 42", v)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after PopT", s.Len())
	}
}
