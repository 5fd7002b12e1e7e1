package engine

import (
	"errors"
	"testing"

	coroerr "github.com/stackco/coro/errors"
)

func testConfig() Config {
	return Config{StackSize: 56 << 10, StorageSize: 1 << 10, MinStackSize: 32 << 10}
}

func TestNew_NilBody(t *testing.T) {
	_, err := New(nil, nil, testConfig())
	if err == nil {
		t.Fatal("expected error for nil body")
	}
	if code, _ := coroerr.CodeOf(err); code != coroerr.CodeInvalidArguments {
		t.Errorf("code = %v, want CodeInvalidArguments", code)
	}
}

func TestNew_InitialState(t *testing.T) {
	co, err := New(func(co *Coroutine) {}, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if co.State() != Suspended {
		t.Errorf("State() = %v, want Suspended", co.State())
	}
}

func TestStackSize_Clamped(t *testing.T) {
	co, err := New(func(co *Coroutine) {}, nil, Config{StackSize: 1024, StorageSize: 64, MinStackSize: 32 << 10})
	if err != nil {
		t.Fatal(err)
	}
	if co.stackSize < 32<<10 {
		t.Errorf("stackSize = %d, want >= 32KiB floor", co.stackSize)
	}
}

func TestResumeToCompletion(t *testing.T) {
	var ran bool
	co, err := New(func(co *Coroutine) { ran = true }, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	if err := co.Resume(); err != nil {
		t.Fatalf("Resume() = %v, want nil", err)
	}
	if !ran {
		t.Error("body did not run")
	}
	if co.State() != Dead {
		t.Errorf("State() = %v, want Dead", co.State())
	}

	if err := co.Resume(); !errors.Is(err, coroerr.ErrNotSuspended) {
		t.Errorf("second Resume() = %v, want ErrNotSuspended", err)
	}
}

func TestSequentialYields(t *testing.T) {
	var step int
	co, err := New(func(co *Coroutine) {
		for i := 0; i < 5; i++ {
			step = i
			if err := co.Yield(); err != nil {
				t.Errorf("Yield() = %v", err)
				return
			}
		}
	}, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := co.Resume(); err != nil {
			t.Fatalf("Resume() #%d = %v", i, err)
		}
		if co.State() != Suspended {
			t.Fatalf("State() after resume #%d = %v, want Suspended", i, co.State())
		}
	}
	if step != 4 {
		t.Errorf("step = %d, want 4", step)
	}

	if err := co.Resume(); err != nil {
		t.Fatalf("final Resume() = %v", err)
	}
	if co.State() != Dead {
		t.Errorf("State() = %v, want Dead", co.State())
	}
}

func TestDeepNestedYields(t *testing.T) {
	const n = 1000
	co, err := New(func(co *Coroutine) {
		var recurse func(depth int)
		recurse = func(depth int) {
			if depth == n {
				return
			}
			if err := co.Yield(); err != nil {
				t.Errorf("Yield() at depth %d = %v", depth, err)
				return
			}
			recurse(depth + 1)
		}
		recurse(0)
	}, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < n; i++ {
		if err := co.Resume(); err != nil {
			t.Fatalf("Resume() #%d = %v", i, err)
		}
	}
	if err := co.Resume(); err != nil {
		t.Fatalf("final Resume() = %v", err)
	}
	if co.State() != Dead {
		t.Errorf("State() = %v, want Dead", co.State())
	}
}

func TestLIFOOrder(t *testing.T) {
	var got []int32
	co, err := New(func(co *Coroutine) {
		for i := 0; i < 3; i++ {
			v, err := popInt32(co)
			if err != nil {
				t.Errorf("pop = %v", err)
				return
			}
			got = append(got, v)
		}
	}, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []int32{1, 2, 3} {
		if err := pushInt32(co, v); err != nil {
			t.Fatal(err)
		}
	}

	if err := co.Resume(); err != nil {
		t.Fatal(err)
	}

	want := []int32{3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPopFromEmpty(t *testing.T) {
	co, _ := New(func(co *Coroutine) {}, nil, testConfig())
	var buf [4]byte
	if err := co.Pop(buf[:]); !errors.Is(err, coroerr.ErrNotEnoughSpace) {
		t.Errorf("Pop() = %v, want ErrNotEnoughSpace", err)
	}
}

func TestPushExceedingCapacity(t *testing.T) {
	co, _ := New(func(co *Coroutine) {}, nil, Config{StackSize: 32 << 10, StorageSize: 4, MinStackSize: 32 << 10})
	if err := co.Push(make([]byte, 5)); !errors.Is(err, coroerr.ErrNotEnoughSpace) {
		t.Errorf("Push() = %v, want ErrNotEnoughSpace", err)
	}
	if co.stack.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after failed push", co.stack.Len())
	}
}

func TestYieldFromOutsideBody(t *testing.T) {
	co, _ := New(func(co *Coroutine) {}, nil, testConfig())
	if err := co.Yield(); !errors.Is(err, coroerr.ErrNotRunning) {
		t.Errorf("Yield() = %v, want ErrNotRunning", err)
	}
}

func TestCurrent(t *testing.T) {
	if Current() != nil {
		t.Error("Current() outside any coroutine should be nil")
	}

	var insideOK bool
	co, _ := New(func(co *Coroutine) {
		insideOK = Current() == co
	}, nil, testConfig())
	if err := co.Resume(); err != nil {
		t.Fatal(err)
	}
	if !insideOK {
		t.Error("Current() inside the body did not return the running coroutine")
	}
}

func TestNormalStatePropagation(t *testing.T) {
	var childStateDuringParentBody, parentStateDuringChildBody State

	var parent *Coroutine
	child, _ := New(func(co *Coroutine) {
		parentStateDuringChildBody = parent.State()
	}, nil, testConfig())
	parent, _ = New(func(parentCo *Coroutine) {
		if err := child.Resume(); err != nil {
			t.Errorf("nested resume = %v", err)
		}
		childStateDuringParentBody = child.State()
	}, nil, testConfig())

	if err := parent.Resume(); err != nil {
		t.Fatal(err)
	}
	if parentStateDuringChildBody != Normal {
		t.Errorf("parent.State() observed inside the child's body = %v, want Normal", parentStateDuringChildBody)
	}
	if parent.State() != Dead {
		t.Errorf("parent.State() = %v, want Dead", parent.State())
	}
	if childStateDuringParentBody != Dead {
		t.Errorf("child.State() observed right after nested resume = %v, want Dead", childStateDuringParentBody)
	}
}

func TestClose(t *testing.T) {
	co, _ := New(func(co *Coroutine) {}, nil, testConfig())
	if err := co.Close(); err != nil {
		t.Errorf("Close() on suspended = %v, want nil", err)
	}

	running, _ := New(func(co *Coroutine) {
		if err := co.Yield(); err != nil {
			t.Error(err)
		}
	}, nil, testConfig())
	if err := running.Resume(); err != nil {
		t.Fatal(err)
	}
	// running is now Suspended (yielded once); Close should succeed.
	if err := running.Close(); err != nil {
		t.Errorf("Close() on suspended-after-yield = %v, want nil", err)
	}
}

func pushInt32(co *Coroutine, v int32) error {
	var buf [4]byte
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
	return co.Push(buf[:])
}

func popInt32(co *Coroutine) (int32, error) {
	var buf [4]byte
	if err := co.Pop(buf[:]); err != nil {
		return 0, err
	}
	v := int32(buf[0]) | int32(buf[1])<<8 | int32(buf[2])<<16 | int32(buf[3])<<24
	return v, nil
}
