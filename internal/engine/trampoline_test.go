package engine

import (
	"errors"
	"testing"

	coroerr "github.com/stackco/coro/errors"
)

func TestPanicFromBodyBecomesTerminalError(t *testing.T) {
	co, err := New(func(co *Coroutine) {
		panic("boom")
	}, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	resumeErr := co.Resume()
	if !errors.Is(resumeErr, coroerr.ErrGeneric) {
		t.Fatalf("Resume() = %v, want wrapped CodeGeneric", resumeErr)
	}
	if co.State() != Dead {
		t.Errorf("State() = %v, want Dead", co.State())
	}
}

func TestPanicWithErrorValuePreservesCause(t *testing.T) {
	cause := errors.New("specific failure")
	co, err := New(func(co *Coroutine) {
		panic(cause)
	}, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	resumeErr := co.Resume()
	if !errors.Is(resumeErr, cause) {
		t.Fatalf("Resume() = %v, want it to unwrap to %v", resumeErr, cause)
	}
}
