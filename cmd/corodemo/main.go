package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/stackco/coro"
	"github.com/stackco/coro/generator"
	"github.com/stackco/coro/taskrunner"
)

func main() {
	var (
		demo        = flag.String("demo", "", "Demo to run: fib, roundrobin, overflow")
		interactive = flag.Bool("i", false, "Interactive TUI mode (round-robin task viewer)")
	)
	flag.Parse()

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *demo == "" {
		fmt.Fprintln(os.Stderr, "Usage: corodemo -demo fib|roundrobin|overflow")
		fmt.Fprintln(os.Stderr, "       corodemo -i  (interactive mode)")
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "\n(stdin looks like a terminal — try -i)")
		}
		os.Exit(1)
	}

	var err error
	switch *demo {
	case "fib":
		err = runFib()
	case "roundrobin":
		err = runRoundRobin()
	case "overflow":
		err = runOverflow()
	default:
		err = fmt.Errorf("unknown demo %q", *demo)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runFib runs spec.md §8 scenario 4: the first ten Fibonacci numbers out
// of a generator.
func runFib() error {
	g, err := generator.New(func(ref *generator.Ref[int]) {
		a, b := 0, 1
		for {
			if err := ref.Yield(a); err != nil {
				return
			}
			a, b = b, a+b
		}
	})
	if err != nil {
		return err
	}
	defer g.Close()

	fmt.Print("fibonacci: ")
	i := 0
	for v := range g.All() {
		if i == 10 {
			break
		}
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Print(v)
		i++
	}
	fmt.Println()
	return nil
}

// runRoundRobin runs spec.md §8 scenario 5: two tasks each yielding
// twice, producing an interleaved log.
func runRoundRobin() error {
	var log []int
	mk := func(vals []int) (*coro.Coroutine, error) {
		return coro.New(func(ref *coro.Ref) {
			for _, v := range vals {
				log = append(log, v)
				if err := ref.Yield(); err != nil {
					return
				}
			}
		})
	}

	taskA, err := mk([]int{1, 3, 5})
	if err != nil {
		return err
	}
	taskB, err := mk([]int{2, 4, 6})
	if err != nil {
		return err
	}

	r := taskrunner.New()
	r.Add(taskA)
	r.Add(taskB)
	if err := r.Run(); err != nil {
		return err
	}

	fmt.Printf("round-robin log: %v\n", log)
	return nil
}

// runOverflow builds a chain of nested coroutines deeper than the
// nesting-depth budget WithStackSize(MinStackSize) scales to, tripping
// the ErrStackOverflow guard documented in internal/engine/stack_guard.go.
func runOverflow() error {
	const excess = 5 // past the budget, not merely up to it

	leaf, err := coro.New(func(ref *coro.Ref) {}, coro.WithStackSize(coro.MinStackSize))
	if err != nil {
		return err
	}

	// overflowErr records the nested Resume that tripped the guard; the
	// wrapper bodies return normally, so chain.Resume() itself succeeds.
	var overflowErr error
	chain := leaf
	for i := 0; i < defaultMaxNestingDepth+excess; i++ {
		next := chain
		chain, err = coro.New(func(ref *coro.Ref) {
			if err := next.Resume(); err != nil {
				overflowErr = err
			}
		}, coro.WithStackSize(coro.MinStackSize))
		if err != nil {
			return err
		}
	}

	if err := chain.Resume(); err != nil {
		return err
	}
	if overflowErr != nil {
		fmt.Printf("Resume() on a chain %d deep = %v\n", defaultMaxNestingDepth+excess, overflowErr)
		return nil
	}
	fmt.Println("chain completed without tripping the nesting-depth guard")
	return nil
}

// defaultMaxNestingDepth mirrors internal/engine.DefaultMaxNestingDepth;
// the demo keeps its own copy so that it uses only the public coro API.
const defaultMaxNestingDepth = 2000
