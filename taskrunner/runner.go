// Package taskrunner implements spec.md §4.6's round-robin task runner: a
// list of owned coroutines resumed in strict insertion order until every
// one of them is dead.
package taskrunner

import "github.com/stackco/coro"

// StepReport summarizes one call to Step.
type StepReport struct {
	// Live is the number of tasks the runner still holds after this step:
	// the tasks still suspended or, when Err is non-nil, also the task
	// that failed and every task after it.
	Live int
	// Err is the non-transient error, if any, that ended the step early.
	// When Err is non-nil, the task that produced it is left in place
	// (spec.md §4.6) and Run stops looping.
	Err error
}

// IsTransient reports whether err is a transient task error — one a
// caller might reasonably retry the task after, rather than one that
// should end the whole Run. Spec.md §4.6 requires the distinction to
// exist without defining its boundary; this port treats every error
// surfaced by Step as non-transient (see SPEC_FULL.md §6 and DESIGN.md's
// Open Question resolutions), so IsTransient is currently always false.
// It exists as a seam for a future scheduling policy to extend.
func IsTransient(err error) bool {
	return false
}

// Runner owns a sequence of coroutines in insertion order and resumes
// them strict round-robin, the way spec.md §4.6 describes. It is not
// safe for concurrent use — like a Coroutine, one Runner per goroutine
// is the contract.
type Runner struct {
	tasks []*coro.Coroutine
}

// New constructs an empty Runner.
func New() *Runner {
	return &Runner{}
}

// Add appends a live coroutine to the runner's task list.
func (r *Runner) Add(co *coro.Coroutine) {
	r.tasks = append(r.tasks, co)
}

// Len returns the number of tasks still tracked by the runner (live or,
// momentarily, about to be pruned by the next Step).
func (r *Runner) Len() int {
	return len(r.tasks)
}

// Step resumes each live task once, in insertion order, removing any
// that reach the dead state during this step. It returns as soon as any
// task's Resume returns a non-nil error, leaving that task in the list
// and every task after it in the list without being resumed; otherwise it runs all tasks and
// reports how many are still live.
func (r *Runner) Step() StepReport {
	live := r.tasks[:0]
	for i, co := range r.tasks {
		if err := co.Resume(); err != nil {
			live = append(live, r.tasks[i:]...)
			r.tasks = live
			return StepReport{Live: len(live), Err: err}
		}
		if !co.Done() {
			live = append(live, co)
		}
	}
	r.tasks = live
	return StepReport{Live: len(live)}
}

// Run loops Step until no tasks remain live or a non-transient error
// stops it early, per spec.md §4.6.
func (r *Runner) Run() error {
	for {
		report := r.Step()
		if report.Err != nil {
			return report.Err
		}
		if report.Live == 0 {
			return nil
		}
	}
}
