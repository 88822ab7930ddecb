package profile

import "graphol/diagram"

// Issue is one validation failure found by a sweep.
type Issue struct {
	EdgeID  string
	Message string
}

// Sweep validates every committed edge of a diagram as an explicit
// resumable step function: the caller drives one item per Step invocation,
// so the event loop stays responsive and an abort can be observed between
// items. The scene must not be mutated while a sweep is in progress; the
// single-threaded event model makes that automatic.
type Sweep struct {
	checker diagram.Checker
	edges   []*diagram.Edge
	next    int
	aborted bool
	issues  []Issue
}

// NewSweep snapshots the scene's edge list and prepares a sweep using the
// given checker.
func NewSweep(s *diagram.Scene, checker diagram.Checker) *Sweep {
	if checker == nil {
		checker = AllowAll{}
	}
	return &Sweep{checker: checker, edges: s.Edges()}
}

// Step validates the next edge. Returns false once the sweep is finished
// or aborted.
func (w *Sweep) Step() bool {
	if w.Done() {
		return false
	}
	e := w.edges[w.next]
	w.next++
	if r := w.checker.Check(e.Source(), e, e.Target()); !r.Valid {
		w.issues = append(w.issues, Issue{EdgeID: e.ID(), Message: r.Message})
	}
	return !w.Done()
}

// Abort stops the sweep; subsequent Step calls are no-ops.
func (w *Sweep) Abort() { w.aborted = true }

// Done reports whether the sweep has finished or was aborted.
func (w *Sweep) Done() bool {
	return w.aborted || w.next >= len(w.edges)
}

// Progress returns how many items have been checked and how many exist.
func (w *Sweep) Progress() (checked, total int) {
	return w.next, len(w.edges)
}

// Issues returns the failures found so far.
func (w *Sweep) Issues() []Issue { return w.issues }

// Run drives the sweep to completion and returns the issues. Interactive
// callers should prefer stepping.
func (w *Sweep) Run() []Issue {
	for w.Step() {
	}
	return w.issues
}
