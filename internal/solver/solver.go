// Package solver abstracts a binary assignment problem with a linear cost
// objective and hard constraints plus exclusion re-solve: the engine
// depends only on this interface, not on any particular ILP backend. For
// single-patient inputs an exhaustive scan over precomputed candidates is
// an equivalent backend; ExhaustiveSolver is that scan.
//
// The constraint-as-closure shape (Constraint, CombineConstraints) and the
// precomputed-candidate-struct shape (Candidate) let hard constraints
// compose independently of the cost objective, single-pass after a sort.
package solver

import (
	"context"
	"sort"
	"time"

	"github.com/kaelan-ross/transferdecision/pkg/model"
)

// Candidate is one (facility) option for the single patient being assigned,
// with its ETA and total cost precomputed once.
type Candidate struct {
	FacilityID string
	ETAMinutes float64
	Cost       float64
	Excluded   bool
}

// Constraint reports whether a candidate may be chosen. Hard constraints
// (assignment is implicit in "pick exactly one candidate"; exclusion is
// explicit) are expressed this way so they can be combined independently
// of the objective.
type Constraint func(Candidate) bool

// CombineConstraints ANDs several constraints into one.
func CombineConstraints(constraints ...Constraint) Constraint {
	return func(c Candidate) bool {
		for _, constraint := range constraints {
			if !constraint(c) {
				return false
			}
		}
		return true
	}
}

// ExclusionConstraint rejects any candidate whose FacilityID is in excluded,
// used to enumerate alternatives by repeated re-solve.
func ExclusionConstraint(excluded map[string]bool) Constraint {
	return func(c Candidate) bool {
		return !excluded[c.FacilityID]
	}
}

// Problem is one solve request: a set of pre-scored, pre-filtered
// candidates plus the hard constraint to apply.
type Problem struct {
	Candidates []Candidate
	Constraint Constraint
}

// Result is the solver's verdict: the chosen candidate (if any) and the
// status describing how confidently it was chosen.
type Result struct {
	Chosen Candidate
	Found  bool
	Status model.SolverStatus
}

// Solver is the abstracted ILP backend contract.
type Solver interface {
	Solve(ctx context.Context, problem Problem) Result
}

// ExhaustiveSolver scans every candidate once, tracking the best-so-far
// under the cost.Less tie-break, honoring ctx's deadline. It returns
// OPTIMAL when the full candidate set was scanned before any deadline, or
// FEASIBLE with the best incumbent found if the deadline elapsed mid-scan.
type ExhaustiveSolver struct {
	// Less orders two candidates: true if a should be preferred over b.
	// Injected so the solver package does not import the cost package,
	// keeping the dependency direction optimizer -> {solver, cost}.
	Less func(a, b Candidate) bool
}

// Solve implements Solver. A deadline that elapses before any candidate
// has been evaluated yields UNKNOWN with no incumbent; a deadline that
// elapses after an incumbent has been established yields FEASIBLE with
// that incumbent, never UNKNOWN.
func (s ExhaustiveSolver) Solve(ctx context.Context, problem Problem) Result {
	select {
	case <-ctx.Done():
		return Result{Status: model.SolverUnknown}
	default:
	}

	eligible := make([]Candidate, 0, len(problem.Candidates))
	for _, c := range problem.Candidates {
		if problem.Constraint == nil || problem.Constraint(c) {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return Result{Status: model.SolverInfeasible}
	}

	// Deterministic scan order: candidates are sorted before the linear
	// scan so that, even under a mid-scan deadline, the incumbent returned
	// is reproducible for a fixed input.
	sort.Slice(eligible, func(i, j int) bool {
		return s.Less(eligible[i], eligible[j])
	})

	best := eligible[0]
	for i := 1; i < len(eligible); i++ {
		select {
		case <-ctx.Done():
			return Result{Chosen: best, Found: true, Status: model.SolverFeasible}
		default:
		}
		if s.Less(eligible[i], best) {
			best = eligible[i]
		}
	}

	select {
	case <-ctx.Done():
		return Result{Chosen: best, Found: true, Status: model.SolverFeasible}
	default:
	}

	return Result{Chosen: best, Found: true, Status: model.SolverOptimal}
}

// WithDeadline returns a context bounded by the given millisecond deadline.
func WithDeadline(parent context.Context, deadlineMS int64) (context.Context, context.CancelFunc) {
	if deadlineMS <= 0 {
		deadlineMS = 5000
	}
	return context.WithTimeout(parent, time.Duration(deadlineMS)*time.Millisecond)
}
