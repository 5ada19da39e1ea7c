// Package metaheuristic provides the outer-loop drivers that embed a
// local-search engine: multi-start (MSLS), iterated (ILS) and large-scale
// neighborhood (LSNS) local search.
//
// The three drivers share one outer loop and differ only in how the next
// starting solution is produced (restart / perturb / destroy-and-repair)
// and in the stopping criterion (iteration count / wall-clock deadline).
// The global best is tracked across iterations and is monotonically
// non-increasing in cost. The deadline is checked between outer
// iterations only; an inner local-search run is never interrupted.
package metaheuristic

import (
	"time"

	"selcycle/internal/localsearch"
	"selcycle/internal/solution"
)

// Stats describes driver progress for the continue predicate.
type Stats struct {
	// Iterations counts completed outer iterations, including the
	// initial convergence run.
	Iterations int
	// Elapsed is the wall time since the driver started.
	Elapsed time.Duration
	// BestEvaluation is the best evaluation seen so far.
	BestEvaluation int
}

// Result is the outcome of a driver run.
type Result struct {
	Best           *solution.Solution
	BestEvaluation int
	Iterations     int
	Elapsed        time.Duration
}

// Driver is the shared outer loop. NextStart produces the starting point
// of the next iteration by mutating the core's working solution;
// ShouldContinue decides whether another iteration runs.
type Driver struct {
	Core *localsearch.Core

	// NextStart prepares the core's working solution for the next outer
	// iteration (reset to random, perturb, destroy-and-repair, ...).
	NextStart func(*localsearch.Core)

	// ShouldContinue reports whether another outer iteration may start.
	ShouldContinue func(Stats) bool

	// InnerSearch runs the local search after NextStart. Disabled only
	// by the LSNS variant that relies on repair alone.
	InnerSearch bool

	// AcceptOnlyBetter restores the global best as the working solution
	// whenever an iteration ends worse than it. The default (false)
	// keeps the perturbed local optimum as the next base regardless.
	AcceptOnlyBetter bool
}

// Run executes the outer loop and returns the global best.
func (d *Driver) Run() Result {
	start := time.Now()

	// Initial convergence on the starting solution.
	d.Core.Run()
	best := d.Core.Solution().Clone()
	bestEval := d.Core.Evaluation()
	iterations := 1

	for d.ShouldContinue(Stats{
		Iterations:     iterations,
		Elapsed:        time.Since(start),
		BestEvaluation: bestEval,
	}) {
		iterations++

		d.NextStart(d.Core)
		if d.InnerSearch {
			d.Core.Run()
		}

		if d.Core.Evaluation() < bestEval {
			bestEval = d.Core.Evaluation()
			best.CopyFrom(d.Core.Solution())
		} else if d.AcceptOnlyBetter {
			d.Core.Reset(best)
		}
	}

	return Result{
		Best:           best,
		BestEvaluation: bestEval,
		Iterations:     iterations,
		Elapsed:        time.Since(start),
	}
}
