package metaheuristic

import (
	"time"

	"selcycle/internal/localsearch"
)

// MSLS runs numIterations independent steepest local searches from
// uniform random starts and returns the best local optimum. The core's
// current solution is used as the first start.
func MSLS(core *localsearch.Core, numIterations int) Result {
	d := &Driver{
		Core: core,
		NextStart: func(c *localsearch.Core) {
			c.ResetRandom()
		},
		ShouldContinue: func(s Stats) bool {
			return s.Iterations < numIterations
		},
		InnerSearch: true,
	}
	return d.Run()
}

// ILSOptions configures iterated local search.
type ILSOptions struct {
	// MaxTime bounds the wall time of the whole run; it is checked
	// between outer iterations.
	MaxTime time.Duration
	// PerturbationStrength is the number of random 2-opt reversals per
	// perturbation.
	PerturbationStrength int
	// AcceptOnlyBetter switches the acceptance rule from "always accept
	// the perturbed local optimum" to "keep the global best as base".
	AcceptOnlyBetter bool
}

// ILS converges the core's current solution, then repeatedly perturbs
// and re-converges until the time budget is spent.
func ILS(core *localsearch.Core, opts ILSOptions) Result {
	strength := opts.PerturbationStrength
	if strength < 1 {
		strength = 4
	}
	d := &Driver{
		Core: core,
		NextStart: func(c *localsearch.Core) {
			c.Perturb(strength)
		},
		ShouldContinue: func(s Stats) bool {
			return s.Elapsed < opts.MaxTime
		},
		InnerSearch:      true,
		AcceptOnlyBetter: opts.AcceptOnlyBetter,
	}
	return d.Run()
}

// LSNSOptions configures large-scale neighborhood search.
type LSNSOptions struct {
	// MaxTime bounds the wall time of the whole run.
	MaxTime time.Duration
	// InnerSearch runs the local search after every repair; with it off
	// the driver relies on greedy-cycle repair alone.
	InnerSearch bool
}

// LSNS converges the core's current solution, then repeatedly destroys
// and repairs it until the time budget is spent.
func LSNS(core *localsearch.Core, opts LSNSOptions) Result {
	d := &Driver{
		Core: core,
		NextStart: func(c *localsearch.Core) {
			c.DestroyAndRepair()
		},
		ShouldContinue: func(s Stats) bool {
			return s.Elapsed < opts.MaxTime
		},
		InnerSearch: opts.InnerSearch,
	}
	return d.Run()
}
