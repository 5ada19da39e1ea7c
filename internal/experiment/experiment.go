// Package experiment runs a configured algorithm repeatedly over one
// instance, measures evaluations and wall times, and aggregates them
// into a Result consumed by the report writers.
//
// Constructive heuristics are run once per start node, the way the
// benchmark protocol prescribes; local-search engines and metaheuristic
// drivers are run for the configured number of repetitions.
package experiment

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"selcycle/internal/construct"
	"selcycle/internal/instance"
	"selcycle/internal/localsearch"
	"selcycle/internal/metaheuristic"
	"selcycle/internal/solution"
	"selcycle/pkg/apperror"
	"selcycle/pkg/config"
	"selcycle/pkg/logger"
	"selcycle/pkg/metrics"
)

// Result holds everything a report writer needs about one experiment.
type Result struct {
	RunID     string
	Algorithm string
	Instance  string

	Evaluations []int
	Times       []time.Duration
	Iterations  []int // outer iterations, driver algorithms only

	Best           *solution.Solution
	BestEvaluation int

	Summary Summary

	// Cost breakdown of the best solution.
	PathLength int
	NodeCosts  int
}

// Run executes the configured algorithm and aggregates the outcome.
func Run(cfg *config.Config, inst *instance.Instance) (*Result, error) {
	n := inst.NumNodes()
	k := inst.CycleSize(cfg.Instance.FractionNodes)

	algo := cfg.Solver.Algorithm
	if algo == "candidate_ls" && cfg.Solver.CandidateListSize > n-1 {
		return nil, apperror.Newf(apperror.CodeCandidateListTooLarge,
			"candidate_list_size %d exceeds N-1 = %d", cfg.Solver.CandidateListSize, n-1)
	}

	seed := cfg.Solver.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	res := &Result{
		RunID:          uuid.NewString(),
		Algorithm:      algo,
		Instance:       inst.Name,
		BestEvaluation: -1,
	}

	log := logger.WithRunID(res.RunID).With("algorithm", algo, "instance", inst.Name)
	log.Info("experiment started", "n", n, "k", k, "seed", seed)

	runOne := solverFor(cfg, inst, k, rng)
	reps := repetitions(cfg, n)

	for rep := 0; rep < reps; rep++ {
		started := time.Now()
		sol, eval, iterations := runOne(rep)
		elapsed := time.Since(started)

		res.Evaluations = append(res.Evaluations, eval)
		res.Times = append(res.Times, elapsed)
		if iterations > 0 {
			res.Iterations = append(res.Iterations, iterations)
		}

		if res.Best == nil || eval < res.BestEvaluation {
			res.Best = sol.Clone()
			res.BestEvaluation = eval
		}

		if m := metrics.Default(); m != nil {
			m.ObserveSolve(algo, "ok", elapsed)
			m.BestEvaluation.WithLabelValues(algo, inst.Name).Set(float64(res.BestEvaluation))
		}
		log.Debug("repetition finished", "rep", rep, "evaluation", eval, "elapsed", elapsed)
	}

	res.Summary = summarize(res.Evaluations, res.Times)
	res.PathLength, res.NodeCosts = breakdown(res.Best)

	if err := res.Best.Validate(k); err != nil {
		return nil, apperror.Wrap(apperror.CodeInvalidSolution, "best solution is invalid", err)
	}

	log.Info("experiment finished",
		"best", res.Summary.Best,
		"worst", res.Summary.Worst,
		"average", res.Summary.Average,
		"avg_time", res.Summary.AvgTime,
	)
	return res, nil
}

// repetitions returns how many runs an algorithm gets: constructive
// heuristics run once per start node, everything else uses the
// configured repetition count.
func repetitions(cfg *config.Config, n int) int {
	switch cfg.Solver.Algorithm {
	case "random_search", "nearest_neighbor", "greedy_cycle", "regret2", "regret2_weighted":
		return n
	default:
		return cfg.Solver.Repetitions
	}
}

// solverFor maps an algorithm id onto a closure producing one solved
// repetition. The returned iteration count is zero for non-driver
// algorithms.
func solverFor(cfg *config.Config, inst *instance.Instance, k int, rng *rand.Rand) func(rep int) (*solution.Solution, int, int) {
	n := inst.NumNodes()

	randomStart := func() *solution.Solution {
		return construct.Random(inst, k, rng)
	}
	greedyStart := func(rep int) *solution.Solution {
		return construct.GreedyCycle(inst, k, rep%n, rng)
	}

	basicLS := func(strategy localsearch.Strategy, intra localsearch.Intra, greedy bool) func(rep int) (*solution.Solution, int, int) {
		return func(rep int) (*solution.Solution, int, int) {
			start := randomStart()
			if greedy {
				start = greedyStart(rep)
			}
			core := localsearch.NewCore(start, strategy, intra, rng)
			core.Run()
			return core.Solution(), core.Evaluation(), 0
		}
	}

	switch cfg.Solver.Algorithm {
	case "random_search":
		return func(rep int) (*solution.Solution, int, int) {
			s := randomStart()
			return s, s.Evaluate(), 0
		}
	case "nearest_neighbor":
		return func(rep int) (*solution.Solution, int, int) {
			s := construct.NearestNeighbor(inst, k, rep%n, rng)
			return s, s.Evaluate(), 0
		}
	case "greedy_cycle":
		return func(rep int) (*solution.Solution, int, int) {
			s := construct.GreedyCycle(inst, k, rep%n, rng)
			return s, s.Evaluate(), 0
		}
	case "regret2":
		return func(rep int) (*solution.Solution, int, int) {
			s := construct.Regret2(inst, k, rep%n, rng)
			return s, s.Evaluate(), 0
		}
	case "regret2_weighted":
		return func(rep int) (*solution.Solution, int, int) {
			s := construct.Regret2Weighted(inst, k, rep%n, 0.5, 0.5, rng)
			return s, s.Evaluate(), 0
		}

	case "ls_steepest_2n_random":
		return basicLS(localsearch.Steepest, localsearch.TwoNodes, false)
	case "ls_steepest_2e_random":
		return basicLS(localsearch.Steepest, localsearch.TwoEdges, false)
	case "ls_greedy_2n_random":
		return basicLS(localsearch.Greedy, localsearch.TwoNodes, false)
	case "ls_greedy_2e_random":
		return basicLS(localsearch.Greedy, localsearch.TwoEdges, false)
	case "ls_steepest_2n_greedy_start":
		return basicLS(localsearch.Steepest, localsearch.TwoNodes, true)
	case "ls_steepest_2e_greedy_start":
		return basicLS(localsearch.Steepest, localsearch.TwoEdges, true)
	case "ls_greedy_2n_greedy_start":
		return basicLS(localsearch.Greedy, localsearch.TwoNodes, true)
	case "ls_greedy_2e_greedy_start":
		return basicLS(localsearch.Greedy, localsearch.TwoEdges, true)

	case "candidate_ls":
		return func(rep int) (*solution.Solution, int, int) {
			cs := localsearch.NewCandidateSearch(randomStart(), cfg.Solver.CandidateListSize, rng)
			cs.Run()
			return cs.Solution(), cs.Evaluation(), 0
		}
	case "movecache_ls":
		return func(rep int) (*solution.Solution, int, int) {
			ls := localsearch.NewCacheSearch(randomStart(), rng)
			ls.Run()
			return ls.Solution(), ls.Evaluation(), 0
		}

	case "msls":
		return func(rep int) (*solution.Solution, int, int) {
			core := localsearch.NewCore(randomStart(), localsearch.Steepest, localsearch.TwoEdges, rng)
			r := metaheuristic.MSLS(core, cfg.Solver.NumIterations)
			return r.Best, r.BestEvaluation, r.Iterations
		}
	case "ils":
		return func(rep int) (*solution.Solution, int, int) {
			core := localsearch.NewCore(randomStart(), localsearch.Steepest, localsearch.TwoEdges, rng)
			r := metaheuristic.ILS(core, metaheuristic.ILSOptions{
				MaxTime:              cfg.Solver.MaxTime(),
				PerturbationStrength: cfg.Solver.PerturbationStrength,
				AcceptOnlyBetter:     cfg.Solver.Accept == "better",
			})
			return r.Best, r.BestEvaluation, r.Iterations
		}
	case "lsns", "lsns_no_inner":
		inner := cfg.Solver.Algorithm == "lsns" && cfg.Solver.InnerLocalSearch
		return func(rep int) (*solution.Solution, int, int) {
			core := localsearch.NewCore(randomStart(), localsearch.Steepest, localsearch.TwoEdges, rng)
			r := metaheuristic.LSNS(core, metaheuristic.LSNSOptions{
				MaxTime:     cfg.Solver.MaxTime(),
				InnerSearch: inner,
			})
			return r.Best, r.BestEvaluation, r.Iterations
		}
	}

	// Config validation rejects unknown ids before this point.
	return func(rep int) (*solution.Solution, int, int) {
		s := randomStart()
		return s, s.Evaluate(), 0
	}
}

// breakdown splits the best solution's evaluation into cycle length and
// node service costs.
func breakdown(s *solution.Solution) (pathLength, nodeCosts int) {
	inst := s.Instance()
	nodes := s.Nodes()
	for i, u := range nodes {
		nodeCosts += inst.Cost(u)
		pathLength += inst.Distance(u, nodes[(i+1)%len(nodes)])
	}
	if len(nodes) == 1 {
		pathLength = 0
	}
	return pathLength, nodeCosts
}
