// Package localsearch implements the neighborhood-search engines of the
// workbench:
//
//   - Core: full-neighborhood exploration in steepest or first-improvement
//     (greedy) order over the inter-route swap neighborhood plus one
//     intra-route neighborhood (two-node or two-edge exchange), with the
//     perturbation and destroy-and-repair side operations used by the
//     metaheuristic drivers.
//   - CandidateSearch: the same steepest loop restricted to moves that
//     introduce an edge incident to one of the m nearest candidates of a
//     cycle node.
//   - CacheSearch: a steepest variant that remembers improving moves in a
//     priority queue keyed by delta and revalidates them against the
//     current cycle instead of re-enumerating the full neighborhood on
//     every pass.
//
// # Determinism
//
// All engines draw randomness exclusively from the *rand.Rand supplied at
// construction, so a fixed seed reproduces a run exactly.
//
// # Cost Accounting
//
// Every engine maintains a running evaluation updated by exact move
// deltas. Full re-evaluation happens only at construction, on Reset,
// after destroy-and-repair, and in tests.
package localsearch

import (
	"math/rand"

	"selcycle/internal/construct"
	"selcycle/internal/instance"
	"selcycle/internal/solution"
)

// Strategy selects how a pass picks the move to apply.
type Strategy int

const (
	// Steepest scans the whole enabled neighborhood and applies the
	// most-negative-delta move.
	Steepest Strategy = iota
	// Greedy scans in a re-randomized order and applies the first
	// negative-delta move found.
	Greedy
)

// Intra selects which intra-route neighborhood a Core explores next to
// the always-enabled inter-route swap.
type Intra int

const (
	// TwoNodes swaps two selected positions.
	TwoNodes Intra = iota
	// TwoEdges is the 2-opt edge exchange.
	TwoEdges
)

type moveKind int

const (
	moveInter moveKind = iota
	moveIntraNodes
	moveIntraEdges
)

// Core explores the full neighborhood of a single Solution until no
// improving move remains.
type Core struct {
	inst     *instance.Instance
	sol      *solution.Solution
	eval     int
	strategy Strategy
	intra    Intra
	rng      *rand.Rand

	// Pre-allocated enumeration orders, reshuffled per greedy pass.
	cycleIdx  []int // positions 0..K-1
	cycleIdx2 []int
	allNodes  []int // node ids 0..N-1
}

// NewCore wraps sol in an explorer. The solution is adopted, not copied.
func NewCore(sol *solution.Solution, strategy Strategy, intra Intra, rng *rand.Rand) *Core {
	inst := sol.Instance()
	c := &Core{
		inst:     inst,
		sol:      sol,
		eval:     sol.Evaluate(),
		strategy: strategy,
		intra:    intra,
		rng:      rng,
	}
	c.cycleIdx = sequence(sol.Len())
	c.cycleIdx2 = sequence(sol.Len())
	c.allNodes = sequence(inst.NumNodes())
	return c
}

func sequence(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

// Solution returns the solution being explored.
func (c *Core) Solution() *solution.Solution {
	return c.sol
}

// Evaluation returns the running evaluation.
func (c *Core) Evaluation() int {
	return c.eval
}

// Reset replaces the working solution with a copy of start.
func (c *Core) Reset(start *solution.Solution) {
	c.sol.CopyFrom(start)
	c.eval = c.sol.Evaluate()
}

// ResetRandom replaces the working solution with a fresh uniform random
// cycle of the same size.
func (c *Core) ResetRandom() {
	c.Reset(construct.Random(c.inst, c.sol.Len(), c.rng))
}

// Run iterates until a full pass finds no negative-delta move. The order
// in which the inter and intra neighborhoods are consulted is randomized
// once per call, matching the uniform tie treatment between them.
func (c *Core) Run() {
	finders := []func() (int, int, int, bool){c.findInter}
	kinds := []moveKind{moveInter}

	intraFinder := c.findIntraEdges
	intraKind := moveIntraEdges
	if c.intra == TwoNodes {
		intraFinder = c.findIntraNodes
		intraKind = moveIntraNodes
	}
	if c.rng.Intn(2) == 1 {
		finders = append(finders, intraFinder)
		kinds = append(kinds, intraKind)
	} else {
		finders = append([]func() (int, int, int, bool){intraFinder}, finders...)
		kinds = append([]moveKind{intraKind}, kinds...)
	}

	for {
		bestDelta := 0
		var bestKind moveKind
		var arg1, arg2 int

		for fi, find := range finders {
			delta, a1, a2, ok := find()
			if ok && delta < bestDelta {
				bestDelta, bestKind, arg1, arg2 = delta, kinds[fi], a1, a2
				if c.strategy == Greedy {
					break
				}
			}
		}

		if bestDelta >= 0 {
			return
		}

		c.eval += bestDelta
		c.apply(bestKind, arg1, arg2)
	}
}

func (c *Core) apply(kind moveKind, arg1, arg2 int) {
	switch kind {
	case moveInter:
		c.sol.ExchangeAt(arg1, arg2)
	case moveIntraNodes:
		c.sol.ExchangeNodes(arg1, arg2)
	case moveIntraEdges:
		c.sol.ExchangeEdges(arg1, arg2)
	}
}

// findInter scans all (selected position, outside node) replacements.
// Greedy passes shuffle both enumeration orders and stop at the first
// improvement.
func (c *Core) findInter() (delta, exchangedIdx, newNode int, ok bool) {
	if c.strategy == Greedy {
		shuffle(c.rng, c.cycleIdx)
		shuffle(c.rng, c.allNodes)
	}

	minDelta := 0
	minIdx, minNode := -1, -1
	for _, j := range c.allNodes {
		if c.sol.Contains(j) {
			continue
		}
		for _, i := range c.cycleIdx {
			d := c.sol.DeltaInterRoute(i, j)
			if d < minDelta {
				minDelta, minIdx, minNode = d, i, j
				if c.strategy == Greedy {
					return minDelta, minIdx, minNode, true
				}
			}
		}
	}
	return minDelta, minIdx, minNode, minIdx >= 0
}

// findIntraNodes scans all unordered position pairs for a two-node swap.
func (c *Core) findIntraNodes() (delta, firstIdx, secondIdx int, ok bool) {
	if c.strategy == Greedy {
		shuffle(c.rng, c.cycleIdx)
		shuffle(c.rng, c.cycleIdx2)
	}

	minDelta := 0
	minI, minJ := -1, -1
	for _, i := range c.cycleIdx {
		for _, j := range c.cycleIdx2 {
			if i >= j {
				continue
			}
			d := c.sol.DeltaIntraNodes(i, j)
			if d < minDelta {
				minDelta, minI, minJ = d, i, j
				if c.strategy == Greedy {
					return minDelta, minI, minJ, true
				}
			}
		}
	}
	return minDelta, minI, minJ, minI >= 0
}

// findIntraEdges scans all legal edge pairs for a 2-opt exchange.
func (c *Core) findIntraEdges() (delta, firstEdge, secondEdge int, ok bool) {
	if c.strategy == Greedy {
		shuffle(c.rng, c.cycleIdx)
		shuffle(c.rng, c.cycleIdx2)
	}

	minDelta := 0
	minI, minJ := -1, -1
	for _, i := range c.cycleIdx {
		for _, j := range c.cycleIdx2 {
			if !legalEdgePair(i, j, c.sol.Len()) {
				continue
			}
			d := c.sol.DeltaIntraEdges(i, j)
			if d < minDelta {
				minDelta, minI, minJ = d, i, j
				if c.strategy == Greedy {
					return minDelta, minI, minJ, true
				}
			}
		}
	}
	return minDelta, minI, minJ, minI >= 0
}

// legalEdgePair reports whether edge positions i and j are distinct and
// not cycle-adjacent, i.e. the pair is a valid 2-opt argument.
func legalEdgePair(i, j, k int) bool {
	if i == j {
		return false
	}
	if (i+1)%k == j || (j+1)%k == i {
		return false
	}
	return true
}

func shuffle(rng *rand.Rand, s []int) {
	rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// Perturb applies n random 2-opt reversals, updating the running
// evaluation by the exact delta of each. The two edge positions of every
// reversal are required to differ by at least 2 modulo K.
func (c *Core) Perturb(n int) {
	k := c.sol.Len()
	if k < 4 {
		// No legal non-adjacent edge pair exists.
		return
	}
	for i := 0; i < n; i++ {
		var e1, e2 int
		for {
			e1 = c.rng.Intn(k)
			e2 = c.rng.Intn(k)
			if legalEdgePair(e1, e2, k) {
				break
			}
		}
		c.eval += c.sol.DeltaIntraEdges(e1, e2)
		c.sol.ExchangeEdges(e1, e2)
	}
}

// DestroyAndRepair removes between 2 and 5 contiguous segments of length
// K/(4*segments) from the cycle and rebuilds it to full size with
// greedy-cycle insertion. The evaluation is recomputed from scratch
// afterwards because repair rewrites a large part of the cycle.
func (c *Core) DestroyAndRepair() {
	k := c.sol.Len()

	segments := c.rng.Intn(4) + 2
	length := k / (4 * segments)
	if length < 1 {
		length = 1
	}

	for s := 0; s < segments; s++ {
		if c.sol.Len()-length < 2 {
			break
		}
		start := c.rng.Intn(c.sol.Len() - length + 1)
		c.sol.RemoveRun(start, length)
	}

	construct.RepairGreedyCycle(c.inst, c.sol, k, c.rng)
	c.eval = c.sol.Evaluate()
}
