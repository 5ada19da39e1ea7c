// Package construct provides the starting-solution producers used by the
// local-search and metaheuristic drivers: uniform random cycles and the
// greedy constructive heuristics (nearest neighbor, greedy cycle, 2-regret
// and its weighted variant).
//
// Every producer takes an explicit *rand.Rand so runs are reproducible
// when the caller fixes the seed.
package construct

import (
	"math/rand"

	"selcycle/internal/instance"
	"selcycle/internal/solution"
)

// Random returns a uniformly random cycle of k distinct nodes in random
// order.
func Random(inst *instance.Instance, k int, rng *rand.Rand) *solution.Solution {
	perm := rng.Perm(inst.NumNodes())
	return solution.FromNodes(inst, perm[:k])
}

// NearestNeighbor grows a path from startNode, repeatedly appending the
// unselected node minimizing distance-from-last plus service cost.
func NearestNeighbor(inst *instance.Instance, k, startNode int, rng *rand.Rand) *solution.Solution {
	s := solution.NewEmpty(inst)
	s.Add(startNode)

	last := startNode
	for s.Len() < k {
		next := cheapestExtension(inst, s, last, rng)
		s.Add(next)
		last = next
	}
	return s
}

// cheapestExtension returns the unselected node minimizing
// dist(from, v) + cost(v), breaking ties uniformly at random.
func cheapestExtension(inst *instance.Instance, s *solution.Solution, from int, rng *rand.Rand) int {
	best := -1
	bestValue := 0
	ties := 0
	for v := 0; v < inst.NumNodes(); v++ {
		if s.Contains(v) {
			continue
		}
		value := inst.Distance(from, v) + inst.Cost(v)
		switch {
		case best == -1 || value < bestValue:
			best, bestValue, ties = v, value, 1
		case value == bestValue:
			ties++
			if rng.Intn(ties) == 0 {
				best = v
			}
		}
	}
	return best
}
