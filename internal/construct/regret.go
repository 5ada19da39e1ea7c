package construct

import (
	"math/rand"

	"selcycle/internal/instance"
	"selcycle/internal/solution"
)

// Regret2 builds a cycle of k nodes starting from startNode, choosing at
// each step the unselected node with the largest 2-regret: the gap
// between its second-best and best insertion costs. The chosen node is
// inserted at its best position. Ties are broken uniformly at random.
func Regret2(inst *instance.Instance, k, startNode int, rng *rand.Rand) *solution.Solution {
	return regretCycle(inst, k, startNode, 1, 0, rng)
}

// Regret2Weighted mixes regret with greed:
//
//	score = w1*regret - w2*bestInsertion
//
// and picks the node with the largest score. With w1=1, w2=0 this is
// plain 2-regret; equal weights trade regret against insertion cost.
func Regret2Weighted(inst *instance.Instance, k, startNode int, w1, w2 float64, rng *rand.Rand) *solution.Solution {
	return regretCycle(inst, k, startNode, w1, w2, rng)
}

func regretCycle(inst *instance.Instance, k, startNode int, w1, w2 float64, rng *rand.Rand) *solution.Solution {
	s := solution.NewEmpty(inst)
	s.Add(startNode)
	if k > 1 {
		s.Add(cheapestExtension(inst, s, startNode, rng))
	}

	for s.Len() < k {
		nodes := s.Nodes()

		bestNode, bestNodePos := -1, -1
		bestScore := 0.0
		ties := 0
		for v := 0; v < inst.NumNodes(); v++ {
			if s.Contains(v) {
				continue
			}

			best, second, bestPos := bestTwoInsertions(inst, nodes, v)
			// With a single insertion position second equals best,
			// so the regret is zero.
			regret := second - best
			score := w1*float64(regret) - w2*float64(best)

			switch {
			case bestNode == -1 || score > bestScore:
				bestNode, bestNodePos, bestScore, ties = v, bestPos, score, 1
			case score == bestScore:
				ties++
				if rng.Intn(ties) == 0 {
					bestNode, bestNodePos = v, bestPos
				}
			}
		}

		insertAfter(s, bestNodePos, bestNode)
	}
	return s
}

// bestTwoInsertions returns the two smallest insertion costs for v over
// all cycle positions and the position achieving the smallest. When only
// one position exists, second equals best.
func bestTwoInsertions(inst *instance.Instance, nodes []int, v int) (best, second, bestPos int) {
	best, second, bestPos = 0, 0, -1
	for pos := 0; pos < len(nodes); pos++ {
		cost := insertionCost(inst, nodes, pos, v)
		switch {
		case bestPos == -1:
			best, second, bestPos = cost, cost, pos
		case cost < best:
			second = best
			best, bestPos = cost, pos
		case pos == 1 || cost < second:
			second = cost
		}
	}
	return best, second, bestPos
}
