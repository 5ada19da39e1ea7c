package construct

import (
	"math/rand"

	"selcycle/internal/instance"
	"selcycle/internal/solution"
)

// insertionCost is the cost of splicing node v into the edge between
// cycle positions pos and pos+1:
//
//	dist[prev][v] + dist[v][next] - dist[prev][next] + cost[v]
func insertionCost(inst *instance.Instance, nodes []int, pos, v int) int {
	prev := nodes[pos]
	next := nodes[(pos+1)%len(nodes)]
	return inst.Distance(prev, v) + inst.Distance(v, next) - inst.Distance(prev, next) + inst.Cost(v)
}

// GreedyCycle builds a cycle of k nodes starting from startNode, always
// inserting the unselected node at the position with the globally
// smallest insertion cost. Ties between equal-cost candidates are broken
// uniformly at random.
func GreedyCycle(inst *instance.Instance, k, startNode int, rng *rand.Rand) *solution.Solution {
	s := solution.NewEmpty(inst)
	s.Add(startNode)
	if k > 1 {
		s.Add(cheapestExtension(inst, s, startNode, rng))
	}

	for s.Len() < k {
		nodes := s.Nodes()

		bestNode, bestPos := -1, -1
		bestCost := 0
		ties := 0
		for v := 0; v < inst.NumNodes(); v++ {
			if s.Contains(v) {
				continue
			}
			for pos := 0; pos < len(nodes); pos++ {
				cost := insertionCost(inst, nodes, pos, v)
				switch {
				case bestNode == -1 || cost < bestCost:
					bestNode, bestPos, bestCost, ties = v, pos, cost, 1
				case cost == bestCost:
					ties++
					if rng.Intn(ties) == 0 {
						bestNode, bestPos = v, pos
					}
				}
			}
		}

		insertAfter(s, bestPos, bestNode)
	}
	return s
}

// insertAfter rebuilds the cycle with v spliced in after position pos.
func insertAfter(s *solution.Solution, pos, v int) {
	nodes := s.CopyNodes()
	order := make([]int, 0, len(nodes)+1)
	order = append(order, nodes[:pos+1]...)
	order = append(order, v)
	order = append(order, nodes[pos+1:]...)

	rebuilt := solution.FromNodes(s.Instance(), order)
	s.CopyFrom(rebuilt)
}

// RepairGreedyCycle completes a partial cycle up to k nodes using the
// greedy-cycle insertion criterion. It is the repair half of
// destroy-and-repair; the surviving cycle order is preserved.
func RepairGreedyCycle(inst *instance.Instance, s *solution.Solution, k int, rng *rand.Rand) {
	for s.Len() < k {
		nodes := s.Nodes()

		bestNode, bestPos := -1, -1
		bestCost := 0
		ties := 0
		for v := 0; v < inst.NumNodes(); v++ {
			if s.Contains(v) {
				continue
			}
			for pos := 0; pos < len(nodes); pos++ {
				cost := insertionCost(inst, nodes, pos, v)
				switch {
				case bestNode == -1 || cost < bestCost:
					bestNode, bestPos, bestCost, ties = v, pos, cost, 1
				case cost == bestCost:
					ties++
					if rng.Intn(ties) == 0 {
						bestNode, bestPos = v, pos
					}
				}
			}
		}

		insertAfter(s, bestPos, bestNode)
	}
}
