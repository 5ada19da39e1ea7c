package localsearch

import (
	"math/rand"
	"sort"

	"selcycle/internal/instance"
	"selcycle/internal/solution"
)

// CandidateSearch is a steepest local search restricted to moves that
// introduce at least one candidate edge: for each node u, only the m
// nodes minimizing dist(u, v) + cost(v) are considered as partners.
//
// A node-to-position lookup is maintained incrementally: O(1) per
// inter-route swap and O(segment length) per 2-opt reversal.
type CandidateSearch struct {
	inst *instance.Instance
	sol  *solution.Solution
	eval int
	rng  *rand.Rand

	candidates [][]int // per node id, its m nearest candidates
	posOf      []int   // node id -> cycle position, -1 when unselected
}

// NewCandidateSearch builds the candidate lists (m per node) and wraps
// sol. With m = 0 every list is empty and Run leaves sol untouched.
func NewCandidateSearch(sol *solution.Solution, m int, rng *rand.Rand) *CandidateSearch {
	inst := sol.Instance()
	cs := &CandidateSearch{
		inst:       inst,
		sol:        sol,
		eval:       sol.Evaluate(),
		rng:        rng,
		candidates: buildCandidateLists(inst, m),
	}
	cs.rebuildLookup()
	return cs
}

// buildCandidateLists sorts, for every node u, all other nodes by
// dist(u, v) + cost(v) and keeps the first m.
func buildCandidateLists(inst *instance.Instance, m int) [][]int {
	n := inst.NumNodes()
	if m > n-1 {
		m = n - 1
	}
	lists := make([][]int, n)
	for u := 0; u < n; u++ {
		others := make([]int, 0, n-1)
		for v := 0; v < n; v++ {
			if v != u {
				others = append(others, v)
			}
		}
		sort.SliceStable(others, func(a, b int) bool {
			va := inst.Distance(u, others[a]) + inst.Cost(others[a])
			vb := inst.Distance(u, others[b]) + inst.Cost(others[b])
			return va < vb
		})
		lists[u] = others[:m]
	}
	return lists
}

func (cs *CandidateSearch) rebuildLookup() {
	cs.posOf = make([]int, cs.inst.NumNodes())
	for i := range cs.posOf {
		cs.posOf[i] = -1
	}
	for i, n := range cs.sol.Nodes() {
		cs.posOf[n] = i
	}
}

// Solution returns the solution being explored.
func (cs *CandidateSearch) Solution() *solution.Solution {
	return cs.sol
}

// Evaluation returns the running evaluation.
func (cs *CandidateSearch) Evaluation() int {
	return cs.eval
}

// Run applies the minimum-delta candidate move per pass until no
// improving candidate move remains.
func (cs *CandidateSearch) Run() {
	for {
		bestDelta := 0
		bestKind := moveIntraEdges
		arg1, arg2 := -1, -1

		if d, a1, a2, ok := cs.findCandidateEdges(); ok && d < bestDelta {
			bestDelta, bestKind, arg1, arg2 = d, moveIntraEdges, a1, a2
		}
		if d, a1, a2, ok := cs.findCandidateInter(); ok && d < bestDelta {
			bestDelta, bestKind, arg1, arg2 = d, moveInter, a1, a2
		}

		if bestDelta >= 0 {
			return
		}

		cs.eval += bestDelta
		switch bestKind {
		case moveInter:
			removed := cs.sol.At(arg1)
			cs.sol.ExchangeAt(arg1, arg2)
			cs.posOf[removed] = -1
			cs.posOf[arg2] = arg1
		case moveIntraEdges:
			if arg2 < arg1 {
				arg1, arg2 = arg2, arg1
			}
			cs.sol.ExchangeEdges(arg1, arg2)
			for i := arg1 + 1; i <= arg2; i++ {
				cs.posOf[cs.sol.At(i)] = i
			}
		}
	}
}

// findCandidateEdges evaluates, for every cycle node u and selected
// candidate v, the 2-opt exchanges introducing edge (u, v), in both
// orientations.
func (cs *CandidateSearch) findCandidateEdges() (delta, edge1, edge2 int, ok bool) {
	minDelta := 0
	minE1, minE2 := -1, -1
	k := cs.sol.Len()

	for i := 0; i < k; i++ {
		u := cs.sol.At(i)
		for _, v := range cs.candidates[u] {
			if !cs.sol.Contains(v) {
				continue
			}
			j := cs.posOf[v]

			// Removing edges (i, i+1) and (j, j+1) introduces (u, v).
			if legalEdgePair(i, j, k) {
				if d := cs.sol.DeltaIntraEdges(i, j); d < minDelta {
					minDelta, minE1, minE2 = d, i, j
				}
			}

			// Removing edges (i-1, i) and (j-1, j) introduces (u, v)
			// with the opposite orientation.
			ip := cs.sol.PrevIndex(i)
			jp := cs.sol.PrevIndex(j)
			if legalEdgePair(ip, jp, k) {
				if d := cs.sol.DeltaIntraEdges(ip, jp); d < minDelta {
					minDelta, minE1, minE2 = d, ip, jp
				}
			}
		}
	}
	return minDelta, minE1, minE2, minE1 >= 0
}

// findCandidateInter evaluates, for every cycle node u and unselected
// candidate v, the two replacements that introduce edge (u, v): removing
// u's predecessor or u's successor.
func (cs *CandidateSearch) findCandidateInter() (delta, removedIdx, newNode int, ok bool) {
	minDelta := 0
	minIdx, minNode := -1, -1
	k := cs.sol.Len()

	for i := 0; i < k; i++ {
		u := cs.sol.At(i)
		for _, v := range cs.candidates[u] {
			if cs.sol.Contains(v) {
				continue
			}
			if d, rem := cs.sol.DeltaInterCandidate(i, v, solution.TowardPrev); d < minDelta {
				minDelta, minIdx, minNode = d, rem, v
			}
			if d, rem := cs.sol.DeltaInterCandidate(i, v, solution.TowardNext); d < minDelta {
				minDelta, minIdx, minNode = d, rem, v
			}
		}
	}
	return minDelta, minIdx, minNode, minIdx >= 0
}
