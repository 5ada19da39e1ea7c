package solution

// Delta evaluators. Each returns the exact signed change in Evaluate()
// the corresponding move would cause, without mutating the solution.
// Negative means improving.

// DeltaInterRoute evaluates replacing the node at cycle position
// exchangedIdx with the unselected newNode.
func (s *Solution) DeltaInterRoute(exchangedIdx, newNode int) int {
	old := s.nodes[exchangedIdx]
	delta := s.inst.Cost(newNode) - s.inst.Cost(old)
	if len(s.nodes) == 1 {
		// A single-node cycle has no edges.
		return delta
	}

	prev := s.nodes[s.PrevIndex(exchangedIdx)]
	next := s.nodes[s.NextIndex(exchangedIdx)]

	delta -= s.inst.Distance(prev, old)
	delta -= s.inst.Distance(old, next)
	delta += s.inst.Distance(prev, newNode)
	delta += s.inst.Distance(newNode, next)

	return delta
}

// DeltaIntraNodes evaluates swapping the nodes at cycle positions
// firstIdx and secondIdx. Cycle-adjacent positions touch three edges,
// all other pairs touch four; the two cases are handled separately, and
// the adjacent case works across the seam as well.
func (s *Solution) DeltaIntraNodes(firstIdx, secondIdx int) int {
	if firstIdx == secondIdx {
		return 0
	}
	if len(s.nodes) == 2 {
		// Swapping the only two nodes relabels the same cycle.
		return 0
	}

	// Adjacent case: orient so x immediately precedes y, then only the
	// edges prev(x)-x, x-y (length unchanged) and y-next(y) move.
	if s.NextIndex(firstIdx) == secondIdx || s.NextIndex(secondIdx) == firstIdx {
		x, y := firstIdx, secondIdx
		if s.NextIndex(secondIdx) == firstIdx {
			x, y = secondIdx, firstIdx
		}
		xn := s.nodes[x]
		yn := s.nodes[y]
		p := s.nodes[s.PrevIndex(x)]
		n := s.nodes[s.NextIndex(y)]

		delta := 0
		delta -= s.inst.Distance(p, xn)
		delta -= s.inst.Distance(yn, n)
		delta += s.inst.Distance(p, yn)
		delta += s.inst.Distance(xn, n)
		return delta
	}

	first := s.nodes[firstIdx]
	second := s.nodes[secondIdx]

	firstPrev := s.nodes[s.PrevIndex(firstIdx)]
	firstNext := s.nodes[s.NextIndex(firstIdx)]
	secondPrev := s.nodes[s.PrevIndex(secondIdx)]
	secondNext := s.nodes[s.NextIndex(secondIdx)]

	delta := 0
	delta -= s.inst.Distance(firstPrev, first)
	delta -= s.inst.Distance(second, secondNext)
	delta += s.inst.Distance(firstPrev, second)
	delta += s.inst.Distance(first, secondNext)

	delta -= s.inst.Distance(first, firstNext)
	delta -= s.inst.Distance(secondPrev, second)
	delta += s.inst.Distance(second, firstNext)
	delta += s.inst.Distance(first, secondPrev)

	return delta
}

// DeltaIntraEdges evaluates a 2-opt exchange of the edges starting at
// positions firstEdgeIdx and secondEdgeIdx. Positions must be distinct
// and not cycle-adjacent.
func (s *Solution) DeltaIntraEdges(firstEdgeIdx, secondEdgeIdx int) int {
	a := s.nodes[firstEdgeIdx]
	b := s.nodes[s.NextIndex(firstEdgeIdx)]
	c := s.nodes[secondEdgeIdx]
	d := s.nodes[s.NextIndex(secondEdgeIdx)]

	delta := 0
	delta -= s.inst.Distance(a, b)
	delta -= s.inst.Distance(c, d)
	delta += s.inst.Distance(a, c)
	delta += s.inst.Distance(b, d)

	return delta
}

// CandidateDirection selects which neighbor of the anchor position an
// inter-route candidate move removes.
type CandidateDirection int

const (
	// TowardPrev removes the predecessor of the anchor node.
	TowardPrev CandidateDirection = iota
	// TowardNext removes the successor of the anchor node.
	TowardNext
)

// DeltaInterCandidate evaluates the inter-route replacement that
// introduces the edge (anchor, nodeToAdd) by removing the anchor's
// immediate neighbor in the given direction. It returns the delta and the
// cycle position of the node that would be removed.
func (s *Solution) DeltaInterCandidate(anchorIdx, nodeToAdd int, dir CandidateDirection) (delta, removedIdx int) {
	var nIdx, nnIdx int
	if dir == TowardPrev {
		nIdx = s.PrevIndex(anchorIdx)
		nnIdx = s.PrevIndex(nIdx)
	} else {
		nIdx = s.NextIndex(anchorIdx)
		nnIdx = s.NextIndex(nIdx)
	}

	anchor := s.nodes[anchorIdx]
	removed := s.nodes[nIdx]
	beyond := s.nodes[nnIdx]

	delta = s.inst.Cost(nodeToAdd) - s.inst.Cost(removed)
	delta -= s.inst.Distance(anchor, removed)
	delta -= s.inst.Distance(removed, beyond)
	delta += s.inst.Distance(anchor, nodeToAdd)
	delta += s.inst.Distance(nodeToAdd, beyond)

	return delta, nIdx
}
