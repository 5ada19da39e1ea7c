package localsearch

import (
	"container/heap"
	"math/rand"

	"selcycle/internal/instance"
	"selcycle/internal/solution"
)

// moveHeap is a min-heap of moves keyed by delta, with most-improving
// moves first. Stale entries are tolerated; revalidation on pop filters
// them out.
type moveHeap []solution.Move

func (h moveHeap) Len() int           { return len(h) }
func (h moveHeap) Less(i, j int) bool { return h[i].Delta() < h[j].Delta() }
func (h moveHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x any)        { *h = append(*h, x.(solution.Move)) }
func (h *moveHeap) Pop() any {
	old := *h
	n := len(old)
	m := old[n-1]
	old[n-1] = nil // avoid memory leak
	*h = old[:n-1]
	return m
}

// moveStatus classifies a cached move against the current cycle.
type moveStatus int

const (
	// statusInvalid means a remembered edge no longer exists; the cached
	// delta is meaningless and the move is discarded.
	statusInvalid moveStatus = iota
	// statusPending means both edges exist but with mixed orientations;
	// the move is kept for later revalidation.
	statusPending
	// statusApplicable means both edges exist in a consistent
	// orientation and the cached delta is still exact.
	statusApplicable
)

// CacheSearch is a steepest local search that remembers improving moves
// between passes. Instead of re-enumerating the whole neighborhood after
// every application, it pops the most-improving cached move, checks the
// remembered edges against successor/predecessor maps, and applies it if
// the edges still exist in a consistent orientation.
type CacheSearch struct {
	inst *instance.Instance
	sol  *solution.Solution
	eval int
	rng  *rand.Rand

	succ    []int // node id -> successor node id, -1 when unselected
	pred    []int // node id -> predecessor node id, -1 when unselected
	posOf   []int // node id -> cycle position, -1 when unselected
	lm      moveHeap
	pending []solution.Move
}

// NewCacheSearch wraps sol. The solution is adopted, not copied.
func NewCacheSearch(sol *solution.Solution, rng *rand.Rand) *CacheSearch {
	return &CacheSearch{
		inst: sol.Instance(),
		sol:  sol,
		eval: sol.Evaluate(),
		rng:  rng,
	}
}

// Solution returns the solution being explored.
func (ls *CacheSearch) Solution() *solution.Solution {
	return ls.sol
}

// Evaluation returns the running evaluation.
func (ls *CacheSearch) Evaluation() int {
	return ls.eval
}

// Run drains the move cache, refilling it with full scans whenever it
// dries up, until a full scan finds no improving move.
func (ls *CacheSearch) Run() {
	ls.rebuildLinks()
	ls.lm = ls.lm[:0]
	ls.pending = ls.pending[:0]
	heap.Init(&ls.lm)
	ls.scan()

	for {
		for ls.lm.Len() > 0 {
			mv := heap.Pop(&ls.lm).(solution.Move)

			switch m := mv.(type) {
			case solution.EdgeExchangeMove:
				status, i, j := ls.classifyEdgeExchange(m)
				switch status {
				case statusApplicable:
					ls.applyEdgeExchange(m, i, j)
				case statusPending:
					ls.pending = append(ls.pending, m)
				}
			case solution.InterSwapMove:
				status, idx := ls.classifyInterSwap(m)
				if status == statusApplicable {
					ls.applyInterSwap(m, idx)
				}
			}
		}

		// Cache dried up: one fresh full scan. Nothing new means no
		// improving move exists and the search is done. Pending moves
		// cannot have become applicable since they were classified,
		// because no move was applied in between.
		for _, m := range ls.pending {
			heap.Push(&ls.lm, m)
		}
		ls.pending = ls.pending[:0]
		if ls.scan() == 0 {
			return
		}
	}
}

// rebuildLinks recomputes successor/predecessor/position maps from the
// cycle order.
func (ls *CacheSearch) rebuildLinks() {
	n := ls.inst.NumNodes()
	ls.succ = resetToSentinel(ls.succ, n)
	ls.pred = resetToSentinel(ls.pred, n)
	ls.posOf = resetToSentinel(ls.posOf, n)

	nodes := ls.sol.Nodes()
	for i, u := range nodes {
		ls.succ[u] = nodes[ls.sol.NextIndex(i)]
		ls.pred[u] = nodes[ls.sol.PrevIndex(i)]
		ls.posOf[u] = i
	}
}

func resetToSentinel(s []int, n int) []int {
	if len(s) != n {
		s = make([]int, n)
	}
	for i := range s {
		s[i] = -1
	}
	return s
}

// scan enumerates the full inter and two-edge neighborhoods of the
// current cycle and pushes every improving move. Returns the number of
// moves pushed.
func (ls *CacheSearch) scan() int {
	pushed := 0
	k := ls.sol.Len()
	for i := 0; i < k; i++ {
		pushed += ls.addImprovingEdgeExchanges(i)
		pushed += ls.addImprovingInterSwaps(i)
	}
	return pushed
}

// addImprovingEdgeExchanges records every improving 2-opt involving the
// edge at position edgeIdx, capturing endpoint node ids for later
// revalidation.
func (ls *CacheSearch) addImprovingEdgeExchanges(edgeIdx int) int {
	pushed := 0
	k := ls.sol.Len()
	for j := 0; j < k; j++ {
		if !legalEdgePair(edgeIdx, j, k) {
			continue
		}
		delta := ls.sol.DeltaIntraEdges(edgeIdx, j)
		if delta >= 0 {
			continue
		}
		heap.Push(&ls.lm, solution.EdgeExchangeMove{
			DeltaValue: delta,
			U1:         ls.sol.At(edgeIdx),
			U2:         ls.sol.At(ls.sol.NextIndex(edgeIdx)),
			V1:         ls.sol.At(j),
			V2:         ls.sol.At(ls.sol.NextIndex(j)),
		})
		pushed++
	}
	return pushed
}

// addImprovingInterSwaps records every improving replacement of the node
// at position posIdx by an outside node, capturing the surrounding
// triple.
func (ls *CacheSearch) addImprovingInterSwaps(posIdx int) int {
	pushed := 0
	for v := 0; v < ls.inst.NumNodes(); v++ {
		if ls.sol.Contains(v) {
			continue
		}
		delta := ls.sol.DeltaInterRoute(posIdx, v)
		if delta >= 0 {
			continue
		}
		heap.Push(&ls.lm, solution.InterSwapMove{
			DeltaValue: delta,
			Prev:       ls.sol.At(ls.sol.PrevIndex(posIdx)),
			Old:        ls.sol.At(posIdx),
			Next:       ls.sol.At(ls.sol.NextIndex(posIdx)),
			New:        v,
		})
		pushed++
	}
	return pushed
}

// classifyEdgeExchange checks whether the two remembered edges still
// exist and in which orientation. On statusApplicable it also returns
// the current edge positions to apply the 2-opt at.
func (ls *CacheSearch) classifyEdgeExchange(m solution.EdgeExchangeMove) (moveStatus, int, int) {
	e1Fwd := ls.succ[m.U1] == m.U2
	e1Rev := ls.pred[m.U1] == m.U2
	e2Fwd := ls.succ[m.V1] == m.V2
	e2Rev := ls.pred[m.V1] == m.V2

	if (!e1Fwd && !e1Rev) || (!e2Fwd && !e2Rev) {
		return statusInvalid, 0, 0
	}
	if e1Fwd && e2Fwd {
		return statusApplicable, ls.posOf[m.U1], ls.posOf[m.V1]
	}
	if e1Rev && e2Rev {
		// Both edges reversed: the same exchange applies to the edges
		// now starting at U2 and V2.
		return statusApplicable, ls.posOf[m.U2], ls.posOf[m.V2]
	}
	return statusPending, 0, 0
}

// classifyInterSwap checks that the remembered triple around the
// replaced node is intact (in either orientation) and that the incoming
// node is still outside the cycle. Inter swaps are never pending: a
// broken triple invalidates the cached delta for good.
func (ls *CacheSearch) classifyInterSwap(m solution.InterSwapMove) (moveStatus, int) {
	if ls.posOf[m.Old] < 0 || ls.posOf[m.Prev] < 0 || ls.posOf[m.Next] < 0 || ls.posOf[m.New] >= 0 {
		return statusInvalid, 0
	}
	if ls.succ[m.Prev] == m.Old && ls.succ[m.Old] == m.Next {
		return statusApplicable, ls.posOf[m.Old]
	}
	if ls.pred[m.Prev] == m.Old && ls.pred[m.Old] == m.Next {
		return statusApplicable, ls.posOf[m.Old]
	}
	return statusInvalid, 0
}

// applyEdgeExchange applies a cached 2-opt at positions i, j, updates
// the running evaluation by the cached delta, relinks the reversed
// segment, requeues pending moves, and records fresh improving moves
// around the changed positions.
func (ls *CacheSearch) applyEdgeExchange(m solution.EdgeExchangeMove, i, j int) {
	if j < i {
		i, j = j, i
	}
	ls.eval += m.DeltaValue
	ls.sol.ExchangeEdges(i, j)
	ls.relinkRange(i, j+1)
	ls.requeuePending()

	ls.addImprovingInterSwaps(i)
	ls.addImprovingInterSwaps(ls.sol.NextIndex(i))
	ls.addImprovingInterSwaps(j)
	ls.addImprovingInterSwaps(ls.sol.NextIndex(j))
	ls.addImprovingEdgeExchanges(i)
	ls.addImprovingEdgeExchanges(j)
}

// applyInterSwap applies a cached node replacement at position idx.
func (ls *CacheSearch) applyInterSwap(m solution.InterSwapMove, idx int) {
	ls.eval += m.DeltaValue
	ls.sol.ExchangeAt(idx, m.New)

	prev := ls.sol.At(ls.sol.PrevIndex(idx))
	next := ls.sol.At(ls.sol.NextIndex(idx))
	ls.succ[m.Old], ls.pred[m.Old], ls.posOf[m.Old] = -1, -1, -1
	ls.succ[prev] = m.New
	ls.pred[m.New] = prev
	ls.succ[m.New] = next
	ls.pred[next] = m.New
	ls.posOf[m.New] = idx

	ls.requeuePending()

	prevIdx := ls.sol.PrevIndex(idx)
	ls.addImprovingInterSwaps(prevIdx)
	ls.addImprovingInterSwaps(idx)
	ls.addImprovingInterSwaps(ls.sol.NextIndex(idx))
	ls.addImprovingEdgeExchanges(prevIdx)
	ls.addImprovingEdgeExchanges(idx)
}

// relinkRange recomputes successor/predecessor/position entries for the
// nodes at positions lo..hi inclusive.
func (ls *CacheSearch) relinkRange(lo, hi int) {
	nodes := ls.sol.Nodes()
	for p := lo; p <= hi; p++ {
		pos := p % len(nodes)
		u := nodes[pos]
		ls.succ[u] = nodes[ls.sol.NextIndex(pos)]
		ls.pred[u] = nodes[ls.sol.PrevIndex(pos)]
		ls.posOf[u] = pos
	}
}

// requeuePending pushes retained moves back into the heap after an
// application changed the cycle.
func (ls *CacheSearch) requeuePending() {
	for _, m := range ls.pending {
		heap.Push(&ls.lm, m)
	}
	ls.pending = ls.pending[:0]
}
