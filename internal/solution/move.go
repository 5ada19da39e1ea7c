package solution

// Move is one candidate modification of a Solution together with the
// exact evaluation change it would cause. The three variants carry only
// the fields their application needs; the move cache additionally relies
// on the captured endpoint node ids to revalidate a move against a cycle
// that has changed since the move was recorded.
type Move interface {
	// Delta returns the signed evaluation change of applying the move.
	Delta() int
}

// EdgeExchangeMove is an intra-route two-edge exchange (2-opt).
// U1->U2 and V1->V2 are the removed edges as they existed when the move
// was created; the cached delta stays exact as long as both edges still
// exist in a consistent orientation.
type EdgeExchangeMove struct {
	DeltaValue     int
	U1, U2, V1, V2 int
}

// Delta implements Move.
func (m EdgeExchangeMove) Delta() int { return m.DeltaValue }

// InterSwapMove replaces a selected node with an unselected one.
// Prev, Old, Next are the triple around the replaced node as captured at
// creation time; New is the node entering the cycle.
type InterSwapMove struct {
	DeltaValue           int
	Prev, Old, Next, New int
}

// Delta implements Move.
func (m InterSwapMove) Delta() int { return m.DeltaValue }

// NodeExchangeMove is an intra-route two-node exchange identified by
// cycle positions. No engine in this module creates it: the basic
// explorer applies two-node swaps directly by position, and the move
// cache does not record them.
type NodeExchangeMove struct {
	DeltaValue int
	I, J       int
}

// Delta implements Move.
func (m NodeExchangeMove) Delta() int { return m.DeltaValue }
