// Package solution implements the cycle representation shared by every
// solver: an ordered subset of K node indices visited as a closed cycle,
// with O(1) membership tracking and incremental-delta evaluators for the
// three neighborhood move kinds (inter-route swap, intra-route two-node
// exchange, intra-route two-edge exchange).
//
// # Cost Model
//
// The evaluation of a solution is the sum of the service costs of the
// selected nodes plus the sum of the rounded Euclidean edge lengths along
// the cycle, including the closing edge from the last node back to the
// first. All arithmetic is exact integer arithmetic.
//
// # Thread Safety
//
// A Solution is owned by exactly one solver at a time and is NOT safe for
// concurrent use.
package solution

import (
	"fmt"

	"selcycle/internal/instance"
)

// Solution is a closed cycle over an ordered subset of node indices.
// The nodes slice is authoritative; selected is a derived membership view
// kept in sync by every mutator.
type Solution struct {
	inst     *instance.Instance
	nodes    []int
	selected []bool
}

// NewEmpty creates an empty solution for the given instance.
func NewEmpty(inst *instance.Instance) *Solution {
	return &Solution{
		inst:     inst,
		nodes:    make([]int, 0, inst.NumNodes()),
		selected: make([]bool, inst.NumNodes()),
	}
}

// FromNodes creates a solution visiting the given nodes in order.
func FromNodes(inst *instance.Instance, nodes []int) *Solution {
	s := NewEmpty(inst)
	for _, n := range nodes {
		s.Add(n)
	}
	return s
}

// Instance returns the instance this solution belongs to.
func (s *Solution) Instance() *instance.Instance {
	return s.inst
}

// Len returns the number of nodes currently in the cycle.
func (s *Solution) Len() int {
	return len(s.nodes)
}

// Nodes returns the cycle order. The slice is owned by the Solution and
// must not be mutated by callers.
func (s *Solution) Nodes() []int {
	return s.nodes
}

// CopyNodes returns a fresh copy of the cycle order.
func (s *Solution) CopyNodes() []int {
	return append([]int(nil), s.nodes...)
}

// Clone returns a deep copy sharing the same instance.
func (s *Solution) Clone() *Solution {
	c := &Solution{
		inst:     s.inst,
		nodes:    append([]int(nil), s.nodes...),
		selected: append([]bool(nil), s.selected...),
	}
	return c
}

// CopyFrom overwrites this solution with the contents of other.
func (s *Solution) CopyFrom(other *Solution) {
	s.nodes = s.nodes[:0]
	s.nodes = append(s.nodes, other.nodes...)
	copy(s.selected, other.selected)
}

// Contains reports whether node is part of the cycle.
func (s *Solution) Contains(node int) bool {
	return s.selected[node]
}

// At returns the node at cycle position i.
func (s *Solution) At(i int) int {
	return s.nodes[i]
}

// NextIndex returns the cycle position following i.
func (s *Solution) NextIndex(i int) int {
	return (i + 1) % len(s.nodes)
}

// PrevIndex returns the cycle position preceding i.
func (s *Solution) PrevIndex(i int) int {
	return (i + len(s.nodes) - 1) % len(s.nodes)
}

// FindIndex returns the cycle position of node, or -1. O(K).
func (s *Solution) FindIndex(node int) int {
	for i, n := range s.nodes {
		if n == node {
			return i
		}
	}
	return -1
}

// AreConsecutive reports whether positions i and j are cycle-adjacent.
func (s *Solution) AreConsecutive(i, j int) bool {
	return s.NextIndex(i) == j || s.PrevIndex(i) == j
}

// Add appends node to the end of the cycle.
func (s *Solution) Add(node int) {
	s.nodes = append(s.nodes, node)
	s.selected[node] = true
}

// RemoveAt removes the node at position i, shifting subsequent positions.
func (s *Solution) RemoveAt(i int) {
	s.selected[s.nodes[i]] = false
	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
}

// RemoveRun removes amount nodes starting at position i. Used by the
// destroy phase of large-scale neighborhood search.
func (s *Solution) RemoveRun(i, amount int) {
	for k := 0; k < amount; k++ {
		s.RemoveAt(i)
	}
}

// ExchangeAt replaces the node at position i with newNode.
// newNode must not already be selected.
func (s *Solution) ExchangeAt(i, newNode int) {
	s.selected[newNode] = true
	s.selected[s.nodes[i]] = false
	s.nodes[i] = newNode
}

// ExchangeNodes swaps the nodes at positions i and j.
func (s *Solution) ExchangeNodes(i, j int) {
	s.nodes[i], s.nodes[j] = s.nodes[j], s.nodes[i]
}

// ExchangeEdges performs a 2-opt reversal on the edges starting at
// positions i and j: positions are canonicalized so i < j, then the open
// chain nodes[i+1 .. j] is reversed in place. Thanks to canonicalization
// the reversed chain never crosses the seam; the (0, K-1) edge pair
// reverses nodes[1 .. K-1], which is the same cycle as reversing the
// seam-crossing complement.
func (s *Solution) ExchangeEdges(i, j int) {
	if j < i {
		i, j = j, i
	}
	for lo, hi := i+1, j; lo < hi; lo, hi = lo+1, hi-1 {
		s.nodes[lo], s.nodes[hi] = s.nodes[hi], s.nodes[lo]
	}
}

// Evaluate computes the full evaluation from scratch: node costs plus
// cycle edge lengths. Solvers maintain a running evaluation by deltas and
// call this on construction, after a reset or destroy-and-repair, and for
// sanity checks.
func (s *Solution) Evaluate() int {
	if len(s.nodes) == 0 {
		return 0
	}
	current := s.nodes[0]
	total := s.inst.Cost(current)
	for i := 1; i < len(s.nodes); i++ {
		next := s.nodes[i]
		total += s.inst.Cost(next)
		total += s.inst.Distance(current, next)
		current = next
	}
	if len(s.nodes) > 1 {
		total += s.inst.Distance(current, s.nodes[0])
	}
	return total
}

// Validate checks structural invariants: exactly k distinct in-range
// nodes and a consistent membership view. Intended for tests and debug
// paths, not for hot loops.
func (s *Solution) Validate(k int) error {
	if len(s.nodes) != k {
		return fmt.Errorf("solution has %d nodes, want %d", len(s.nodes), k)
	}
	seen := make(map[int]bool, len(s.nodes))
	for _, n := range s.nodes {
		if n < 0 || n >= s.inst.NumNodes() {
			return fmt.Errorf("node %d out of range [0, %d)", n, s.inst.NumNodes())
		}
		if seen[n] {
			return fmt.Errorf("node %d appears twice", n)
		}
		seen[n] = true
		if !s.selected[n] {
			return fmt.Errorf("node %d in cycle but not in selected view", n)
		}
	}
	for n, sel := range s.selected {
		if sel && !seen[n] {
			return fmt.Errorf("node %d in selected view but not in cycle", n)
		}
	}
	return nil
}
