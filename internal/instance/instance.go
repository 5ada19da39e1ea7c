// Package instance holds the immutable problem data for a selective-cycle
// run: node coordinates are folded into a precomputed distance matrix, and
// every node carries a non-negative service cost.
//
// An Instance is read-only after construction and may be shared freely
// between solvers; all of them borrow the same dist/cost tables and never
// copy them.
package instance

import (
	"fmt"
	"math"
)

// Instance contains the problem data loaded from a benchmark file.
type Instance struct {
	// Name identifies the instance, derived from the file name.
	Name string

	// Costs holds the service cost of each node, indexed by node id.
	Costs []int

	// Dist is the N x N matrix of rounded Euclidean distances.
	// Dist[i][j] == Dist[j][i] and Dist[i][i] == 0.
	Dist [][]int
}

// NumNodes returns N, the total number of nodes in the instance.
func (in *Instance) NumNodes() int {
	return len(in.Costs)
}

// CycleSize returns K, the number of nodes a solution must select:
// K = ceil(N * fraction). With the default fraction of 0.5 this is
// ceil(N/2), matching the benchmark convention.
func (in *Instance) CycleSize(fraction float64) int {
	return int(math.Ceil(float64(in.NumNodes()) * fraction))
}

// Distance returns the rounded Euclidean distance between nodes i and j.
func (in *Instance) Distance(i, j int) int {
	return in.Dist[i][j]
}

// Cost returns the service cost of node i.
func (in *Instance) Cost(i int) int {
	return in.Costs[i]
}

// New builds an Instance from raw coordinates and costs, computing the
// distance matrix. It is the single place distance rounding happens.
func New(name string, xs, ys, costs []int) (*Instance, error) {
	if len(xs) != len(ys) || len(xs) != len(costs) {
		return nil, fmt.Errorf("coordinate/cost length mismatch: %d/%d/%d", len(xs), len(ys), len(costs))
	}
	n := len(xs)

	dist := make([][]int, n)
	for i := 0; i < n; i++ {
		dist[i] = make([]int, n)
		for j := 0; j < n; j++ {
			dx := float64(xs[i] - xs[j])
			dy := float64(ys[i] - ys[j])
			dist[i][j] = int(math.Round(math.Sqrt(dx*dx + dy*dy)))
		}
	}

	return &Instance{
		Name:  name,
		Costs: append([]int(nil), costs...),
		Dist:  dist,
	}, nil
}
