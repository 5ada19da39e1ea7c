package construct

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selcycle/internal/instance"
)

func randomInstance(t *testing.T, n int, seed int64) *instance.Instance {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	xs := make([]int, n)
	ys := make([]int, n)
	costs := make([]int, n)
	for i := 0; i < n; i++ {
		xs[i] = rng.Intn(1000)
		ys[i] = rng.Intn(1000)
		costs[i] = rng.Intn(100)
	}
	inst, err := instance.New("random", xs, ys, costs)
	require.NoError(t, err)
	return inst
}

func TestRandom_ProducesValidSolution(t *testing.T) {
	inst := randomInstance(t, 20, 1)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 10; i++ {
		s := Random(inst, 10, rng)
		require.NoError(t, s.Validate(10))
	}
}

func TestRandom_CoversDifferentSubsets(t *testing.T) {
	inst := randomInstance(t, 20, 2)
	rng := rand.New(rand.NewSource(3))

	seen := make(map[int]bool)
	for i := 0; i < 50; i++ {
		for _, n := range Random(inst, 10, rng).Nodes() {
			seen[n] = true
		}
	}
	// With 50 draws of half the nodes, every node should appear.
	assert.Len(t, seen, 20)
}

func TestNearestNeighbor_StartsAtStartNode(t *testing.T) {
	inst := randomInstance(t, 12, 4)
	rng := rand.New(rand.NewSource(5))

	s := NearestNeighbor(inst, 6, 7, rng)
	require.NoError(t, s.Validate(6))
	assert.Equal(t, 7, s.Nodes()[0])
}

func TestGreedyCycle_ValidAndContainsStart(t *testing.T) {
	inst := randomInstance(t, 12, 6)
	rng := rand.New(rand.NewSource(7))

	for start := 0; start < 12; start++ {
		s := GreedyCycle(inst, 6, start, rng)
		require.NoError(t, s.Validate(6))
		assert.True(t, s.Contains(start))
	}
}

func TestGreedyCycle_BeatsRandomOnAverage(t *testing.T) {
	inst := randomInstance(t, 30, 8)
	rng := rand.New(rand.NewSource(9))

	greedySum, randomSum := 0, 0
	for i := 0; i < 10; i++ {
		greedySum += GreedyCycle(inst, 15, i, rng).Evaluate()
		randomSum += Random(inst, 15, rng).Evaluate()
	}
	assert.Less(t, greedySum, randomSum)
}

func TestRegret2_Valid(t *testing.T) {
	inst := randomInstance(t, 12, 10)
	rng := rand.New(rand.NewSource(11))

	for start := 0; start < 12; start++ {
		s := Regret2(inst, 6, start, rng)
		require.NoError(t, s.Validate(6))
		assert.True(t, s.Contains(start))
	}
}

func TestRegret2Weighted_Valid(t *testing.T) {
	inst := randomInstance(t, 12, 12)
	rng := rand.New(rand.NewSource(13))

	s := Regret2Weighted(inst, 6, 0, 0.5, 0.5, rng)
	require.NoError(t, s.Validate(6))
}

func TestBestTwoInsertions_SinglePosition(t *testing.T) {
	inst := randomInstance(t, 5, 14)

	// A single-node "cycle" has exactly one insertion position, so the
	// second-best cost must equal the best and the regret is zero.
	nodes := []int{0}
	best, second, pos := bestTwoInsertions(inst, nodes, 3)
	assert.Equal(t, best, second)
	assert.Equal(t, 0, pos)
}

func TestBestTwoInsertions_Ordering(t *testing.T) {
	inst := randomInstance(t, 8, 15)
	nodes := []int{0, 3, 5, 7}

	best, second, pos := bestTwoInsertions(inst, nodes, 2)
	assert.LessOrEqual(t, best, second)
	assert.Equal(t, best, insertionCost(inst, nodes, pos, 2))

	// best must really be the minimum over all positions.
	for p := range nodes {
		assert.GreaterOrEqual(t, insertionCost(inst, nodes, p, 2), best)
	}
}

func TestRepairGreedyCycle_RestoresSize(t *testing.T) {
	inst := randomInstance(t, 16, 16)
	rng := rand.New(rand.NewSource(17))

	s := GreedyCycle(inst, 8, 0, rng)
	s.RemoveRun(2, 3)
	require.Equal(t, 5, s.Len())

	RepairGreedyCycle(inst, s, 8, rng)
	require.NoError(t, s.Validate(8))
}
