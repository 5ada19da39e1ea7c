package solution

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selcycle/internal/instance"
)

// squareInstance is the 3x4 rectangle with zero costs:
// dist(0,1)=3, dist(1,2)=4, dist(2,3)=3, dist(3,0)=4, diagonals 5.
func squareInstance(t *testing.T) *instance.Instance {
	t.Helper()
	inst, err := instance.New("square",
		[]int{0, 3, 3, 0},
		[]int{0, 0, 4, 4},
		[]int{0, 0, 0, 0})
	require.NoError(t, err)
	return inst
}

func randomInstance(t *testing.T, n int, rng *rand.Rand) *instance.Instance {
	t.Helper()
	xs := make([]int, n)
	ys := make([]int, n)
	costs := make([]int, n)
	for i := 0; i < n; i++ {
		xs[i] = rng.Intn(101)
		ys[i] = rng.Intn(101)
	}
	inst, err := instance.New("random", xs, ys, costs)
	require.NoError(t, err)
	return inst
}

func TestAddRemoveContains(t *testing.T) {
	inst := squareInstance(t)
	s := NewEmpty(inst)

	s.Add(2)
	s.Add(0)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(1))

	s.RemoveAt(0)
	assert.Equal(t, []int{0}, s.Nodes())
	assert.False(t, s.Contains(2))
}

func TestExchangeAt(t *testing.T) {
	inst := squareInstance(t)
	s := FromNodes(inst, []int{0, 2})

	s.ExchangeAt(1, 3)
	assert.Equal(t, []int{0, 3}, s.Nodes())
	assert.False(t, s.Contains(2))
	assert.True(t, s.Contains(3))
}

func TestExchangeNodes_Involutive(t *testing.T) {
	inst := squareInstance(t)
	s := FromNodes(inst, []int{0, 1, 2, 3})
	original := s.CopyNodes()

	s.ExchangeNodes(1, 3)
	assert.NotEqual(t, original, s.Nodes())
	s.ExchangeNodes(1, 3)
	assert.Equal(t, original, s.Nodes())
}

func TestExchangeEdges_Reversal(t *testing.T) {
	inst := randomInstance(t, 6, rand.New(rand.NewSource(1)))
	s := FromNodes(inst, []int{0, 1, 2, 3, 4, 5})

	s.ExchangeEdges(0, 3)
	assert.Equal(t, []int{0, 3, 2, 1, 4, 5}, s.Nodes())
}

func TestExchangeEdges_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inst := randomInstance(t, 8, rng)
	s := FromNodes(inst, []int{3, 1, 4, 0, 6, 2, 7, 5})
	original := s.CopyNodes()

	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if i == j {
				continue
			}
			s.ExchangeEdges(i, j)
			s.ExchangeEdges(i, j)
			assert.Equal(t, original, s.Nodes(), "edges (%d,%d)", i, j)
		}
	}
}

func TestExchangeEdges_SeamPair(t *testing.T) {
	inst := randomInstance(t, 6, rand.New(rand.NewSource(2)))
	s := FromNodes(inst, []int{0, 1, 2, 3, 4, 5})

	// Canonicalized to (0, 5): reverses nodes[1..5].
	s.ExchangeEdges(5, 0)
	assert.Equal(t, []int{0, 5, 4, 3, 2, 1}, s.Nodes())
}

func TestEvaluate_Square(t *testing.T) {
	inst := squareInstance(t)

	s := FromNodes(inst, []int{0, 2})
	assert.Equal(t, 10, s.Evaluate())

	s = FromNodes(inst, []int{0, 1})
	assert.Equal(t, 6, s.Evaluate())

	s = FromNodes(inst, []int{0, 1, 2, 3})
	assert.Equal(t, 14, s.Evaluate())
}

func TestEvaluate_SingleNodeCycle(t *testing.T) {
	inst, err := instance.New("two", []int{0, 9}, []int{0, 0}, []int{7, 3})
	require.NoError(t, err)

	s := FromNodes(inst, []int{0})
	assert.Equal(t, 7, s.Evaluate())

	s = FromNodes(inst, []int{1})
	assert.Equal(t, 3, s.Evaluate())
}

func TestIndexHelpers(t *testing.T) {
	inst := squareInstance(t)
	s := FromNodes(inst, []int{2, 0, 3})

	assert.Equal(t, 0, s.NextIndex(2))
	assert.Equal(t, 2, s.PrevIndex(0))
	assert.Equal(t, 1, s.FindIndex(0))
	assert.Equal(t, -1, s.FindIndex(1))
	assert.True(t, s.AreConsecutive(0, 2))
	assert.True(t, s.AreConsecutive(0, 1))
}

func TestCloneAndCopyFrom(t *testing.T) {
	inst := squareInstance(t)
	s := FromNodes(inst, []int{0, 2})

	c := s.Clone()
	c.ExchangeAt(0, 1)
	assert.Equal(t, []int{0, 2}, s.Nodes())
	assert.Equal(t, []int{1, 2}, c.Nodes())

	s.CopyFrom(c)
	assert.Equal(t, []int{1, 2}, s.Nodes())
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(0))
}

func TestValidate(t *testing.T) {
	inst := squareInstance(t)
	s := FromNodes(inst, []int{0, 2})

	require.NoError(t, s.Validate(2))
	require.Error(t, s.Validate(3))
}
