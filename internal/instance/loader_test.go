package instance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selcycle/pkg/apperror"
)

func writeInstance(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_SimpleInstance(t *testing.T) {
	path := writeInstance(t, "TSPT.csv", "0;0;0\n3;0;10\n3;4;20\n0;4;5\n")

	inst, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "TSPT", inst.Name)
	assert.Equal(t, 4, inst.NumNodes())
	assert.Equal(t, []int{0, 10, 20, 5}, inst.Costs)

	// 3-4-5 triangle distances, rounded.
	assert.Equal(t, 3, inst.Distance(0, 1))
	assert.Equal(t, 4, inst.Distance(1, 2))
	assert.Equal(t, 5, inst.Distance(0, 2))
}

func TestLoad_DistanceMatrixProperties(t *testing.T) {
	path := writeInstance(t, "props.csv", "1;1;0\n10;2;3\n4;7;1\n9;9;2\n2;8;4\n")

	inst, err := Load(path)
	require.NoError(t, err)

	n := inst.NumNodes()
	for i := 0; i < n; i++ {
		if inst.Distance(i, i) != 0 {
			t.Errorf("Distance(%d,%d) = %d, want 0", i, i, inst.Distance(i, i))
		}
		for j := 0; j < n; j++ {
			if inst.Distance(i, j) != inst.Distance(j, i) {
				t.Errorf("asymmetric distance at (%d,%d)", i, j)
			}
			if inst.Distance(i, j) < 0 {
				t.Errorf("negative distance at (%d,%d)", i, j)
			}
		}
	}
}

func TestLoad_SkipsEmptyLines(t *testing.T) {
	path := writeInstance(t, "gaps.csv", "0;0;1\n\n5;5;2\n\n")

	inst, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, inst.NumNodes())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInstanceNotFound, apperror.CodeOf(err))
}

func TestLoad_MalformedLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too few fields", "0;0;0\n1;2\n"},
		{"non-integer", "0;0;0\n1;x;2\n"},
		{"negative cost", "0;0;0\n1;2;-3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeInstance(t, "bad.csv", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Equal(t, apperror.CodeInstanceMalformed, apperror.CodeOf(err))

			var appErr *apperror.Error
			require.True(t, errors.As(err, &appErr))
			assert.Contains(t, appErr.Message, ":2:")
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeInstance(t, "empty.csv", "")
	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeEmptyInstance, apperror.CodeOf(err))
}

func TestCycleSize(t *testing.T) {
	inst := &Instance{Costs: make([]int, 5)}
	if got := inst.CycleSize(0.5); got != 3 {
		t.Errorf("CycleSize(0.5) with N=5 = %d, want 3", got)
	}

	inst = &Instance{Costs: make([]int, 200)}
	if got := inst.CycleSize(0.5); got != 100 {
		t.Errorf("CycleSize(0.5) with N=200 = %d, want 100", got)
	}
}

func TestDistance_RoundHalf(t *testing.T) {
	// Distance sqrt(2) ~ 1.414 rounds to 1; sqrt(8) ~ 2.828 rounds to 3.
	inst, err := New("round", []int{0, 1, 2}, []int{0, 1, 2}, []int{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if inst.Distance(0, 1) != 1 {
		t.Errorf("Distance(0,1) = %d, want 1", inst.Distance(0, 1))
	}
	if inst.Distance(0, 2) != 3 {
		t.Errorf("Distance(0,2) = %d, want 3", inst.Distance(0, 2))
	}
}
