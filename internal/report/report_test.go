package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"selcycle/internal/experiment"
	"selcycle/internal/instance"
	"selcycle/internal/solution"
)

func testResult(t *testing.T) *experiment.Result {
	t.Helper()
	inst, err := instance.New("TSPT",
		[]int{0, 3, 3, 0},
		[]int{0, 0, 4, 4},
		[]int{1, 2, 3, 4})
	require.NoError(t, err)

	best := solution.FromNodes(inst, []int{0, 1})
	return &experiment.Result{
		RunID:          "11111111-2222-3333-4444-555555555555",
		Algorithm:      "greedy_cycle",
		Instance:       "TSPT",
		Evaluations:    []int{9, 12, 10},
		Times:          []time.Duration{time.Millisecond, 2 * time.Millisecond, time.Millisecond},
		Best:           best,
		BestEvaluation: 9,
		Summary: experiment.Summary{
			Best:    9,
			Worst:   12,
			Average: 10.33,
			MinTime: time.Millisecond,
			AvgTime: time.Millisecond,
			MaxTime: 2 * time.Millisecond,
		},
		PathLength: 6,
		NodeCosts:  3,
	}
}

func TestTextGenerator(t *testing.T) {
	data, err := NewTextGenerator().Generate(testResult(t))
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Best cost: 9\n")
	assert.Contains(t, out, "Worst cost: 12\n")
	assert.Contains(t, out, "Average cost: 10.33\n")
	assert.Contains(t, out, " - Path length: 6\n")
	assert.Contains(t, out, " - Node costs: 3\n")
	assert.Contains(t, out, "Best solution: 0 1\n")
	assert.Contains(t, out, "Total cost: 9\n")
}

func TestSolutionLine(t *testing.T) {
	line := SolutionLine(testResult(t))
	assert.Equal(t, "0 1 9\n", string(line))
}

func TestCSVGenerator(t *testing.T) {
	data, err := NewCSVGenerator().Generate(testResult(t))
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "repetition,evaluation,time_ms")
	assert.Contains(t, out, "0,9,")
	assert.Contains(t, out, "best,9")
	assert.Contains(t, out, "worst,12")
}

func TestExcelGenerator(t *testing.T) {
	data, err := NewExcelGenerator().Generate(testResult(t))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Runs")
	assert.Contains(t, sheets, "Best Cycle")

	v, err := f.GetCellValue("Runs", "B2")
	require.NoError(t, err)
	assert.Equal(t, "9", v)
}

func TestPDFGenerator(t *testing.T) {
	data, err := NewPDFGenerator().Generate(testResult(t))
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestForFormat_Unknown(t *testing.T) {
	_, err := ForFormat("docx")
	require.Error(t, err)
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res := testResult(t)

	require.NoError(t, WriteAll(res, dir, []string{"text", "csv"}))

	txt, err := os.ReadFile(filepath.Join(dir, "TSPT_greedy_cycle.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(txt), "Best cost: 9")

	_, err = os.Stat(filepath.Join(dir, "TSPT_greedy_cycle.csv"))
	require.NoError(t, err)
}
