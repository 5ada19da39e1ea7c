// internal/report/excel.go
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"selcycle/internal/experiment"
)

// ExcelGenerator генератор Excel отчётов
type ExcelGenerator struct{}

// NewExcelGenerator создаёт новый генератор
func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{}
}

// Format возвращает формат генератора
func (g *ExcelGenerator) Format() string { return "xlsx" }

// Extension возвращает расширение файла
func (g *ExcelGenerator) Extension() string { return "xlsx" }

// cellAddr возвращает адрес ячейки вида A1
func cellAddr(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// Generate генерирует Excel отчёт
func (g *ExcelGenerator) Generate(res *experiment.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	g.writeSummarySheet(f, res)
	g.writeRunsSheet(f, res)
	g.writeCycleSheet(f, res)

	// Удаляем дефолтный лист
	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (g *ExcelGenerator) writeSummarySheet(f *excelize.File, res *experiment.Result) {
	sheetName := "Summary"
	f.NewSheet(sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	row := 1

	f.SetCellValue(sheetName, cellAddr("A", row), "Selective Cycle Experiment Report")
	f.MergeCell(sheetName, cellAddr("A", row), cellAddr("D", row))
	row += 2

	f.SetCellValue(sheetName, cellAddr("A", row), "Experiment")
	f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("B", row), headerStyle)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Run ID")
	f.SetCellValue(sheetName, cellAddr("B", row), res.RunID)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Instance")
	f.SetCellValue(sheetName, cellAddr("B", row), res.Instance)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Algorithm")
	f.SetCellValue(sheetName, cellAddr("B", row), res.Algorithm)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Repetitions")
	f.SetCellValue(sheetName, cellAddr("B", row), len(res.Evaluations))
	row += 2

	f.SetCellValue(sheetName, cellAddr("A", row), "Results")
	f.SetCellStyle(sheetName, cellAddr("A", row), cellAddr("B", row), headerStyle)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Best cost")
	f.SetCellValue(sheetName, cellAddr("B", row), res.Summary.Best)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Worst cost")
	f.SetCellValue(sheetName, cellAddr("B", row), res.Summary.Worst)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Average cost")
	f.SetCellValue(sheetName, cellAddr("B", row), res.Summary.Average)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Path length")
	f.SetCellValue(sheetName, cellAddr("B", row), res.PathLength)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Node costs")
	f.SetCellValue(sheetName, cellAddr("B", row), res.NodeCosts)
	row++

	f.SetCellValue(sheetName, cellAddr("A", row), "Average time (ms)")
	f.SetCellValue(sheetName, cellAddr("B", row), float64(res.Summary.AvgTime.Microseconds())/1000.0)
}

func (g *ExcelGenerator) writeRunsSheet(f *excelize.File, res *experiment.Result) {
	sheetName := "Runs"
	f.NewSheet(sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	f.SetCellValue(sheetName, "A1", "Repetition")
	f.SetCellValue(sheetName, "B1", "Evaluation")
	f.SetCellValue(sheetName, "C1", "Time (ms)")
	f.SetCellStyle(sheetName, "A1", "C1", headerStyle)

	for i, eval := range res.Evaluations {
		row := i + 2
		f.SetCellValue(sheetName, cellAddr("A", row), i)
		f.SetCellValue(sheetName, cellAddr("B", row), eval)
		f.SetCellValue(sheetName, cellAddr("C", row), float64(res.Times[i].Microseconds())/1000.0)
	}
}

func (g *ExcelGenerator) writeCycleSheet(f *excelize.File, res *experiment.Result) {
	sheetName := "Best Cycle"
	f.NewSheet(sheetName)

	f.SetCellValue(sheetName, "A1", "Position")
	f.SetCellValue(sheetName, "B1", "Node")
	for i, node := range res.Best.Nodes() {
		row := i + 2
		f.SetCellValue(sheetName, cellAddr("A", row), i)
		f.SetCellValue(sheetName, cellAddr("B", row), node)
	}
}
