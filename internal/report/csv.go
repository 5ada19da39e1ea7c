// internal/report/csv.go
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"selcycle/internal/experiment"
)

// CSVGenerator генератор CSV отчётов
type CSVGenerator struct{}

// NewCSVGenerator создаёт новый генератор
func NewCSVGenerator() *CSVGenerator {
	return &CSVGenerator{}
}

// Format возвращает формат генератора
func (g *CSVGenerator) Format() string { return "csv" }

// Extension возвращает расширение файла
func (g *CSVGenerator) Extension() string { return "csv" }

// csvWriter обёртка для отслеживания ошибок
type csvWriter struct {
	w   *csv.Writer
	err error
}

func (cw *csvWriter) Write(record []string) {
	if cw.err != nil {
		return
	}
	cw.err = cw.w.Write(record)
}

func (cw *csvWriter) Flush() {
	if cw.err != nil {
		return
	}
	cw.w.Flush()
	cw.err = cw.w.Error()
}

func (cw *csvWriter) Error() error {
	return cw.err
}

// Generate генерирует CSV отчёт: по строке на запуск плюс сводка
func (g *CSVGenerator) Generate(res *experiment.Result) ([]byte, error) {
	var buf bytes.Buffer
	cw := &csvWriter{w: csv.NewWriter(&buf)}

	cw.Write([]string{"run_id", res.RunID})
	cw.Write([]string{"instance", res.Instance})
	cw.Write([]string{"algorithm", res.Algorithm})
	cw.Write([]string{})

	cw.Write([]string{"repetition", "evaluation", "time_ms"})
	for i, eval := range res.Evaluations {
		cw.Write([]string{
			strconv.Itoa(i),
			strconv.Itoa(eval),
			fmt.Sprintf("%.3f", float64(res.Times[i].Microseconds())/1000.0),
		})
	}
	cw.Write([]string{})

	cw.Write([]string{"best", strconv.Itoa(res.Summary.Best)})
	cw.Write([]string{"worst", strconv.Itoa(res.Summary.Worst)})
	cw.Write([]string{"average", fmt.Sprintf("%.2f", res.Summary.Average)})

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv write error: %w", err)
	}

	return buf.Bytes(), nil
}
