// internal/report/text.go
package report

import (
	"bytes"
	"fmt"

	"selcycle/internal/experiment"
)

// TextGenerator генератор текстовых отчётов
type TextGenerator struct{}

// NewTextGenerator создаёт новый генератор
func NewTextGenerator() *TextGenerator {
	return &TextGenerator{}
}

// Format возвращает формат генератора
func (g *TextGenerator) Format() string { return "text" }

// Extension возвращает расширение файла
func (g *TextGenerator) Extension() string { return "txt" }

// Generate генерирует текстовый отчёт
func (g *TextGenerator) Generate(res *experiment.Result) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Best cost: %d\n", res.Summary.Best)
	fmt.Fprintf(&buf, "Worst cost: %d\n", res.Summary.Worst)
	fmt.Fprintf(&buf, "Average cost: %.2f\n", res.Summary.Average)
	buf.WriteString("\n")
	buf.WriteString("Best solution total cost breakdown:\n")
	fmt.Fprintf(&buf, " - Path length: %d\n", res.PathLength)
	fmt.Fprintf(&buf, " - Node costs: %d\n", res.NodeCosts)
	buf.WriteString("\n")
	buf.WriteString("Best solution:")
	for _, node := range res.Best.Nodes() {
		fmt.Fprintf(&buf, " %d", node)
	}
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "Total cost: %d\n", res.BestEvaluation)

	return buf.Bytes(), nil
}

// SolutionLine возвращает цикл как одну строку индексов с итоговой
// стоимостью в конце
func SolutionLine(res *experiment.Result) []byte {
	var buf bytes.Buffer
	for i, node := range res.Best.Nodes() {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%d", node)
	}
	fmt.Fprintf(&buf, " %d\n", res.BestEvaluation)
	return buf.Bytes()
}
