// internal/report/pdf.go
package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"selcycle/internal/experiment"
)

// PDFGenerator генератор PDF отчётов
type PDFGenerator struct{}

// NewPDFGenerator создаёт новый генератор
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{}
}

// Format возвращает формат генератора
func (g *PDFGenerator) Format() string { return "pdf" }

// Extension возвращает расширение файла
func (g *PDFGenerator) Extension() string { return "pdf" }

// Стили
var (
	headerBgColor  = &props.Color{Red: 44, Green: 62, Blue: 80}    // #2c3e50
	primaryColor   = &props.Color{Red: 52, Green: 152, Blue: 219}  // #3498db
	darkGrayColor  = &props.Color{Red: 127, Green: 140, Blue: 141} // #7f8c8d

	titleStyle = props.Text{
		Size:  20,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: headerBgColor,
	}

	h2Style = props.Text{
		Size:  14,
		Style: fontstyle.Bold,
		Color: headerBgColor,
		Top:   5,
	}

	normalStyle = props.Text{
		Size: 10,
	}

	metricValueStyle = props.Text{
		Size:  18,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: primaryColor,
	}

	metricLabelStyle = props.Text{
		Size:  9,
		Align: align.Center,
		Color: darkGrayColor,
	}

	tableHeaderTextStyle = props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Center,
	}

	tableCellTextStyle = props.Text{
		Size:  9,
		Align: align.Center,
	}
)

// maxRunRows ограничивает таблицу запусков одной страницей
const maxRunRows = 40

// Generate генерирует PDF отчёт
func (g *PDFGenerator) Generate(res *experiment.Result) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	g.addHeader(m, res)
	g.addMetrics(m, res)
	g.addRunsTable(m, res)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func (g *PDFGenerator) addHeader(m core.Maroto, res *experiment.Result) {
	m.AddRow(12, text.NewCol(12, "Selective Cycle Experiment Report", titleStyle))
	m.AddRow(6, text.NewCol(12,
		fmt.Sprintf("Instance: %s    Algorithm: %s    Run: %s", res.Instance, res.Algorithm, res.RunID),
		props.Text{Size: 9, Align: align.Center, Color: darkGrayColor}))
	m.AddRow(4, line.NewCol(12))
}

func (g *PDFGenerator) addMetrics(m core.Maroto, res *experiment.Result) {
	m.AddRow(10, text.NewCol(12, "Results", h2Style))

	m.AddRow(16,
		g.metricCard("Best cost", fmt.Sprintf("%d", res.Summary.Best)),
		g.metricCard("Worst cost", fmt.Sprintf("%d", res.Summary.Worst)),
		g.metricCard("Average cost", fmt.Sprintf("%.2f", res.Summary.Average)),
		g.metricCard("Avg time (ms)", fmt.Sprintf("%.1f", float64(res.Summary.AvgTime.Microseconds())/1000.0)),
	)

	m.AddRow(8, text.NewCol(12,
		fmt.Sprintf("Best solution breakdown: path length %d, node costs %d", res.PathLength, res.NodeCosts),
		normalStyle))
}

func (g *PDFGenerator) metricCard(label, value string) core.Col {
	return col.New(3).Add(
		text.New(value, metricValueStyle),
		text.New(label, props.Text{
			Size:  metricLabelStyle.Size,
			Align: metricLabelStyle.Align,
			Color: metricLabelStyle.Color,
			Top:   10,
		}),
	)
}

func (g *PDFGenerator) addRunsTable(m core.Maroto, res *experiment.Result) {
	m.AddRow(10, text.NewCol(12, "Runs", h2Style))

	m.AddRow(7,
		text.NewCol(4, "Repetition", tableHeaderTextStyle),
		text.NewCol(4, "Evaluation", tableHeaderTextStyle),
		text.NewCol(4, "Time (ms)", tableHeaderTextStyle),
	)

	limit := len(res.Evaluations)
	if limit > maxRunRows {
		limit = maxRunRows
	}
	for i := 0; i < limit; i++ {
		m.AddRow(5,
			text.NewCol(4, fmt.Sprintf("%d", i), tableCellTextStyle),
			text.NewCol(4, fmt.Sprintf("%d", res.Evaluations[i]), tableCellTextStyle),
			text.NewCol(4, fmt.Sprintf("%.3f", float64(res.Times[i].Microseconds())/1000.0), tableCellTextStyle),
		)
	}
	if len(res.Evaluations) > maxRunRows {
		m.AddRow(5, text.NewCol(12,
			fmt.Sprintf("... and %d more runs", len(res.Evaluations)-maxRunRows),
			props.Text{Size: 8, Align: align.Center, Color: darkGrayColor}))
	}
}
