package report

// Layout de la página A4:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: título + período │ generado el       │
//	│  ───────────────────────────────────────────  │
//	│  RESUMEN: KPI | Valor | Crecimiento | Estado  │
//	│  ───────────────────────────────────────────  │
//	│  TENDENCIAS: Mes | KPIs seleccionados...      │
//	└──────────────────────────────────────────────┘

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Backoffice-api/internal/domain/analytics"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// gridCols ancho total de la grilla de maroto.
const gridCols = 12

// PDFRenderer reporte de KPIs en PDF (Maroto v2).
type PDFRenderer struct{}

// NewPDFRenderer construye el renderer PDF.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (PDFRenderer) Format() string      { return "pdf" }
func (PDFRenderer) ContentType() string { return "application/pdf" }

func (PDFRenderer) Render(r analytics.KPIReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titleExport, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow(titleSummary))
	m.AddRows(tableRow(summaryHeader, true))
	for _, k := range r.Metrics {
		m.AddRows(tableRow([]string{k.Label, formatValue(k.Key, k.Value), formatGrowth(k.Growth), statusLabel(k.Status)}, false))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow(titleTrends))
	m.AddRows(tableRow(trendHeader(r.TrendKPIs), true))
	for _, t := range r.Trends {
		cells := []string{trendLabel(t)}
		for _, k := range r.TrendKPIs {
			cells = append(cells, formatValue(k, t.Value(k)))
		}
		m.AddRows(tableRow(cells, false))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título y período (izq), fecha de generación (der).
func headerRow(r analytics.KPIReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(titleExport, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(labelRange+": "+r.Period.Label, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(labelGenAt, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(r.GeneratedAt.UTC().Format(time.RFC3339), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(
		col.New(gridCols).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
		})),
	)
}

// tableRow reparte las celdas en la grilla: la primera columna toma el sobrante.
func tableRow(cells []string, header bool) core.Row {
	n := len(cells)
	if n == 0 {
		return row.New(6)
	}
	width := gridCols / n
	if width < 1 {
		width = 1
	}
	first := gridCols - width*(n-1)
	if first < 1 {
		first = 1
	}

	style := props.Text{Size: 8, Top: 1, Left: 1, Right: 1}
	if header {
		style.Style = fontstyle.Bold
		style.Color = colorPrimary
	}
	cols := make([]core.Col, 0, n)
	for i, c := range cells {
		size := width
		s := style
		if i == 0 {
			size = first
			s.Align = align.Left
		} else {
			s.Align = align.Right
		}
		cols = append(cols, col.New(size).Add(text.New(c, s)))
	}
	return row.New(6).Add(cols...)
}
