package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Backoffice-api/internal/domain/analytics"
)

const (
	sheetSummary = "KPI Summary"
	sheetTrends  = "Monthly Trends"
)

// XLSXRenderer libro con dos hojas: resumen de KPIs y tendencias mensuales.
type XLSXRenderer struct{}

// NewXLSXRenderer construye el renderer XLSX.
func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

func (XLSXRenderer) Format() string { return "xlsx" }
func (XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXRenderer) Render(r analytics.KPIReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(sheetTrends); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	summary := [][]any{
		{titleExport},
		{labelRange, r.Period.Label},
		{labelGenAt, r.GeneratedAt.UTC().Format(time.RFC3339)},
		{},
		{summaryHeader[0], summaryHeader[1], summaryHeader[2], summaryHeader[3]},
	}
	headerRow := len(summary)
	for _, m := range r.Metrics {
		value, _ := m.Value.Round(2).Float64()
		growth := any(labelNotAvail)
		if m.Growth != nil {
			g, _ := m.Growth.Round(1).Float64()
			growth = g
		}
		summary = append(summary, []any{m.Label, value, growth, statusLabel(m.Status)})
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(sheetSummary, "A1", "A1", bold)
	_ = f.SetCellStyle(sheetSummary, cell(1, headerRow), cell(len(summaryHeader), headerRow), bold)
	_ = f.SetColWidth(sheetSummary, "A", "A", 28)

	header := trendHeader(r.TrendKPIs)
	trends := make([][]any, 0, len(r.Trends)+1)
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	trends = append(trends, hdr)
	for _, t := range r.Trends {
		row := []any{trendLabel(t)}
		for _, k := range r.TrendKPIs {
			v, _ := t.Value(k).Round(2).Float64()
			row = append(row, v)
		}
		trends = append(trends, row)
	}
	if err := writeRows(f, sheetTrends, trends); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(sheetTrends, "A1", cell(len(header), 1), bold)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := f.SetSheetRow(sheet, cell(1, i+1), &row); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

// cell nombre de celda para columna y fila base 1.
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
