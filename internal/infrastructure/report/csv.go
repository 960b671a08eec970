package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/analytics"
)

// CSVRenderer documento CSV por secciones: encabezado, resumen de KPIs y tendencias mensuales.
type CSVRenderer struct{}

// NewCSVRenderer construye el renderer CSV.
func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

func (CSVRenderer) Format() string      { return "csv" }
func (CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }

// Render serializa el reporte. Las filas tienen distinta cantidad de columnas.
func (CSVRenderer) Render(r analytics.KPIReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{titleExport},
		{labelRange, r.Period.Label},
		{labelGenAt, r.GeneratedAt.UTC().Format(time.RFC3339)},
		{},
		{titleSummary},
		summaryHeader,
	}
	for _, m := range r.Metrics {
		rows = append(rows, []string{m.Label, formatValue(m.Key, m.Value), formatGrowth(m.Growth), statusLabel(m.Status)})
	}
	rows = append(rows, []string{}, []string{titleTrends}, trendHeader(r.TrendKPIs))
	for _, t := range r.Trends {
		row := []string{trendLabel(t)}
		for _, k := range r.TrendKPIs {
			row = append(row, formatValue(k, t.Value(k)))
		}
		rows = append(rows, row)
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("csv: escribir reporte: %w", err)
	}
	return buf.Bytes(), nil
}

// SummaryRow fila de la sección "KPI Summary".
type SummaryRow struct {
	Label  string
	Value  decimal.Decimal
	Growth *decimal.Decimal
	Status string
}

// ParseKPISummary lee un documento generado por CSVRenderer y devuelve la sección de resumen.
func ParseKPISummary(doc io.Reader) ([]SummaryRow, error) {
	rd := csv.NewReader(doc)
	rd.FieldsPerRecord = -1
	records, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: leer documento: %w", err)
	}

	start := -1
	for i, rec := range records {
		if len(rec) == 1 && rec[0] == titleSummary {
			start = i + 1
			break
		}
	}
	if start < 0 || start >= len(records) || strings.Join(records[start], ",") != strings.Join(summaryHeader, ",") {
		return nil, fmt.Errorf("csv: sección %q no encontrada", titleSummary)
	}

	var out []SummaryRow
	for _, rec := range records[start+1:] {
		// csv.Reader omite las líneas vacías: la sección termina en el siguiente título
		if len(rec) <= 1 {
			break
		}
		if len(rec) != len(summaryHeader) {
			return nil, fmt.Errorf("csv: fila de resumen inválida %q", rec)
		}
		v, err := decimal.NewFromString(rec[1])
		if err != nil {
			return nil, fmt.Errorf("csv: valor de %s: %w", rec[0], err)
		}
		row := SummaryRow{Label: rec[0], Value: v, Status: rec[3]}
		if rec[2] != labelNotAvail {
			g, err := decimal.NewFromString(rec[2])
			if err != nil {
				return nil, fmt.Errorf("csv: crecimiento de %s: %w", rec[0], err)
			}
			row.Growth = &g
		}
		out = append(out, row)
	}
	return out, nil
}
