// Package report genera los archivos de exportación del reporte de KPIs (CSV, XLSX y PDF).
package report

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/analytics"
)

// Textos fijos del documento exportado.
const (
	titleExport   = "KPI Reports Export"
	titleSummary  = "KPI Summary"
	titleTrends   = "Monthly Trends"
	labelRange    = "Date Range"
	labelGenAt    = "Generated At"
	labelNotAvail = "N/A"
)

var summaryHeader = []string{"KPI", "Current Value", "Growth (%)", "Status"}

// formatValue conteos sin decimales, montos con dos.
func formatValue(k analytics.KPIKey, v decimal.Decimal) string {
	switch k {
	case analytics.KPIOrders, analytics.KPICustomers:
		return v.StringFixed(0)
	}
	return v.StringFixed(2)
}

func formatGrowth(g *decimal.Decimal) string {
	if g == nil {
		return labelNotAvail
	}
	return g.StringFixed(1)
}

func statusLabel(s analytics.GrowthStatus) string {
	switch s {
	case analytics.GrowthPositive:
		return "Positive"
	case analytics.GrowthNegative:
		return "Negative"
	}
	return "Not computed"
}

// trendHeader primera fila de la tabla de tendencias.
func trendHeader(keys []analytics.KPIKey) []string {
	h := make([]string, 0, len(keys)+1)
	h = append(h, "Month")
	for _, k := range keys {
		h = append(h, k.Label())
	}
	return h
}

func trendLabel(m analytics.MonthlyTrend) string {
	return m.Label + " " + m.Key[:4]
}
