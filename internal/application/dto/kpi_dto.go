package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPIReportRequest parámetros de GET /api/kpi y /api/kpi/export.
// StartDate/EndDate (YYYY-MM-DD) tienen prioridad sobre Range.
type KPIReportRequest struct {
	Range     string `query:"range" validate:"omitempty,oneof=today 7d 30d 90d 1y all custom"`
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	KPIs      string `query:"kpis"`
	Format    string `query:"format" validate:"omitempty,oneof=csv xlsx pdf"`
}

// PeriodDTO rango de fechas resuelto.
type PeriodDTO struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// KPIMetricDTO un KPI con su crecimiento. Growth es null mientras no se calcule.
type KPIMetricDTO struct {
	Key    string           `json:"key"`
	Label  string           `json:"label"`
	Value  decimal.Decimal  `json:"value"`
	Growth *decimal.Decimal `json:"growth"`
	Status string           `json:"status"`
}

// MonthlyTrendDTO un mes de la serie de tendencias.
type MonthlyTrendDTO struct {
	Month         string          `json:"month"` // "2026-01"
	Label         string          `json:"label"` // "Jan"
	Revenue       decimal.Decimal `json:"revenue"`
	Orders        int             `json:"orders"`
	Customers     int             `json:"customers"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	Profit        decimal.Decimal `json:"profit"`
	LifetimeValue decimal.Decimal `json:"customer_lifetime_value"`
}

// KPIReportResponse respuesta de GET /api/kpi.
type KPIReportResponse struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Period      PeriodDTO         `json:"period"`
	KPIs        []KPIMetricDTO    `json:"kpis"`
	Trends      []MonthlyTrendDTO `json:"trends"`
	TrendKPIs   []string          `json:"trend_kpis"`
}

// ExportFile archivo generado por la exportación de KPIs.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
