package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// TrendMonths cantidad de meses calendario en la serie de tendencia.
const TrendMonths = 12

var (
	// profitMargin margen supuesto sobre ingresos; no es un valor medido.
	profitMargin = decimal.RequireFromString("0.30")
	// clvMultiplier multiplicador fijo para estimar el valor de vida del cliente.
	clvMultiplier = decimal.RequireFromString("2.5")
)

// KPIKey identificador estable de un KPI.
type KPIKey string

const (
	KPIRevenue       KPIKey = "revenue"
	KPIOrders        KPIKey = "orders"
	KPICustomers     KPIKey = "customers"
	KPIAvgOrderValue KPIKey = "aov"
	KPIProfit        KPIKey = "profit"
	KPICLV           KPIKey = "clv"
)

// AllKPIKeys orden de presentación de los KPIs.
var AllKPIKeys = []KPIKey{KPIRevenue, KPIOrders, KPICustomers, KPIAvgOrderValue, KPIProfit, KPICLV}

// DefaultTrendKPIs KPIs incluidos en la tabla de tendencias si el usuario no elige.
var DefaultTrendKPIs = []KPIKey{KPIRevenue, KPIOrders, KPICustomers}

var kpiLabels = map[KPIKey]string{
	KPIRevenue:       "Total Revenue",
	KPIOrders:        "Total Orders",
	KPICustomers:     "Total Customers",
	KPIAvgOrderValue: "Avg Order Value",
	KPIProfit:        "Total Profit",
	KPICLV:           "Customer Lifetime Value",
}

// Label etiqueta legible del KPI (la misma que se exporta).
func (k KPIKey) Label() string {
	if l, ok := kpiLabels[k]; ok {
		return l
	}
	return string(k)
}

// ParseKPIKeys interpreta una lista separada por comas ("revenue,orders").
// Vacío devuelve DefaultTrendKPIs.
func ParseKPIKeys(raw string) ([]KPIKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return append([]KPIKey(nil), DefaultTrendKPIs...), nil
	}
	seen := make(map[KPIKey]bool)
	var keys []KPIKey
	for _, part := range strings.Split(raw, ",") {
		k := KPIKey(strings.ToLower(strings.TrimSpace(part)))
		if k == "" || seen[k] {
			continue
		}
		if _, ok := kpiLabels[k]; !ok {
			return nil, fmt.Errorf("%w: KPI desconocido %q", domain.ErrInvalidInput, k)
		}
		seen[k] = true
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return append([]KPIKey(nil), DefaultTrendKPIs...), nil
	}
	return keys, nil
}

// GrowthStatus estado de la comparación contra el período anterior.
type GrowthStatus string

const (
	GrowthNotComputed GrowthStatus = "not_computed"
	GrowthPositive    GrowthStatus = "positive"
	GrowthNegative    GrowthStatus = "negative"
)

// KPISnapshot métricas de negocio sobre un conjunto de órdenes.
type KPISnapshot struct {
	TotalRevenue   decimal.Decimal
	TotalOrders    int
	TotalCustomers int
	AvgOrderValue  decimal.Decimal
	TotalProfit    decimal.Decimal
	CLV            decimal.Decimal
}

// KPIMetric un KPI listo para mostrar o exportar.
// Growth es nil mientras no exista consulta del período anterior.
type KPIMetric struct {
	Key    KPIKey
	Label  string
	Value  decimal.Decimal
	Growth *decimal.Decimal
	Status GrowthStatus
}

// Value devuelve el valor del KPI indicado.
func (s KPISnapshot) Value(k KPIKey) decimal.Decimal {
	switch k {
	case KPIRevenue:
		return s.TotalRevenue
	case KPIOrders:
		return decimal.NewFromInt(int64(s.TotalOrders))
	case KPICustomers:
		return decimal.NewFromInt(int64(s.TotalCustomers))
	case KPIAvgOrderValue:
		return s.AvgOrderValue
	case KPIProfit:
		return s.TotalProfit
	case KPICLV:
		return s.CLV
	}
	return decimal.Zero
}

// Metrics proyecta el snapshot a la lista de KPIs en orden de presentación.
// El crecimiento contra el período anterior no se calcula: queda explícitamente en GrowthNotComputed.
func (s KPISnapshot) Metrics() []KPIMetric {
	out := make([]KPIMetric, 0, len(AllKPIKeys))
	for _, k := range AllKPIKeys {
		out = append(out, KPIMetric{
			Key:    k,
			Label:  k.Label(),
			Value:  s.Value(k),
			Status: GrowthNotComputed,
		})
	}
	return out
}

// ComputeKPIs reduce las órdenes (ya filtradas por período) a los KPIs del reporte.
func ComputeKPIs(orders []entity.Order) KPISnapshot {
	revenue := decimal.Zero
	customers := make(map[string]struct{})
	for _, o := range orders {
		revenue = revenue.Add(o.TotalAmount)
		if o.CustomerID != "" {
			customers[o.CustomerID] = struct{}{}
		}
	}
	return newSnapshot(revenue, len(orders), len(customers))
}

func newSnapshot(revenue decimal.Decimal, orders, customers int) KPISnapshot {
	aov := decimal.Zero
	if orders > 0 {
		aov = revenue.Div(decimal.NewFromInt(int64(orders))).Round(2)
	}
	return KPISnapshot{
		TotalRevenue:   revenue.Round(2),
		TotalOrders:    orders,
		TotalCustomers: customers,
		AvgOrderValue:  aov,
		TotalProfit:    revenue.Mul(profitMargin).Round(2),
		CLV:            aov.Mul(clvMultiplier).Round(2),
	}
}

// FilterOrdersByPeriod devuelve las órdenes cuya fecha cae en el período.
func FilterOrdersByPeriod(orders []entity.Order, p Period) []entity.Order {
	out := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if p.Contains(o.OrderDate) {
			out = append(out, o)
		}
	}
	return out
}

// MonthlyTrend acumulado de un mes calendario.
type MonthlyTrend struct {
	Key      string // "2026-01"
	Label    string // "Jan"
	Year     int
	Month    time.Month
	Snapshot KPISnapshot
}

// Value valor del KPI en el mes.
func (m MonthlyTrend) Value(k KPIKey) decimal.Decimal { return m.Snapshot.Value(k) }

// MonthlyTrends agrupa las órdenes en los 12 meses calendario que terminan en el mes de now
// (el más antiguo primero). Siempre devuelve exactamente TrendMonths entradas.
func MonthlyTrends(orders []entity.Order, now time.Time) []MonthlyTrend {
	loc := now.Location()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	type bucket struct {
		revenue   decimal.Decimal
		orders    int
		customers map[string]struct{}
	}
	buckets := make([]bucket, TrendMonths)
	starts := make([]time.Time, TrendMonths)
	index := make(map[string]int, TrendMonths)
	for i := 0; i < TrendMonths; i++ {
		start := current.AddDate(0, i-(TrendMonths-1), 0)
		starts[i] = start
		buckets[i] = bucket{revenue: decimal.Zero, customers: make(map[string]struct{})}
		index[start.Format("2006-01")] = i
	}

	for _, o := range orders {
		i, ok := index[o.OrderDate.In(loc).Format("2006-01")]
		if !ok {
			continue
		}
		b := &buckets[i]
		b.revenue = b.revenue.Add(o.TotalAmount)
		b.orders++
		if o.CustomerID != "" {
			b.customers[o.CustomerID] = struct{}{}
		}
	}

	trends := make([]MonthlyTrend, TrendMonths)
	for i, b := range buckets {
		start := starts[i]
		trends[i] = MonthlyTrend{
			Key:      start.Format("2006-01"),
			Label:    start.Format("Jan"),
			Year:     start.Year(),
			Month:    start.Month(),
			Snapshot: newSnapshot(b.revenue, b.orders, len(b.customers)),
		}
	}
	return trends
}

// KPIReport reporte completo de KPIs: métricas del período y tendencias mensuales.
type KPIReport struct {
	GeneratedAt time.Time
	Period      Period
	Metrics     []KPIMetric
	Trends      []MonthlyTrend
	TrendKPIs   []KPIKey
}

// BuildKPIReport calcula las métricas sobre las órdenes del período y las tendencias
// sobre todas las órdenes recibidas.
func BuildKPIReport(orders []entity.Order, p Period, trendKPIs []KPIKey, now time.Time) KPIReport {
	if len(trendKPIs) == 0 {
		trendKPIs = DefaultTrendKPIs
	}
	return KPIReport{
		GeneratedAt: now,
		Period:      p,
		Metrics:     ComputeKPIs(FilterOrdersByPeriod(orders, p)).Metrics(),
		Trends:      MonthlyTrends(orders, now),
		TrendKPIs:   trendKPIs,
	}
}
