package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Backoffice-api/internal/domain/analytics"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

var reportNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func sampleReport(t *testing.T) analytics.KPIReport {
	t.Helper()
	p, err := analytics.ResolvePeriod(analytics.Period30d, "", "", analytics.Period30d, reportNow)
	require.NoError(t, err)
	orders := []entity.Order{
		{ID: "o1", TotalAmount: decimal.RequireFromString("100.10"), CustomerID: "c1", OrderDate: reportNow.AddDate(0, 0, -1)},
		{ID: "o2", TotalAmount: decimal.RequireFromString("33.33"), CustomerID: "c2", OrderDate: reportNow.AddDate(0, 0, -3)},
		{ID: "o3", TotalAmount: decimal.RequireFromString("12"), CustomerID: "c1", OrderDate: reportNow.AddDate(0, -2, 0)},
	}
	return analytics.BuildKPIReport(orders, p, nil, reportNow)
}

func TestCSVRenderer_Estructura(t *testing.T) {
	out, err := NewCSVRenderer().Render(sampleReport(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.Equal(t, "KPI Reports Export", lines[0])
	assert.Equal(t, "Date Range,Last 30 days", lines[1])
	assert.Equal(t, "Generated At,2026-03-15T12:00:00Z", lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "KPI Summary", lines[4])
	assert.Equal(t, "KPI,Current Value,Growth (%),Status", lines[5])
	assert.Equal(t, "Total Revenue,133.43,N/A,Not computed", lines[6])
	assert.Equal(t, "Total Orders,2,N/A,Not computed", lines[7])

	trendsAt := 6 + len(analytics.AllKPIKeys) + 1
	assert.Equal(t, "Monthly Trends", lines[trendsAt])
	assert.Equal(t, "Month,Total Revenue,Total Orders,Total Customers", lines[trendsAt+1])
	assert.Len(t, lines, trendsAt+2+analytics.TrendMonths)
	assert.Equal(t, "Mar 2026,133.43,2,2", lines[len(lines)-1])
}

// El resumen parseado del CSV reproduce las tarjetas de KPI que se mostraron al exportar.
func TestCSVRenderer_RoundTripResumen(t *testing.T) {
	r := sampleReport(t)
	growth := decimal.RequireFromString("12.5")
	r.Metrics[0].Growth = &growth
	r.Metrics[0].Status = analytics.GrowthPositive

	out, err := NewCSVRenderer().Render(r)
	require.NoError(t, err)

	rows, err := ParseKPISummary(bytes.NewReader(out))
	require.NoError(t, err)
	require.Len(t, rows, len(r.Metrics))
	for i, m := range r.Metrics {
		assert.Equal(t, m.Label, rows[i].Label)
		assert.True(t, m.Value.Round(2).Equal(rows[i].Value), "%s: %s vs %s", m.Label, m.Value, rows[i].Value)
		if m.Growth == nil {
			assert.Nil(t, rows[i].Growth)
		} else {
			require.NotNil(t, rows[i].Growth)
			assert.True(t, m.Growth.Equal(*rows[i].Growth))
		}
	}
	assert.Equal(t, "Positive", rows[0].Status)
}

func TestParseKPISummary_SinSeccion(t *testing.T) {
	_, err := ParseKPISummary(strings.NewReader("a,b\nc,d\n"))
	assert.Error(t, err)
}

func TestXLSXRenderer_DosHojas(t *testing.T) {
	out, err := NewXLSXRenderer().Render(sampleReport(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"KPI Summary", "Monthly Trends"}, f.GetSheetList())

	v, err := f.GetCellValue("KPI Summary", "A6")
	require.NoError(t, err)
	assert.Equal(t, "Total Revenue", v)

	rows, err := f.GetRows("Monthly Trends")
	require.NoError(t, err)
	require.Len(t, rows, analytics.TrendMonths+1)
	assert.Equal(t, []string{"Month", "Total Revenue", "Total Orders", "Total Customers"}, rows[0])
}

func TestPDFRenderer_GeneraPDF(t *testing.T) {
	r := NewPDFRenderer()
	out, err := r.Render(sampleReport(t))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "application/pdf", r.ContentType())
}
