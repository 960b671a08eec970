package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/analytics"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// defaultKPIRange período por defecto de la página de KPIs.
const defaultKPIRange = analytics.Period30d

// KPIUseCase reporte de KPIs y su exportación.
type KPIUseCase struct {
	source    repository.BackofficeSource
	renderers map[string]ReportRenderer
	log       *logger.Logger
	now       func() time.Time
}

// NewKPIUseCase construye el caso de uso con los formatos de exportación disponibles.
func NewKPIUseCase(source repository.BackofficeSource, log *logger.Logger, renderers ...ReportRenderer) *KPIUseCase {
	byFormat := make(map[string]ReportRenderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &KPIUseCase{source: source, renderers: byFormat, log: log, now: time.Now}
}

// GetReport calcula los KPIs del período pedido y las tendencias de los últimos 12 meses.
func (uc *KPIUseCase) GetReport(ctx context.Context, req dto.KPIReportRequest) (*dto.KPIReportResponse, error) {
	report, err := uc.build(ctx, req)
	if err != nil {
		return nil, err
	}
	return toKPIReportResponse(report), nil
}

// Export genera el archivo del reporte en el formato pedido (csv por defecto).
func (uc *KPIUseCase) Export(ctx context.Context, req dto.KPIReportRequest) (*dto.ExportFile, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato de exportación no soportado %q", domain.ErrInvalidInput, format)
	}

	report, err := uc.build(ctx, req)
	if err != nil {
		return nil, err
	}
	content, err := renderer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("generar exportación %s: %w", format, err)
	}
	return &dto.ExportFile{
		Filename:    ExportFilename(report, format),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}

// ExportFilename nombre del archivo exportado: kpi-report-<rango>-<YYYY-MM-DD>.<ext>.
func ExportFilename(r analytics.KPIReport, ext string) string {
	return fmt.Sprintf("kpi-report-%s-%s.%s", r.Period.Key, r.GeneratedAt.Format("2006-01-02"), ext)
}

func (uc *KPIUseCase) build(ctx context.Context, req dto.KPIReportRequest) (analytics.KPIReport, error) {
	now := uc.now()
	period, err := analytics.ResolvePeriod(req.Range, req.StartDate, req.EndDate, defaultKPIRange, now)
	if err != nil {
		return analytics.KPIReport{}, err
	}
	keys, err := analytics.ParseKPIKeys(req.KPIs)
	if err != nil {
		return analytics.KPIReport{}, err
	}

	// Las tendencias necesitan los 12 meses completos, por eso no se filtra en el backend.
	var orders []entity.Order
	f := newFanOut(ctx, uc.log)
	fetch(f, SourceOrders, &orders, func(ctx context.Context) ([]entity.Order, error) {
		return uc.source.ListOrders(ctx, repository.OrderQuery{})
	})
	f.wait()
	if err := ctx.Err(); err != nil {
		return analytics.KPIReport{}, err
	}

	return analytics.BuildKPIReport(orders, period, keys, now), nil
}

func toKPIReportResponse(r analytics.KPIReport) *dto.KPIReportResponse {
	resp := &dto.KPIReportResponse{
		GeneratedAt: r.GeneratedAt,
		Period:      toPeriodDTO(r.Period),
		KPIs:        make([]dto.KPIMetricDTO, 0, len(r.Metrics)),
		Trends:      make([]dto.MonthlyTrendDTO, 0, len(r.Trends)),
		TrendKPIs:   make([]string, 0, len(r.TrendKPIs)),
	}
	for _, m := range r.Metrics {
		resp.KPIs = append(resp.KPIs, dto.KPIMetricDTO{
			Key:    string(m.Key),
			Label:  m.Label,
			Value:  m.Value,
			Growth: m.Growth,
			Status: string(m.Status),
		})
	}
	for _, t := range r.Trends {
		resp.Trends = append(resp.Trends, dto.MonthlyTrendDTO{
			Month:         t.Key,
			Label:         t.Label,
			Revenue:       t.Snapshot.TotalRevenue,
			Orders:        t.Snapshot.TotalOrders,
			Customers:     t.Snapshot.TotalCustomers,
			AvgOrderValue: t.Snapshot.AvgOrderValue,
			Profit:        t.Snapshot.TotalProfit,
			LifetimeValue: t.Snapshot.CLV,
		})
	}
	for _, k := range r.TrendKPIs {
		resp.TrendKPIs = append(resp.TrendKPIs, string(k))
	}
	return resp
}

func toPeriodDTO(p analytics.Period) dto.PeriodDTO {
	out := dto.PeriodDTO{Key: p.Key, Label: p.Label}
	if p.All {
		return out
	}
	if !p.Start.IsZero() {
		start := p.Start
		out.Start = &start
	}
	end := p.End
	out.End = &end
	return out
}
