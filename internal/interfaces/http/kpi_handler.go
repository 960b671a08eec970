package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/dto"
)

// KPIHandler reporte de KPIs y su exportación.
type KPIHandler struct {
	uc *appanalytics.KPIUseCase
}

// NewKPIHandler construye el handler.
func NewKPIHandler(uc *appanalytics.KPIUseCase) *KPIHandler {
	return &KPIHandler{uc: uc}
}

// Get godoc
// @Summary      Reporte de KPIs
// @Tags         kpi
// @Security     Bearer
// @Produce      json
// @Param        range       query  string  false  "today, 7d, 30d, 90d, 1y, all"  default(30d)
// @Param        start_date  query  string  false  "YYYY-MM-DD (prioridad sobre range)"
// @Param        end_date    query  string  false  "YYYY-MM-DD, inclusive"
// @Param        kpis        query  string  false  "KPIs de la tabla de tendencias (revenue,orders,customers,aov,profit,clv)"
// @Success      200  {object}  dto.KPIReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/kpi [get]
func (h *KPIHandler) Get(c *fiber.Ctx) error {
	var req dto.KPIReportRequest
	if err := parseQuery(c, &req, nil); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetReport(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte de KPIs
// @Description  Descarga kpi-report-<range>-<YYYY-MM-DD>.<format>.
// @Tags         kpi
// @Security     Bearer
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        range       query  string  false  "today, 7d, 30d, 90d, 1y, all"  default(30d)
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        kpis        query  string  false  "KPIs de la tabla de tendencias"
// @Param        format      query  string  false  "csv, xlsx o pdf"  default(csv)
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/kpi/export [get]
func (h *KPIHandler) Export(c *fiber.Ctx) error {
	var req dto.KPIReportRequest
	if err := parseQuery(c, &req, nil); err != nil {
		return writeError(c, err)
	}
	file, err := h.uc.Export(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Content)
}
