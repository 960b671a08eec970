package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Backoffice-api/internal/application/analytics"
)

// AlertsHandler expone el centro de alertas.
type AlertsHandler struct {
	uc *appanalytics.AlertsUseCase
}

// NewAlertsHandler construye el handler.
func NewAlertsHandler(uc *appanalytics.AlertsUseCase) *AlertsHandler {
	return &AlertsHandler{uc: uc}
}

// Get godoc
// @Summary      Alertas operativas
// @Description  Stock bajo, sobrestock, órdenes demoradas, picos de demanda y devoluciones atascadas.
// @Description  Si una colección del backend falla se trata como vacía y se informa en "sources".
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetAlerts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
