package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Backoffice-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetTaskStatistics devuelve la tarjeta de progreso de tareas derivada de las órdenes.
// GET /api/dashboard/tasks
//
// Respuesta: TaskStatisticsDTO (follow_ups, in_progress, pending, tasks_done, total,
// progress_percent, completed_this_month, completed_last_month, change_percent).
// Si el backend de órdenes no responde, los conteos quedan en cero y orders_available en false.
//
// @Summary      Estadísticas de tareas del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TaskStatisticsDTO
// @Router       /api/dashboard/tasks [get]
func (h *DashboardHandler) GetTaskStatistics(c *fiber.Ctx) error {
	out, err := h.uc.GetTaskStatistics(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
