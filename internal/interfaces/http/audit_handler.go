package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/internal/application/dto"
)

// AuditHandler bitácora de transacciones.
type AuditHandler struct {
	uc *appanalytics.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *appanalytics.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// ListTransactions godoc
// @Summary      Listar transacciones de auditoría
// @Description  Órdenes y facturas proforma normalizadas, más recientes primero. El resumen se calcula antes de paginar.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "Texto libre (id, entidad, descripción, usuario)"
// @Param        type        query  string  false  "order, invoice, payment, refund, adjustment, transfer"
// @Param        status      query  string  false  "completed, pending, cancelled, failed"
// @Param        range       query  string  false  "today, 7d, 30d, 90d, 1y, all"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AuditListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit/transactions [get]
func (h *AuditHandler) ListTransactions(c *fiber.Ctx) error {
	var q dto.AuditQuery
	if err := parseQuery(c, &q, q.PageRequest.DefaultPage); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListTransactions(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
