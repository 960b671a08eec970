package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain/analytics"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// AlertsUseCase arma el centro de alertas a partir de seis colecciones del backend.
type AlertsUseCase struct {
	source repository.BackofficeSource
	log    *logger.Logger
	now    func() time.Time
}

// NewAlertsUseCase construye el caso de uso.
func NewAlertsUseCase(source repository.BackofficeSource, log *logger.Logger) *AlertsUseCase {
	return &AlertsUseCase{source: source, log: log, now: time.Now}
}

// GetAlerts lee inventario, órdenes, devoluciones, productos, bodegas y clientes en
// paralelo y deriva las alertas. Nunca falla por una fuente caída.
func (uc *AlertsUseCase) GetAlerts(ctx context.Context) (*dto.AlertsResponse, error) {
	var in analytics.AlertInput

	f := newFanOut(ctx, uc.log)
	fetch(f, SourceInventory, &in.Inventory, uc.source.ListInventory)
	fetch(f, SourceOrders, &in.Orders, func(ctx context.Context) ([]entity.Order, error) {
		return uc.source.ListOrders(ctx, repository.OrderQuery{})
	})
	fetch(f, SourceReturns, &in.Returns, uc.source.ListReturns)
	fetch(f, SourceProducts, &in.Products, uc.source.ListProducts)
	fetch(f, SourceWarehouses, &in.Warehouses, uc.source.ListWarehouses)
	fetch(f, SourceCustomers, &in.Customers, uc.source.ListCustomers)
	sources := f.wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := analytics.DeriveAlerts(in, uc.now())
	resp := toAlertsResponse(report)
	resp.Sources = sources
	return resp, nil
}

func toAlertsResponse(r analytics.AlertReport) *dto.AlertsResponse {
	resp := &dto.AlertsResponse{
		GeneratedAt: r.GeneratedAt,
		Summary: dto.AlertSummaryDTO{
			LowStock:      r.Summary.LowStock,
			Overstock:     r.Summary.Overstock,
			DelayedOrders: r.Summary.DelayedOrders,
			DemandSpikes:  r.Summary.DemandSpikes,
			StuckReturns:  r.Summary.StuckReturns,
			Total:         r.Summary.Total,
		},
		LowStock:      toStockAlerts(r.LowStock),
		Overstock:     toStockAlerts(r.Overstock),
		DelayedOrders: make([]dto.DelayedOrderAlertDTO, 0, len(r.DelayedOrders)),
		DemandSpikes:  make([]dto.DemandSpikeAlertDTO, 0, len(r.DemandSpikes)),
		StuckReturns:  make([]dto.StuckReturnAlertDTO, 0, len(r.StuckReturns)),
	}
	for _, a := range r.DelayedOrders {
		resp.DelayedOrders = append(resp.DelayedOrders, dto.DelayedOrderAlertDTO{
			OrderID:      a.OrderID,
			OrderNumber:  a.OrderNumber,
			CustomerName: a.CustomerName,
			OrderDate:    a.OrderDate,
			DaysDelayed:  a.DaysDelayed,
			TotalAmount:  a.TotalAmount,
		})
	}
	for _, a := range r.DemandSpikes {
		resp.DemandSpikes = append(resp.DemandSpikes, dto.DemandSpikeAlertDTO{
			ProductID:   a.ProductID,
			ProductName: a.ProductName,
			SKU:         a.SKU,
			RecentCount: a.RecentCount,
			TotalCount:  a.TotalCount,
		})
	}
	for _, a := range r.StuckReturns {
		resp.StuckReturns = append(resp.StuckReturns, dto.StuckReturnAlertDTO{
			ReturnID:     a.ReturnID,
			ReturnNumber: a.ReturnNumber,
			OrderNumber:  a.OrderNumber,
			CustomerName: a.CustomerName,
			Status:       string(a.Status),
			CreatedAt:    a.CreatedAt,
			DaysStuck:    a.DaysStuck,
		})
	}
	return resp
}

func toStockAlerts(in []analytics.StockAlert) []dto.StockAlertDTO {
	out := make([]dto.StockAlertDTO, 0, len(in))
	for _, a := range in {
		out = append(out, dto.StockAlertDTO{
			InventoryID:   a.InventoryID,
			ProductID:     a.ProductID,
			ProductName:   a.ProductName,
			SKU:           a.SKU,
			WarehouseID:   a.WarehouseID,
			WarehouseName: a.WarehouseName,
			Quantity:      a.Quantity,
			ReorderPoint:  a.ReorderPoint,
		})
	}
	return out
}
