package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// OrderQuery filtros que el backend acepta al listar órdenes.
// Fechas en cero no se envían.
type OrderQuery struct {
	StartDate time.Time
	EndDate   time.Time
	Status    entity.OrderStatus
}

// BackofficeSource puerto de lectura de las colecciones del backend de inventario.
// Las implementaciones devuelven la colección completa (paginando si hace falta)
// con los defaults de ingesta ya aplicados.
type BackofficeSource interface {
	ListInventory(ctx context.Context) ([]entity.InventoryLevel, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListWarehouses(ctx context.Context) ([]entity.Warehouse, error)
	ListCustomers(ctx context.Context) ([]entity.Customer, error)
	ListOrders(ctx context.Context, q OrderQuery) ([]entity.Order, error)
	ListReturns(ctx context.Context) ([]entity.Return, error)
	ListInvoices(ctx context.Context) ([]entity.Invoice, error)
}
