package upstream

import (
	"context"
	"net/url"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// Colecciones expuestas por el backend.
const (
	pathInventory  = "inventory"
	pathProducts   = "products"
	pathWarehouses = "warehouses"
	pathCustomers  = "customers"
	pathOrders     = "orders"
	pathReturns    = "returns"
	pathInvoices   = "proforma-invoices"
	pathTasks      = "tasks"
)

// Source implementa repository.BackofficeSource sobre el cliente REST.
type Source struct {
	client *Client
}

// NewSource construye la fuente de lectura.
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

var _ repository.BackofficeSource = (*Source)(nil)

func (s *Source) ListInventory(ctx context.Context) ([]entity.InventoryLevel, error) {
	recs, err := listAll[inventoryRecord](ctx, s.client, pathInventory, nil)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, inventoryRecord.toEntity), nil
}

func (s *Source) ListProducts(ctx context.Context) ([]entity.Product, error) {
	recs, err := listAll[productRecord](ctx, s.client, pathProducts, nil)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, productRecord.toEntity), nil
}

func (s *Source) ListWarehouses(ctx context.Context) ([]entity.Warehouse, error) {
	recs, err := listAll[warehouseRecord](ctx, s.client, pathWarehouses, nil)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, warehouseRecord.toEntity), nil
}

func (s *Source) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	recs, err := listAll[customerRecord](ctx, s.client, pathCustomers, nil)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, customerRecord.toEntity), nil
}

// ListOrders envía startDate/endDate/status solo cuando vienen informados.
func (s *Source) ListOrders(ctx context.Context, q repository.OrderQuery) ([]entity.Order, error) {
	params := url.Values{}
	if !q.StartDate.IsZero() {
		params.Set("startDate", formatQueryTime(q.StartDate))
	}
	if !q.EndDate.IsZero() {
		params.Set("endDate", formatQueryTime(q.EndDate))
	}
	if q.Status != "" {
		params.Set("status", string(q.Status))
	}
	recs, err := listAll[orderRecord](ctx, s.client, pathOrders, params)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, orderRecord.toEntity), nil
}

func (s *Source) ListReturns(ctx context.Context) ([]entity.Return, error) {
	recs, err := listAll[returnRecord](ctx, s.client, pathReturns, nil)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, returnRecord.toEntity), nil
}

func (s *Source) ListInvoices(ctx context.Context) ([]entity.Invoice, error) {
	recs, err := listAll[invoiceRecord](ctx, s.client, pathInvoices, nil)
	if err != nil {
		return nil, err
	}
	return mapRecords(recs, invoiceRecord.toEntity), nil
}
