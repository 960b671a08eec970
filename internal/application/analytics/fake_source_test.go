package analytics

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var errUpstream = errors.New("backend caído")

// fakeSource BackofficeSource en memoria. fail marca colecciones que devuelven error;
// panics marca colecciones cuya lectura entra en pánico.
type fakeSource struct {
	inventory  []entity.InventoryLevel
	products   []entity.Product
	warehouses []entity.Warehouse
	customers  []entity.Customer
	orders     []entity.Order
	returns    []entity.Return
	invoices   []entity.Invoice

	fail   map[string]bool
	panics map[string]bool

	mu    sync.Mutex
	calls map[string]int
}

var _ repository.BackofficeSource = (*fakeSource)(nil)

func list[T any](s *fakeSource, name string, items []T) ([]T, error) {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[name]++
	s.mu.Unlock()

	if s.panics[name] {
		panic("lectura rota: " + name)
	}
	if s.fail[name] {
		return nil, errUpstream
	}
	return items, nil
}

func (s *fakeSource) ListInventory(context.Context) ([]entity.InventoryLevel, error) {
	return list(s, SourceInventory, s.inventory)
}

func (s *fakeSource) ListProducts(context.Context) ([]entity.Product, error) {
	return list(s, SourceProducts, s.products)
}

func (s *fakeSource) ListWarehouses(context.Context) ([]entity.Warehouse, error) {
	return list(s, SourceWarehouses, s.warehouses)
}

func (s *fakeSource) ListCustomers(context.Context) ([]entity.Customer, error) {
	return list(s, SourceCustomers, s.customers)
}

func (s *fakeSource) ListOrders(context.Context, repository.OrderQuery) ([]entity.Order, error) {
	return list(s, SourceOrders, s.orders)
}

func (s *fakeSource) ListReturns(context.Context) ([]entity.Return, error) {
	return list(s, SourceReturns, s.returns)
}

func (s *fakeSource) ListInvoices(context.Context) ([]entity.Invoice, error) {
	return list(s, SourceInvoices, s.invoices)
}
