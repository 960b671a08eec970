package cache

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

type memStore struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = string(value)
	return nil
}

// countingSource cuenta las llamadas que llegan al backend.
type countingSource struct {
	calls  map[string]int
	orders []entity.Order
	err    error
}

func (c *countingSource) hit(name string) { c.calls[name]++ }

func (c *countingSource) ListInventory(context.Context) ([]entity.InventoryLevel, error) {
	c.hit("inventory")
	return []entity.InventoryLevel{{ID: "i1", Quantity: 3, ReorderPoint: 10}}, c.err
}
func (c *countingSource) ListProducts(context.Context) ([]entity.Product, error) {
	c.hit("products")
	return []entity.Product{}, c.err
}
func (c *countingSource) ListWarehouses(context.Context) ([]entity.Warehouse, error) {
	c.hit("warehouses")
	return []entity.Warehouse{}, c.err
}
func (c *countingSource) ListCustomers(context.Context) ([]entity.Customer, error) {
	c.hit("customers")
	return []entity.Customer{}, c.err
}
func (c *countingSource) ListOrders(_ context.Context, _ repository.OrderQuery) ([]entity.Order, error) {
	c.hit("orders")
	if c.err != nil {
		return nil, c.err
	}
	return c.orders, nil
}
func (c *countingSource) ListReturns(context.Context) ([]entity.Return, error) {
	c.hit("returns")
	return []entity.Return{}, c.err
}
func (c *countingSource) ListInvoices(context.Context) ([]entity.Invoice, error) {
	c.hit("invoices")
	return []entity.Invoice{}, c.err
}

func TestSource_SegundaLecturaSaleDelCache(t *testing.T) {
	when := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	next := &countingSource{calls: map[string]int{}, orders: []entity.Order{{
		ID: "o1", Status: entity.OrderPending, TotalAmount: decimal.RequireFromString("10.50"), OrderDate: when,
		Lines: []entity.OrderLine{{ProductID: "p1", Quantity: 2}},
	}}}
	s := NewSource(next, newMemStore(), time.Minute, zerolog.Nop(), nil)
	ctx := context.Background()
	q := repository.OrderQuery{StartDate: when}

	first, err := s.ListOrders(ctx, q)
	require.NoError(t, err)
	second, err := s.ListOrders(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls["orders"])
	require.Len(t, second, 1)
	assert.True(t, first[0].TotalAmount.Equal(second[0].TotalAmount))
	assert.True(t, when.Equal(second[0].OrderDate))
	assert.Equal(t, first[0].Lines, second[0].Lines)

	_, err = s.ListOrders(ctx, repository.OrderQuery{Status: entity.OrderPending})
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls["orders"], "otros filtros usan otra clave")
}

func TestSource_RedisCaidoNoRompeLaLectura(t *testing.T) {
	var buf bytes.Buffer
	store := newMemStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	next := &countingSource{calls: map[string]int{}}
	s := NewSource(next, store, time.Minute, zerolog.New(&buf), nil)

	items, err := s.ListInventory(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Contains(t, buf.String(), `"collection":"inventory"`)
}

func TestSource_ValorCorruptoSeDescarta(t *testing.T) {
	store := newMemStore()
	store.data[keyPrefix+"inventory"] = "{no json"
	next := &countingSource{calls: map[string]int{}}
	s := NewSource(next, store, time.Minute, zerolog.Nop(), nil)

	items, err := s.ListInventory(context.Background())

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, next.calls["inventory"])
	assert.NotEqual(t, "{no json", store.data[keyPrefix+"inventory"], "se reescribe con el valor fresco")
}

func TestSource_ErrorDelBackendNoSeCachea(t *testing.T) {
	store := newMemStore()
	next := &countingSource{calls: map[string]int{}, err: errors.New("HTTP 503")}
	s := NewSource(next, store, time.Minute, zerolog.Nop(), nil)

	_, err := s.ListOrders(context.Background(), repository.OrderQuery{})

	assert.Error(t, err)
	assert.Empty(t, store.data)
}

func TestRedisStore_SinServidorDevuelveError(t *testing.T) {
	store := NewRedisStore(Options{Addr: "127.0.0.1:1"})
	defer store.Close()

	_, _, err := store.Get(context.Background(), "x")
	assert.Error(t, err)

	next := &countingSource{calls: map[string]int{}}
	items, err := NewSource(next, store, time.Minute, zerolog.Nop(), nil).ListWarehouses(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
}
