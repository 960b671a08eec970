package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/domain/analytics"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// testNow instante de referencia común a los tests del paquete.
var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return testNow.Add(-time.Duration(d) * 24 * time.Hour)
}

func TestIsLowStock_Regla(t *testing.T) {
	cases := []struct {
		name     string
		qty, rp  int
		expected bool
	}{
		{"cero nunca es bajo stock", 0, 10, false},
		{"uno con reorden 10", 1, 10, true},
		{"igual al punto de reorden", 10, 10, true},
		{"por encima del punto de reorden", 11, 10, false},
		{"reorden personalizado", 25, 30, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := entity.InventoryLevel{Quantity: tc.qty, ReorderPoint: tc.rp}
			assert.Equal(t, tc.expected, analytics.IsLowStock(item))
		})
	}
}

func TestDeriveAlerts_EscenarioInventario(t *testing.T) {
	in := analytics.AlertInput{
		Inventory: []entity.InventoryLevel{
			{ID: "inv-low", ProductID: "p1", WarehouseID: "w1", Quantity: 5, ReorderPoint: 10},
			{ID: "inv-over", ProductID: "p2", WarehouseID: "w1", Quantity: 1500, ReorderPoint: 10},
			{ID: "inv-zero", ProductID: "p3", WarehouseID: "w1", Quantity: 0, ReorderPoint: 10},
		},
		Products:   []entity.Product{{ID: "p1", Name: "Tornillo", SKU: "T-1"}, {ID: "p2", Name: "Tuerca"}},
		Warehouses: []entity.Warehouse{{ID: "w1", Name: "Principal"}},
	}

	report := analytics.DeriveAlerts(in, testNow)

	require.Len(t, report.LowStock, 1)
	assert.Equal(t, "inv-low", report.LowStock[0].InventoryID)
	assert.Equal(t, "Tornillo", report.LowStock[0].ProductName)
	assert.Equal(t, "T-1", report.LowStock[0].SKU)
	assert.Equal(t, "Principal", report.LowStock[0].WarehouseName)

	require.Len(t, report.Overstock, 1)
	assert.Equal(t, "inv-over", report.Overstock[0].InventoryID)

	assert.Equal(t, 1, report.Summary.LowStock)
	assert.Equal(t, 1, report.Summary.Overstock)
	assert.Equal(t, 2, report.Summary.Total)
}

func TestDeriveAlerts_BajoStockYSobrestockSonIndependientes(t *testing.T) {
	in := analytics.AlertInput{
		Inventory: []entity.InventoryLevel{
			{ID: "inv-ambas", ProductID: "p1", Quantity: 1500, ReorderPoint: 2000},
		},
	}

	report := analytics.DeriveAlerts(in, testNow)

	require.Len(t, report.LowStock, 1)
	require.Len(t, report.Overstock, 1)
	assert.Equal(t, "inv-ambas", report.LowStock[0].InventoryID)
	assert.Equal(t, "inv-ambas", report.Overstock[0].InventoryID)
	assert.Equal(t, 1, report.Summary.LowStock)
	assert.Equal(t, 1, report.Summary.Overstock)
}

func TestDeriveAlerts_OrdenesDemoradas(t *testing.T) {
	in := analytics.AlertInput{
		Orders: []entity.Order{
			{ID: "o1", OrderNumber: "SO-1", Status: entity.OrderPending, OrderDate: daysAgo(10), CustomerID: "c1"},
			{ID: "o2", OrderNumber: "SO-2", Status: entity.OrderPending, OrderDate: daysAgo(3), CustomerID: "c1"},
			{ID: "o3", OrderNumber: "SO-3", Status: entity.OrderConfirmed, OrderDate: daysAgo(30), CustomerID: "c1"},
			{ID: "o4", OrderNumber: "SO-4", Status: entity.OrderPending, OrderDate: daysAgo(8), CustomerID: "desconocido"},
		},
		Customers: []entity.Customer{{ID: "c1", Name: "Acme"}},
	}

	report := analytics.DeriveAlerts(in, testNow)

	require.Len(t, report.DelayedOrders, 2)
	assert.Equal(t, "o1", report.DelayedOrders[0].OrderID)
	assert.Equal(t, 10, report.DelayedOrders[0].DaysDelayed)
	assert.Equal(t, "Acme", report.DelayedOrders[0].CustomerName)
	assert.Equal(t, analytics.UnknownCustomer, report.DelayedOrders[1].CustomerName)
}

func TestIsDelayedOrder_CambioDeEstadoLaSaca(t *testing.T) {
	o := entity.Order{Status: entity.OrderPending, OrderDate: daysAgo(40)}
	assert.True(t, analytics.IsDelayedOrder(o, testNow))

	for _, s := range []entity.OrderStatus{entity.OrderConfirmed, entity.OrderShipped, entity.OrderCancelled} {
		o.Status = s
		assert.False(t, analytics.IsDelayedOrder(o, testNow), "estado %s no debe contar como demorada", s)
	}
}

func TestIsDelayedOrder_LimiteExacto(t *testing.T) {
	o := entity.Order{Status: entity.OrderPending, OrderDate: testNow.Add(-analytics.DelayedOrderAfter)}
	assert.False(t, analytics.IsDelayedOrder(o, testNow), "exactamente 7×24h no supera el umbral")

	o.OrderDate = o.OrderDate.Add(-time.Second)
	assert.True(t, analytics.IsDelayedOrder(o, testNow))
}

func TestDeriveAlerts_PicosDeDemanda(t *testing.T) {
	var orders []entity.Order
	add := func(productID string, age int) {
		orders = append(orders, entity.Order{
			ID:        fmt.Sprintf("o%d", len(orders)),
			Status:    entity.OrderConfirmed,
			OrderDate: daysAgo(age),
			Lines:     []entity.OrderLine{{ProductID: productID, Quantity: 1}},
		})
	}
	// p1: 5 recientes de 6 totales → 5 >= 4.5 → pico
	add("p1", 30)
	for i := 0; i < 5; i++ {
		add("p1", 1)
	}
	// p2: 4 recientes de 4 → no alcanza el mínimo de 5
	for i := 0; i < 4; i++ {
		add("p2", 2)
	}
	// p3: 5 recientes de 10 → 5 < 7.5
	for i := 0; i < 5; i++ {
		add("p3", 2)
		add("p3", 60)
	}

	report := analytics.DeriveAlerts(analytics.AlertInput{
		Orders:   orders,
		Products: []entity.Product{{ID: "p1", Name: "Guantes"}},
	}, testNow)

	require.Len(t, report.DemandSpikes, 1)
	spike := report.DemandSpikes[0]
	assert.Equal(t, "p1", spike.ProductID)
	assert.Equal(t, "Guantes", spike.ProductName)
	assert.Equal(t, 5, spike.RecentCount)
	assert.Equal(t, 6, spike.TotalCount)
}

func TestDeriveAlerts_DevolucionesAtascadas(t *testing.T) {
	in := analytics.AlertInput{
		Returns: []entity.Return{
			{ID: "r1", Status: entity.ReturnPending, OrderID: "o1", CreatedAt: daysAgo(20)},
			{ID: "r2", Status: entity.ReturnCompleted, OrderID: "o1", CreatedAt: daysAgo(30)},
			{ID: "r3", Status: entity.ReturnCancelled, CreatedAt: daysAgo(30)},
			{ID: "r4", Status: entity.ReturnInspecting, CreatedAt: daysAgo(5)},
			{ID: "r5", Status: entity.ReturnApproved, OrderID: "perdida", CreatedAt: daysAgo(15)},
		},
		Orders:    []entity.Order{{ID: "o1", OrderNumber: "SO-1", Status: entity.OrderDelivered, CustomerID: "c1", OrderDate: daysAgo(40)}},
		Customers: []entity.Customer{{ID: "c1", Name: "Acme"}},
	}

	report := analytics.DeriveAlerts(in, testNow)

	require.Len(t, report.StuckReturns, 2)
	assert.Equal(t, "r1", report.StuckReturns[0].ReturnID)
	assert.Equal(t, 20, report.StuckReturns[0].DaysStuck)
	assert.Equal(t, "SO-1", report.StuckReturns[0].OrderNumber)
	assert.Equal(t, "Acme", report.StuckReturns[0].CustomerName)

	assert.Equal(t, "r5", report.StuckReturns[1].ReturnID)
	assert.Equal(t, analytics.UnknownOrder, report.StuckReturns[1].OrderNumber)
	assert.Equal(t, analytics.UnknownCustomer, report.StuckReturns[1].CustomerName)
}

func TestDeriveAlerts_DetalleTruncadoEnOrdenDeEntrada(t *testing.T) {
	var inv []entity.InventoryLevel
	for i := 0; i < 15; i++ {
		inv = append(inv, entity.InventoryLevel{
			ID: fmt.Sprintf("inv-%02d", i), ProductID: "sin-catalogo", Quantity: 15 - i, ReorderPoint: 20,
		})
	}

	report := analytics.DeriveAlerts(analytics.AlertInput{Inventory: inv}, testNow)

	assert.Equal(t, 15, report.Summary.LowStock, "el resumen cuenta todas las alertas")
	require.Len(t, report.LowStock, analytics.AlertDetailLimit)
	assert.Equal(t, "inv-00", report.LowStock[0].InventoryID, "sin ordenar por severidad")
	assert.Equal(t, analytics.UnknownProduct, report.LowStock[0].ProductName)
	assert.Equal(t, analytics.UnknownWarehouse, report.LowStock[0].WarehouseName)
}

func TestDeriveAlerts_EntradasVacias(t *testing.T) {
	report := analytics.DeriveAlerts(analytics.AlertInput{}, testNow)

	assert.Equal(t, analytics.AlertSummary{}, report.Summary)
	assert.Empty(t, report.LowStock)
	assert.Empty(t, report.Overstock)
	assert.Empty(t, report.DelayedOrders)
	assert.Empty(t, report.DemandSpikes)
	assert.Empty(t, report.StuckReturns)
	assert.NotNil(t, report.LowStock, "las listas vacías se serializan como []")
}

func TestDeriveAlerts_MontoDeOrdenDemorada(t *testing.T) {
	in := analytics.AlertInput{Orders: []entity.Order{{
		ID: "o1", Status: entity.OrderPending, OrderDate: daysAgo(9), TotalAmount: decimal.RequireFromString("120.50"),
	}}}

	report := analytics.DeriveAlerts(in, testNow)

	require.Len(t, report.DelayedOrders, 1)
	assert.True(t, decimal.RequireFromString("120.50").Equal(report.DelayedOrders[0].TotalAmount))
}
