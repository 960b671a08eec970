// Package analytics contiene las derivaciones puras del backoffice: alertas
// operativas, KPIs, normalización de transacciones de auditoría y estadísticas
// de tareas. Ninguna función de este paquete hace I/O ni devuelve error; todas
// reciben el instante de referencia (now) de forma explícita.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

const (
	// OverstockThreshold umbral fijo de sobrestock (unidades), independiente de la
	// velocidad de venta.
	OverstockThreshold = 1000

	DelayedOrderAfter = 7 * 24 * time.Hour
	StuckReturnAfter  = 14 * 24 * time.Hour
	DemandSpikeWindow = 7 * 24 * time.Hour

	// DemandSpikeMinRecent mínimo de apariciones recientes para considerar un pico.
	DemandSpikeMinRecent = 5

	// AlertDetailLimit cantidad máxima de filas de detalle por categoría.
	AlertDetailLimit = 10

	UnknownProduct   = "Unknown Product"
	UnknownWarehouse = "Unknown Warehouse"
	UnknownCustomer  = "Unknown Customer"
	UnknownOrder     = "Unknown Order"
)

// AlertCategory categoría de una alerta derivada.
type AlertCategory string

const (
	AlertLowStock     AlertCategory = "low-stock"
	AlertOverstock    AlertCategory = "overstock"
	AlertDelayedOrder AlertCategory = "delayed-order"
	AlertDemandSpike  AlertCategory = "demand-spike"
	AlertStuckReturn  AlertCategory = "stuck-return"
)

// AlertInput colecciones crudas sobre las que se derivan las alertas.
// Cualquiera puede venir vacía (fallo de la fuente): la derivación no falla.
type AlertInput struct {
	Inventory  []entity.InventoryLevel
	Orders     []entity.Order
	Returns    []entity.Return
	Products   []entity.Product
	Warehouses []entity.Warehouse
	Customers  []entity.Customer
}

// StockAlert detalle de una alerta de stock (bajo o sobrestock).
type StockAlert struct {
	Category      AlertCategory
	InventoryID   string
	ProductID     string
	ProductName   string
	SKU           string
	WarehouseID   string
	WarehouseName string
	Quantity      int
	ReorderPoint  int
}

// DelayedOrderAlert orden PENDING con más de 7 días de antigüedad.
type DelayedOrderAlert struct {
	OrderID      string
	OrderNumber  string
	CustomerName string
	OrderDate    time.Time
	DaysDelayed  int
	TotalAmount  decimal.Decimal
}

// DemandSpikeAlert producto cuya demanda de los últimos 7 días concentra la mayor parte del histórico.
type DemandSpikeAlert struct {
	ProductID   string
	ProductName string
	SKU         string
	RecentCount int
	TotalCount  int
}

// StuckReturnAlert devolución abierta con más de 14 días.
type StuckReturnAlert struct {
	ReturnID     string
	ReturnNumber string
	OrderNumber  string
	CustomerName string
	Status       entity.ReturnStatus
	CreatedAt    time.Time
	DaysStuck    int
}

// AlertSummary conteos completos por categoría (sin truncar).
type AlertSummary struct {
	LowStock      int
	Overstock     int
	DelayedOrders int
	DemandSpikes  int
	StuckReturns  int
	Total         int
}

// AlertReport resultado de DeriveAlerts.
type AlertReport struct {
	GeneratedAt   time.Time
	Summary       AlertSummary
	LowStock      []StockAlert
	Overstock     []StockAlert
	DelayedOrders []DelayedOrderAlert
	DemandSpikes  []DemandSpikeAlert
	StuckReturns  []StuckReturnAlert
}

// IsLowStock aplica la regla 0 < quantity <= reorderPoint.
func IsLowStock(item entity.InventoryLevel) bool {
	return item.Quantity > 0 && item.Quantity <= item.ReorderPoint
}

// IsOverstock aplica la regla quantity > OverstockThreshold.
func IsOverstock(item entity.InventoryLevel) bool {
	return item.Quantity > OverstockThreshold
}

// IsDelayedOrder indica si la orden sigue PENDING más de 7×24h después de su fecha.
func IsDelayedOrder(o entity.Order, now time.Time) bool {
	return o.Status == entity.OrderPending && now.Sub(o.OrderDate) > DelayedOrderAfter
}

// IsStuckReturn indica si la devolución sigue abierta más de 14×24h después de creada.
func IsStuckReturn(r entity.Return, now time.Time) bool {
	return !r.IsClosed() && now.Sub(r.CreatedAt) > StuckReturnAfter
}

// DeriveAlerts clasifica inventario, órdenes y devoluciones en las cinco categorías de alerta.
// Los conteos del resumen cubren toda la clasificación; los detalles son las primeras
// AlertDetailLimit filas en el orden de entrada.
func DeriveAlerts(in AlertInput, now time.Time) AlertReport {
	idx := newLookup(in)

	var lowStock, overstock []StockAlert
	for _, item := range in.Inventory {
		if IsLowStock(item) {
			lowStock = append(lowStock, idx.stockAlert(AlertLowStock, item))
		}
		if IsOverstock(item) {
			overstock = append(overstock, idx.stockAlert(AlertOverstock, item))
		}
	}

	var delayed []DelayedOrderAlert
	for _, o := range in.Orders {
		if !IsDelayedOrder(o, now) {
			continue
		}
		delayed = append(delayed, DelayedOrderAlert{
			OrderID:      o.ID,
			OrderNumber:  o.OrderNumber,
			CustomerName: idx.customerName(o.CustomerID, o.CustomerName),
			OrderDate:    o.OrderDate,
			DaysDelayed:  wholeDays(now.Sub(o.OrderDate)),
			TotalAmount:  o.TotalAmount,
		})
	}

	spikes := deriveDemandSpikes(in.Orders, idx, now)

	var stuck []StuckReturnAlert
	for _, r := range in.Returns {
		if !IsStuckReturn(r, now) {
			continue
		}
		customerID := r.CustomerID
		orderNumber := UnknownOrder
		if o, ok := idx.orders[r.OrderID]; ok {
			orderNumber = o.OrderNumber
			if customerID == "" {
				customerID = o.CustomerID
			}
		}
		stuck = append(stuck, StuckReturnAlert{
			ReturnID:     r.ID,
			ReturnNumber: r.ReturnNumber,
			OrderNumber:  orderNumber,
			CustomerName: idx.customerName(customerID, ""),
			Status:       r.Status,
			CreatedAt:    r.CreatedAt,
			DaysStuck:    wholeDays(now.Sub(r.CreatedAt)),
		})
	}

	summary := AlertSummary{
		LowStock:      len(lowStock),
		Overstock:     len(overstock),
		DelayedOrders: len(delayed),
		DemandSpikes:  len(spikes),
		StuckReturns:  len(stuck),
	}
	summary.Total = summary.LowStock + summary.Overstock + summary.DelayedOrders +
		summary.DemandSpikes + summary.StuckReturns

	return AlertReport{
		GeneratedAt:   now,
		Summary:       summary,
		LowStock:      firstN(lowStock, AlertDetailLimit),
		Overstock:     firstN(overstock, AlertDetailLimit),
		DelayedOrders: firstN(delayed, AlertDetailLimit),
		DemandSpikes:  firstN(spikes, AlertDetailLimit),
		StuckReturns:  firstN(stuck, AlertDetailLimit),
	}
}

// deriveDemandSpikes cuenta apariciones de cada producto en las líneas de orden
// (histórico y últimos 7 días) y marca los que cumplen recent >= total/4*3 y recent >= 5.
// Los productos se recorren en el orden en que aparecen por primera vez.
func deriveDemandSpikes(orders []entity.Order, idx lookup, now time.Time) []DemandSpikeAlert {
	type counter struct{ total, recent int }
	counts := make(map[string]*counter)
	var seen []string

	windowStart := now.Add(-DemandSpikeWindow)
	for _, o := range orders {
		recent := !o.OrderDate.Before(windowStart)
		for _, line := range o.Lines {
			if line.ProductID == "" {
				continue
			}
			c, ok := counts[line.ProductID]
			if !ok {
				c = &counter{}
				counts[line.ProductID] = c
				seen = append(seen, line.ProductID)
			}
			c.total++
			if recent {
				c.recent++
			}
		}
	}

	var spikes []DemandSpikeAlert
	for _, productID := range seen {
		c := counts[productID]
		if float64(c.recent) < float64(c.total)/4*3 || c.recent < DemandSpikeMinRecent {
			continue
		}
		name, sku := idx.product(productID)
		spikes = append(spikes, DemandSpikeAlert{
			ProductID:   productID,
			ProductName: name,
			SKU:         sku,
			RecentCount: c.recent,
			TotalCount:  c.total,
		})
	}
	return spikes
}

// lookup índices por ID para los joins de nombres.
type lookup struct {
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	customers  map[string]entity.Customer
	orders     map[string]entity.Order
}

func newLookup(in AlertInput) lookup {
	idx := lookup{
		products:   make(map[string]entity.Product, len(in.Products)),
		warehouses: make(map[string]entity.Warehouse, len(in.Warehouses)),
		customers:  make(map[string]entity.Customer, len(in.Customers)),
		orders:     make(map[string]entity.Order, len(in.Orders)),
	}
	for _, p := range in.Products {
		idx.products[p.ID] = p
	}
	for _, w := range in.Warehouses {
		idx.warehouses[w.ID] = w
	}
	for _, c := range in.Customers {
		idx.customers[c.ID] = c
	}
	for _, o := range in.Orders {
		idx.orders[o.ID] = o
	}
	return idx
}

func (l lookup) product(id string) (name, sku string) {
	p, ok := l.products[id]
	if !ok || p.Name == "" {
		return UnknownProduct, p.SKU
	}
	return p.Name, p.SKU
}

func (l lookup) warehouseName(id string) string {
	if w, ok := l.warehouses[id]; ok && w.Name != "" {
		return w.Name
	}
	return UnknownWarehouse
}

// customerName resuelve el nombre del cliente; embedded es el nombre que ya traía el registro.
func (l lookup) customerName(id, embedded string) string {
	if c, ok := l.customers[id]; ok && c.Name != "" {
		return c.Name
	}
	if embedded != "" {
		return embedded
	}
	return UnknownCustomer
}

func (l lookup) stockAlert(cat AlertCategory, item entity.InventoryLevel) StockAlert {
	name, sku := l.product(item.ProductID)
	return StockAlert{
		Category:      cat,
		InventoryID:   item.ID,
		ProductID:     item.ProductID,
		ProductName:   name,
		SKU:           sku,
		WarehouseID:   item.WarehouseID,
		WarehouseName: l.warehouseName(item.WarehouseID),
		Quantity:      item.Quantity,
		ReorderPoint:  item.ReorderPoint,
	}
}

// wholeDays días completos transcurridos (floor).
func wholeDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// firstN devuelve los primeros n elementos; nunca nil.
func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
