package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertsResponse respuesta de GET /api/alerts.
// Summary trae los conteos completos; cada lista trae como máximo 10 filas.
type AlertsResponse struct {
	GeneratedAt   time.Time               `json:"generated_at"`
	Summary       AlertSummaryDTO         `json:"summary"`
	LowStock      []StockAlertDTO         `json:"low_stock"`
	Overstock     []StockAlertDTO         `json:"overstock"`
	DelayedOrders []DelayedOrderAlertDTO  `json:"delayed_orders"`
	DemandSpikes  []DemandSpikeAlertDTO   `json:"demand_spikes"`
	StuckReturns  []StuckReturnAlertDTO   `json:"stuck_returns"`
	Sources       map[string]SourceStatus `json:"sources"`
}

// SourceStatus indica si una colección del backend se pudo leer.
// Una fuente caída se trata como vacía; el cliente puede avisarlo en pantalla.
type SourceStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// AlertSummaryDTO conteos por categoría.
type AlertSummaryDTO struct {
	LowStock      int `json:"low_stock"`
	Overstock     int `json:"overstock"`
	DelayedOrders int `json:"delayed_orders"`
	DemandSpikes  int `json:"demand_spikes"`
	StuckReturns  int `json:"stuck_returns"`
	Total         int `json:"total"`
}

// StockAlertDTO fila de bajo stock o sobrestock.
type StockAlertDTO struct {
	InventoryID   string `json:"inventory_id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	SKU           string `json:"sku"`
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int    `json:"quantity"`
	ReorderPoint  int    `json:"reorder_point"`
}

// DelayedOrderAlertDTO orden pendiente hace más de 7 días.
type DelayedOrderAlertDTO struct {
	OrderID      string          `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	OrderDate    time.Time       `json:"order_date"`
	DaysDelayed  int             `json:"days_delayed"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// DemandSpikeAlertDTO producto con pico de demanda.
type DemandSpikeAlertDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	RecentCount int    `json:"recent_count"`
	TotalCount  int    `json:"total_count"`
}

// StuckReturnAlertDTO devolución abierta hace más de 14 días.
type StuckReturnAlertDTO struct {
	ReturnID     string    `json:"return_id"`
	ReturnNumber string    `json:"return_number"`
	OrderNumber  string    `json:"order_number"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	DaysStuck    int       `json:"days_stuck"`
}
