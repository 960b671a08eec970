package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estados del ciclo de vida de una orden.
type OrderStatus string

const (
	OrderDraft              OrderStatus = "DRAFT"
	OrderPending            OrderStatus = "PENDING"
	OrderConfirmed          OrderStatus = "CONFIRMED"
	OrderProcessing         OrderStatus = "PROCESSING"
	OrderPartiallyFulfilled OrderStatus = "PARTIALLY_FULFILLED"
	OrderShipped            OrderStatus = "SHIPPED"
	OrderInTransit          OrderStatus = "IN_TRANSIT"
	OrderFulfilled          OrderStatus = "FULFILLED"
	OrderDelivered          OrderStatus = "DELIVERED"
	OrderCancelled          OrderStatus = "CANCELLED"
	OrderReturned           OrderStatus = "RETURNED"
	// OrderCompleted no forma parte del ciclo declarado pero el backend lo emite en datos antiguos.
	OrderCompleted OrderStatus = "COMPLETED"
)

// Order orden de venta con sus líneas.
// OrderDate ya trae aplicado el fallback a CreatedAt cuando el backend no envía orderDate.
type Order struct {
	ID           string
	OrderNumber  string
	Status       OrderStatus
	TotalAmount  decimal.Decimal
	Currency     string
	CustomerID   string
	CustomerName string // nombre embebido en la respuesta, si vino
	OrderDate    time.Time
	CreatedAt    time.Time
	Lines        []OrderLine
}

// OrderLine línea de una orden; solo interesa el producto referenciado y la cantidad.
type OrderLine struct {
	ProductID string
	Quantity  int
}
