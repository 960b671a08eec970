package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de una factura proforma.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// Invoice factura proforma emitida por el backend (GET /proforma-invoices).
type Invoice struct {
	ID            string
	InvoiceNumber string
	Status        InvoiceStatus
	TotalAmount   decimal.Decimal
	Currency      string
	CustomerID    string
	OrderID       string
	IssueDate     time.Time
	CreatedAt     time.Time
}
