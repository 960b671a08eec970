package analytics

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// TransactionType tipo de transacción en la bitácora de auditoría.
type TransactionType string

const (
	TxOrder      TransactionType = "order"
	TxInvoice    TransactionType = "invoice"
	TxPayment    TransactionType = "payment"
	TxRefund     TransactionType = "refund"
	TxAdjustment TransactionType = "adjustment"
	TxTransfer   TransactionType = "transfer"
)

// TransactionStatus estado normalizado de una transacción.
type TransactionStatus string

const (
	TxCompleted TransactionStatus = "completed"
	TxPending   TransactionStatus = "pending"
	TxCancelled TransactionStatus = "cancelled"
	TxFailed    TransactionStatus = "failed"
)

const (
	defaultCurrency = "USD"
	systemUser      = "System"

	// SyntheticCount cantidad de transacciones de relleno.
	SyntheticCount = 50
	// SyntheticStep separación temporal entre transacciones de relleno.
	SyntheticStep = 2 * time.Hour
)

// FieldChange cambio registrado sobre un campo de la entidad.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

// Transaction proyección uniforme de órdenes, facturas y registros de relleno.
type Transaction struct {
	ID          string
	Type        TransactionType
	Status      TransactionStatus
	EntityName  string
	Description string
	Amount      decimal.Decimal
	Currency    string
	UserName    string
	Timestamp   time.Time
	Changes     []FieldChange
	Metadata    map[string]string
	Synthetic   bool
}

// OrderTransactionStatus mapea el estado de una orden: COMPLETED→completed, CANCELLED→cancelled, resto→pending.
func OrderTransactionStatus(s entity.OrderStatus) TransactionStatus {
	switch s {
	case entity.OrderCompleted:
		return TxCompleted
	case entity.OrderCancelled:
		return TxCancelled
	}
	return TxPending
}

// InvoiceTransactionStatus mapea el estado de una factura: PAID→completed, CANCELLED→cancelled, resto→pending.
func InvoiceTransactionStatus(s entity.InvoiceStatus) TransactionStatus {
	switch s {
	case entity.InvoicePaid:
		return TxCompleted
	case entity.InvoiceCancelled:
		return TxCancelled
	}
	return TxPending
}

// NormalizeTransactions une órdenes, facturas y relleno en una sola lista ordenada
// por fecha descendente (empates por ID ascendente).
func NormalizeTransactions(
	orders []entity.Order,
	invoices []entity.Invoice,
	customers []entity.Customer,
	filler []Transaction,
) []Transaction {
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	userFor := func(customerID, embedded string) string {
		if n := names[customerID]; n != "" {
			return n
		}
		if embedded != "" {
			return embedded
		}
		return systemUser
	}

	txs := make([]Transaction, 0, len(orders)+len(invoices)+len(filler))
	for _, o := range orders {
		customer := userFor(o.CustomerID, o.CustomerName)
		txs = append(txs, Transaction{
			ID:          "order-" + o.ID,
			Type:        TxOrder,
			Status:      OrderTransactionStatus(o.Status),
			EntityName:  "Order " + o.OrderNumber,
			Description: fmt.Sprintf("Order %s for %s", o.OrderNumber, customer),
			Amount:      o.TotalAmount,
			Currency:    currencyOrDefault(o.Currency),
			UserName:    customer,
			Timestamp:   o.OrderDate,
			Changes:     []FieldChange{{Field: "status", NewValue: string(o.Status)}},
			Metadata: map[string]string{
				"source":       "orders",
				"order_id":     o.ID,
				"order_number": o.OrderNumber,
				"customer_id":  o.CustomerID,
			},
		})
	}
	for _, inv := range invoices {
		customer := userFor(inv.CustomerID, "")
		ts := inv.IssueDate
		if ts.IsZero() {
			ts = inv.CreatedAt
		}
		txs = append(txs, Transaction{
			ID:          "invoice-" + inv.ID,
			Type:        TxInvoice,
			Status:      InvoiceTransactionStatus(inv.Status),
			EntityName:  "Invoice " + inv.InvoiceNumber,
			Description: fmt.Sprintf("Proforma invoice %s for %s", inv.InvoiceNumber, customer),
			Amount:      inv.TotalAmount,
			Currency:    currencyOrDefault(inv.Currency),
			UserName:    customer,
			Timestamp:   ts,
			Changes:     []FieldChange{{Field: "status", NewValue: string(inv.Status)}},
			Metadata: map[string]string{
				"source":         "proforma-invoices",
				"invoice_id":     inv.ID,
				"invoice_number": inv.InvoiceNumber,
				"order_id":       inv.OrderID,
				"customer_id":    inv.CustomerID,
			},
		})
	}
	txs = append(txs, filler...)

	SortTransactions(txs)
	return txs
}

// SortTransactions ordena por Timestamp descendente; a igual fecha, por ID ascendente.
func SortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Timestamp.Equal(txs[j].Timestamp) {
			return txs[i].Timestamp.After(txs[j].Timestamp)
		}
		return txs[i].ID < txs[j].ID
	})
}

// SyntheticTransactions genera count transacciones de relleno para demostración,
// separadas SyntheticStep hacia atrás desde now. Con la misma semilla el resultado es idéntico.
func SyntheticTransactions(count int, seed uint64, now time.Time) []Transaction {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	types := []TransactionType{TxOrder, TxInvoice, TxPayment, TxRefund, TxAdjustment, TxTransfer}
	statuses := []TransactionStatus{TxCompleted, TxPending, TxCancelled, TxFailed}
	users := []string{"Admin", "Warehouse Manager", "Sales Rep", "Accountant", systemUser}

	out := make([]Transaction, 0, count)
	for i := 0; i < count; i++ {
		typ := types[rng.IntN(len(types))]
		status := statuses[rng.IntN(len(statuses))]
		// centavos entre 10.00 y 5000.00
		amount := decimal.New(int64(1000+rng.IntN(499001)), -2)
		id := fmt.Sprintf("demo-%03d", i+1)
		out = append(out, Transaction{
			ID:          id,
			Type:        typ,
			Status:      status,
			EntityName:  fmt.Sprintf("%s %s", cases.Title(language.English).String(string(typ)), strings.ToUpper(id)),
			Description: fmt.Sprintf("Demo %s transaction", typ),
			Amount:      amount,
			Currency:    defaultCurrency,
			UserName:    users[rng.IntN(len(users))],
			Timestamp:   now.Add(-time.Duration(i) * SyntheticStep),
			Changes:     []FieldChange{{Field: "status", NewValue: string(status)}},
			Metadata:    map[string]string{"source": "synthetic"},
			Synthetic:   true,
		})
	}
	return out
}

// TransactionFilter criterios de filtrado de la bitácora. Campos vacíos no filtran.
type TransactionFilter struct {
	Search string
	Type   TransactionType
	Status TransactionStatus
	Period *Period
}

// FilterTransactions aplica búsqueda libre (sin distinguir mayúsculas), tipo, estado y rango.
// Conserva el orden de entrada.
func FilterTransactions(txs []Transaction, f TransactionFilter) []Transaction {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(f.Search))

	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		if f.Status != "" && tx.Status != f.Status {
			continue
		}
		if f.Period != nil && !f.Period.Contains(tx.Timestamp) {
			continue
		}
		if needle != "" && !matchesSearch(folder, tx, needle) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func matchesSearch(folder cases.Caser, tx Transaction, needle string) bool {
	for _, field := range []string{tx.EntityName, tx.Description, tx.UserName, tx.ID} {
		if strings.Contains(folder.String(field), needle) {
			return true
		}
	}
	return false
}

// TransactionSummary estadísticas de la lista filtrada.
type TransactionSummary struct {
	Total           int
	Completed       int
	Pending         int
	Cancelled       int
	Failed          int
	CompletedAmount decimal.Decimal
}

// SummarizeTransactions cuenta por estado y suma los montos completados.
func SummarizeTransactions(txs []Transaction) TransactionSummary {
	s := TransactionSummary{Total: len(txs), CompletedAmount: decimal.Zero}
	for _, tx := range txs {
		switch tx.Status {
		case TxCompleted:
			s.Completed++
			s.CompletedAmount = s.CompletedAmount.Add(tx.Amount)
		case TxPending:
			s.Pending++
		case TxCancelled:
			s.Cancelled++
		case TxFailed:
			s.Failed++
		}
	}
	s.CompletedAmount = s.CompletedAmount.Round(2)
	return s
}

func currencyOrDefault(c string) string {
	if c == "" {
		return defaultCurrency
	}
	return strings.ToUpper(c)
}
