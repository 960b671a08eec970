package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// Los registros del backend llegan con formas laxas: números como string,
// fechas con o sin zona y campos opcionales. Los defaults se aplican aquí una sola vez.
// Un valor que no se puede interpretar no invalida el registro: el campo queda en
// su default y se marca como coercionado para el log.

// flexInt acepta 5, "5" o null. Valid distingue un 0 explícito de la ausencia.
type flexInt struct {
	N     int
	Valid bool
	bad   bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	*f = flexInt{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			f.bad = true
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			f.bad = true
			return nil
		}
		f.N, f.Valid = int(d.IntPart()), true
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		f.bad = true
		return nil
	}
	if i, err := n.Int64(); err == nil {
		f.N, f.Valid = int(i), true
		return nil
	}
	fl, err := n.Float64()
	if err != nil {
		f.bad = true
		return nil
	}
	f.N, f.Valid = int(fl), true
	return nil
}

// flexDecimal acepta 12.5, "12.5" o null (cero).
type flexDecimal struct {
	decimal.Decimal
	bad bool
}

func (f *flexDecimal) UnmarshalJSON(b []byte) error {
	f.Decimal, f.bad = decimal.Zero, false
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		f.bad = true
		return nil
	}
	f.Decimal = d
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// flexTime acepta RFC3339 con o sin fracción, fecha-hora sin zona (UTC) o solo fecha.
type flexTime struct {
	time.Time
	bad bool
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	*f = flexTime{}
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		f.bad = true
		return nil
	}
	t, err := parseFlexTime(s)
	if err != nil {
		f.bad = true
		return nil
	}
	f.Time = t
	return nil
}

func parseFlexTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", s)
}

func (f *flexTime) ptr() *time.Time {
	if f == nil || f.Time.IsZero() {
		return nil
	}
	t := f.Time
	return &t
}

// flexID acepta ids numéricos o string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	*f = flexID(string(b))
	return nil
}

type namedRef struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

type inventoryRecord struct {
	ID           flexID   `json:"id"`
	ProductID    flexID   `json:"productId"`
	WarehouseID  flexID   `json:"warehouseId"`
	Quantity     flexInt  `json:"quantity"`
	ReorderPoint flexInt  `json:"reorderPoint"`
	UpdatedAt    flexTime `json:"updatedAt"`
}

func (r inventoryRecord) toEntity() entity.InventoryLevel {
	lvl := entity.InventoryLevel{
		ID:           string(r.ID),
		ProductID:    string(r.ProductID),
		WarehouseID:  string(r.WarehouseID),
		ReorderPoint: entity.DefaultReorderPoint,
		UpdatedAt:    r.UpdatedAt.Time,
	}
	if r.Quantity.Valid {
		lvl.Quantity = r.Quantity.N
	}
	// un 0 explícito se respeta; ausente o ilegible toma el default
	if r.ReorderPoint.Valid {
		lvl.ReorderPoint = r.ReorderPoint.N
	}
	return lvl
}

func (r inventoryRecord) coerced() int {
	return countBad(r.Quantity.bad, r.ReorderPoint.bad, r.UpdatedAt.bad)
}

type productRecord struct {
	ID        flexID    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Category  *namedRef `json:"category"`
	CreatedAt flexTime  `json:"createdAt"`
}

func (r productRecord) toEntity() entity.Product {
	p := entity.Product{
		ID:        string(r.ID),
		SKU:       r.SKU,
		Name:      r.Name,
		CreatedAt: r.CreatedAt.Time,
	}
	if r.Category != nil {
		p.Category = r.Category.Name
	}
	return p
}

func (r productRecord) coerced() int { return countBad(r.CreatedAt.bad) }

type warehouseRecord struct {
	ID       flexID `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Location string `json:"location"`
}

func (r warehouseRecord) toEntity() entity.Warehouse {
	return entity.Warehouse{ID: string(r.ID), Name: r.Name, Code: r.Code, Location: r.Location}
}

type customerRecord struct {
	ID    flexID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r customerRecord) toEntity() entity.Customer {
	return entity.Customer{ID: string(r.ID), Name: r.Name, Email: r.Email}
}

type orderLineRecord struct {
	ProductID flexID    `json:"productId"`
	Product   *namedRef `json:"product"`
	Quantity  flexInt   `json:"quantity"`
}

type orderRecord struct {
	ID          flexID            `json:"id"`
	OrderNumber string            `json:"orderNumber"`
	Status      string            `json:"status"`
	TotalAmount flexDecimal       `json:"totalAmount"`
	Currency    string            `json:"currency"`
	CustomerID  flexID            `json:"customerId"`
	Customer    *namedRef         `json:"customer"`
	OrderDate   flexTime          `json:"orderDate"`
	CreatedAt   flexTime          `json:"createdAt"`
	Lines       []orderLineRecord `json:"lines"`
	Items       []orderLineRecord `json:"items"`
}

func (r orderRecord) toEntity() entity.Order {
	o := entity.Order{
		ID:          string(r.ID),
		OrderNumber: r.OrderNumber,
		Status:      entity.OrderStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		TotalAmount: r.TotalAmount.Decimal,
		Currency:    r.Currency,
		CustomerID:  string(r.CustomerID),
		OrderDate:   r.OrderDate.Time,
		CreatedAt:   r.CreatedAt.Time,
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = o.CreatedAt
	}
	if r.Customer != nil {
		o.CustomerName = r.Customer.Name
		if o.CustomerID == "" {
			o.CustomerID = string(r.Customer.ID)
		}
	}
	lines := r.Lines
	if len(lines) == 0 {
		lines = r.Items
	}
	o.Lines = make([]entity.OrderLine, 0, len(lines))
	for _, l := range lines {
		pid := string(l.ProductID)
		if pid == "" && l.Product != nil {
			pid = string(l.Product.ID)
		}
		o.Lines = append(o.Lines, entity.OrderLine{ProductID: pid, Quantity: l.Quantity.N})
	}
	return o
}

func (r orderRecord) coerced() int {
	n := countBad(r.TotalAmount.bad, r.OrderDate.bad, r.CreatedAt.bad)
	for _, l := range r.Lines {
		n += countBad(l.Quantity.bad)
	}
	for _, l := range r.Items {
		n += countBad(l.Quantity.bad)
	}
	return n
}

type returnRecord struct {
	ID           flexID   `json:"id"`
	ReturnNumber string   `json:"returnNumber"`
	Status       string   `json:"status"`
	OrderID      flexID   `json:"orderId"`
	CustomerID   flexID   `json:"customerId"`
	Reason       string   `json:"reason"`
	CreatedAt    flexTime `json:"createdAt"`
	ReturnDate   flexTime `json:"returnDate"`
}

func (r returnRecord) toEntity() entity.Return {
	ret := entity.Return{
		ID:           string(r.ID),
		ReturnNumber: r.ReturnNumber,
		Status:       entity.ReturnStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		OrderID:      string(r.OrderID),
		CustomerID:   string(r.CustomerID),
		Reason:       r.Reason,
		CreatedAt:    r.CreatedAt.Time,
	}
	if ret.CreatedAt.IsZero() {
		ret.CreatedAt = r.ReturnDate.Time
	}
	return ret
}

func (r returnRecord) coerced() int { return countBad(r.CreatedAt.bad, r.ReturnDate.bad) }

type invoiceRecord struct {
	ID            flexID      `json:"id"`
	InvoiceNumber string      `json:"invoiceNumber"`
	Status        string      `json:"status"`
	TotalAmount   flexDecimal `json:"totalAmount"`
	Currency      string      `json:"currency"`
	CustomerID    flexID      `json:"customerId"`
	OrderID       flexID      `json:"orderId"`
	IssueDate     flexTime    `json:"issueDate"`
	CreatedAt     flexTime    `json:"createdAt"`
}

func (r invoiceRecord) toEntity() entity.Invoice {
	return entity.Invoice{
		ID:            string(r.ID),
		InvoiceNumber: r.InvoiceNumber,
		Status:        entity.InvoiceStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		TotalAmount:   r.TotalAmount.Decimal,
		Currency:      r.Currency,
		CustomerID:    string(r.CustomerID),
		OrderID:       string(r.OrderID),
		IssueDate:     r.IssueDate.Time,
		CreatedAt:     r.CreatedAt.Time,
	}
}

func (r invoiceRecord) coerced() int {
	return countBad(r.TotalAmount.bad, r.IssueDate.bad, r.CreatedAt.bad)
}

type taskRecord struct {
	ID          flexID    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	AssigneeID  flexID    `json:"assigneeId"`
	DueDate     *flexTime `json:"dueDate"`
	CreatedAt   flexTime  `json:"createdAt"`
	UpdatedAt   flexTime  `json:"updatedAt"`
}

func (r taskRecord) toEntity() entity.Task {
	return entity.Task{
		ID:          string(r.ID),
		Title:       r.Title,
		Description: r.Description,
		Status:      entity.TaskStatus(strings.ToUpper(r.Status)),
		Priority:    entity.TaskPriority(strings.ToUpper(r.Priority)),
		AssigneeID:  string(r.AssigneeID),
		DueDate:     r.DueDate.ptr(),
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   r.UpdatedAt.Time,
	}
}

func (r taskRecord) coerced() int {
	n := countBad(r.CreatedAt.bad, r.UpdatedAt.bad)
	if r.DueDate != nil && r.DueDate.bad {
		n++
	}
	return n
}

// taskPayload cuerpo de POST/PATCH /tasks.
type taskPayload struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  string     `json:"assigneeId,omitempty"`
	DueDate     *time.Time `json:"dueDate"`
}

func newTaskPayload(t *entity.Task) taskPayload {
	return taskPayload{
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		AssigneeID:  t.AssigneeID,
		DueDate:     t.DueDate,
	}
}

// coercible registro que informa cuántos campos tomaron su default por no ser legibles.
type coercible interface {
	coerced() int
}

func countBad(flags ...bool) int {
	n := 0
	for _, b := range flags {
		if b {
			n++
		}
	}
	return n
}

// mapRecords convierte registros de wire a entidades.
func mapRecords[R any, E any](in []R, conv func(R) E) []E {
	out := make([]E, 0, len(in))
	for _, r := range in {
		out = append(out, conv(r))
	}
	return out
}

// formatQueryTime serializa un límite de fecha para startDate/endDate.
func formatQueryTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
