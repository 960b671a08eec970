package entity

import "time"

// ReturnStatus estado de una devolución.
type ReturnStatus string

const (
	ReturnPending    ReturnStatus = "PENDING"
	ReturnApproved   ReturnStatus = "APPROVED"
	ReturnReceived   ReturnStatus = "RECEIVED"
	ReturnInspecting ReturnStatus = "INSPECTING"
	ReturnCompleted  ReturnStatus = "COMPLETED"
	ReturnCancelled  ReturnStatus = "CANCELLED"
)

// Return devolución de una orden. CreatedAt cae a ReturnDate si el backend no lo envía.
type Return struct {
	ID           string
	ReturnNumber string
	Status       ReturnStatus
	OrderID      string
	CustomerID   string
	Reason       string
	CreatedAt    time.Time
}

// IsClosed indica si la devolución ya no puede quedar atascada.
func (r Return) IsClosed() bool {
	return r.Status == ReturnCompleted || r.Status == ReturnCancelled
}
