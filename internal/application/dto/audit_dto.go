package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditQuery parámetros de GET /api/audit/transactions.
type AuditQuery struct {
	Search    string `query:"search"`
	Type      string `query:"type" validate:"omitempty,oneof=order invoice payment refund adjustment transfer"`
	Status    string `query:"status" validate:"omitempty,oneof=completed pending cancelled failed"`
	Range     string `query:"range" validate:"omitempty,oneof=today 7d 30d 90d 1y all custom"`
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	PageRequest
}

// FieldChangeDTO cambio sobre un campo.
type FieldChangeDTO struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value"`
}

// TransactionDTO fila de la bitácora de auditoría.
type TransactionDTO struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Status      string            `json:"status"`
	EntityName  string            `json:"entity_name"`
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"`
	Currency    string            `json:"currency"`
	UserName    string            `json:"user_name"`
	Timestamp   time.Time         `json:"timestamp"`
	Changes     []FieldChangeDTO  `json:"changes"`
	Metadata    map[string]string `json:"metadata"`
	Synthetic   bool              `json:"synthetic"`
}

// TransactionSummaryDTO estadísticas sobre la lista filtrada (antes de paginar).
type TransactionSummaryDTO struct {
	Total           int             `json:"total"`
	Completed       int             `json:"completed"`
	Pending         int             `json:"pending"`
	Cancelled       int             `json:"cancelled"`
	Failed          int             `json:"failed"`
	CompletedAmount decimal.Decimal `json:"completed_amount"`
}

// AuditListResponse lista paginada de transacciones con su resumen.
type AuditListResponse struct {
	Items   []TransactionDTO        `json:"items"`
	Summary TransactionSummaryDTO   `json:"summary"`
	Page    PageResponse            `json:"page"`
	Sources map[string]SourceStatus `json:"sources"`
}
