package dto

import "github.com/shopspring/decimal"

// TaskStatisticsDTO respuesta de GET /api/dashboard/tasks.
// Las "tareas" se aproximan con el estado de las órdenes.
type TaskStatisticsDTO struct {
	FollowUps          int              `json:"follow_ups"`
	InProgress         int              `json:"in_progress"`
	Pending            int              `json:"pending"`
	TasksDone          int              `json:"tasks_done"`
	Total              int              `json:"total"`
	ProgressPercent    decimal.Decimal  `json:"progress_percent"`
	CompletedThisMonth int              `json:"completed_this_month"`
	CompletedLastMonth int              `json:"completed_last_month"`
	ChangePercent      *decimal.Decimal `json:"change_percent"`
	OrdersAvailable    bool             `json:"orders_available"`
}
