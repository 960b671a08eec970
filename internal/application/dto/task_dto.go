package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskListQuery filtros de GET /api/tasks.
type TaskListQuery struct {
	Status   string `query:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED OVERDUE"`
	Priority string `query:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	PageRequest
}

// CreateTaskRequest entrada para crear una tarea.
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Status      string     `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED OVERDUE"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID  string     `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest entrada para actualizar una tarea (campos opcionales).
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED OVERDUE"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID  *string    `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Overdue     bool       `json:"overdue"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskListResponse lista paginada de tareas.
type TaskListResponse struct {
	Items []TaskResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// TaskOverviewResponse tarjeta "Tasks Overview".
type TaskOverviewResponse struct {
	Total          int             `json:"total"`
	ByStatus       map[string]int  `json:"by_status"`
	ByPriority     map[string]int  `json:"by_priority"`
	Overdue        int             `json:"overdue"`
	CompletionRate decimal.Decimal `json:"completion_rate"`
}
