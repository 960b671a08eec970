package entity

import "time"

// TaskStatus estado de una tarea (persistida en el backend).
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskOverdue    TaskStatus = "OVERDUE"
)

// TaskPriority prioridad de una tarea.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// ValidTaskStatus indica si s es un estado conocido.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskOverdue:
		return true
	}
	return false
}

// ValidTaskPriority indica si p es una prioridad conocida.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task tarea asignable del módulo "Mis tareas".
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	AssigneeID  string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue indica si la tarea sigue abierta con la fecha límite vencida.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status == TaskCompleted {
		return false
	}
	if t.Status == TaskOverdue {
		return true
	}
	return t.DueDate != nil && t.DueDate.Before(now)
}
