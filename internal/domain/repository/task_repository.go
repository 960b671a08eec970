package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// TaskQuery filtros y paginación para listar tareas.
type TaskQuery struct {
	Status   entity.TaskStatus
	Priority entity.TaskPriority
	Limit    int
	Offset   int
}

// TaskRepository define el puerto de persistencia de tareas.
// Get, Update y Delete devuelven domain.ErrNotFound si la tarea no existe.
type TaskRepository interface {
	List(ctx context.Context, q TaskQuery) ([]entity.Task, int, error)
	Get(ctx context.Context, id string) (*entity.Task, error)
	Create(ctx context.Context, t *entity.Task) error
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id string) error
}
