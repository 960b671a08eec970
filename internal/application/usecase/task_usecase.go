package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/analytics"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// overviewPageSize tamaño de lote al recorrer todas las tareas para el overview.
const overviewPageSize = 100

// TaskUseCase casos de uso de "Mis tareas"; la persistencia es el backend.
type TaskUseCase struct {
	repo repository.TaskRepository
	now  func() time.Time
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo, now: time.Now}
}

// List lista tareas con filtros de estado/prioridad y paginación.
func (uc *TaskUseCase) List(ctx context.Context, q dto.TaskListQuery) (*dto.TaskListResponse, error) {
	q.DefaultPage()
	query := repository.TaskQuery{
		Status:   entity.TaskStatus(strings.ToUpper(q.Status)),
		Priority: entity.TaskPriority(strings.ToUpper(q.Priority)),
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if query.Status != "" && !entity.ValidTaskStatus(query.Status) {
		return nil, fmt.Errorf("%w: estado de tarea desconocido %q", domain.ErrInvalidInput, q.Status)
	}
	if query.Priority != "" && !entity.ValidTaskPriority(query.Priority) {
		return nil, fmt.Errorf("%w: prioridad desconocida %q", domain.ErrInvalidInput, q.Priority)
	}

	list, total, err := uc.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	items := make([]dto.TaskResponse, 0, len(list))
	for i := range list {
		items = append(items, toTaskResponse(&list[i], now))
	}
	return &dto.TaskListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// GetByID obtiene una tarea.
func (uc *TaskUseCase) GetByID(ctx context.Context, id string) (*dto.TaskResponse, error) {
	t, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toTaskResponse(t, uc.now())
	return &out, nil
}

// Create crea una tarea. Estado PENDING y prioridad MEDIUM por defecto.
func (uc *TaskUseCase) Create(ctx context.Context, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: el título es obligatorio", domain.ErrInvalidInput)
	}
	status, err := parseTaskStatus(in.Status, entity.TaskPending)
	if err != nil {
		return nil, err
	}
	priority, err := parseTaskPriority(in.Priority, entity.PriorityMedium)
	if err != nil {
		return nil, err
	}
	t := &entity.Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		Priority:    priority,
		AssigneeID:  in.AssigneeID,
		DueDate:     in.DueDate,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	out := toTaskResponse(t, uc.now())
	return &out, nil
}

// Update aplica los campos presentes en la solicitud.
func (uc *TaskUseCase) Update(ctx context.Context, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	t, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: el título es obligatorio", domain.ErrInvalidInput)
		}
		t.Title = title
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.Status != nil {
		if t.Status, err = parseTaskStatus(*in.Status, t.Status); err != nil {
			return nil, err
		}
	}
	if in.Priority != nil {
		if t.Priority, err = parseTaskPriority(*in.Priority, t.Priority); err != nil {
			return nil, err
		}
	}
	if in.AssigneeID != nil {
		t.AssigneeID = *in.AssigneeID
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	out := toTaskResponse(t, uc.now())
	return &out, nil
}

// Delete elimina una tarea.
func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Overview recorre todas las tareas y arma la tarjeta de resumen.
func (uc *TaskUseCase) Overview(ctx context.Context) (*dto.TaskOverviewResponse, error) {
	var all []entity.Task
	for offset := 0; ; offset += overviewPageSize {
		page, total, err := uc.repo.List(ctx, repository.TaskQuery{Limit: overviewPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < overviewPageSize || len(all) >= total {
			break
		}
	}

	ov := analytics.ComputeTaskOverview(all, uc.now())
	resp := &dto.TaskOverviewResponse{
		Total:          ov.Total,
		ByStatus:       make(map[string]int, len(ov.ByStatus)),
		ByPriority:     make(map[string]int, len(ov.ByPriority)),
		Overdue:        ov.Overdue,
		CompletionRate: ov.CompletionRate,
	}
	for k, v := range ov.ByStatus {
		resp.ByStatus[string(k)] = v
	}
	for k, v := range ov.ByPriority {
		resp.ByPriority[string(k)] = v
	}
	return resp, nil
}

func parseTaskStatus(raw string, def entity.TaskStatus) (entity.TaskStatus, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return def, nil
	}
	s := entity.TaskStatus(raw)
	if !entity.ValidTaskStatus(s) {
		return "", fmt.Errorf("%w: estado de tarea desconocido %q", domain.ErrInvalidInput, raw)
	}
	return s, nil
}

func parseTaskPriority(raw string, def entity.TaskPriority) (entity.TaskPriority, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return def, nil
	}
	p := entity.TaskPriority(raw)
	if !entity.ValidTaskPriority(p) {
		return "", fmt.Errorf("%w: prioridad desconocida %q", domain.ErrInvalidInput, raw)
	}
	return p, nil
}

func toTaskResponse(t *entity.Task, now time.Time) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		AssigneeID:  t.AssigneeID,
		DueDate:     t.DueDate,
		Overdue:     t.IsOverdue(now),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
