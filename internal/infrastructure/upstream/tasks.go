package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// TaskRepository implementa repository.TaskRepository sobre /tasks del backend.
type TaskRepository struct {
	client *Client
}

// NewTaskRepository construye el repositorio de tareas.
func NewTaskRepository(client *Client) *TaskRepository {
	return &TaskRepository{client: client}
}

var _ repository.TaskRepository = (*TaskRepository)(nil)

// List devuelve una página de tareas y el total informado por el backend.
// Si el backend responde un arreglo plano, el total es el largo de la página más el offset.
func (r *TaskRepository) List(ctx context.Context, q repository.TaskQuery) ([]entity.Task, int, error) {
	params := url.Values{}
	if q.Status != "" {
		params.Set("status", string(q.Status))
	}
	if q.Priority != "" {
		params.Set("priority", string(q.Priority))
	}
	take := q.Limit
	if take <= 0 {
		take = r.client.pageSize
	}
	params.Set("skip", strconv.Itoa(q.Offset))
	params.Set("take", strconv.Itoa(take))

	raw, err := r.client.do(ctx, pathTasks, http.MethodGet, "/"+pathTasks, params, nil)
	if err != nil {
		return nil, 0, err
	}
	page, err := decodeList[taskRecord](raw)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", pathTasks, err)
	}
	r.client.warnPartial(pathTasks, page.Dropped, page.Coerced)
	total := page.Total
	if total < 0 {
		total = q.Offset + len(page.Items)
	}
	return mapRecords(page.Items, taskRecord.toEntity), total, nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (*entity.Task, error) {
	raw, err := r.client.do(ctx, pathTasks, http.MethodGet, taskPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeTask(raw)
}

// Create envía la tarea y copia en t los campos asignados por el backend (id, fechas).
func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	raw, err := r.client.do(ctx, pathTasks, http.MethodPost, "/"+pathTasks, nil, newTaskPayload(t))
	if err != nil {
		return err
	}
	return mergeTask(raw, t)
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	raw, err := r.client.do(ctx, pathTasks, http.MethodPatch, taskPath(t.ID), nil, newTaskPayload(t))
	if err != nil {
		return err
	}
	return mergeTask(raw, t)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.do(ctx, pathTasks, http.MethodDelete, taskPath(id), nil, nil)
	return err
}

func taskPath(id string) string {
	return "/" + pathTasks + "/" + url.PathEscape(id)
}

// decodeTask acepta la tarea plana o envuelta en {"data": {...}}.
func decodeTask(raw []byte) (*entity.Task, error) {
	var wrapped struct {
		Data *taskRecord `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		t := wrapped.Data.toEntity()
		return &t, nil
	}
	var rec taskRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("upstream: decodificar tarea: %w", err)
	}
	t := rec.toEntity()
	return &t, nil
}

// mergeTask completa t con la respuesta; un cuerpo vacío deja t sin cambios.
func mergeTask(raw []byte, t *entity.Task) error {
	if len(raw) == 0 {
		return nil
	}
	got, err := decodeTask(raw)
	if err != nil {
		return err
	}
	if got.ID != "" {
		t.ID = got.ID
	}
	if !got.CreatedAt.IsZero() {
		t.CreatedAt = got.CreatedAt
	}
	if !got.UpdatedAt.IsZero() {
		t.UpdatedAt = got.UpdatedAt
	}
	return nil
}
