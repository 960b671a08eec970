package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// memBrands / memMarkets / memLocalizations repositorios en memoria con la misma
// semántica de versión que el store de Postgres.
type memBrands struct {
	mu   sync.Mutex
	rows map[string]entity.Brand
}

var _ repository.BrandRepository = (*memBrands)(nil)

func newMemBrands() *memBrands { return &memBrands{rows: map[string]entity.Brand{}} }

func (r *memBrands) Create(_ context.Context, b *entity.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[b.ID] = *b
	return nil
}

func (r *memBrands) GetByID(_ context.Context, id string) (*entity.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *memBrands) GetByCode(_ context.Context, code string) (*entity.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.rows {
		if strings.EqualFold(b.Code, code) {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *memBrands) List(_ context.Context) ([]*entity.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Brand, 0, len(r.rows))
	for _, b := range r.rows {
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memBrands) Update(_ context.Context, b *entity.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != b.Version {
		return domain.ErrConflict
	}
	b.Version++
	r.rows[b.ID] = *b
	return nil
}

func (r *memBrands) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memMarkets struct {
	mu   sync.Mutex
	rows map[string]entity.Market
}

var _ repository.MarketRepository = (*memMarkets)(nil)

func newMemMarkets() *memMarkets { return &memMarkets{rows: map[string]entity.Market{}} }

func (r *memMarkets) Create(_ context.Context, m *entity.Market) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[m.ID] = *m
	return nil
}

func (r *memMarkets) GetByID(_ context.Context, id string) (*entity.Market, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memMarkets) GetByCode(_ context.Context, code string) (*entity.Market, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.rows {
		if strings.EqualFold(m.Code, code) {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *memMarkets) List(_ context.Context) ([]*entity.Market, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Market, 0, len(r.rows))
	for _, m := range r.rows {
		m := m
		out = append(out, &m)
	}
	return out, nil
}

func (r *memMarkets) Update(_ context.Context, m *entity.Market) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[m.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != m.Version {
		return domain.ErrConflict
	}
	m.Version++
	r.rows[m.ID] = *m
	return nil
}

func (r *memMarkets) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memLocalizations struct {
	mu   sync.Mutex
	rows map[string]entity.Localization
}

var _ repository.LocalizationRepository = (*memLocalizations)(nil)

func newMemLocalizations() *memLocalizations {
	return &memLocalizations{rows: map[string]entity.Localization{}}
}

func (r *memLocalizations) Create(_ context.Context, l *entity.Localization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[l.ID] = *l
	return nil
}

func (r *memLocalizations) GetByID(_ context.Context, id string) (*entity.Localization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *memLocalizations) GetByCode(_ context.Context, lang, country string) (*entity.Localization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.rows {
		if l.LanguageCode == lang && l.CountryCode == country {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *memLocalizations) List(_ context.Context) ([]*entity.Localization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Localization, 0, len(r.rows))
	for _, l := range r.rows {
		l := l
		out = append(out, &l)
	}
	return out, nil
}

func (r *memLocalizations) Update(_ context.Context, l *entity.Localization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[l.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != l.Version {
		return domain.ErrConflict
	}
	l.Version++
	r.rows[l.ID] = *l
	return nil
}

func (r *memLocalizations) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memLocalizations) ClearDefault(_ context.Context, exceptID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.rows {
		if id != exceptID && l.IsDefault {
			l.IsDefault = false
			l.Version++
			r.rows[id] = l
		}
	}
	return nil
}

func (r *memLocalizations) defaults() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.rows {
		if l.IsDefault {
			n++
		}
	}
	return n
}

// memTasks TaskRepository en memoria.
type memTasks struct {
	mu    sync.Mutex
	rows  []entity.Task
	seq   int
	calls int
}

var _ repository.TaskRepository = (*memTasks)(nil)

func (r *memTasks) List(_ context.Context, q repository.TaskQuery) ([]entity.Task, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var filtered []entity.Task
	for _, t := range r.rows {
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if q.Priority != "" && t.Priority != q.Priority {
			continue
		}
		filtered = append(filtered, t)
	}
	total := len(filtered)
	if q.Offset >= total {
		return []entity.Task{}, total, nil
	}
	end := q.Offset + q.Limit
	if q.Limit <= 0 || end > total {
		end = total
	}
	return append([]entity.Task(nil), filtered[q.Offset:end]...), total, nil
}

func (r *memTasks) Get(_ context.Context, id string) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.rows {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memTasks) Create(_ context.Context, t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = fmt.Sprintf("task-%d", r.seq)
	r.rows = append(r.rows, *t)
	return nil
}

func (r *memTasks) Update(_ context.Context, t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == t.ID {
			r.rows[i] = *t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memTasks) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
