package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// TaskStatistics avance de "tareas" aproximado a partir del estado de las órdenes.
type TaskStatistics struct {
	FollowUps          int // PENDING, CONFIRMED
	InProgress         int // PROCESSING, PARTIALLY_FULFILLED, SHIPPED, IN_TRANSIT
	Pending            int // DRAFT
	TasksDone          int // FULFILLED, DELIVERED
	Total              int
	ProgressPercent    decimal.Decimal
	CompletedThisMonth int
	CompletedLastMonth int
	// ChangePercent variación de completadas vs mes anterior; nil si el mes anterior no tuvo ninguna.
	ChangePercent *decimal.Decimal
}

// isDone indica si la orden cuenta como tarea terminada.
func isDone(s entity.OrderStatus) bool {
	return s == entity.OrderFulfilled || s == entity.OrderDelivered
}

// ComputeTaskStatistics clasifica las órdenes en los buckets de la tarjeta del dashboard.
// Total es la cantidad de órdenes (incluye canceladas y devueltas, que no tienen bucket).
func ComputeTaskStatistics(orders []entity.Order, now time.Time) TaskStatistics {
	var st TaskStatistics
	st.Total = len(orders)

	loc := now.Location()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	for _, o := range orders {
		switch o.Status {
		case entity.OrderPending, entity.OrderConfirmed:
			st.FollowUps++
		case entity.OrderProcessing, entity.OrderPartiallyFulfilled, entity.OrderShipped, entity.OrderInTransit:
			st.InProgress++
		case entity.OrderDraft:
			st.Pending++
		case entity.OrderFulfilled, entity.OrderDelivered:
			st.TasksDone++
		}

		if !isDone(o.Status) {
			continue
		}
		d := o.OrderDate.In(loc)
		switch {
		case !d.Before(thisMonth) && d.Before(thisMonth.AddDate(0, 1, 0)):
			st.CompletedThisMonth++
		case !d.Before(lastMonth) && d.Before(thisMonth):
			st.CompletedLastMonth++
		}
	}

	st.ProgressPercent = percent(st.TasksDone, st.Total)
	if st.CompletedLastMonth > 0 {
		diff := decimal.NewFromInt(int64(st.CompletedThisMonth - st.CompletedLastMonth))
		change := diff.Div(decimal.NewFromInt(int64(st.CompletedLastMonth))).Mul(hundred).Round(1)
		st.ChangePercent = &change
	}
	return st
}

// TaskOverview tarjeta "Tasks Overview" sobre las tareas persistidas.
type TaskOverview struct {
	Total          int
	ByStatus       map[entity.TaskStatus]int
	ByPriority     map[entity.TaskPriority]int
	Overdue        int // abiertas con fecha límite vencida (o marcadas OVERDUE)
	CompletionRate decimal.Decimal
}

// ComputeTaskOverview cuenta tareas por estado y prioridad.
func ComputeTaskOverview(tasks []entity.Task, now time.Time) TaskOverview {
	ov := TaskOverview{
		Total: len(tasks),
		ByStatus: map[entity.TaskStatus]int{
			entity.TaskPending: 0, entity.TaskInProgress: 0, entity.TaskCompleted: 0, entity.TaskOverdue: 0,
		},
		ByPriority: map[entity.TaskPriority]int{
			entity.PriorityLow: 0, entity.PriorityMedium: 0, entity.PriorityHigh: 0,
		},
	}
	for _, t := range tasks {
		ov.ByStatus[t.Status]++
		ov.ByPriority[t.Priority]++
		if t.IsOverdue(now) {
			ov.Overdue++
		}
	}
	ov.CompletionRate = percent(ov.ByStatus[entity.TaskCompleted], ov.Total)
	return ov
}

// percent part/total*100 redondeado a un decimal; 0 si total es 0.
func percent(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(hundred).
		Round(1)
}
