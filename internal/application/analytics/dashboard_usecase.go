package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain/analytics"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// DashboardUseCase tarjeta de estadísticas de tareas del dashboard.
//
// Fuente de datos: órdenes del backend; cada estado de orden cae en un bucket de "tarea".
type DashboardUseCase struct {
	source repository.BackofficeSource
	log    *logger.Logger
	now    func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(source repository.BackofficeSource, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{source: source, log: log, now: time.Now}
}

// GetTaskStatistics calcula los buckets y la variación de completadas contra el mes anterior.
// Si las órdenes no están disponibles devuelve la tarjeta en cero con OrdersAvailable=false.
func (uc *DashboardUseCase) GetTaskStatistics(ctx context.Context) (*dto.TaskStatisticsDTO, error) {
	var orders []entity.Order
	f := newFanOut(ctx, uc.log)
	fetch(f, SourceOrders, &orders, func(ctx context.Context) ([]entity.Order, error) {
		return uc.source.ListOrders(ctx, repository.OrderQuery{})
	})
	sources := f.wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st := analytics.ComputeTaskStatistics(orders, uc.now())
	return &dto.TaskStatisticsDTO{
		FollowUps:          st.FollowUps,
		InProgress:         st.InProgress,
		Pending:            st.Pending,
		TasksDone:          st.TasksDone,
		Total:              st.Total,
		ProgressPercent:    st.ProgressPercent,
		CompletedThisMonth: st.CompletedThisMonth,
		CompletedLastMonth: st.CompletedLastMonth,
		ChangePercent:      st.ChangePercent,
		OrdersAvailable:    sources[SourceOrders].OK,
	}, nil
}
