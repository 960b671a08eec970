// Package analytics contiene los casos de uso del backoffice que leen varias
// colecciones del backend en paralelo y delegan el cálculo en domain/analytics.
package analytics

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// Nombres de las colecciones del backend (logs y estado de fuentes).
const (
	SourceInventory  = "inventory"
	SourceProducts   = "products"
	SourceWarehouses = "warehouses"
	SourceCustomers  = "customers"
	SourceOrders     = "orders"
	SourceReturns    = "returns"
	SourceInvoices   = "proforma-invoices"
)

// fanOut lee varias colecciones en paralelo. Cada fuente está aislada: si falla
// (error o panic) queda como lista vacía, se registra un warning y las demás siguen.
type fanOut struct {
	ctx context.Context
	log *logger.Logger
	wg  conc.WaitGroup

	mu     sync.Mutex
	status map[string]dto.SourceStatus
}

func newFanOut(ctx context.Context, log *logger.Logger) *fanOut {
	return &fanOut{ctx: ctx, log: log.WithTrace(ctx), status: make(map[string]dto.SourceStatus)}
}

// fetch lanza la lectura de una fuente; dst queda con el resultado o con una lista vacía.
func fetch[T any](f *fanOut, name string, dst *[]T, read func(context.Context) ([]T, error)) {
	*dst = []T{}
	f.wg.Go(func() {
		var (
			items []T
			err   error
			pc    panics.Catcher
		)
		pc.Try(func() { items, err = read(f.ctx) })
		if r := pc.Recovered(); r != nil {
			err = r.AsError()
		}
		f.record(name, err)
		if err == nil && items != nil {
			*dst = items
		}
	})
}

func (f *fanOut) record(name string, err error) {
	st := dto.SourceStatus{OK: err == nil}
	if err != nil {
		st.Error = err.Error()
		f.log.Warn().Err(err).Str("source", name).Msg("fuente no disponible, se usa lista vacía")
	}
	f.mu.Lock()
	f.status[name] = st
	f.mu.Unlock()
}

// wait espera todas las lecturas y devuelve el estado por fuente.
func (f *fanOut) wait() map[string]dto.SourceStatus {
	f.wg.Wait()
	return f.status
}
