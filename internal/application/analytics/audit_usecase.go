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

// defaultAuditRange período por defecto de la bitácora.
const defaultAuditRange = analytics.PeriodAll

// AuditConfig opciones de la bitácora de auditoría.
// SyntheticFiller agrega transacciones de demostración marcadas como tales.
type AuditConfig struct {
	SyntheticFiller bool
	SyntheticSeed   uint64
}

// AuditUseCase bitácora de transacciones normalizada desde órdenes y facturas proforma.
type AuditUseCase struct {
	source repository.BackofficeSource
	cfg    AuditConfig
	log    *logger.Logger
	now    func() time.Time
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(source repository.BackofficeSource, cfg AuditConfig, log *logger.Logger) *AuditUseCase {
	return &AuditUseCase{source: source, cfg: cfg, log: log, now: time.Now}
}

// ListTransactions normaliza, filtra, resume y pagina las transacciones.
// El resumen se calcula sobre la lista filtrada completa, antes de paginar.
func (uc *AuditUseCase) ListTransactions(ctx context.Context, q dto.AuditQuery) (*dto.AuditListResponse, error) {
	now := uc.now()
	filter := analytics.TransactionFilter{
		Search: q.Search,
		Type:   analytics.TransactionType(q.Type),
		Status: analytics.TransactionStatus(q.Status),
	}
	if q.Range != "" || q.StartDate != "" || q.EndDate != "" {
		p, err := analytics.ResolvePeriod(q.Range, q.StartDate, q.EndDate, defaultAuditRange, now)
		if err != nil {
			return nil, err
		}
		if !p.All {
			filter.Period = &p
		}
	}

	var (
		orders    []entity.Order
		invoices  []entity.Invoice
		customers []entity.Customer
	)
	f := newFanOut(ctx, uc.log)
	fetch(f, SourceOrders, &orders, func(ctx context.Context) ([]entity.Order, error) {
		return uc.source.ListOrders(ctx, repository.OrderQuery{})
	})
	fetch(f, SourceInvoices, &invoices, uc.source.ListInvoices)
	fetch(f, SourceCustomers, &customers, uc.source.ListCustomers)
	sources := f.wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var filler []analytics.Transaction
	if uc.cfg.SyntheticFiller {
		filler = analytics.SyntheticTransactions(analytics.SyntheticCount, uc.cfg.SyntheticSeed, now)
	}

	all := analytics.NormalizeTransactions(orders, invoices, customers, filler)
	filtered := analytics.FilterTransactions(all, filter)
	summary := analytics.SummarizeTransactions(filtered)

	q.DefaultPage()
	page := paginate(filtered, q.Limit, q.Offset)

	items := make([]dto.TransactionDTO, 0, len(page))
	for _, tx := range page {
		items = append(items, toTransactionDTO(tx))
	}
	return &dto.AuditListResponse{
		Items: items,
		Summary: dto.TransactionSummaryDTO{
			Total:           summary.Total,
			Completed:       summary.Completed,
			Pending:         summary.Pending,
			Cancelled:       summary.Cancelled,
			Failed:          summary.Failed,
			CompletedAmount: summary.CompletedAmount,
		},
		Page:    dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: len(filtered)},
		Sources: sources,
	}, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func toTransactionDTO(tx analytics.Transaction) dto.TransactionDTO {
	changes := make([]dto.FieldChangeDTO, 0, len(tx.Changes))
	for _, c := range tx.Changes {
		changes = append(changes, dto.FieldChangeDTO{Field: c.Field, OldValue: c.OldValue, NewValue: c.NewValue})
	}
	return dto.TransactionDTO{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Status:      string(tx.Status),
		EntityName:  tx.EntityName,
		Description: tx.Description,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		UserName:    tx.UserName,
		Timestamp:   tx.Timestamp,
		Changes:     changes,
		Metadata:    tx.Metadata,
		Synthetic:   tx.Synthetic,
	}
}
