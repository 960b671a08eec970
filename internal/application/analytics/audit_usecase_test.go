package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

func TestAuditUseCase_ListTransactions(t *testing.T) {
	uc := NewAuditUseCase(sampleSource(), AuditConfig{}, logger.Nop())
	uc.now = clock

	resp, err := uc.ListTransactions(context.Background(), dto.AuditQuery{})
	require.NoError(t, err)

	require.Len(t, resp.Items, 3)
	assert.Equal(t, "invoice-i1", resp.Items[0].ID, "más reciente primero")
	assert.Equal(t, "order-o2", resp.Items[1].ID)
	assert.Equal(t, "order-o1", resp.Items[2].ID)
	assert.Equal(t, "Acme", resp.Items[0].UserName)
	for _, it := range resp.Items {
		assert.False(t, it.Synthetic)
	}

	assert.Equal(t, 3, resp.Summary.Total)
	assert.Equal(t, 2, resp.Summary.Completed)
	assert.Equal(t, 1, resp.Summary.Pending)
	assert.Equal(t, "230", resp.Summary.CompletedAmount.String())
	assert.Equal(t, 3, resp.Page.Total)
	assert.Equal(t, 20, resp.Page.Limit)
}

func TestAuditUseCase_FiltrosYPaginacion(t *testing.T) {
	uc := NewAuditUseCase(sampleSource(), AuditConfig{}, logger.Nop())
	uc.now = clock

	resp, err := uc.ListTransactions(context.Background(), dto.AuditQuery{
		Type:        "order",
		PageRequest: dto.PageRequest{Limit: 1, Offset: 1},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "order-o1", resp.Items[0].ID)
	assert.Equal(t, 2, resp.Summary.Total, "el resumen cubre todo lo filtrado, no solo la página")
	assert.Equal(t, 2, resp.Page.Total)

	resp, err = uc.ListTransactions(context.Background(), dto.AuditQuery{Range: "7d", Search: "so-2"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "order-o2", resp.Items[0].ID)

	resp, err = uc.ListTransactions(context.Background(), dto.AuditQuery{PageRequest: dto.PageRequest{Offset: 50}})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.NotNil(t, resp.Items)
}

func TestAuditUseCase_RellenoSintetico(t *testing.T) {
	cfg := AuditConfig{SyntheticFiller: true, SyntheticSeed: 7}
	uc := NewAuditUseCase(sampleSource(), cfg, logger.Nop())
	uc.now = clock

	first, err := uc.ListTransactions(context.Background(), dto.AuditQuery{PageRequest: dto.PageRequest{Limit: 100}})
	require.NoError(t, err)
	second, err := uc.ListTransactions(context.Background(), dto.AuditQuery{PageRequest: dto.PageRequest{Limit: 100}})
	require.NoError(t, err)

	assert.Equal(t, 53, first.Summary.Total)
	assert.Equal(t, first.Items, second.Items, "misma semilla, misma bitácora")

	synthetic := 0
	for _, it := range first.Items {
		if it.Synthetic {
			synthetic++
		}
	}
	assert.Equal(t, 50, synthetic)
}

func TestAuditUseCase_FuentesCaidas(t *testing.T) {
	src := sampleSource()
	src.fail = map[string]bool{SourceInvoices: true, SourceCustomers: true}
	uc := NewAuditUseCase(src, AuditConfig{}, logger.Nop())
	uc.now = clock

	resp, err := uc.ListTransactions(context.Background(), dto.AuditQuery{})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "System", resp.Items[0].UserName, "sin clientes el usuario cae a System")
	assert.False(t, resp.Sources[SourceInvoices].OK)
}

func TestAuditUseCase_RangoInvalido(t *testing.T) {
	uc := NewAuditUseCase(sampleSource(), AuditConfig{}, logger.Nop())
	uc.now = clock

	_, err := uc.ListTransactions(context.Background(), dto.AuditQuery{StartDate: "2026-05-01", EndDate: "2026-04-01"})
	assert.Error(t, err)
}
