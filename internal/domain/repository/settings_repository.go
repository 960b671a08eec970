package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// BrandRepository define el puerto de persistencia para Brand.
// Update solo aplica si Version coincide con la almacenada (y la incrementa en el registro);
// si no, devuelve domain.ErrConflict.
type BrandRepository interface {
	Create(ctx context.Context, b *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	GetByCode(ctx context.Context, code string) (*entity.Brand, error)
	List(ctx context.Context) ([]*entity.Brand, error)
	Update(ctx context.Context, b *entity.Brand) error
	Delete(ctx context.Context, id string) error
}

// MarketRepository define el puerto de persistencia para Market.
type MarketRepository interface {
	Create(ctx context.Context, m *entity.Market) error
	GetByID(ctx context.Context, id string) (*entity.Market, error)
	GetByCode(ctx context.Context, code string) (*entity.Market, error)
	List(ctx context.Context) ([]*entity.Market, error)
	Update(ctx context.Context, m *entity.Market) error
	Delete(ctx context.Context, id string) error
}

// LocalizationRepository define el puerto de persistencia para Localization.
// ClearDefault desmarca la localización por defecto vigente, excepto exceptID.
type LocalizationRepository interface {
	Create(ctx context.Context, l *entity.Localization) error
	GetByID(ctx context.Context, id string) (*entity.Localization, error)
	GetByCode(ctx context.Context, languageCode, countryCode string) (*entity.Localization, error)
	List(ctx context.Context) ([]*entity.Localization, error)
	Update(ctx context.Context, l *entity.Localization) error
	Delete(ctx context.Context, id string) error
	ClearDefault(ctx context.Context, exceptID string) error
}
