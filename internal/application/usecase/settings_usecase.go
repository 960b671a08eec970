package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// SettingsUseCase CRUD por registro de la configuración de la organización
// (marcas, mercados y localizaciones) con control de concurrencia optimista.
type SettingsUseCase struct {
	brands        repository.BrandRepository
	markets       repository.MarketRepository
	localizations repository.LocalizationRepository
	now           func() time.Time
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(
	brands repository.BrandRepository,
	markets repository.MarketRepository,
	localizations repository.LocalizationRepository,
) *SettingsUseCase {
	return &SettingsUseCase{brands: brands, markets: markets, localizations: localizations, now: time.Now}
}

// ── Marcas ────────────────────────────────────────────────────────────────────

// ListBrands lista todas las marcas.
func (uc *SettingsUseCase) ListBrands(ctx context.Context) (*dto.SettingsListResponse[dto.BrandResponse], error) {
	list, err := uc.brands.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, toBrandResponse(b))
	}
	return &dto.SettingsListResponse[dto.BrandResponse]{Items: items, Total: len(items)}, nil
}

// GetBrand obtiene una marca por ID.
func (uc *SettingsUseCase) GetBrand(ctx context.Context, id string) (*dto.BrandResponse, error) {
	b, err := uc.brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	out := toBrandResponse(b)
	return &out, nil
}

// CreateBrand crea una marca; el código es único (sin distinguir mayúsculas).
func (uc *SettingsUseCase) CreateBrand(ctx context.Context, in dto.BrandRequest) (*dto.BrandResponse, error) {
	name, code, err := requireNameCode(in.Name, in.Code)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueBrand(ctx, code, ""); err != nil {
		return nil, err
	}
	now := uc.now()
	b := &entity.Brand{
		ID:          uuid.New().String(),
		Name:        name,
		Code:        code,
		Description: strings.TrimSpace(in.Description),
		LogoURL:     strings.TrimSpace(in.LogoURL),
		Active:      boolOr(in.Active, true),
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.brands.Create(ctx, b); err != nil {
		return nil, err
	}
	out := toBrandResponse(b)
	return &out, nil
}

// UpdateBrand reemplaza una marca. in.Version debe coincidir con la versión almacenada.
func (uc *SettingsUseCase) UpdateBrand(ctx context.Context, id string, in dto.BrandRequest) (*dto.BrandResponse, error) {
	b, err := uc.brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if err := checkVersion(b.Version, in.Version); err != nil {
		return nil, err
	}
	name, code, err := requireNameCode(in.Name, in.Code)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueBrand(ctx, code, id); err != nil {
		return nil, err
	}
	b.Name = name
	b.Code = code
	b.Description = strings.TrimSpace(in.Description)
	b.LogoURL = strings.TrimSpace(in.LogoURL)
	b.Active = boolOr(in.Active, b.Active)
	b.UpdatedAt = uc.now()
	if err := uc.brands.Update(ctx, b); err != nil {
		return nil, err
	}
	out := toBrandResponse(b)
	return &out, nil
}

// DeleteBrand elimina una marca por ID.
func (uc *SettingsUseCase) DeleteBrand(ctx context.Context, id string) error {
	return uc.brands.Delete(ctx, id)
}

func (uc *SettingsUseCase) ensureUniqueBrand(ctx context.Context, code, selfID string) error {
	existing, err := uc.brands.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: ya existe una marca con código %s", domain.ErrDuplicate, code)
	}
	return nil
}

// ── Mercados ──────────────────────────────────────────────────────────────────

// ListMarkets lista todos los mercados.
func (uc *SettingsUseCase) ListMarkets(ctx context.Context) (*dto.SettingsListResponse[dto.MarketResponse], error) {
	list, err := uc.markets.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MarketResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMarketResponse(m))
	}
	return &dto.SettingsListResponse[dto.MarketResponse]{Items: items, Total: len(items)}, nil
}

// GetMarket obtiene un mercado por ID.
func (uc *SettingsUseCase) GetMarket(ctx context.Context, id string) (*dto.MarketResponse, error) {
	m, err := uc.markets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := toMarketResponse(m)
	return &out, nil
}

// CreateMarket crea un mercado.
func (uc *SettingsUseCase) CreateMarket(ctx context.Context, in dto.MarketRequest) (*dto.MarketResponse, error) {
	name, code, err := requireNameCode(in.Name, in.Code)
	if err != nil {
		return nil, err
	}
	currency, err := requireCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueMarket(ctx, code, ""); err != nil {
		return nil, err
	}
	now := uc.now()
	m := &entity.Market{
		ID:        uuid.New().String(),
		Name:      name,
		Code:      code,
		Region:    strings.TrimSpace(in.Region),
		Currency:  currency,
		Active:    boolOr(in.Active, true),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.markets.Create(ctx, m); err != nil {
		return nil, err
	}
	out := toMarketResponse(m)
	return &out, nil
}

// UpdateMarket reemplaza un mercado. in.Version debe coincidir con la versión almacenada.
func (uc *SettingsUseCase) UpdateMarket(ctx context.Context, id string, in dto.MarketRequest) (*dto.MarketResponse, error) {
	m, err := uc.markets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if err := checkVersion(m.Version, in.Version); err != nil {
		return nil, err
	}
	name, code, err := requireNameCode(in.Name, in.Code)
	if err != nil {
		return nil, err
	}
	currency, err := requireCurrency(in.Currency)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueMarket(ctx, code, id); err != nil {
		return nil, err
	}
	m.Name = name
	m.Code = code
	m.Region = strings.TrimSpace(in.Region)
	m.Currency = currency
	m.Active = boolOr(in.Active, m.Active)
	m.UpdatedAt = uc.now()
	if err := uc.markets.Update(ctx, m); err != nil {
		return nil, err
	}
	out := toMarketResponse(m)
	return &out, nil
}

// DeleteMarket elimina un mercado por ID.
func (uc *SettingsUseCase) DeleteMarket(ctx context.Context, id string) error {
	return uc.markets.Delete(ctx, id)
}

func (uc *SettingsUseCase) ensureUniqueMarket(ctx context.Context, code, selfID string) error {
	existing, err := uc.markets.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: ya existe un mercado con código %s", domain.ErrDuplicate, code)
	}
	return nil
}

// ── Localizaciones ────────────────────────────────────────────────────────────

// ListLocalizations lista todas las localizaciones.
func (uc *SettingsUseCase) ListLocalizations(ctx context.Context) (*dto.SettingsListResponse[dto.LocalizationResponse], error) {
	list, err := uc.localizations.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocalizationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, toLocalizationResponse(l))
	}
	return &dto.SettingsListResponse[dto.LocalizationResponse]{Items: items, Total: len(items)}, nil
}

// GetLocalization obtiene una localización por ID.
func (uc *SettingsUseCase) GetLocalization(ctx context.Context, id string) (*dto.LocalizationResponse, error) {
	l, err := uc.localizations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	out := toLocalizationResponse(l)
	return &out, nil
}

// CreateLocalization crea una localización. La primera creada queda como default;
// si la nueva se marca default, la anterior deja de serlo.
func (uc *SettingsUseCase) CreateLocalization(ctx context.Context, in dto.LocalizationRequest) (*dto.LocalizationResponse, error) {
	lang, country, currency, err := normalizeLocalization(in)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueLocalization(ctx, lang, country, ""); err != nil {
		return nil, err
	}
	existing, err := uc.localizations.List(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	l := &entity.Localization{
		ID:           uuid.New().String(),
		LanguageCode: lang,
		CountryCode:  country,
		Currency:     currency,
		DateFormat:   strings.TrimSpace(in.DateFormat),
		Timezone:     strings.TrimSpace(in.Timezone),
		IsDefault:    in.IsDefault || len(existing) == 0,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if l.IsDefault {
		if err := uc.localizations.ClearDefault(ctx, l.ID); err != nil {
			return nil, err
		}
	}
	if err := uc.localizations.Create(ctx, l); err != nil {
		return nil, err
	}
	out := toLocalizationResponse(l)
	return &out, nil
}

// UpdateLocalization reemplaza una localización. in.Version debe coincidir con la versión almacenada.
// No se puede desmarcar la default directamente: hay que marcar otra.
func (uc *SettingsUseCase) UpdateLocalization(ctx context.Context, id string, in dto.LocalizationRequest) (*dto.LocalizationResponse, error) {
	l, err := uc.localizations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	if err := checkVersion(l.Version, in.Version); err != nil {
		return nil, err
	}
	lang, country, currency, err := normalizeLocalization(in)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueLocalization(ctx, lang, country, id); err != nil {
		return nil, err
	}
	if l.IsDefault && !in.IsDefault {
		return nil, fmt.Errorf("%w: marque otra localización como default", domain.ErrInvalidInput)
	}
	if in.IsDefault && !l.IsDefault {
		if err := uc.localizations.ClearDefault(ctx, l.ID); err != nil {
			return nil, err
		}
	}
	l.LanguageCode = lang
	l.CountryCode = country
	l.Currency = currency
	l.DateFormat = strings.TrimSpace(in.DateFormat)
	l.Timezone = strings.TrimSpace(in.Timezone)
	l.IsDefault = in.IsDefault
	l.UpdatedAt = uc.now()
	if err := uc.localizations.Update(ctx, l); err != nil {
		return nil, err
	}
	out := toLocalizationResponse(l)
	return &out, nil
}

// DeleteLocalization elimina una localización. La default no se puede eliminar.
func (uc *SettingsUseCase) DeleteLocalization(ctx context.Context, id string) error {
	l, err := uc.localizations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if l == nil {
		return domain.ErrNotFound
	}
	if l.IsDefault {
		return fmt.Errorf("%w: no se puede eliminar la localización default", domain.ErrInvalidInput)
	}
	return uc.localizations.Delete(ctx, id)
}

func (uc *SettingsUseCase) ensureUniqueLocalization(ctx context.Context, lang, country, selfID string) error {
	existing, err := uc.localizations.GetByCode(ctx, lang, country)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: ya existe la localización %s", domain.ErrDuplicate, existing.Code())
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func requireNameCode(name, code string) (string, string, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))
	if name == "" || code == "" {
		return "", "", fmt.Errorf("%w: nombre y código son obligatorios", domain.ErrInvalidInput)
	}
	return name, code, nil
}

func requireCurrency(c string) (string, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if len(c) != 3 {
		return "", fmt.Errorf("%w: moneda debe ser un código ISO de 3 letras", domain.ErrInvalidInput)
	}
	return c, nil
}

func normalizeLocalization(in dto.LocalizationRequest) (lang, country, currency string, err error) {
	lang = strings.ToLower(strings.TrimSpace(in.LanguageCode))
	country = strings.ToUpper(strings.TrimSpace(in.CountryCode))
	if lang == "" {
		return "", "", "", fmt.Errorf("%w: language_code es obligatorio", domain.ErrInvalidInput)
	}
	currency, err = requireCurrency(in.Currency)
	return lang, country, currency, err
}

// checkVersion compara la versión enviada por el cliente con la almacenada.
func checkVersion(stored, sent int) error {
	if sent != stored {
		return fmt.Errorf("%w: versión %d, actual %d", domain.ErrConflict, sent, stored)
	}
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func toBrandResponse(b *entity.Brand) dto.BrandResponse {
	return dto.BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Code:        b.Code,
		Description: b.Description,
		LogoURL:     b.LogoURL,
		Active:      b.Active,
		Version:     b.Version,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toMarketResponse(m *entity.Market) dto.MarketResponse {
	return dto.MarketResponse{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		Region:    m.Region,
		Currency:  m.Currency,
		Active:    m.Active,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toLocalizationResponse(l *entity.Localization) dto.LocalizationResponse {
	return dto.LocalizationResponse{
		ID:           l.ID,
		Code:         l.Code(),
		LanguageCode: l.LanguageCode,
		CountryCode:  l.CountryCode,
		Currency:     l.Currency,
		DateFormat:   l.DateFormat,
		Timezone:     l.Timezone,
		IsDefault:    l.IsDefault,
		Version:      l.Version,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
