package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.MarketRepository = (*MarketRepo)(nil)

const marketColumns = `id, name, code, region, currency, active, version, created_at, updated_at`

// MarketRepo implementación del puerto MarketRepository sobre PostgreSQL.
type MarketRepo struct {
	db Querier
}

// NewMarketRepository construye el adaptador de persistencia para mercados.
func NewMarketRepository(db Querier) *MarketRepo {
	return &MarketRepo{db: db}
}

func (r *MarketRepo) Create(ctx context.Context, m *entity.Market) error {
	query := `
		INSERT INTO markets (` + marketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		m.ID, m.Name, m.Code, m.Region, m.Currency, m.Active, m.Version, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert market", err)
	}
	return nil
}

func (r *MarketRepo) GetByID(ctx context.Context, id string) (*entity.Market, error) {
	return r.getOne(ctx, `SELECT `+marketColumns+` FROM markets WHERE id::text = $1`, id)
}

func (r *MarketRepo) GetByCode(ctx context.Context, code string) (*entity.Market, error) {
	return r.getOne(ctx, `SELECT `+marketColumns+` FROM markets WHERE upper(code) = upper($1)`, code)
}

func (r *MarketRepo) getOne(ctx context.Context, query, arg string) (*entity.Market, error) {
	m, err := scanMarket(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get market: %w", err)
	}
	return m, nil
}

func (r *MarketRepo) List(ctx context.Context) ([]*entity.Market, error) {
	rows, err := r.db.Query(ctx, `SELECT `+marketColumns+` FROM markets ORDER BY name, code`)
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	defer rows.Close()
	list := []*entity.Market{}
	for rows.Next() {
		m, err := scanMarket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *MarketRepo) Update(ctx context.Context, m *entity.Market) error {
	query := `
		UPDATE markets SET name = $3, code = $4, region = $5, currency = $6, active = $7,
			updated_at = $8, version = version + 1
		WHERE id::text = $1 AND version = $2`
	cmd, err := r.db.Exec(ctx, query, m.ID, m.Version, m.Name, m.Code, m.Region, m.Currency, m.Active, m.UpdatedAt)
	if err != nil {
		return wrapWrite("update market", err)
	}
	if cmd.RowsAffected() == 0 {
		return versionMiss(ctx, r.db, "markets", m.ID)
	}
	m.Version++
	return nil
}

func (r *MarketRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "markets", id)
}

func scanMarket(row pgx.Row) (*entity.Market, error) {
	var m entity.Market
	err := row.Scan(&m.ID, &m.Name, &m.Code, &m.Region, &m.Currency, &m.Active, &m.Version, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
