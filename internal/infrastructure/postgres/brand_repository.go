package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.BrandRepository = (*BrandRepo)(nil)

const brandColumns = `id, name, code, description, logo_url, active, version, created_at, updated_at`

// BrandRepo implementación del puerto BrandRepository sobre PostgreSQL.
type BrandRepo struct {
	db Querier
}

// NewBrandRepository construye el adaptador de persistencia para marcas.
func NewBrandRepository(db Querier) *BrandRepo {
	return &BrandRepo{db: db}
}

// Create persiste una nueva marca.
func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	query := `
		INSERT INTO brands (` + brandColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		b.ID, b.Name, b.Code, b.Description, b.LogoURL, b.Active, b.Version, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert brand", err)
	}
	return nil
}

// GetByID obtiene una marca por ID; nil si no existe.
func (r *BrandRepo) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	return r.getOne(ctx, `SELECT `+brandColumns+` FROM brands WHERE id::text = $1`, id)
}

// GetByCode busca por código sin distinguir mayúsculas; nil si no existe.
func (r *BrandRepo) GetByCode(ctx context.Context, code string) (*entity.Brand, error) {
	return r.getOne(ctx, `SELECT `+brandColumns+` FROM brands WHERE upper(code) = upper($1)`, code)
}

func (r *BrandRepo) getOne(ctx context.Context, query string, arg string) (*entity.Brand, error) {
	b, err := scanBrand(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return b, nil
}

// List devuelve todas las marcas ordenadas por nombre.
func (r *BrandRepo) List(ctx context.Context) ([]*entity.Brand, error) {
	rows, err := r.db.Query(ctx, `SELECT `+brandColumns+` FROM brands ORDER BY name, code`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()
	list := []*entity.Brand{}
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Update aplica los cambios si la versión coincide e incrementa b.Version.
func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) error {
	query := `
		UPDATE brands SET name = $3, code = $4, description = $5, logo_url = $6, active = $7,
			updated_at = $8, version = version + 1
		WHERE id::text = $1 AND version = $2`
	cmd, err := r.db.Exec(ctx, query, b.ID, b.Version, b.Name, b.Code, b.Description, b.LogoURL, b.Active, b.UpdatedAt)
	if err != nil {
		return wrapWrite("update brand", err)
	}
	if cmd.RowsAffected() == 0 {
		return versionMiss(ctx, r.db, "brands", b.ID)
	}
	b.Version++
	return nil
}

// Delete elimina una marca por ID.
func (r *BrandRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "brands", id)
}

func scanBrand(row pgx.Row) (*entity.Brand, error) {
	var b entity.Brand
	err := row.Scan(&b.ID, &b.Name, &b.Code, &b.Description, &b.LogoURL, &b.Active, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// versionMiss distingue entre registro inexistente y versión desactualizada tras un UPDATE sin filas.
func versionMiss(ctx context.Context, db Querier, table, id string) error {
	var exists bool
	err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id::text = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check %s: %w", table, err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

func deleteByID(ctx context.Context, db Querier, table, id string) error {
	cmd, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
