package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.LocalizationRepository = (*LocalizationRepo)(nil)

const localizationColumns = `id, language_code, country_code, currency, date_format, timezone, is_default, version, created_at, updated_at`

// LocalizationRepo implementación del puerto LocalizationRepository sobre PostgreSQL.
// Con tx configurado, las escrituras que marcan default desmarcan la anterior en la misma transacción.
type LocalizationRepo struct {
	db Querier
	tx *TxRunner
}

// NewLocalizationRepository construye el adaptador. tx puede ser nil.
func NewLocalizationRepository(db Querier, tx *TxRunner) *LocalizationRepo {
	return &LocalizationRepo{db: db, tx: tx}
}

func (r *LocalizationRepo) Create(ctx context.Context, l *entity.Localization) error {
	return r.write(ctx, l, func(q Querier) error {
		query := `
			INSERT INTO localizations (` + localizationColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		_, err := q.Exec(ctx, query,
			l.ID, l.LanguageCode, l.CountryCode, l.Currency, l.DateFormat, l.Timezone,
			l.IsDefault, l.Version, l.CreatedAt, l.UpdatedAt,
		)
		if err != nil {
			return wrapWrite("insert localization", err)
		}
		return nil
	})
}

func (r *LocalizationRepo) GetByID(ctx context.Context, id string) (*entity.Localization, error) {
	return r.getOne(ctx, `SELECT `+localizationColumns+` FROM localizations WHERE id::text = $1`, id)
}

func (r *LocalizationRepo) GetByCode(ctx context.Context, languageCode, countryCode string) (*entity.Localization, error) {
	return r.getOne(ctx, `SELECT `+localizationColumns+` FROM localizations
		WHERE language_code = $1 AND country_code = $2`, languageCode, countryCode)
}

func (r *LocalizationRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Localization, error) {
	l, err := scanLocalization(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get localization: %w", err)
	}
	return l, nil
}

// List devuelve la default primero y luego por código.
func (r *LocalizationRepo) List(ctx context.Context) ([]*entity.Localization, error) {
	rows, err := r.db.Query(ctx, `SELECT `+localizationColumns+` FROM localizations
		ORDER BY is_default DESC, language_code, country_code`)
	if err != nil {
		return nil, fmt.Errorf("list localizations: %w", err)
	}
	defer rows.Close()
	list := []*entity.Localization{}
	for rows.Next() {
		l, err := scanLocalization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan localization: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *LocalizationRepo) Update(ctx context.Context, l *entity.Localization) error {
	err := r.write(ctx, l, func(q Querier) error {
		query := `
			UPDATE localizations SET language_code = $3, country_code = $4, currency = $5,
				date_format = $6, timezone = $7, is_default = $8, updated_at = $9, version = version + 1
			WHERE id::text = $1 AND version = $2`
		cmd, err := q.Exec(ctx, query, l.ID, l.Version, l.LanguageCode, l.CountryCode, l.Currency,
			l.DateFormat, l.Timezone, l.IsDefault, l.UpdatedAt)
		if err != nil {
			return wrapWrite("update localization", err)
		}
		if cmd.RowsAffected() == 0 {
			return versionMiss(ctx, q, "localizations", l.ID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	l.Version++
	return nil
}

func (r *LocalizationRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "localizations", id)
}

// ClearDefault desmarca la default vigente, excepto exceptID.
func (r *LocalizationRepo) ClearDefault(ctx context.Context, exceptID string) error {
	return clearDefault(ctx, r.db, exceptID)
}

func clearDefault(ctx context.Context, q Querier, exceptID string) error {
	_, err := q.Exec(ctx, `
		UPDATE localizations SET is_default = FALSE, version = version + 1, updated_at = now()
		WHERE is_default AND id::text <> $1`, exceptID)
	if err != nil {
		return fmt.Errorf("clear default localization: %w", err)
	}
	return nil
}

// write ejecuta fn; si l queda como default, primero desmarca la anterior dentro de la misma tx.
func (r *LocalizationRepo) write(ctx context.Context, l *entity.Localization, fn func(Querier) error) error {
	if !l.IsDefault || r.tx == nil {
		return fn(r.db)
	}
	return r.tx.Run(ctx, func(q Querier) error {
		if err := clearDefault(ctx, q, l.ID); err != nil {
			return err
		}
		return fn(q)
	})
}

func scanLocalization(row pgx.Row) (*entity.Localization, error) {
	var l entity.Localization
	err := row.Scan(&l.ID, &l.LanguageCode, &l.CountryCode, &l.Currency, &l.DateFormat, &l.Timezone,
		&l.IsDefault, &l.Version, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
