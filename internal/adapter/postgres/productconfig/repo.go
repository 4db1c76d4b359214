// Package productconfig implements the conversion-factor repository using PostgreSQL.
package productconfig

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/precast-backend/internal/adapter/postgres"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// Repo provides product configuration persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new configuration repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type configRow struct {
	ProductID     uuid.UUID `db:"product_id"`
	Name          string    `db:"name"`
	UnitsPerBoard *int      `db:"units_per_board"`
	UnitsPerMold  *int      `db:"units_per_mold"`
	UpdatedAt     time.Time `db:"updated_at"`
}

var selectColumns = []string{
	"c.product_id", "p.name", "c.units_per_board", "c.units_per_mold", "c.updated_at",
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetAll returns every stored configuration ordered by product name.
func (r *Repo) GetAll(ctx context.Context) ([]domain.ProductConfig, error) {
	return r.selectConfigs(ctx, nil)
}

// GetForProduct returns the configuration of one product, or a wrapped
// domain.ErrNotFound when none is stored.
func (r *Repo) GetForProduct(ctx context.Context, name domain.ProductName) (*domain.ProductConfig, error) {
	configs, err := r.selectConfigs(ctx, squirrel.Eq{"p.name": name.String()})
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("product_config %s: %w", name, domain.ErrNotFound)
	}
	return &configs[0], nil
}

// GetForProducts returns the configurations stored for any of names.
// Products without a row are simply absent from the result.
func (r *Repo) GetForProducts(ctx context.Context, names []domain.ProductName) ([]domain.ProductConfig, error) {
	if len(names) == 0 {
		return []domain.ProductConfig{}, nil
	}
	raw := make([]string, len(names))
	for i, n := range names {
		raw[i] = n.String()
	}
	return r.selectConfigs(ctx, squirrel.Eq{"p.name": raw})
}

func (r *Repo) selectConfigs(ctx context.Context, where squirrel.Sqlizer) ([]domain.ProductConfig, error) {
	query := postgres.Psql.
		Select(selectColumns...).
		From("product_configs c").
		Join("products p ON p.id = c.product_id").
		OrderBy("p.name")
	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build config query: %w", err)
	}

	var rows []configRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select product configs: %w", err)
	}

	out := make([]domain.ProductConfig, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

const upsertSQL = `
WITH target AS (
    SELECT id, name FROM products WHERE name = $1
), saved AS (
    INSERT INTO product_configs (product_id, units_per_board, units_per_mold, updated_at)
    SELECT id, $2, $3, now() FROM target
    ON CONFLICT (product_id) DO UPDATE
    SET units_per_board = EXCLUDED.units_per_board,
        units_per_mold  = EXCLUDED.units_per_mold,
        updated_at      = EXCLUDED.updated_at
    RETURNING product_id, units_per_board, units_per_mold, updated_at
)
SELECT s.product_id, t.name, s.units_per_board, s.units_per_mold, s.updated_at
FROM saved s JOIN target t ON t.id = s.product_id`

// Upsert stores the factors of an existing product, replacing any previous
// values. An absent factor is stored as NULL. A product missing from the
// catalog yields a wrapped domain.ErrNotFound.
func (r *Repo) Upsert(ctx context.Context, cfg domain.ProductConfig) (*domain.ProductConfig, error) {
	var row configRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, upsertSQL,
		cfg.Product.String(), cfg.UnitsPerBoard.Ptr(), cfg.UnitsPerMold.Ptr(),
	)
	if err != nil {
		return nil, postgres.MapError(err, "product_config", cfg.Product)
	}

	saved := toDomain(row)
	return &saved, nil
}

const withoutConfigSQL = `
SELECT p.name
FROM products p
LEFT JOIN product_configs c ON c.product_id = p.id
WHERE c.product_id IS NULL
   OR (c.units_per_board IS NULL AND c.units_per_mold IS NULL)
ORDER BY p.name`

// ListProductsWithoutConfig returns products that have no factor of any kind.
func (r *Repo) ListProductsWithoutConfig(ctx context.Context) ([]domain.ProductName, error) {
	var names []string
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &names, withoutConfigSQL); err != nil {
		return nil, fmt.Errorf("list unconfigured products: %w", err)
	}

	out := make([]domain.ProductName, 0, len(names))
	for _, n := range names {
		out = append(out, domain.ProductName(n))
	}
	return out, nil
}

func toDomain(row configRow) domain.ProductConfig {
	return domain.ProductConfig{
		ProductID:     row.ProductID,
		Product:       domain.ProductName(row.Name),
		UnitsPerBoard: domain.FactorFromPtr(row.UnitsPerBoard),
		UnitsPerMold:  domain.FactorFromPtr(row.UnitsPerMold),
		UpdatedAt:     row.UpdatedAt,
	}
}
