// Package category implements the production category repository using PostgreSQL.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/heartmarshall/precast-backend/internal/adapter/postgres"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new category repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type categoryRow struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	MeasurementTypes []string  `db:"measurement_types"`
	Description      string    `db:"description"`
	IsProtected      bool      `db:"is_protected"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

var columns = []string{
	"id", "name", "measurement_types", "description", "is_protected", "created_at", "updated_at",
}

// List returns every category, protected ones first, then by name.
func (r *Repo) List(ctx context.Context) ([]domain.Category, error) {
	sql, args, err := postgres.Psql.
		Select(columns...).
		From("categories").
		OrderBy("is_protected DESC", "name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category list: %w", err)
	}

	var rows []categoryRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

// Upsert inserts or replaces a category by id. The protected flag can be
// set but never cleared through Upsert.
func (r *Repo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	types := make([]string, len(c.MeasurementTypes))
	for i, mt := range c.MeasurementTypes {
		types[i] = mt.String()
	}

	sql, args, err := postgres.Psql.
		Insert("categories").
		Columns("id", "name", "measurement_types", "description", "is_protected").
		Values(c.ID, c.Name, types, c.Description, c.Protected).
		Suffix(`ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    measurement_types = EXCLUDED.measurement_types,
    description = EXCLUDED.description,
    is_protected = categories.is_protected OR EXCLUDED.is_protected,
    updated_at = now()`).
		Suffix("RETURNING id, name, measurement_types, description, is_protected, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category upsert: %w", err)
	}

	var row categoryRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "category", c.ID)
	}

	saved := toDomain(row)
	return &saved, nil
}

const (
	deleteUnprotectedSQL = `DELETE FROM categories WHERE id = $1 AND is_protected = false`
	isProtectedSQL       = `SELECT is_protected FROM categories WHERE id = $1`
)

// Delete removes an unprotected category. Protected categories yield a
// wrapped domain.ErrForbidden, unknown ids a wrapped domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id string) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteUnprotectedSQL, id)
	if err != nil {
		return postgres.MapError(err, "category", id)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var protected bool
	if err := q.QueryRow(ctx, isProtectedSQL, id).Scan(&protected); err != nil {
		return postgres.MapError(err, "category", id)
	}
	return fmt.Errorf("category %s is protected: %w", id, domain.ErrForbidden)
}

func toDomain(row categoryRow) domain.Category {
	types := make([]domain.MeasurementType, 0, len(row.MeasurementTypes))
	for _, t := range row.MeasurementTypes {
		types = append(types, domain.MeasurementType(t))
	}
	return domain.Category{
		ID:               row.ID,
		Name:             row.Name,
		MeasurementTypes: domain.CanonicalMeasurementTypes(types),
		Description:      row.Description,
		Protected:        row.IsProtected,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
