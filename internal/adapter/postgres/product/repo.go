// Package product implements the product catalog repository using PostgreSQL.
package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/precast-backend/internal/adapter/postgres"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// Repo provides product persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new product repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type productRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	listSQL = `SELECT id, name, created_at FROM products ORDER BY name`

	insertSQL = `INSERT INTO products (id, name) VALUES ($1, $2)
ON CONFLICT (name) DO NOTHING`

	deleteSQL = `DELETE FROM products WHERE name = $1`

	existsSQL = `SELECT EXISTS(SELECT 1 FROM products WHERE name = $1)`
)

// List returns every product ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listSQL); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

// Insert adds name to the catalog. Inserting an existing name is a no-op
// and reports false.
func (r *Repo) Insert(ctx context.Context, name domain.ProductName) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, insertSQL, uuid.New(), name.String())
	if err != nil {
		return false, postgres.MapError(err, "product", name)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a product. Its configuration is removed by cascade.
func (r *Repo) Delete(ctx context.Context, name domain.ProductName) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteSQL, name.String())
	if err != nil {
		return postgres.MapError(err, "product", name)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", name, domain.ErrNotFound)
	}
	return nil
}

// Exists reports whether name is in the catalog.
func (r *Repo) Exists(ctx context.Context, name domain.ProductName) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, existsSQL, name.String()).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "product", name)
	}
	return exists, nil
}

// Search returns up to limit product names containing term,
// case-insensitively, ordered by name.
func (r *Repo) Search(ctx context.Context, term string, limit int) ([]domain.ProductName, error) {
	pattern := "%" + escapeLike(string(domain.NormalizeProductName(term))) + "%"

	query := postgres.Psql.
		Select("name").
		From("products").
		Where(squirrel.ILike{"name": pattern}).
		OrderBy("name").
		Limit(uint64(max(limit, 1)))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	var names []string
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &names, sql, args...); err != nil {
		return nil, fmt.Errorf("search products %q: %w", term, err)
	}

	out := make([]domain.ProductName, 0, len(names))
	for _, n := range names {
		out = append(out, domain.ProductName(n))
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func toDomain(row productRow) domain.Product {
	return domain.Product{
		ID:        row.ID,
		Name:      domain.ProductName(row.Name),
		CreatedAt: row.CreatedAt,
	}
}
