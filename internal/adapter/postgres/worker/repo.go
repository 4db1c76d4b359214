// Package worker implements the day-laborer roster repository using PostgreSQL.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/precast-backend/internal/adapter/postgres"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// Repo provides worker persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new worker repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type workerRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const (
	listSQL = `SELECT id, name, created_at, updated_at FROM workers ORDER BY name, id`

	getSQL = `SELECT id, name, created_at, updated_at FROM workers WHERE id = $1`

	insertSQL = `INSERT INTO workers (id, name) VALUES ($1, $2)
RETURNING id, name, created_at, updated_at`

	updateSQL = `UPDATE workers SET name = $2, updated_at = now() WHERE id = $1
RETURNING id, name, created_at, updated_at`

	deleteSQL = `DELETE FROM workers WHERE id = $1`
)

// List returns the roster ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Worker, error) {
	var rows []workerRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listSQL); err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	out := make([]domain.Worker, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

// Get returns one worker.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Worker, error) {
	var row workerRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, getSQL, id); err != nil {
		return nil, postgres.MapError(err, "worker", id)
	}
	w := toDomain(row)
	return &w, nil
}

// Insert adds a worker with a fresh id.
func (r *Repo) Insert(ctx context.Context, name string) (*domain.Worker, error) {
	id := uuid.New()

	var row workerRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, insertSQL, id, name); err != nil {
		return nil, postgres.MapError(err, "worker", id)
	}
	w := toDomain(row)
	return &w, nil
}

// Update renames a worker.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Worker, error) {
	var row workerRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, updateSQL, id, name); err != nil {
		return nil, postgres.MapError(err, "worker", id)
	}
	w := toDomain(row)
	return &w, nil
}

// Delete removes a worker and, by cascade, their attendance.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "worker", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("worker %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func toDomain(row workerRow) domain.Worker {
	return domain.Worker{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
