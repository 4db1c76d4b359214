// Package attendance implements the attendance repository using PostgreSQL.
package attendance

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

// Repo provides attendance persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new attendance repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type attendanceRow struct {
	WorkerID  uuid.UUID `db:"worker_id"`
	WorkDate  time.Time `db:"work_date"`
	Status    string    `db:"status"`
	UpdatedAt time.Time `db:"updated_at"`
}

const upsertSQL = `INSERT INTO attendance (worker_id, work_date, status, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (worker_id, work_date) DO UPDATE
SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
RETURNING worker_id, work_date, status, updated_at`

// Upsert stores the status of a worker on a date, replacing any previous
// status for that pair. An unknown worker yields a wrapped domain.ErrNotFound.
func (r *Repo) Upsert(ctx context.Context, workerID uuid.UUID, date domain.Date, status domain.AttendanceStatus) (*domain.AttendanceRecord, error) {
	var row attendanceRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, upsertSQL,
		workerID, date.Time(), status.String(),
	)
	if err != nil {
		return nil, postgres.MapError(err, "attendance", workerID)
	}
	rec := toDomain(row)
	return &rec, nil
}

// ListInRange returns all records with from <= date <= to.
func (r *Repo) ListInRange(ctx context.Context, from, to domain.Date) ([]domain.AttendanceRecord, error) {
	sql, args, err := postgres.Psql.
		Select("worker_id", "work_date", "status", "updated_at").
		From("attendance").
		Where(squirrel.GtOrEq{"work_date": from.Time()}).
		Where(squirrel.LtOrEq{"work_date": to.Time()}).
		OrderBy("work_date", "worker_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build attendance range query: %w", err)
	}

	var rows []attendanceRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list attendance %s..%s: %w", from, to, err)
	}

	out := make([]domain.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

const deleteBeforeSQL = `DELETE FROM attendance WHERE work_date < $1`

// DeleteBefore removes every record older than cutoff and returns how many
// were removed.
func (r *Repo) DeleteBefore(ctx context.Context, cutoff domain.Date) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteBeforeSQL, cutoff.Time())
	if err != nil {
		return 0, postgres.MapError(err, "attendance", cutoff)
	}
	return tag.RowsAffected(), nil
}

func toDomain(row attendanceRow) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		WorkerID:  row.WorkerID,
		Date:      domain.DateOf(row.WorkDate),
		Status:    domain.AttendanceStatus(row.Status),
		UpdatedAt: row.UpdatedAt,
	}
}
