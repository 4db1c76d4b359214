// Package production implements the daily production record repository
// using PostgreSQL.
package production

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/precast-backend/internal/adapter/postgres"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// Repo provides production record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new production repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type recordRow struct {
	RecordDate time.Time `db:"record_date"`
	ReportText string    `db:"report_text"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type itemRow struct {
	ID              uuid.UUID `db:"id"`
	RecordDate      time.Time `db:"record_date"`
	ProductName     string    `db:"product_name"`
	CategoryName    string    `db:"category_name"`
	Quantity        int       `db:"quantity"`
	MeasurementType string    `db:"measurement_type"`
	TotalUnits      *int      `db:"total_units"`
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

const (
	listRecordsSQL = `SELECT record_date, report_text, created_at, updated_at
FROM production_records ORDER BY record_date DESC`

	listItemsSQL = `SELECT id, record_date, product_name, category_name, quantity, measurement_type, total_units
FROM production_items ORDER BY record_date DESC, position`

	getRecordSQL = `SELECT record_date, report_text, created_at, updated_at
FROM production_records WHERE record_date = $1`

	getItemsSQL = `SELECT id, record_date, product_name, category_name, quantity, measurement_type, total_units
FROM production_items WHERE record_date = $1 ORDER BY position`
)

// ListAll returns every record, newest date first, with its items in
// recorded order.
func (r *Repo) ListAll(ctx context.Context) ([]domain.ProductionRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var records []recordRow
	if err := pgxscan.Select(ctx, q, &records, listRecordsSQL); err != nil {
		return nil, fmt.Errorf("list production records: %w", err)
	}

	var items []itemRow
	if err := pgxscan.Select(ctx, q, &items, listItemsSQL); err != nil {
		return nil, fmt.Errorf("list production items: %w", err)
	}

	byDate := make(map[domain.Date][]domain.LineItem, len(records))
	for _, it := range items {
		d := domain.DateOf(it.RecordDate)
		byDate[d] = append(byDate[d], toDomainItem(it))
	}

	out := make([]domain.ProductionRecord, 0, len(records))
	for _, rec := range records {
		d := domain.DateOf(rec.RecordDate)
		out = append(out, toDomainRecord(rec, byDate[d]))
	}
	return out, nil
}

// Get returns the record of one date with its items.
func (r *Repo) Get(ctx context.Context, date domain.Date) (*domain.ProductionRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rec recordRow
	if err := pgxscan.Get(ctx, q, &rec, getRecordSQL, date.Time()); err != nil {
		return nil, postgres.MapError(err, "production_record", date)
	}

	var items []itemRow
	if err := pgxscan.Select(ctx, q, &items, getItemsSQL, date.Time()); err != nil {
		return nil, postgres.MapError(err, "production_items", date)
	}

	lineItems := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, toDomainItem(it))
	}

	out := toDomainRecord(rec, lineItems)
	return &out, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

const (
	upsertRecordSQL = `INSERT INTO production_records (record_date, report_text)
VALUES ($1, $2)
ON CONFLICT (record_date) DO UPDATE
SET report_text = EXCLUDED.report_text, updated_at = now()`

	deleteItemsSQL = `DELETE FROM production_items WHERE record_date = $1`

	insertItemSQL = `INSERT INTO production_items
    (id, record_date, position, product_name, category_name, quantity, measurement_type, total_units)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	deleteRecordSQL = `DELETE FROM production_records WHERE record_date = $1`
)

// Upsert writes the record and replaces its whole item list. The three
// statements are only atomic when ctx carries a transaction.
func (r *Repo) Upsert(ctx context.Context, rec domain.ProductionRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.db)
	day := rec.Date.Time()

	if _, err := q.Exec(ctx, upsertRecordSQL, day, rec.ReportText); err != nil {
		return postgres.MapError(err, "production_record", rec.Date)
	}

	if _, err := q.Exec(ctx, deleteItemsSQL, day); err != nil {
		return postgres.MapError(err, "production_items", rec.Date)
	}

	if len(rec.Items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, it := range rec.Items {
		id := it.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		batch.Queue(insertItemSQL,
			id, day, i, it.Product.String(), it.Category, it.Quantity,
			it.MeasurementType.String(), it.TotalUnits.Ptr(),
		)
	}

	br := q.SendBatch(ctx, batch)
	for range rec.Items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return postgres.MapError(err, "production_items", rec.Date)
		}
	}

	// Close reports errors of statements whose results were not read.
	if err := br.Close(); err != nil {
		return postgres.MapError(err, "production_items", rec.Date)
	}
	return nil
}

// Delete removes the record of a date and, by cascade, its items.
func (r *Repo) Delete(ctx context.Context, date domain.Date) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteRecordSQL, date.Time())
	if err != nil {
		return postgres.MapError(err, "production_record", date)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("production_record %s: %w", date, domain.ErrNotFound)
	}
	return nil
}

func toDomainRecord(row recordRow, items []domain.LineItem) domain.ProductionRecord {
	if items == nil {
		items = []domain.LineItem{}
	}
	return domain.ProductionRecord{
		Date:       domain.DateOf(row.RecordDate),
		Items:      items,
		ReportText: row.ReportText,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func toDomainItem(row itemRow) domain.LineItem {
	return domain.LineItem{
		ID:              row.ID,
		Product:         domain.ProductName(row.ProductName),
		Category:        row.CategoryName,
		Quantity:        row.Quantity,
		MeasurementType: domain.MeasurementType(row.MeasurementType),
		TotalUnits:      domain.OptionalFromPtr(row.TotalUnits),
	}
}
