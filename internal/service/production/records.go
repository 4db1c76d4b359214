package production

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/precast-backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// SaveRecord records a whole day at once, replacing any existing record of
// that date. Totals of all items are resolved concurrently; the products
// are added to the catalog and the record is written in one transaction.
func (s *Service) SaveRecord(ctx context.Context, in SaveRecordInput) (*domain.ProductionRecord, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	items := make([]domain.LineItem, len(in.Items))
	g, gctx := errgroup.WithContext(ctx)
	for i, itemIn := range in.Items {
		g.Go(func() error {
			it, err := s.buildItem(gctx, itemIn, categories)
			if err != nil {
				return err
			}
			items[i] = it
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rec *domain.ProductionRecord
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		seen := make(map[domain.ProductName]struct{}, len(items))
		for _, it := range items {
			if _, ok := seen[it.Product]; ok {
				continue
			}
			seen[it.Product] = struct{}{}
			if _, err := s.products.Insert(ctx, it.Product); err != nil {
				return fmt.Errorf("insert product %s: %w", it.Product, err)
			}
		}

		var err error
		rec, err = s.write(ctx, in.Date, items, categories)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "production saved",
		slog.String("date", rec.Date.String()),
		slog.Int("items", len(rec.Items)),
	)

	return rec, nil
}

// ListRecords returns every record, newest first.
func (s *Service) ListRecords(ctx context.Context) ([]domain.ProductionRecord, error) {
	recs, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list productions: %w", err)
	}
	return recs, nil
}

// GetRecord returns the record of one date.
func (s *Service) GetRecord(ctx context.Context, date domain.Date) (*domain.ProductionRecord, error) {
	rec, err := s.records.Get(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get production %s: %w", date, err)
	}
	return rec, nil
}

// DeleteRecord removes the record of one date. A date without a record
// yields a wrapped domain.ErrNotFound.
func (s *Service) DeleteRecord(ctx context.Context, date domain.Date) error {
	if err := s.records.Delete(ctx, date); err != nil {
		return fmt.Errorf("delete production %s: %w", date, err)
	}

	s.log.InfoContext(ctx, "production deleted", slog.String("date", date.String()))
	return nil
}

// persist writes a record in its own transaction.
func (s *Service) persist(ctx context.Context, date domain.Date, items []domain.LineItem, categories []domain.Category) (*domain.ProductionRecord, error) {
	var rec *domain.ProductionRecord
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		rec, err = s.write(ctx, date, items, categories)
		return err
	})
	return rec, err
}

// write regenerates the report text, replaces the stored record and reads
// it back. It must run inside a transaction.
func (s *Service) write(ctx context.Context, date domain.Date, items []domain.LineItem, categories []domain.Category) (*domain.ProductionRecord, error) {
	rec := domain.ProductionRecord{
		Date:       date,
		Items:      items,
		ReportText: GenerateReportText(date, items, categories),
	}
	if err := s.records.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("upsert production %s: %w", date, err)
	}

	stored, err := s.records.Get(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("reload production %s: %w", date, err)
	}
	return stored, nil
}
