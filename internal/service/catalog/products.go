package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

// ListProducts returns the catalog ordered by name.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// AddProduct adds a product under its normalized name. Adding an existing
// product is a no-op; created reports whether a row was inserted.
func (s *Service) AddProduct(ctx context.Context, raw string) (name domain.ProductName, created bool, err error) {
	if errs := validateProductName("name", raw); len(errs) > 0 {
		return "", false, domain.NewValidationErrors(errs)
	}
	name = domain.NormalizeProductName(raw)

	created, err = s.products.Insert(ctx, name)
	if err != nil {
		return "", false, fmt.Errorf("insert product %s: %w", name, err)
	}

	if created {
		s.log.InfoContext(ctx, "product added", slog.String("product", name.String()))
	}
	return name, created, nil
}

// DeleteProduct removes a product and its configuration. Recorded
// production keeps the name it was recorded with.
func (s *Service) DeleteProduct(ctx context.Context, raw string) error {
	name := domain.NormalizeProductName(raw)
	if name.IsEmpty() {
		return domain.NewValidationError("name", "required")
	}

	if err := s.products.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete product %s: %w", name, err)
	}

	s.log.InfoContext(ctx, "product deleted", slog.String("product", name.String()))
	return nil
}

// SearchProducts suggests products whose name contains term. Suggestions
// are best-effort: a store failure is logged and yields no suggestions.
func (s *Service) SearchProducts(ctx context.Context, term string) []domain.ProductName {
	normalized := domain.NormalizeProductName(term)
	if normalized.IsEmpty() {
		return []domain.ProductName{}
	}

	names, err := s.products.Search(ctx, normalized.String(), s.searchLimit)
	if err != nil {
		s.log.WarnContext(ctx, "product search failed",
			slog.String("term", normalized.String()),
			slog.String("error", err.Error()),
		)
		return []domain.ProductName{}
	}
	return names
}
