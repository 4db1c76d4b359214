package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

// ListCategories returns protected categories first, then the rest by name.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// SaveCategory creates or updates a category. Protection cannot be set or
// cleared through this call.
func (s *Service) SaveCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = domain.Slugify(name)
	}

	c, err := s.categories.Upsert(ctx, domain.Category{
		ID:               id,
		Name:             name,
		MeasurementTypes: domain.CanonicalMeasurementTypes(in.MeasurementTypes),
		Description:      strings.TrimSpace(in.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert category %s: %w", id, err)
	}

	s.log.InfoContext(ctx, "category saved",
		slog.String("category_id", c.ID),
		slog.String("name", c.Name),
	)
	return c, nil
}

// DeleteCategory removes a category. Protected categories yield
// domain.ErrForbidden.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}

	s.log.InfoContext(ctx, "category deleted", slog.String("category_id", id))
	return nil
}
