package production

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// buildItem turns validated input into a line item. It rejects unknown
// categories and board or mold quantities of products without a factor
// for that type. It has no side effects.
func (s *Service) buildItem(ctx context.Context, in ItemInput, categories []domain.Category) (domain.LineItem, error) {
	name := domain.NormalizeProductName(in.Product)

	cat, ok := domain.FindCategory(categories, in.Category)
	if !ok {
		return domain.LineItem{}, domain.NewValidationError("category", "not found")
	}
	if !cat.Supports(in.MeasurementType) {
		return domain.LineItem{}, domain.NewValidationError("measurement_type",
			fmt.Sprintf("category %q does not record %s", cat.Name, in.MeasurementType.Plural()))
	}

	configured, err := s.resolver.HasConfigurationFor(ctx, name, in.MeasurementType)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("check configuration: %w", err)
	}
	if !configured {
		return domain.LineItem{}, &domain.ConfigurationRequiredError{Product: name, MeasurementType: in.MeasurementType}
	}

	total, err := s.resolver.ResolveTotalUnits(ctx, name, in.Quantity, in.MeasurementType)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("resolve total units: %w", err)
	}

	return domain.LineItem{
		ID:              uuid.New(),
		Product:         name,
		Category:        cat.Name,
		Quantity:        in.Quantity,
		MeasurementType: in.MeasurementType,
		TotalUnits:      total,
	}, nil
}
