package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

const (
	maxProductNameLen  = 120
	maxCategoryNameLen = 80
	maxDescriptionLen  = 500
)

func validateProductName(field, raw string) []domain.FieldError {
	name := domain.NormalizeProductName(raw)
	switch {
	case name.IsEmpty():
		return []domain.FieldError{{Field: field, Message: "required"}}
	case utf8.RuneCountInString(name.String()) > maxProductNameLen:
		return []domain.FieldError{{Field: field, Message: "too long"}}
	}
	return nil
}

// ConfigInput sets the factors of one product. A nil or zero factor
// clears it.
type ConfigInput struct {
	Product       string
	UnitsPerBoard *int
	UnitsPerMold  *int
}

func (i ConfigInput) fieldErrors(prefix string) []domain.FieldError {
	errs := validateProductName(prefix+"product", i.Product)
	if i.UnitsPerBoard != nil && *i.UnitsPerBoard < 0 {
		errs = append(errs, domain.FieldError{Field: prefix + "units_per_board", Message: "must not be negative"})
	}
	if i.UnitsPerMold != nil && *i.UnitsPerMold < 0 {
		errs = append(errs, domain.FieldError{Field: prefix + "units_per_mold", Message: "must not be negative"})
	}
	return errs
}

// Validate validates the config input.
func (i ConfigInput) Validate() error {
	if errs := i.fieldErrors(""); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i ConfigInput) toDomain() domain.ProductConfig {
	return domain.ProductConfig{
		Product:       domain.NormalizeProductName(i.Product),
		UnitsPerBoard: domain.FactorFromPtr(i.UnitsPerBoard),
		UnitsPerMold:  domain.FactorFromPtr(i.UnitsPerMold),
	}
}

// validateConfigBatch validates every entry and rejects entries that
// normalize to the same product.
func validateConfigBatch(inputs []ConfigInput) error {
	var errs []domain.FieldError

	if len(inputs) == 0 {
		errs = append(errs, domain.FieldError{Field: "configs", Message: "at least one config is required"})
	}

	seen := make(map[domain.ProductName]int, len(inputs))
	for idx, in := range inputs {
		prefix := fmt.Sprintf("configs[%d].", idx)
		errs = append(errs, in.fieldErrors(prefix)...)

		name := domain.NormalizeProductName(in.Product)
		if name.IsEmpty() {
			continue
		}
		if first, dup := seen[name]; dup {
			errs = append(errs, domain.FieldError{
				Field:   prefix + "product",
				Message: fmt.Sprintf("duplicates configs[%d]", first),
			})
			continue
		}
		seen[name] = idx
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CategoryInput creates or updates a category. An empty ID is derived from
// the name.
type CategoryInput struct {
	ID               string
	Name             string
	MeasurementTypes []domain.MeasurementType
	Description      string
}

// Validate validates the category input.
func (i CategoryInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(name) > maxCategoryNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if len(i.MeasurementTypes) == 0 {
		errs = append(errs, domain.FieldError{Field: "measurement_types", Message: "at least one type is required"})
	}
	for _, mt := range i.MeasurementTypes {
		if !mt.IsValid() {
			errs = append(errs, domain.FieldError{Field: "measurement_types", Message: fmt.Sprintf("invalid type %q", mt)})
			break
		}
	}

	if utf8.RuneCountInString(i.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if i.ID == "" && name != "" && domain.Slugify(name) == "" {
		errs = append(errs, domain.FieldError{Field: "id", Message: "cannot be derived from name"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
