package production

import (
	"fmt"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

// ItemInput describes one line item to record.
type ItemInput struct {
	Product         string
	Quantity        int
	Category        string
	MeasurementType domain.MeasurementType
}

// Validate validates the item input.
func (i ItemInput) Validate() error {
	if errs := i.fieldErrors(""); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i ItemInput) fieldErrors(prefix string) []domain.FieldError {
	var errs []domain.FieldError

	if domain.NormalizeProductName(i.Product).IsEmpty() {
		errs = append(errs, domain.FieldError{Field: prefix + "product", Message: "required"})
	}
	if i.Quantity <= 0 {
		errs = append(errs, domain.FieldError{Field: prefix + "quantity", Message: "must be positive"})
	}
	if i.Category == "" {
		errs = append(errs, domain.FieldError{Field: prefix + "category", Message: "required"})
	}
	if !i.MeasurementType.IsValid() {
		errs = append(errs, domain.FieldError{Field: prefix + "measurement_type", Message: "must be board, mold or unit"})
	}

	return errs
}

// SaveRecordInput holds a whole day's production.
type SaveRecordInput struct {
	Date  domain.Date
	Items []ItemInput
}

const maxItemsPerRecord = 500

// Validate validates the save record input.
func (i SaveRecordInput) Validate() error {
	var errs []domain.FieldError

	if i.Date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "date", Message: "required"})
	}
	switch {
	case len(i.Items) == 0:
		errs = append(errs, domain.FieldError{Field: "items", Message: "at least one item is required"})
	case len(i.Items) > maxItemsPerRecord:
		errs = append(errs, domain.FieldError{Field: "items", Message: fmt.Sprintf("at most %d items", maxItemsPerRecord)})
	}
	for idx, it := range i.Items {
		errs = append(errs, it.fieldErrors(fmt.Sprintf("items[%d].", idx))...)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
