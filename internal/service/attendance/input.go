package attendance

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

const maxWorkerNameLen = 100

func validateWorkerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.NewValidationError("name", "required")
	}
	if utf8.RuneCountInString(name) > maxWorkerNameLen {
		return domain.NewValidationError("name", "too long")
	}
	return nil
}

// MarkInput sets one worker's status on one day.
type MarkInput struct {
	WorkerID uuid.UUID
	Date     domain.Date
	Status   domain.AttendanceStatus
}

// Validate validates the mark input.
func (i MarkInput) Validate() error {
	var errs []domain.FieldError

	if i.WorkerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "worker_id", Message: "required"})
	}
	if i.Date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "date", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be present, absent or half_day"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
