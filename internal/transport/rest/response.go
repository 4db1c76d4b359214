package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/precast-backend/internal/domain"
	"github.com/heartmarshall/precast-backend/pkg/ctxutil"
)

const maxBodyBytes = 1 << 20

// Error codes returned in the "code" member of error bodies.
const (
	codeNotFound              = "NOT_FOUND"
	codeAlreadyExists         = "ALREADY_EXISTS"
	codeValidation            = "VALIDATION"
	codeUnauthenticated       = "UNAUTHENTICATED"
	codeForbidden             = "FORBIDDEN"
	codeConflict              = "CONFLICT"
	codeConfigurationRequired = "CONFIGURATION_REQUIRED"
	codeInternal              = "INTERNAL"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code            string       `json:"code"`
	Message         string       `json:"message"`
	Fields          []fieldError `json:"fields,omitempty"`
	Product         string       `json:"product,omitempty"`
	MeasurementType string       `json:"measurement_type,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// respondError maps a service error to its HTTP status and error body.
// Unexpected errors are logged and hidden behind a generic message.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		ve  *domain.ValidationError
		cre *domain.ConfigurationRequiredError
	)

	switch {
	case errors.As(err, &cre):
		writeJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Error: errorBody{
			Code: codeConfigurationRequired,
			Message: fmt.Sprintf("configure units per %s for %s before recording it",
				cre.MeasurementType, cre.Product),
			Product:         cre.Product.String(),
			MeasurementType: cre.MeasurementType.String(),
		}})

	case errors.As(err, &ve):
		body := errorBody{Code: codeValidation, Message: "validation failed"}
		for _, fe := range ve.Errors {
			body.Fields = append(body.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: body})

	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())

	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")

	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, codeAlreadyExists, "already exists")

	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "unauthorized")

	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, "forbidden")

	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, err.Error())

	default:
		log.ErrorContext(r.Context(), "unexpected error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// decodeJSON reads a single JSON object from the request body. Unknown
// members are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return nil
}

func pathDate(r *http.Request, name string) (domain.Date, error) {
	d, err := domain.ParseDate(r.PathValue(name))
	if err != nil {
		return domain.Date{}, domain.NewValidationError(name, "must be a YYYY-MM-DD date")
	}
	return d, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func queryBool(r *http.Request, name string, def bool) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, domain.NewValidationError(name, "must be true or false")
	}
	return b, nil
}

// measurementType maps a wire value, canonical or legacy, to its enum.
// Unknown values pass through unchanged so input validation names the field.
func measurementType(s string) domain.MeasurementType {
	if mt, ok := domain.ParseMeasurementType(s); ok {
		return mt
	}
	return domain.MeasurementType(s)
}

func attendanceStatus(s string) domain.AttendanceStatus {
	if st, ok := domain.ParseAttendanceStatus(s); ok {
		return st
	}
	return domain.AttendanceStatus(s)
}
