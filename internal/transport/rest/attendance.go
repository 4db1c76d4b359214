package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/precast-backend/internal/domain"
	"github.com/heartmarshall/precast-backend/internal/service/attendance"
)

type attendanceService interface {
	ListWorkers(ctx context.Context) ([]domain.Worker, error)
	CreateWorker(ctx context.Context, name string) (*domain.Worker, error)
	RenameWorker(ctx context.Context, id uuid.UUID, name string) (*domain.Worker, error)
	DeleteWorker(ctx context.Context, id uuid.UUID) error

	MarkAttendance(ctx context.Context, in attendance.MarkInput) (*domain.AttendanceRecord, error)
	DayView(ctx context.Context, date domain.Date) ([]attendance.DayEntry, error)
	MonthView(ctx context.Context, anchor domain.Date, shift int) (*attendance.MonthView, error)
}

// AttendanceHandler serves the worker roster and the attendance calendar.
type AttendanceHandler struct {
	svc attendanceService
	log *slog.Logger
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(svc attendanceService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, log: logger.With("handler", "attendance")}
}

type workerRequest struct {
	Name string `json:"name"`
}

type markRequest struct {
	WorkerID uuid.UUID   `json:"worker_id"`
	Date     domain.Date `json:"date"`
	Status   string      `json:"status"`
}

// ListWorkers handles GET /api/workers.
func (h *AttendanceHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.svc.ListWorkers(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]workerResponse, len(workers))
	for i, wk := range workers {
		out[i] = toWorkerResponse(wk)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateWorker handles POST /api/workers.
func (h *AttendanceHandler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req workerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	wk, err := h.svc.CreateWorker(r.Context(), req.Name)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkerResponse(*wk))
}

// RenameWorker handles PATCH /api/workers/{id}.
func (h *AttendanceHandler) RenameWorker(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req workerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	wk, err := h.svc.RenameWorker(r.Context(), id, req.Name)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkerResponse(*wk))
}

// DeleteWorker handles DELETE /api/workers/{id}. The worker's attendance
// goes with it.
func (h *AttendanceHandler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteWorker(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Mark handles PUT /api/attendance.
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	rec, err := h.svc.MarkAttendance(r.Context(), attendance.MarkInput{
		WorkerID: req.WorkerID,
		Date:     req.Date,
		Status:   attendanceStatus(req.Status),
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, attendanceResponse{
		WorkerID: rec.WorkerID.String(),
		Date:     rec.Date,
		Status:   rec.Status.String(),
	})
}

// Day handles GET /api/attendance/day/{date}.
func (h *AttendanceHandler) Day(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r, "date")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	entries, err := h.svc.DayView(r.Context(), date)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]dayEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = dayEntryResponse{Worker: toWorkerResponse(e.Worker), Status: statusPtr(e.Status)}
	}
	writeJSON(w, http.StatusOK, out)
}

// maxMonthShift bounds ?shift to a century either way.
const maxMonthShift = 1200

// Month handles GET /api/attendance/month/{date}?shift=n. Any day of the
// month works as the anchor; shift moves by whole months.
func (h *AttendanceHandler) Month(w http.ResponseWriter, r *http.Request) {
	anchor, err := pathDate(r, "date")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	shift, err := queryInt(r, "shift", 0)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if shift < -maxMonthShift || shift > maxMonthShift {
		respondError(w, r, h.log, domain.NewValidationError("shift", fmt.Sprintf("must be between -%d and %d", maxMonthShift, maxMonthShift)))
		return
	}

	view, err := h.svc.MonthView(r.Context(), anchor, shift)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthResponse(view))
}
