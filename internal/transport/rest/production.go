package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/precast-backend/internal/domain"
	"github.com/heartmarshall/precast-backend/internal/service/production"
)

type productionService interface {
	ListRecords(ctx context.Context) ([]domain.ProductionRecord, error)
	GetRecord(ctx context.Context, date domain.Date) (*domain.ProductionRecord, error)
	SaveRecord(ctx context.Context, in production.SaveRecordInput) (*domain.ProductionRecord, error)
	DeleteRecord(ctx context.Context, date domain.Date) error

	OpenSession(ctx context.Context, date domain.Date) (*production.SessionView, error)
	ViewSession(ctx context.Context, date domain.Date) (*production.SessionView, error)
	GetSession(ctx context.Context, id uuid.UUID) (*production.SessionView, error)
	BeginEdit(ctx context.Context, id uuid.UUID) (*production.SessionView, error)
	AddItem(ctx context.Context, id uuid.UUID, in production.ItemInput) (*domain.LineItem, error)
	RemoveItem(ctx context.Context, id, itemID uuid.UUID) error
	UpdateQuantity(ctx context.Context, id, itemID uuid.UUID, quantity int) (*domain.LineItem, error)
	CommitEdit(ctx context.Context, id uuid.UUID) (*domain.ProductionRecord, error)
	CloseSession(ctx context.Context, id uuid.UUID) error
}

// ProductionHandler serves daily production records and their edit
// sessions.
type ProductionHandler struct {
	svc productionService
	log *slog.Logger
}

// NewProductionHandler creates a ProductionHandler.
func NewProductionHandler(svc productionService, logger *slog.Logger) *ProductionHandler {
	return &ProductionHandler{svc: svc, log: logger.With("handler", "production")}
}

type itemRequest struct {
	Product         string `json:"product"`
	Quantity        int    `json:"quantity"`
	Category        string `json:"category"`
	MeasurementType string `json:"measurement_type"`
}

func (i itemRequest) toInput() production.ItemInput {
	return production.ItemInput{
		Product:         i.Product,
		Quantity:        i.Quantity,
		Category:        i.Category,
		MeasurementType: measurementType(i.MeasurementType),
	}
}

type saveRecordRequest struct {
	Items []itemRequest `json:"items"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// ---------------------------------------------------------------------------
// Records
// ---------------------------------------------------------------------------

// ListRecords handles GET /api/productions.
func (h *ProductionHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListRecords(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]recordResponse, len(records))
	for i, rec := range records {
		out[i] = toRecordResponse(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetRecord handles GET /api/productions/{date}.
func (h *ProductionHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r, "date")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	rec, err := h.svc.GetRecord(r.Context(), date)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(*rec))
}

// SaveRecord handles PUT /api/productions/{date}: the whole day in one
// request, replacing any stored items.
func (h *ProductionHandler) SaveRecord(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r, "date")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req saveRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	items := make([]production.ItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = it.toInput()
	}

	rec, err := h.svc.SaveRecord(r.Context(), production.SaveRecordInput{Date: date, Items: items})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(*rec))
}

// DeleteRecord handles DELETE /api/productions/{date}. A date without a
// record answers 404.
func (h *ProductionHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r, "date")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteRecord(r.Context(), date); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

// OpenSession handles POST /api/productions/{date}/sessions. The session
// starts editing unless ?edit=false, which opens it viewing.
func (h *ProductionHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	date, err := pathDate(r, "date")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	edit, err := queryBool(r, "edit", true)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	open := h.svc.OpenSession
	if !edit {
		open = h.svc.ViewSession
	}
	view, err := open(r.Context(), date)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(view))
}

// GetSession handles GET /api/sessions/{id}.
func (h *ProductionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.GetSession)
}

// BeginEdit handles POST /api/sessions/{id}/edit.
func (h *ProductionHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.BeginEdit)
}

func (h *ProductionHandler) withSession(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, uuid.UUID) (*production.SessionView, error),
) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	view, err := fn(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(view))
}

// AddItem handles POST /api/sessions/{id}/items. A board or mold item for
// an unconfigured product answers 422 CONFIGURATION_REQUIRED.
func (h *ProductionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	item, err := h.svc.AddItem(r.Context(), id, req.toInput())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLineItemResponse(*item))
}

// UpdateQuantity handles PATCH /api/sessions/{id}/items/{itemID}.
func (h *ProductionHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, itemID, err := sessionItemIDs(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	var req quantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	item, err := h.svc.UpdateQuantity(r.Context(), id, itemID, req.Quantity)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toLineItemResponse(*item))
}

// RemoveItem handles DELETE /api/sessions/{id}/items/{itemID}.
func (h *ProductionHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, itemID, err := sessionItemIDs(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := h.svc.RemoveItem(r.Context(), id, itemID); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CommitEdit handles POST /api/sessions/{id}/commit.
func (h *ProductionHandler) CommitEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	rec, err := h.svc.CommitEdit(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(*rec))
}

// CloseSession handles DELETE /api/sessions/{id}. Uncommitted edits are
// discarded.
func (h *ProductionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := h.svc.CloseSession(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func sessionItemIDs(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	id, err := pathUUID(r, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	itemID, err := pathUUID(r, "itemID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return id, itemID, nil
}
