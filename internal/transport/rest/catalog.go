package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/precast-backend/internal/domain"
	"github.com/heartmarshall/precast-backend/internal/service/catalog"
)

type catalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	AddProduct(ctx context.Context, raw string) (domain.ProductName, bool, error)
	DeleteProduct(ctx context.Context, raw string) error
	SearchProducts(ctx context.Context, term string) []domain.ProductName
	ListUnconfigured(ctx context.Context) ([]domain.ProductName, error)

	ListConfigs(ctx context.Context) ([]domain.ProductConfig, error)
	GetConfig(ctx context.Context, raw string) (*domain.ProductConfig, error)
	SaveConfig(ctx context.Context, in catalog.ConfigInput) (*domain.ProductConfig, error)
	SaveConfigs(ctx context.Context, inputs []catalog.ConfigInput) ([]domain.ProductConfig, error)

	ListCategories(ctx context.Context) ([]domain.Category, error)
	SaveCategory(ctx context.Context, in catalog.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// CatalogHandler serves products, conversion configs and categories.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

type productRequest struct {
	Name string `json:"name"`
}

type addProductResponse struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

type configRequest struct {
	Product       string `json:"product"`
	UnitsPerBoard *int   `json:"units_per_board"`
	UnitsPerMold  *int   `json:"units_per_mold"`
}

func (c configRequest) toInput() catalog.ConfigInput {
	return catalog.ConfigInput{
		Product:       c.Product,
		UnitsPerBoard: c.UnitsPerBoard,
		UnitsPerMold:  c.UnitsPerMold,
	}
}

type configBatchRequest struct {
	Configs []configRequest `json:"configs"`
}

type categoryRequest struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	MeasurementTypes []string `json:"measurement_types"`
	Description      string   `json:"description"`
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

// ListProducts handles GET /api/products.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

// AddProduct handles POST /api/products. 201 when created, 200 when the
// product already existed.
func (h *CatalogHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	name, created, err := h.svc.AddProduct(r.Context(), req.Name)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, addProductResponse{Name: name.String(), Created: created})
}

// DeleteProduct handles DELETE /api/products/{name}.
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), r.PathValue("name")); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchProducts handles GET /api/products/search?q=. Never fails: a
// store problem yields an empty list.
func (h *CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	names := h.svc.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, productNames(names))
}

// ListUnconfigured handles GET /api/products/unconfigured.
func (h *CatalogHandler) ListUnconfigured(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListUnconfigured(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, productNames(names))
}

func productNames(names []domain.ProductName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}

// ---------------------------------------------------------------------------
// Configurations
// ---------------------------------------------------------------------------

// ListConfigs handles GET /api/configs.
func (h *CatalogHandler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := h.svc.ListConfigs(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigResponses(configs))
}

// GetConfig handles GET /api/configs/{product}.
func (h *CatalogHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.GetConfig(r.Context(), r.PathValue("product"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigResponse(*cfg))
}

// SaveConfig handles PUT /api/configs.
func (h *CatalogHandler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	cfg, err := h.svc.SaveConfig(r.Context(), req.toInput())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigResponse(*cfg))
}

// SaveConfigs handles PUT /api/configs/batch.
func (h *CatalogHandler) SaveConfigs(w http.ResponseWriter, r *http.Request) {
	var req configBatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	inputs := make([]catalog.ConfigInput, len(req.Configs))
	for i, c := range req.Configs {
		inputs[i] = c.toInput()
	}

	configs, err := h.svc.SaveConfigs(r.Context(), inputs)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigResponses(configs))
}

func toConfigResponses(configs []domain.ProductConfig) []configResponse {
	out := make([]configResponse, len(configs))
	for i, c := range configs {
		out[i] = toConfigResponse(c)
	}
	return out
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// ListCategories handles GET /api/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]categoryResponse, len(categories))
	for i, c := range categories {
		out[i] = toCategoryResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

// SaveCategory handles PUT /api/categories.
func (h *CatalogHandler) SaveCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	types := make([]domain.MeasurementType, len(req.MeasurementTypes))
	for i, mt := range req.MeasurementTypes {
		types[i] = measurementType(mt)
	}

	c, err := h.svc.SaveCategory(r.Context(), catalog.CategoryInput{
		ID:               req.ID,
		Name:             req.Name,
		MeasurementTypes: types,
		Description:      req.Description,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*c))
}

// DeleteCategory handles DELETE /api/categories/{id}. Protected categories
// answer 403.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
