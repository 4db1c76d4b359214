package rest

import (
	"net/http"

	"github.com/heartmarshall/precast-backend/internal/transport/middleware"
)

// Handlers groups every REST handler served by the router.
type Handlers struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	Catalog    *CatalogHandler
	Production *ProductionHandler
	Attendance *AttendanceHandler
}

// NewRouter registers every route. login wraps POST /auth/login (rate
// limiting); api wraps everything under /api/ (authentication and
// per-request loaders).
func NewRouter(h Handlers, login, api middleware.Middleware) http.Handler {
	apiMux := http.NewServeMux()

	apiMux.HandleFunc("GET /api/me", h.Auth.Me)
	apiMux.HandleFunc("GET /api/users", h.Auth.ListUsers)
	apiMux.HandleFunc("POST /api/users", h.Auth.CreateUser)

	apiMux.HandleFunc("GET /api/products", h.Catalog.ListProducts)
	apiMux.HandleFunc("POST /api/products", h.Catalog.AddProduct)
	apiMux.HandleFunc("GET /api/products/search", h.Catalog.SearchProducts)
	apiMux.HandleFunc("GET /api/products/unconfigured", h.Catalog.ListUnconfigured)
	apiMux.HandleFunc("DELETE /api/products/{name}", h.Catalog.DeleteProduct)

	apiMux.HandleFunc("GET /api/configs", h.Catalog.ListConfigs)
	apiMux.HandleFunc("PUT /api/configs", h.Catalog.SaveConfig)
	apiMux.HandleFunc("PUT /api/configs/batch", h.Catalog.SaveConfigs)
	apiMux.HandleFunc("GET /api/configs/{product}", h.Catalog.GetConfig)

	apiMux.HandleFunc("GET /api/categories", h.Catalog.ListCategories)
	apiMux.HandleFunc("PUT /api/categories", h.Catalog.SaveCategory)
	apiMux.HandleFunc("DELETE /api/categories/{id}", h.Catalog.DeleteCategory)

	apiMux.HandleFunc("GET /api/productions", h.Production.ListRecords)
	apiMux.HandleFunc("GET /api/productions/{date}", h.Production.GetRecord)
	apiMux.HandleFunc("PUT /api/productions/{date}", h.Production.SaveRecord)
	apiMux.HandleFunc("DELETE /api/productions/{date}", h.Production.DeleteRecord)
	apiMux.HandleFunc("POST /api/productions/{date}/sessions", h.Production.OpenSession)

	apiMux.HandleFunc("GET /api/sessions/{id}", h.Production.GetSession)
	apiMux.HandleFunc("POST /api/sessions/{id}/edit", h.Production.BeginEdit)
	apiMux.HandleFunc("POST /api/sessions/{id}/items", h.Production.AddItem)
	apiMux.HandleFunc("PATCH /api/sessions/{id}/items/{itemID}", h.Production.UpdateQuantity)
	apiMux.HandleFunc("DELETE /api/sessions/{id}/items/{itemID}", h.Production.RemoveItem)
	apiMux.HandleFunc("POST /api/sessions/{id}/commit", h.Production.CommitEdit)
	apiMux.HandleFunc("DELETE /api/sessions/{id}", h.Production.CloseSession)

	apiMux.HandleFunc("GET /api/workers", h.Attendance.ListWorkers)
	apiMux.HandleFunc("POST /api/workers", h.Attendance.CreateWorker)
	apiMux.HandleFunc("PATCH /api/workers/{id}", h.Attendance.RenameWorker)
	apiMux.HandleFunc("DELETE /api/workers/{id}", h.Attendance.DeleteWorker)

	apiMux.HandleFunc("PUT /api/attendance", h.Attendance.Mark)
	apiMux.HandleFunc("GET /api/attendance/day/{date}", h.Attendance.Day)
	apiMux.HandleFunc("GET /api/attendance/month/{date}", h.Attendance.Month)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.Handle("POST /auth/login", login(http.HandlerFunc(h.Auth.Login)))
	mux.Handle("/api/", api(apiMux))

	return mux
}
