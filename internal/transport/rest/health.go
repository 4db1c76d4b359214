package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

// sessionCounter reports how many edit sessions are open.
type sessionCounter interface {
	Len() int
}

// HealthHandler serves the orchestrator probes and the operator health
// page.
type HealthHandler struct {
	db       dbPinger
	sessions sessionCounter
	version  string
}

// NewHealthHandler creates a HealthHandler. sessions may be nil.
func NewHealthHandler(db dbPinger, sessions sessionCounter, version string) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions, version: version}
}

// HealthResponse is the body of /live, /ready and /health.
type HealthResponse struct {
	Status       string    `json:"status"`
	Version      string    `json:"version,omitempty"`
	Database     *DBStatus `json:"database,omitempty"`
	OpenSessions *int      `json:"open_sessions,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// DBStatus is the outcome of one database ping.
type DBStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *DBStatus) up() bool { return s.Status == "ok" }

// Live answers 200 while the process is serving.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 when PostgreSQL answers a ping, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	db := h.pingDB(r.Context())
	resp := HealthResponse{Status: db.Status, Database: db, Timestamp: time.Now()}
	writeJSON(w, readiness(db), resp)
}

// Health adds the build version and the number of open edit sessions to
// the readiness check.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db := h.pingDB(r.Context())
	resp := HealthResponse{
		Status:    db.Status,
		Version:   h.version,
		Database:  db,
		Timestamp: time.Now(),
	}
	if h.sessions != nil {
		n := h.sessions.Len()
		resp.OpenSessions = &n
	}
	writeJSON(w, readiness(db), resp)
}

func (h *HealthHandler) pingDB(ctx context.Context) *DBStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		// Only the error class is reported; the DSN host stays private.
		msg := "unreachable"
		if ctx.Err() != nil {
			msg = "timeout"
		}
		return &DBStatus{Status: "down", Error: msg}
	}
	return &DBStatus{Status: "ok", Latency: time.Since(start).Round(time.Microsecond).String()}
}

func readiness(db *DBStatus) int {
	if db.up() {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
