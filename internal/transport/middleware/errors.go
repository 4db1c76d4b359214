package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the {"error":{"code","message"}} envelope the REST
// handlers use, so clients parse middleware rejections the same way.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
}
