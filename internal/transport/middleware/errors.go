package middleware

import (
	"encoding/json"
	"net/http"
)

// Middleware wraps an http.Handler. The signature matches chi's Use.
type Middleware = func(http.Handler) http.Handler

// writeError writes the same error envelope as the REST handlers.
func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"kind": kind, "message": message},
	})
}
