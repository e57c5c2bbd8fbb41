package api

import (
	"net/http"
	"time"
)

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}
