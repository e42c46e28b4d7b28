package server

import (
	"net/http"

	"postboard-go/internal/common/response"
)

// API Handlers
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		s.sendJSON(w, http.StatusServiceUnavailable, false, "Database not configured", nil)
		return
	}

	health := s.health.Health(r.Context())
	if health["status"] != "up" {
		s.sendJSON(w, http.StatusServiceUnavailable, false, "Health check failed", health)
		return
	}
	s.sendJSON(w, http.StatusOK, true, "Health check successful", health)
}

// Error Handlers
func (s *Server) handleError404(w http.ResponseWriter, r *http.Request) {
	response.Error(w, http.StatusNotFound, response.CodeNotFound, "Route not found")
}

func (s *Server) handleError405(w http.ResponseWriter, r *http.Request) {
	response.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}
