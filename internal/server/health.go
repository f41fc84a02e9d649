package server

import "net/http"

// SystemName identifies the service in health responses.
const SystemName = "Nexus Audio Platform API"

// HealthHandler reports service liveness.
// Implements the [Handler] interface for registration with a Router.
type HealthHandler struct{}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"GET /health"}
}

// ServeHTTP writes the health status.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "active",
		"system": SystemName,
	})
}
