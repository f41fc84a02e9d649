package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/nexusaudio/nexus/internal/shared"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON writes data as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeServiceError maps a catalog service failure to a response.
//
// Validation failures surface their message as a 400; everything else becomes
// a generic 500 with the cause logged server-side only, never echoed to the
// client.
func writeServiceError(w http.ResponseWriter, logger *log.Logger, err error, generic string) {
	if errors.Is(err, shared.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Error(generic, "error", err)
	writeError(w, http.StatusInternalServerError, generic)
}
