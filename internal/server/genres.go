package server

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/nexusaudio/nexus/internal/catalog"
)

// GenreHandler serves the genre resource.
// Implements the [Handler] interface for registration with a Router.
type GenreHandler struct {
	svc    *catalog.Service
	logger *log.Logger
}

// NewGenreHandler creates a GenreHandler over the given catalog service.
func NewGenreHandler(svc *catalog.Service, logger *log.Logger) *GenreHandler {
	return &GenreHandler{svc: svc, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *GenreHandler) Routes() []string {
	return []string{
		"GET /api/genres",
		"GET /api/genres/with-sub-genres",
		"GET /api/genres/statistics",
	}
}

// ServeHTTP dispatches genre requests by path.
func (h *GenreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/with-sub-genres"):
		h.listWithSubGenres(w, r)
	case strings.HasSuffix(r.URL.Path, "/statistics"):
		h.statistics(w, r)
	default:
		h.list(w, r)
	}
}

func (h *GenreHandler) list(w http.ResponseWriter, r *http.Request) {
	genres, err := h.svc.ListGenres(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Internal server error while fetching genres")
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func (h *GenreHandler) listWithSubGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.svc.ListGenresWithSubGenres(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Internal server error while fetching genres with sub-genres")
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func (h *GenreHandler) statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Internal server error while fetching catalog statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
