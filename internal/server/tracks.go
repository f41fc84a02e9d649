package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/nexusaudio/nexus/internal/catalog"
	"github.com/nexusaudio/nexus/internal/models"
)

// DefaultFeaturedLimit is the featured-track count used when the limit query
// parameter is absent.
const DefaultFeaturedLimit = 12

// TrackHandler serves the track resource.
// Implements the [Handler] interface for registration with a Router.
type TrackHandler struct {
	svc    *catalog.Service
	logger *log.Logger
}

// NewTrackHandler creates a TrackHandler over the given catalog service.
func NewTrackHandler(svc *catalog.Service, logger *log.Logger) *TrackHandler {
	return &TrackHandler{svc: svc, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
//
// The static routes must be registered alongside the "{trackId}" wildcard;
// ServeMux precedence keeps "featured", "search" and "price-range" from being
// swallowed by the id catch-all.
func (h *TrackHandler) Routes() []string {
	return []string{
		"GET /api/tracks/featured",
		"GET /api/tracks/search",
		"GET /api/tracks/price-range",
		"GET /api/tracks/genre/{genreId}",
		"GET /api/tracks/sub-genre/{subGenreId}",
		"GET /api/tracks/{trackId}",
	}
}

// ServeHTTP dispatches track requests by path.
func (h *TrackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case strings.HasSuffix(path, "/featured"):
		h.featured(w, r)
	case strings.HasSuffix(path, "/search"):
		h.search(w, r)
	case strings.HasSuffix(path, "/price-range"):
		h.priceRange(w, r)
	case strings.Contains(path, "/genre/"):
		h.byGenre(w, r)
	case strings.Contains(path, "/sub-genre/"):
		h.bySubGenre(w, r)
	default:
		h.byID(w, r)
	}
}

func (h *TrackHandler) featured(w http.ResponseWriter, r *http.Request) {
	limit := DefaultFeaturedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit (must be 1-100)")
			return
		}
		limit = parsed
	}

	if limit < 1 || limit > catalog.FeaturedLimitMax {
		writeError(w, http.StatusBadRequest, "Invalid limit (must be 1-100)")
		return
	}

	tracks, err := h.svc.FeaturedTracks(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Internal server error while fetching featured tracks")
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (h *TrackHandler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	keyword := query.Get("q")
	if keyword == "" {
		keyword = query.Get("keyword")
	}

	filters := models.SearchFilters{Keyword: keyword}

	if raw := query.Get("genreId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid genre ID")
			return
		}
		filters.GenreID = id
	}

	if raw := query.Get("minBpm"); raw != "" {
		bpm, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid minBpm")
			return
		}
		filters.MinBpm = bpm
	}

	if raw := query.Get("maxBpm"); raw != "" {
		bpm, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid maxBpm")
			return
		}
		filters.MaxBpm = bpm
	}

	tracks, err := h.svc.SearchTracks(r.Context(), filters)
	if err != nil {
		writeServiceError(w, h.logger, err, "Internal server error while searching tracks")
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (h *TrackHandler) priceRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rawMin := query.Get("minPrice")
	rawMax := query.Get("maxPrice")
	if rawMin == "" || rawMax == "" {
		writeError(w, http.StatusBadRequest, "Both minPrice and maxPrice are required")
		return
	}

	min, errMin := models.ParsePrice(rawMin)
	max, errMax := models.ParsePrice(rawMax)
	if errMin != nil || errMax != nil || min > max {
		writeError(w, http.StatusBadRequest, "Invalid price range")
		return
	}

	tracks, err := h.svc.TracksByPriceRange(r.Context(), min, max)
	if err != nil {
		writeServiceError(w, h.logger, err, "Internal server error while fetching tracks by price")
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (h *TrackHandler) byGenre(w http.ResponseWriter, r *http.Request) {
	genreID, err := strconv.Atoi(r.PathValue("genreId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid genre ID")
		return
	}

	tracks, err := h.svc.TracksByGenre(r.Context(), genreID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Internal server error while fetching tracks")
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (h *TrackHandler) bySubGenre(w http.ResponseWriter, r *http.Request) {
	subGenreID, err := strconv.Atoi(r.PathValue("subGenreId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sub-genre ID")
		return
	}

	tracks, err := h.svc.TracksBySubGenre(r.Context(), subGenreID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Internal server error while fetching tracks")
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (h *TrackHandler) byID(w http.ResponseWriter, r *http.Request) {
	trackID, err := strconv.Atoi(r.PathValue("trackId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid track ID")
		return
	}

	track, err := h.svc.TrackByID(r.Context(), trackID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Internal server error while fetching track")
		return
	}

	if track == nil {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}

	writeJSON(w, http.StatusOK, track)
}
