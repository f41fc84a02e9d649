// package server contains routing, middleware & handlers for the catalog API
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/nexusaudio/nexus/internal/catalog"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, recovery, CORS, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the catalog API.
// Implementations handle specific resources (genres, tracks, health).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// NewRouter builds the catalog API router: request logging and panic recovery
// middleware plus the genre, track and health handlers.
func NewRouter(svc *catalog.Service, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(Recover(logger), RequestLogger(logger))
	router.Handler(NewGenreHandler(svc, logger))
	router.Handler(NewTrackHandler(svc, logger))
	router.Handler(NewHealthHandler())
	return router
}
