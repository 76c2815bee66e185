// package server contains middleware & handlers for the recommendation web service
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spindle-fm/spindle/internal/recommender"
	"github.com/spindle-fm/spindle/internal/shared"
	"golang.org/x/time/rate"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, request ids, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the recommendation service.
// Implementations handle specific endpoints (OAuth callbacks, catalog lookups).
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

// New assembles the full routing stack for the recommendation API: request
// ids, request logging, rate limiting, then every [API] endpoint.
func New(engine *recommender.Recommender, logger *log.Logger, platforms PlatformFactory, cfg shared.ServerConfig) *BasicRouter {
	if logger == nil {
		logger = log.Default()
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 20
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	router := NewBasicRouter()
	router.Use(
		RequestID(),
		Logging(logger),
		RateLimit(rate.NewLimiter(rate.Limit(limit), burst)),
	)

	NewAPI(engine, logger, platforms).Register(router)
	return router
}
