package rest

import (
	"net/http"
	"os"

	"bioverse-backend/internal/infrastructure/observability"
	"bioverse-backend/internal/interfaces/http/rest/handlers"
	"bioverse-backend/internal/interfaces/http/rest/middleware"
	appErrors "bioverse-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options selects the optional parts of the router.
type Options struct {
	PublicDir     string
	ServiceName   string
	EnableCORS    bool
	EnableTracing bool
}

// Router creates and configures the HTTP router
type Router struct {
	chat    *handlers.ChatHandler
	graph   *handlers.GraphHandler
	errors  *appErrors.ErrorHandler
	metrics *observability.Collector
	options Options
	logger  *zap.Logger
}

// NewRouter creates a new router instance. metrics may be nil.
func NewRouter(
	chat *handlers.ChatHandler,
	graph *handlers.GraphHandler,
	errorHandler *appErrors.ErrorHandler,
	metrics *observability.Collector,
	options Options,
	logger *zap.Logger,
) *Router {
	return &Router{
		chat:    chat,
		graph:   graph,
		errors:  errorHandler,
		metrics: metrics,
		options: options,
		logger:  logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.RequestIDHeader)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	router.Use(rt.errors.Middleware)
	if rt.options.EnableTracing {
		router.Use(observability.TracingMiddleware(rt.options.ServiceName))
	}
	if rt.metrics != nil {
		router.Use(rt.metrics.Middleware)
	}

	if rt.options.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	// Chatbot page
	router.Get("/", rt.chat.Home)
	router.Post("/", rt.chat.Ask)

	router.Route("/api", func(r chi.Router) {
		r.Get("/graph", rt.graph.GetGraph)
	})

	// Generated audio and the sky texture
	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(rt.options.PublicDir)))
	router.Handle("/static/*", fileServer)

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready once the public directory exists, since every
// answer writes an audio file there.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if info, err := os.Stat(rt.options.PublicDir); err != nil || !info.IsDir() {
		rt.logger.Warn("Public directory unavailable", zap.String("dir", rt.options.PublicDir), zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"not ready"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
