package receipt

import (
	"log/slog"
	"net/http"
	"time"
)

// Server handles HTTP requests for receipts
type Server struct {
	service *Service
	metrics http.Handler
	mux     *http.ServeMux
}

// NewServer creates a new Server with default mux.
// metricsHandler is mounted at /metrics when non-nil.
func NewServer(service *Service, metricsHandler http.Handler) *Server {
	return NewServerWithMux(service, metricsHandler, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, metricsHandler http.Handler, mux *http.ServeMux) *Server {
	s := &Server{
		service: service,
		metrics: metricsHandler,
		mux:     mux,
	}
	s.registerRoutes()
	return s
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs one line per request
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// registerRoutes registers all API routes on the server's mux
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /receipts/process", s.handleProcessReceipt)
	s.mux.HandleFunc("GET /receipts/{id}/points", s.handleGetPoints)

	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics)
	}
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	return http.ListenAndServe(addr, s.loggingMiddleware(s.mux))
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
