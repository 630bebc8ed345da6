package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/emiliopalmerini/worklog/internal/insight"
	"github.com/emiliopalmerini/worklog/internal/logger"
	"github.com/emiliopalmerini/worklog/internal/metrics"
	"github.com/emiliopalmerini/worklog/internal/productivity"
	"github.com/emiliopalmerini/worklog/internal/shared/middleware"
)

const defaultShutdownTimeout = 10 * time.Second

type Server struct {
	addr            string
	shutdownTimeout time.Duration
	router          *http.ServeMux
	logs            *productivity.Service
	insights        *insight.Service
	metrics         *metrics.Metrics
	log             logger.Logger
}

type Option func(*Server)

// WithMetrics records request metrics and serves them on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Server) { s.log = l }
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// NewServer builds the dashboard server. A nil insight service disables
// the insight endpoints.
func NewServer(addr string, logs *productivity.Service, insights *insight.Service, opts ...Option) *Server {
	if insights == nil {
		insights = insight.NewService(nil)
	}
	s := &Server{
		addr:            addr,
		shutdownTimeout: defaultShutdownTimeout,
		router:          http.NewServeMux(),
		logs:            logs,
		insights:        insights,
		log:             logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Pages
	s.router.HandleFunc("GET /{$}", s.handleDashboard)

	// API endpoints
	s.router.HandleFunc("GET /api/kpi", s.handleAPIKPI)
	s.router.HandleFunc("GET /api/logs", s.handleAPIListLogs)
	s.router.HandleFunc("POST /api/logs", s.handleAPISubmitLogs)
	s.router.HandleFunc("GET /api/employees", s.handleAPIEmployees)
	s.router.HandleFunc("GET /api/export/logs", s.handleAPIExportLogs)
	s.router.HandleFunc("POST /api/insights", s.handleAPIInsights)
	s.router.HandleFunc("GET /api/insights/history", s.handleAPIInsightHistory)

	if s.metrics != nil {
		s.router.Handle("GET /metrics", s.metrics.Handler())
	}
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	// Metrics sit innermost so they see the request the mux annotates
	// with its pattern.
	if s.metrics != nil {
		h = s.metrics.Middleware(h)
	}
	h = middleware.HTMX(h)
	return middleware.RequestLogger(s.log)(h)
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // insight generation is slow
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("starting dashboard server", logger.String("addr", s.addr))

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.log.Error("server shutdown error", logger.Error(err))
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
