package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docproof/internal/config"
	"github.com/dgallion1/docproof/internal/pipeline"
	"github.com/dgallion1/docproof/internal/validate"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docproof.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	stats        *validate.Stats
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil.
func NewServer(orch *pipeline.Orchestrator, stats *validate.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		stats:        stats,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocproofAPIKey, s.log))

		r.Post("/api/parse", s.handleParse)
		r.Post("/api/check", s.handleCheck)
		r.Post("/api/check/batch", s.handleBatchCheck)
		r.Get("/api/check/{jobID}", s.handleCheckStatus)
		r.Get("/api/stats/validators", s.handleValidatorStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
