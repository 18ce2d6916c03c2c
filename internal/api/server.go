package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/config"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/pipeline"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/recognition"
)

// Server is the HTTP API for the bridge.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	recognizer   *recognition.Client
	stats        *recognition.Stats
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. recognizer may be nil
// when no recognition service is configured; the strokes endpoint then
// reports the feature as unavailable.
func NewServer(orch *pipeline.Orchestrator, recognizer *recognition.Client, stats *recognition.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		recognizer:   recognizer,
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
		r.Use(AuthMiddleware(s.cfg.BridgeAPIKey, s.log))

		r.Post("/api/transcriptions", s.handleSubmit)
		r.Post("/api/transcriptions/strokes", s.handleSubmitStrokes)
		r.Post("/api/transcriptions/hocr", s.handleSubmitHOCR)
		r.Get("/api/transcriptions/{jobID}", s.handleStatus)
		r.Get("/api/transcriptions/{jobID}/outline", s.handleOutline)
		r.Get("/api/transcriptions/{jobID}/markdown", s.handleMarkdown)
		r.Get("/api/transcriptions/{jobID}/pdf", s.handlePDF)

		r.Get("/api/stats/recognition", s.handleRecognitionStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
