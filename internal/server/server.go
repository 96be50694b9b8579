package server

import (
	"log/slog"
	"net/http"

	"tariff-dashboard/internal/config"
	"tariff-dashboard/internal/handlers"
	"tariff-dashboard/internal/services"
)

type Server struct {
	advisor     *services.Advisor
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(advisor *services.Advisor, logger *slog.Logger, cfg config.AdvisorConfig, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		advisor:     advisor,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(advisor, logger, cfg),
		sseHandlers: handlers.NewSSEHandlers(advisor, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("POST /api/analysis", s.apiHandlers.HandleAnalysis)
	s.mux.HandleFunc("POST /api/offsets", s.apiHandlers.HandleOffsets)
	s.mux.HandleFunc("POST /api/scenarios/projection", s.apiHandlers.HandleProjection)
	s.mux.HandleFunc("POST /api/report", s.apiHandlers.HandleReport)
	s.mux.HandleFunc("POST /api/reports/batch", s.apiHandlers.HandleBatch)
	s.mux.HandleFunc("GET /api/fta-groups", s.apiHandlers.HandleFTAGroups)
	s.mux.HandleFunc("GET /api/presets", s.apiHandlers.HandlePresets)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/analysis", s.sseHandlers.HandleAnalysis)
	s.mux.HandleFunc("GET /sse/presets/{name}", s.sseHandlers.HandlePreset)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
