package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"tariff-dashboard/internal/config"
	"tariff-dashboard/internal/middleware"
	"tariff-dashboard/internal/observability"
	"tariff-dashboard/internal/server"
	"tariff-dashboard/internal/services"
	"tariff-dashboard/internal/ui/templates"
)

const (
	renderTimeout     = 10 * time.Second
	cacheMaxAge       = "no-cache"
	limiterPruneEvery = time.Minute
)

// dashboardHandler renders the page with the current presets and agreements.
func dashboardHandler(advisor *services.Advisor, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		view := templates.DashboardView{
			Form:      templates.DefaultFormSignals(),
			Presets:   advisor.Presets(),
			FTAGroups: advisor.FTAGroups(),
		}

		html, err := templates.RenderString(ctx, templates.Dashboard(view))
		if err != nil {
			logger.Error("render dashboard", "error", err)
			http.Error(w, "render error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", cacheMaxAge)
		_, _ = w.Write([]byte(html))
	}
}

// loadPresets reads the presets file if one is configured. A missing or broken
// file leaves the dashboard usable without presets.
func loadPresets(advisor *services.Advisor, cfg config.AdvisorConfig, logger *slog.Logger) {
	if cfg.PresetsCSV == "" {
		logger.Info("no presets file configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	defer cancel()

	start := time.Now()
	err := advisor.LoadPresetsFromCSV(ctx, cfg.PresetsCSV)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("presets file not found, starting without presets", "file", cfg.PresetsCSV)
	case err != nil:
		logger.Warn("failed to load presets, starting without presets", "file", cfg.PresetsCSV, "error", err)
	default:
		logger.Info("presets loaded",
			"file", cfg.PresetsCSV,
			"count", len(advisor.Presets()),
			"duration", time.Since(start),
		)
	}
}

func newHandler(cfg *config.Config, advisor *services.Advisor, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	templateHandlers := &server.TemplateHandlers{
		Dashboard: dashboardHandler(advisor, logger),
	}

	srv := server.NewServer(advisor, logger, cfg.Advisor, templateHandlers)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(limiter, logger),
	)

	return middlewareChain(srv)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"addr", cfg.Address(),
		"presets", cfg.Advisor.PresetsCSV,
		"max_workers", cfg.Advisor.MaxWorkers,
		"rate_limit", cfg.Security.EnableRateLimit,
	)

	advisor := services.NewAdvisor(logger, cfg.Advisor.MaxWorkers)
	loadPresets(advisor, cfg.Advisor, logger)

	limiter := middleware.NewRateLimiter(cfg.Security)
	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	go limiter.Run(limiterCtx, limiterPruneEvery)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, advisor, limiter, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		stopLimiter()
		logger.Info("advisor stats at shutdown", "stats", advisor.Stats())
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		stopLimiter()
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
