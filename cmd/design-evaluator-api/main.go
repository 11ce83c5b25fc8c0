// Package main is the entry point for the design-evaluator-api server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/designeval/design-evaluator-api/internal/config"
	"github.com/designeval/design-evaluator-api/internal/http/handlers"
	"github.com/designeval/design-evaluator-api/internal/llm"
	"github.com/designeval/design-evaluator-api/internal/logging"
	"github.com/designeval/design-evaluator-api/internal/screenshot"
	"github.com/designeval/design-evaluator-api/internal/service"
	"github.com/designeval/design-evaluator-api/internal/shutdown"
	"github.com/designeval/design-evaluator-api/internal/version"
)

func main() {
	// Initialize logger with TTY detection, source paths, and format control
	logger := logging.SetDefault()

	// Log version info first thing
	v := version.Get()
	logger.Info("starting design-evaluator-api",
		"version", v.Version,
		"commit", v.Commit,
		"built", v.Date,
		"go_version", v.GoVersion,
	)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the model client
	modelClient, err := llm.New(llm.Config{
		APIKey:    cfg.OpenAIAPIKey,
		Model:     cfg.OpenAIModel,
		BaseURL:   cfg.OpenAIBaseURL,
		Timeout:   cfg.LLMTimeout,
		MaxTokens: cfg.LLMMaxTokens,
	})
	if err != nil {
		logger.Error("failed to initialize model client", "error", err)
		os.Exit(1)
	}
	logger.Info("model client initialized", "model", modelClient.Model())

	// Initialize the screenshot capturer
	capturer := screenshot.New(screenshot.Config{
		NavigationTimeout: cfg.ScreenshotTimeout,
		SettleDelay:       cfg.ScreenshotSettle,
		ChromePath:        cfg.ChromePath,
	}, logger)

	evaluator := service.NewEvaluatorService(modelClient, capturer, logger)

	// Idle monitor for scale-to-zero deployments (disabled when IDLE_TIMEOUT=0)
	idleMonitor := shutdown.NewIdleMonitor(shutdown.IdleMonitorConfig{
		Timeout:      cfg.IdleTimeout,
		Logger:       logger,
		ExcludePaths: []string{"/health"},
	})
	idleMonitor.Start()

	// Create router
	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(idleMonitor.Middleware)

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global rate limit by IP
	router.Use(httprate.LimitByIP(100, time.Minute))

	// Concurrency throttle - each request holds a browser and a model call
	router.Use(middleware.Throttle(20))

	// Multipart upload routes. These sit outside the typed API so request
	// bodies aren't forced through the JSON size cap.
	uploadHandler := handlers.NewUploadHandler(evaluator, cfg.MaxUploadBytes, logger)
	router.Post("/analyze", uploadHandler.AnalyzeDesign)
	router.Post("/compare", uploadHandler.CompareDesigns)

	// JSON routes get a small request size cap and OpenAPI docs
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequestSize(1 * 1024 * 1024))

		humaConfig := huma.DefaultConfig("Design Evaluator API", v.Version)
		humaConfig.Info.Description = "Evaluates UI designs against Nielsen's usability heuristics and design system principles using a multimodal model."
		if cfg.BaseURL != "" {
			humaConfig.Servers = []*huma.Server{{URL: cfg.BaseURL}}
		}
		api := humachi.New(r, humaConfig)

		huma.Post(api, "/", handlers.Root)
		huma.Get(api, "/health", handlers.HealthCheck)

		evaluateHandler := handlers.NewEvaluateHandler(evaluator)
		huma.Post(api, "/analyze-url", evaluateHandler.AnalyzeURL)
		huma.Post(api, "/compare-urls", evaluateHandler.CompareURLs)
	})

	// Create server. Write timeout covers two captures plus two model calls.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on signal or idle timeout
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-sigChan:
			logger.Info("shutting down server", "signal", sig.String())
		case <-idleMonitor.ShutdownChan():
			logger.Info("shutting down server", "reason", "idle timeout")
		}

		idleMonitor.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	// Start server
	logger.Info("starting server", "port", cfg.Port, "base_url", cfg.BaseURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
