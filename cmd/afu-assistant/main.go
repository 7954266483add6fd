package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afubot/afu-assistant/internal/api"
	"github.com/afubot/afu-assistant/internal/auth"
	"github.com/afubot/afu-assistant/internal/config"
	"github.com/afubot/afu-assistant/internal/knowledge"
	"github.com/afubot/afu-assistant/internal/recommend"
	"github.com/afubot/afu-assistant/internal/repository"
	"github.com/afubot/afu-assistant/internal/service"
	"github.com/afubot/afu-assistant/internal/session"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Load the FAQ knowledge base (embedded data unless a path is configured)
	store, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		logger.Fatal("Failed to load knowledge base", zap.Error(err))
	}
	logger.Info("Knowledge base loaded", zap.Int("entries", store.Len()))

	// Initialize storage. The sqlite driver persists feedback, analytics
	// and admin sessions; the memory driver keeps everything process-local.
	var (
		feedbackRepo  service.FeedbackStore
		analyticsRepo service.AnalyticsStore
		sessionTiers  []session.Store
	)
	sessionTiers = append(sessionTiers, session.NewMemoryStore())

	switch cfg.Database.Driver {
	case "memory":
		feedbackRepo = repository.NewMemoryFeedbackRepository()
		analyticsRepo = repository.NewMemoryAnalyticsRepository()
	default:
		db, err := repository.NewDB(cfg.Database.Path)
		if err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer db.Close()
		feedbackRepo = repository.NewFeedbackRepository(db)
		analyticsRepo = repository.NewAnalyticsRepository(db)
		sessionTiers = append(sessionTiers, repository.NewSessionRepository(db))
	}

	sessions := session.NewTiered(sessionTiers...)
	guard := session.NewGuard(
		cfg.Session.Timeout,
		cfg.Session.WarningWindow,
		cfg.Session.ActivityDebounce,
		nil,
	)

	issuer, err := auth.NewTokenIssuer(cfg.Admin.JWTKey, cfg.Session.CookieMaxAge)
	if err != nil {
		logger.Fatal("Failed to initialize token issuer", zap.Error(err))
	}

	// Initialize services
	assistantService := service.NewAssistantService(store, recommend.NewEngine(), logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, logger)
	adminService := service.NewAdminService(
		cfg,
		issuer,
		sessions,
		guard,
		store,
		feedbackService,
		analyticsService,
		logger,
	)

	// Setup router
	router := api.SetupRouter(
		assistantService,
		feedbackService,
		analyticsService,
		adminService,
		issuer,
		sessions,
		guard,
		logger,
		api.RouterConfig{
			AllowOrigins: cfg.Server.AllowOrigins,
			CookieMaxAge: int(cfg.Session.CookieMaxAge.Seconds()),
		},
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting assistant server",
			zap.String("address", cfg.Address()),
			zap.String("base_url", cfg.Server.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
