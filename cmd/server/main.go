// Crop Advisor - Server Entry Point
//
// This is the main entry point for the plant-health diagnosis and advisory
// service. It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/advisory"
	"github.com/growsmart/cropadvisor/internal/config"
	"github.com/growsmart/cropadvisor/internal/diagnosis"
	"github.com/growsmart/cropadvisor/internal/handler"
	"github.com/growsmart/cropadvisor/internal/inference"
	"github.com/growsmart/cropadvisor/internal/logger"
	"github.com/growsmart/cropadvisor/internal/recommend"
	"github.com/growsmart/cropadvisor/internal/service"
	"github.com/growsmart/cropadvisor/internal/store"
	"github.com/growsmart/cropadvisor/internal/taxonomy"
	"github.com/growsmart/cropadvisor/pkg/imagecheck"
)

func main() {
	// Load .env file if it exists (development)
	_ = godotenv.Load()

	// Determine if we're in development mode
	isDev := os.Getenv("GIN_MODE") != "release"

	// Initialize logger
	zapLogger, err := logger.New(isDev)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting Crop Advisor",
		zap.Bool("development", isDev),
	)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("failed to load configuration", zap.Error(err))
	}

	zapLogger.Info("configuration loaded",
		zap.String("port", cfg.Server.Port),
		zap.Int("inference_backends", len(cfg.Inference.Backends)),
		zap.Bool("mock_mode", cfg.Inference.MockMode),
		zap.String("advisory_url", cfg.Advisory.URL),
		zap.String("db_path", cfg.Store.DBPath),
	)

	// Open and seed the record store
	recordStore, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		zapLogger.Fatal("failed to open record store", zap.Error(err))
	}
	defer recordStore.Close()

	if err := recordStore.Seed(context.Background(), time.Now()); err != nil {
		zapLogger.Fatal("failed to seed record store", zap.Error(err))
	}

	// Schedule the expired-alert purge
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Store.AlertPurgeSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		removed, err := recordStore.PurgeExpiredAlerts(ctx, time.Now())
		if err != nil {
			zapLogger.Error("alert purge failed", zap.Error(err))
			return
		}
		zapLogger.Info("purged expired alerts", zap.Int64("removed", removed))
	}); err != nil {
		zapLogger.Fatal("invalid alert purge schedule", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize the classification client
	var classifier inference.Classifier
	if cfg.Inference.MockMode {
		zapLogger.Warn("running in mock mode - classifications are simulated")
		classifier = inference.NewMockClassifier(zapLogger)
	} else {
		classifier = inference.NewHTTPClient(&cfg.Inference, zapLogger)
	}

	// Initialize the pipeline components
	resolver := taxonomy.NewResolver(cfg.Reference.TaxonomyOverrides)
	scorer := diagnosis.NewScorer(cfg.Reference.CriticalConditions)
	retriever := recommend.NewRetriever(recordStore, zapLogger)
	checker := imagecheck.New(cfg.Intake.MaxImageSize)

	diagnoser := service.NewDiagnoser(classifier, resolver, scorer, retriever, checker, zapLogger)

	// Initialize the advisory client
	fallbacks := advisory.NewFallbackTable(cfg.Reference.FallbackTemplates)
	advisoryClient := advisory.NewClient(&cfg.Advisory, fallbacks, zapLogger)
	advisor := service.NewAdvisor(advisoryClient, zapLogger)

	// Initialize handlers
	diagnoseHandler := handler.NewDiagnoseHandler(diagnoser, zapLogger)
	identifyHandler := handler.NewIdentifyHandler(diagnoser, zapLogger)
	chatHandler := handler.NewChatHandler(advisor, zapLogger)
	marketHandler := handler.NewMarketHandler(recordStore, zapLogger)
	healthHandler := handler.NewHealthHandler(zapLogger)
	readyHandler := handler.NewReadyHandler(classifier, zapLogger)

	// Setup Gin router
	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Apply middleware
	router.Use(handler.RecoveryMiddleware(zapLogger))
	router.Use(handler.RequestIDMiddleware())
	router.Use(handler.LoggingMiddleware(zapLogger))
	router.Use(handler.CORSMiddleware())

	// Register routes
	router.GET("/health", healthHandler.Handle)
	router.GET("/ready", readyHandler.Handle)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/diagnose", diagnoseHandler.Handle)
		v1.POST("/identify", identifyHandler.Handle)
		v1.POST("/chat", chatHandler.Handle)
		v1.POST("/market-prices", marketHandler.Handle)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		zapLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server...")

	// Give the server 10 seconds to finish processing
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server stopped")
}
