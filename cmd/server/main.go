package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/reviewboard/internal/handlers"
	"github.com/alimgiray/reviewboard/internal/middleware"
	"github.com/alimgiray/reviewboard/internal/repositories"
	"github.com/alimgiray/reviewboard/internal/services"
	"github.com/alimgiray/reviewboard/internal/workers"
	"github.com/alimgiray/reviewboard/pkg/config"
	"github.com/alimgiray/reviewboard/pkg/database"
	"github.com/alimgiray/reviewboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig
	logger.Init(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize dependencies
	pullRequestRepo := repositories.NewPullRequestRepository(db)
	prReviewRepo := repositories.NewPRReviewRepository(db)
	analyticsCacheRepo := repositories.NewAnalyticsCacheRepository(db)

	pullRequestService := services.NewPullRequestService(pullRequestRepo, prReviewRepo)
	prReviewService := services.NewPRReviewService(prReviewRepo)
	dashboardService := services.NewDashboardService(pullRequestService)
	analyticsCacheService := services.NewAnalyticsCacheService(analyticsCacheRepo, cfg.Analytics.CacheTTL())
	exportService := services.NewExportService()

	// Only sync from GitHub when a repository is configured
	var syncer workers.Syncer
	if cfg.GitHub.Enabled() {
		githubService := services.NewGitHubService(cfg.GitHub.Token, cfg.GitHub.Owner, cfg.GitHub.Repo)
		syncer = services.NewSyncService(githubService, pullRequestService, prReviewService)
		logger.Infof("Synchronizing pull requests from %s", githubService.Repository())
	} else {
		logger.Warnf("GITHUB_OWNER/GITHUB_REPO not set, serving stored pull requests only")
	}

	// Initialize workers
	scheduler := workers.NewRefreshScheduler("refresh-scheduler", cfg.Refresh.Interval())
	pullRequestWorker := workers.NewPullRequestWorker("pull-request-worker", scheduler.Events(), syncer, dashboardService)
	workerManager := workers.NewWorkerManager(scheduler, pullRequestWorker)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	handlers.SetupRoutes(router, handlers.Handlers{
		PullRequest: handlers.NewPullRequestHandler(pullRequestService, prReviewService, dashboardService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, exportService),
		Refresh:     handlers.NewRefreshHandler(scheduler, cfg.GitHub.WebhookSecret),
		Analytics:   handlers.NewAnalyticsHandler(analyticsCacheService),
		Health:      handlers.NewHealthHandler(dashboardService),
		NotFound:    handlers.NewNotFoundHandler(),
	})

	// Start workers
	if err := workerManager.StartAll(); err != nil {
		logger.Fatalf("Failed to start workers: %v", err)
	}

	// Setup server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	if err := workerManager.StopAll(); err != nil {
		logger.Errorf("Failed to stop workers: %v", err)
	}

	logger.Infof("Server stopped")
}
