package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketReco/app/echo-server/router"
	"marketReco/business/recommendation"
	"marketReco/internal/middleware"
	psqlRepo "marketReco/internal/repository/postgres"
	redisRepo "marketReco/internal/repository/redis"
	"marketReco/internal/rest"
	"marketReco/pkg/config"
	"marketReco/pkg/database"
	redisdb "marketReco/pkg/database/redis"
	"marketReco/pkg/logger"
	"marketReco/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.App.Environment); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("Starting recommendation service", "version", cfg.App.Version, "env", cfg.App.Environment)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.ClosePostgres(db)

	logger.Info("Database connected successfully")

	// behavior cache is optional; the service runs uncached without Redis
	var behaviorCache recommendation.BehaviorCache
	healthChecks := map[string]rest.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if !cfg.Redis.Disabled {
		client, err := redisdb.NewRedisClient(context.Background(), cfg)
		if err != nil {
			logger.Warn("Redis unavailable, behavior cache disabled", "error", err)
		} else {
			defer redisdb.CloseRedisClient(client)
			behaviorCache = redisRepo.NewBehaviorCache(client)
			healthChecks["redis"] = redisdb.HealthCheck(client)
			logger.Info("Redis connected successfully")
		}
	}

	// Init repo
	repos := recommendation.Repositories{
		Products:   psqlRepo.NewProductRepository(db),
		Purchases:  psqlRepo.NewPurchaseRepository(db),
		Reviews:    psqlRepo.NewReviewRepository(db),
		Promotions: psqlRepo.NewPromotionRepository(db),
		Profiles:   psqlRepo.NewUserProfileRepository(db),
		Searches:   psqlRepo.NewSearchHistoryRepository(db),
	}

	// Init engine + service
	rc := cfg.Recommendation
	engine, err := recommendation.NewEngine(recommendation.Config{
		Weights: recommendation.DefaultWeights(),
		TopN:    rc.TopN,
		Workers: rc.Workers,
	})
	if err != nil {
		logger.Fatal("Invalid engine config", "error", err)
	}

	var eligibility recommendation.EligibilityChecker = recommendation.NoopEligibilityChecker{}
	if rc.InStockOnly {
		eligibility = recommendation.InStockEligibilityChecker{}
	}

	recoService := recommendation.NewService(repos, engine, behaviorCache, eligibility, recommendation.ServiceConfig{
		MaxCandidates:      rc.MaxCandidates,
		SearchHistoryLimit: rc.SearchHistoryLimit,
		BehaviorCacheTTL:   rc.BehaviorCacheTTL,
		Location:           rc.Location,
	})

	// Init handler
	recoHandler := rest.NewRecommendationHandler(recoService, cfg.Server.RequestTimeout)
	healthHandler := rest.NewHealthHandler(healthChecks)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetRecommendationRoutes(api, recoHandler, middleware.AuthMiddleware(cfg.JWT.SecretKey), middleware.AdminOnly())
	router.SetSystemRoutes(e, healthHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
