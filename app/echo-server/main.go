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

	"ecoVoyage/app/echo-server/router"
	"ecoVoyage/business/destination"
	"ecoVoyage/business/trip"
	userService "ecoVoyage/business/user"
	"ecoVoyage/internal/middleware"
	psqlRepo "ecoVoyage/internal/repository/postgres"
	redisRepo "ecoVoyage/internal/repository/redis"
	"ecoVoyage/internal/rest"
	"ecoVoyage/pkg/config"
	"ecoVoyage/pkg/database"
	redisdb "ecoVoyage/pkg/database/redis"
	"ecoVoyage/pkg/logger"
	"ecoVoyage/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ecoVoyage", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Redis is optional; without it auth falls back to stateless JWT
	var sessionRepo *redisRepo.SessionRepository
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, running without server-side sessions", "error", err)
	} else {
		sessionRepo = redisRepo.NewSessionRepository(redisClient)
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	destRepo := psqlRepo.NewDestinationRepository(db)
	visitRepo := psqlRepo.NewVisitRepository(db)
	scoreRepo := psqlRepo.NewScoreRepository(db)

	// Init service
	var sessions userService.SessionStore
	if sessionRepo != nil {
		sessions = sessionRepo
	}
	usrService := userService.NewUserService(userRepo, validate, sessions)
	destService := destination.NewDestinationService(destRepo)
	tripService := trip.NewService(userRepo, destRepo, visitRepo, scoreRepo, cfg.Recommender)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := tripService.Load(loadCtx); err != nil {
		loadCancel()
		logger.Fatal("Failed to load recommendation data", "error", err)
	}
	loadCancel()

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	destHandler := rest.NewDestinationHandler(destService, tripService)
	visitHandler := rest.NewVisitHandler(tripService, visitRepo)
	recoHandler := rest.NewRecommendationHandler(tripService)

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
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	if sessionRepo != nil {
		authRequired = middleware.AuthMiddlewareWithSessions(sessionRepo)
	}
	adminOnly := middleware.AdminOnly()
	selfOrAdmin := middleware.SelfOrAdmin()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly, selfOrAdmin)
	router.SetupDestinationRoutes(api, destHandler, authRequired, adminOnly)
	router.SetupVisitRoutes(api, visitHandler, authRequired)
	router.SetupRecommendationRoutes(api, recoHandler, authRequired, adminOnly)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

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

	if redisClient != nil {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Redis shutdown error", "error", err)
		}
	}

	logger.Info("Server stopped")
}
