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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-records/pkg/validator"

	"github.com/johnquangdev/meeting-records/internal/adapter/handler"
	"github.com/johnquangdev/meeting-records/internal/adapter/repository"
	"github.com/johnquangdev/meeting-records/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-records/internal/infrastructure/database"
	meetingUsecase "github.com/johnquangdev/meeting-records/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-records/pkg/config"
	"github.com/johnquangdev/meeting-records/pkg/logger"
)

// @title           Meeting Records API
// @version         1.0
// @description     API for recording meetings with their participants, conclusions and counts
// @BasePath        /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Server.Environment, cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db, zapLogger)

	// Initialize meeting service
	log.Println("🗂️  Initializing meeting service...")
	serviceOpts := []meetingUsecase.Option{meetingUsecase.WithLogger(zapLogger)}
	if cfg.Cache.Enabled {
		store, closeStore, err := newCacheStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize cache: %v", err)
		}
		defer closeStore()
		serviceOpts = append(serviceOpts, meetingUsecase.WithCache(store, cfg.Cache.TTL))
		zapLogger.Info("meeting.cache.enabled",
			zap.String("backend", cfg.Cache.Backend),
			zap.Duration("ttl", cfg.Cache.TTL),
		)
	}
	meetingService := meetingUsecase.NewMeetingService(meetingRepo, serviceOpts...)

	// Initialize meeting handler
	log.Println("🚪 Initializing meeting handler...")
	meetingHandler := handler.NewMeetingHandler(meetingService, zapLogger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

// newCacheStore builds the configured cache backend and its closer
func newCacheStore(cfg *config.Config) (cache.Store, func() error, error) {
	switch cfg.Cache.Backend {
	case "redis":
		log.Println("📦 Connecting to Redis...")
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		store := cache.NewRedisStore(client)
		return store, store.Close, nil
	default:
		store := cache.NewMemoryStore()
		return store, store.Close, nil
	}
}
