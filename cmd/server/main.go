package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venuehub/internal/config"
	handlers "venuehub/internal/handlers/shared"
	"venuehub/internal/middleware"
	"venuehub/internal/repositories/localstore"
	"venuehub/internal/repositories/mongodb"
	"venuehub/internal/services"
	"venuehub/internal/utils"
	"venuehub/pkg/cache"
	"venuehub/pkg/database"
	"venuehub/pkg/logger"
	"venuehub/pkg/maps"
	"venuehub/pkg/storage"
	"venuehub/pkg/websocket"
	"venuehub/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}

	storageProvider, err := newStorageProvider(cfg.Storage)
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage provider: %v", err)
	}

	mapsProvider, err := newMapsProvider(cfg.Maps)
	if err != nil {
		appLogger.Fatalf("Failed to initialize maps provider: %v", err)
	}

	fallbackStore, err := localstore.NewStore(cfg.Fallback.Path)
	if err != nil {
		appLogger.Fatalf("Failed to open fallback store: %v", err)
	}

	seed, err := localstore.LoadSeed(cfg.Fallback.SeedFile)
	if err != nil {
		appLogger.WithError(err).Warn("Failed to load seed extension file, using built-in seed only")
		seed, _ = localstore.LoadSeed("")
	}

	// Services
	cacheService := services.NewCacheService(redisCache, appLogger, utils.LocationCacheTTL)
	locationRepo := mongodb.NewLocationRepository(db.Database, cacheService)
	shareRepo := mongodb.NewShareRepository(db.Database)
	userRepo := mongodb.NewUserRepository(db.Database, cacheService)

	wsHandler := websocket.NewHandler()
	notifier := services.NewHubNotifier(wsHandler)

	imageService := services.NewImageService(storageProvider, appLogger)
	locationService := services.NewLocationService(locationRepo, shareRepo, imageService, mapsProvider, fallbackStore, seed, notifier, appLogger)
	shareService := services.NewShareService(shareRepo, locationRepo, notifier, appLogger)
	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, appLogger)

	// Handlers
	locationHandler := handlers.NewLocationHandler(locationService)
	shareHandler := handlers.NewShareHandler(shareService)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(db, cacheService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler)
		routes.SetupLocationRoutes(v1, authService, locationHandler, shareHandler)
	}

	router.GET("/health", healthHandler.Health)
	router.GET("/ws", middleware.OptionalAuth(authService), wsHandler.HandleWebSocket)

	if cfg.Storage.Provider == "local" {
		router.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
	if err := db.Close(); err != nil {
		appLogger.Errorf("Failed to close MongoDB connection: %v", err)
	}
	if err := redisCache.Close(); err != nil {
		appLogger.Errorf("Failed to close Redis connection: %v", err)
	}
}

func newStorageProvider(cfg *config.StorageConfig) (storage.StorageProvider, error) {
	switch cfg.Provider {
	case "aws", "s3":
		return storage.NewAWSS3Storage(cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.CDNDomain)
	case "gcp", "gcs":
		return storage.NewGCPStorage(cfg.GCP.ProjectID, cfg.GCP.Bucket, cfg.GCP.CredentialsFile, cfg.GCP.CDNDomain)
	default:
		return storage.NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL)
	}
}

func newMapsProvider(cfg *config.MapsConfig) (maps.MapsProvider, error) {
	switch cfg.Provider {
	case "mapbox":
		return maps.NewMapboxProvider(cfg.Mapbox.AccessToken), nil
	default:
		if cfg.GoogleMaps.APIKey == "" {
			// Geocoding is optional; markers fall back to stored or
			// default coordinates.
			return nil, nil
		}
		return maps.NewGoogleMapsProvider(cfg.GoogleMaps.APIKey)
	}
}
