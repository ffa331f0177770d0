package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-be/internal/cache"
	"recipe-be/internal/config"
	"recipe-be/internal/database"
	"recipe-be/internal/entities"
	"recipe-be/internal/jwt"
	"recipe-be/internal/logger"
	"recipe-be/internal/repository"
	"recipe-be/internal/routes"
	"recipe-be/internal/service"
	"recipe-be/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync() // Flush buffered entries on exit

	if err := cfg.Validate(); err != nil {
		zlog.Fatal("Invalid configuration", zap.Error(err))
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			zlog.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			cacheClient = nil
		} else {
			zlog.Info("Connected to Redis cache")
			defer cacheClient.Close()
		}
	}

	mediaFs, err := storage.NewMediaFs(cfg.MediaRoot)
	if err != nil {
		zlog.Fatal("Failed to prepare media root", zap.Error(err))
	}
	imageStore := storage.NewImageStore(mediaFs, mediaBaseURL(cfg))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewAttributeRepository(db, entities.KindTag)
	ingredientRepo := repository.NewAttributeRepository(db, entities.KindIngredient)
	recipeRepo := repository.NewRecipeRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize services
	services := routes.Services{
		Auth:        service.NewAuthService(userRepo, jwtService),
		Tags:        service.NewAttributeService(tagRepo),
		Ingredients: service.NewAttributeService(ingredientRepo),
		Recipes: service.NewRecipeService(
			recipeRepo,
			imageStore,
			cacheClient,
			time.Duration(cfg.RecipeCacheTTL)*time.Minute,
			zlog,
		),
	}

	router, err := routes.NewRouter(ctx, cfg, services, mediaFs, zlog)
	if err != nil {
		zlog.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// mediaBaseURL makes image URLs absolute when MEDIA_URL is a path
func mediaBaseURL(cfg *config.Config) string {
	if strings.HasPrefix(cfg.MediaURL, "/") {
		return strings.TrimRight(cfg.BaseURL, "/") + cfg.MediaURL
	}
	return cfg.MediaURL
}
