// Package routes wires controllers and middleware into the gin engine.
package routes

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"recipe-be/internal/config"
	"recipe-be/internal/controllers"
	"recipe-be/internal/middleware"
	"recipe-be/internal/models"
	"recipe-be/internal/service"
	"recipe-be/internal/storage"
)

// Services are the business services the HTTP layer is built on
type Services struct {
	Auth        service.AuthService
	Tags        service.AttributeService
	Ingredients service.AttributeService
	Recipes     service.RecipeService
}

// onProtectedPaths runs handler for requests under the token-protected groups
func onProtectedPaths(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api/users/me" || path == "/api/recipe" || strings.HasPrefix(path, "/api/recipe/") {
			handler(c)
			return
		}
		c.Next()
	}
}

// NewRouter builds the HTTP handler. ctx bounds the rate limiters' background sweepers.
func NewRouter(ctx context.Context, cfg *config.Config, svc Services, mediaFs afero.Fs, logger *zap.Logger) (*gin.Engine, error) {
	if err := models.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	authController := controllers.NewAuthController(svc.Auth)
	tagController := controllers.NewAttributeController(svc.Tags)
	ingredientController := controllers.NewAttributeController(svc.Ingredients)
	recipeController := controllers.NewRecipeController(svc.Recipes, cfg.MaxUploadBytes)
	qrcodeController := controllers.NewQRCodeController(svc.Recipes, cfg.BaseURL)

	generalRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	requireAuth := middleware.AuthMiddleware(svc.Auth)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	// nil makes ClientIP the socket peer, so X-Forwarded-For cannot dodge the limiter
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gin.Recovery(),
		middleware.Metrics(),
	)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	// Protected paths authenticate before reporting a wrong method
	router.NoMethod(onProtectedPaths(requireAuth), func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// Health check and metrics (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// An absolute MEDIA_URL means uploads are served by something else
	if strings.HasPrefix(cfg.MediaURL, "/") {
		router.StaticFS(cfg.MediaURL, storage.NewMediaFileSystem(mediaFs))
	}

	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		users := api.Group("/users")
		{
			users.POST("/create", authRateLimiter.LimitMiddleware(), authController.Register)
			users.POST("/token", authRateLimiter.LimitMiddleware(), authController.Token)

			me := users.Group("/me")
			me.Use(requireAuth)
			me.GET("", authController.Me)
			me.PATCH("", authController.UpdateMe)
		}

		recipe := api.Group("/recipe")
		recipe.Use(requireAuth)
		{
			recipe.GET("/tags", tagController.List)
			recipe.POST("/tags", tagController.Create)

			recipe.GET("/ingredients", ingredientController.List)
			recipe.POST("/ingredients", ingredientController.Create)

			recipe.GET("/recipes", recipeController.List)
			recipe.POST("/recipes", recipeController.Create)
			recipe.GET("/recipes/:id", recipeController.Get)
			recipe.PUT("/recipes/:id", recipeController.Update)
			recipe.PATCH("/recipes/:id", recipeController.Patch)
			recipe.DELETE("/recipes/:id", recipeController.Delete)
			recipe.POST("/recipes/:id/upload-image", recipeController.UploadImage)
			recipe.GET("/recipes/:id/qrcode", qrcodeController.GenerateQRCode)
		}
	}

	return router, nil
}
