// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/funkoshop/api/internal/config"
	"github.com/funkoshop/api/internal/handlers"
	"github.com/funkoshop/api/internal/middleware"
	"github.com/funkoshop/api/internal/services"
	"github.com/funkoshop/api/internal/storage"
	"github.com/funkoshop/api/internal/utils"
)

func Initialize(db *gorm.DB, store storage.Store, cfg *config.Config) *gin.Engine {
	// Initialize services
	catalogService := services.NewCatalogService(db)
	imageService := services.NewImageService(db, store)
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db, store)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(catalogService, imageService, store)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, store)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Authentication routes
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Product routes
	products := r.Group("/products")
	{
		products.GET("", middleware.AuthRequired(), productHandler.List)
		products.GET("/:id", productHandler.Detail)
		products.GET("/image/:image", productHandler.GetImage)

		// Admin routes
		admin := products.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.POST("", middleware.UploadRateLimit(), productHandler.Create)
			admin.PATCH("/:id", middleware.UploadRateLimit(), productHandler.Update)
			admin.DELETE("/:id", productHandler.Delete)
		}
	}

	// User routes
	users := r.Group("/users")
	{
		users.GET("/avatar/:avatar", userHandler.GetAvatar)

		protected := users.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/profile", userHandler.GetProfile)
			protected.PATCH("/update", middleware.UploadRateLimit(), userHandler.UpdateProfile)
			protected.DELETE("/remove", userHandler.DeleteAccount)
		}
	}

	// Category routes
	r.GET("/categories", productHandler.ListCategories)

	return r
}
